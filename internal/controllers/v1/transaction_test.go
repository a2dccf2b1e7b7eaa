package v1_test

import (
	"fmt"
	"net/http"
	"time"

	v1 "github.com/centsible/backend/internal/controllers/v1"
	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestTransactionLifecycle() {
	_, headers := suite.registerUser()
	groceries := suite.createTestCategory("Groceries")

	recorder := test.Request(suite.T(), http.MethodPost, "/v1/transactions", v1.TransactionEditable{
		Date:       time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC),
		Amount:     decimal.NewFromFloat(-54.30),
		Type:       models.TransactionExpense,
		CategoryID: &groceries.ID,
		Payee:      "Corner store",
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var created v1.TransactionResponse
	test.DecodeResponse(suite.T(), &recorder, &created)

	// List with filters
	recorder = test.Request(suite.T(), http.MethodGet, "/v1/transactions?month=2025-03&type=expense", "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var list v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &recorder, &list)
	suite.Require().Len(list.Data, 1)

	// The month filter excludes other months
	recorder = test.Request(suite.T(), http.MethodGet, "/v1/transactions?month=2025-04", "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &list)
	suite.Assert().Len(list.Data, 0)

	// Glob search on the payee
	recorder = test.Request(suite.T(), http.MethodGet, "/v1/transactions?search=corner*", "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &list)
	suite.Require().Len(list.Data, 1)

	// Update
	recorder = test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/transactions/%s", created.Data.ID), `{"note": "weekly shop"}`, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var updated v1.TransactionResponse
	test.DecodeResponse(suite.T(), &recorder, &updated)
	suite.Assert().Equal("weekly shop", updated.Data.Note)

	// Delete
	recorder = test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("/v1/transactions/%s", created.Data.ID), "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodGet, "/v1/transactions", "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &list)
	suite.Assert().Len(list.Data, 0)
}

func (suite *TestSuiteStandard) TestTransactionValidation() {
	_, headers := suite.registerUser()

	recorder := test.Request(suite.T(), http.MethodPost, "/v1/transactions", v1.TransactionEditable{
		Date:   time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		Amount: decimal.NewFromInt(10),
		Type:   "donation",
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	recorder = test.Request(suite.T(), http.MethodGet, "/v1/transactions?month=nope", "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestTransactionOwnership() {
	_, ownerHeaders := suite.registerUser()
	_, strangerHeaders := suite.registerUser()
	groceries := suite.createTestCategory("Groceries")

	recorder := test.Request(suite.T(), http.MethodPost, "/v1/transactions", v1.TransactionEditable{
		Date:       time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC),
		Amount:     decimal.NewFromFloat(-54.30),
		Type:       models.TransactionExpense,
		CategoryID: &groceries.ID,
	}, ownerHeaders)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var created v1.TransactionResponse
	test.DecodeResponse(suite.T(), &recorder, &created)

	recorder = test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("/v1/transactions/%s", created.Data.ID), "", strangerHeaders)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusForbidden)
}
