package v1_test

import (
	"fmt"
	"net/http"
	"time"

	v1 "github.com/centsible/backend/internal/controllers/v1"
	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/internal/types"
	"github.com/centsible/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestBudgetLifecycle() {
	user, headers := suite.registerUser()
	groceries := suite.createTestCategory("Groceries")

	// Create
	recorder := test.Request(suite.T(), http.MethodPost, "/v1/budgets", v1.BudgetEditable{
		Month:      types.NewMonth(2025, 3),
		Amount:     decimal.NewFromInt(500),
		CategoryID: &groceries.ID,
		Note:       "tight month",
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var created v1.BudgetCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &created)
	suite.Assert().Equal(user.ID, created.Data.UserID)

	// Creating the same slot again conflicts
	recorder = test.Request(suite.T(), http.MethodPost, "/v1/budgets", v1.BudgetEditable{
		Month:      types.NewMonth(2025, 3),
		Amount:     decimal.NewFromInt(300),
		CategoryID: &groceries.ID,
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusConflict)

	// A transaction in the month shows up as actual spend
	transaction := models.Transaction{
		Date:       time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC),
		Amount:     decimal.NewFromFloat(-123.45),
		Type:       models.TransactionExpense,
		CategoryID: &groceries.ID,
		UserID:     user.ID,
	}
	suite.Require().Nil(models.DB.Create(&transaction).Error)

	recorder = test.Request(suite.T(), http.MethodGet, "/v1/budgets?month=2025-03", "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var list v1.BudgetListResponse
	test.DecodeResponse(suite.T(), &recorder, &list)
	suite.Require().Len(list.Data, 1)
	suite.Assert().True(list.Data[0].ActualSpend.Equal(decimal.NewFromFloat(123.45)), "spend is %s", list.Data[0].ActualSpend)
	suite.Require().NotNil(list.Data[0].Category)
	suite.Assert().Equal("Groceries", list.Data[0].Category.Name)

	// Get single
	recorder = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/budgets/%s", created.Data.ID), "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	// Update
	recorder = test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/budgets/%s", created.Data.ID), `{"amount": "450"}`, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var updated v1.BudgetCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &updated)
	suite.Assert().True(updated.Data.Amount.Equal(decimal.NewFromInt(450)))

	// Delete, then the slot is free again
	recorder = test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("/v1/budgets/%s", created.Data.ID), "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodPost, "/v1/budgets", v1.BudgetEditable{
		Month:      types.NewMonth(2025, 3),
		Amount:     decimal.NewFromInt(300),
		CategoryID: &groceries.ID,
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)
}

func (suite *TestSuiteStandard) TestBudgetOwnershipOverAPI() {
	_, ownerHeaders := suite.registerUser()
	_, strangerHeaders := suite.registerUser()
	groceries := suite.createTestCategory("Groceries")

	recorder := test.Request(suite.T(), http.MethodPost, "/v1/budgets", v1.BudgetEditable{
		Month:      types.NewMonth(2025, 3),
		Amount:     decimal.NewFromInt(500),
		CategoryID: &groceries.ID,
	}, ownerHeaders)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var created v1.BudgetCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &created)

	// Another user cannot see, update or delete it
	url := fmt.Sprintf("/v1/budgets/%s", created.Data.ID)

	recorder = test.Request(suite.T(), http.MethodGet, url, "", strangerHeaders)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusForbidden)

	recorder = test.Request(suite.T(), http.MethodPatch, url, `{"amount": "1"}`, strangerHeaders)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusForbidden)

	recorder = test.Request(suite.T(), http.MethodDelete, url, "", strangerHeaders)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusForbidden)

	// A nonexistent ID is a NotFound, distinct from Forbidden
	recorder = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/budgets/%s", uuid.New()), "", strangerHeaders)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestBudgetValidationOverAPI() {
	_, headers := suite.registerUser()
	groceries := suite.createTestCategory("Groceries")

	// Missing target
	recorder := test.Request(suite.T(), http.MethodPost, "/v1/budgets", v1.BudgetEditable{
		Month:  types.NewMonth(2025, 3),
		Amount: decimal.NewFromInt(500),
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	// Non-positive amount
	recorder = test.Request(suite.T(), http.MethodPost, "/v1/budgets", v1.BudgetEditable{
		Month:      types.NewMonth(2025, 3),
		Amount:     decimal.NewFromInt(-10),
		CategoryID: &groceries.ID,
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	// Invalid month in the query string
	recorder = test.Request(suite.T(), http.MethodGet, "/v1/budgets?month=notamonth", "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	// Invalid UUID in the URI
	recorder = test.Request(suite.T(), http.MethodGet, "/v1/budgets/not-a-uuid", "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestBudgetCopyRecurringOverAPI() {
	_, headers := suite.registerUser()
	groceries := suite.createTestCategory("Groceries")

	recorder := test.Request(suite.T(), http.MethodPost, "/v1/budgets", v1.BudgetEditable{
		Month:      types.NewMonth(2025, 2),
		Amount:     decimal.NewFromInt(500),
		CategoryID: &groceries.ID,
		Recurring:  true,
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	recorder = test.Request(suite.T(), http.MethodPost, "/v1/budgets/copy-recurring", v1.BudgetCopyEditable{
		From: types.NewMonth(2025, 2),
		To:   types.NewMonth(2025, 3),
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var copied v1.BudgetCopyResponse
	test.DecodeResponse(suite.T(), &recorder, &copied)
	suite.Require().Len(copied.Data, 1)
	suite.Assert().True(copied.Data[0].Month.Equal(types.NewMonth(2025, 3)))
}
