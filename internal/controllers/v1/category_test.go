package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/centsible/backend/internal/controllers/v1"
	"github.com/centsible/backend/test"
)

func (suite *TestSuiteStandard) TestCategoryLifecycle() {
	_, headers := suite.registerUser()

	recorder := test.Request(suite.T(), http.MethodPost, "/v1/categories", v1.CategoryEditable{
		Name: "Groceries",
		Note: "Everything edible",
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var created v1.CategoryResponse
	test.DecodeResponse(suite.T(), &recorder, &created)

	recorder = test.Request(suite.T(), http.MethodPost, fmt.Sprintf("/v1/categories/%s/subcategories", created.Data.ID), v1.SubcategoryEditable{
		Name: "Restaurants",
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	recorder = test.Request(suite.T(), http.MethodGet, "/v1/categories", "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var list v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &recorder, &list)
	suite.Require().Len(list.Data, 1)
	suite.Assert().Equal("Groceries", list.Data[0].Name)

	recorder = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/categories/%s/subcategories", created.Data.ID), "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var subcategories v1.SubcategoryListResponse
	test.DecodeResponse(suite.T(), &recorder, &subcategories)
	suite.Require().Len(subcategories.Data, 1)
	suite.Assert().Equal("Restaurants", subcategories.Data[0].Name)
}

func (suite *TestSuiteStandard) TestCategoryValidation() {
	_, headers := suite.registerUser()

	// Name is required
	recorder := test.Request(suite.T(), http.MethodPost, "/v1/categories", v1.CategoryEditable{Note: "no name"}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}
