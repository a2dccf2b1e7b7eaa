package v1_test

import (
	"net/http"

	v1 "github.com/centsible/backend/internal/controllers/v1"
	"github.com/centsible/backend/test"
)

func (suite *TestSuiteStandard) TestRegisterAndLogin() {
	editable := v1.RegisterEditable{
		Email:    "jane@example.com",
		Password: "correct horse battery staple",
		Name:     "Jane",
	}

	recorder := test.Request(suite.T(), http.MethodPost, "/v1/auth/register", editable)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var session v1.SessionResponse
	test.DecodeResponse(suite.T(), &recorder, &session)
	suite.Assert().NotEmpty(session.Data.Token)
	suite.Assert().Equal("jane@example.com", session.Data.User.Email)

	// The same email cannot register twice
	recorder = test.Request(suite.T(), http.MethodPost, "/v1/auth/register", editable)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusConflict)

	// Email matching is case-insensitive
	recorder = test.Request(suite.T(), http.MethodPost, "/v1/auth/login", v1.LoginEditable{
		Email:    "Jane@Example.com",
		Password: "correct horse battery staple",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	recorder = test.Request(suite.T(), http.MethodPost, "/v1/auth/login", v1.LoginEditable{
		Email:    "jane@example.com",
		Password: "wrong password",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)
}

func (suite *TestSuiteStandard) TestRegisterInvalidBody() {
	recorder := test.Request(suite.T(), http.MethodPost, "/v1/auth/register", `{ broken json`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	recorder = test.Request(suite.T(), http.MethodPost, "/v1/auth/register", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGetMe() {
	user, headers := suite.registerUser()

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/me", "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.UserResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Equal(user.ID, response.Data.ID)

	// Without a token the endpoint is not accessible
	recorder = test.Request(suite.T(), http.MethodGet, "/v1/me", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)
}
