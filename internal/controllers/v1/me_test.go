package v1_test

import (
	"net/http"

	"github.com/giftsplit/backend/internal/auth"
	v1 "github.com/giftsplit/backend/internal/controllers/v1"
	"github.com/giftsplit/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestMeOptions() {
	r := suite.request(http.MethodOptions, "http://example.com/v1/me", "")
	test.AssertHTTPStatus(suite.T(), r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestMe() {
	session := auth.Session{Subject: "google-oauth2|108", Email: "jane@example.com", Name: "Jane Doe"}
	token, err := suite.issuer.Issue(session)
	suite.Require().Nil(err)

	r := suite.request(http.MethodGet, "http://example.com/v1/me", "", map[string]string{"Authorization": "Bearer " + token})
	test.AssertHTTPStatus(suite.T(), r, http.StatusOK)

	var response v1.SessionResponse
	test.DecodeResponse(suite.T(), r, &response)
	suite.Require().NotNil(response.Data)
	assert.Equal(suite.T(), session, *response.Data)
}

func (suite *TestSuiteStandard) TestMeNoSession() {
	r := suite.request(http.MethodGet, "http://example.com/v1/me", "")
	test.AssertHTTPStatus(suite.T(), r, http.StatusUnauthorized)
	assert.Equal(suite.T(), "you need to be signed in to access this resource", test.DecodeError(suite.T(), r.Body.Bytes()))
}

func (suite *TestSuiteStandard) TestMeInvalidToken() {
	other := auth.NewIssuer("another-signing-key", "giftsplit", auth.DefaultLifetime)
	token, err := other.Issue(auth.Session{Subject: "user-1", Email: "jane@example.com"})
	suite.Require().Nil(err)

	r := suite.request(http.MethodGet, "http://example.com/v1/me", "", map[string]string{"Authorization": "Bearer " + token})
	test.AssertHTTPStatus(suite.T(), r, http.StatusUnauthorized)
	assert.Equal(suite.T(), "the session token is invalid or expired", test.DecodeError(suite.T(), r.Body.Bytes()))
}

func (suite *TestSuiteStandard) TestMeSessionsDisabled() {
	token, err := suite.issuer.Issue(auth.Session{Subject: "user-1", Email: "jane@example.com"})
	suite.Require().Nil(err)

	suite.controller.Sessions = nil

	r := suite.request(http.MethodGet, "http://example.com/v1/me", "", map[string]string{"Authorization": "Bearer " + token})
	test.AssertHTTPStatus(suite.T(), r, http.StatusUnauthorized)
}
