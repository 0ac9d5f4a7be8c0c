package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/giftsplit/backend/internal/auth"
	"github.com/giftsplit/backend/internal/contribution"
	v1 "github.com/giftsplit/backend/internal/controllers/v1"
	"github.com/giftsplit/backend/internal/models"
	"github.com/giftsplit/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestGiftsOptions() {
	r := suite.request(http.MethodOptions, "http://example.com/v1/gifts", "")
	test.AssertHTTPStatus(suite.T(), r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, POST", r.Header().Get("allow"))

	gift := suite.createTestGift(evenGift())

	r = suite.request(http.MethodOptions, gift.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET", r.Header().Get("allow"))

	r = suite.request(http.MethodOptions, gift.Links.Suggestions, "")
	test.AssertHTTPStatus(suite.T(), r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestGiftsOptionsDetailErrors() {
	tests := []struct {
		name   string
		url    string
		status int
		err    string
	}{
		{"Not a UUID", "http://example.com/v1/gifts/not-a-uuid", http.StatusBadRequest, "the specified resource ID is not a valid UUID"},
		{"No gift", "http://example.com/v1/gifts/c1a96ae4-80e3-4827-8ed0-c7656f224fee", http.StatusNotFound, "there is no gift matching your query"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.controller, t, http.MethodOptions, tt.url, "")
			test.AssertHTTPStatus(t, &r, tt.status)
			assert.Equal(t, tt.err, test.DecodeError(t, r.Body.Bytes()))
		})
	}
}

func (suite *TestSuiteStandard) TestGiftsCreate() {
	r := suite.request(http.MethodPost, "http://example.com/v1/gifts", evenGift())
	test.AssertHTTPStatus(suite.T(), r, http.StatusCreated)

	var response v1.GiftCreateResponse
	test.DecodeResponse(suite.T(), r, &response)

	gift := response.Data
	suite.Require().NotNil(gift)
	assert.Nil(suite.T(), response.Error)
	assert.Equal(suite.T(), fmt.Sprintf("http://localhost:3000/gift/%s", gift.ID), response.ShareableLink)
	assert.Equal(suite.T(), response.ShareableLink, gift.Links.Share)
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/gifts/%s", gift.ID), gift.Links.Self)
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/gifts/%s/suggestions", gift.ID), gift.Links.Suggestions)
	assert.Equal(suite.T(), "http://example.com/v1/payments", gift.Links.Payments)

	assert.Equal(suite.T(), "Birthday present for Jane", gift.Description)
	assert.Equal(suite.T(), models.GiftPending, gift.Status)
	assert.Equal(suite.T(), models.AnonymousOrganizer, gift.OrganizerEmail)
	assert.True(suite.T(), created.Add(7*24*time.Hour).Equal(gift.ExpiresAt))
	assert.True(suite.T(), decimal.NewFromInt(15).Equal(gift.MinimumContribution))
	assert.True(suite.T(), decimal.RequireFromString("0.5").Equal(gift.ProcessingFee))
	assert.True(suite.T(), gift.Progress.TotalPaid.IsZero())
	assert.True(suite.T(), decimal.NewFromInt(150).Equal(gift.Progress.Remaining))
	assert.Empty(suite.T(), gift.Contributions)

	suite.Require().Len(gift.Shares, 3)
	for _, share := range gift.Shares {
		assert.True(suite.T(), decimal.NewFromInt(50).Equal(share), "share is %s", share)
	}
	assert.Len(suite.T(), gift.PaidAmounts, 3)
}

func (suite *TestSuiteStandard) TestGiftsCreateDefaultSplit() {
	body := evenGift()
	delete(body, "splitType")
	body["amount"] = 100

	gift := suite.createTestGift(body)
	assert.Equal(suite.T(), contribution.SplitEven, gift.SplitType)

	suite.Require().Len(gift.Shares, 3)
	assert.True(suite.T(), decimal.RequireFromString("33.33").Equal(gift.Shares[0]))
}

func (suite *TestSuiteStandard) TestGiftsCreateCustom() {
	gift := suite.createTestGift(map[string]any{
		"description":    "Team dinner",
		"amount":         100,
		"splitType":      "custom",
		"numberOfPeople": 2,
		"customSplits":   []float64{60, 40},
		"organizerEmail": "organizer@example.com",
	})

	assert.Equal(suite.T(), contribution.SplitCustom, gift.SplitType)
	assert.Equal(suite.T(), "organizer@example.com", gift.OrganizerEmail)
	suite.Require().Len(gift.Shares, 2)
	assert.True(suite.T(), decimal.NewFromInt(60).Equal(gift.Shares[0]))
	assert.True(suite.T(), decimal.NewFromInt(40).Equal(gift.Shares[1]))
}

func (suite *TestSuiteStandard) TestGiftsCreateOrganizerFromSession() {
	token, err := suite.issuer.Issue(auth.Session{Subject: "user-1", Email: "jane@example.com", Name: "Jane"})
	suite.Require().Nil(err)

	r := suite.request(http.MethodPost, "http://example.com/v1/gifts", evenGift(), map[string]string{"Authorization": "Bearer " + token})
	test.AssertHTTPStatus(suite.T(), r, http.StatusCreated)

	var response v1.GiftCreateResponse
	test.DecodeResponse(suite.T(), r, &response)
	assert.Equal(suite.T(), "jane@example.com", response.Data.OrganizerEmail)
}

func (suite *TestSuiteStandard) TestGiftsCreateErrors() {
	tests := []struct {
		name   string
		body   any
		status int
		err    string
		kind   string
	}{
		{"Empty body", "", http.StatusBadRequest, "the request body must not be empty", ""},
		{"Broken JSON", `{ "description": broken }`, http.StatusBadRequest, "the body of your request contains invalid or un-parseable data. Please check and try again", ""},
		{"Invalid email", map[string]any{"description": "Gift", "amount": 100, "numberOfPeople": 2, "organizerEmail": "jane"}, http.StatusBadRequest, "Invalid email format", "ValidationError"},
		{"No description", map[string]any{"amount": 100, "numberOfPeople": 2}, http.StatusBadRequest, "Gift description is required", "ValidationError"},
		{"Too many people", map[string]any{"description": "Gift", "amount": 100, "numberOfPeople": 21}, http.StatusBadRequest, "Maximum 20 people", "ValidationError"},
		{"Too few people", map[string]any{"description": "Gift", "amount": 100, "numberOfPeople": 1}, http.StatusBadRequest, "Need at least 2 people", "ValidationError"},
		{"Custom splits do not add up", map[string]any{"description": "Gift", "amount": 100, "splitType": "custom", "numberOfPeople": 2, "customSplits": []float64{50, 40}}, http.StatusBadRequest, "Custom splits must add up to the gift amount of $100.00", "ValidationError"},
		{"Unknown split type", map[string]any{"description": "Gift", "amount": 100, "splitType": "weighted", "numberOfPeople": 2}, http.StatusBadRequest, "Split type must be either even or custom", "ValidationError"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.controller, t, http.MethodPost, "http://example.com/v1/gifts", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.GiftCreateResponse
			test.DecodeResponse(t, &r, &response)

			assert.Nil(t, response.Data)
			if assert.NotNil(t, response.Error) {
				assert.Equal(t, tt.err, *response.Error)
			}

			if tt.kind == "" {
				assert.Nil(t, response.Kind)
			} else if assert.NotNil(t, response.Kind) {
				assert.Equal(t, tt.kind, *response.Kind)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestGiftsGet() {
	gift := suite.createTestGift(evenGift())

	r := suite.request(http.MethodGet, gift.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), r, http.StatusOK)

	var response v1.GiftResponse
	test.DecodeResponse(suite.T(), r, &response)
	suite.Require().NotNil(response.Data)
	assert.Equal(suite.T(), gift.ID, response.Data.ID)
	assert.Equal(suite.T(), gift.Links, response.Data.Links)
}

func (suite *TestSuiteStandard) TestGiftsGetExpired() {
	gift := suite.createTestGift(evenGift())
	suite.now = created.Add(8 * 24 * time.Hour)

	r := suite.request(http.MethodGet, gift.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), r, http.StatusOK)

	var response v1.GiftResponse
	test.DecodeResponse(suite.T(), r, &response)
	assert.Equal(suite.T(), models.GiftExpired, response.Data.Status)
}

func (suite *TestSuiteStandard) TestGiftsGetErrors() {
	tests := []struct {
		name   string
		url    string
		status int
		err    string
	}{
		{"Not a UUID", "http://example.com/v1/gifts/42", http.StatusBadRequest, "the specified resource ID is not a valid UUID"},
		{"No gift", "http://example.com/v1/gifts/c1a96ae4-80e3-4827-8ed0-c7656f224fee", http.StatusNotFound, "there is no gift matching your query"},
		{"Suggestions not a UUID", "http://example.com/v1/gifts/42/suggestions", http.StatusBadRequest, "the specified resource ID is not a valid UUID"},
		{"Suggestions no gift", "http://example.com/v1/gifts/c1a96ae4-80e3-4827-8ed0-c7656f224fee/suggestions", http.StatusNotFound, "there is no gift matching your query"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.controller, t, http.MethodGet, tt.url, "")
			test.AssertHTTPStatus(t, &r, tt.status)
			assert.Equal(t, tt.err, test.DecodeError(t, r.Body.Bytes()))
		})
	}
}

func (suite *TestSuiteStandard) TestGiftsMethodNotAllowed() {
	r := suite.request(http.MethodDelete, "http://example.com/v1/gifts/c1a96ae4-80e3-4827-8ed0-c7656f224fee", "")
	test.AssertHTTPStatus(suite.T(), r, http.StatusMethodNotAllowed)
}

func (suite *TestSuiteStandard) TestGiftsSuggestions() {
	gift := suite.createTestGift(evenGift())

	r := suite.request(http.MethodGet, gift.Links.Suggestions, "")
	test.AssertHTTPStatus(suite.T(), r, http.StatusOK)

	var response v1.SuggestionsResponse
	test.DecodeResponse(suite.T(), r, &response)

	suite.Require().Len(response.Data, 4)

	expected := []string{"38", "75", "150"}
	for i, amount := range expected {
		suite.Require().NotNil(response.Data[i].Amount)
		assert.True(suite.T(), decimal.RequireFromString(amount).Equal(*response.Data[i].Amount), "suggestion %d is %s", i, response.Data[i].Amount)
	}
	assert.True(suite.T(), response.Data[3].Custom)
	assert.Nil(suite.T(), response.Data[3].Amount)
}
