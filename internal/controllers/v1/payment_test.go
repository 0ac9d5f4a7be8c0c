package v1_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/giftsplit/backend/internal/contribution"
	v1 "github.com/giftsplit/backend/internal/controllers/v1"
	"github.com/giftsplit/backend/internal/models"
	"github.com/giftsplit/backend/internal/payment"
	"github.com/giftsplit/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// startPayment starts a payment and returns the checkout.
func (suite *TestSuiteStandard) startPayment(body map[string]any) v1.PaymentResponse {
	r := suite.request(http.MethodPost, "http://example.com/v1/payments", body)
	test.AssertHTTPStatus(suite.T(), r, http.StatusCreated)

	var response v1.PaymentResponse
	test.DecodeResponse(suite.T(), r, &response)
	suite.Require().NotNil(response.Data)

	return response
}

// confirm confirms a payment session and returns the response.
func (suite *TestSuiteStandard) confirm(gift v1.Gift, sessionID string, status int) v1.PaymentConfirmResponse {
	r := suite.request(http.MethodPost, "http://example.com/v1/payments/confirm", map[string]any{
		"giftId":    gift.ID,
		"sessionId": sessionID,
	})
	test.AssertHTTPStatus(suite.T(), r, status)

	var response v1.PaymentConfirmResponse
	test.DecodeResponse(suite.T(), r, &response)

	return response
}

func (suite *TestSuiteStandard) TestPaymentsOptions() {
	for _, path := range []string{"", "/confirm", "/webhook"} {
		r := suite.request(http.MethodOptions, "http://example.com/v1/payments"+path, "")
		test.AssertHTTPStatus(suite.T(), r, http.StatusNoContent)
		assert.Equal(suite.T(), "OPTIONS, POST", r.Header().Get("allow"))
	}
}

func (suite *TestSuiteStandard) TestPaymentsCreateForShare() {
	body := evenGift()
	body["amount"] = 100
	gift := suite.createTestGift(body)

	response := suite.startPayment(map[string]any{
		"giftId":          gift.ID,
		"shareIndex":      1,
		"contributorName": "Alice",
	})

	checkout := response.Data
	assert.True(suite.T(), strings.HasPrefix(checkout.SessionID, "cs_mock_"), checkout.SessionID)
	assert.True(suite.T(), strings.HasPrefix(checkout.RedirectURL, "https://checkout.stripe.com/mock?"), checkout.RedirectURL)
	assert.True(suite.T(), decimal.RequireFromString("33.33").Equal(checkout.Amount), checkout.Amount)
	assert.True(suite.T(), decimal.RequireFromString("0.5").Equal(checkout.Fee), checkout.Fee)
	assert.True(suite.T(), decimal.RequireFromString("33.83").Equal(checkout.Total), checkout.Total)

	// The contribution is pending until it is confirmed
	r := suite.request(http.MethodGet, gift.Links.Self, "")
	var g v1.GiftResponse
	test.DecodeResponse(suite.T(), r, &g)

	suite.Require().Len(g.Data.Contributions, 1)
	assert.Equal(suite.T(), checkout.SessionID, g.Data.Contributions[0].ID)
	assert.Equal(suite.T(), contribution.StatusPending, g.Data.Contributions[0].Status)
	assert.True(suite.T(), g.Data.Progress.TotalPaid.IsZero())
}

func (suite *TestSuiteStandard) TestPaymentsCreateErrors() {
	body := evenGift()
	body["amount"] = 100
	gift := suite.createTestGift(body)

	tests := []struct {
		name   string
		body   any
		status int
		kind   string
		err    string
	}{
		{"Empty body", "", http.StatusBadRequest, "", "the request body must not be empty"},
		{"No gift ID", map[string]any{"contributorName": "Alice", "amount": 20}, http.StatusBadRequest, "", "the specified resource ID is not a valid UUID"},
		{"Unknown gift", map[string]any{"giftId": "c1a96ae4-80e3-4827-8ed0-c7656f224fee", "contributorName": "Alice", "amount": 20}, http.StatusNotFound, "", "there is no gift matching your query"},
		{"Missing name", map[string]any{"giftId": gift.ID, "contributorName": "  ", "amount": 20}, http.StatusBadRequest, "MissingName", "Please enter your name"},
		{"Name too long", map[string]any{"giftId": gift.ID, "contributorName": strings.Repeat("a", 51), "amount": 20}, http.StatusBadRequest, "ValidationError", "contributorName cannot be longer than 50"},
		{"Negative share", map[string]any{"giftId": gift.ID, "contributorName": "Alice", "shareIndex": -1}, http.StatusBadRequest, "ValidationError", "shareIndex must be 0 or larger"},
		{"Share does not exist", map[string]any{"giftId": gift.ID, "contributorName": "Alice", "shareIndex": 3}, http.StatusBadRequest, "ValidationError", "Share 3 does not exist, the gift has 3 shares"},
		{"No amount", map[string]any{"giftId": gift.ID, "contributorName": "Alice"}, http.StatusBadRequest, "InvalidAmount", "Please enter a valid amount"},
		{"Negative amount", map[string]any{"giftId": gift.ID, "contributorName": "Alice", "amount": -5}, http.StatusBadRequest, "InvalidAmount", "Please enter a valid amount"},
		{"Below minimum", map[string]any{"giftId": gift.ID, "contributorName": "Alice", "amount": 5}, http.StatusBadRequest, "BelowMinimum", "Minimum contribution is $10.00 (10% of total or $2, whichever is greater)"},
		{"Exceeds maximum", map[string]any{"giftId": gift.ID, "contributorName": "Alice", "amount": 20000}, http.StatusBadRequest, "ExceedsMaximum", "Maximum contribution amount is $10,000"},
		{"Exceeds remaining", map[string]any{"giftId": gift.ID, "contributorName": "Alice", "amount": 150}, http.StatusBadRequest, "ExceedsRemaining", "Maximum contribution cannot exceed the remaining amount: $100.00"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.controller, t, http.MethodPost, "http://example.com/v1/payments", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.PaymentResponse
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

func (suite *TestSuiteStandard) TestPaymentsCreateDuplicateContributor() {
	gift := suite.createTestGift(evenGift())

	checkout := suite.startPayment(map[string]any{"giftId": gift.ID, "contributorName": "Alice", "amount": 50})
	suite.confirm(gift, checkout.Data.SessionID, http.StatusOK)

	r := suite.request(http.MethodPost, "http://example.com/v1/payments", map[string]any{"giftId": gift.ID, "contributorName": " alice ", "amount": 50})
	test.AssertHTTPStatus(suite.T(), r, http.StatusBadRequest)

	var response v1.PaymentResponse
	test.DecodeResponse(suite.T(), r, &response)
	assert.Equal(suite.T(), string(contribution.KindDuplicateContributor), *response.Kind)
}

func (suite *TestSuiteStandard) TestPaymentsCreateExpired() {
	gift := suite.createTestGift(evenGift())
	suite.now = created.Add(7*24*time.Hour + time.Second)

	r := suite.request(http.MethodPost, "http://example.com/v1/payments", map[string]any{"giftId": gift.ID, "contributorName": "Alice", "amount": 50})
	test.AssertHTTPStatus(suite.T(), r, http.StatusConflict)

	var response v1.PaymentResponse
	test.DecodeResponse(suite.T(), r, &response)
	assert.Equal(suite.T(), string(contribution.KindGiftClosed), *response.Kind)
	assert.Equal(suite.T(), "This gift has expired and is no longer accepting contributions", *response.Error)
}

func (suite *TestSuiteStandard) TestPaymentsConfirm() {
	gift := suite.createTestGift(evenGift())
	checkout := suite.startPayment(map[string]any{"giftId": gift.ID, "shareIndex": 0, "contributorName": "Alice"})

	response := suite.confirm(gift, checkout.Data.SessionID, http.StatusOK)
	assert.True(suite.T(), response.Applied)
	assert.Nil(suite.T(), response.Error)

	suite.Require().NotNil(response.Data)
	assert.True(suite.T(), decimal.NewFromInt(50).Equal(response.Data.Progress.TotalPaid))
	assert.True(suite.T(), decimal.NewFromInt(50).Equal(response.Data.PaidAmounts[0]))
	assert.Equal(suite.T(), contribution.StatusPaid, response.Data.Contributions[0].Status)
	assert.NotNil(suite.T(), response.Data.Contributions[0].PaidAt)
	assert.Equal(suite.T(), models.GiftPending, response.Data.Status)

	// Confirming again does not credit the contribution twice
	response = suite.confirm(gift, checkout.Data.SessionID, http.StatusOK)
	assert.False(suite.T(), response.Applied)
	assert.True(suite.T(), decimal.NewFromInt(50).Equal(response.Data.Progress.TotalPaid))
}

func (suite *TestSuiteStandard) TestPaymentsConfirmFunded() {
	gift := suite.createTestGift(evenGift())

	for i, name := range []string{"Alice", "Bob", "Carol"} {
		checkout := suite.startPayment(map[string]any{"giftId": gift.ID, "shareIndex": i, "contributorName": name})
		suite.confirm(gift, checkout.Data.SessionID, http.StatusOK)
	}

	r := suite.request(http.MethodGet, gift.Links.Self, "")
	var response v1.GiftResponse
	test.DecodeResponse(suite.T(), r, &response)

	assert.Equal(suite.T(), models.GiftFunded, response.Data.Status)
	assert.True(suite.T(), response.Data.Progress.Remaining.IsZero())
	assert.True(suite.T(), decimal.NewFromInt(100).Equal(response.Data.Progress.Percent))

	// A funded gift does not accept payments anymore
	r = suite.request(http.MethodPost, "http://example.com/v1/payments", map[string]any{"giftId": gift.ID, "contributorName": "Dave", "amount": 20})
	test.AssertHTTPStatus(suite.T(), r, http.StatusConflict)
}

func (suite *TestSuiteStandard) TestPaymentsConfirmRejected() {
	gift := suite.createTestGift(evenGift())

	first := suite.startPayment(map[string]any{"giftId": gift.ID, "contributorName": "Alice", "amount": 100})
	second := suite.startPayment(map[string]any{"giftId": gift.ID, "contributorName": "Bob", "amount": 100})

	suite.confirm(gift, first.Data.SessionID, http.StatusOK)

	response := suite.confirm(gift, second.Data.SessionID, http.StatusBadRequest)
	assert.False(suite.T(), response.Applied)
	suite.Require().NotNil(response.Kind)
	assert.Equal(suite.T(), string(contribution.KindExceedsRemaining), *response.Kind)

	suite.Require().NotNil(response.Data)
	assert.True(suite.T(), decimal.NewFromInt(100).Equal(response.Data.Progress.TotalPaid))
	suite.Require().Len(response.Data.Contributions, 2)
	assert.Equal(suite.T(), contribution.StatusRejected, response.Data.Contributions[1].Status)
}

func (suite *TestSuiteStandard) TestPaymentsConfirmErrors() {
	gift := suite.createTestGift(evenGift())
	unpaid := suite.startPayment(map[string]any{"giftId": gift.ID, "contributorName": "Alice", "amount": 50})
	suite.provider.SetPaid(unpaid.Data.SessionID, false)

	tests := []struct {
		name   string
		body   any
		status int
		err    string
	}{
		{"Empty body", "", http.StatusBadRequest, "the request body must not be empty"},
		{"No session", map[string]any{"giftId": gift.ID}, http.StatusBadRequest, "sessionId is required"},
		{"No gift ID", map[string]any{"sessionId": unpaid.Data.SessionID}, http.StatusBadRequest, "the specified resource ID is not a valid UUID"},
		{"Unknown session", map[string]any{"giftId": gift.ID, "sessionId": "cs_mock_unknown"}, http.StatusNotFound, "there is no payment session with this ID"},
		{"Unpaid", map[string]any{"giftId": gift.ID, "sessionId": unpaid.Data.SessionID}, http.StatusPaymentRequired, "the payment for this session has not been completed"},
		{"Session of another gift", map[string]any{"giftId": "c1a96ae4-80e3-4827-8ed0-c7656f224fee", "sessionId": unpaid.Data.SessionID}, http.StatusPaymentRequired, "the payment for this session has not been completed"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.controller, t, http.MethodPost, "http://example.com/v1/payments/confirm", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.PaymentConfirmResponse
			test.DecodeResponse(t, &r, &response)

			assert.Nil(t, response.Data)
			assert.False(t, response.Applied)
			if assert.NotNil(t, response.Error) {
				assert.Equal(t, tt.err, *response.Error)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestPaymentsWebhook() {
	gift := suite.createTestGift(evenGift())
	checkout := suite.startPayment(map[string]any{"giftId": gift.ID, "shareIndex": 2, "contributorName": "Alice"})

	r := suite.request(http.MethodPost, "http://example.com/v1/payments/webhook", payment.MockEvent{
		Type:      payment.MockEventType,
		GiftID:    gift.ID.String(),
		SessionID: checkout.Data.SessionID,
	})
	test.AssertHTTPStatus(suite.T(), r, http.StatusNoContent)

	r = suite.request(http.MethodGet, gift.Links.Self, "")
	var response v1.GiftResponse
	test.DecodeResponse(suite.T(), r, &response)
	assert.True(suite.T(), decimal.NewFromInt(50).Equal(response.Data.PaidAmounts[2]))
	assert.Equal(suite.T(), contribution.StatusPaid, response.Data.Contributions[0].Status)

	// Retried deliveries are acknowledged without crediting again
	r = suite.request(http.MethodPost, "http://example.com/v1/payments/webhook", payment.MockEvent{
		Type:      payment.MockEventType,
		SessionID: checkout.Data.SessionID,
	})
	test.AssertHTTPStatus(suite.T(), r, http.StatusNoContent)

	r = suite.request(http.MethodGet, gift.Links.Self, "")
	test.DecodeResponse(suite.T(), r, &response)
	assert.True(suite.T(), decimal.NewFromInt(50).Equal(response.Data.Progress.TotalPaid))
}

func (suite *TestSuiteStandard) TestPaymentsWebhookErrors() {
	gift := suite.createTestGift(evenGift())
	checkout := suite.startPayment(map[string]any{"giftId": gift.ID, "contributorName": "Alice", "amount": 50})

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Empty body", "", http.StatusBadRequest},
		{"Broken JSON", `{ "type": `, http.StatusBadRequest},
		{"Ignored event", payment.MockEvent{Type: "checkout.session.expired", SessionID: checkout.Data.SessionID}, http.StatusNoContent},
		{"Unknown session", payment.MockEvent{Type: payment.MockEventType, SessionID: "cs_mock_unknown"}, http.StatusNotFound},
		{"Invalid gift ID", payment.MockEvent{Type: payment.MockEventType, GiftID: "not-a-uuid", SessionID: checkout.Data.SessionID}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.controller, t, http.MethodPost, "http://example.com/v1/payments/webhook", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}
