// Package payment creates hosted checkout sessions and confirms them.
package payment

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrSessionNotFound  = errors.New("there is no payment session with this ID")
	ErrInvalidSignature = errors.New("the webhook signature could not be verified")
	ErrInvalidPayload   = errors.New("the webhook payload could not be parsed")
	ErrIgnoredEvent     = errors.New("the webhook event does not confirm a payment")
)

// CheckoutRequest describes a contribution to be paid.
type CheckoutRequest struct {
	GiftID          string
	Description     string
	ContributorName string
	Amount          decimal.Decimal // Credited toward the gift
	Fee             decimal.Decimal // Charged on top
	ShareIndex      *int
	SuccessURL      string
	CancelURL       string
}

// Session is a created checkout session.
type Session struct {
	ID          string
	RedirectURL string
}

// Confirmation is a payment reported as completed by the provider.
type Confirmation struct {
	GiftID    string
	SessionID string
}

// Provider is a hosted checkout service.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (Session, error)

	// Verify reports whether the session has been paid.
	Verify(ctx context.Context, sessionID string) (bool, error)

	// ParseWebhook verifies a webhook delivery and extracts the confirmed payment.
	// Events that do not confirm a payment return ErrIgnoredEvent.
	ParseWebhook(payload []byte, signature string) (Confirmation, error)
}
