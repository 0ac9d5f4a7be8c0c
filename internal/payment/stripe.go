package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

const eventCheckoutSessionCompleted = "checkout.session.completed"

// CheckoutSessionAPI is the part of the Stripe client the provider uses.
type CheckoutSessionAPI interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	Get(id string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// Stripe creates Stripe Checkout Sessions in payment mode.
type Stripe struct {
	sessions      CheckoutSessionAPI
	webhookSecret string
	currency      string
}

// NewStripe returns a provider using the Stripe API with the secret key.
func NewStripe(secretKey, webhookSecret string) *Stripe {
	sc := client.New(secretKey, nil)
	return NewStripeWithAPI(sc.CheckoutSessions, webhookSecret)
}

// NewStripeWithAPI returns a provider using the given checkout session API.
func NewStripeWithAPI(sessions CheckoutSessionAPI, webhookSecret string) *Stripe {
	return &Stripe{
		sessions:      sessions,
		webhookSecret: webhookSecret,
		currency:      string(stripe.CurrencyUSD),
	}
}

func (s *Stripe) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (Session, error) {
	share := "Contribution"
	if req.ShareIndex != nil {
		share = fmt.Sprintf("Share %d", *req.ShareIndex+1)
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		ClientReferenceID:  stripe.String(req.GiftID),
		SuccessURL:         stripe.String(req.SuccessURL),
		CancelURL:          stripe.String(req.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			s.lineItem(fmt.Sprintf("Gift contribution: %s", req.Description), fmt.Sprintf("%s from %s", share, req.ContributorName), req.Amount),
			s.lineItem("Processing Fee", "Payment processing fee", req.Fee),
		},
	}
	params.Context = ctx

	params.AddMetadata("giftId", req.GiftID)
	params.AddMetadata("contributorName", req.ContributorName)
	if req.ShareIndex != nil {
		params.AddMetadata("shareIndex", strconv.Itoa(*req.ShareIndex))
	}

	session, err := s.sessions.New(params)
	if err != nil {
		return Session{}, fmt.Errorf("failed to create Stripe checkout session: %w", err)
	}

	return Session{
		ID:          session.ID,
		RedirectURL: session.URL,
	}, nil
}

func (s *Stripe) lineItem(name, description string, amount decimal.Decimal) *stripe.CheckoutSessionLineItemParams {
	return &stripe.CheckoutSessionLineItemParams{
		PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency: stripe.String(s.currency),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name:        stripe.String(name),
				Description: stripe.String(description),
			},
			UnitAmount: stripe.Int64(Cents(amount)),
		},
		Quantity: stripe.Int64(1),
	}
}

func (s *Stripe) Verify(ctx context.Context, sessionID string) (bool, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	session, err := s.sessions.Get(sessionID, params)
	if err != nil {
		if stripeErr, ok := err.(*stripe.Error); ok && stripeErr.HTTPStatusCode == 404 {
			return false, ErrSessionNotFound
		}
		return false, fmt.Errorf("failed to retrieve Stripe checkout session: %w", err)
	}

	return session.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid, nil
}

// ParseWebhook verifies the Stripe-Signature header and extracts paid
// checkout.session.completed events.
func (s *Stripe) ParseWebhook(payload []byte, signature string) (Confirmation, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, s.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return Confirmation{}, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}

	if string(event.Type) != eventCheckoutSessionCompleted {
		return Confirmation{}, ErrIgnoredEvent
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return Confirmation{}, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	if session.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		return Confirmation{}, ErrIgnoredEvent
	}

	giftID := session.Metadata["giftId"]
	if giftID == "" {
		giftID = session.ClientReferenceID
	}

	return Confirmation{
		GiftID:    giftID,
		SessionID: session.ID,
	}, nil
}

// Cents converts an amount in dollars to cents, rounding half away from zero.
func Cents(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
