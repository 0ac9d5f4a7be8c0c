// Package gifts implements the gift operations on top of the contribution
// rules, a gift store and a payment provider.
package gifts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/giftsplit/backend/internal/contribution"
	"github.com/giftsplit/backend/internal/models"
	"github.com/giftsplit/backend/internal/payment"
	"github.com/giftsplit/backend/internal/store"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Service creates gifts and takes contributions for them.
type Service struct {
	store     store.Store
	provider  payment.Provider
	publicURL string
	now       func() time.Time
}

type Option func(*Service)

// WithClock sets the function used to read the current time.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New returns a service. publicURL is the base URL of the web application
// that share links and checkout redirects point to.
func New(s store.Store, p payment.Provider, publicURL string, opts ...Option) *Service {
	service := &Service{
		store:     s,
		provider:  p,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(service)
	}

	return service
}

// Ping checks that the store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

type CreateInput struct {
	Description    string
	Amount         decimal.Decimal
	SplitType      contribution.SplitType
	NumberOfPeople int
	CustomSplits   []decimal.Decimal
	OrganizerEmail string
}

// Create validates and stores a new gift.
func (s *Service) Create(ctx context.Context, in CreateInput) (models.Gift, error) {
	gift, err := models.NewGift(in.Description, contribution.Split{
		Total:  in.Amount,
		Type:   in.SplitType,
		People: in.NumberOfPeople,
		Custom: in.CustomSplits,
	}, in.OrganizerEmail, s.now())
	if err != nil {
		return models.Gift{}, err
	}

	if err := s.store.Put(ctx, gift); err != nil {
		return models.Gift{}, upstream(err)
	}

	giftsCreated.Inc()
	log.Info().Str("gift", gift.ID.String()).Str("amount", gift.Amount.String()).Msg("gift created")

	gift.Version = 1
	return gift, nil
}

// ShareLink returns the link contributors open to pay for the gift.
func (s *Service) ShareLink(id uuid.UUID) string {
	return fmt.Sprintf("%s/gift/%s", s.publicURL, id)
}

// Get returns the gift with its status at the current time.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (models.Gift, error) {
	gift, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrGiftNotFound) {
			return models.Gift{}, err
		}
		return models.Gift{}, upstream(err)
	}

	gift.Status = gift.StatusAt(s.now())
	return gift, nil
}

// Suggestions returns the quick-pick contribution amounts for the gift.
func (s *Service) Suggestions(ctx context.Context, id uuid.UUID) ([]contribution.Suggestion, error) {
	gift, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return contribution.Suggestions(gift.Progress().Remaining, gift.Amount), nil
}

type PaymentInput struct {
	GiftID          uuid.UUID
	ShareIndex      *int
	ContributorName string
	Amount          *decimal.Decimal // When nil, the amount of the share is used
	Message         string
}

// Checkout is a started payment for a contribution. Amount is credited
// toward the gift, Total is what the contributor is charged.
type Checkout struct {
	SessionID   string          `json:"sessionId" example:"cs_mock_4b1f9a0c2d3e4f5a"`
	RedirectURL string          `json:"redirectUrl" example:"https://checkout.stripe.com/mock?session=cs_mock_4b1f9a0c2d3e4f5a"`
	Amount      decimal.Decimal `json:"amount" example:"50"`
	Fee         decimal.Decimal `json:"fee" example:"0.5"`
	Total       decimal.Decimal `json:"total" example:"50.5"`
}

// RequestPayment validates a contribution, creates a checkout session for
// it and records it as pending on the gift.
func (s *Service) RequestPayment(ctx context.Context, in PaymentInput) (Checkout, error) {
	gift, err := s.Get(ctx, in.GiftID)
	if err != nil {
		return Checkout{}, err
	}

	if gift.Status != models.GiftPending {
		return Checkout{}, closed(gift.Status)
	}

	amount, err := contributionAmount(gift, in)
	if err != nil {
		return Checkout{}, err
	}

	name := strings.TrimSpace(in.ContributorName)
	amount, err = contribution.Validate(contribution.Request{
		ContributorName: name,
		Amount:          amount,
		GiftTotal:       gift.Amount,
		TotalPaid:       gift.Progress().TotalPaid,
		Share:           shareOf(gift, in.ShareIndex),
		Contributors:    gift.Contributors(),
	})
	if err != nil {
		return Checkout{}, err
	}

	fee := contribution.ProcessingFee
	session, err := s.provider.CreateCheckoutSession(ctx, payment.CheckoutRequest{
		GiftID:          gift.ID.String(),
		Description:     gift.Description,
		ContributorName: name,
		Amount:          amount,
		Fee:             fee,
		ShareIndex:      in.ShareIndex,
		SuccessURL:      fmt.Sprintf("%s?success=true&session_id={CHECKOUT_SESSION_ID}", s.ShareLink(gift.ID)),
		CancelURL:       fmt.Sprintf("%s?canceled=true", s.ShareLink(gift.ID)),
	})
	if err != nil {
		return Checkout{}, upstream(err)
	}

	pending := models.Contribution{
		ID:              session.ID,
		ContributorName: name,
		Amount:          amount,
		Fee:             fee,
		Message:         strings.TrimSpace(in.Message),
		ShareIndex:      in.ShareIndex,
		Status:          contribution.StatusPending,
		CreatedAt:       s.now().UTC(),
	}

	_, err = s.store.Update(ctx, gift.ID, func(g *models.Gift) error {
		g.Contributions = append(g.Contributions, pending)
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrGiftNotFound) {
			return Checkout{}, err
		}
		return Checkout{}, upstream(err)
	}

	checkoutsStarted.Inc()
	log.Info().Str("gift", gift.ID.String()).Str("session", session.ID).Str("amount", amount.String()).Msg("checkout started")

	return Checkout{
		SessionID:   session.ID,
		RedirectURL: session.RedirectURL,
		Amount:      amount,
		Fee:         fee,
		Total:       amount.Add(fee),
	}, nil
}

// contributionAmount returns the requested amount, or the amount of the
// selected share rounded to cents.
func contributionAmount(gift models.Gift, in PaymentInput) (decimal.Decimal, error) {
	if in.ShareIndex != nil {
		share, err := gift.Split().ShareAmount(*in.ShareIndex)
		if err != nil {
			return decimal.Zero, err
		}

		if in.Amount == nil {
			return share.Round(2), nil
		}
	}

	if in.Amount == nil {
		return decimal.Zero, &contribution.Error{
			Kind:    contribution.KindInvalidAmount,
			Message: "Please enter a valid amount",
		}
	}

	return *in.Amount, nil
}

// ConfirmPayment asks the provider whether the session has been paid and
// credits the contribution. See confirm for the semantics.
func (s *Service) ConfirmPayment(ctx context.Context, giftID uuid.UUID, sessionID string) (models.Gift, bool, error) {
	paid, err := s.provider.Verify(ctx, sessionID)
	if err != nil {
		if errors.Is(err, payment.ErrSessionNotFound) {
			return models.Gift{}, false, ErrSessionNotFound
		}
		return models.Gift{}, false, upstream(err)
	}

	if !paid {
		return models.Gift{}, false, ErrPaymentNotCompleted
	}

	return s.confirm(ctx, giftID, sessionID)
}

// HandleWebhook confirms the payment reported by a provider webhook.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) (models.Gift, bool, error) {
	confirmation, err := s.provider.ParseWebhook(payload, signature)
	if err != nil {
		if errors.Is(err, payment.ErrSessionNotFound) {
			return models.Gift{}, false, ErrSessionNotFound
		}
		return models.Gift{}, false, err
	}

	giftID, err := uuid.Parse(confirmation.GiftID)
	if err != nil {
		return models.Gift{}, false, ErrInvalidGiftID
	}

	return s.confirm(ctx, giftID, confirmation.SessionID)
}

// errUnchanged aborts an update that has nothing to write.
var errUnchanged = errors.New("unchanged")

// confirm credits a paid contribution to the gift exactly once.
//
// It reports whether the contribution was credited by this call. A
// contribution that was already processed is left alone. The rules are
// checked again against the current gift, so a contribution that lost a
// race for the remaining amount or the name is marked rejected instead of
// credited, and the rejection is returned.
func (s *Service) confirm(ctx context.Context, giftID uuid.UUID, sessionID string) (models.Gift, bool, error) {
	var (
		applied  bool
		rejected error
		credited models.Contribution
	)

	gift, err := s.store.Update(ctx, giftID, func(g *models.Gift) error {
		applied = false
		rejected = nil
		now := s.now().UTC()

		i := g.ContributionIndex(sessionID)
		if i < 0 {
			return ErrContributionNotFound
		}

		expire := g.StatusAt(now) != g.Status
		if expire {
			g.Status = g.StatusAt(now)
		}

		c := &g.Contributions[i]
		if c.Status != contribution.StatusPending {
			if expire {
				return nil
			}
			return errUnchanged
		}

		rejected = check(*g, *c)
		if rejected != nil {
			c.Status = contribution.StatusRejected
			credited = *c
			return nil
		}

		shares, err := g.Split().Shares()
		if err != nil {
			return err
		}

		paid, err := contribution.Allocate(g.PaidAmounts, shares, c.Amount, c.ShareIndex)
		if err != nil {
			return err
		}

		g.PaidAmounts = paid
		c.Status = contribution.StatusPaid
		c.PaidAt = &now
		credited = *c
		applied = true

		if contribution.Funded(g.Amount, g.PaidAmounts, shares) {
			g.Status = models.GiftFunded
		}

		return nil
	})

	if errors.Is(err, errUnchanged) {
		gift, err = s.Get(ctx, giftID)
		return gift, false, err
	}

	if err != nil {
		if errors.Is(err, store.ErrGiftNotFound) || errors.Is(err, ErrContributionNotFound) {
			return models.Gift{}, false, err
		}

		var ruleErr *contribution.Error
		if errors.As(err, &ruleErr) {
			return models.Gift{}, false, err
		}

		return models.Gift{}, false, upstream(err)
	}

	if rejected != nil {
		kind := string(contribution.KindValidation)
		var ruleErr *contribution.Error
		if errors.As(rejected, &ruleErr) {
			kind = string(ruleErr.Kind)
		}
		contributionsRejected.WithLabelValues(kind).Inc()

		log.Warn().
			Str("gift", giftID.String()).
			Str("session", sessionID).
			Str("contributor", credited.ContributorName).
			Str("amount", credited.Amount.String()).
			Str("kind", kind).
			Msg("paid contribution rejected, the payment needs to be refunded")

		return gift, false, rejected
	}

	if applied {
		contributionsConfirmed.Inc()
		amountConfirmed.Add(credited.Amount.InexactFloat64())

		log.Info().
			Str("gift", giftID.String()).
			Str("session", sessionID).
			Str("amount", credited.Amount.String()).
			Str("status", string(gift.Status)).
			Msg("contribution confirmed")
	}

	return gift, applied, nil
}

// check decides whether a pending contribution can still be credited to the gift.
func check(g models.Gift, c models.Contribution) error {
	if g.Status != models.GiftPending {
		return closed(g.Status)
	}

	_, err := contribution.Validate(contribution.Request{
		ContributorName: c.ContributorName,
		Amount:          c.Amount,
		GiftTotal:       g.Amount,
		TotalPaid:       g.Progress().TotalPaid,
		Share:           shareOf(g, c.ShareIndex),
		Contributors:    g.Contributors(),
	})

	return err
}

// shareOf returns the rounded amount of the share at index, or nil when no
// share is selected or it does not exist.
func shareOf(g models.Gift, index *int) *decimal.Decimal {
	if index == nil {
		return nil
	}

	shares, err := g.Split().Shares()
	if err != nil || *index < 0 || *index >= len(shares) {
		return nil
	}

	return &shares[*index]
}
