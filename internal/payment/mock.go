package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MockEventType is the webhook event type the mock provider accepts.
const MockEventType = "checkout.session.completed"

// Mock is a provider that never talks to a payment service. Every session
// it creates is reported as paid unless marked otherwise.
type Mock struct {
	mu       sync.Mutex
	sessions map[string]mockSession
}

type mockSession struct {
	request CheckoutRequest
	paid    bool
}

// MockEvent is the webhook payload understood by the mock provider.
type MockEvent struct {
	Type      string `json:"type"`
	GiftID    string `json:"giftId"`
	SessionID string `json:"sessionId"`
}

func NewMock() *Mock {
	return &Mock{
		sessions: make(map[string]mockSession),
	}
}

func (m *Mock) CreateCheckoutSession(_ context.Context, req CheckoutRequest) (Session, error) {
	id := "cs_mock_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]

	m.mu.Lock()
	m.sessions[id] = mockSession{request: req, paid: true}
	m.mu.Unlock()

	query := url.Values{}
	query.Set("session", id)
	query.Set("gift", req.GiftID)
	query.Set("amount", req.Amount.Add(req.Fee).StringFixed(2))
	query.Set("name", req.ContributorName)

	return Session{
		ID:          id,
		RedirectURL: fmt.Sprintf("https://checkout.stripe.com/mock?%s", query.Encode()),
	}, nil
}

func (m *Mock) Verify(_ context.Context, sessionID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return false, ErrSessionNotFound
	}

	return s.paid, nil
}

// SetPaid changes the payment state reported for a session.
func (m *Mock) SetPaid(sessionID string, paid bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[sessionID]; ok {
		s.paid = paid
		m.sessions[sessionID] = s
	}
}

// ParseWebhook accepts a MockEvent without any signature.
func (m *Mock) ParseWebhook(payload []byte, _ string) (Confirmation, error) {
	var event MockEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return Confirmation{}, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	if event.Type != MockEventType {
		return Confirmation{}, ErrIgnoredEvent
	}

	m.mu.Lock()
	s, ok := m.sessions[event.SessionID]
	m.mu.Unlock()

	if !ok {
		return Confirmation{}, ErrSessionNotFound
	}

	giftID := event.GiftID
	if giftID == "" {
		giftID = s.request.GiftID
	}

	return Confirmation{
		GiftID:    giftID,
		SessionID: event.SessionID,
	}, nil
}
