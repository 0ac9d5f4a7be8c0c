package store

import (
	"context"
	"sync"
	"time"

	"github.com/giftsplit/backend/internal/models"
	"github.com/google/uuid"
)

// Memory keeps gifts in a map. It is used for tests and demo deployments.
type Memory struct {
	mu    sync.Mutex
	gifts map[uuid.UUID]models.Gift
}

func NewMemory() *Memory {
	return &Memory{
		gifts: make(map[uuid.UUID]models.Gift),
	}
}

func (m *Memory) Get(_ context.Context, id uuid.UUID) (models.Gift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	gift, ok := m.gifts[id]
	if !ok {
		return models.Gift{}, ErrGiftNotFound
	}

	return gift.Copy(), nil
}

func (m *Memory) Put(_ context.Context, gift models.Gift) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.gifts[gift.ID]; ok {
		return ErrGiftExists
	}

	gift.Version = 1
	m.gifts[gift.ID] = gift.Copy()
	return nil
}

// Update holds the lock while fn runs, so it never conflicts.
func (m *Memory) Update(_ context.Context, id uuid.UUID, fn UpdateFunc) (models.Gift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.gifts[id]
	if !ok {
		return models.Gift{}, ErrGiftNotFound
	}

	gift := stored.Copy()
	if err := fn(&gift); err != nil {
		return models.Gift{}, err
	}

	gift.ID = id
	gift.Version = stored.Version + 1
	gift.UpdatedAt = time.Now().UTC()
	m.gifts[id] = gift.Copy()

	return gift, nil
}

func (m *Memory) Ping(_ context.Context) error {
	return nil
}
