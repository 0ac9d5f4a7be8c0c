// Package store persists gift documents.
//
// All implementations apply updates as an atomic read-modify-write on a
// single gift, so concurrent contributions never overwrite each other.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/giftsplit/backend/internal/models"
	"github.com/google/uuid"
)

var (
	ErrGiftNotFound = fmt.Errorf("%w gift matching your query", models.ErrResourceNotFound)
	ErrGiftExists   = errors.New("a gift with this ID already exists")
	ErrConflict     = errors.New("the gift was modified concurrently, please try again")
)

// maxAttempts is how often an update function is applied before giving up
// on a gift that keeps changing underneath it.
const maxAttempts = 5

// UpdateFunc modifies a gift in place. It may be called more than once
// and must only depend on the gift it is passed.
type UpdateFunc func(*models.Gift) error

// Store is a key-value store for gifts.
type Store interface {
	// Get returns the gift or ErrGiftNotFound.
	Get(ctx context.Context, id uuid.UUID) (models.Gift, error)

	// Put creates the gift. It fails with ErrGiftExists if the ID is taken.
	Put(ctx context.Context, gift models.Gift) error

	// Update atomically applies fn to the stored gift and returns the
	// result. If fn returns an error, nothing is written.
	Update(ctx context.Context, id uuid.UUID, fn UpdateFunc) (models.Gift, error)

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
}

// retry applies an optimistic update until it does not conflict.
func retry(ctx context.Context, attempt func() (models.Gift, error)) (models.Gift, error) {
	var err error
	for i := 0; i < maxAttempts; i++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return models.Gift{}, ctxErr
		}

		var gift models.Gift
		gift, err = attempt()
		if !errors.Is(err, ErrConflict) {
			return gift, err
		}
	}

	return models.Gift{}, err
}
