package gifts

import (
	"errors"
	"fmt"

	"github.com/giftsplit/backend/internal/contribution"
	"github.com/giftsplit/backend/internal/models"
)

var (
	// ErrUpstream wraps failures of the store or the payment provider.
	ErrUpstream = fmt.Errorf("%w", models.ErrGeneral)

	ErrSessionNotFound      = fmt.Errorf("%w payment session with this ID", models.ErrResourceNotFound)
	ErrContributionNotFound = fmt.Errorf("%w contribution for this payment session on the gift", models.ErrResourceNotFound)
	ErrPaymentNotCompleted  = errors.New("the payment for this session has not been completed")
	ErrInvalidGiftID        = errors.New("the gift ID of the payment is not a valid UUID")
)

func upstream(err error) error {
	return fmt.Errorf("%w: %w", ErrUpstream, err)
}

// closed returns the GiftClosed error for a gift that no longer accepts contributions.
func closed(status models.GiftStatus) error {
	message := "This gift is no longer accepting contributions"
	switch status {
	case models.GiftExpired:
		message = "This gift has expired and is no longer accepting contributions"
	case models.GiftFunded:
		message = "This gift has already been fully funded"
	}

	return &contribution.Error{
		Kind:    contribution.KindGiftClosed,
		Message: message,
	}
}
