package v1

import (
	"github.com/giftsplit/backend/internal/gifts"
	ez_uuid "github.com/giftsplit/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

type PaymentEditable struct {
	GiftID          ez_uuid.UUID     `json:"giftId" example:"c1a96ae4-80e3-4827-8ed0-c7656f224fee"`         // The gift to contribute to
	ShareIndex      *int             `json:"shareIndex,omitempty" example:"1" binding:"omitempty,min=0"`    // Pay for this share. Zero-based
	ContributorName string           `json:"contributorName" example:"Alice" binding:"max=50"`              // Shown to the organizer and other contributors
	Amount          *decimal.Decimal `json:"amount,omitempty" example:"50"`                                 // Defaults to the amount of the share when a share is selected
	Message         string           `json:"message,omitempty" example:"Happy birthday!" binding:"max=500"` // Optional message for the recipient
}

// model returns the service input for the API representation of the payment request
func (editable PaymentEditable) model() gifts.PaymentInput {
	return gifts.PaymentInput{
		GiftID:          editable.GiftID.UUID,
		ShareIndex:      editable.ShareIndex,
		ContributorName: editable.ContributorName,
		Amount:          editable.Amount,
		Message:         editable.Message,
	}
}

type PaymentResponse struct {
	Error *string         `json:"error" example:"Minimum contribution is $15.00"` // The error, if any occurred
	Kind  *string         `json:"kind,omitempty" example:"BelowMinimum"`          // The rule that rejected the request, if any
	Data  *gifts.Checkout `json:"data"`                                           // The checkout session to redirect the contributor to
}

type PaymentConfirmEditable struct {
	GiftID    ez_uuid.UUID `json:"giftId" example:"c1a96ae4-80e3-4827-8ed0-c7656f224fee"`
	SessionID string       `json:"sessionId" example:"cs_mock_4b1f9a0c2d3e4f5a" binding:"required"`
}

type PaymentConfirmResponse struct {
	Error   *string `json:"error" example:"the payment for this session has not been completed"` // The error, if any occurred
	Kind    *string `json:"kind,omitempty" example:"ExceedsRemaining"`                           // The rule that rejected the contribution, if any
	Applied bool    `json:"applied" example:"true"`                                              // If this request credited the contribution
	Data    *Gift   `json:"data"`                                                                // The gift after the confirmation
}
