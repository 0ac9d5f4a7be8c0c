// Package contribution holds the money rules for group gifts: how a total
// is split into shares, which contributions are accepted, what amounts are
// suggested and how funding progress is computed.
//
// Everything in this package is pure. Callers are responsible for loading
// and persisting gifts.
package contribution

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	// MaximumContribution is the platform ceiling for a single contribution.
	MaximumContribution = decimal.NewFromInt(10000)

	// MaximumGiftAmount is the largest target a gift can be created with.
	MaximumGiftAmount = decimal.NewFromInt(10000)

	// MinimumContributionFloor is the lowest minimum contribution for any gift.
	MinimumContributionFloor = decimal.NewFromInt(2)

	// MinimumContributionRate is the share of the gift total a contribution must reach.
	MinimumContributionRate = decimal.RequireFromString("0.10")

	// ProcessingFee is charged on top of every contribution and never credited to the gift.
	ProcessingFee = decimal.RequireFromString("0.50")
)

const (
	MinimumPeople            = 2
	MaximumPeople            = 20
	MaximumDescriptionLength = 50
	MaximumNameLength        = 50

	// GiftLifetime is the time between creation and expiry of a gift.
	GiftLifetime = 7 * 24 * time.Hour
)

// MinimumContribution returns max(2, total × 0.10).
func MinimumContribution(total decimal.Decimal) decimal.Decimal {
	return decimal.Max(MinimumContributionFloor, total.Mul(MinimumContributionRate))
}

// CheckoutTotal is the amount charged for a contribution including the processing fee.
func CheckoutTotal(amount decimal.Decimal) decimal.Decimal {
	return amount.Add(ProcessingFee)
}
