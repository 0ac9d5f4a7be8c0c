package contribution

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Request is a proposed contribution together with the state of the gift
// it is made for.
type Request struct {
	ContributorName string
	Amount          decimal.Decimal
	GiftTotal       decimal.Decimal
	TotalPaid       decimal.Decimal

	// Share is the rounded amount of the share being paid, if any. It caps
	// the minimum contribution so that every share can be paid.
	Share *decimal.Decimal

	// Names of everyone who already contributed
	Contributors []string
}

// Validate decides whether a contribution is acceptable. Rules are
// evaluated in a fixed order and the first failing rule is returned.
//
// The platform ceiling is checked before the remaining amount. Gift totals
// never exceed the ceiling, so checking the remaining amount first would
// hide the ceiling for every gift. See "Rule order" in DESIGN.md.
//
// On success, the amount is returned unmodified.
func Validate(r Request) (decimal.Decimal, error) {
	name := strings.TrimSpace(r.ContributorName)
	if name == "" {
		return decimal.Zero, newError(KindMissingName, "Please enter your name")
	}

	if !r.Amount.IsPositive() {
		return decimal.Zero, newError(KindInvalidAmount, "Please enter a valid amount")
	}

	minimum := MinimumContribution(r.GiftTotal)
	if r.Share != nil && r.Share.LessThan(minimum) {
		if r.Amount.LessThan(*r.Share) {
			return decimal.Zero, newError(KindBelowMinimum, "Minimum contribution for this share is %s", FormatMoney(*r.Share))
		}
	} else if r.Amount.LessThan(minimum) {
		return decimal.Zero, newError(KindBelowMinimum, "Minimum contribution is %s (10%% of total or %s, whichever is greater)", FormatMoney(minimum), FormatWholeMoney(MinimumContributionFloor))
	}

	if r.Amount.GreaterThan(MaximumContribution) {
		return decimal.Zero, newError(KindExceedsMaximum, "Maximum contribution amount is %s", FormatWholeMoney(MaximumContribution))
	}

	remaining := Remaining(r.GiftTotal, r.TotalPaid)
	if r.Amount.GreaterThan(remaining) {
		return decimal.Zero, newError(KindExceedsRemaining, "Maximum contribution cannot exceed the remaining amount: %s", FormatMoney(remaining))
	}

	for _, existing := range r.Contributors {
		if strings.EqualFold(strings.TrimSpace(existing), name) {
			return decimal.Zero, newError(KindDuplicateContributor, "You have already contributed to this gift. Please use a different name.")
		}
	}

	return r.Amount, nil
}
