package contribution

import (
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusPaid     Status = "paid"
	StatusRejected Status = "rejected"
)

// Entry is the part of a contribution the aggregator needs.
type Entry struct {
	Name   string
	Amount decimal.Decimal
	Status Status
}

// Progress is the funding state of a gift.
type Progress struct {
	TotalPaid decimal.Decimal `json:"totalPaid" example:"75"`
	Remaining decimal.Decimal `json:"remaining" example:"75"`
	Percent   decimal.Decimal `json:"percent" example:"50"`
}

var hundred = decimal.NewFromInt(100)

// Aggregate sums up the paid entries and computes the remaining amount
// and the progress percentage. Pending and rejected entries are ignored.
func Aggregate(total decimal.Decimal, entries []Entry) Progress {
	paid := decimal.Zero
	for _, e := range entries {
		if e.Status == StatusPaid {
			paid = paid.Add(e.Amount)
		}
	}

	return Progress{
		TotalPaid: paid,
		Remaining: Remaining(total, paid),
		Percent:   Percent(total, paid),
	}
}

// Remaining is total minus paid, never below zero.
func Remaining(total, paid decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, total.Sub(paid))
}

// Percent is paid as a percentage of total, clamped to [0, 100].
func Percent(total, paid decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}

	p := paid.Div(total).Mul(hundred)
	if p.IsNegative() {
		return decimal.Zero
	}

	return decimal.Min(p, hundred)
}

// Funded reports whether a gift has collected its total. A gift is also
// funded when every paid slot covers its rounded share, so even splits
// that do not divide into cents can be completed share by share.
func Funded(total decimal.Decimal, paid, shares []decimal.Decimal) bool {
	if !Sum(paid).LessThan(total) {
		return true
	}

	if len(paid) == 0 || len(paid) != len(shares) {
		return false
	}

	for i := range paid {
		if paid[i].LessThan(shares[i]) {
			return false
		}
	}

	return true
}
