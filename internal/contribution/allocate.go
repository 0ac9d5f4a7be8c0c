package contribution

import (
	"github.com/shopspring/decimal"
)

// Allocate credits amount to the paid share slots and returns the new slots.
// The input slice is not modified.
//
// With a share index, the whole amount goes to that slot. Without one, the
// slots are filled in order up to their share and anything left over is
// added to the last slot. Either way the slots grow by exactly amount.
func Allocate(paid, shares []decimal.Decimal, amount decimal.Decimal, shareIndex *int) ([]decimal.Decimal, error) {
	if len(paid) == 0 || len(paid) != len(shares) {
		return nil, newError(KindValidation, "The gift has %d paid slots for %d shares", len(paid), len(shares))
	}

	out := make([]decimal.Decimal, len(paid))
	copy(out, paid)

	if shareIndex != nil {
		if *shareIndex < 0 || *shareIndex >= len(out) {
			return nil, newError(KindValidation, "Share %d does not exist, the gift has %d shares", *shareIndex, len(out))
		}

		out[*shareIndex] = out[*shareIndex].Add(amount)
		return out, nil
	}

	left := amount
	for i := range out {
		if !left.IsPositive() {
			break
		}

		open := shares[i].Sub(out[i])
		if !open.IsPositive() {
			continue
		}

		credit := decimal.Min(open, left)
		out[i] = out[i].Add(credit)
		left = left.Sub(credit)
	}

	if left.IsPositive() {
		last := len(out) - 1
		out[last] = out[last].Add(left)
	}

	return out, nil
}

// Sum adds up amounts.
func Sum(amounts []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, a := range amounts {
		sum = sum.Add(a)
	}
	return sum
}
