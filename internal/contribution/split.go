package contribution

import (
	"github.com/shopspring/decimal"
)

type SplitType string

const (
	SplitEven   SplitType = "even"
	SplitCustom SplitType = "custom"
)

// Split describes how a gift total is divided into shares.
type Split struct {
	Total  decimal.Decimal
	Type   SplitType
	People int
	Custom []decimal.Decimal
}

// Validate checks the shape of the split. It does not check that custom
// shares add up to the total, see ValidateGift for that.
func (s Split) Validate() error {
	if s.People < MinimumPeople {
		return newError(KindValidation, "Need at least %d people", MinimumPeople)
	}

	switch s.Type {
	case SplitEven:
		return nil
	case SplitCustom:
		if len(s.Custom) != s.People {
			return newError(KindValidation, "Custom splits must contain one amount per person")
		}
		return nil
	default:
		return newError(KindValidation, "Split type must be either even or custom")
	}
}

// ShareAmount returns the nominal amount of the share at index.
//
// Even shares are the exact quotient of total and people, without rounding.
func (s Split) ShareAmount(index int) (decimal.Decimal, error) {
	if err := s.Validate(); err != nil {
		return decimal.Zero, err
	}

	if index < 0 || index >= s.People {
		return decimal.Zero, newError(KindValidation, "Share %d does not exist, the gift has %d shares", index, s.People)
	}

	if s.Type == SplitCustom {
		return s.Custom[index], nil
	}

	return s.Total.Div(decimal.NewFromInt(int64(s.People))), nil
}

// Shares returns every share rounded half away from zero to cents.
// Even shares are not adjusted for the rounding remainder, so 100 split
// three ways yields 33.33 three times.
func (s Split) Shares() ([]decimal.Decimal, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	shares := make([]decimal.Decimal, s.People)
	for i := range shares {
		share, err := s.ShareAmount(i)
		if err != nil {
			return nil, err
		}
		shares[i] = share.Round(2)
	}

	return shares, nil
}
