package contribution

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// ValidateGift checks the parameters a gift is created with.
//
// Custom shares must add up to the total exactly.
func ValidateGift(description string, split Split) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return newError(KindValidation, "Gift description is required")
	}

	if utf8.RuneCountInString(description) > MaximumDescriptionLength {
		return newError(KindValidation, "Description must be %d characters or less", MaximumDescriptionLength)
	}

	if !split.Total.IsPositive() {
		return newError(KindValidation, "Please enter a valid amount")
	}

	if split.Total.GreaterThan(MaximumGiftAmount) {
		return newError(KindValidation, "Maximum amount is %s", FormatWholeMoney(MaximumGiftAmount))
	}

	if split.People > MaximumPeople {
		return newError(KindValidation, "Maximum %d people", MaximumPeople)
	}

	if err := split.Validate(); err != nil {
		return err
	}

	if split.Type != SplitCustom {
		return nil
	}

	sum := decimal.Zero
	for _, share := range split.Custom {
		if !share.IsPositive() {
			return newError(KindValidation, "Custom split amounts must be larger than zero")
		}
		sum = sum.Add(share)
	}

	if !sum.Equal(split.Total) {
		return newError(KindValidation, "Custom splits must add up to the gift amount of %s", FormatMoney(split.Total))
	}

	return nil
}
