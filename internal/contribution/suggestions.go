package contribution

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Suggestion is a quick-pick contribution amount. The custom entry has no amount.
type Suggestion struct {
	Label      string           `json:"label" example:"25%"`
	Percentage int              `json:"percentage,omitempty" example:"25"`
	Amount     *decimal.Decimal `json:"amount,omitempty" example:"37.5"`
	Custom     bool             `json:"custom" example:"false"`
}

var suggestedPercentages = []int{25, 50, 100}

// Suggestions returns the quick-pick amounts for a gift in the order
// 25%, 50%, 100%, custom.
//
// The 25% and 50% amounts are rounded to whole currency units. Every
// amount is capped at the remaining amount and dropped when it is below
// the minimum contribution. The custom entry is always present.
func Suggestions(remaining, total decimal.Decimal) []Suggestion {
	minimum := MinimumContribution(total)
	suggestions := make([]Suggestion, 0, len(suggestedPercentages)+1)

	for _, percentage := range suggestedPercentages {
		amount := total
		if percentage < 100 {
			amount = total.Mul(decimal.NewFromInt(int64(percentage))).Div(decimal.NewFromInt(100)).Round(0)
		}
		amount = decimal.Min(amount, remaining)

		if amount.LessThan(minimum) {
			continue
		}

		suggestions = append(suggestions, Suggestion{
			Label:      fmt.Sprintf("%d%%", percentage),
			Percentage: percentage,
			Amount:     &amount,
		})
	}

	return append(suggestions, Suggestion{
		Label:  "Custom",
		Custom: true,
	})
}
