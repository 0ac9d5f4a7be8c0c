package contribution

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatMoney renders an amount in dollars with two decimals and
// thousands separators, e.g. "$1,250.00".
func FormatMoney(d decimal.Decimal) string {
	fixed := d.Round(2)

	sign := ""
	if fixed.IsNegative() {
		sign = "-"
		fixed = fixed.Neg()
	}

	s := fixed.StringFixed(2)
	return printer.Sprintf("%s$%d.%s", sign, fixed.IntPart(), s[len(s)-2:])
}

// FormatWholeMoney renders an amount in whole dollars, e.g. "$10,000".
func FormatWholeMoney(d decimal.Decimal) string {
	return printer.Sprintf("$%d", d.Round(0).IntPart())
}
