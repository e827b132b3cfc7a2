// Package format renders amounts for human-readable output.
package format

import (
	"github.com/iwvelando/mortgage-calc/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency returns an amount with thousands separators, two decimals and a
// euro sign (e.g., "-1,234.56 €").
func Currency(amount float64) string {
	return printer.Sprintf("%.2f €", mathutil.Round(amount))
}

// NumericCurrency returns an amount with separators but without a currency
// symbol (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	return printer.Sprintf("%.2f", mathutil.Round(amount))
}

// Percent returns a percentage with two decimals (e.g., "3.25%").
func Percent(pct float64) string {
	return printer.Sprintf("%.2f%%", pct)
}
