// format.go - French-locale presentation helpers.
//
// Rounding happens here and only here; calculation code keeps full
// decimal precision.
package labor

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatHours renders an hour count the French way: comma decimal
// separator, trailing "h", at most one decimal place.
//
//	FormatHours(dec("39.5")) == "39,5 h"
//	FormatHours(dec("40"))   == "40 h"
func FormatHours(hours decimal.Decimal) string {
	s := hours.Round(1).String()
	s = strings.ReplaceAll(s, ".", ",")
	return s + " h"
}

// FormatCurrency renders a euro amount the French way: two decimals with a
// comma separator, non-breaking thin spaces as thousands separators, and a
// trailing euro sign.
//
//	FormatCurrency(dec("1234.5")) == "1 234,50 €"
func FormatCurrency(amount decimal.Decimal) string {
	s := amount.StringFixed(2)

	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	parts := strings.SplitN(s, ".", 2)
	whole, frac := parts[0], parts[1]

	var b strings.Builder
	if negative {
		b.WriteString("-")
	}
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(" ")
		}
		b.WriteRune(digit)
	}
	b.WriteString(",")
	b.WriteString(frac)
	b.WriteString(" €")
	return b.String()
}
