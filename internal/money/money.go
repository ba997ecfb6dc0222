// Package money holds the decimal parsing and formatting rules for
// user-entered quantities and currency amounts. Form fields arrive as free
// text and may be empty or half-typed, so parsing never fails: anything that
// is not a number is coerced to zero.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Zero is decimal zero.
var Zero = decimal.Zero

// Parse converts user-entered numeric text to a decimal. Empty, malformed or
// otherwise non-numeric input yields zero so that incomplete forms keep
// working.
func Parse(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero
	}
	return d
}

// ItemAmount derives a line-item amount from its quantity and rate text
// fields: round(quantity * rate, 2). Either side failing to parse gives zero.
func ItemAmount(quantity, rate string) decimal.Decimal {
	return Parse(quantity).Mul(Parse(rate)).Round(2)
}

// Sum accumulates decimals without intermediate rounding. Totals are built by
// summing raw products first and rounding once at the end, which avoids
// compounding per-item rounding error.
func Sum(values []decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}

// Format renders an amount with exactly two fraction digits and no digit
// grouping. This is the stored/wire representation.
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatDisplay renders an amount with two fraction digits and en-IN digit
// grouping (1,23,456.78). Grouping is presentation-only and never feeds back
// into stored values.
func FormatDisplay(d decimal.Decimal) string {
	s := d.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart := s[:len(s)-3]
	fracPart := s[len(s)-3:]

	grouped := groupIndian(intPart)
	if neg {
		return "-" + grouped + fracPart
	}
	return grouped + fracPart
}

// groupIndian inserts en-IN separators: the last three digits form one group,
// the rest are grouped in twos.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}

	return strings.Join(append(groups, tail), ",")
}
