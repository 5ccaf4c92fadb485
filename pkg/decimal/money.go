package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a display-side monetary amount. Projections run on float64; values are
// converted to Money only when they are rounded, totalled or printed.
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// Round rounds the money amount to cents
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// Annual converts a monthly amount to annual
func (m Money) Annual() Money {
	return Money{m.Decimal.Mul(decimal.NewFromInt(12))}
}

// Add adds another Money amount
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub subtracts another Money amount
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// Sum totals a list of amounts.
func Sum(values ...Money) Money {
	total := Zero()
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}

// String returns the amount fixed to two decimals
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount with a currency symbol and thousands separators,
// e.g. "$1,234,567.89" or "-$12.50".
func (m Money) Format() string {
	return m.FormatWith("$")
}

// FormatWith is Format with a caller supplied currency symbol.
func (m Money) FormatWith(symbol string) string {
	s := m.Decimal.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if m.Round().IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(symbol)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// Fixed renders a plain number rounded to the given number of decimals.
func Fixed(value float64, places int32) string {
	return decimal.NewFromFloat(value).StringFixed(places)
}

// Percent renders a percentage value with the given number of decimals, e.g. "5.26%".
func Percent(value float64, places int32) string {
	return Fixed(value, places) + "%"
}
