package tax

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY HELPERS - All monetary values are decimal.Decimal rounded to cents
// =============================================================================

var (
	two        = decimal.NewFromInt(2)
	three      = decimal.NewFromInt(3)
	twelve     = decimal.NewFromInt(12)
	thirty     = decimal.NewFromInt(30)
	oneHundred = decimal.NewFromInt(100)
)

// Cents rounds a monetary value to two decimal places, half away from zero.
// Rounding happens at every intermediate step documented in the calculation
// rules (per bracket tranche, per provision component, per breakdown field),
// never only at the final total - historical persisted figures were produced
// that way and reordering the rounding drifts by cents.
func Cents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FromFloat converts a float at the API edge into a cent-rounded decimal.
// Domain code never carries floats; they exist only in DTOs.
func FromFloat(f float64) decimal.Decimal {
	return Cents(decimal.NewFromFloat(f))
}

// MustParse converts a numeric literal string into a decimal, panicking on
// malformed input. Only used for statutory table constants.
func MustParse(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic("tax: bad monetary literal " + s)
	}
	return d
}

// Pct builds a rate from a percentage literal, e.g. Pct("7.5") == 0.075.
func Pct(s string) decimal.Decimal {
	return MustParse(s).Div(oneHundred)
}

func maxZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
