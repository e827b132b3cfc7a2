// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/mortgage-calc/pkg/constants"
	"github.com/shopspring/decimal"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Rounding goes through decimal so that halves round away from zero the same
// way regardless of binary representation (e.g. 1.005 -> 1.01).
func Round(val float64) float64 {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return val
	}
	return RoundDecimal(val).InexactFloat64()
}

// RoundDecimal returns the value rounded to cents as a decimal.Decimal.
func RoundDecimal(val float64) decimal.Decimal {
	return decimal.NewFromFloat(val).Round(constants.DecimalPlaces)
}

// IsNegligibleRate reports whether a periodic rate is small enough to be
// treated as zero interest.
func IsNegligibleRate(rate float64) bool {
	return math.Abs(rate) < constants.RateEpsilon
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// NonNegative clamps a value at zero.
func NonNegative(val float64) float64 {
	return Max(val, 0)
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}
