// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/solar-payback/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for presentation and logical comparisons, never inside the simulation.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// ClampNonNegative returns val, or zero when val is negative.
func ClampNonNegative(val float64) float64 {
	if val < 0 {
		return 0
	}
	return val
}

// Compound grows base geometrically by rate for the given number of periods.
// A negative rate decays it.
func Compound(base, rate float64, periods int) float64 {
	return base * math.Pow(1+rate, float64(periods))
}

// ToPercentage converts a fraction (0.21) to a percentage (21).
func ToPercentage(fraction float64) float64 {
	return fraction * constants.PercentageMultiplier
}

// IsFinite reports whether val is neither NaN nor infinite.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}
