// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/sitegrade/sitegrade/pkg/constants"
)

// Round rounds a value to two decimals for display-level comparisons.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// IsZero checks if a volume is effectively zero (within tolerance).
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.VolumeTolerance
}

// WithinTolerance checks if two values are within a specified tolerance.
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Clamp limits value to the closed interval [lo, hi].
func Clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// Min returns the minimum of two float64 values.
func Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two float64 values.
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// DegToRad converts an angle in degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// SlopePercentToGradient converts a slope in percent to a unitless gradient
// (vertical drop per horizontal meter).
func SlopePercentToGradient(percent float64) float64 {
	return percent / constants.PercentDivisor
}
