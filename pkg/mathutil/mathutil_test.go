package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Round up at midpoint", 1.235, 1.24},
		{"Round down below midpoint", 1.234, 1.23},
		{"No rounding needed", 1.23, 1.23},
		{"Large number", 12345.678, 12345.68},
		{"Negative number round up", -1.235, -1.24},
		{"Negative number round down", -1.234, -1.23},
		{"Zero", 0.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		lo       float64
		hi       float64
		expected float64
	}{
		{"Below range", -1.0, 0.0, 10.0, 0.0},
		{"Above range", 12.5, 0.0, 10.0, 10.0},
		{"Inside range", 4.2, 0.0, 10.0, 4.2},
		{"At lower bound", 0.0, 0.0, 10.0, 0.0},
		{"At upper bound", 10.0, 0.0, 10.0, 10.0},
		{"Negative bounds", -7.0, -5.0, -2.0, -5.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Clamp(tt.value, tt.lo, tt.hi)
			if result != tt.expected {
				t.Errorf("Clamp(%v, %v, %v) = %v, expected %v", tt.value, tt.lo, tt.hi, result, tt.expected)
			}
		})
	}
}

func TestWithinTolerance(t *testing.T) {
	if !WithinTolerance(1.0, 1.0+1e-9, 1e-6) {
		t.Error("expected values within tolerance")
	}
	if WithinTolerance(1.0, 1.1, 1e-6) {
		t.Error("expected values outside tolerance")
	}
}

func TestDegToRad(t *testing.T) {
	tests := []struct {
		deg float64
		rad float64
	}{
		{0, 0},
		{90, math.Pi / 2},
		{180, math.Pi},
		{-45, -math.Pi / 4},
	}
	for _, tt := range tests {
		if got := DegToRad(tt.deg); math.Abs(got-tt.rad) > 1e-12 {
			t.Errorf("DegToRad(%v) = %v, expected %v", tt.deg, got, tt.rad)
		}
	}
}

func TestSlopePercentToGradient(t *testing.T) {
	if got := SlopePercentToGradient(8.0); math.Abs(got-0.08) > 1e-12 {
		t.Errorf("SlopePercentToGradient(8) = %v, expected 0.08", got)
	}
	if got := SlopePercentToGradient(0); got != 0 {
		t.Errorf("SlopePercentToGradient(0) = %v, expected 0", got)
	}
}

func TestMinMax(t *testing.T) {
	if Min(2, 3) != 2 || Min(3, 2) != 2 {
		t.Error("Min returned wrong value")
	}
	if Max(2, 3) != 3 || Max(3, 2) != 3 {
		t.Error("Max returned wrong value")
	}
}
