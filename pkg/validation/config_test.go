package validation

import (
	"strings"
	"testing"

	"github.com/sitegrade/sitegrade/pkg/constants"
)

func TestSlopeBoundsWarning(t *testing.T) {
	tests := []struct {
		name       string
		kind       string
		minSlope   float64
		maxSlope   float64
		expectWarn bool
	}{
		{
			name:       "Sloped surface with room to fit",
			kind:       constants.SurfaceKindSloped,
			minSlope:   2,
			maxSlope:   8,
			expectWarn: false,
		},
		{
			name:       "Sloped surface with pinned bounds",
			kind:       constants.SurfaceKindSloped,
			minSlope:   5,
			maxSlope:   5,
			expectWarn: true,
		},
		{
			name:       "Flat surface ignores slope bounds",
			kind:       constants.SurfaceKindFlat,
			minSlope:   0,
			maxSlope:   0,
			expectWarn: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warning := SlopeBoundsWarning("apron", tt.kind, tt.minSlope, tt.maxSlope)

			if tt.expectWarn && warning == "" {
				t.Errorf("SlopeBoundsWarning() expected a warning but got none")
			}
			if !tt.expectWarn && warning != "" {
				t.Errorf("SlopeBoundsWarning() unexpected warning: %s", warning)
			}
			if tt.expectWarn && !strings.Contains(warning, "apron") {
				t.Errorf("warning %q should name the surface", warning)
			}
		})
	}
}

func TestSearchStepWarnings(t *testing.T) {
	tests := []struct {
		name        string
		windowBelow float64
		windowAbove float64
		step        float64
		expectCount int
	}{
		{
			name:        "Reasonable discretization",
			windowBelow: 1,
			windowAbove: 1,
			step:        0.25,
			expectCount: 0,
		},
		{
			name:        "Step exceeds window",
			windowBelow: 0.2,
			windowAbove: 0.2,
			step:        0.5,
			expectCount: 1,
		},
		{
			name:        "Pinned anchor never warns",
			windowBelow: 0,
			windowAbove: 0,
			step:        0.5,
			expectCount: 0,
		},
		{
			name:        "Excessive candidate count",
			windowBelow: 10,
			windowAbove: 10,
			step:        0.001,
			expectCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := SearchStepWarnings(tt.windowBelow, tt.windowAbove, tt.step)
			if len(warnings) != tt.expectCount {
				t.Errorf("SearchStepWarnings() = %v, expected %d warnings", warnings, tt.expectCount)
			}
		})
	}
}

func TestSearchWindowWarnings(t *testing.T) {
	tests := []struct {
		name        string
		anchor      float64
		expectCount int
		expectPart  string
	}{
		{
			name:        "Window overlaps terrain",
			anchor:      100,
			expectCount: 0,
		},
		{
			name:        "Window below terrain",
			anchor:      90,
			expectCount: 1,
			expectPart:  "pure cut",
		},
		{
			name:        "Window above terrain",
			anchor:      115,
			expectCount: 1,
			expectPart:  "pure fill",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := SearchWindowWarnings(tt.anchor, 1, 1, 98, 105)
			if len(warnings) != tt.expectCount {
				t.Fatalf("SearchWindowWarnings() = %v, expected %d warnings", warnings, tt.expectCount)
			}
			if tt.expectPart != "" && !strings.Contains(warnings[0], tt.expectPart) {
				t.Errorf("warning %q should mention %q", warnings[0], tt.expectPart)
			}
		})
	}
}

func TestCostRateWarnings(t *testing.T) {
	if warnings := CostRateWarnings(0, 0, 0, 0, 0); len(warnings) != 1 {
		t.Errorf("CostRateWarnings(all zero) = %v, expected one warning", warnings)
	}
	if warnings := CostRateWarnings(4.5, 0, 0, 0, 0); len(warnings) != 0 {
		t.Errorf("CostRateWarnings(excavation set) = %v, expected none", warnings)
	}
}
