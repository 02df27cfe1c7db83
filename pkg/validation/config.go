// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"

	"github.com/sitegrade/sitegrade/pkg/constants"
)

// SlopeBoundsWarning reports when a sloped surface's bounds pin the grade,
// which silently disables auto-fit. Returns an empty string when fine.
func SlopeBoundsWarning(surfaceName, kind string, minSlope, maxSlope float64) string {
	if kind != constants.SurfaceKindSloped {
		return ""
	}
	if minSlope == maxSlope {
		return fmt.Sprintf("Surface '%s' has equal slope bounds (%g%%) - the grade is pinned and auto-fit has no effect",
			surfaceName, minSlope)
	}
	return ""
}

// SearchStepWarnings reports height search discretizations that are unlikely
// to be intended.
func SearchStepWarnings(windowBelow, windowAbove, step float64) []string {
	var warnings []string

	span := windowBelow + windowAbove
	if span == 0 || step <= 0 {
		return warnings
	}

	if step > span {
		warnings = append(warnings, fmt.Sprintf("Search step %g m exceeds the %g m window - only the lowest candidate will be evaluated",
			step, span))
	}
	if candidates := span / step; candidates > 10000 {
		warnings = append(warnings, fmt.Sprintf("Search window of %g m at step %g m enumerates %.0f candidates - expect a long run",
			span, step, candidates+1))
	}

	return warnings
}

// SearchWindowWarnings compares the height search window against the terrain
// elevation range. A window entirely off the terrain still runs, it just
// moves material in only one direction.
func SearchWindowWarnings(anchor, windowBelow, windowAbove, terrainMin, terrainMax float64) []string {
	var warnings []string

	low := anchor - windowBelow
	high := anchor + windowAbove
	if high < terrainMin {
		warnings = append(warnings, fmt.Sprintf("Search window [%g, %g] lies entirely below the terrain minimum %g - every candidate is pure cut",
			low, high, terrainMin))
	}
	if low > terrainMax {
		warnings = append(warnings, fmt.Sprintf("Search window [%g, %g] lies entirely above the terrain maximum %g - every candidate is pure fill",
			low, high, terrainMax))
	}

	return warnings
}

// CostRateWarnings reports when the cost section is effectively disabled.
func CostRateWarnings(excavation, transport, fillMaterial, compaction, surfacing float64) []string {
	var warnings []string

	if excavation == 0 && transport == 0 && fillMaterial == 0 && compaction == 0 && surfacing == 0 {
		warnings = append(warnings, "All cost rates are zero - the cost breakdown will be empty")
	}

	return warnings
}
