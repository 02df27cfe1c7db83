// Package surface models planned construction surfaces: flat pads and
// linearly sloped aprons, optionally fitted to the natural grade.
package surface

import (
	"fmt"

	"github.com/sitegrade/sitegrade/pkg/constants"
)

// InvalidSpecError reports a surface specification that cannot be built.
type InvalidSpecError struct {
	Surface string
	Field   string
	Value   any
	Reason  string
}

func (e *InvalidSpecError) Error() string {
	return fmt.Sprintf("surface %s: invalid %s (%v): %s", e.Surface, e.Field, e.Value, e.Reason)
}

// Spec describes a planned surface. Kind selects the variant: flat surfaces
// use Height, sloped surfaces use the remaining fields. After construction
// the applied slope always lies within [MinSlope, MaxSlope].
type Spec struct {
	Name         string
	Kind         string
	Height       float64
	BaseHeight   float64
	SlopePercent float64
	DirectionDeg float64
	AutoFit      bool
	MinSlope     float64
	MaxSlope     float64
}

// Validate checks the spec against its variant's constraints.
func (s Spec) Validate() error {
	switch s.Kind {
	case constants.SurfaceKindFlat:
		return nil
	case constants.SurfaceKindSloped:
	default:
		return &InvalidSpecError{
			Surface: s.Name,
			Field:   "kind",
			Value:   s.Kind,
			Reason:  fmt.Sprintf("must be %q or %q", constants.SurfaceKindFlat, constants.SurfaceKindSloped),
		}
	}

	if s.MinSlope < 0 {
		return &InvalidSpecError{Surface: s.Name, Field: "min_slope", Value: s.MinSlope, Reason: "must be non-negative"}
	}
	if s.MaxSlope < s.MinSlope {
		return &InvalidSpecError{
			Surface: s.Name,
			Field:   "max_slope",
			Value:   s.MaxSlope,
			Reason:  fmt.Sprintf("must be at least min_slope (%g)", s.MinSlope),
		}
	}
	if s.SlopePercent < 0 {
		return &InvalidSpecError{Surface: s.Name, Field: "slope_percent", Value: s.SlopePercent, Reason: "must be non-negative"}
	}
	if !s.AutoFit && (s.SlopePercent < s.MinSlope || s.SlopePercent > s.MaxSlope) {
		return &InvalidSpecError{
			Surface: s.Name,
			Field:   "slope_percent",
			Value:   s.SlopePercent,
			Reason:  fmt.Sprintf("outside [%g, %g] with auto-fit disabled", s.MinSlope, s.MaxSlope),
		}
	}
	return nil
}
