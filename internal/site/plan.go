// Package site coordinates earthwork searches across multiple dependent
// construction surfaces sharing one anchor elevation.
package site

import (
	"fmt"

	"github.com/sitegrade/sitegrade/internal/engine"
	"github.com/sitegrade/sitegrade/internal/geometry"
	"github.com/sitegrade/sitegrade/internal/surface"
	"github.com/sitegrade/sitegrade/pkg/constants"
)

// Surface pairs a footprint with its surface spec. Dependent surfaces also
// carry a derivation rule tying their height to the primary surface's.
type Surface struct {
	Footprint geometry.Footprint
	Spec      surface.Spec

	// Derive selects how a dependent surface's height follows the primary
	// height: "offset" shifts it by Offset, "apron" anchors a sloped
	// surface's base height to it.
	Derive string
	Offset float64
}

// Relationship is a required spatial relation between two named surfaces,
// checked before any evaluation starts.
type Relationship struct {
	Kind         string
	SurfaceA     string
	SurfaceB     string
	GapTolerance float64
}

// Plan is a multi-surface site: one primary surface whose height is searched
// within a window around the anchor elevation, plus dependent surfaces whose
// heights derive from the primary's candidate height. Single-surface plans
// may additionally search the primary's rotation and slope.
type Plan struct {
	Name          string
	Anchor        float64
	WindowBelow   float64
	WindowAbove   float64
	Step          float64
	Rotation      *engine.Range
	Slope         *engine.Range
	Primary       Surface
	Dependents    []Surface
	Relationships []Relationship
}

// Validate checks the plan's surfaces, search axes and derivation rules.
func (p Plan) Validate() error {
	if err := p.Primary.Footprint.Validate(); err != nil {
		return err
	}
	if err := p.Primary.Spec.Validate(); err != nil {
		return err
	}
	if len(p.Dependents) > 0 && (p.Rotation != nil || p.Slope != nil) {
		return fmt.Errorf("site %s: rotation and slope axes apply to single-surface sites only", p.Name)
	}
	if p.Slope != nil {
		if p.Primary.Spec.Kind != constants.SurfaceKindSloped {
			return fmt.Errorf("site %s: slope axis requires a sloped primary surface", p.Name)
		}
		if p.Slope.Min < p.Primary.Spec.MinSlope || p.Slope.Max > p.Primary.Spec.MaxSlope {
			return fmt.Errorf("site %s: slope axis [%g, %g] outside surface bounds [%g, %g]",
				p.Name, p.Slope.Min, p.Slope.Max, p.Primary.Spec.MinSlope, p.Primary.Spec.MaxSlope)
		}
	}
	names := map[string]bool{p.Primary.Spec.Name: true}
	for _, dep := range p.Dependents {
		if err := dep.Footprint.Validate(); err != nil {
			return err
		}
		if err := dep.Spec.Validate(); err != nil {
			return err
		}
		if names[dep.Spec.Name] {
			return fmt.Errorf("site %s: duplicate surface name %s", p.Name, dep.Spec.Name)
		}
		names[dep.Spec.Name] = true

		switch dep.Derive {
		case constants.DeriveOffset:
		case constants.DeriveApron:
			if dep.Spec.Kind != constants.SurfaceKindSloped {
				return fmt.Errorf("site %s: surface %s derives as apron but is not sloped", p.Name, dep.Spec.Name)
			}
		default:
			return fmt.Errorf("site %s: surface %s has unknown derivation %q", p.Name, dep.Spec.Name, dep.Derive)
		}
	}
	for _, rel := range p.Relationships {
		if !names[rel.SurfaceA] || !names[rel.SurfaceB] {
			return fmt.Errorf("site %s: relationship %s references unknown surface (%s, %s)",
				p.Name, rel.Kind, rel.SurfaceA, rel.SurfaceB)
		}
	}
	return nil
}

// surfaces returns the primary surface followed by the dependents, the order
// volumes are summed in.
func (p Plan) surfaces() []Surface {
	out := make([]Surface, 0, 1+len(p.Dependents))
	out = append(out, p.Primary)
	return append(out, p.Dependents...)
}

// applyCandidate resolves a surface's spec for one candidate, overriding the
// primary's slope when the search carries a slope axis.
func applyCandidate(s Surface, primary bool, c engine.Candidate) surface.Spec {
	spec := deriveSpec(s, primary, c.Height)
	if primary && c.HasSlope && spec.Kind == constants.SurfaceKindSloped {
		spec.SlopePercent = c.Slope
		spec.AutoFit = false
	}
	return spec
}

// deriveSpec resolves a surface's spec for one candidate primary height. The
// primary takes the height directly; dependents follow their derivation rule.
func deriveSpec(s Surface, primary bool, height float64) surface.Spec {
	spec := s.Spec
	if primary {
		if spec.Kind == constants.SurfaceKindFlat {
			spec.Height = height
		} else {
			spec.BaseHeight = height
		}
		return spec
	}
	switch s.Derive {
	case constants.DeriveApron:
		spec.BaseHeight = height + s.Offset
	default:
		if spec.Kind == constants.SurfaceKindFlat {
			spec.Height = height + s.Offset
		} else {
			spec.BaseHeight = height + s.Offset
		}
	}
	return spec
}

// footprintByName looks a surface up for relationship checks.
func (p Plan) footprintByName(name string) (geometry.Footprint, bool) {
	if p.Primary.Spec.Name == name {
		return p.Primary.Footprint, true
	}
	for _, dep := range p.Dependents {
		if dep.Spec.Name == name {
			return dep.Footprint, true
		}
	}
	return geometry.Footprint{}, false
}
