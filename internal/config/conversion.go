package config

import (
	"fmt"

	"github.com/ctessum/geom"

	"github.com/sitegrade/sitegrade/internal/engine"
	"github.com/sitegrade/sitegrade/internal/geometry"
	"github.com/sitegrade/sitegrade/internal/site"
	"github.com/sitegrade/sitegrade/internal/surface"
)

// BuildPlan converts the validated configuration into the site plan and
// costing the coordinator consumes. The primary surface leads the plan;
// dependent surfaces keep their configured order.
func (c *Configuration) BuildPlan() (site.Plan, site.Costing, error) {
	if err := c.Validate(); err != nil {
		return site.Plan{}, site.Costing{}, err
	}

	plan := site.Plan{
		Name:        c.Site.Name,
		Anchor:      c.Site.Anchor,
		WindowBelow: c.Site.WindowBelow,
		WindowAbove: c.Site.WindowAbove,
		Step:        c.Site.Step,
		Rotation:    c.Site.Rotation.Range(),
		Slope:       c.Site.Slope.Range(),
	}

	for _, sc := range c.Site.Surfaces {
		surf, err := buildSurface(sc)
		if err != nil {
			return site.Plan{}, site.Costing{}, err
		}
		if sc.Primary {
			plan.Primary = surf
		} else {
			plan.Dependents = append(plan.Dependents, surf)
		}
	}

	for _, rc := range c.Site.Relationships {
		plan.Relationships = append(plan.Relationships, site.Relationship{
			Kind:         rc.Kind,
			SurfaceA:     rc.SurfaceA,
			SurfaceB:     rc.SurfaceB,
			GapTolerance: rc.GapTolerance,
		})
	}

	costing := site.Costing{
		Factors:            c.Materials.Factors(),
		Rates:              c.Costs.Rates(),
		SurfacingThickness: c.Costs.SurfacingThickness,
	}
	return plan, costing, nil
}

// Range converts an axis into the engine's range form; a nil axis stays nil.
func (a *AxisConfig) Range() *engine.Range {
	if a == nil {
		return nil
	}
	return &engine.Range{Min: a.Min, Max: a.Max, Step: a.Step}
}

func buildSurface(sc SurfaceConfig) (site.Surface, error) {
	ring := make([]geom.Point, len(sc.Footprint))
	for i, v := range sc.Footprint {
		ring[i] = geom.Point{X: v.X, Y: v.Y}
	}
	footprint, err := geometry.NewFootprint(sc.Name, ring)
	if err != nil {
		return site.Surface{}, fmt.Errorf("surface %s: %w", sc.Name, err)
	}

	return site.Surface{
		Footprint: footprint,
		Spec: surface.Spec{
			Name:         sc.Name,
			Kind:         sc.Kind,
			SlopePercent: sc.SlopePercent,
			DirectionDeg: sc.DirectionDeg,
			AutoFit:      sc.AutoFit,
			MinSlope:     sc.MinSlope,
			MaxSlope:     sc.MaxSlope,
		},
		Derive: sc.Derive,
		Offset: sc.Offset,
	}, nil
}
