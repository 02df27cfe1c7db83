package site

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sitegrade/sitegrade/internal/engine"
	"github.com/sitegrade/sitegrade/internal/geometry"
	"github.com/sitegrade/sitegrade/internal/surface"
	"github.com/sitegrade/sitegrade/internal/terrain"
	"github.com/sitegrade/sitegrade/internal/volume"
	"github.com/sitegrade/sitegrade/pkg/constants"
)

// Coordinator runs the anchored height search for a multi-surface plan. For
// each candidate primary height every dependent surface's height is derived,
// all surfaces are evaluated, and their volumes summed before the engine's
// selection rule applies.
type Coordinator struct {
	logger *zap.Logger
	geo    *geometry.Engine
	calc   *volume.Calculator
	grid   *terrain.Grid
	strict bool
}

// NewCoordinator wires a terrain grid into a site coordinator. Strictness
// controls whether footprints extending beyond the grid fail or clip.
func NewCoordinator(logger *zap.Logger, geo *geometry.Engine, calc *volume.Calculator, grid *terrain.Grid, strict bool) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if geo == nil {
		geo = geometry.NewEngine(logger, geometry.StrategyVector)
	}
	if calc == nil {
		calc = volume.NewCalculator(logger, geo, constants.DefaultEmbankmentSlopeDeg)
	}
	return &Coordinator{logger: logger, geo: geo, calc: calc, grid: grid, strict: strict}
}

// Run validates the plan, checks its spatial relationships, then searches
// the primary height window around the anchor elevation. Masks are rasterized
// once per distinct rotation angle before any evaluation starts.
func (c *Coordinator) Run(ctx context.Context, plan Plan, opts engine.Options) (*engine.Outcome, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	if err := c.checkRelationships(plan); err != nil {
		return nil, err
	}

	rotations := []float64{0}
	if plan.Rotation != nil {
		rotations = plan.Rotation.Values()
	}
	primaryMasks := make(map[float64]*geometry.Mask, len(rotations))
	for _, deg := range rotations {
		m, err := c.geo.MaskFor(c.grid, plan.Primary.Footprint, geometry.NewRotation(deg), c.strict)
		if err != nil {
			return nil, err
		}
		primaryMasks[deg] = m
	}
	depMasks := make([]*geometry.Mask, len(plan.Dependents))
	for i, s := range plan.Dependents {
		m, err := c.geo.MaskFor(c.grid, s.Footprint, geometry.NewRotation(0), c.strict)
		if err != nil {
			return nil, err
		}
		depMasks[i] = m
	}

	c.logger.Info("coordinating site surfaces",
		zap.String("site", plan.Name),
		zap.Int("surfaces", 1+len(plan.Dependents)),
		zap.Float64("anchor", plan.Anchor),
		zap.Float64("windowBelow", plan.WindowBelow),
		zap.Float64("windowAbove", plan.WindowAbove),
	)

	space := engine.Space{
		Height: engine.Range{
			Min:  plan.Anchor - plan.WindowBelow,
			Max:  plan.Anchor + plan.WindowAbove,
			Step: plan.Step,
		},
		Rotation: plan.Rotation,
		Slope:    plan.Slope,
	}
	eval := &planEvaluator{
		logger:       c.logger,
		calc:         c.calc,
		plan:         plan,
		primaryMasks: primaryMasks,
		depMasks:     depMasks,
	}
	eng, err := engine.New(c.logger, eval, space, opts)
	if err != nil {
		return nil, err
	}
	return eng.Run(ctx)
}

// checkRelationships verifies every required relationship before evaluation.
func (c *Coordinator) checkRelationships(plan Plan) error {
	for _, rel := range plan.Relationships {
		a, _ := plan.footprintByName(rel.SurfaceA)
		b, _ := plan.footprintByName(rel.SurfaceB)
		switch rel.Kind {
		case constants.RelationContains:
			if !geometry.ContainsFootprint(a, b) {
				return &SpatialConstraintError{
					Relationship: rel.Kind,
					SurfaceA:     rel.SurfaceA,
					SurfaceB:     rel.SurfaceB,
					Detail:       fmt.Sprintf("footprint %s is not contained in %s", rel.SurfaceB, rel.SurfaceA),
				}
			}
		case constants.RelationAdjacent:
			if gap := geometry.BoundaryGap(a, b); gap > rel.GapTolerance {
				return &SpatialConstraintError{
					Relationship: rel.Kind,
					SurfaceA:     rel.SurfaceA,
					SurfaceB:     rel.SurfaceB,
					Detail:       fmt.Sprintf("boundary gap %.3f m exceeds tolerance %.3f m", gap, rel.GapTolerance),
				}
			}
		default:
			return fmt.Errorf("site %s: unknown relationship kind %q", plan.Name, rel.Kind)
		}
	}
	return nil
}

// planEvaluator evaluates one candidate across every surface of the plan.
// All masks are precomputed, so evaluations share only read-only state.
type planEvaluator struct {
	logger       *zap.Logger
	calc         *volume.Calculator
	plan         Plan
	primaryMasks map[float64]*geometry.Mask
	depMasks     []*geometry.Mask
}

func (p *planEvaluator) Evaluate(c engine.Candidate) (engine.Scenario, error) {
	var total volume.Result
	cells := 0
	for i, s := range p.plan.surfaces() {
		mask := p.primaryMasks[c.Rotation]
		if i > 0 {
			mask = p.depMasks[i-1]
		}
		model, err := surface.Build(p.logger, applyCandidate(s, i == 0, c), mask)
		if err != nil {
			return engine.Scenario{}, err
		}
		total = total.Add(p.calc.Compute(mask, model))
		cells += mask.Count()
	}
	return engine.Scenario{Candidate: c, Volumes: total, MaskCells: cells}, nil
}
