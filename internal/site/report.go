package site

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sitegrade/sitegrade/internal/balance"
	"github.com/sitegrade/sitegrade/internal/engine"
	"github.com/sitegrade/sitegrade/internal/geometry"
	"github.com/sitegrade/sitegrade/internal/intersect"
	"github.com/sitegrade/sitegrade/internal/surface"
	"github.com/sitegrade/sitegrade/internal/volume"
)

// Costing bundles the pricing inputs applied to a report's volumes.
type Costing struct {
	Factors            balance.Factors
	Rates              balance.Rates
	SurfacingThickness float64
}

// SurfaceReport carries one surface's share of the selected scenario.
type SurfaceReport struct {
	Name    string
	Primary bool
	Kind    string
	Height  float64
	Slope   float64
	Area    float64
	Volumes volume.Result
	Balance balance.Balance
	Costs   balance.CostBreakdown
	Lines   []intersect.Line
	Lines3D []intersect.Line3D
}

// Report is the structured output of one site run, handed to the reporting
// consumer as plain data. Site totals price the summed volumes, so cut
// material reused as fill may cross surfaces; the per-surface figures price
// each surface in isolation.
type Report struct {
	Site       string
	RunID      string
	Anchor     float64
	Height     float64
	Rotation   float64
	Evaluated  int
	Candidates int
	Cancelled  bool
	Surfaces   []SurfaceReport
	Volumes    volume.Result
	Balance    balance.Balance
	Costs      balance.CostBreakdown
}

// Report expands the outcome of Run into per-surface volumes, material
// balances, costs and terrain intersection lines for the selected scenario.
func (c *Coordinator) Report(plan Plan, out *engine.Outcome, costing Costing) (*Report, error) {
	if out == nil || out.Best == nil {
		return nil, fmt.Errorf("site %s: no usable scenario to report", plan.Name)
	}
	if err := costing.Factors.Validate(); err != nil {
		return nil, err
	}

	best := out.Best.Candidate
	rep := &Report{
		Site:       plan.Name,
		RunID:      out.RunID,
		Anchor:     plan.Anchor,
		Height:     best.Height,
		Rotation:   best.Rotation,
		Evaluated:  out.Evaluated,
		Candidates: out.Total,
		Cancelled:  out.Cancelled,
	}

	extractor := intersect.NewExtractor(c.logger)
	totalArea := 0.0
	for i, s := range plan.surfaces() {
		rot := geometry.NewRotation(0)
		if i == 0 {
			rot = geometry.NewRotation(best.Rotation)
		}
		mask, err := c.geo.MaskFor(c.grid, s.Footprint, rot, c.strict)
		if err != nil {
			return nil, err
		}
		model, err := surface.Build(c.logger, applyCandidate(s, i == 0, best), mask)
		if err != nil {
			return nil, err
		}

		r := c.calc.Compute(mask, model)
		b, err := balance.Compute(r, costing.Factors)
		if err != nil {
			return nil, err
		}
		lines, lines3D := extractor.Extract(mask, model)

		sr := SurfaceReport{
			Name:    s.Spec.Name,
			Primary: i == 0,
			Kind:    s.Spec.Kind,
			Area:    mask.Area(),
			Volumes: r,
			Balance: b,
			Costs:   balance.Cost(r, b, costing.Rates, mask.Area(), costing.SurfacingThickness),
			Lines:   lines,
			Lines3D: lines3D,
		}
		switch m := model.(type) {
		case surface.Flat:
			sr.Height = m.Height
		case surface.Sloped:
			sr.Height = m.BaseHeight
			sr.Slope = m.SlopePercent
		}
		rep.Surfaces = append(rep.Surfaces, sr)
		rep.Volumes = rep.Volumes.Add(r)
		totalArea += mask.Area()
	}

	b, err := balance.Compute(rep.Volumes, costing.Factors)
	if err != nil {
		return nil, err
	}
	rep.Balance = b
	rep.Costs = balance.Cost(rep.Volumes, b, costing.Rates, totalArea, costing.SurfacingThickness)

	c.logger.Info("assembled site report",
		zap.String("op", "site.Report"),
		zap.String("site", plan.Name),
		zap.String("run", rep.RunID),
		zap.Float64("height", rep.Height),
		zap.Float64("totalVolume", rep.Volumes.Total()),
		zap.Float64("surplus", rep.Balance.Surplus),
		zap.Float64("deficit", rep.Balance.Deficit),
		zap.Float64("totalCost", rep.Costs.Total),
	)
	return rep, nil
}
