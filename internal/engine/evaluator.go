package engine

import (
	"sync"

	"go.uber.org/zap"

	"github.com/sitegrade/sitegrade/internal/geometry"
	"github.com/sitegrade/sitegrade/internal/surface"
	"github.com/sitegrade/sitegrade/internal/terrain"
	"github.com/sitegrade/sitegrade/internal/volume"
	"github.com/sitegrade/sitegrade/pkg/constants"
)

// SurfaceEvaluator evaluates candidates for a single planned surface. Masks
// are computed once per rotation angle and shared across heights; the cache
// is safe for concurrent workers.
type SurfaceEvaluator struct {
	logger    *zap.Logger
	geo       *geometry.Engine
	calc      *volume.Calculator
	grid      *terrain.Grid
	footprint geometry.Footprint
	spec      surface.Spec
	strict    bool

	mu    sync.Mutex
	masks map[float64]*geometry.Mask
}

// NewSurfaceEvaluator wires a footprint, its surface spec and a terrain grid
// into an Evaluator. The candidate height drives a flat spec's Height or a
// sloped spec's BaseHeight; a slope axis overrides the spec's slope and
// disables auto-fit.
func NewSurfaceEvaluator(logger *zap.Logger, geo *geometry.Engine, calc *volume.Calculator, grid *terrain.Grid, footprint geometry.Footprint, spec surface.Spec, strict bool) *SurfaceEvaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if geo == nil {
		geo = geometry.NewEngine(logger, geometry.StrategyVector)
	}
	if calc == nil {
		calc = volume.NewCalculator(logger, geo, constants.DefaultEmbankmentSlopeDeg)
	}
	return &SurfaceEvaluator{
		logger:    logger,
		geo:       geo,
		calc:      calc,
		grid:      grid,
		footprint: footprint,
		spec:      spec,
		strict:    strict,
		masks:     make(map[float64]*geometry.Mask),
	}
}

func (e *SurfaceEvaluator) maskFor(rotationDeg float64) (*geometry.Mask, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if m, ok := e.masks[rotationDeg]; ok {
		return m, nil
	}
	m, err := e.geo.MaskFor(e.grid, e.footprint, geometry.NewRotation(rotationDeg), e.strict)
	if err != nil {
		return nil, err
	}
	e.masks[rotationDeg] = m
	return m, nil
}

// Evaluate builds the candidate's target surface over the cached mask and
// integrates its volumes.
func (e *SurfaceEvaluator) Evaluate(c Candidate) (Scenario, error) {
	mask, err := e.maskFor(c.Rotation)
	if err != nil {
		return Scenario{}, err
	}

	spec := e.spec
	switch spec.Kind {
	case constants.SurfaceKindFlat:
		spec.Height = c.Height
	case constants.SurfaceKindSloped:
		spec.BaseHeight = c.Height
	}
	if c.HasSlope {
		spec.SlopePercent = c.Slope
		spec.AutoFit = false
	}

	model, err := surface.Build(e.logger, spec, mask)
	if err != nil {
		return Scenario{}, err
	}
	return Scenario{Candidate: c, Volumes: e.calc.Compute(mask, model), MaskCells: mask.Count()}, nil
}
