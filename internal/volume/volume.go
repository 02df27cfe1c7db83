// Package volume integrates cut, fill and embankment volumes between the
// natural terrain and a planned target surface.
package volume

import (
	"math"

	"github.com/ctessum/geom"
	"go.uber.org/zap"

	"github.com/sitegrade/sitegrade/internal/geometry"
	"github.com/sitegrade/sitegrade/internal/surface"
	"github.com/sitegrade/sitegrade/pkg/mathutil"
)

// Result holds integrated earthwork volumes in cubic meters. A cell
// contributes to at most one of Cut or Fill, never both.
type Result struct {
	Cut            float64
	Fill           float64
	EmbankmentCut  float64
	EmbankmentFill float64
}

// Net returns the volume surplus of excavation over placement.
func (r Result) Net() float64 { return r.Cut - r.Fill }

// Total returns the total volume of earth moved.
func (r Result) Total() float64 { return r.Cut + r.Fill + r.EmbankmentCut + r.EmbankmentFill }

// Imbalance returns how far the footprint is from a balanced cut and fill.
func (r Result) Imbalance() float64 { return math.Abs(r.Cut - r.Fill) }

// Add returns the element-wise sum of two results.
func (r Result) Add(o Result) Result {
	return Result{
		Cut:            r.Cut + o.Cut,
		Fill:           r.Fill + o.Fill,
		EmbankmentCut:  r.EmbankmentCut + o.EmbankmentCut,
		EmbankmentFill: r.EmbankmentFill + o.EmbankmentFill,
	}
}

// Calculator integrates earthwork volumes over footprint masks. The
// embankment slope angle controls the width of the transition ring around a
// footprint; a non-positive angle disables the embankment entirely.
type Calculator struct {
	logger             *zap.Logger
	geo                *geometry.Engine
	embankmentSlopeDeg float64
}

// NewCalculator returns a Calculator using the given geometry engine. A nil
// engine falls back to the vector containment strategy.
func NewCalculator(logger *zap.Logger, geo *geometry.Engine, embankmentSlopeDeg float64) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if geo == nil {
		geo = geometry.NewEngine(logger, geometry.StrategyVector)
	}
	return &Calculator{logger: logger, geo: geo, embankmentSlopeDeg: embankmentSlopeDeg}
}

// Compute integrates cut and fill over the masked cells, then approximates
// the embankment ring around the footprint. An empty mask short-circuits to
// a zero Result. Iteration order is fixed, so identical inputs produce
// bit-identical results.
func (c *Calculator) Compute(mask *geometry.Mask, model surface.Model) Result {
	var r Result
	if mask.Empty() {
		return r
	}

	g := mask.Grid()
	area := g.CellArea()
	maxAbsDiff := 0.0
	for _, cell := range mask.Cells() {
		z, ok := g.Value(cell.Col, cell.Row)
		if !ok {
			continue
		}
		cx, cy := g.CellCenter(cell.Col, cell.Row)
		diff := model.ElevationAt(cx, cy) - z
		if diff > 0 {
			r.Fill += diff * area
		} else if diff < 0 {
			r.Cut += -diff * area
		}
		if abs := math.Abs(diff); abs > maxAbsDiff {
			maxAbsDiff = abs
		}
	}

	c.addEmbankment(&r, mask, model, maxAbsDiff)
	return r
}

// addEmbankment integrates the transition ring. The ring width follows from
// the largest height difference inside the footprint and the embankment
// slope. Each ring cell compares terrain against a mid-elevation interpolated
// between the target elevation at the nearest footprint boundary point and
// the local terrain, by the cell's fractional distance across the ring.
func (c *Calculator) addEmbankment(r *Result, mask *geometry.Mask, model surface.Model, maxAbsDiff float64) {
	if c.embankmentSlopeDeg <= 0 || maxAbsDiff == 0 {
		return
	}
	width := maxAbsDiff / math.Tan(mathutil.DegToRad(c.embankmentSlopeDeg))
	if width <= 0 {
		return
	}

	ring := c.geo.RingMask(mask, width)
	g := mask.Grid()
	area := g.CellArea()
	for _, cell := range ring.Cells() {
		z, ok := g.Value(cell.Col, cell.Row)
		if !ok {
			continue
		}
		cx, cy := g.CellCenter(cell.Col, cell.Row)
		nearest, d := geometry.NearestOnRing(geom.Point{X: cx, Y: cy}, mask.Ring)
		target := model.ElevationAt(nearest.X, nearest.Y)
		t := mathutil.Clamp(d/width, 0, 1)
		mid := target + (z-target)*t
		if delta := z - mid; delta > 0 {
			r.EmbankmentCut += delta * area
		} else if delta < 0 {
			r.EmbankmentFill += -delta * area
		}
	}
}
