package geometry

import (
	"github.com/ctessum/geom"
	"go.uber.org/zap"
)

// Strategy selects the point-in-polygon backend used when rasterizing.
type Strategy int

const (
	// StrategyVector tests cell centers with the vector geometry library.
	StrategyVector Strategy = iota
	// StrategyScanline tests cell centers with a self-contained even-odd
	// ray cast, keeping rasterization independent of the vector backend.
	StrategyScanline
)

// Engine rasterizes footprints onto terrain grids. The containment strategy
// is fixed at construction; an Engine is stateless beyond its configuration
// and safe for concurrent use.
type Engine struct {
	logger   *zap.Logger
	strategy Strategy
}

// NewEngine returns an Engine using the given containment strategy.
func NewEngine(logger *zap.Logger, strategy Strategy) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger, strategy: strategy}
}

// Contains reports whether p lies inside the footprint. With StrategyVector,
// points on the boundary count as inside.
func (e *Engine) Contains(p geom.Point, f Footprint) bool {
	if e.strategy == StrategyScanline {
		return evenOddContains(p, f.Ring)
	}
	return p.Within(f.Polygon()) != geom.Outside
}

// evenOddContains is a standard even-odd ray cast over an open ring.
func evenOddContains(p geom.Point, ring []geom.Point) bool {
	inside := false
	n := len(ring)
	for i := 0; i < n; i++ {
		a := ring[i]
		b := ring[(i+1)%n]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}
