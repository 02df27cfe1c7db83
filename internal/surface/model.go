package surface

import (
	"math"

	"github.com/ctessum/geom"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/sitegrade/sitegrade/internal/geometry"
	"github.com/sitegrade/sitegrade/pkg/constants"
	"github.com/sitegrade/sitegrade/pkg/mathutil"
)

// Model computes the target elevation of a planned surface at any position.
type Model interface {
	Name() string
	ElevationAt(x, y float64) float64
}

// Flat is a constant-elevation surface.
type Flat struct {
	Surface string
	Height  float64
}

// Name returns the surface name.
func (f Flat) Name() string { return f.Surface }

// ElevationAt returns the surface height regardless of position.
func (f Flat) ElevationAt(x, y float64) float64 { return f.Height }

// Sloped is a linearly inclined surface descending from BaseHeight along
// DirectionDeg (0 pointing east, counter-clockwise positive) at SlopePercent.
type Sloped struct {
	Surface      string
	BaseHeight   float64
	SlopePercent float64
	DirectionDeg float64
	Reference    geom.Point

	ux float64
	uy float64
}

// NewSloped precomputes the direction vector for a sloped surface.
func NewSloped(name string, baseHeight, slopePercent, directionDeg float64, reference geom.Point) Sloped {
	rad := mathutil.DegToRad(directionDeg)
	return Sloped{
		Surface:      name,
		BaseHeight:   baseHeight,
		SlopePercent: slopePercent,
		DirectionDeg: directionDeg,
		Reference:    reference,
		ux:           math.Cos(rad),
		uy:           math.Sin(rad),
	}
}

// Name returns the surface name.
func (s Sloped) Name() string { return s.Surface }

// DistanceAlongSlope returns the scalar projection of (x, y) relative to the
// reference point onto the slope direction. Positive distances lie downslope.
func (s Sloped) DistanceAlongSlope(x, y float64) float64 {
	return (x-s.Reference.X)*s.ux + (y-s.Reference.Y)*s.uy
}

// ElevationAt returns the target elevation at (x, y).
func (s Sloped) ElevationAt(x, y float64) float64 {
	return s.BaseHeight - s.DistanceAlongSlope(x, y)*s.SlopePercent/constants.PercentDivisor
}

// Build constructs the model for spec over the masked cells. Sloped surfaces
// take their reference point from the rotated footprint centroid. With
// AutoFit the slope is fitted to the terrain inside the mask and clamped to
// [MinSlope, MaxSlope]; when too few downslope samples exist the manually
// supplied slope is clamped and used instead.
func Build(logger *zap.Logger, spec Spec, mask *geometry.Mask) (Model, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if spec.Kind == constants.SurfaceKindFlat {
		return Flat{Surface: spec.Name, Height: spec.Height}, nil
	}

	reference := geometry.Footprint{Name: spec.Name, Ring: mask.Ring}.Centroid()
	slope := spec.SlopePercent
	if spec.AutoFit {
		slope = fitSlope(logger, spec, mask, reference)
	}
	slope = mathutil.Clamp(slope, spec.MinSlope, spec.MaxSlope)
	return NewSloped(spec.Name, spec.BaseHeight, slope, spec.DirectionDeg, reference), nil
}

// fitSlope regresses terrain elevation against downslope distance over the
// masked cells. Only cells downslope of the reference point participate.
func fitSlope(logger *zap.Logger, spec Spec, mask *geometry.Mask, reference geom.Point) float64 {
	probe := NewSloped(spec.Name, spec.BaseHeight, spec.SlopePercent, spec.DirectionDeg, reference)
	g := mask.Grid()

	var distances, elevations []float64
	for _, c := range mask.Cells() {
		cx, cy := g.CellCenter(c.Col, c.Row)
		d := probe.DistanceAlongSlope(cx, cy)
		if d <= 0 {
			continue
		}
		z, ok := g.Value(c.Col, c.Row)
		if !ok {
			continue
		}
		distances = append(distances, d)
		elevations = append(elevations, z)
	}

	if len(distances) < 2 || !hasDistinct(distances) {
		logger.Debug("slope fit skipped, too few downslope samples",
			zap.String("op", "surface.Build"),
			zap.String("surface", spec.Name),
			zap.Int("samples", len(distances)),
		)
		return spec.SlopePercent
	}

	_, beta := stat.LinearRegression(distances, elevations, nil, false)
	fitted := math.Abs(beta) * constants.PercentDivisor
	logger.Debug("fitted slope to terrain",
		zap.String("op", "surface.Build"),
		zap.String("surface", spec.Name),
		zap.Int("samples", len(distances)),
		zap.Float64("fitted_percent", fitted),
	)
	return fitted
}

func hasDistinct(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return true
		}
	}
	return false
}
