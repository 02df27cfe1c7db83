// Package intersect extracts the boundary lines where a planned surface
// meets the original terrain, as 2-D polylines and their 3-D counterparts.
package intersect

import (
	"github.com/ctessum/geom"
	"go.uber.org/zap"

	"github.com/sitegrade/sitegrade/internal/geometry"
	"github.com/sitegrade/sitegrade/internal/surface"
	"github.com/sitegrade/sitegrade/internal/terrain"
)

// Line is one traced zero-crossing polyline in world coordinates. A closed
// line repeats its first vertex at the end.
type Line struct {
	Surface string
	Points  []geom.Point
}

// Closed reports whether the line forms a ring.
func (l Line) Closed() bool {
	return len(l.Points) > 2 && l.Points[0] == l.Points[len(l.Points)-1]
}

// Point3D is a polyline vertex with elevation.
type Point3D struct {
	X float64
	Y float64
	Z float64
}

// Line3D pairs each vertex of a traced line with its elevation.
type Line3D struct {
	Surface string
	Points  []Point3D
}

// Extractor builds difference rasters and traces their zero level. An empty
// trace is an expected outcome for footprints entirely cut or entirely
// filled, reported as a warning rather than an error.
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor returns an Extractor.
func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger}
}

// DiffRaster builds the terrain-minus-target difference raster over the
// masked cells. Cells outside the mask keep the NaN sentinel.
func (e *Extractor) DiffRaster(mask *geometry.Mask, model surface.Model) *terrain.DiffRaster {
	g := mask.Grid()
	d := terrain.NewDiffRaster(model.Name(), g)
	for _, c := range mask.Cells() {
		z, ok := g.Value(c.Col, c.Row)
		if !ok {
			continue
		}
		cx, cy := g.CellCenter(c.Col, c.Row)
		d.Set(c.Col, c.Row, z-model.ElevationAt(cx, cy))
	}
	return d
}

// Lift attaches elevations to traced lines. Flat surfaces contribute their
// constant height; for sloped surfaces the terrain is sampled instead, since
// the crossing line lies on both surfaces there.
func (e *Extractor) Lift(grid *terrain.Grid, model surface.Model, lines []Line) []Line3D {
	out := make([]Line3D, 0, len(lines))
	for _, ln := range lines {
		pts := make([]Point3D, 0, len(ln.Points))
		for _, p := range ln.Points {
			var z float64
			if flat, ok := model.(surface.Flat); ok {
				z = flat.Height
			} else if sampled, ok := grid.Sample(p.X, p.Y); ok {
				z = sampled
			} else {
				z = model.ElevationAt(p.X, p.Y)
			}
			pts = append(pts, Point3D{X: p.X, Y: p.Y, Z: z})
		}
		out = append(out, Line3D{Surface: ln.Surface, Points: pts})
	}
	return out
}

// Extract runs the full pipeline for one scenario surface.
func (e *Extractor) Extract(mask *geometry.Mask, model surface.Model) ([]Line, []Line3D) {
	lines := e.Trace(e.DiffRaster(mask, model))
	return lines, e.Lift(mask.Grid(), model, lines)
}
