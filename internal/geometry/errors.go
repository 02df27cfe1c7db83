package geometry

import (
	"fmt"

	"github.com/ctessum/geom"
)

// OutOfBoundsError reports a footprint without usable terrain: either it does
// not lie fully inside the extent supplied by the caller, or it sits inside
// the extent but covers no cell with valid elevation.
type OutOfBoundsError struct {
	Surface   string
	Footprint *geom.Bounds
	Extent    *geom.Bounds
	NoTerrain bool
}

func (e *OutOfBoundsError) Error() string {
	if e.NoTerrain {
		return fmt.Sprintf("footprint %s spans (%.3f, %.3f)-(%.3f, %.3f) but covers no valid terrain",
			e.Surface,
			e.Footprint.Min.X, e.Footprint.Min.Y, e.Footprint.Max.X, e.Footprint.Max.Y)
	}
	return fmt.Sprintf("footprint %s spans (%.3f, %.3f)-(%.3f, %.3f), outside terrain extent (%.3f, %.3f)-(%.3f, %.3f)",
		e.Surface,
		e.Footprint.Min.X, e.Footprint.Min.Y, e.Footprint.Max.X, e.Footprint.Max.Y,
		e.Extent.Min.X, e.Extent.Min.Y, e.Extent.Max.X, e.Extent.Max.Y)
}
