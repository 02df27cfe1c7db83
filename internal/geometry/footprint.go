// Package geometry rasterizes construction footprints onto terrain grids and
// provides the polygon math the earthwork calculations depend on.
package geometry

import (
	"fmt"
	"math"

	"github.com/ctessum/geom"

	"github.com/sitegrade/sitegrade/pkg/mathutil"
)

// Footprint is the 2-D outline of a planned construction surface. The ring is
// open (the first vertex is not repeated at the end) and assumed simple;
// topology validation is the footprint provider's responsibility.
type Footprint struct {
	Name string
	Ring []geom.Point
}

// NewFootprint builds a validated footprint from an open vertex ring.
func NewFootprint(name string, ring []geom.Point) (Footprint, error) {
	f := Footprint{Name: name, Ring: ring}
	if err := f.Validate(); err != nil {
		return Footprint{}, err
	}
	return f, nil
}

// Validate checks that the ring describes a usable polygon.
func (f Footprint) Validate() error {
	if len(f.Ring) < 3 {
		return fmt.Errorf("footprint %s needs at least 3 vertices, got %d", f.Name, len(f.Ring))
	}
	if f.Area() == 0 {
		return fmt.Errorf("footprint %s has zero area", f.Name)
	}
	return nil
}

// Polygon returns the footprint as a single-ring polygon.
func (f Footprint) Polygon() geom.Polygon {
	return geom.Polygon{f.Ring}
}

// Centroid returns the area centroid of the footprint.
func (f Footprint) Centroid() geom.Point {
	return f.Polygon().Centroid()
}

// Bounds returns the axis-aligned bounding box of the footprint.
func (f Footprint) Bounds() *geom.Bounds {
	return f.Polygon().Bounds()
}

// Area returns the footprint area regardless of ring winding.
func (f Footprint) Area() float64 {
	return math.Abs(f.Polygon().Area())
}

// Rotated returns a copy of f rotated about its centroid.
func (f Footprint) Rotated(rot Rotation) Footprint {
	if rot.Degrees == 0 {
		return f
	}
	pivot := f.Centroid()
	ring := make([]geom.Point, len(f.Ring))
	for i, p := range f.Ring {
		ring[i] = rot.Apply(p, pivot)
	}
	return Footprint{Name: f.Name, Ring: ring}
}

// Rotation caches the trigonometry of one rotation angle so repeated
// evaluations at that angle reuse the same matrix. Angles are degrees,
// counter-clockwise positive, 0 pointing east.
type Rotation struct {
	Degrees float64
	sin     float64
	cos     float64
}

// NewRotation precomputes the rotation matrix for the given angle.
func NewRotation(degrees float64) Rotation {
	rad := mathutil.DegToRad(degrees)
	return Rotation{Degrees: degrees, sin: math.Sin(rad), cos: math.Cos(rad)}
}

// Apply rotates p about pivot.
func (r Rotation) Apply(p, pivot geom.Point) geom.Point {
	dx := p.X - pivot.X
	dy := p.Y - pivot.Y
	return geom.Point{
		X: pivot.X + dx*r.cos - dy*r.sin,
		Y: pivot.Y + dx*r.sin + dy*r.cos,
	}
}
