package geometry

import (
	"math"

	"github.com/ctessum/geom"

	"github.com/sitegrade/sitegrade/pkg/mathutil"
)

// NearestOnRing returns the point on the closed ring nearest to p and its
// distance from p.
func NearestOnRing(p geom.Point, ring []geom.Point) (geom.Point, float64) {
	best := ring[0]
	bestD2 := math.Inf(1)
	n := len(ring)
	for i := 0; i < n; i++ {
		q := nearestOnSegment(p, ring[i], ring[(i+1)%n])
		dx := q.X - p.X
		dy := q.Y - p.Y
		d2 := dx*dx + dy*dy
		if d2 < bestD2 {
			bestD2 = d2
			best = q
		}
	}
	return best, math.Sqrt(bestD2)
}

func nearestOnSegment(p, a, b geom.Point) geom.Point {
	abx := b.X - a.X
	aby := b.Y - a.Y
	len2 := abx*abx + aby*aby
	if len2 == 0 {
		return a
	}
	t := mathutil.Clamp(((p.X-a.X)*abx+(p.Y-a.Y)*aby)/len2, 0, 1)
	return geom.Point{X: a.X + t*abx, Y: a.Y + t*aby}
}

// ContainsFootprint reports whether every vertex of inner lies inside or on
// the boundary of outer.
func ContainsFootprint(outer, inner Footprint) bool {
	poly := outer.Polygon()
	for _, p := range inner.Ring {
		if p.Within(poly) == geom.Outside {
			return false
		}
	}
	return true
}

// BoundaryGap returns the smallest distance between the outlines of a and b,
// zero when the outlines touch or cross.
func BoundaryGap(a, b Footprint) float64 {
	na := len(a.Ring)
	nb := len(b.Ring)
	for i := 0; i < na; i++ {
		for j := 0; j < nb; j++ {
			if segmentsCross(a.Ring[i], a.Ring[(i+1)%na], b.Ring[j], b.Ring[(j+1)%nb]) {
				return 0
			}
		}
	}
	gap := math.Inf(1)
	for _, p := range a.Ring {
		if _, d := NearestOnRing(p, b.Ring); d < gap {
			gap = d
		}
	}
	for _, p := range b.Ring {
		if _, d := NearestOnRing(p, a.Ring); d < gap {
			gap = d
		}
	}
	return gap
}

func cross(a, b, c geom.Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func onSegment(a, b, p geom.Point) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}

func segmentsCross(p1, p2, q1, q2 geom.Point) bool {
	d1 := cross(q1, q2, p1)
	d2 := cross(q1, q2, p2)
	d3 := cross(p1, p2, q1)
	d4 := cross(p1, p2, q2)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	switch {
	case d1 == 0 && onSegment(q1, q2, p1):
		return true
	case d2 == 0 && onSegment(q1, q2, p2):
		return true
	case d3 == 0 && onSegment(p1, p2, q1):
		return true
	case d4 == 0 && onSegment(p1, p2, q2):
		return true
	}
	return false
}
