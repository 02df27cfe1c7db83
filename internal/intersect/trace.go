package intersect

import (
	"sort"

	"github.com/ctessum/geom"
	"go.uber.org/zap"

	"github.com/sitegrade/sitegrade/internal/terrain"
)

// edgeKey identifies one lattice edge between adjacent cell centers. A zero
// crossing lies on exactly one such edge, shared by at most two quads, so
// keying crossings by edge links segments without floating point matching.
type edgeKey struct {
	col  int
	row  int
	vert bool
}

func (k edgeKey) less(o edgeKey) bool {
	if k.row != o.row {
		return k.row < o.row
	}
	if k.col != o.col {
		return k.col < o.col
	}
	return !k.vert && o.vert
}

type segment struct {
	a edgeKey
	b edgeKey
}

// Trace walks the difference raster with a marching squares pass over 2x2
// quads of adjacent cell centers and links the zero crossings into ordered
// polylines. Quads touching unset cells are skipped, so lines end at the mask
// edge. Zero, one, or several disjoint lines are all valid outcomes; an empty
// set is logged as a warning since it usually means the footprint is entirely
// cut or entirely filled.
func (e *Extractor) Trace(d *terrain.DiffRaster) []Line {
	g := d.Grid
	points := make(map[edgeKey]geom.Point)
	adj := make(map[edgeKey][]edgeKey)
	link := func(s segment) {
		if points[s.a] == points[s.b] {
			return
		}
		adj[s.a] = append(adj[s.a], s.b)
		adj[s.b] = append(adj[s.b], s.a)
	}

	for row := 0; row < g.Rows()-1; row++ {
		for col := 0; col < g.Cols()-1; col++ {
			v00, ok := d.At(col, row)
			if !ok {
				continue
			}
			v10, ok := d.At(col+1, row)
			if !ok {
				continue
			}
			v01, ok := d.At(col, row+1)
			if !ok {
				continue
			}
			v11, ok := d.At(col+1, row+1)
			if !ok {
				continue
			}

			var crossings []edgeKey
			record := func(k edgeKey, va, vb float64, ax, ay, bx, by float64) {
				if (va >= 0) == (vb >= 0) {
					return
				}
				t := va / (va - vb)
				if _, seen := points[k]; !seen {
					points[k] = geom.Point{X: ax + t*(bx-ax), Y: ay + t*(by-ay)}
				}
				crossings = append(crossings, k)
			}

			x0, y0 := g.CellCenter(col, row)
			x1, y1 := g.CellCenter(col+1, row+1)
			record(edgeKey{col, row, false}, v00, v10, x0, y0, x1, y0)
			record(edgeKey{col + 1, row, true}, v10, v11, x1, y0, x1, y1)
			record(edgeKey{col, row + 1, false}, v01, v11, x0, y1, x1, y1)
			record(edgeKey{col, row, true}, v00, v01, x0, y0, x0, y1)

			switch len(crossings) {
			case 2:
				link(segment{crossings[0], crossings[1]})
			case 4:
				// Saddle: both diagonals change sign. The cell-center mean
				// decides which pair of corners the contour separates.
				mean := (v00 + v10 + v01 + v11) / 4
				if (v10 >= 0) != (mean >= 0) {
					link(segment{crossings[0], crossings[1]})
					link(segment{crossings[2], crossings[3]})
				} else {
					link(segment{crossings[0], crossings[3]})
					link(segment{crossings[1], crossings[2]})
				}
			}
		}
	}

	lines := assemble(d.Surface, points, adj)
	if len(lines) == 0 {
		e.logger.Warn("no zero crossing within footprint",
			zap.String("op", "intersect.Trace"),
			zap.String("surface", d.Surface),
		)
	} else {
		e.logger.Debug("traced zero crossings",
			zap.String("op", "intersect.Trace"),
			zap.String("surface", d.Surface),
			zap.Int("lines", len(lines)),
		)
	}
	return lines
}

// assemble chains crossing segments into polylines. Every edge carries at
// most two segments, so the crossing graph decomposes into simple paths and
// cycles; paths are walked first from their endpoints, then leftover cycles
// from their smallest edge. Keys are visited in sorted order to keep the
// output deterministic.
func assemble(surface string, points map[edgeKey]geom.Point, adj map[edgeKey][]edgeKey) []Line {
	keys := make([]edgeKey, 0, len(adj))
	for k := range adj {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })

	visited := make(map[edgeKey]bool, len(keys))
	var lines []Line

	walk := func(start edgeKey, closed bool) Line {
		line := Line{Surface: surface, Points: []geom.Point{points[start]}}
		visited[start] = true
		prev := start
		cur := start
		for {
			var next edgeKey
			found := false
			for _, n := range adj[cur] {
				if n != prev && !visited[n] {
					next = n
					found = true
					break
				}
			}
			if !found {
				if closed {
					line.Points = append(line.Points, points[start])
				}
				return line
			}
			line.Points = append(line.Points, points[next])
			visited[next] = true
			prev = cur
			cur = next
		}
	}

	for _, k := range keys {
		if !visited[k] && len(adj[k]) == 1 {
			lines = append(lines, walk(k, false))
		}
	}
	for _, k := range keys {
		if !visited[k] {
			lines = append(lines, walk(k, true))
		}
	}
	return lines
}
