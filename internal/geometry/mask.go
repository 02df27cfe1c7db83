package geometry

import (
	"math"

	"github.com/ctessum/geom"
	"go.uber.org/zap"

	"github.com/sitegrade/sitegrade/internal/terrain"
)

// Cell addresses one raster cell by column and row.
type Cell struct {
	Col int
	Row int
}

// Mask is the set of grid cells covered by a rotated footprint. Cells are
// recorded row-major from the south, so iteration order is deterministic.
type Mask struct {
	Surface  string
	Rotation float64
	Ring     []geom.Point

	grid     *terrain.Grid
	minCol   int
	minRow   int
	spanCols int
	spanRows int
	bits     []bool
	cells    []Cell
}

func newMask(surface string, rotation float64, ring []geom.Point, g *terrain.Grid, minCol, minRow, maxCol, maxRow int) *Mask {
	m := &Mask{
		Surface:  surface,
		Rotation: rotation,
		Ring:     ring,
		grid:     g,
		minCol:   minCol,
		minRow:   minRow,
	}
	if maxCol >= minCol && maxRow >= minRow {
		m.spanCols = maxCol - minCol + 1
		m.spanRows = maxRow - minRow + 1
		m.bits = make([]bool, m.spanCols*m.spanRows)
	}
	return m
}

func (m *Mask) set(col, row int) {
	m.bits[(row-m.minRow)*m.spanCols+(col-m.minCol)] = true
	m.cells = append(m.cells, Cell{Col: col, Row: row})
}

// Grid returns the terrain grid the mask is aligned to.
func (m *Mask) Grid() *terrain.Grid { return m.grid }

// Count returns the number of covered cells.
func (m *Mask) Count() int { return len(m.cells) }

// Empty reports whether the mask covers no cells.
func (m *Mask) Empty() bool { return len(m.cells) == 0 }

// Area returns the covered area in m².
func (m *Mask) Area() float64 { return float64(len(m.cells)) * m.grid.CellArea() }

// Cells returns the covered cells in row-major order. The caller must not
// modify the returned slice.
func (m *Mask) Cells() []Cell { return m.cells }

// Covers reports whether cell (col, row) is part of the mask.
func (m *Mask) Covers(col, row int) bool {
	if col < m.minCol || row < m.minRow || col >= m.minCol+m.spanCols || row >= m.minRow+m.spanRows {
		return false
	}
	return m.bits[(row-m.minRow)*m.spanCols+(col-m.minCol)]
}

// MaskFor rasterizes the footprint onto the grid at the given rotation by
// testing cell centers. Cells outside the grid or without valid terrain are
// excluded. When strict is true a footprint extending beyond the grid extent,
// even partially, fails with OutOfBoundsError, as does one covering no valid
// terrain at all; otherwise overhang clips silently and a footprint without
// terrain yields an empty mask.
func (e *Engine) MaskFor(g *terrain.Grid, f Footprint, rot Rotation, strict bool) (*Mask, error) {
	rotated := f.Rotated(rot)
	b := rotated.Bounds()
	ext := g.Extent()
	if strict && !boundsWithin(b, ext) {
		return nil, &OutOfBoundsError{Surface: f.Name, Footprint: b, Extent: ext}
	}

	originX, originY := g.Origin()
	cs := g.CellSize()
	minCol := clampIndex(int(math.Floor((b.Min.X-originX)/cs)), g.Cols())
	maxCol := clampIndex(int(math.Ceil((b.Max.X-originX)/cs)), g.Cols())
	minRow := clampIndex(int(math.Floor((b.Min.Y-originY)/cs)), g.Rows())
	maxRow := clampIndex(int(math.Ceil((b.Max.Y-originY)/cs)), g.Rows())

	mask := newMask(f.Name, rot.Degrees, rotated.Ring, g, minCol, minRow, maxCol, maxRow)
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			if _, ok := g.Value(col, row); !ok {
				continue
			}
			cx, cy := g.CellCenter(col, row)
			if e.Contains(geom.Point{X: cx, Y: cy}, rotated) {
				mask.set(col, row)
			}
		}
	}
	if strict && mask.Empty() {
		return nil, &OutOfBoundsError{Surface: f.Name, Footprint: b, Extent: ext, NoTerrain: true}
	}

	e.logger.Debug("rasterized footprint",
		zap.String("op", "geometry.MaskFor"),
		zap.String("surface", f.Name),
		zap.Float64("rotation_deg", rot.Degrees),
		zap.Int("cells", mask.Count()),
	)
	return mask, nil
}

// RingMask returns the embankment ring of a mask: cells whose center lies
// outside the footprint but within width of its boundary. Cells without
// valid terrain are skipped, as are cells beyond the grid edge.
func (e *Engine) RingMask(m *Mask, width float64) *Mask {
	g := m.grid
	ring := &Mask{Surface: m.Surface, Rotation: m.Rotation, Ring: m.Ring, grid: g}
	if width <= 0 || len(m.Ring) < 3 {
		return ring
	}

	footprint := Footprint{Name: m.Surface, Ring: m.Ring}
	b := footprint.Bounds()
	originX, originY := g.Origin()
	cs := g.CellSize()
	minCol := clampIndex(int(math.Floor((b.Min.X-width-originX)/cs)), g.Cols())
	maxCol := clampIndex(int(math.Ceil((b.Max.X+width-originX)/cs)), g.Cols())
	minRow := clampIndex(int(math.Floor((b.Min.Y-width-originY)/cs)), g.Rows())
	maxRow := clampIndex(int(math.Ceil((b.Max.Y+width-originY)/cs)), g.Rows())

	ring.minCol = minCol
	ring.minRow = minRow
	if maxCol >= minCol && maxRow >= minRow {
		ring.spanCols = maxCol - minCol + 1
		ring.spanRows = maxRow - minRow + 1
		ring.bits = make([]bool, ring.spanCols*ring.spanRows)
	}

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			if m.Covers(col, row) {
				continue
			}
			if _, ok := g.Value(col, row); !ok {
				continue
			}
			cx, cy := g.CellCenter(col, row)
			center := geom.Point{X: cx, Y: cy}
			if e.Contains(center, footprint) {
				continue
			}
			if _, d := NearestOnRing(center, m.Ring); d <= width {
				ring.set(col, row)
			}
		}
	}
	return ring
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}

func boundsWithin(inner, outer *geom.Bounds) bool {
	return inner.Min.X >= outer.Min.X && inner.Min.Y >= outer.Min.Y &&
		inner.Max.X <= outer.Max.X && inner.Max.Y <= outer.Max.Y
}
