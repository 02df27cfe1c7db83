// Package terrain defines the immutable raster elevation grid the earthwork
// engine samples, along with the difference rasters derived from it.
package terrain

import (
	"fmt"
	"math"

	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/floats"
)

// Grid is a raster elevation accessor. The origin is the world coordinate of
// the lower-left corner of the lower-left cell; rows run south to north and
// columns west to east, matching the row-major layout of the backing array.
// A Grid is immutable once constructed and safe for concurrent readers.
type Grid struct {
	originX  float64
	originY  float64
	cellSize float64
	cols     int
	rows     int
	elev     *sparse.DenseArray
	noData   float64
	crs      string
}

// New constructs a Grid over the given elevations. The elevations slice is
// row-major with rows*cols entries, row 0 being the southmost row; the caller
// hands over ownership of the slice.
func New(originX, originY, cellSize float64, cols, rows int, elevations []float64, noData float64, crs string) (*Grid, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("terrain grid dimensions must be positive, got %dx%d", cols, rows)
	}
	if cellSize <= 0 {
		return nil, fmt.Errorf("terrain grid cell size must be positive, got %g", cellSize)
	}
	if len(elevations) != cols*rows {
		return nil, fmt.Errorf("terrain grid expects %d elevation values, got %d", cols*rows, len(elevations))
	}
	arr := sparse.ZerosDense(rows, cols)
	copy(arr.Elements, elevations)
	return &Grid{
		originX:  originX,
		originY:  originY,
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		elev:     arr,
		noData:   noData,
		crs:      crs,
	}, nil
}

// Uniform constructs a grid with every cell at the given elevation. It is
// primarily useful for synthetic terrain in tests and examples.
func Uniform(originX, originY, cellSize float64, cols, rows int, elevation float64) *Grid {
	elevations := make([]float64, cols*rows)
	for i := range elevations {
		elevations[i] = elevation
	}
	g, err := New(originX, originY, cellSize, cols, rows, elevations, math.Inf(-1), "")
	if err != nil {
		panic(err)
	}
	return g
}

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// CellSize returns the square cell edge length in meters.
func (g *Grid) CellSize() float64 { return g.cellSize }

// CellArea returns the area of one cell in m².
func (g *Grid) CellArea() float64 { return g.cellSize * g.cellSize }

// Origin returns the world coordinate of the grid's lower-left corner.
func (g *Grid) Origin() (x, y float64) { return g.originX, g.originY }

// NoData returns the sentinel marking cells without valid elevation.
func (g *Grid) NoData() float64 { return g.noData }

// CRS returns the coordinate reference tag supplied by the terrain provider.
func (g *Grid) CRS() string { return g.crs }

// Extent returns the grid's outer bounds in world coordinates.
func (g *Grid) Extent() *geom.Bounds {
	return &geom.Bounds{
		Min: geom.Point{X: g.originX, Y: g.originY},
		Max: geom.Point{
			X: g.originX + float64(g.cols)*g.cellSize,
			Y: g.originY + float64(g.rows)*g.cellSize,
		},
	}
}

// IsNoData reports whether v is the grid's NoData sentinel.
func (g *Grid) IsNoData(v float64) bool {
	if math.IsNaN(g.noData) {
		return math.IsNaN(v)
	}
	return v == g.noData
}

// InBounds reports whether (col, row) addresses a cell of the grid.
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.cols && row >= 0 && row < g.rows
}

// Value returns the elevation at (col, row); ok is false outside the grid or
// on NoData cells.
func (g *Grid) Value(col, row int) (elevation float64, ok bool) {
	if !g.InBounds(col, row) {
		return 0, false
	}
	v := g.elev.Get(row, col)
	if g.IsNoData(v) {
		return 0, false
	}
	return v, true
}

// CellIndex returns the cell containing the world coordinate (x, y); ok is
// false outside the grid extent.
func (g *Grid) CellIndex(x, y float64) (col, row int, ok bool) {
	col = int(math.Floor((x - g.originX) / g.cellSize))
	row = int(math.Floor((y - g.originY) / g.cellSize))
	if !g.InBounds(col, row) {
		return 0, 0, false
	}
	return col, row, true
}

// CellCenter returns the world coordinate of the center of cell (col, row).
func (g *Grid) CellCenter(col, row int) (x, y float64) {
	x = g.originX + (float64(col)+0.5)*g.cellSize
	y = g.originY + (float64(row)+0.5)*g.cellSize
	return x, y
}

// Sample returns the elevation of the cell containing (x, y); ok is false
// outside the grid extent or on NoData cells.
func (g *Grid) Sample(x, y float64) (elevation float64, ok bool) {
	col, row, ok := g.CellIndex(x, y)
	if !ok {
		return 0, false
	}
	return g.Value(col, row)
}

// MinMax returns the smallest and largest valid elevation on the grid; ok is
// false when every cell is NoData.
func (g *Grid) MinMax() (min, max float64, ok bool) {
	valid := make([]float64, 0, len(g.elev.Elements))
	for _, v := range g.elev.Elements {
		if !g.IsNoData(v) {
			valid = append(valid, v)
		}
	}
	if len(valid) == 0 {
		return 0, 0, false
	}
	return floats.Min(valid), floats.Max(valid), true
}
