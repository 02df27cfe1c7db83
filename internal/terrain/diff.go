package terrain

import (
	"math"

	"github.com/ctessum/sparse"
)

// DiffRaster holds per-cell height differences between a target surface and
// the terrain, aligned to a source grid. Cells outside the evaluated footprint
// or without valid terrain carry NaN.
type DiffRaster struct {
	Surface string
	Grid    *Grid
	Values  *sparse.DenseArray
}

// NewDiffRaster allocates a difference raster aligned to g with every cell
// initialized to NaN.
func NewDiffRaster(surface string, g *Grid) *DiffRaster {
	arr := sparse.ZerosDense(g.Rows(), g.Cols())
	for i := range arr.Elements {
		arr.Elements[i] = math.NaN()
	}
	return &DiffRaster{Surface: surface, Grid: g, Values: arr}
}

// Set records the difference for cell (col, row).
func (d *DiffRaster) Set(col, row int, v float64) {
	d.Values.Set(v, row, col)
}

// At returns the difference at (col, row); ok is false outside the raster or
// on cells that were never set.
func (d *DiffRaster) At(col, row int) (v float64, ok bool) {
	if !d.Grid.InBounds(col, row) {
		return 0, false
	}
	v = d.Values.Get(row, col)
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
