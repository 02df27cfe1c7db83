// Package testutil provides common fixture builders for testing.
package testutil

import (
	"github.com/ctessum/geom"

	"github.com/sitegrade/sitegrade/internal/geometry"
	"github.com/sitegrade/sitegrade/internal/terrain"
)

// UniformGrid returns a cols x rows grid with 1 m cells anchored at the
// origin, every cell at the given elevation.
func UniformGrid(cols, rows int, elevation float64) *terrain.Grid {
	return terrain.Uniform(0, 0, 1, cols, rows, elevation)
}

// RampGridEast returns a grid with 1 m cells whose elevation falls eastward
// from base by gradient meters per meter, sampled at cell centers.
func RampGridEast(cols, rows int, base, gradient float64) *terrain.Grid {
	elevations := make([]float64, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x := float64(col) + 0.5
			elevations[row*cols+col] = base - gradient*x
		}
	}
	g, err := terrain.New(0, 0, 1, cols, rows, elevations, -9999, "")
	if err != nil {
		panic(err)
	}
	return g
}

// Rect returns a rectangular footprint with its lower-left corner at
// (minX, minY).
func Rect(name string, minX, minY, width, height float64) geometry.Footprint {
	return geometry.Footprint{Name: name, Ring: []geom.Point{
		{X: minX, Y: minY},
		{X: minX + width, Y: minY},
		{X: minX + width, Y: minY + height},
		{X: minX, Y: minY + height},
	}}
}
