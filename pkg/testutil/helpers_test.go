package testutil

import (
	"testing"
)

func TestUniformGrid(t *testing.T) {
	g := UniformGrid(12, 8, 101.5)

	if g.Cols() != 12 || g.Rows() != 8 {
		t.Errorf("dimensions = %dx%d, expected 12x8", g.Cols(), g.Rows())
	}
	if g.CellSize() != 1 {
		t.Errorf("CellSize() = %g, expected 1 m cells", g.CellSize())
	}
	if x, y := g.Origin(); x != 0 || y != 0 {
		t.Errorf("Origin() = (%g, %g), expected the world origin", x, y)
	}
	for _, cell := range [][2]int{{0, 0}, {11, 7}, {5, 3}} {
		z, ok := g.Value(cell[0], cell[1])
		if !ok || z != 101.5 {
			t.Errorf("Value(%d, %d) = %g, %t, expected uniform 101.5", cell[0], cell[1], z, ok)
		}
	}
}

func TestRampGridEast(t *testing.T) {
	g := RampGridEast(10, 4, 100, 0.05)

	// Elevation falls 5 cm per meter eastward, sampled at cell centers.
	z0, ok := g.Value(0, 0)
	if !ok || z0 != 100-0.05*0.5 {
		t.Errorf("Value(0, 0) = %g, %t, expected %g", z0, ok, 100-0.05*0.5)
	}
	z9, ok := g.Value(9, 3)
	if !ok || z9 != 100-0.05*9.5 {
		t.Errorf("Value(9, 3) = %g, %t, expected %g", z9, ok, 100-0.05*9.5)
	}

	// Same column, different row: no north-south gradient.
	zN, _ := g.Value(4, 0)
	zS, _ := g.Value(4, 3)
	if zN != zS {
		t.Errorf("rows differ (%g vs %g), expected a purely eastward ramp", zN, zS)
	}
}

func TestRect(t *testing.T) {
	f := Rect("pad", 2, 3, 10, 6)

	if f.Name != "pad" {
		t.Errorf("Name = %s, expected pad", f.Name)
	}
	if len(f.Ring) != 4 {
		t.Fatalf("len(Ring) = %d, expected 4 corners", len(f.Ring))
	}
	if err := f.Validate(); err != nil {
		t.Errorf("Validate() = %v, expected a valid rectangle", err)
	}
	if a := f.Area(); a != 60 {
		t.Errorf("Area() = %g, expected 60", a)
	}
	if c := f.Centroid(); c.X != 7 || c.Y != 6 {
		t.Errorf("Centroid() = (%g, %g), expected (7, 6)", c.X, c.Y)
	}
}
