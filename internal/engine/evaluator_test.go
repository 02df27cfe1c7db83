package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/sitegrade/sitegrade/internal/geometry"
	"github.com/sitegrade/sitegrade/internal/surface"
	"github.com/sitegrade/sitegrade/pkg/constants"
	"github.com/sitegrade/sitegrade/pkg/testutil"
)

func TestSurfaceEvaluatorFindsLevel(t *testing.T) {
	g := testutil.UniformGrid(20, 20, 100)
	eval := NewSurfaceEvaluator(nil, nil, nil, g,
		testutil.Rect("pad", 5, 5, 10, 10),
		surface.Spec{Name: "pad", Kind: constants.SurfaceKindFlat},
		true,
	)
	e, err := New(nil, eval, Space{Height: Range{Min: 99, Max: 101, Step: 0.5}}, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	out, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Best.Candidate.Height != 100 {
		t.Errorf("Best height = %g, expected 100 on level terrain", out.Best.Candidate.Height)
	}
	if out.Best.Total() != 0 {
		t.Errorf("Best total = %g, expected 0", out.Best.Total())
	}
	if out.Best.MaskCells != 100 {
		t.Errorf("Best mask cells = %d, expected 100", out.Best.MaskCells)
	}
}

func TestSurfaceEvaluatorStrictBounds(t *testing.T) {
	g := testutil.UniformGrid(20, 20, 100)
	eval := NewSurfaceEvaluator(nil, nil, nil, g,
		testutil.Rect("pad", 15, 15, 10, 10),
		surface.Spec{Name: "pad", Kind: constants.SurfaceKindFlat},
		true,
	)
	e, err := New(nil, eval, Space{Height: Range{Min: 100, Max: 100}}, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = e.Run(context.Background())
	var oobErr *geometry.OutOfBoundsError
	if !errors.As(err, &oobErr) {
		t.Fatalf("Run = %v, expected OutOfBoundsError", err)
	}
}

func TestSurfaceEvaluatorLenientOffGrid(t *testing.T) {
	g := testutil.UniformGrid(20, 20, 100)
	eval := NewSurfaceEvaluator(nil, nil, nil, g,
		testutil.Rect("pad", 100, 100, 10, 10),
		surface.Spec{Name: "pad", Kind: constants.SurfaceKindFlat},
		false,
	)
	e, err := New(nil, eval, Space{Height: Range{Min: 99, Max: 101, Step: 1}}, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = e.Run(context.Background())
	var infErr *InfeasibleError
	if !errors.As(err, &infErr) {
		t.Fatalf("Run = %v, expected InfeasibleError for footprint off the grid", err)
	}
}

func TestSurfaceEvaluatorRotationAxis(t *testing.T) {
	g := testutil.UniformGrid(20, 20, 100)
	eval := NewSurfaceEvaluator(nil, nil, nil, g,
		testutil.Rect("pad", 5, 5, 10, 10),
		surface.Spec{Name: "pad", Kind: constants.SurfaceKindFlat},
		false,
	)
	space := Space{
		Height:   Range{Min: 99.5, Max: 100.5, Step: 0.5},
		Rotation: &Range{Min: 0, Max: 90, Step: 45},
	}
	e, err := New(nil, eval, space, Options{Workers: 4})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	out, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Total != 9 {
		t.Errorf("Total = %d, expected 3 heights x 3 rotations", out.Total)
	}
	if out.Best.Candidate.Height != 100 || out.Best.Candidate.Rotation != 0 {
		t.Errorf("Best = height %g rotation %g, expected 100 at 0 degrees",
			out.Best.Candidate.Height, out.Best.Candidate.Rotation)
	}
	// One rasterization per distinct angle, shared across heights.
	if len(eval.masks) != 3 {
		t.Errorf("cached masks = %d, expected 3", len(eval.masks))
	}
}

func TestSurfaceEvaluatorSlopeAxis(t *testing.T) {
	// Terrain falls east at 5 percent; searching the slope axis should land
	// on the grade-matching candidate.
	g := testutil.RampGridEast(10, 10, 100, 0.05)
	eval := NewSurfaceEvaluator(nil, nil, nil, g,
		testutil.Rect("apron", 0, 0, 10, 10),
		surface.Spec{
			Name: "apron", Kind: constants.SurfaceKindSloped,
			DirectionDeg: 0, MinSlope: 2, MaxSlope: 8,
		},
		true,
	)
	space := Space{
		Height: Range{Min: 99.75, Max: 99.75},
		Slope:  &Range{Min: 3, Max: 7, Step: 1},
	}
	e, err := New(nil, eval, space, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	out, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Best.Candidate.Slope != 5 {
		t.Errorf("Best slope = %g, expected 5 to match the grade", out.Best.Candidate.Slope)
	}
	if out.Best.Total() > 1e-9 {
		t.Errorf("Best total = %g, expected near zero", out.Best.Total())
	}
}
