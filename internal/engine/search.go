package engine

import (
	"math"

	"github.com/sitegrade/sitegrade/pkg/constants"
)

// Range is a closed numeric interval discretized by Step. Step may be
// non-positive only when Min equals Max, which yields a single candidate.
type Range struct {
	Min  float64
	Max  float64
	Step float64
}

func (r Range) validate(axis string) error {
	if r.Max < r.Min || (r.Step <= 0 && r.Max != r.Min) {
		return &EmptySearchSpaceError{Axis: axis, Min: r.Min, Max: r.Max, Step: r.Step}
	}
	return nil
}

// Values enumerates the range from Min upward, including Max when the step
// divides the interval evenly.
func (r Range) Values() []float64 {
	if r.Max == r.Min || r.Step <= 0 {
		return []float64{r.Min}
	}
	steps := int(math.Floor((r.Max-r.Min)/r.Step + constants.RangeStepEpsilon))
	values := make([]float64, 0, steps+1)
	for i := 0; i <= steps; i++ {
		values = append(values, r.Min+float64(i)*r.Step)
	}
	return values
}

// Space is the Cartesian parameter space of one search. Rotation and Slope
// are optional axes; a nil axis pins that parameter.
type Space struct {
	Height   Range
	Rotation *Range
	Slope    *Range
}

// Candidate is one parameter set drawn from a Space. Index is its position
// in enumeration order and breaks ties deterministically.
type Candidate struct {
	Index    int
	Height   float64
	Rotation float64
	Slope    float64
	HasSlope bool
}

// candidates enumerates the full Cartesian product with heights outermost
// and slopes innermost.
func (s Space) candidates() ([]Candidate, error) {
	if err := s.Height.validate("height"); err != nil {
		return nil, err
	}
	heights := s.Height.Values()

	rotations := []float64{0}
	if s.Rotation != nil {
		if err := s.Rotation.validate("rotation"); err != nil {
			return nil, err
		}
		rotations = s.Rotation.Values()
	}

	slopes := []float64{0}
	hasSlope := s.Slope != nil
	if hasSlope {
		if err := s.Slope.validate("slope"); err != nil {
			return nil, err
		}
		slopes = s.Slope.Values()
	}

	out := make([]Candidate, 0, len(heights)*len(rotations)*len(slopes))
	for _, h := range heights {
		for _, rot := range rotations {
			for _, sl := range slopes {
				out = append(out, Candidate{
					Index:    len(out),
					Height:   h,
					Rotation: rot,
					Slope:    sl,
					HasSlope: hasSlope,
				})
			}
		}
	}
	return out, nil
}
