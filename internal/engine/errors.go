package engine

import "fmt"

// EmptySearchSpaceError reports a range and step combination that yields no
// candidates.
type EmptySearchSpaceError struct {
	Axis string
	Min  float64
	Max  float64
	Step float64
}

func (e *EmptySearchSpaceError) Error() string {
	return fmt.Sprintf("search axis %s yields no candidates (min %g, max %g, step %g)",
		e.Axis, e.Min, e.Max, e.Step)
}

// InfeasibleError reports that every candidate produced an empty footprint
// mask, meaning the footprint lies entirely outside valid terrain.
type InfeasibleError struct {
	Candidates int
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf("all %d candidates produced empty masks, footprint outside valid terrain", e.Candidates)
}
