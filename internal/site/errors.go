package site

import "fmt"

// SpatialConstraintError reports a required spatial relationship between two
// footprints that does not hold.
type SpatialConstraintError struct {
	Relationship string
	SurfaceA     string
	SurfaceB     string
	Detail       string
}

func (e *SpatialConstraintError) Error() string {
	return fmt.Sprintf("surfaces %s and %s violate %s constraint: %s",
		e.SurfaceA, e.SurfaceB, e.Relationship, e.Detail)
}
