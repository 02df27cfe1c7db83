// Package balance converts earthwork volumes into material reuse figures
// and cost breakdowns. No rounding is applied; presentation rounding is the
// caller's responsibility.
package balance

import (
	"fmt"
	"math"

	"github.com/sitegrade/sitegrade/internal/volume"
)

// Factors captures how excavated material swells when loosened and how fill
// compacts when placed, and whether cut material may be reused as fill.
type Factors struct {
	SwellFactor      float64
	CompactionFactor float64
	ReuseEnabled     bool
}

// Validate checks the factors against their physical ranges.
func (f Factors) Validate() error {
	if f.SwellFactor < 1 {
		return fmt.Errorf("swell factor %g must be at least 1, excavation loosens material", f.SwellFactor)
	}
	if f.CompactionFactor <= 0 || f.CompactionFactor > 1 {
		return fmt.Errorf("compaction factor %g must be in (0, 1], placement compacts material", f.CompactionFactor)
	}
	return nil
}

// Balance holds reusable-material figures in cubic meters.
type Balance struct {
	Available float64
	Required  float64
	Reused    float64
	Surplus   float64
	Deficit   float64
}

// Compute derives the material balance of a volume result. Embankment
// volumes count toward excavated and placed material. With reuse disabled
// every required cubic meter is imported and all cut material is hauled off.
func Compute(r volume.Result, f Factors) (Balance, error) {
	if err := f.Validate(); err != nil {
		return Balance{}, err
	}

	available := (r.Cut + r.EmbankmentCut) * f.SwellFactor
	required := (r.Fill + r.EmbankmentFill) / f.CompactionFactor
	if !f.ReuseEnabled {
		return Balance{
			Available: available,
			Required:  required,
			Surplus:   available,
			Deficit:   required,
		}, nil
	}
	return Balance{
		Available: available,
		Required:  required,
		Reused:    math.Min(available, required),
		Surplus:   math.Max(0, available-required),
		Deficit:   math.Max(0, required-available),
	}, nil
}

// Rates are unit costs per cubic meter of material handled.
type Rates struct {
	Excavation   float64
	Transport    float64
	FillMaterial float64
	Compaction   float64
	Surfacing    float64
}

// CostBreakdown itemizes the cost of one scenario.
type CostBreakdown struct {
	Excavation   float64
	Transport    float64
	FillMaterial float64
	Compaction   float64
	Surfacing    float64
	Total        float64
}

// Cost prices a scenario linearly: rate times volume per category. Transport
// covers surplus hauled off plus deficit hauled in; the surfacing component
// covers the finished area with a layer of the given thickness.
func Cost(r volume.Result, b Balance, rates Rates, surfaceArea, surfacingThickness float64) CostBreakdown {
	cb := CostBreakdown{
		Excavation:   rates.Excavation * (r.Cut + r.EmbankmentCut),
		Transport:    rates.Transport * (b.Surplus + b.Deficit),
		FillMaterial: rates.FillMaterial * b.Deficit,
		Compaction:   rates.Compaction * (r.Fill + r.EmbankmentFill),
		Surfacing:    rates.Surfacing * surfaceArea * surfacingThickness,
	}
	cb.Total = cb.Excavation + cb.Transport + cb.FillMaterial + cb.Compaction + cb.Surfacing
	return cb
}
