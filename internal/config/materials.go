package config

import (
	"fmt"

	"github.com/sitegrade/sitegrade/internal/balance"
	"github.com/sitegrade/sitegrade/pkg/constants"
)

// EmbankmentConfig controls the transition ring approximation. A nil
// SlopeDeg takes the default batter angle; an explicit zero disables the
// embankment entirely.
type EmbankmentConfig struct {
	SlopeDeg *float64 `yaml:"slopeDeg,omitempty" mapstructure:"slopeDeg"`
}

// Normalize applies the default embankment slope when none was given.
func (e *EmbankmentConfig) Normalize() {
	if e == nil || e.SlopeDeg != nil {
		return
	}
	slope := constants.DefaultEmbankmentSlopeDeg
	e.SlopeDeg = &slope
}

// Validate returns an error for physically impossible batter angles.
func (e *EmbankmentConfig) Validate() error {
	if e == nil || e.SlopeDeg == nil {
		return nil
	}
	if *e.SlopeDeg < 0 || *e.SlopeDeg >= 90 {
		return fmt.Errorf("embankment slope %g° must lie in [0, 90)", *e.SlopeDeg)
	}
	return nil
}

// Angle returns the effective embankment slope in degrees.
func (e *EmbankmentConfig) Angle() float64 {
	if e == nil || e.SlopeDeg == nil {
		return constants.DefaultEmbankmentSlopeDeg
	}
	return *e.SlopeDeg
}

// MaterialsConfig captures swell, compaction, and whether excavated material
// may be reused as fill. A nil Reuse defaults to reuse enabled.
type MaterialsConfig struct {
	SwellFactor      float64 `yaml:"swellFactor,omitempty" mapstructure:"swellFactor"`
	CompactionFactor float64 `yaml:"compactionFactor,omitempty" mapstructure:"compactionFactor"`
	Reuse            *bool   `yaml:"reuse,omitempty" mapstructure:"reuse"`
}

// Normalize applies the default material factors when none were given.
func (m *MaterialsConfig) Normalize() {
	if m == nil {
		return
	}
	if m.SwellFactor == 0 {
		m.SwellFactor = constants.DefaultSwellFactor
	}
	if m.CompactionFactor == 0 {
		m.CompactionFactor = constants.DefaultCompactionFactor
	}
	if m.Reuse == nil {
		reuse := true
		m.Reuse = &reuse
	}
}

// Factors converts the section into balance factors.
func (m *MaterialsConfig) Factors() balance.Factors {
	reuse := m.Reuse == nil || *m.Reuse
	return balance.Factors{
		SwellFactor:      m.SwellFactor,
		CompactionFactor: m.CompactionFactor,
		ReuseEnabled:     reuse,
	}
}

// Validate checks the factors against their physical ranges.
func (m *MaterialsConfig) Validate() error {
	return m.Factors().Validate()
}

// CostsConfig holds the unit rates applied to the selected scenario. All
// rates are per cubic meter except Surfacing, which is per cubic meter of
// surfacing layer (area times thickness).
type CostsConfig struct {
	Excavation         float64 `yaml:"excavation,omitempty" mapstructure:"excavation"`
	Transport          float64 `yaml:"transport,omitempty" mapstructure:"transport"`
	FillMaterial       float64 `yaml:"fillMaterial,omitempty" mapstructure:"fillMaterial"`
	Compaction         float64 `yaml:"compaction,omitempty" mapstructure:"compaction"`
	Surfacing          float64 `yaml:"surfacing,omitempty" mapstructure:"surfacing"`
	SurfacingThickness float64 `yaml:"surfacingThickness,omitempty" mapstructure:"surfacingThickness"`
}

// Rates converts the section into balance rates.
func (c *CostsConfig) Rates() balance.Rates {
	return balance.Rates{
		Excavation:   c.Excavation,
		Transport:    c.Transport,
		FillMaterial: c.FillMaterial,
		Compaction:   c.Compaction,
		Surfacing:    c.Surfacing,
	}
}

// Validate returns an error for negative rates or thickness.
func (c *CostsConfig) Validate() error {
	rates := []struct {
		name  string
		value float64
	}{
		{"excavation", c.Excavation},
		{"transport", c.Transport},
		{"fillMaterial", c.FillMaterial},
		{"compaction", c.Compaction},
		{"surfacing", c.Surfacing},
		{"surfacingThickness", c.SurfacingThickness},
	}
	for _, rate := range rates {
		if rate.value < 0 {
			return fmt.Errorf("cost rate %s (%g) must be non-negative", rate.name, rate.value)
		}
	}
	return nil
}
