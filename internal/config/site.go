package config

import (
	"fmt"
	"strings"

	"github.com/sitegrade/sitegrade/pkg/constants"
)

const (
	defaultSiteName   = "site"
	defaultSearchStep = 0.1
)

// SiteConfig describes the site being graded: the anchored search window,
// optional rotation and slope search axes, and every planned surface.
type SiteConfig struct {
	Name          string               `yaml:"name,omitempty" mapstructure:"name"`
	Anchor        float64              `yaml:"anchor" mapstructure:"anchor"`
	WindowBelow   float64              `yaml:"windowBelow,omitempty" mapstructure:"windowBelow"`
	WindowAbove   float64              `yaml:"windowAbove,omitempty" mapstructure:"windowAbove"`
	Step          float64              `yaml:"step,omitempty" mapstructure:"step"`
	Strict        bool                 `yaml:"strict,omitempty" mapstructure:"strict"`
	Rotation      *AxisConfig          `yaml:"rotation,omitempty" mapstructure:"rotation"`
	Slope         *AxisConfig          `yaml:"slope,omitempty" mapstructure:"slope"`
	Surfaces      []SurfaceConfig      `yaml:"surfaces" mapstructure:"surfaces"`
	Relationships []RelationshipConfig `yaml:"relationships,omitempty" mapstructure:"relationships"`
}

// AxisConfig discretizes one optional search axis.
type AxisConfig struct {
	Min  float64 `yaml:"min" mapstructure:"min"`
	Max  float64 `yaml:"max" mapstructure:"max"`
	Step float64 `yaml:"step,omitempty" mapstructure:"step"`
}

// Vertex is one footprint corner in site coordinates.
type Vertex struct {
	X float64 `yaml:"x" mapstructure:"x"`
	Y float64 `yaml:"y" mapstructure:"y"`
}

// SurfaceConfig describes one planned surface. The first surface is the
// primary unless another is marked; dependent surfaces follow the primary
// height through their derivation rule.
type SurfaceConfig struct {
	Name         string   `yaml:"name" mapstructure:"name"`
	Primary      bool     `yaml:"primary,omitempty" mapstructure:"primary"`
	Kind         string   `yaml:"kind,omitempty" mapstructure:"kind"`
	Footprint    []Vertex `yaml:"footprint" mapstructure:"footprint"`
	SlopePercent float64  `yaml:"slopePercent,omitempty" mapstructure:"slopePercent"`
	DirectionDeg float64  `yaml:"directionDeg,omitempty" mapstructure:"directionDeg"`
	AutoFit      bool     `yaml:"autoFit,omitempty" mapstructure:"autoFit"`
	MinSlope     float64  `yaml:"minSlope,omitempty" mapstructure:"minSlope"`
	MaxSlope     float64  `yaml:"maxSlope,omitempty" mapstructure:"maxSlope"`
	Derive       string   `yaml:"derive,omitempty" mapstructure:"derive"`
	Offset       float64  `yaml:"offset,omitempty" mapstructure:"offset"`
}

// RelationshipConfig requires a spatial relation between two named surfaces.
type RelationshipConfig struct {
	Kind         string  `yaml:"kind" mapstructure:"kind"`
	SurfaceA     string  `yaml:"surfaceA" mapstructure:"surfaceA"`
	SurfaceB     string  `yaml:"surfaceB" mapstructure:"surfaceB"`
	GapTolerance float64 `yaml:"gapTolerance,omitempty" mapstructure:"gapTolerance"`
}

// CanonicalSurfaceKind returns the canonical identifier for a surface kind.
func CanonicalSurfaceKind(value string) string {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	switch trimmed {
	case "", constants.SurfaceKindFlat, "pad", "level":
		return constants.SurfaceKindFlat
	case constants.SurfaceKindSloped, "slope", "graded":
		return constants.SurfaceKindSloped
	default:
		return trimmed
	}
}

// CanonicalDerivation returns the canonical identifier for a derivation rule.
func CanonicalDerivation(value string) string {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	switch trimmed {
	case "", constants.DeriveOffset, "shift":
		return constants.DeriveOffset
	case constants.DeriveApron, "ramp":
		return constants.DeriveApron
	default:
		return trimmed
	}
}

// Normalize ensures defaults and canonical values are applied before
// validation.
func (s *SiteConfig) Normalize() {
	if s == nil {
		return
	}
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		s.Name = defaultSiteName
	}
	if s.Step <= 0 && (s.WindowBelow > 0 || s.WindowAbove > 0) {
		s.Step = defaultSearchStep
	}

	hasPrimary := false
	for i := range s.Surfaces {
		s.Surfaces[i].Name = strings.TrimSpace(s.Surfaces[i].Name)
		s.Surfaces[i].Kind = CanonicalSurfaceKind(s.Surfaces[i].Kind)
		s.Surfaces[i].Derive = CanonicalDerivation(s.Surfaces[i].Derive)
		if s.Surfaces[i].Primary {
			hasPrimary = true
		}
	}
	if !hasPrimary && len(s.Surfaces) > 0 {
		s.Surfaces[0].Primary = true
	}

	for i := range s.Relationships {
		s.Relationships[i].Kind = strings.ToLower(strings.TrimSpace(s.Relationships[i].Kind))
	}
}

// Validate returns an error when the site section cannot produce a search.
func (s *SiteConfig) Validate() error {
	if s == nil || len(s.Surfaces) == 0 {
		return fmt.Errorf("site requires at least one surface")
	}
	if s.WindowBelow < 0 || s.WindowAbove < 0 {
		return fmt.Errorf("search window (%g below, %g above) must be non-negative", s.WindowBelow, s.WindowAbove)
	}
	if s.Step < 0 {
		return fmt.Errorf("search step %g must be non-negative", s.Step)
	}
	if err := s.Rotation.validate("rotation"); err != nil {
		return err
	}
	if err := s.Slope.validate("slope"); err != nil {
		return err
	}

	primaries := 0
	for _, surf := range s.Surfaces {
		if err := surf.validate(); err != nil {
			return err
		}
		if surf.Primary {
			primaries++
		}
	}
	if primaries != 1 {
		return fmt.Errorf("site requires exactly one primary surface, found %d", primaries)
	}
	return nil
}

func (a *AxisConfig) validate(axis string) error {
	if a == nil {
		return nil
	}
	if a.Max < a.Min {
		return fmt.Errorf("%s axis maximum %g must not be less than minimum %g", axis, a.Max, a.Min)
	}
	if a.Step <= 0 && a.Max != a.Min {
		return fmt.Errorf("%s axis requires a positive step", axis)
	}
	return nil
}

func (s SurfaceConfig) validate() error {
	if s.Name == "" {
		return fmt.Errorf("every surface requires a name")
	}
	if s.Kind != constants.SurfaceKindFlat && s.Kind != constants.SurfaceKindSloped {
		return fmt.Errorf("surface %s kind %q is not supported", s.Name, s.Kind)
	}
	if len(s.Footprint) < 3 {
		return fmt.Errorf("surface %s footprint has %d vertices, need at least 3", s.Name, len(s.Footprint))
	}
	if !s.Primary && s.Derive != constants.DeriveOffset && s.Derive != constants.DeriveApron {
		return fmt.Errorf("surface %s derivation %q is not supported", s.Name, s.Derive)
	}
	return nil
}
