// Package constants provides shared constants for the sitegrade engine.
package constants

// Numeric tolerances
const (
	// VolumeTolerance is the tolerance for comparing volume totals (m³);
	// optimization candidates whose objectives differ by less than this are
	// treated as tied.
	VolumeTolerance = 1e-6

	// ElevationTolerance is the tolerance for elevation comparisons (m).
	ElevationTolerance = 1e-9

	// RangeStepEpsilon keeps the inclusive upper bound of a discretized
	// search range from being dropped to floating point accumulation.
	RangeStepEpsilon = 1e-9

	// DecimalPrecision is the precision for display rounding (2 decimal places).
	DecimalPrecision = 100
)

// Surface and embankment defaults
const (
	// DefaultEmbankmentSlopeDeg is the slope angle assumed for embankment
	// transition zones when the site config does not specify one (roughly a
	// 1:1.5 batter).
	DefaultEmbankmentSlopeDeg = 34.0

	// PercentDivisor converts a slope given in percent to a gradient.
	PercentDivisor = 100.0
)

// Material defaults
const (
	// DefaultSwellFactor is the volume expansion assumed for loosened
	// excavated material.
	DefaultSwellFactor = 1.25

	// DefaultCompactionFactor is the volume reduction assumed for fill
	// compacted in place.
	DefaultCompactionFactor = 0.85
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default site configuration file name
	DefaultConfigFile = "site.yaml"

	// DefaultTerrainFile is the default terrain raster file name
	DefaultTerrainFile = "terrain.asc"
)

// Surface kind identifiers used in site configuration files.
const (
	SurfaceKindFlat   = "flat"
	SurfaceKindSloped = "sloped"
)

// Derivation rule identifiers for dependent surfaces.
const (
	DeriveOffset = "offset"
	DeriveApron  = "apron"
)

// Spatial relationship identifiers validated by the site coordinator.
const (
	RelationContains = "contains"
	RelationAdjacent = "adjacent"
)
