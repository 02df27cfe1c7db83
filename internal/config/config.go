// Package config defines the data structures related to site configuration
// and includes functions for loading and parsing the config.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/sitegrade/sitegrade/pkg/validation"
)

// Configuration holds all configuration for one sitegrade run.
type Configuration struct {
	Site       SiteConfig       `yaml:"site" mapstructure:"site"`
	Embankment EmbankmentConfig `yaml:"embankment,omitempty" mapstructure:"embankment"`
	Materials  MaterialsConfig  `yaml:"materials,omitempty" mapstructure:"materials"`
	Costs      CostsConfig      `yaml:"costs,omitempty" mapstructure:"costs"`
	Logging    LoggingConfig    `yaml:"logging,omitempty" mapstructure:"logging"`
	Output     OutputConfig     `yaml:"output,omitempty" mapstructure:"output"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // pretty, csv
}

// LoadSite takes a file path as input and loads the YAML-formatted site
// configuration there, applying defaults but not validating.
func LoadSite(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.Normalize()
	return &configuration, nil
}

// Normalize applies defaults and canonical values across every section.
func (c *Configuration) Normalize() {
	c.Site.Normalize()
	c.Embankment.Normalize()
	c.Materials.Normalize()
}

// Validate checks every section for hard errors. Advisory findings are
// reported separately by ValidateConfiguration.
func (c *Configuration) Validate() error {
	if err := c.Site.Validate(); err != nil {
		return err
	}
	if err := c.Embankment.Validate(); err != nil {
		return err
	}
	if err := c.Materials.Validate(); err != nil {
		return err
	}
	return c.Costs.Validate()
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings for findings that do not prevent a run.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	for _, s := range c.Site.Surfaces {
		if warning := validation.SlopeBoundsWarning(s.Name, s.Kind, s.MinSlope, s.MaxSlope); warning != "" {
			warnings = append(warnings, warning)
		}
	}
	warnings = append(warnings, validation.SearchStepWarnings(c.Site.WindowBelow, c.Site.WindowAbove, c.Site.Step)...)
	warnings = append(warnings, validation.CostRateWarnings(
		c.Costs.Excavation,
		c.Costs.Transport,
		c.Costs.FillMaterial,
		c.Costs.Compaction,
		c.Costs.Surfacing,
	)...)

	return warnings
}
