package config

import (
	"os"

	"github.com/ccollicutt/sdep/pkg/parser"
)

// Default values for configuration.
const (
	DefaultSeparator     = "\t"
	DefaultMaxLineLength = parser.DefaultMaxLineLength
	DefaultOutput        = OutputText
)

// Environment variable names.
const (
	EnvFormat       = "SDEP_FORMAT"
	EnvInputFormat  = "SDEP_INPUT_FORMAT"
	EnvOutputFormat = "SDEP_OUTPUT_FORMAT"
	EnvSeparator    = "SDEP_SEPARATOR"
)

// DefaultConfig returns a configuration with sensible defaults.
// Formats are left empty so the fallbacks in EffectiveInputFormat apply.
func DefaultConfig() *Config {
	return &Config{
		Separator:     DefaultSeparator,
		MaxLineLength: DefaultMaxLineLength,
		Output:        DefaultOutput,
	}
}

// FromEnvironment returns DefaultConfig with environment overrides applied.
func FromEnvironment() *Config {
	cfg := DefaultConfig()
	cfg.applyEnvironmentOverrides()
	return cfg
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if format := os.Getenv(EnvFormat); format != "" {
		c.InputFormat = format
		c.OutputFormat = format
	}
	if format := os.Getenv(EnvInputFormat); format != "" {
		c.InputFormat = format
	}
	if format := os.Getenv(EnvOutputFormat); format != "" {
		c.OutputFormat = format
	}
	// An empty separator is meaningful, so only unset leaves it alone.
	if sep, ok := os.LookupEnv(EnvSeparator); ok {
		c.Separator = sep
	}
}
