// Package config provides configuration loading, validation and resolution
// for sdep.
package config

import (
	"github.com/ccollicutt/sdep/pkg/datetime"
	"github.com/ccollicutt/sdep/pkg/timefmt"
)

// Config is the root configuration structure loaded from YAML or TOML and
// updated from the environment and command-line flags.
type Config struct {
	// Format is used for input and output when the specific keys are unset.
	Format string `yaml:"format,omitempty" toml:"format"`

	// InputFormat is the strftime-style format of the leading timestamp.
	InputFormat string `yaml:"input_format,omitempty" toml:"input_format"`

	// OutputFormat is the strftime-style format used to print timestamps.
	OutputFormat string `yaml:"output_format,omitempty" toml:"output_format"`

	// Separator is printed between the timestamp and the text.
	Separator string `yaml:"separator" toml:"separator"`

	// From is the earliest timestamp printed, in the input format.
	// Unset means now; empty or unparsable means no lower bound.
	From *string `yaml:"from,omitempty" toml:"from"`

	// To is the latest timestamp printed, in the input format.
	// Unset means now; empty or unparsable means no upper bound.
	To *string `yaml:"to,omitempty" toml:"to"`

	// MaxLineLength caps input and output lines in bytes.
	MaxLineLength int `yaml:"max_line_length" toml:"max_line_length"`

	// Output selects the output mode (text or json).
	Output OutputMode `yaml:"output" toml:"output"`

	// Compiled formats (populated during validation)
	inputLayout    *timefmt.Layout
	outputRenderer *timefmt.Renderer
}

// OutputMode selects how selected events are written.
type OutputMode string

const (
	// OutputText writes one formatted line per event.
	OutputText OutputMode = "text"
	// OutputJSON writes one JSON object per event.
	OutputJSON OutputMode = "json"
)

// EffectiveInputFormat returns the input format after applying fallbacks.
func (c *Config) EffectiveInputFormat() string {
	return firstNonEmpty(c.InputFormat, c.Format, timefmt.DefaultFormat)
}

// EffectiveOutputFormat returns the output format after applying fallbacks.
func (c *Config) EffectiveOutputFormat() string {
	return firstNonEmpty(c.OutputFormat, c.Format, timefmt.DefaultFormat)
}

// InputLayout returns the compiled input layout.
func (c *Config) InputLayout() *timefmt.Layout {
	return c.inputLayout
}

// OutputRenderer returns the compiled output renderer.
func (c *Config) OutputRenderer() *timefmt.Renderer {
	return c.outputRenderer
}

// Options is the resolved, read-only configuration handed to the filter.
type Options struct {
	From          datetime.Value
	To            datetime.Value
	Input         *timefmt.Layout
	Output        *timefmt.Renderer
	Separator     string
	MaxLineLength int
	Mode          OutputMode
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
