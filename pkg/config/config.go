package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/sdep/pkg/datetime"
	"github.com/ccollicutt/sdep/pkg/timefmt"
)

// Load reads and validates a configuration file. Files ending in .toml are
// decoded as TOML, everything else as YAML.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := decode(path, data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
		}
		return nil
	}

	return yaml.Unmarshal(data, cfg)
}

// Validate checks a configuration for errors and compiles the formats.
func Validate(cfg *Config) error {
	layout, err := timefmt.NewLayout(cfg.EffectiveInputFormat())
	if err != nil {
		return fmt.Errorf("input_format: %w", err)
	}
	cfg.inputLayout = layout

	renderer, err := timefmt.NewRenderer(cfg.EffectiveOutputFormat())
	if err != nil {
		return fmt.Errorf("output_format: %w", err)
	}
	cfg.outputRenderer = renderer

	if cfg.MaxLineLength < 0 {
		return fmt.Errorf("max_line_length: must be >= 0, got %d", cfg.MaxLineLength)
	}

	switch cfg.Output {
	case OutputText, OutputJSON:
	case "":
		cfg.Output = DefaultOutput
	default:
		return fmt.Errorf("output: invalid mode %q (must be text or json)", cfg.Output)
	}

	return nil
}

// Resolve validates cfg and fixes the time window. Unset bounds take now;
// bounds that do not parse with the input format open the window on that side.
func Resolve(cfg *Config, now datetime.Value) (*Options, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return &Options{
		From:          ResolveBound(cfg.From, cfg.inputLayout, now, datetime.Min),
		To:            ResolveBound(cfg.To, cfg.inputLayout, now, datetime.Max),
		Input:         cfg.inputLayout,
		Output:        cfg.outputRenderer,
		Separator:     cfg.Separator,
		MaxLineLength: cfg.MaxLineLength,
		Mode:          cfg.Output,
	}, nil
}

// ResolveBound turns a raw bound into a value. nil yields def; text whose
// prefix does not match layout yields unbounded. Trailing text after the
// date is ignored.
func ResolveBound(raw *string, layout *timefmt.Layout, def, unbounded datetime.Value) datetime.Value {
	if raw == nil {
		return def
	}

	v, _, ok := layout.Match(*raw)
	if !ok {
		return unbounded
	}
	return v
}

// LoadOptional loads path when it is set and falls back to FromEnvironment.
func LoadOptional(ctx context.Context, path string) (*Config, error) {
	if path == "" {
		return FromEnvironment(), nil
	}
	return Load(ctx, path)
}
