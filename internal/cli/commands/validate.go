package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/sdep/pkg/config"
	"github.com/ccollicutt/sdep/pkg/datetime"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate an sdep configuration file without reading any input.

Checks:
  - YAML or TOML syntax
  - Input and output date formats
  - Output mode and maximum line length
  - from/to bounds (warning when they do not parse)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	_, _ = fmt.Fprintf(out, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	_, _ = fmt.Fprintf(out, "\nConfiguration valid!\n")
	_, _ = fmt.Fprintf(out, "  Input format:    %s\n", cfg.EffectiveInputFormat())
	_, _ = fmt.Fprintf(out, "  Output format:   %s\n", cfg.EffectiveOutputFormat())
	_, _ = fmt.Fprintf(out, "  Separator:       %q\n", cfg.Separator)
	_, _ = fmt.Fprintf(out, "  Max line length: %d\n", cfg.MaxLineLength)
	_, _ = fmt.Fprintf(out, "  Output:          %s\n", cfg.Output)

	reportBound(cmd, cfg, "from", cfg.From, datetime.Min)
	reportBound(cmd, cfg, "to", cfg.To, datetime.Max)

	return nil
}

func reportBound(cmd *cobra.Command, cfg *config.Config, name string, raw *string, unbounded datetime.Value) {
	out := cmd.OutOrStdout()

	if raw == nil {
		_, _ = fmt.Fprintf(out, "  %-16s now\n", name+":")
		return
	}

	v := config.ResolveBound(raw, cfg.InputLayout(), datetime.Value{}, unbounded)
	if v.IsUnbounded() && *raw != "" {
		_, _ = fmt.Fprintf(out, "\nWarning: %s %q does not match input format %q; the window is open on that side\n",
			name, *raw, cfg.EffectiveInputFormat())
		return
	}
	_, _ = fmt.Fprintf(out, "  %-16s %s\n", name+":", v)
}
