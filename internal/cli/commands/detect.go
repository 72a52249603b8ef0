package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/sdep/pkg/config"
	"github.com/ccollicutt/sdep/pkg/detector"
	"github.com/ccollicutt/sdep/pkg/timefmt"
)

// DetectOptions holds command-line options for the detect command.
type DetectOptions struct {
	Output      string
	SampleSize  int
	ShowAll     bool
	WriteConfig string
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect <log-file>",
		Short: "Detect the date format of a log file",
		Long: `Analyze a log file to find the date format its lines start with.

Samples lines from the head of the file and matches them against common
date-time prefixes. Reports the best format with a confidence score, the
matching +FORMAT argument and a YAML configuration snippet.

Optionally generates a starter config file with --write-config.

Supports:
  - ISO 8601 and plain "YYYY-MM-DD HH:MM[:SS]" stamps
  - Bracketed datetime stamps
  - Syslog (BSD and with year), ctime and Apache error log
  - Short Spark/Hadoop dates
  - US and European slash dates

Example:
  sdep detect /var/log/myapp.log
  sdep detect --sample 500 /var/log/large.log
  sdep detect --write-config sdep.yaml /var/log/app.log`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", 100, "Number of lines to sample")
	cmd.Flags().BoolVar(&opts.ShowAll, "all", false, "Show all detected formats, not just the best match")
	cmd.Flags().StringVarP(&opts.WriteConfig, "write-config", "w", "", "Write starter config to file (will not overwrite)")

	return cmd
}

func runDetect(cmd *cobra.Command, args []string, opts *DetectOptions) error {
	logFile := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.Output != "text" && opts.Output != "json" {
		return fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}

	if _, err := os.Stat(logFile); os.IsNotExist(err) {
		return fmt.Errorf("log file not found: %s", logFile)
	}

	d := detector.New(detector.WithSampleSize(opts.SampleSize))

	result, err := d.DetectFromFile(ctx, logFile)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	out := cmd.OutOrStdout()

	if opts.WriteConfig != "" {
		if err := writeStarterConfig(result, logFile, opts.WriteConfig); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "Wrote starter config to: %s\n\n", opts.WriteConfig)
	}

	if opts.Output == "json" {
		return outputDetectJSON(out, result, logFile, opts)
	}
	return outputDetectText(out, result, logFile, opts)
}

func outputDetectText(w io.Writer, result *detector.DetectionResult, logFile string, opts *DetectOptions) error {
	p := func(format string, a ...any) {
		_, _ = fmt.Fprintf(w, format, a...)
	}

	p("=== Date Format Detection ===\n\n")
	p("File: %s\n", logFile)
	p("Lines sampled: %d\n", result.SampledLines)
	p("Lines with dates: %d\n\n", result.ParsedLines)

	if !result.HasMatch() {
		p("No date format detected.\n\n")
		p("Tip: The file may use an uncommon format.\n")
		p("Check the first few lines manually and pass the format as +FORMAT.\n")
		return nil
	}

	best := result.BestMatch()
	p("Detected Format: %s\n", best.Format.Name)
	p("Confidence: %.1f%% (%d/%d lines matched)\n\n",
		best.Confidence*100, best.MatchCount, result.SampledLines)
	p("Sample match:\n  %s\n", best.SampleLine)
	p("Parsed as: %s\n\n", best.ParsedTime)

	if result.AmbiguityNote != "" {
		p("WARNING: %s\n\n", result.AmbiguityNote)
	}

	p("--- Usage ---\n\n")
	p("  sdep %s %s\n\n", shellQuote("+"+best.Format.Format), logFile)

	p("--- Configuration snippet (copy to your config file) ---\n\n")
	p("format: %q\n\n", best.Format.Format)

	if opts.ShowAll && len(result.Matches) > 1 {
		p("--- Alternative formats detected ---\n")
		for i, m := range result.Matches[1:] {
			p("%d. %s (%.1f%% confidence)\n", i+2, m.Format.Name, m.Confidence*100)
			p("   format: %q\n", m.Format.Format)
		}
		p("\n")
	}

	return nil
}

// JSONMatch represents a format match in JSON output.
type JSONMatch struct {
	Name       string  `json:"name"`
	Format     string  `json:"format"`
	Confidence float64 `json:"confidence"`
	MatchCount int     `json:"match_count"`
	SampleLine string  `json:"sample_line"`
	ParsedTime string  `json:"parsed_time"`
	Ambiguous  bool    `json:"ambiguous,omitempty"`
}

// JSONOutput represents the full JSON output.
type JSONOutput struct {
	File          string      `json:"file"`
	Matches       []JSONMatch `json:"matches"`
	SampledLines  int         `json:"sampled_lines"`
	ParsedLines   int         `json:"parsed_lines"`
	AmbiguityNote string      `json:"ambiguity_note,omitempty"`
}

func outputDetectJSON(w io.Writer, result *detector.DetectionResult, logFile string, opts *DetectOptions) error {
	out := JSONOutput{
		File:          logFile,
		SampledLines:  result.SampledLines,
		ParsedLines:   result.ParsedLines,
		AmbiguityNote: result.AmbiguityNote,
		Matches:       make([]JSONMatch, 0),
	}

	matches := result.Matches
	if !opts.ShowAll && len(matches) > 1 {
		matches = matches[:1] // Only show best match
	}

	for _, m := range matches {
		out.Matches = append(out.Matches, JSONMatch{
			Name:       m.Format.Name,
			Format:     m.Format.Format,
			Confidence: m.Confidence,
			MatchCount: m.MatchCount,
			SampleLine: m.SampleLine,
			ParsedTime: m.ParsedTime.String(),
			Ambiguous:  m.Format.Ambiguous,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(out)
}

// writeStarterConfig generates a starter config file with the detected format.
func writeStarterConfig(result *detector.DetectionResult, logFile, configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s (will not overwrite)", configPath)
	}

	if !result.HasMatch() {
		return fmt.Errorf("cannot generate config: no date format detected")
	}

	content := generateStarterConfig(logFile, result.BestMatch())

	// #nosec G306 - config file doesn't need restrictive permissions
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// generateStarterConfig creates a YAML config template.
func generateStarterConfig(logFile string, match *detector.FormatMatch) string {
	absLogFile := logFile
	if abs, err := filepath.Abs(logFile); err == nil {
		absLogFile = abs
	}

	return fmt.Sprintf(`# sdep configuration
# Generated by: sdep detect %s
# Detected format: %s (%.0f%% confidence)
#
# Use with: sdep -c <this file> %s

# Format of the date at the start of each input line. Also used to
# print dates unless output_format is set.
format: %q

# output_format: %q

# Printed between the date and the text.
separator: "\t"

# Window of dates to print, written in the input format.
# Unset means now; empty means no bound on that side.
from: ""
to: ""

max_line_length: %d

# text or json
output: %s
`, absLogFile, match.Format.Name, match.Confidence*100,
		absLogFile,
		match.Format.Format,
		timefmt.DefaultFormat,
		config.DefaultMaxLineLength,
		config.DefaultOutput)
}

// shellQuote wraps s in single quotes when it contains characters the shell
// would interpret.
func shellQuote(s string) string {
	if !strings.ContainsAny(s, " \t%[]*?'\"$&;|<>()") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
