package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/sdep/pkg/config"
	"github.com/ccollicutt/sdep/pkg/datetime"
	"github.com/ccollicutt/sdep/pkg/detector"
	"github.com/ccollicutt/sdep/pkg/output"
	"github.com/ccollicutt/sdep/pkg/parser"
)

// diagnoseSampleLines is the number of lines tested per input file.
const diagnoseSampleLines = 10

// DiagnoseOptions holds options for the diagnose command
type DiagnoseOptions struct {
	ConfigFile string
	Verbose    bool
}

// DiagnosticResult represents the result of a single diagnostic check
type DiagnosticResult struct {
	Check    string
	Status   string // "ok", "warning", "error"
	Message  string
	Details  []string
	Suggests []string
}

// NewDiagnoseCommand creates the diagnose command
func NewDiagnoseCommand() *cobra.Command {
	opts := &DiagnoseOptions{}

	cmd := &cobra.Command{
		Use:   "diagnose [flags] FILE...",
		Short: "Diagnose why lines are not being selected",
		Long: `Diagnose common configuration and input issues.

This command checks:
- Config file syntax and structure (with --config)
- The from/to window
- Input file existence and accessibility
- The input format against the first lines of each file

Example:
  sdep diagnose app.log
  sdep diagnose -c sdep.yaml -v logs/*.log`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagnose(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigFile, "config", "c", "", "Configuration file to check")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show detailed diagnostic output")

	return cmd
}

func runDiagnose(cmd *cobra.Command, patterns []string, opts *DiagnoseOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var results []DiagnosticResult

	cfg, result := checkConfig(ctx, opts.ConfigFile)
	results = append(results, result)
	if result.Status == "error" {
		printDiagnostics(cmd.OutOrStdout(), results, opts)
		return nil
	}

	results = append(results, checkWindow(cfg))

	files, fileResults := checkInputFiles(patterns)
	results = append(results, fileResults...)

	for _, file := range files {
		results = append(results, checkInputFormat(ctx, cfg, file, opts))
	}

	printDiagnostics(cmd.OutOrStdout(), results, opts)
	return nil
}

func checkConfig(ctx context.Context, path string) (*config.Config, DiagnosticResult) {
	result := DiagnosticResult{
		Check: "Configuration",
	}

	if path == "" {
		cfg := config.FromEnvironment()
		if err := config.Validate(cfg); err != nil {
			result.Status = "error"
			result.Message = fmt.Sprintf("Environment settings are invalid: %v", err)
			result.Suggests = []string{
				"Check " + config.EnvFormat + ", " + config.EnvInputFormat + " and " + config.EnvOutputFormat,
			}
			return nil, result
		}
		result.Status = "ok"
		result.Message = "No config file; using defaults and environment"
		result.Details = configDetails(cfg)
		return cfg, result
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		result.Status = "error"
		result.Message = fmt.Sprintf("Config file not found: %s", path)
		result.Suggests = []string{
			"Check the file path is correct",
			"Use 'sdep detect --write-config sdep.yaml <log-file>' to generate a starter config",
		}
		return nil, result
	}
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot access config file: %v", err)
		result.Suggests = []string{"Check file permissions"}
		return nil, result
	}
	if info.IsDir() {
		result.Status = "error"
		result.Message = "Path is a directory, not a file"
		return nil, result
	}

	cfg, err := config.Load(ctx, path)
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Failed to load config: %v", err)
		if strings.Contains(err.Error(), "yaml") {
			result.Suggests = []string{
				"Check YAML syntax - ensure proper indentation (use spaces, not tabs)",
			}
		}
		return nil, result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("Loaded: %s (%d bytes)", path, info.Size())
	result.Details = configDetails(cfg)
	return cfg, result
}

func configDetails(cfg *config.Config) []string {
	return []string{
		fmt.Sprintf("Input format: %s", cfg.EffectiveInputFormat()),
		fmt.Sprintf("Output format: %s", cfg.EffectiveOutputFormat()),
		fmt.Sprintf("Output: %s", cfg.Output),
	}
}

func checkWindow(cfg *config.Config) DiagnosticResult {
	result := DiagnosticResult{
		Check:  "Time Window",
		Status: "ok",
	}

	now := datetime.Now()
	from := config.ResolveBound(cfg.From, cfg.InputLayout(), now, datetime.Min)
	to := config.ResolveBound(cfg.To, cfg.InputLayout(), now, datetime.Max)

	result.Message = fmt.Sprintf("From %s to %s", from, to)

	if cfg.From == nil && cfg.To == nil {
		result.Status = "warning"
		result.Message = fmt.Sprintf("Window is the current minute only (%s)", now)
		result.Suggests = []string{
			`Set from and to, or pass -f "" -t "" to select every dated line`,
		}
	}

	if from.After(to) {
		result.Status = "error"
		result.Message = fmt.Sprintf("Window is empty: from %s is after to %s", from, to)
	}

	return result
}

func checkInputFiles(patterns []string) ([]string, []DiagnosticResult) {
	var results []DiagnosticResult

	expanded, err := parser.ExpandGlobs(patterns)
	if err != nil {
		return nil, []DiagnosticResult{{
			Check:   "Input Files",
			Status:  "error",
			Message: fmt.Sprintf("Invalid glob pattern: %v", err),
		}}
	}

	var files []string
	for _, file := range expanded {
		result := DiagnosticResult{
			Check: fmt.Sprintf("Input File: %s", file),
		}

		if file == parser.StdinName {
			result.Status = "warning"
			result.Message = "Standard input cannot be diagnosed"
			results = append(results, result)
			continue
		}

		info, err := os.Stat(file)
		switch {
		case os.IsNotExist(err):
			result.Status = "error"
			result.Message = "File does not exist"
			result.Suggests = []string{
				"Check if the file path is correct",
				"Verify the glob pattern syntax",
			}
		case err != nil:
			result.Status = "error"
			result.Message = fmt.Sprintf("Cannot access file: %v", err)
			result.Suggests = []string{"Check file permissions"}
		case info.IsDir():
			result.Status = "error"
			result.Message = "Path is a directory, not a file"
			result.Suggests = []string{
				"Use a glob pattern to match files in directory",
				"Example: diary/*.txt",
			}
		case info.Size() == 0:
			result.Status = "warning"
			result.Message = "File is empty (0 bytes)"
		default:
			result.Status = "ok"
			result.Message = fmt.Sprintf("File exists (%d bytes)", info.Size())
			files = append(files, file)
		}

		results = append(results, result)
	}

	return files, results
}

func checkInputFormat(ctx context.Context, cfg *config.Config, file string, opts *DiagnoseOptions) DiagnosticResult {
	result := DiagnosticResult{
		Check: fmt.Sprintf("Format Test: %s", file),
	}

	lines, err := sampleLines(ctx, file, cfg.MaxLineLength)
	if err != nil {
		result.Status = "warning"
		result.Message = fmt.Sprintf("Cannot read file: %v", err)
		return result
	}

	p := parser.New(cfg.InputLayout())

	matchCount := 0
	var sampleMatch, sampleFail string
	for _, line := range lines {
		if _, ok := p.ParseLine(line); ok {
			matchCount++
			if sampleMatch == "" {
				sampleMatch = line
			}
		} else if sampleFail == "" && strings.TrimSpace(line) != "" {
			sampleFail = line
		}
	}

	switch {
	case matchCount == 0:
		result.Status = "error"
		result.Message = fmt.Sprintf("Input format %q matches no lines", cfg.EffectiveInputFormat())
		result.Suggests = []string{
			"The input format may not match the dates in this file",
			"Use 'sdep detect " + file + "' to find the correct format",
		}
		if sampleFail != "" {
			result.Details = []string{
				"Sample line that didn't match:",
				output.Truncate(sampleFail, 80),
			}
		}

		d := detector.New(detector.WithSampleSize(diagnoseSampleLines))
		if det := d.DetectFromLines(lines); det.HasMatch() {
			best := det.BestMatch()
			result.Suggests = append(result.Suggests,
				fmt.Sprintf("Detected format: %s", best.Format.Name),
				fmt.Sprintf("Suggested format: %s", best.Format.Format),
			)
		}
	case matchCount < len(lines)/2:
		result.Status = "warning"
		result.Message = fmt.Sprintf("Input format matches only %d/%d sample lines", matchCount, len(lines))
		if sampleFail != "" {
			result.Details = []string{
				"Sample line that didn't match:",
				output.Truncate(sampleFail, 80),
			}
		}
	default:
		result.Status = "ok"
		result.Message = fmt.Sprintf("Input format matches %d/%d sample lines", matchCount, len(lines))
		if opts.Verbose && sampleMatch != "" {
			result.Details = []string{
				"Sample match:",
				output.Truncate(sampleMatch, 80),
			}
		}
	}

	return result
}

// sampleLines returns up to diagnoseSampleLines lines from the head of file.
func sampleLines(ctx context.Context, file string, maxLen int) ([]string, error) {
	src := parser.NewFileSource([]string{file}, maxLen)
	defer src.Close()

	var lines []string
	for len(lines) < diagnoseSampleLines {
		line, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, line.Content)
	}
	return lines, nil
}

func printDiagnostics(w io.Writer, results []DiagnosticResult, opts *DiagnoseOptions) {
	p := func(format string, a ...any) {
		_, _ = fmt.Fprintf(w, format, a...)
	}

	p("=== sdep Diagnostics ===\n\n")

	okCount := 0
	warnCount := 0
	errCount := 0

	for _, r := range results {
		var icon string
		switch r.Status {
		case "ok":
			icon = "PASS"
			okCount++
		case "warning":
			icon = "WARN"
			warnCount++
		case "error":
			icon = "FAIL"
			errCount++
		}

		p("[%s] %s\n", icon, r.Check)
		p("    %s\n", r.Message)

		if opts.Verbose || r.Status != "ok" {
			for _, d := range r.Details {
				p("      - %s\n", d)
			}
		}

		for _, s := range r.Suggests {
			p("      Hint: %s\n", s)
		}

		p("\n")
	}

	p("---\n")
	p("Summary: %d passed, %d warnings, %d errors\n", okCount, warnCount, errCount)

	switch {
	case errCount > 0:
		p("\nFix the errors above before running sdep.\n")
	case warnCount > 0:
		p("\nInput is usable but has warnings.\n")
	default:
		p("\nEverything looks good!\n")
	}
}
