package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"code.cloudfoundry.org/lager/v3"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/sdep/pkg/config"
	"github.com/ccollicutt/sdep/pkg/datetime"
	"github.com/ccollicutt/sdep/pkg/event"
	"github.com/ccollicutt/sdep/pkg/metrics"
	"github.com/ccollicutt/sdep/pkg/output"
	"github.com/ccollicutt/sdep/pkg/parser"
	"github.com/ccollicutt/sdep/pkg/timefmt"
)

// FilterOptions holds command-line options for the filter run.
type FilterOptions struct {
	ConfigFile    string
	Format        string
	WriteFormat   string
	Separator     string
	From          string
	To            string
	MaxLineLength int
	Output        string
	MetricsFile   string
	PrintDefault  bool
	Verbose       bool
}

// AddFilterFlags registers the filter flags on cmd.
func AddFilterFlags(cmd *cobra.Command, opts *FilterOptions) {
	f := cmd.Flags()
	f.StringVarP(&opts.ConfigFile, "config", "c", "", "Configuration file (YAML, or TOML by .toml extension)")
	f.StringVarP(&opts.Format, "format", "F", "", "Input and output date format (same as +FORMAT)")
	f.StringVarP(&opts.WriteFormat, "write-format", "w", "", "Output date format")
	f.StringVarP(&opts.Separator, "separator", "s", config.DefaultSeparator, "Separator between date and text")
	f.StringVarP(&opts.From, "from", "f", "", "Earliest date to print, in the input format (default now)")
	f.StringVarP(&opts.To, "to", "t", "", "Latest date to print, in the input format (default now)")
	f.IntVar(&opts.MaxLineLength, "max-line-length", config.DefaultMaxLineLength, "Maximum line length in bytes (0 for no limit)")
	f.StringVarP(&opts.Output, "output", "o", string(config.OutputText), "Output mode (text|json)")
	f.StringVar(&opts.MetricsFile, "metrics-file", "", "Write run metrics in Prometheus text format to this file")
	f.BoolVarP(&opts.PrintDefault, "default-format", "d", false, "Print the default date format and exit")
	f.BoolVar(&opts.Verbose, "verbose", false, "Log diagnostics to stderr")
}

// RunFilter reads dated lines, keeps those inside the window and prints
// them in chronological order.
func RunFilter(cmd *cobra.Command, args []string, opts *FilterOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.PrintDefault {
		_, err := io.WriteString(cmd.OutOrStdout(), timefmt.DefaultFormat+"\n")
		return err
	}

	start := time.Now()
	logger := NewLogger(cmd.ErrOrStderr(), opts.Verbose)

	format, patterns := SplitArgs(args)

	cfg, err := config.LoadOptional(ctx, opts.ConfigFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	opts.apply(cmd, cfg, format)

	resolved, err := config.Resolve(cfg, datetime.FromTime(start))
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Debug("resolved", lager.Data{
		"input-format":  resolved.Input.Pattern(),
		"output-format": resolved.Output.Pattern(),
		"from":          resolved.From.String(),
		"to":            resolved.To.String(),
		"output":        string(resolved.Mode),
	})

	src, err := openSource(cmd, patterns, resolved.MaxLineLength)
	if err != nil {
		return err
	}
	defer src.Close()

	store := event.NewStore()
	stats, err := parser.New(resolved.Input).Load(ctx, src, store)
	if err != nil {
		logger.Error("load-failed", err)
		return fmt.Errorf("reading input: %w", err)
	}

	selected := event.Select(store, resolved.From, resolved.To)

	logger.Debug("selected", lager.Data{
		"lines-read":      stats.LinesRead,
		"events-parsed":   stats.EventsParsed,
		"events-selected": len(selected),
	})

	formatter := newFormatter(resolved)
	if err := formatter.Format(ctx, selected, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if opts.MetricsFile != "" {
		rec := metrics.NewRecorder()
		rec.ObserveLoad(stats.LinesRead, stats.EventsParsed)
		rec.ObserveSelected(len(selected))
		rec.ObserveRun(start, time.Now())
		if err := rec.WriteTextfile(opts.MetricsFile); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
		logger.Info("metrics-written", lager.Data{"path": opts.MetricsFile})
	}

	return nil
}

// SplitArgs separates +FORMAT arguments from the input files. A +FORMAT may
// appear anywhere among the positional arguments; the last one wins.
func SplitArgs(args []string) (format string, files []string) {
	for _, arg := range args {
		if strings.HasPrefix(arg, "+") {
			format = arg[1:]
			continue
		}
		files = append(files, arg)
	}
	return format, files
}

// NormalizeArgs gives a bare --from or --to an empty value, so "-f -t" opens
// both sides of the window. A bound flag is bare when it is the last argument
// or is followed by another flag or a +FORMAT. Arguments for subcommands are
// returned unchanged.
func NormalizeArgs(root *cobra.Command, args []string) []string {
	if cmd, _, err := root.Find(args); err != nil || cmd != root {
		return args
	}

	flags := root.Flags()
	out := make([]string, 0, len(args)+2)

	for i := 0; i < len(args); i++ {
		arg := args[i]
		out = append(out, arg)

		if arg == "--" {
			return append(out, args[i+1:]...)
		}

		var name string
		switch {
		case strings.HasPrefix(arg, "--") && !strings.Contains(arg, "="):
			if fl := flags.Lookup(arg[2:]); fl != nil {
				name = fl.Name
			}
		case len(arg) == 2 && arg[0] == '-' && arg[1] != '-':
			if fl := flags.ShorthandLookup(arg[1:]); fl != nil {
				name = fl.Name
			}
		}
		if name == "" {
			continue
		}

		fl := flags.Lookup(name)
		switch {
		case name == "from" || name == "to":
			if i+1 == len(args) || isBareFollower(args[i+1]) {
				out = append(out, "")
			}
		case fl.NoOptDefVal == "" && i+1 < len(args):
			// The next argument is this flag's value.
			i++
			out = append(out, args[i])
		}
	}

	return out
}

func isBareFollower(arg string) bool {
	return strings.HasPrefix(arg, "-") || strings.HasPrefix(arg, "+")
}

// apply layers the command line over cfg. Later settings win: +FORMAT,
// then --format, then --write-format for the output side.
func (o *FilterOptions) apply(cmd *cobra.Command, cfg *config.Config, plusFormat string) {
	flags := cmd.Flags()

	if plusFormat != "" {
		cfg.InputFormat = plusFormat
		cfg.OutputFormat = plusFormat
	}
	if flags.Changed("format") {
		cfg.InputFormat = o.Format
		cfg.OutputFormat = o.Format
	}
	if flags.Changed("write-format") {
		cfg.OutputFormat = o.WriteFormat
	}
	if flags.Changed("separator") {
		cfg.Separator = o.Separator
	}
	if flags.Changed("from") {
		from := o.From
		cfg.From = &from
	}
	if flags.Changed("to") {
		to := o.To
		cfg.To = &to
	}
	if flags.Changed("max-line-length") {
		cfg.MaxLineLength = o.MaxLineLength
	}
	if flags.Changed("output") {
		cfg.Output = config.OutputMode(o.Output)
	}
}

func openSource(cmd *cobra.Command, patterns []string, maxLen int) (parser.LineSource, error) {
	if len(patterns) == 0 {
		return parser.NewReaderSource(cmd.InOrStdin(), parser.StdinName, maxLen), nil
	}

	files, err := parser.ExpandGlobs(patterns)
	if err != nil {
		return nil, fmt.Errorf("expanding input files: %w", err)
	}

	return parser.NewFileSource(files, maxLen, parser.WithStdin(cmd.InOrStdin())), nil
}

func newFormatter(opts *config.Options) output.Formatter {
	formatOpts := output.FormatOptions{
		Renderer:      opts.Output,
		Separator:     opts.Separator,
		MaxLineLength: opts.MaxLineLength,
	}

	if opts.Mode == config.OutputJSON {
		return output.NewJSONFormatter(formatOpts)
	}
	return output.NewTextFormatter(formatOpts)
}
