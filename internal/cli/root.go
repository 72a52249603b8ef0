// Package cli provides the command-line interface for sdep.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/sdep/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()
	rootCmd.SetArgs(commands.NormalizeArgs(rootCmd, os.Args[1:]))

	if err := rootCmd.Execute(); err != nil {
		// SilenceErrors keeps cobra from printing this itself
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	return 0
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	opts := &commands.FilterOptions{}

	rootCmd := &cobra.Command{
		Use:   "sdep [+FORMAT] [flags] [FILE...]",
		Short: "Print dated lines inside a time window, in chronological order",
		Long: `sdep reads lines that start with a date, keeps the ones whose date lies
between --from and --to (both inclusive) and prints them sorted by date.
Lines that do not start with a date in the input format are skipped.

The date format uses strftime conversions (%Y %m %d %H %M ...). +FORMAT or
--format sets it for input and output; --write-format changes the output
side only. The default is "%Y-%m-%d %H:%M".

--from and --to are written in the input format. Left out, they mean now;
given bare, as "" or as text that is not a date, that side of the window is
open, so "sdep -f -t" prints every dated line.

+FORMAT may appear anywhere among the arguments. FILE arguments may be glob
patterns and are read in the order given. With no FILE, or when FILE is -,
standard input is read.

Exit codes:
  0 - Success
  2 - Configuration or runtime error`,
		Example: `  sdep -f "" -t "" todo.txt
  sdep -f "2024-01-01 00:00" -t "2024-01-31 23:59" diary/*.txt
  sdep +"%d/%m/%Y %H:%M" -w "%a %e %b %H:%M" -f "" -t "" notes.txt
  sdep -f -t notes.txt +"%d/%m/%Y %H:%M"
  sdep -c sdep.yaml -o json events.log`,
		Args:          cobra.ArbitraryArgs,
		Version:       commands.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunFilter(cmd, args, opts)
		},
	}

	commands.AddFilterFlags(rootCmd, opts)

	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(commands.NewDiagnoseCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
