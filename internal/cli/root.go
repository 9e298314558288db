// Package cli provides the command-line interface for linescan.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/linescan/internal/cli/commands"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 2
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	return run(NewRootCommand(), os.Args[1:])
}

func run(rootCmd *cobra.Command, args []string) int {
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		// SilenceErrors keeps cobra from printing this itself
		_, _ = fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return ExitError
	}
	return ExitOK
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "linescan",
		Short: "Find where snippets live in a text or HTML file",
		Long: `linescan reads a file line by line and reports the lines that contain
configured substrings, with their line numbers. One rule can also print a
few lines of context after its match.

The built-in rules look for the property-loading code of a page:
  - async function loadProperties (with 10 lines of context)
  - await ... loadProperties()
  - DOMContentLoaded
  - updateMobilePropertyCards

Use a rules file (see "linescan rules") to search for anything else.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return commands.InitLogger(verbose)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			commands.SyncLogger()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging to stderr")

	rootCmd.AddCommand(commands.NewScanCommand())
	rootCmd.AddCommand(commands.NewOutlineCommand())
	rootCmd.AddCommand(commands.NewRulesCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
