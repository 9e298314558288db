package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/linescan/pkg/config"
	"github.com/ccollicutt/linescan/pkg/source"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <rules-file>",
		Short: "Validate a rules file",
		Long: `Validate a linescan rules file without scanning anything.

Checks:
  - YAML syntax and unknown fields
  - Required fields and non-empty substrings
  - Context bounds
  - Duplicate rule names
  - File existence for the files list (warning only)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	_, _ = fmt.Fprintf(out, "Validating %s...\n", path)

	cfg, err := config.Load(ctx, path)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	_, _ = fmt.Fprintf(out, "\nRules file valid!\n")
	_, _ = fmt.Fprintf(out, "  Files: %d pattern(s)\n", len(cfg.Files))
	_, _ = fmt.Fprintf(out, "  Rules: %d\n", len(cfg.Rules))

	_, _ = fmt.Fprintf(out, "\nRules:\n")
	for i, rule := range cfg.Rules {
		_, _ = fmt.Fprintf(out, "  %d. %s: %s\n", i+1, rule.Name, strings.Join(quoteAll(rule.Contains), " AND "))
		if rule.Context > 0 {
			_, _ = fmt.Fprintf(out, "     context: %d line(s)\n", rule.Context)
		}
		if rule.Description != "" {
			_, _ = fmt.Fprintf(out, "     %s\n", rule.Description)
		}
	}

	if len(cfg.Files) == 0 {
		return nil
	}

	files, err := source.ExpandGlobs(cfg.Files)
	if err != nil {
		_, _ = fmt.Fprintf(out, "\nWarning: Error expanding file patterns: %v\n", err)
		return nil
	}
	_, _ = fmt.Fprintf(out, "\nFiles:\n")
	for _, f := range files {
		if !fileExists(f) {
			_, _ = fmt.Fprintf(out, "  - %s (warning: not found)\n", f)
			continue
		}
		_, _ = fmt.Fprintf(out, "  - %s\n", f)
	}

	return nil
}

func quoteAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = fmt.Sprintf("%q", s)
	}
	return out
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
