package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/linescan/pkg/config"
)

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	var (
		rulesFile string
		write     string
	)

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the effective rules as YAML",
		Long: `Print the rules a scan would use, after defaults and environment
overrides are applied.

With --write, save them as a starter rules file instead. An existing file
is never overwritten.

Example:
  linescan rules
  linescan rules -w linescan.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			cfg, err := loadRules(ctx, rulesFile)
			if err != nil {
				return err
			}

			data, err := config.Marshal(cfg)
			if err != nil {
				return err
			}

			if write == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return writeStarterRules(cmd, write, data)
		},
	}

	cmd.Flags().StringVarP(&rulesFile, "rules", "r", "", "Rules file (YAML); built-in rules when empty")
	cmd.Flags().StringVarP(&write, "write", "w", "", "Write rules to file (will not overwrite)")

	return cmd
}

func writeStarterRules(cmd *cobra.Command, path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644) // #nosec G304 -- user-provided path is expected
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("rules file already exists: %s (will not overwrite)", path)
		}
		return fmt.Errorf("failed to write rules file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write rules file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write rules file: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote rules to: %s\n", path)
	return nil
}
