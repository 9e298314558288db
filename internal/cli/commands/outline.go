package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/linescan/pkg/markup"
	"github.com/ccollicutt/linescan/pkg/output"
)

// NewOutlineCommand creates the outline command.
func NewOutlineCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "outline <html-file>",
		Short: "List script blocks, element ids and inline handlers in an HTML file",
		Long: `Tokenize an HTML file and list, with line numbers:
  - <script> blocks (start and end line, src for external scripts)
  - elements carrying an id attribute
  - inline on* event handlers

Markup inside script bodies is not reported.

Example:
  linescan outline public/index.html
  linescan outline -o json public/index.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			o, err := markup.New(markup.WithLogger(logger)).OutlineFile(ctx, args[0])
			if err != nil {
				return err
			}
			return output.WriteOutline(cmd.OutOrStdout(), format, o)
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", "text", fmt.Sprintf("Output format (%s)", strings.Join(output.Formats, "|")))

	return cmd
}
