package output

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// maxCellWidth truncates long lines (minified script) in table cells.
const maxCellWidth = 80

// TableFormatter formats matches as a box-drawn table.
type TableFormatter struct {
	opts FormatOptions
}

// NewTableFormatter creates a new table formatter with the given options.
func NewTableFormatter(opts FormatOptions) *TableFormatter {
	return &TableFormatter{opts: opts}
}

// Name returns the format name.
func (f *TableFormatter) Name() string {
	return "table"
}

// Format renders the report as a table of matches. Context blocks are not shown.
func (f *TableFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return NewTextFormatter(f.opts).Format(ctx, report, w)
	}

	if !report.HasMatches() {
		_, err := fmt.Fprintln(w, "(0 matches)")
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"File", "Line", "Rule", "Content"})

	for _, file := range report.Files {
		for _, m := range file.Matches {
			t.AppendRow(table.Row{file.Source, m.LineNum, m.Rule, truncate(strings.TrimSpace(m.Content), maxCellWidth)})
		}
	}

	t.Render()
	_, err := fmt.Fprintf(w, "(%d matches)\n", report.Summary.Matches)
	return err
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
