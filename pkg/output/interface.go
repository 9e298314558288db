package output

import (
	"context"
	"fmt"
	"io"
)

// Formatter renders scan results in a specific format.
type Formatter interface {
	// Format renders the report to the given writer.
	Format(ctx context.Context, report *Report, w io.Writer) error

	// Name returns the format name (text, json, table).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Verbose appends run statistics.
	Verbose bool

	// Quiet enables minimal summary-only output.
	Quiet bool
}

// Formats lists the supported output format names.
var Formats = []string{"text", "json", "table"}

// NewFormatter returns the formatter registered under name.
func NewFormatter(name string, opts FormatOptions) (Formatter, error) {
	switch name {
	case "text":
		return NewTextFormatter(opts), nil
	case "json":
		return NewJSONFormatter(opts), nil
	case "table":
		return NewTableFormatter(opts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text, json or table)", name)
	}
}
