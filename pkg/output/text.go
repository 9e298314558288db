package output

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/ccollicutt/linescan/pkg/scanner"
)

// TextFormatter writes the plain console form: a banner, then one message per
// match in line order.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(_ context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		_, err := fmt.Fprintf(w, "linescan: %d file(s), %d lines scanned, %d match(es)\n",
			report.Summary.FilesScanned, report.Summary.LinesScanned, report.Summary.Matches)
		return err
	}

	ew := &errWriter{w: w}

	if report.Banner != "" {
		ew.println(report.Banner)
	}

	multi := len(report.Files) > 1
	for i, file := range report.Files {
		if multi {
			if i > 0 {
				ew.println()
			}
			ew.printf("==> %s <==\n", file.Source)
		}
		for j := range file.Matches {
			writeMatch(ew, &file.Matches[j])
		}
	}

	if f.opts.Verbose {
		ew.println("---")
		ew.printf("Summary: %d file(s), %d lines scanned, %d match(es)\n",
			report.Summary.FilesScanned, report.Summary.LinesScanned, report.Summary.Matches)
		ew.printf("Duration: %s\n", report.Metadata.Duration.Round(1e6))
	}

	return ew.err
}

func writeMatch(ew *errWriter, m *scanner.Match) {
	if m.ShowLine {
		ew.printf("%s at line %d: %s\n", m.Label, m.LineNum, strings.TrimSpace(m.Content))
	} else {
		ew.printf("%s at line %d\n", m.Label, m.LineNum)
	}

	if !m.HasContext {
		return
	}
	for _, l := range m.Context {
		ew.printf("  %d: %s\n", l.LineNum, strings.TrimRightFunc(l.Content, unicode.IsSpace))
	}
	ew.println()
}

// errWriter keeps the first write error so formatting code can stay linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err == nil {
		_, e.err = fmt.Fprintf(e.w, format, args...)
	}
}

func (e *errWriter) println(args ...any) {
	if e.err == nil {
		_, e.err = fmt.Fprintln(e.w, args...)
	}
}
