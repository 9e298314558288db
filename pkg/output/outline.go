package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ccollicutt/linescan/pkg/markup"
)

// WriteOutline renders an HTML outline in the named format.
func WriteOutline(w io.Writer, format string, o *markup.Outline) error {
	switch format {
	case "text":
		return writeOutlineText(w, o)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(o)
	case "table":
		return writeOutlineTable(w, o)
	default:
		return fmt.Errorf("unknown output format %q (use text, json or table)", format)
	}
}

func writeOutlineText(w io.Writer, o *markup.Outline) error {
	ew := &errWriter{w: w}
	ew.printf("%s (%d lines)\n", o.Source, o.Lines)

	ew.printf("\nScripts: %d\n", len(o.Scripts))
	for _, s := range o.Scripts {
		where := "inline"
		if !s.Inline() {
			where = "src=" + s.Src
		}
		ew.printf("  lines %d-%d  %s\n", s.StartLine, s.EndLine, where)
	}

	ew.printf("\nElements with id: %d\n", len(o.Elements))
	for _, e := range o.Elements {
		ew.printf("  %d: <%s id=%q>\n", e.Line, e.Tag, e.ID)
	}

	ew.printf("\nInline handlers: %d\n", len(o.Handlers))
	for _, h := range o.Handlers {
		ew.printf("  %d: <%s on%s> %s\n", h.Line, h.Tag, h.Event, h.Code)
	}

	return ew.err
}

func writeOutlineTable(w io.Writer, o *markup.Outline) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(o.Source)
	t.AppendHeader(table.Row{"Kind", "Line", "Tag", "Detail"})

	for _, s := range o.Scripts {
		detail := "inline"
		if !s.Inline() {
			detail = s.Src
		}
		t.AppendRow(table.Row{"script", fmt.Sprintf("%d-%d", s.StartLine, s.EndLine), "script", detail})
	}
	for _, e := range o.Elements {
		t.AppendRow(table.Row{"id", e.Line, e.Tag, e.ID})
	}
	for _, h := range o.Handlers {
		t.AppendRow(table.Row{"on" + h.Event, h.Line, h.Tag, truncate(h.Code, maxCellWidth)})
	}

	t.Render()
	return nil
}
