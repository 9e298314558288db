// Package markup inventories the parts of an HTML page that are awkward to
// find with substring rules: script blocks, element ids and inline handlers.
package markup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Script is a <script> element.
type Script struct {
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
	Src       string `json:"src,omitempty"`
	Type      string `json:"type,omitempty"`
}

// Inline reports whether the script body is in the page.
func (s Script) Inline() bool {
	return s.Src == ""
}

// Element is a tag carrying an id attribute.
type Element struct {
	Tag  string `json:"tag"`
	ID   string `json:"id"`
	Line int    `json:"line"`
}

// Handler is an inline event handler attribute such as onclick.
type Handler struct {
	Tag   string `json:"tag"`
	Event string `json:"event"`
	Code  string `json:"code"`
	Line  int    `json:"line"`
}

// Outline is the inventory of one HTML document.
type Outline struct {
	Source   string    `json:"source"`
	Lines    int       `json:"lines"`
	Scripts  []Script  `json:"scripts"`
	Elements []Element `json:"elements"`
	Handlers []Handler `json:"handlers"`
}

// Option configures an Outliner.
type Option func(*Outliner)

// WithLogger sets the logger used for debug events.
func WithLogger(l *zap.Logger) Option {
	return func(o *Outliner) {
		if l != nil {
			o.logger = l
		}
	}
}

// Outliner builds outlines from HTML.
type Outliner struct {
	logger *zap.Logger
}

// New creates an Outliner.
func New(opts ...Option) *Outliner {
	o := &Outliner{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// OutlineFile reads and outlines the HTML file at path.
func (o *Outliner) OutlineFile(ctx context.Context, path string) (*Outline, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer f.Close()

	out, err := o.Outline(ctx, f, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return out, nil
}

// Outline tokenizes r and records where scripts, ids and handlers appear.
// Line numbers are 1-based and refer to the start of each tag.
func (o *Outliner) Outline(ctx context.Context, r io.Reader, name string) (*Outline, error) {
	out := &Outline{
		Source:   name,
		Scripts:  []Script{},
		Elements: []Element{},
		Handlers: []Handler{},
	}

	z := html.NewTokenizer(r)
	line := 1
	open := -1 // index into out.Scripts of the unclosed <script>
	endsWithNewline := true

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, err
			}
			break
		}

		raw := z.Raw()
		start := line
		line += bytes.Count(raw, []byte{'\n'})
		if len(raw) > 0 {
			endsWithNewline = raw[len(raw)-1] == '\n'
		}

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			recordTag(out, tok, start)
			if tok.Data == "script" {
				out.Scripts = append(out.Scripts, Script{
					StartLine: start,
					EndLine:   start,
					Src:       attr(tok, "src"),
					Type:      attr(tok, "type"),
				})
				open = len(out.Scripts) - 1
				if tt == html.SelfClosingTagToken {
					open = -1
				}
			}
		case html.EndTagToken:
			if open >= 0 && z.Token().Data == "script" {
				out.Scripts[open].EndLine = start
				open = -1
			}
		}
	}

	// An unterminated script runs to the end of the document.
	if open >= 0 {
		out.Scripts[open].EndLine = line
	}

	out.Lines = line
	if endsWithNewline {
		out.Lines--
	}

	o.logger.Debug("outline built",
		zap.String("path", name),
		zap.Int("scripts", len(out.Scripts)),
		zap.Int("elements", len(out.Elements)),
		zap.Int("handlers", len(out.Handlers)))

	return out, nil
}

func recordTag(out *Outline, tok html.Token, line int) {
	for _, a := range tok.Attr {
		switch {
		case a.Key == "id" && a.Val != "":
			out.Elements = append(out.Elements, Element{Tag: tok.Data, ID: a.Val, Line: line})
		case strings.HasPrefix(a.Key, "on") && len(a.Key) > 2:
			out.Handlers = append(out.Handlers, Handler{
				Tag:   tok.Data,
				Event: strings.TrimPrefix(a.Key, "on"),
				Code:  strings.TrimSpace(a.Val),
				Line:  line,
			})
		}
	}
}

// FindID returns the element with the given id, if any.
func (o *Outline) FindID(id string) (Element, bool) {
	for _, e := range o.Elements {
		if e.ID == id {
			return e, true
		}
	}
	return Element{}, false
}

func attr(tok html.Token, key string) string {
	for _, a := range tok.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
