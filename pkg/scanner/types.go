// Package scanner matches substring rules against the lines of a file.
package scanner

import "github.com/ccollicutt/linescan/pkg/source"

// Match is a line that satisfied a rule.
type Match struct {
	// Rule is the name of the rule that matched.
	Rule string `json:"rule"`

	// Label is the message prefix for this rule.
	Label string `json:"label"`

	// LineNum is the 1-based line number of the match.
	LineNum int `json:"line"`

	// Content is the matched line as read, untrimmed.
	Content string `json:"content"`

	// ShowLine reports whether the message should include the line.
	ShowLine bool `json:"show_line,omitempty"`

	// HasContext is set for rules that print a context block, even when the
	// block is empty because the match is on the last line.
	HasContext bool `json:"has_context,omitempty"`

	// Context holds the lines printed after the message, starting at the
	// matched line.
	Context []source.Line `json:"context,omitempty"`
}

// FileResult contains the matches found in one file.
type FileResult struct {
	// Source is the scanned file path.
	Source string `json:"source"`

	// LinesScanned is the number of lines in the file.
	LinesScanned int `json:"lines_scanned"`

	// Matches are ordered by line, then by rule order.
	Matches []Match `json:"matches"`
}

// HasMatches returns true if any rule matched.
func (r *FileResult) HasMatches() bool {
	return len(r.Matches) > 0
}
