// Package source reads text files into numbered lines.
package source

// Line is a single line of a file, without its line terminator.
type Line struct {
	// Content is the raw line text.
	Content string `json:"content"`

	// Source is the file path this line came from.
	Source string `json:"source,omitempty"`

	// LineNum is the 1-based line number in the source file.
	LineNum int `json:"line"`
}
