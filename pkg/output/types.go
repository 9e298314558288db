// Package output renders scan reports.
package output

import (
	"time"

	"github.com/ccollicutt/linescan/pkg/scanner"
)

// Report is the complete scan output.
type Report struct {
	// Banner is printed before text output. It is not part of the JSON form.
	Banner string `json:"-"`

	Summary  Summary               `json:"summary"`
	Files    []*scanner.FileResult `json:"files"`
	Metadata Metadata              `json:"metadata"`
}

// Summary provides aggregate statistics.
type Summary struct {
	FilesScanned int `json:"files_scanned"`
	LinesScanned int `json:"lines_scanned"`
	Matches      int `json:"matches"`
}

// Metadata provides context about the scan run.
type Metadata struct {
	// RulesFile is the rules file used, empty for the built-in rules.
	RulesFile string `json:"rules_file,omitempty"`

	// Rules lists the rule names that were run.
	Rules []string `json:"rules"`

	ScannedAt time.Time     `json:"scanned_at"`
	Duration  time.Duration `json:"duration"`
}

// NewReport builds a Report from per-file results.
func NewReport(files []*scanner.FileResult, banner string, meta Metadata) *Report {
	report := &Report{
		Banner:   banner,
		Files:    files,
		Metadata: meta,
	}
	if report.Files == nil {
		report.Files = []*scanner.FileResult{}
	}

	for _, f := range files {
		report.Summary.FilesScanned++
		report.Summary.LinesScanned += f.LinesScanned
		report.Summary.Matches += len(f.Matches)
	}
	return report
}

// HasMatches returns true if any rule matched in any file.
func (r *Report) HasMatches() bool {
	return r.Summary.Matches > 0
}
