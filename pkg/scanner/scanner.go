package scanner

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ccollicutt/linescan/pkg/config"
	"github.com/ccollicutt/linescan/pkg/source"
)

// ErrNoRules is returned when the rule filter leaves nothing to run.
var ErrNoRules = errors.New("no rules to execute (check --rule filter)")

// Scanner tests each line of a file against a fixed set of rules.
type Scanner struct {
	rules  []config.Rule
	logger *zap.Logger

	ruleFilter map[string]bool // nil means all rules
}

// Option configures scanner behavior.
type Option func(*Scanner)

// WithLogger sets the logger used for debug events.
func WithLogger(l *zap.Logger) Option {
	return func(s *Scanner) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRuleFilter limits scanning to the named rules.
func WithRuleFilter(names []string) Option {
	return func(s *Scanner) {
		if len(names) > 0 {
			s.ruleFilter = make(map[string]bool, len(names))
			for _, n := range names {
				s.ruleFilter[n] = true
			}
		}
	}
}

// New creates a scanner for rules. Rules are expected to be validated.
func New(rules []config.Rule, opts ...Option) (*Scanner, error) {
	s := &Scanner{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	known := make(map[string]bool, len(rules))
	for _, r := range rules {
		known[r.Name] = true
		if s.ruleFilter != nil && !s.ruleFilter[r.Name] {
			continue
		}
		s.rules = append(s.rules, r)
	}

	for name := range s.ruleFilter {
		if !known[name] {
			return nil, fmt.Errorf("unknown rule %q", name)
		}
	}

	if len(s.rules) == 0 {
		return nil, ErrNoRules
	}
	return s, nil
}

// Rules returns the rules the scanner runs, in order.
func (s *Scanner) Rules() []config.Rule {
	return s.rules
}

// Scan reads the file at path and matches every line. No result is returned
// if the file cannot be read in full.
func (s *Scanner) Scan(ctx context.Context, path string) (*FileResult, error) {
	lines, err := source.ReadLines(ctx, path)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("file read", zap.String("path", path), zap.Int("lines", len(lines)))

	return s.ScanLines(path, lines), nil
}

// ScanLines matches already-read lines. lines must be in file order and
// numbered from 1.
func (s *Scanner) ScanLines(path string, lines []source.Line) *FileResult {
	result := &FileResult{
		Source:       path,
		LinesScanned: len(lines),
		Matches:      []Match{},
	}

	for i, line := range lines {
		for r := range s.rules {
			rule := &s.rules[r]
			if !rule.Matches(line.Content) {
				continue
			}

			m := Match{
				Rule:       rule.Name,
				Label:      rule.Label,
				LineNum:    line.LineNum,
				Content:    line.Content,
				ShowLine:   rule.ShowLine,
				HasContext: rule.Context > 0,
			}
			if rule.Context > 0 {
				m.Context = contextWindow(lines, i, rule.Context)
			}
			result.Matches = append(result.Matches, m)

			s.logger.Debug("rule matched",
				zap.String("rule", rule.Name),
				zap.String("path", path),
				zap.Int("line", line.LineNum))
		}
	}

	return result
}

// contextWindow returns up to n lines starting at index i, bounded by the
// number of lines that follow i.
func contextWindow(lines []source.Line, i, n int) []source.Line {
	remaining := len(lines) - (i + 1)
	count := min(n, remaining)
	if count <= 0 {
		return nil
	}
	window := make([]source.Line, count)
	copy(window, lines[i:i+count])
	return window
}
