// Package config provides rules-file loading and validation for linescan.
package config

import "strings"

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Files lists paths or glob patterns scanned when none are given on the
	// command line.
	Files []string `yaml:"files,omitempty"`

	// Banner is printed once before any match in text output.
	Banner string `yaml:"banner,omitempty"`

	Rules []Rule `yaml:"rules"`
}

// Rule reports every line that contains all of its substrings.
type Rule struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`

	// Label prefixes the match message. Defaults to Name.
	Label string `yaml:"label,omitempty"`

	// Contains must all be present in a line for it to match.
	Contains []string `yaml:"contains"`

	// ShowLine appends the trimmed line to the match message.
	ShowLine bool `yaml:"show_line,omitempty"`

	// Context is the number of lines printed after the message, starting at
	// the matched line. Zero disables the context block.
	Context int `yaml:"context,omitempty"`

	// contextual is set once an override has touched a context rule.
	contextual bool
}

// Matches reports whether line contains every substring of the rule.
func (r *Rule) Matches(line string) bool {
	if len(r.Contains) == 0 {
		return false
	}
	for _, s := range r.Contains {
		if !strings.Contains(line, s) {
			return false
		}
	}
	return true
}

// RuleNames returns the names of all rules in order.
func (c *Config) RuleNames() []string {
	names := make([]string, len(c.Rules))
	for i := range c.Rules {
		names[i] = c.Rules[i].Name
	}
	return names
}
