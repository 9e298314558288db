package config

import (
	"os"
	"strconv"
	"strings"
)

// Default values for configuration.
const (
	DefaultContext = 10
	MaxContext     = 100
	DefaultBanner  = "Searching for key functions and their line numbers...\n"
)

// Environment variable names.
const (
	EnvFiles   = "LINESCAN_FILES"
	EnvContext = "LINESCAN_CONTEXT"
)

// DefaultRules returns the built-in rules used when no rules file is given.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     "load-properties-def",
			Label:    "loadProperties function defined",
			Contains: []string{"async function loadProperties"},
			Context:  DefaultContext,
		},
		{
			Name:     "load-properties-call",
			Label:    "loadProperties() called",
			Contains: []string{"loadProperties()", "await"},
			ShowLine: true,
		},
		{
			Name:     "dom-content-loaded",
			Label:    "DOMContentLoaded listener",
			Contains: []string{"DOMContentLoaded"},
			ShowLine: true,
		},
		{
			Name:     "mobile-cards",
			Label:    "updateMobilePropertyCards",
			Contains: []string{"updateMobilePropertyCards"},
			ShowLine: true,
		},
	}
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Banner: DefaultBanner,
		Rules:  DefaultRules(),
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() error {
	if files := os.Getenv(EnvFiles); files != "" {
		c.Files = splitList(files)
	}

	if v := os.Getenv(EnvContext); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		c.OverrideContext(n)
	}
	return nil
}

// OverrideContext sets the context size of every rule that prints context.
// A rule keeps that status after being overridden to 0, so a later override
// still reaches it.
func (c *Config) OverrideContext(n int) {
	for i := range c.Rules {
		r := &c.Rules[i]
		if r.Context > 0 || r.contextual {
			r.contextual = true
			r.Context = n
		}
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
