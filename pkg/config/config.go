package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a rules file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	if err := cfg.applyEnvironmentOverrides(); err != nil {
		return nil, fmt.Errorf("%s: %w", EnvContext, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadDefault returns the built-in configuration with environment overrides
// applied.
func LoadDefault() (*Config, error) {
	cfg := DefaultConfig()
	if err := cfg.applyEnvironmentOverrides(); err != nil {
		return nil, fmt.Errorf("%s: %w", EnvContext, err)
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Parse decodes YAML without validating it. Unknown fields are rejected.
// An empty document yields a config without rules, which Validate reports.
// A file that omits banner gets the default one; an explicit empty banner
// disables it.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{Banner: DefaultBanner}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Marshal encodes cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return buf.Bytes(), nil
}

// Validate checks a configuration for errors and fills in rule defaults.
func Validate(cfg *Config) error {
	if len(cfg.Rules) == 0 {
		return errors.New("rules: at least one rule is required")
	}

	seen := make(map[string]int, len(cfg.Rules))
	for i := range cfg.Rules {
		rule := &cfg.Rules[i]
		if err := validateRule(rule); err != nil {
			return fmt.Errorf("rules[%d] (%s): %w", i, rule.Name, err)
		}
		if prev, ok := seen[rule.Name]; ok {
			return fmt.Errorf("rules[%d] (%s): duplicate name, first defined at rules[%d]", i, rule.Name, prev)
		}
		seen[rule.Name] = i
	}

	return nil
}

func validateRule(rule *Rule) error {
	if rule.Name == "" {
		return errors.New("name is required")
	}

	if len(rule.Contains) == 0 {
		return errors.New("contains: at least one substring is required")
	}
	for j, s := range rule.Contains {
		if s == "" {
			return fmt.Errorf("contains[%d]: empty substring", j)
		}
	}

	if rule.Context < 0 {
		return fmt.Errorf("context must be >= 0, got %d", rule.Context)
	}
	if rule.Context > MaxContext {
		return fmt.Errorf("context must be <= %d, got %d", MaxContext, rule.Context)
	}

	if rule.Label == "" {
		rule.Label = rule.Name
	}

	return nil
}
