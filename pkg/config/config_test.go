package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	content := `
files:
  - public/index.html
rules:
  - name: render
    contains: ["function render"]
    context: 5
  - name: listener
    label: click listener
    contains: ["addEventListener", "click"]
    show_line: true
`
	cfg, err := Load(context.Background(), writeTempFile(t, "rules.yaml", content))
	require.NoError(t, err)

	assert.Equal(t, []string{"public/index.html"}, cfg.Files)
	assert.Equal(t, DefaultBanner, cfg.Banner)
	require.Len(t, cfg.Rules, 2)

	assert.Equal(t, "render", cfg.Rules[0].Label, "label defaults to name")
	assert.Equal(t, 5, cfg.Rules[0].Context)
	assert.Equal(t, "click listener", cfg.Rules[1].Label)
	assert.True(t, cfg.Rules[1].ShowLine)
	assert.Equal(t, []string{"render", "listener"}, cfg.RuleNames())
}

func TestLoad_EmptyBannerDisables(t *testing.T) {
	content := `
banner: ""
rules:
  - name: a
    contains: [x]
`
	cfg, err := Load(context.Background(), writeTempFile(t, "rules.yaml", content))
	require.NoError(t, err)
	assert.Empty(t, cfg.Banner)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(context.Background(), "/nonexistent/rules.yaml")
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(context.Background(), writeTempFile(t, "bad.yaml", "rules: [\n"))
	assert.ErrorContains(t, err, "parsing config file")
}

func TestLoad_UnknownField(t *testing.T) {
	content := `
rules:
  - name: a
    contain: [x]
`
	_, err := Load(context.Background(), writeTempFile(t, "rules.yaml", content))
	assert.Error(t, err)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvFiles, "a.html, b.html,")
	t.Setenv(EnvContext, "3")

	content := `
files: [ignored.html]
rules:
  - name: with-context
    contains: [x]
    context: 10
  - name: without-context
    contains: [y]
`
	cfg, err := Load(context.Background(), writeTempFile(t, "rules.yaml", content))
	require.NoError(t, err)

	assert.Equal(t, []string{"a.html", "b.html"}, cfg.Files)
	assert.Equal(t, 3, cfg.Rules[0].Context)
	assert.Equal(t, 0, cfg.Rules[1].Context, "rules without context are left alone")
}

func TestLoad_InvalidContextEnv(t *testing.T) {
	t.Setenv(EnvContext, "ten")

	_, err := LoadDefault()
	assert.ErrorContains(t, err, EnvContext)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		rules   []Rule
		wantErr string
	}{
		{
			name:    "no rules",
			wantErr: "at least one rule",
		},
		{
			name:    "missing name",
			rules:   []Rule{{Contains: []string{"x"}}},
			wantErr: "name is required",
		},
		{
			name:    "no substrings",
			rules:   []Rule{{Name: "a"}},
			wantErr: "contains",
		},
		{
			name:    "empty substring",
			rules:   []Rule{{Name: "a", Contains: []string{"x", ""}}},
			wantErr: "contains[1]",
		},
		{
			name:    "negative context",
			rules:   []Rule{{Name: "a", Contains: []string{"x"}, Context: -1}},
			wantErr: "context must be >= 0",
		},
		{
			name:    "context too large",
			rules:   []Rule{{Name: "a", Contains: []string{"x"}, Context: MaxContext + 1}},
			wantErr: "context must be <=",
		},
		{
			name: "duplicate name",
			rules: []Rule{
				{Name: "a", Contains: []string{"x"}},
				{Name: "a", Contains: []string{"y"}},
			},
			wantErr: "duplicate name",
		},
		{
			name:  "valid",
			rules: []Rule{{Name: "a", Contains: []string{"x"}, Context: MaxContext}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&Config{Rules: tt.rules})
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, Validate(cfg))

	assert.Equal(t, []string{
		"load-properties-def",
		"load-properties-call",
		"dom-content-loaded",
		"mobile-cards",
	}, cfg.RuleNames())
	assert.Equal(t, DefaultContext, cfg.Rules[0].Context)
	assert.False(t, cfg.Rules[0].ShowLine)
}

func TestRule_Matches(t *testing.T) {
	call := DefaultRules()[1]

	assert.True(t, call.Matches("      await loadProperties();"))
	assert.False(t, call.Matches("      loadProperties();"), "all substrings must be present")
	assert.False(t, call.Matches("      await fetchData();"))
	assert.False(t, (&Rule{Name: "empty"}).Matches("anything"))
}

func TestMarshal_RoundTrip(t *testing.T) {
	data, err := Marshal(DefaultConfig())
	require.NoError(t, err)

	cfg, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestOverrideContext_ZeroThenPositive(t *testing.T) {
	cfg := DefaultConfig()

	cfg.OverrideContext(0)
	assert.Equal(t, 0, cfg.Rules[0].Context)

	cfg.OverrideContext(3)
	assert.Equal(t, 3, cfg.Rules[0].Context, "a rule overridden to 0 still takes later overrides")
	assert.Equal(t, 0, cfg.Rules[1].Context, "rules without context are left alone")
}

func TestLoad_EmptyFile(t *testing.T) {
	_, err := Load(context.Background(), writeTempFile(t, "empty.yaml", ""))
	require.Error(t, err)
	assert.ErrorContains(t, err, "at least one rule is required")
	assert.NotContains(t, err.Error(), "EOF")
}
