package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ccollicutt/linescan/pkg/config"
	"github.com/ccollicutt/linescan/pkg/source"
)

const page = `<!DOCTYPE html>
<html>
<body>
<div id="property-list"></div>
<script>
async function loadProperties() {
  const res = await fetch('/api/properties');
  const data = await res.json();
  updateMobilePropertyCards(data);
}
document.addEventListener('DOMContentLoaded', async () => {
  await loadProperties();
});
</script>
</body>
</html>
`

func newScanner(t *testing.T, opts ...Option) *Scanner {
	t.Helper()
	cfg := config.DefaultConfig()
	require.NoError(t, config.Validate(cfg))
	s, err := New(cfg.Rules, opts...)
	require.NoError(t, err)
	return s
}

func linesOf(text string) []source.Line {
	lines, err := source.Read(context.Background(), strings.NewReader(text), "page.html")
	if err != nil {
		panic(err)
	}
	return lines
}

func writePage(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index.html")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestScan_DefaultRules(t *testing.T) {
	path := writePage(t, page)

	result, err := newScanner(t).Scan(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, path, result.Source)
	assert.Equal(t, 16, result.LinesScanned)

	type hit struct {
		rule string
		line int
	}
	var got []hit
	for _, m := range result.Matches {
		got = append(got, hit{m.Rule, m.LineNum})
	}
	assert.Equal(t, []hit{
		{"load-properties-def", 6},
		{"mobile-cards", 9},
		{"dom-content-loaded", 11},
		{"load-properties-call", 12},
	}, got)
}

func TestScanLines_ReportsExactContent(t *testing.T) {
	result := newScanner(t).ScanLines("page.html", linesOf(page))

	var dom *Match
	for i := range result.Matches {
		if result.Matches[i].Rule == "dom-content-loaded" {
			dom = &result.Matches[i]
		}
	}
	require.NotNil(t, dom)
	assert.Equal(t, 11, dom.LineNum)
	assert.Equal(t, "document.addEventListener('DOMContentLoaded', async () => {", dom.Content)
	assert.True(t, dom.ShowLine)
	assert.Empty(t, dom.Context)
}

func TestScanLines_ContextStartsAtMatch(t *testing.T) {
	result := newScanner(t).ScanLines("page.html", linesOf(page))
	require.NotEmpty(t, result.Matches)

	def := result.Matches[0]
	require.Equal(t, "load-properties-def", def.Rule)
	assert.True(t, def.HasContext)
	require.Len(t, def.Context, config.DefaultContext)
	assert.Equal(t, 6, def.Context[0].LineNum)
	assert.Equal(t, "async function loadProperties() {", def.Context[0].Content)
	assert.Equal(t, 15, def.Context[9].LineNum)
}

func TestScanLines_ContextBounds(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		matchLine int
		want      int
	}{
		{name: "plenty of lines", total: 40, matchLine: 1, want: 10},
		{name: "exactly ten remaining", total: 20, matchLine: 10, want: 10},
		{name: "fewer remaining", total: 8, matchLine: 5, want: 3},
		{name: "last line", total: 5, matchLine: 5, want: 0},
		{name: "single line file", total: 1, matchLine: 1, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder
			for n := 1; n <= tt.total; n++ {
				if n == tt.matchLine {
					b.WriteString("async function loadProperties() {\n")
					continue
				}
				fmt.Fprintf(&b, "line %d\n", n)
			}

			result := newScanner(t).ScanLines("page.html", linesOf(b.String()))
			require.Len(t, result.Matches, 1)

			ctx := result.Matches[0].Context
			assert.Len(t, ctx, tt.want)
			assert.LessOrEqual(t, len(ctx), config.DefaultContext)
			assert.LessOrEqual(t, len(ctx), tt.total-tt.matchLine)
			assert.True(t, result.Matches[0].HasContext)
		})
	}
}

func TestScanLines_NoMatches(t *testing.T) {
	result := newScanner(t).ScanLines("page.html", linesOf("<p>nothing to see</p>\n"))

	assert.False(t, result.HasMatches())
	assert.NotNil(t, result.Matches)
	assert.Equal(t, 1, result.LinesScanned)
}

func TestScanLines_SeveralRulesOnOneLine(t *testing.T) {
	line := "window.addEventListener('DOMContentLoaded', async () => { await loadProperties(); });\n"
	result := newScanner(t).ScanLines("page.html", linesOf(line))

	require.Len(t, result.Matches, 2)
	assert.Equal(t, "load-properties-call", result.Matches[0].Rule, "rule order is preserved within a line")
	assert.Equal(t, "dom-content-loaded", result.Matches[1].Rule)
}

func TestScan_MissingFile(t *testing.T) {
	result, err := newScanner(t).Scan(context.Background(), filepath.Join(t.TempDir(), "nope.html"))

	assert.Nil(t, result)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestNew_RuleFilter(t *testing.T) {
	s := newScanner(t, WithRuleFilter([]string{"mobile-cards"}))

	require.Len(t, s.Rules(), 1)
	result := s.ScanLines("page.html", linesOf(page))
	require.Len(t, result.Matches, 1)
	assert.Equal(t, 9, result.Matches[0].LineNum)
}

func TestNew_UnknownRuleFilter(t *testing.T) {
	_, err := New(config.DefaultRules(), WithRuleFilter([]string{"does-not-exist"}))
	assert.ErrorContains(t, err, "does-not-exist")
}

func TestNew_NoRules(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNoRules)
}

func TestScanLines_LogsMatches(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := newScanner(t, WithLogger(zap.New(core)))

	s.ScanLines("page.html", linesOf(page))

	matched := logs.FilterMessage("rule matched").All()
	require.Len(t, matched, 4)
	assert.Equal(t, "load-properties-def", matched[0].ContextMap()["rule"])
	assert.EqualValues(t, 6, matched[0].ContextMap()["line"])
}
