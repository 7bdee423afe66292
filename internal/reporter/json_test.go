package reporter_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DonIsaac/zlint-sub002/internal/diagnostic"
	"github.com/DonIsaac/zlint-sub002/internal/reporter"
	"github.com/DonIsaac/zlint-sub002/internal/source"
)

func TestJSONFormatterProducesOneObjectPerCall(t *testing.T) {
	src := source.New("a.zig", []byte("const x = undefined;\n"))
	span := source.Span{Start: 10, End: 19}
	d := diagnostic.New(diagnostic.SeverityWarning, "unsafe-undefined", "bad", span).
		WithHelp("fix it").WithSourceName("a.zig")

	var b strings.Builder
	require.NoError(t, (reporter.JSONFormatter{}).Format(&b, d, src))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(b.String()), &decoded))
	require.Equal(t, "warning", decoded["level"])
	require.Equal(t, "unsafe-undefined", decoded["code"])
	require.Equal(t, "bad", decoded["message"])
	require.Equal(t, "fix it", decoded["help"])
	require.Equal(t, "a.zig", decoded["source_name"])
	labels, ok := decoded["labels"].([]any)
	require.True(t, ok)
	require.Len(t, labels, 1)
}

func TestReporterAggregatesCountsAndExitCode(t *testing.T) {
	var b strings.Builder
	r := reporter.New(&b, reporter.JSONFormatter{}, false)
	src := source.New("a.zig", []byte("const x = 1;\n"))

	diags := []diagnostic.Diagnostic{
		diagnostic.New(diagnostic.SeverityErr, "E", "e", source.Span{}),
		diagnostic.New(diagnostic.SeverityWarning, "W", "w", source.Span{}),
	}
	require.NoError(t, r.ReportErrorSlice(diags, src))
	r.ReportFile()

	stats := r.Stats()
	require.EqualValues(t, 1, stats.Files)
	require.EqualValues(t, 1, stats.Errors)
	require.EqualValues(t, 1, stats.Warnings)
	require.Equal(t, 1, stats.ExitCode(false))
	require.Equal(t, 1, stats.ExitCode(true))

	zeroErrStats := reporter.Stats{Warnings: 1}
	require.Equal(t, 0, zeroErrStats.ExitCode(false))
	require.Equal(t, 1, zeroErrStats.ExitCode(true))
}

func TestReporterQuietModeDropsNonErrorsFromOutputButStillCounts(t *testing.T) {
	var b strings.Builder
	r := reporter.New(&b, reporter.JSONFormatter{}, true)
	diags := []diagnostic.Diagnostic{
		diagnostic.New(diagnostic.SeverityWarning, "W", "w", source.Span{}),
	}
	require.NoError(t, r.ReportErrorSlice(diags, nil))
	require.Empty(t, b.String())
	require.EqualValues(t, 1, r.Stats().Warnings)
}
