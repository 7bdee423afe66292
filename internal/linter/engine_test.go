package linter_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DonIsaac/zlint-sub002/internal/config"
	"github.com/DonIsaac/zlint-sub002/internal/linter"
	"github.com/DonIsaac/zlint-sub002/internal/reporter"
	"github.com/DonIsaac/zlint-sub002/internal/rules"
	_ "github.com/DonIsaac/zlint-sub002/internal/rules/homelesstry"
	_ "github.com/DonIsaac/zlint-sub002/internal/rules/unsafeundefined"
	_ "github.com/DonIsaac/zlint-sub002/internal/rules/unuseddecls"
)

func TestEngineRunReportsDiagnosticsAndExitCode(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "bad.zig")
	require.NoError(t, os.WriteFile(file, []byte("const x = undefined;\n"), 0o644))

	var out strings.Builder
	rep := reporter.New(&out, reporter.JSONFormatter{}, false)
	eng := linter.New(linter.Options{
		Config:   &config.Config{},
		Registry: rules.DefaultRegistry(),
		Reporter: rep,
		Jobs:     2,
	})

	require.NoError(t, eng.Run(context.Background(), []string{file}))
	stats := rep.Stats()
	require.EqualValues(t, 1, stats.Files)
	require.Greater(t, stats.Warnings+stats.Errors, int64(0))
}

func TestDiscoverSkipsHiddenAndVendorDirs(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.zig"), []byte(""), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".git", "hidden.zig"), []byte(""), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "vendor"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "vendor", "lib.zig"), []byte(""), 0o644))

	files, err := linter.Discover([]string{root}, nil)
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, filepath.Join(root, "main.zig"), files[0])
}
