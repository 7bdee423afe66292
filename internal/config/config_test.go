package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DonIsaac/zlint-sub002/internal/config"
	_ "github.com/DonIsaac/zlint-sub002/internal/rules/emptyfile"
	_ "github.com/DonIsaac/zlint-sub002/internal/rules/homelesstry"
	_ "github.com/DonIsaac/zlint-sub002/internal/rules/noreturntry"
	_ "github.com/DonIsaac/zlint-sub002/internal/rules/unsafeundefined"
	_ "github.com/DonIsaac/zlint-sub002/internal/rules/unuseddecls"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(body), 0o644))
}

func TestDiscoverWalksUpParentDirectories(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `{"rules":{}}`)
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	dir, path, err := config.Discover(nested)
	require.NoError(t, err)
	require.Equal(t, root, dir)
	require.Equal(t, filepath.Join(root, config.FileName), path)
}

func TestDiscoverReturnsEmptyWhenNoFileExists(t *testing.T) {
	dir, path, err := config.Discover(t.TempDir())
	require.NoError(t, err)
	require.Empty(t, dir)
	require.Empty(t, path)
}

func TestLoadParsesRulesAndIgnore(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{
		"ignore": ["zig-out/**", "*.gen.zig"],
		"rules": {
			"unused-decls": "off",
			"no-return-try": ["warning", {}]
		}
	}`)

	cfg, diags, err := config.Load(dir)
	require.NoError(t, err)
	require.Empty(t, diags)
	require.ElementsMatch(t, []string{"zig-out/**", "*.gen.zig"}, cfg.Ignore)
	require.True(t, cfg.IsIgnored("zig-out/cache/foo.zig"))
	require.True(t, cfg.IsIgnored("main.gen.zig"))
	require.False(t, cfg.IsIgnored("main.zig"))
}

func TestLoadFlagsUnknownRuleName(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"rules":{"not-a-real-rule":"error"}}`)

	_, diags, err := config.Load(dir)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	require.Equal(t, "invalid-config", diags[0].Code)
	require.Contains(t, diags[0].Message, "not-a-real-rule")
}

func TestLoadWithoutConfigFileUsesStartDir(t *testing.T) {
	dir := t.TempDir()
	cfg, diags, err := config.Load(dir)
	require.NoError(t, err)
	require.Empty(t, diags)
	require.Empty(t, cfg.Ignore)
}
