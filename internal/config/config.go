// Package config loads zlint.json, resolving its location by walking
// parent directories from the working directory, and maps it to rule
// severities and per-rule options (§6).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	koanfjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/DonIsaac/zlint-sub002/internal/diagnostic"
)

// FileName is the configuration file's fixed name.
const FileName = "zlint.json"

// RuleConfig is one rule's resolved configuration: its effective
// severity plus any options from the `[severity, {...}]` tuple form.
type RuleConfig struct {
	Severity diagnostic.Severity
	Options  map[string]any
}

// Config is the fully resolved configuration for one invocation.
type Config struct {
	// Ignore holds glob patterns (matched with doublestar) excluded from
	// discovery, in addition to the engine's built-in hidden/vendor/
	// zig-out skip list (§4.5).
	Ignore []string `koanf:"ignore"`

	// Rules maps a rule code to its configured severity/options. Values
	// come from the JSON file as either a bare string ("off", "warning",
	// "error") or a two-element array [severity, options].
	Rules map[string]any `koanf:"rules"`

	// dir is the directory zlint.json was found in (or the starting
	// directory, if none was found); relative `ignore` globs resolve
	// against it.
	dir string
}

// Defaults returns the struct used to seed koanf before any file or
// env override is loaded: no extra ignores, no rule overrides (every
// rule keeps its registry default).
func Defaults() Config {
	return Config{Ignore: nil, Rules: map[string]any{}}
}

// Discover walks up from startDir, inclusive, looking for zlint.json.
// It returns the directory it was found in, or "" if the filesystem
// root was reached without finding one (not an error: zlint.json is
// optional).
func Discover(startDir string) (dir string, path string, err error) {
	dir, err = filepath.Abs(startDir)
	if err != nil {
		return "", "", err
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, statErr := os.Stat(candidate); statErr == nil {
			return dir, candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", nil
		}
		dir = parent
	}
}

// Load resolves and loads configuration starting from startDir,
// cascading struct defaults -> zlint.json -> ZLINT_* environment
// variables, mirroring the reference config loader's priority order.
// It also returns diagnostics for anything wrong with the file's
// content (unknown rule names) that do not prevent the rest of the
// file from loading.
func Load(startDir string) (*Config, []diagnostic.Diagnostic, error) {
	dir, path, err := Discover(startDir)
	if err != nil {
		return nil, nil, err
	}
	if dir == "" {
		dir = startDir
	}

	k := koanf.New(".")
	if err := k.Load(structs.Provider(Defaults(), "koanf"), nil); err != nil {
		return nil, nil, fmt.Errorf("config: loading defaults: %w", err)
	}

	var raw []byte
	if path != "" {
		raw, err = os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
		if err := k.Load(file.Provider(path), koanfjson.Parser()); err != nil {
			return nil, nil, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: "ZLINT_",
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, "ZLINT_"))
			return key, value
		},
	}), nil); err != nil {
		return nil, nil, fmt.Errorf("config: loading environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.dir = dir

	var diags []diagnostic.Diagnostic
	if path != "" {
		diags = validateRuleKeys(raw, path)
	}
	return &cfg, diags, nil
}

// Dir returns the directory zlint.json was resolved from (or the
// invocation's starting directory if no file was found); relative
// ignore globs are joined against it.
func (c *Config) Dir() string { return c.dir }
