package linter

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/DonIsaac/zlint-sub002/internal/config"
)

// skipDirs names are never descended into regardless of configuration.
var skipDirs = map[string]bool{"vendor": true, "zig-out": true}

// Discover walks roots (files or directories) and returns every .zig
// file found, skipping hidden directories, vendor/zig-out, and any path
// cfg marks as ignored (§4.5). A root that is itself a file is returned
// as-is without extension filtering, matching explicit file arguments
// always being linted.
func Discover(roots []string, cfg *config.Config) ([]string, error) {
	var files []string
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			name := d.Name()
			if d.IsDir() {
				if path != root && (strings.HasPrefix(name, ".") || skipDirs[name]) {
					return filepath.SkipDir
				}
				return nil
			}
			if !strings.HasSuffix(name, ".zig") {
				return nil
			}
			if cfg != nil {
				rel, relErr := filepath.Rel(cfg.Dir(), path)
				if relErr == nil && cfg.IsIgnored(rel) {
					return nil
				}
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}
