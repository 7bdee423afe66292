package config

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// IsIgnored reports whether relPath (slash-separated, relative to
// c.Dir()) matches one of the configured ignore globs.
func (c *Config) IsIgnored(relPath string) bool {
	clean := filepath.ToSlash(relPath)
	for _, pattern := range c.Ignore {
		if ok, _ := doublestar.Match(pattern, clean); ok {
			return true
		}
		if !strings.HasSuffix(pattern, "/**") {
			if ok, _ := doublestar.Match(pattern+"/**", clean); ok {
				return true
			}
		}
	}
	return false
}
