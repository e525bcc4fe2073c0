package config

import (
	"os"
	"path/filepath"
)

// SearchPaths returns config files to auto-discover (first match wins):
// the working directory, then the user config directory.
func SearchPaths() []string {
	paths := []string{
		"websnap.toml",
		"websnap.yaml",
		"websnap.yml",
	}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths,
			filepath.Join(dir, "websnap", "websnap.toml"),
			filepath.Join(dir, "websnap", "websnap.yaml"),
		)
	}
	return paths
}

// Discover returns the first existing file from SearchPaths, or "".
func Discover() string {
	for _, path := range SearchPaths() {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}
