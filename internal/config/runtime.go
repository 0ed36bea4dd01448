package config

import (
	"os"
	"path/filepath"
)

const defaultRuntimeDir = ".pastcast"

// GetRuntimePath resolves PASTCAST_RUNTIME_PATH; relative paths live under the home directory.
func GetRuntimePath() string {
	return resolveRuntimePath(os.Getenv("PASTCAST_RUNTIME_PATH"))
}

func resolveRuntimePath(path string) string {
	if path == "" {
		path = defaultRuntimeDir
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}
