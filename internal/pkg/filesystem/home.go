package filesystem

import (
	"os"
	"path/filepath"
	"runtime"
)

// UserHomeDir returns the current user's home directory.
// If the home directory cannot be determined, it returns "." as a fallback.
func UserHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// SupportDir returns the per-user application support directory for clipd:
// ~/Library/Application Support/clipd on macOS, ~/.clipd elsewhere.
func SupportDir() string {
	if runtime.GOOS == "darwin" {
		return filepath.Join(UserHomeDir(), "Library", "Application Support", "clipd")
	}
	return filepath.Join(UserHomeDir(), ".clipd")
}
