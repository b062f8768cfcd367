// Package config loads application configuration from Viper and the
// environment.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// DefaultDatabasePath returns where the reconciled store lives unless
// overridden.
func DefaultDatabasePath() string {
	return ExpandPath("~/.local/share/backoffice/backoffice.db")
}
