// Package xdg resolves the XDG base directory used for snowq configuration.
// When XDG_CONFIG_HOME is unset it falls back to ~/.config, per the XDG
// Base Directory specification.
package xdg

import (
	"os"
	"path/filepath"
)

const appDir = "snowq"

// ConfigDir returns the snowq config directory, creating it with private
// permissions if it does not exist yet. The directory holds the saved
// connection profile, so it must not be group or world readable.
func ConfigDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}

	dir := filepath.Join(base, appDir)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}
