// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
)

// GlobalConfigDir returns the directory for global seen configuration.
// It uses $XDG_CONFIG_HOME/seen if set, otherwise ~/.config/seen.
func GlobalConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "seen")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "seen")
}

// GlobalConfigPath returns the path to the global config file.
func GlobalConfigPath() string {
	return filepath.Join(GlobalConfigDir(), "config.yaml")
}

// LoadGlobal loads the global config file.
// If the file does not exist, it returns a zero-value Config and nil error.
func LoadGlobal() (*Config, error) {
	return LoadFile(GlobalConfigPath())
}

// DefaultDataDir is where file, sqlite, and badger state lives by default:
// $XDG_DATA_HOME/seen, otherwise ~/.local/share/seen.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "seen")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "seen")
}
