// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/davetashner/seen/internal/testable"
)

// FS is the file system used to read and write config files.
var FS testable.FileSystem = testable.DefaultFS

// Load reads the .seen.yaml file from dir.
// If the file does not exist, it returns a zero-value Config and nil error.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, FileName))
}

// LoadFile reads a config file. Files ending in .toml are parsed as TOML;
// everything else is parsed as YAML. A missing file yields a zero Config.
func LoadFile(path string) (*Config, error) {
	data, err := FS.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if isTOML(path) {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return &cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadRaw reads a YAML config file into a generic map so that unknown or
// unset keys survive a set-and-write round trip. A missing file yields an
// empty map.
func LoadRaw(path string) (map[string]any, error) {
	data, err := FS.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return make(map[string]any), nil
		}
		return nil, err
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = make(map[string]any)
	}
	return m, nil
}

// WriteFile marshals data as YAML and writes it to path, creating the
// parent directory if needed.
func WriteFile(path string, data map[string]any) error {
	if err := FS.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	out, err := yaml.Marshal(data)
	if err != nil {
		return err
	}
	return FS.WriteFile(path, out, 0o600)
}

// Write marshals the config to YAML and writes it to w.
func Write(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close() //nolint:errcheck // best-effort close
	enc.SetIndent(2)
	return enc.Encode(cfg)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
