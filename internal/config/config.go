// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

// Package config handles .seen.yaml configuration files, the global config,
// and SEEN_* environment overrides.
package config

// Config represents the contents of a .seen.yaml file. String fields keep
// the raw user input; Resolve turns a merged Config into typed settings.
type Config struct {
	Retention  string        `yaml:"retention,omitempty" toml:"retention,omitempty"`
	Scope      string        `yaml:"scope,omitempty" toml:"scope,omitempty"`
	Similarity string        `yaml:"similarity,omitempty" toml:"similarity,omitempty"`
	MinLength  *int          `yaml:"min_length,omitempty" toml:"min_length,omitempty"`
	StorageKey string        `yaml:"storage_key,omitempty" toml:"storage_key,omitempty"`
	Backend    BackendConfig `yaml:"backend,omitempty" toml:"backend,omitempty"`
	LogFile    string        `yaml:"log_file,omitempty" toml:"log_file,omitempty"`
}

// BackendConfig selects where dedup state is persisted.
type BackendConfig struct {
	Kind          string `yaml:"kind,omitempty" toml:"kind,omitempty"`
	Path          string `yaml:"path,omitempty" toml:"path,omitempty"`
	RedisAddr     string `yaml:"redis_addr,omitempty" toml:"redis_addr,omitempty"`
	RedisDB       int    `yaml:"redis_db,omitempty" toml:"redis_db,omitempty"`
	RedisPassword string `yaml:"redis_password,omitempty" toml:"redis_password,omitempty"`
}

// FileName is the expected config file name in the working directory.
const FileName = ".seen.yaml"
