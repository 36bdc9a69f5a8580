// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override file configuration.
const (
	EnvRetention     = "SEEN_RETENTION"
	EnvScope         = "SEEN_SCOPE"
	EnvSimilarity    = "SEEN_SIMILARITY"
	EnvMinLength     = "SEEN_MIN_LENGTH"
	EnvStorageKey    = "SEEN_STORAGE_KEY"
	EnvBackend       = "SEEN_BACKEND"
	EnvDataDir       = "SEEN_DATA_DIR"
	EnvRedisAddr     = "SEEN_REDIS_ADDR"
	EnvRedisDB       = "SEEN_REDIS_DB"
	EnvRedisPassword = "SEEN_REDIS_PASSWORD"
	EnvLogFile       = "SEEN_LOG_FILE"
)

// LoadDotEnv loads variables from the given .env files into the process
// environment. Variables that are already set are not overwritten, and
// missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// FromEnv builds a Config from SEEN_* variables. Unset variables leave the
// corresponding fields zero.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Retention:  os.Getenv(EnvRetention),
		Scope:      os.Getenv(EnvScope),
		Similarity: os.Getenv(EnvSimilarity),
		StorageKey: os.Getenv(EnvStorageKey),
		LogFile:    os.Getenv(EnvLogFile),
		Backend: BackendConfig{
			Kind:          os.Getenv(EnvBackend),
			Path:          os.Getenv(EnvDataDir),
			RedisAddr:     os.Getenv(EnvRedisAddr),
			RedisPassword: os.Getenv(EnvRedisPassword),
		},
	}
	if v := os.Getenv(EnvMinLength); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid integer %q", EnvMinLength, v)
		}
		cfg.MinLength = &n
	}
	if v := os.Getenv(EnvRedisDB); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid integer %q", EnvRedisDB, v)
		}
		cfg.Backend.RedisDB = n
	}
	return cfg, nil
}
