// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"strings"

	"github.com/davetashner/seen/internal/blobstore"
	"github.com/davetashner/seen/internal/dedup"
	"github.com/davetashner/seen/internal/similarity"
)

// Validate checks all fields in the config and returns all errors at once.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.Retention != "" {
		d, err := ParseDuration(cfg.Retention)
		switch {
		case err != nil:
			errs = append(errs, fmt.Sprintf("retention: %v", err))
		case d <= 0:
			errs = append(errs, fmt.Sprintf("retention: must be positive, got %q", cfg.Retention))
		}
	}

	if cfg.Scope != "" && !dedup.ScopePolicy(cfg.Scope).Valid() {
		errs = append(errs, fmt.Sprintf("scope: invalid value %q (must be site or global)", cfg.Scope))
	}

	if cfg.Similarity != "" && !similarity.Mode(cfg.Similarity).Valid() {
		errs = append(errs, fmt.Sprintf("similarity: invalid value %q (must be off, low, or high)", cfg.Similarity))
	}

	if cfg.MinLength != nil && *cfg.MinLength < 0 {
		errs = append(errs, fmt.Sprintf("min_length: must be non-negative, got %d", *cfg.MinLength))
	}

	if cfg.StorageKey != "" {
		if err := blobstore.ValidateKey(cfg.StorageKey); err != nil {
			errs = append(errs, fmt.Sprintf("storage_key: %v", err))
		}
	}

	if cfg.Backend.Kind != "" {
		kind, err := blobstore.ParseKind(cfg.Backend.Kind)
		if err != nil {
			errs = append(errs, fmt.Sprintf("backend.kind: %v", err))
		} else if kind == blobstore.KindRedis && cfg.Backend.RedisAddr == "" {
			errs = append(errs, "backend.redis_addr: required when backend.kind is redis")
		}
	}

	if cfg.Backend.RedisDB < 0 || cfg.Backend.RedisDB > 15 {
		errs = append(errs, fmt.Sprintf("backend.redis_db: must be between 0 and 15, got %d", cfg.Backend.RedisDB))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
