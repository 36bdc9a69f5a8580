// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package config

import (
	"path/filepath"

	"github.com/davetashner/seen/internal/blobstore"
	"github.com/davetashner/seen/internal/dedup"
	"github.com/davetashner/seen/internal/similarity"
)

// Resolved is a validated Config converted to the types the engine uses.
type Resolved struct {
	Settings   dedup.Settings
	StorageKey string
	Backend    blobstore.Options
	LogFile    string
}

// Resolve validates cfg and fills every unset field with its default.
func Resolve(cfg *Config) (Resolved, error) {
	if err := Validate(cfg); err != nil {
		return Resolved{}, err
	}

	r := Resolved{
		Settings:   dedup.DefaultSettings(),
		StorageKey: dedup.DefaultKey,
		LogFile:    cfg.LogFile,
	}
	if cfg.Retention != "" {
		d, _ := ParseDuration(cfg.Retention)
		r.Settings.Retention = d
	}
	if cfg.Scope != "" {
		r.Settings.Scope = dedup.ParseScopePolicy(cfg.Scope)
	}
	if cfg.Similarity != "" {
		r.Settings.Similarity = similarity.ParseMode(cfg.Similarity)
	}
	if cfg.MinLength != nil {
		r.Settings.MinLength = *cfg.MinLength
	}
	if cfg.StorageKey != "" {
		r.StorageKey = cfg.StorageKey
	}

	kind := blobstore.KindFile
	if cfg.Backend.Kind != "" {
		kind, _ = blobstore.ParseKind(cfg.Backend.Kind)
	}
	dataDir := cfg.Backend.Path
	if dataDir == "" {
		dataDir = DefaultDataDir()
	}
	r.Backend = blobstore.Options{
		Kind:          kind,
		RedisAddr:     cfg.Backend.RedisAddr,
		RedisDB:       cfg.Backend.RedisDB,
		RedisPassword: cfg.Backend.RedisPassword,
	}
	switch kind {
	case blobstore.KindSQLite:
		r.Backend.Path = filepath.Join(dataDir, "seen.db")
	case blobstore.KindBadger:
		r.Backend.Path = filepath.Join(dataDir, "badger")
	case blobstore.KindFile:
		r.Backend.Path = dataDir
	}
	return r, nil
}
