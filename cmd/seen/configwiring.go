// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/davetashner/seen/internal/blobstore"
	"github.com/davetashner/seen/internal/classify"
	"github.com/davetashner/seen/internal/config"
	"github.com/davetashner/seen/internal/dedup"
	"github.com/davetashner/seen/internal/redact"
)

// flagConfig turns the global setting flags into a Config layer. Unset
// flags leave their fields zero so lower layers show through.
func flagConfig() *config.Config {
	return &config.Config{
		Retention:  flagRetention,
		Scope:      flagScope,
		Similarity: flagSimilarity,
		LogFile:    logFile,
		Backend: config.BackendConfig{
			Kind: flagBackend,
			Path: flagDataDir,
		},
	}
}

// loadConfig merges, lowest to highest precedence: the global config, the
// repo config (or --config), SEEN_* environment variables, and flags.
func loadConfig() (*config.Config, error) {
	global, err := config.LoadGlobal()
	if err != nil {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	var local *config.Config
	if configPath != "" {
		local, err = config.LoadFile(configPath)
	} else {
		local, err = config.Load(".")
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	env, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	return config.Merge(global, local, env, flagConfig()), nil
}

// resolveConfig loads and validates the effective configuration.
func resolveConfig() (config.Resolved, error) {
	cfg, err := loadConfig()
	if err != nil {
		return config.Resolved{}, exitError(ExitInvalidArgs, "%v", err)
	}
	r, err := config.Resolve(cfg)
	if err != nil {
		return config.Resolved{}, exitError(ExitInvalidArgs, "%v", err)
	}
	redact.Register(r.Backend.RedisPassword)
	if r.LogFile != "" {
		setupLog(r.LogFile)
	}
	return r, nil
}

// engine is an opened backend, store, and classifier.
type engine struct {
	classifier *classify.Classifier
	backend    blobstore.Backend
	resolved   config.Resolved
}

// openEngine resolves configuration and opens the classifier on the
// configured backend. The caller must Close the engine.
func openEngine(ctx context.Context, opts ...classify.Option) (*engine, error) {
	r, err := resolveConfig()
	if err != nil {
		return nil, err
	}

	backend, err := blobstore.Open(ctx, r.Backend)
	if err != nil {
		return nil, exitError(ExitTotalFailure, "open %s backend: %v", r.Backend.Kind, err)
	}
	store, err := dedup.Open(ctx, backend, r.StorageKey, dedup.WithRetention(r.Settings.Retention))
	if err != nil {
		_ = backend.Close()
		return nil, exitError(ExitTotalFailure, "open store: %v", err)
	}

	slog.Debug("engine ready",
		"backend", backend.Kind(),
		"path", r.Backend.Path,
		"key", r.StorageKey,
		"retention", r.Settings.Retention,
		"scope", r.Settings.Scope,
		"similarity", r.Settings.Similarity)

	opts = append([]classify.Option{classify.WithSettings(r.Settings)}, opts...)
	return &engine{
		classifier: classify.New(store, opts...),
		backend:    backend,
		resolved:   r,
	}, nil
}

// Close releases the backend.
func (e *engine) Close() error {
	if err := e.backend.Close(); err != nil {
		return fmt.Errorf("close %s backend: %w", e.backend.Kind(), err)
	}
	return nil
}
