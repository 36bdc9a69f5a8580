// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/seen/internal/blobstore"
	"github.com/davetashner/seen/internal/config"
	"github.com/davetashner/seen/internal/dedup"
	"github.com/davetashner/seen/internal/similarity"
)

func TestConfigSubcommands_AreRegistered(t *testing.T) {
	subs := map[string]bool{}
	for _, cmd := range configCmd.Commands() {
		subs[cmd.Name()] = true
	}
	assert.True(t, subs["get"], "get subcommand should be registered")
	assert.True(t, subs["set"], "set subcommand should be registered")
	assert.True(t, subs["list"], "list subcommand should be registered")
}

func TestConfigSetThenGet(t *testing.T) {
	dir := isolate(t)

	out, err := run(t, "", "config", "set", "retention", "7d")
	require.NoError(t, err)
	assert.Equal(t, "Set retention = 7d\n", out)

	_, err = run(t, "", "config", "set", "backend.kind", "sqlite")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "retention: 7d")
	assert.Contains(t, string(data), "kind: sqlite")

	out, err = run(t, "", "config", "get", "retention")
	require.NoError(t, err)
	assert.Equal(t, "7d\n", out)

	out, err = run(t, "", "config", "get", "backend")
	require.NoError(t, err)
	assert.Contains(t, out, "kind: sqlite")
}

func TestConfigSet_Global(t *testing.T) {
	isolate(t)
	resetConfigFlags()

	_, err := run(t, "", "config", "set", "--global", "similarity", "high")
	require.NoError(t, err)
	assert.FileExists(t, config.GlobalConfigPath())

	resetConfigFlags()
	out, err := run(t, "", "config", "get", "similarity")
	require.NoError(t, err)
	assert.Equal(t, "high\n", out, "local view falls back to global")
}

func TestConfigSet_Rejected(t *testing.T) {
	dir := isolate(t)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown key", []string{"config", "set", "colour", "blue"}},
		{"scalar with sub-key", []string{"config", "set", "retention.days", "3"}},
		{"invalid similarity", []string{"config", "set", "similarity", "fuzzy"}},
		{"invalid backend", []string{"config", "set", "backend.kind", "postgres"}},
		{"negative min length", []string{"config", "set", "min_length", "-2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, "", tt.args...)
			assert.Error(t, err)
		})
	}
	assert.NoFileExists(t, filepath.Join(dir, config.FileName))
}

func TestConfigList(t *testing.T) {
	dir := isolate(t)

	out, err := run(t, "", "config", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No configuration set.")

	writeTestFile(t, filepath.Dir(config.GlobalConfigPath()), "config.yaml", "retention: 2d\nscope: global\n")
	writeTestFile(t, dir, config.FileName, "retention: 3d\nbackend:\n  redis_password: hunter22\n")

	out, err = run(t, "", "config", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "retention = 3d (local)")
	assert.Contains(t, out, "scope = global (global)")
	assert.Contains(t, out, "backend.redis_password = [REDACTED] (local)")
	assert.NotContains(t, out, "hunter22")
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := isolate(t)
	writeTestFile(t, filepath.Dir(config.GlobalConfigPath()), "config.yaml", "retention: 1d\nscope: global\nsimilarity: off\nmin_length: 5\n")
	writeTestFile(t, dir, config.FileName, "retention: 2d\nsimilarity: high\n")
	t.Setenv(config.EnvRetention, "3d")
	t.Setenv(config.EnvMinLength, "7")
	flagRetention = "4d"
	flagDataDir = filepath.Join(dir, "state")

	r, err := resolveConfig()
	require.NoError(t, err)

	assert.Equal(t, 4*24*time.Hour, r.Settings.Retention, "flag wins")
	assert.Equal(t, dedup.ScopeGlobal, r.Settings.Scope, "global config shows through")
	assert.Equal(t, similarity.ModeHigh, r.Settings.Similarity, "local beats global")
	assert.Equal(t, 7, r.Settings.MinLength, "env beats files")
	assert.Equal(t, blobstore.KindFile, r.Backend.Kind)
	assert.Equal(t, filepath.Join(dir, "state"), r.Backend.Path)
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	dir := isolate(t)
	path := writeTestFile(t, dir, "custom.toml", "similarity = \"off\"\n\n[backend]\nkind = \"memory\"\n")
	configPath = path

	r, err := resolveConfig()
	require.NoError(t, err)
	assert.Equal(t, similarity.ModeOff, r.Settings.Similarity)
	assert.Equal(t, blobstore.KindMemory, r.Backend.Kind)
}

func TestLoadConfig_InvalidEnv(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvMinLength, "many")
	_, err := resolveConfig()
	assert.Equal(t, ExitInvalidArgs, exitCode(t, err))
}
