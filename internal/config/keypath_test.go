// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetValue_TopLevel(t *testing.T) {
	cfg := &Config{Retention: "7d", MinLength: intPtr(12)}

	val, err := GetValue(cfg, "retention")
	require.NoError(t, err)
	assert.Equal(t, "7d", val)

	val, err = GetValue(cfg, "min_length")
	require.NoError(t, err)
	assert.Equal(t, 12, val)
}

func TestGetValue_Nested(t *testing.T) {
	cfg := &Config{Backend: BackendConfig{Kind: "badger", Path: "/srv"}}

	val, err := GetValue(cfg, "backend.kind")
	require.NoError(t, err)
	assert.Equal(t, "badger", val)

	val, err = GetValue(cfg, "backend")
	require.NoError(t, err)
	m, ok := val.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "/srv", m["path"])
}

func TestGetValue_NotFound(t *testing.T) {
	_, err := GetValue(&Config{}, "similarity")
	assert.Error(t, err)

	_, err = GetValue(&Config{Scope: "site"}, "scope.inner")
	assert.Error(t, err)
}

func TestSetValue(t *testing.T) {
	data := map[string]any{"scope": "site"}
	require.NoError(t, SetValue(data, "similarity", "high"))
	require.NoError(t, SetValue(data, "min_length", "20"))
	require.NoError(t, SetValue(data, "backend.kind", "sqlite"))
	require.NoError(t, SetValue(data, "backend.redis_db", "3"))

	assert.Equal(t, "high", data["similarity"])
	assert.Equal(t, 20, data["min_length"])
	assert.Equal(t, map[string]any{"kind": "sqlite", "redis_db": 3}, data["backend"])
	assert.Equal(t, "site", data["scope"])
}

func TestSetValue_ParentNotMap(t *testing.T) {
	data := map[string]any{"backend": "file"}
	assert.Error(t, SetValue(data, "backend.kind", "sqlite"))
	assert.Error(t, SetValue(data, "", "x"))
}

func TestCoerceValue(t *testing.T) {
	assert.Equal(t, true, coerceValue("true"))
	assert.Equal(t, false, coerceValue("false"))
	assert.Equal(t, 42, coerceValue("42"))
	assert.Equal(t, "24h", coerceValue("24h"))
	assert.Equal(t, "1.5", coerceValue("1.5"))
}

func TestFlattenMap(t *testing.T) {
	got := FlattenMap(map[string]any{
		"scope":   "global",
		"backend": map[string]any{"kind": "redis", "redis_db": 2},
	}, "")
	assert.Equal(t, map[string]any{
		"scope":            "global",
		"backend.kind":     "redis",
		"backend.redis_db": 2,
	}, got)
}

func TestValidateKeyPath(t *testing.T) {
	tests := []struct {
		path    string
		wantErr string
	}{
		{"retention", ""},
		{"similarity", ""},
		{"min_length", ""},
		{"log_file", ""},
		{"backend.kind", ""},
		{"backend.redis_password", ""},
		{"", "empty key path"},
		{"colour", "unknown key"},
		{"scope.name", "is a scalar"},
		{"backend", "requires a field name"},
		{"backend.flavor", "unknown backend field"},
		{"backend.kind.x", "too deep"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			err := ValidateKeyPath(tt.path)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
