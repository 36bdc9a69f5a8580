// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package config

// Merge overlays layers from lowest to highest precedence. A field set in a
// later layer replaces the value from earlier ones; zero fields fall
// through. Nil layers are skipped.
//
// The CLI resolves global < repo < env < flags, so flags win.
func Merge(layers ...*Config) *Config {
	merged := &Config{}
	for _, l := range layers {
		if l == nil {
			continue
		}
		if l.Retention != "" {
			merged.Retention = l.Retention
		}
		if l.Scope != "" {
			merged.Scope = l.Scope
		}
		if l.Similarity != "" {
			merged.Similarity = l.Similarity
		}
		if l.MinLength != nil {
			n := *l.MinLength
			merged.MinLength = &n
		}
		if l.StorageKey != "" {
			merged.StorageKey = l.StorageKey
		}
		if l.LogFile != "" {
			merged.LogFile = l.LogFile
		}
		mergeBackend(&merged.Backend, l.Backend)
	}
	return merged
}

func mergeBackend(dst *BackendConfig, src BackendConfig) {
	if src.Kind != "" {
		dst.Kind = src.Kind
	}
	if src.Path != "" {
		dst.Path = src.Path
	}
	if src.RedisAddr != "" {
		dst.RedisAddr = src.RedisAddr
	}
	if src.RedisDB != 0 {
		dst.RedisDB = src.RedisDB
	}
	if src.RedisPassword != "" {
		dst.RedisPassword = src.RedisPassword
	}
}
