// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

// Package redact strips backend secrets from strings before they appear in
// output, logs, or error messages.
package redact

import (
	"os"
	"strings"
	"sync"
)

// sensitiveEnvVars lists environment variable names whose values must never
// appear in output.
var sensitiveEnvVars = []string{
	"SEEN_REDIS_PASSWORD",
	"REDIS_PASSWORD",
	"REDIS_URL",
}

var (
	mu            sync.Mutex
	cachedSecrets []string
	cacheOnce     sync.Once
)

func loadSecrets() {
	for _, envVar := range sensitiveEnvVars {
		addLocked(os.Getenv(envVar))
	}
}

func addLocked(val string) {
	// Short values would redact ordinary words.
	if len(val) >= 4 {
		cachedSecrets = append(cachedSecrets, val)
	}
}

// Register adds a secret that did not come from the environment, such as a
// Redis password read from a config file.
func Register(secret string) {
	mu.Lock()
	defer mu.Unlock()
	cacheOnce.Do(loadSecrets)
	addLocked(secret)
}

// ResetForTest resets the cached secrets so tests can verify redaction
// behavior after setting env vars with t.Setenv.
func ResetForTest() {
	mu.Lock()
	defer mu.Unlock()
	cachedSecrets = nil
	cacheOnce = sync.Once{}
}

// String replaces any occurrence of a known secret with "[REDACTED]".
// Returns the original string if no secrets are found.
func String(s string) string {
	mu.Lock()
	defer mu.Unlock()
	cacheOnce.Do(loadSecrets)
	for _, secret := range cachedSecrets {
		s = strings.ReplaceAll(s, secret, "[REDACTED]")
	}
	return s
}
