// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package blobstore

import (
	"context"
	"sync"
)

// Memory keeps blobs in process memory. It is the default when no backend
// is configured and is used heavily in tests.
type Memory struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

// Get implements Store.
func (m *Memory) Get(_ context.Context, key string, def []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.blobs[key]
	if !ok {
		return def, nil
	}
	return cloneOr(b, def), nil
}

// Set implements Store.
func (m *Memory) Set(_ context.Context, key string, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = cloneOr(blob, []byte{})
	return nil
}

// Close implements Backend.
func (m *Memory) Close() error { return nil }

// Kind implements Backend.
func (m *Memory) Kind() Kind { return KindMemory }
