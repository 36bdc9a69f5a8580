// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

// Package adapter defines the Adapter interface and a registry of the
// per-site extractors that turn a fetched page or feed into candidate items.
package adapter

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
)

// Item is one candidate piece of content extracted from a source.
type Item struct {
	// Text is the content to classify.
	Text string
	// OriginID identifies the source item (post or comment ID). It may be
	// empty when the page does not expose one.
	OriginID string
}

// Adapter extracts items from a source document.
type Adapter interface {
	// Name returns the unique name of this adapter (e.g. "reddit").
	Name() string

	// Matches reports whether this adapter handles pages from site.
	Matches(site string) bool

	// Extract parses r and returns the items it contains, in document order.
	Extract(ctx context.Context, r io.Reader) ([]Item, error)
}

// Fallback is the name of the adapter used when no other adapter matches a
// site.
const Fallback = "generic"

var (
	mu       sync.RWMutex
	registry = make(map[string]Adapter)
	order    []string
)

// Register adds an adapter to the global registry. Adapters are consulted
// by ForSite in registration order.
// It panics if an adapter with the same name is already registered.
func Register(a Adapter) {
	mu.Lock()
	defer mu.Unlock()
	name := a.Name()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("adapter already registered: %s", name))
	}
	registry[name] = a
	order = append(order, name)
}

// Get returns the adapter with the given name, or nil if not found.
func Get(name string) Adapter {
	mu.RLock()
	defer mu.RUnlock()
	return registry[name]
}

// List returns the names of all registered adapters, sorted.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ForSite returns the first registered adapter that matches site, or the
// fallback adapter. It returns nil only when neither exists.
func ForSite(site string) Adapter {
	mu.RLock()
	defer mu.RUnlock()
	for _, name := range order {
		if name == Fallback {
			continue
		}
		if a := registry[name]; a.Matches(site) {
			return a
		}
	}
	return registry[Fallback]
}

// resetForTesting clears the registry. Only for use in tests.
func resetForTesting() {
	mu.Lock()
	defer mu.Unlock()
	registry = make(map[string]Adapter)
	order = nil
}
