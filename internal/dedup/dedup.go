// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

// Package dedup holds the scoped, persisted record of content that has
// already been seen, and answers whether a new piece of text repeats it.
//
// Records are keyed by the exact hash of the trimmed text within a scope.
// Each record also carries the SimHash fingerprint of the normalized text so
// that lightly edited re-posts can be found by Hamming distance.
package dedup

import (
	"fmt"
	"strings"
	"time"

	"github.com/davetashner/seen/internal/similarity"
)

// GlobalScope is the partition used by the global scope policy.
const GlobalScope = "global"

// LocalScope is the partition for callers that name no site.
const LocalScope = "local"

// Defaults applied when settings are left zero.
const (
	DefaultRetention  = 24 * time.Hour
	DefaultMinLength  = 10
	DefaultScope      = ScopeSite
	DefaultSimilarity = similarity.ModeLow
)

// ScopePolicy decides which partitions a text is compared against and
// recorded into.
type ScopePolicy string

// Scope policies.
const (
	// ScopeSite keeps one partition per site.
	ScopeSite ScopePolicy = "site"
	// ScopeGlobal records into a single shared partition and checks it
	// before the site partition.
	ScopeGlobal ScopePolicy = "global"
)

// ParseScopePolicy converts s to a policy. Anything other than "global"
// degrades to ScopeSite.
func ParseScopePolicy(s string) ScopePolicy {
	if ScopePolicy(strings.ToLower(strings.TrimSpace(s))) == ScopeGlobal {
		return ScopeGlobal
	}
	return ScopeSite
}

// Valid reports whether p is a known policy.
func (p ScopePolicy) Valid() bool {
	return p == ScopeSite || p == ScopeGlobal
}

// Verdict is the outcome of checking a text against the store.
type Verdict string

// Verdicts.
const (
	// VerdictNew means nothing in any checked scope matched.
	VerdictNew Verdict = "new"
	// VerdictDuplicate means a different item carried the same or similar text.
	VerdictDuplicate Verdict = "duplicate"
	// VerdictOriginalReseen means the caller's own item was seen before and
	// nothing else matched it.
	VerdictOriginalReseen Verdict = "original-reseen"
)

// Verdicts lists every verdict in a stable order.
func Verdicts() []Verdict {
	return []Verdict{VerdictNew, VerdictDuplicate, VerdictOriginalReseen}
}

// Record is one remembered text within a scope.
type Record struct {
	// Timestamp is when the text was recorded.
	Timestamp time.Time
	// Origin identifies the source item. Empty means unknown.
	Origin string
	// Fingerprint is the SimHash of the normalized text. It is meaningful
	// only when HasFingerprint is set; legacy records have none.
	Fingerprint    uint32
	HasFingerprint bool
}

// Settings tune how texts are compared and how long they are remembered.
// A Settings value is immutable once handed to the store; callers snapshot
// it per call.
type Settings struct {
	Retention  time.Duration
	Scope      ScopePolicy
	Similarity similarity.Mode
	MinLength  int
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Retention:  DefaultRetention,
		Scope:      DefaultScope,
		Similarity: DefaultSimilarity,
		MinLength:  DefaultMinLength,
	}
}

// Validate checks that s holds usable values.
func (s Settings) Validate() error {
	var errs []string
	if s.Retention <= 0 {
		errs = append(errs, fmt.Sprintf("retention must be positive, got %s", s.Retention))
	}
	if !s.Scope.Valid() {
		errs = append(errs, fmt.Sprintf("unknown scope policy %q", s.Scope))
	}
	if !s.Similarity.Valid() {
		errs = append(errs, fmt.Sprintf("unknown similarity mode %q", s.Similarity))
	}
	if s.MinLength < 0 {
		errs = append(errs, fmt.Sprintf("min length must not be negative, got %d", s.MinLength))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid settings: %s", strings.Join(errs, "; "))
	}
	return nil
}

// RecordScope returns the partition a new record lands in.
func (s Settings) RecordScope(site string) string {
	if s.Scope == ScopeGlobal {
		return GlobalScope
	}
	return siteScope(site)
}

// CheckScopes returns the partitions a query consults, in order.
func (s Settings) CheckScopes(site string) []string {
	if s.Scope == ScopeGlobal {
		return []string{GlobalScope, siteScope(site)}
	}
	return []string{siteScope(site)}
}

func siteScope(site string) string {
	if site == "" {
		return LocalScope
	}
	return site
}
