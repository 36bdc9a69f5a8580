// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package dedup

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/davetashner/seen/internal/blobstore"
	"github.com/davetashner/seen/internal/fingerprint"
	"github.com/davetashner/seen/internal/similarity"
)

// DefaultKey is the blob key the store persists under.
const DefaultKey = "seen-store"

// Store is the scoped record of seen content. It loads its state once from
// a blob backend and writes the whole state back after every mutation.
//
// Store is not safe for concurrent use; callers serialize access.
type Store struct {
	backend   blobstore.Store
	key       string
	retention time.Duration
	now       func() time.Time
	data      data
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithRetention sets the retention window applied when the store is opened.
func WithRetention(d time.Duration) Option {
	return func(s *Store) { s.retention = d }
}

// Open loads the store persisted under key. Missing or corrupt state starts
// empty. Expired records are pruned straight away, and the pruned state is
// written back only when something was removed; a failed write there is
// logged and the store is still returned.
func Open(ctx context.Context, backend blobstore.Store, key string, opts ...Option) (*Store, error) {
	if key == "" {
		key = DefaultKey
	}
	s := &Store{
		backend:   backend,
		key:       key,
		retention: DefaultRetention,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	blob, err := backend.Get(ctx, key, nil)
	if err != nil {
		return nil, fmt.Errorf("load store: %w", err)
	}
	s.data, err = decode(blob)
	if err != nil {
		slog.Warn("discarding unreadable store state", "key", key, "error", err)
		s.data = make(data)
	}

	if _, err := s.Prune(ctx, s.retention); err != nil {
		slog.Warn("save after load-time prune failed", "key", key, "error", err)
	}
	return s, nil
}

// Key returns the blob key the store persists under.
func (s *Store) Key() string { return s.key }

// save writes the full state to the backend.
func (s *Store) save(ctx context.Context) error {
	blob, err := encode(s.data)
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	if err := s.backend.Set(ctx, s.key, blob); err != nil {
		return fmt.Errorf("save store: %w", err)
	}
	return nil
}

// Prune removes every record older than retention and reports how many
// were removed. The state is written back only when something changed.
func (s *Store) Prune(ctx context.Context, retention time.Duration) (int, error) {
	now := s.now()
	removed := 0
	for scope, records := range s.data {
		for key, r := range records {
			if now.Sub(r.Timestamp) > retention {
				delete(records, key)
				removed++
			}
		}
		if len(records) == 0 {
			delete(s.data, scope)
		}
	}
	if removed == 0 {
		return 0, nil
	}
	slog.Debug("pruned expired records", "removed", removed, "retention", retention)
	return removed, s.save(ctx)
}

// Query reports whether text has been seen in any scope implied by settings.
// origin identifies the caller's item and may be empty; site names the
// caller's site partition.
func (s *Store) Query(text, origin, site string, settings Settings) Verdict {
	key := fingerprint.ExactKey(text)

	threshold, fuzzy := settings.Similarity.Threshold()
	var sim uint32
	if fuzzy {
		sim = fingerprint.SimHash(text)
	}

	for _, scope := range settings.CheckScopes(site) {
		if v, ok := s.queryScope(scope, key, sim, fuzzy, threshold, origin); ok {
			return v
		}
	}
	return VerdictNew
}

// queryScope checks one partition. ok is false when the scope has no
// opinion and the next scope should be consulted.
func (s *Store) queryScope(scope, key string, sim uint32, fuzzy bool, threshold int, origin string) (Verdict, bool) {
	records := s.data[scope]
	if len(records) == 0 {
		return "", false
	}

	self := false
	if r, hit := records[key]; hit {
		if origin == "" || r.Origin != origin {
			return VerdictDuplicate, true
		}
		// Same item reloaded. Keep looking in case a different item is close.
		self = true
	}

	if fuzzy {
		for k, r := range records {
			if k == key || !r.HasFingerprint || r.Fingerprint == 0 {
				continue
			}
			if origin != "" && r.Origin == origin {
				continue
			}
			if similarity.Within(sim, r.Fingerprint, threshold) {
				return VerdictDuplicate, true
			}
		}
	}

	if self {
		return VerdictOriginalReseen, true
	}
	return "", false
}

// Record remembers text under the scope chosen by settings and persists.
// An existing record for the same text in that scope is replaced.
func (s *Store) Record(ctx context.Context, text, origin, site string, settings Settings) error {
	scope := settings.RecordScope(site)
	records, ok := s.data[scope]
	if !ok {
		records = make(map[string]Record)
		s.data[scope] = records
	}
	records[fingerprint.ExactKey(text)] = Record{
		Timestamp:      s.now(),
		Origin:         origin,
		Fingerprint:    fingerprint.SimHash(text),
		HasFingerprint: true,
	}
	return s.save(ctx)
}

// Lookup returns the record stored for text in scope, if any.
func (s *Store) Lookup(scope, text string) (Record, bool) {
	r, ok := s.data[scope][fingerprint.ExactKey(text)]
	return r, ok
}

// Reset forgets everything and persists the empty state.
func (s *Store) Reset(ctx context.Context) error {
	s.data = make(data)
	return s.save(ctx)
}

// ScopeStats summarizes one partition.
type ScopeStats struct {
	Scope   string
	Records int
	Oldest  time.Time
	Newest  time.Time
}

// Stats summarizes the whole store.
type Stats struct {
	Scopes  []ScopeStats
	Records int
}

// Stats returns per-scope record counts sorted by scope name.
func (s *Store) Stats() Stats {
	var st Stats
	for scope, records := range s.data {
		ss := ScopeStats{Scope: scope, Records: len(records)}
		for _, r := range records {
			if ss.Oldest.IsZero() || r.Timestamp.Before(ss.Oldest) {
				ss.Oldest = r.Timestamp
			}
			if r.Timestamp.After(ss.Newest) {
				ss.Newest = r.Timestamp
			}
		}
		st.Scopes = append(st.Scopes, ss)
		st.Records += len(records)
	}
	sort.Slice(st.Scopes, func(i, j int) bool {
		return strings.Compare(st.Scopes[i].Scope, st.Scopes[j].Scope) < 0
	})
	return st
}
