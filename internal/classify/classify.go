// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

// Package classify decides, for each candidate text, whether a host should
// show it or suppress it, and records newly seen texts.
package classify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/davetashner/seen/internal/dedup"
	"github.com/davetashner/seen/internal/similarity"
)

// Action tells the host what to do with a classified item.
type Action string

// Actions.
const (
	ActionShow     Action = "show"
	ActionSuppress Action = "suppress"
)

// Outcome is the result of classifying one text.
type Outcome struct {
	Verdict dedup.Verdict
	Action  Action
	// Processed means the host can stop re-checking this item.
	Processed bool
	// TooShort is set when the text was below the minimum length and was
	// neither judged nor recorded.
	TooShort bool
}

// Options is a partial settings update. Nil fields are left unchanged.
type Options struct {
	Retention  *time.Duration
	Scope      *dedup.ScopePolicy
	Similarity *similarity.Mode
	MinLength  *int
}

// ScopeFunc resolves the caller's site partition from the request context.
type ScopeFunc func(ctx context.Context) string

// Observer receives classifier events. Implementations must be safe for
// concurrent use.
type Observer interface {
	Classified(verdict dedup.Verdict)
	Saved(err error)
	Pruned(removed int)
	Reset()
}

// Classifier orchestrates the store. It is safe for concurrent use: store
// access is serialized and settings are read from an immutable snapshot
// taken at the start of each call.
type Classifier struct {
	mu       sync.Mutex
	store    *dedup.Store
	settings atomic.Pointer[dedup.Settings]
	scope    ScopeFunc
	observer Observer
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithScopeFunc overrides how the site partition is resolved.
func WithScopeFunc(fn ScopeFunc) Option {
	return func(c *Classifier) { c.scope = fn }
}

// WithObserver registers an event observer.
func WithObserver(o Observer) Option {
	return func(c *Classifier) { c.observer = o }
}

// WithSettings sets the initial settings. Zero retention, scope and
// similarity take defaults; MinLength is kept as given, so 0 judges every
// non-empty text.
func WithSettings(s dedup.Settings) Option {
	return func(c *Classifier) {
		s = withDefaults(s)
		c.settings.Store(&s)
	}
}

// New returns a Classifier over store.
func New(store *dedup.Store, opts ...Option) *Classifier {
	c := &Classifier{store: store, scope: SiteFromContext}
	defaults := dedup.DefaultSettings()
	c.settings.Store(&defaults)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Settings returns the current settings snapshot.
func (c *Classifier) Settings() dedup.Settings {
	return *c.settings.Load()
}

// Configure applies a partial update. It affects subsequent calls only;
// existing records are not re-evaluated.
func (c *Classifier) Configure(opts Options) dedup.Settings {
	for {
		old := c.settings.Load()
		next := *old
		if opts.Retention != nil && *opts.Retention > 0 {
			next.Retention = *opts.Retention
		}
		if opts.Scope != nil {
			next.Scope = dedup.ParseScopePolicy(string(*opts.Scope))
		}
		if opts.Similarity != nil {
			next.Similarity = similarity.ParseMode(string(*opts.Similarity))
		}
		if opts.MinLength != nil && *opts.MinLength >= 0 {
			next.MinLength = *opts.MinLength
		}
		if c.settings.CompareAndSwap(old, &next) {
			slog.Debug("settings updated",
				"retention", next.Retention,
				"scope", next.Scope,
				"similarity", next.Similarity,
				"min_length", next.MinLength)
			return next
		}
	}
}

// Classify judges text from the item identified by origin, which may be
// empty. A new text is recorded before returning. When persisting fails the
// returned Outcome is still valid and the error is returned alongside it.
func (c *Classifier) Classify(ctx context.Context, text, origin string) (Outcome, error) {
	settings := *c.settings.Load()

	if text == "" || utf8.RuneCountInString(text) < settings.MinLength {
		return Outcome{Verdict: dedup.VerdictNew, Action: ActionShow, TooShort: true}, nil
	}

	site := c.scope(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	verdict := c.store.Query(text, origin, site, settings)
	c.notifyClassified(verdict)

	switch verdict {
	case dedup.VerdictDuplicate:
		return Outcome{Verdict: verdict, Action: ActionSuppress, Processed: true}, nil
	case dedup.VerdictOriginalReseen:
		return Outcome{Verdict: verdict, Action: ActionShow, Processed: true}, nil
	}

	out := Outcome{Verdict: dedup.VerdictNew, Action: ActionShow, Processed: true}
	err := c.store.Record(ctx, text, origin, site, settings)
	c.notifySaved(err)
	if err != nil {
		return out, fmt.Errorf("record %q: %w", site, err)
	}
	return out, nil
}

// ResetAll forgets every recorded text.
func (c *Classifier) ResetAll(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.store.Reset(ctx)
	c.notifySaved(err)
	if err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	if c.observer != nil {
		c.observer.Reset()
	}
	slog.Info("seen history cleared")
	return nil
}

// Prune drops records older than the current retention window.
func (c *Classifier) Prune(ctx context.Context) (int, error) {
	settings := *c.settings.Load()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed, err := c.store.Prune(ctx, settings.Retention)
	if removed > 0 {
		c.notifySaved(err)
	}
	if c.observer != nil {
		c.observer.Pruned(removed)
	}
	if err != nil {
		return removed, fmt.Errorf("prune: %w", err)
	}
	return removed, nil
}

// Stats returns per-scope record counts.
func (c *Classifier) Stats() dedup.Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Stats()
}

func (c *Classifier) notifyClassified(v dedup.Verdict) {
	if c.observer != nil {
		c.observer.Classified(v)
	}
}

func (c *Classifier) notifySaved(err error) {
	if c.observer != nil {
		c.observer.Saved(err)
	}
}

func withDefaults(s dedup.Settings) dedup.Settings {
	d := dedup.DefaultSettings()
	if s.Retention <= 0 {
		s.Retention = d.Retention
	}
	if s.Scope == "" {
		s.Scope = d.Scope
	} else {
		s.Scope = dedup.ParseScopePolicy(string(s.Scope))
	}
	if s.Similarity == "" {
		s.Similarity = d.Similarity
	} else {
		s.Similarity = similarity.ParseMode(string(s.Similarity))
	}
	if s.MinLength < 0 {
		s.MinLength = d.MinLength
	}
	return s
}
