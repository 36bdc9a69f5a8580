// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package dedup

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/davetashner/seen/internal/blobstore"
	"github.com/davetashner/seen/internal/similarity"
)

// Fixture texts. Distances are between normalized SimHash fingerprints.
const (
	newsPost       = "Breaking news: the city council approved the new downtown park budget after a long public hearing on Tuesday evening"
	newsWednesday  = "Breaking news: the city council approved the new downtown park budget after a long public hearing on Wednesday evening" // distance 3
	newsMorning    = "Breaking news: the city council approved the new downtown park budget after a long public hearing on Tuesday morning"   // distance 2
	newsRejected   = "Breaking news: the city council rejected the new downtown park budget after a long public hearing on Tuesday evening"   // distance 4
	newsAgain      = newsPost + " again"                                                                                                       // distance 0
	unrelatedPost  = "Sourdough starters need regular feeding with flour and water to stay active and bubbly"                                  // distance 17
	helloText      = "Hello world example"
	helloReshuffle = "hello, WORLD example!"
	stopwordsOnly  = "the and of to it is"
)

type fakeClock struct{ t time.Time }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// countingBackend records how often state is written and can fail writes.
type countingBackend struct {
	*blobstore.Memory
	sets   int
	setErr error
}

func newCountingBackend() *countingBackend {
	return &countingBackend{Memory: blobstore.NewMemory()}
}

func (b *countingBackend) Set(ctx context.Context, key string, blob []byte) error {
	b.sets++
	if b.setErr != nil {
		return b.setErr
	}
	return b.Memory.Set(ctx, key, blob)
}

func settingsWith(mode similarity.Mode, scope ScopePolicy) Settings {
	s := DefaultSettings()
	s.Similarity = mode
	s.Scope = scope
	return s
}

func openStore(t *testing.T, backend blobstore.Store, clock *fakeClock) *Store {
	t.Helper()
	s, err := Open(context.Background(), backend, DefaultKey, WithClock(clock.Now))
	require.NoError(t, err)
	return s
}
