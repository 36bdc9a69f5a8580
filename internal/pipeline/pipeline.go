// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

// Package pipeline runs adapters over a batch of sources and classifies
// every extracted item.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/davetashner/seen/internal/adapter"
	"github.com/davetashner/seen/internal/adapters"
	"github.com/davetashner/seen/internal/classify"
	"github.com/davetashner/seen/internal/dedup"
)

// DefaultConcurrency bounds how many sources are extracted at once.
const DefaultConcurrency = 4

// Source is one document to scan.
type Source struct {
	// Name labels the source in results, e.g. a file path.
	Name string
	// Site is the host the document came from. It selects the adapter and
	// the store partition.
	Site string
	// Adapter overrides adapter selection when non-nil.
	Adapter adapter.Adapter
	Data    []byte
}

// ItemResult is the classification of one extracted item.
type ItemResult struct {
	Source  string
	Index   int
	Item    adapter.Item
	Outcome classify.Outcome
	// Err is set when the item was classified but could not be persisted.
	Err error
}

// SourceResult records how extraction went for one source.
type SourceResult struct {
	Source   string
	Adapter  string
	Items    int
	Duration time.Duration
	Err      error
}

// Result is the outcome of one Run.
type Result struct {
	BatchID string
	Items   []ItemResult
	Sources []SourceResult
	// Counts tallies verdicts of judged items. Too-short items are only
	// counted in TooShort.
	Counts   map[dedup.Verdict]int
	TooShort int
	Duration time.Duration
}

// Pipeline extracts and classifies batches of sources.
type Pipeline struct {
	classifier  *classify.Classifier
	concurrency int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithConcurrency sets the extraction concurrency. Values below 1 are
// ignored.
func WithConcurrency(n int) Option {
	return func(p *Pipeline) {
		if n >= 1 {
			p.concurrency = n
		}
	}
}

// New creates a Pipeline that classifies with c.
func New(c *classify.Classifier, opts ...Option) *Pipeline {
	p := &Pipeline{classifier: c, concurrency: DefaultConcurrency}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type extraction struct {
	items []adapter.Item
	res   SourceResult
}

// Run extracts items from all sources concurrently, then classifies them
// one at a time in source order. A source that fails to extract is recorded
// in its SourceResult and does not abort the batch. Run returns an error
// only when ctx is cancelled; the Result then holds every item classified
// before the cancellation.
func (p *Pipeline) Run(ctx context.Context, sources []Source) (*Result, error) {
	start := time.Now()
	batchID := uuid.NewString()
	logger := slog.With("batch_id", batchID)
	logger.Debug("scan started", "sources", len(sources))

	extracted := make([]extraction, len(sources))

	var g errgroup.Group
	g.SetLimit(p.concurrency)
	for i, src := range sources {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			extracted[i] = p.extract(ctx, src)
			return nil
		})
	}
	_ = g.Wait()

	result := &Result{
		BatchID: batchID,
		Counts:  make(map[dedup.Verdict]int),
	}
	if err := ctx.Err(); err != nil {
		result.Duration = time.Since(start)
		return result, fmt.Errorf("scan %s: %w", batchID, err)
	}

	for i, src := range sources {
		ex := extracted[i]
		result.Sources = append(result.Sources, ex.res)
		if ex.res.Err != nil {
			logger.Warn("extraction failed", "source", src.Name, "adapter", ex.res.Adapter, "error", ex.res.Err)
			continue
		}

		siteCtx := classify.WithSite(ctx, src.Site)
		for j, item := range ex.items {
			if err := ctx.Err(); err != nil {
				result.Duration = time.Since(start)
				logger.Warn("scan cancelled", "classified", len(result.Items), "error", err)
				return result, fmt.Errorf("scan %s: %w", batchID, err)
			}
			out, err := p.classifier.Classify(siteCtx, item.Text, item.OriginID)
			if err != nil {
				logger.Warn("persist failed", "source", src.Name, "origin", item.OriginID, "error", err)
			}
			result.Items = append(result.Items, ItemResult{
				Source:  src.Name,
				Index:   j,
				Item:    item,
				Outcome: out,
				Err:     err,
			})
			if out.TooShort {
				result.TooShort++
				continue
			}
			result.Counts[out.Verdict]++
		}
	}

	result.Duration = time.Since(start)
	logger.Info("scan complete",
		"items", len(result.Items),
		"new", result.Counts[dedup.VerdictNew],
		"duplicate", result.Counts[dedup.VerdictDuplicate],
		"reseen", result.Counts[dedup.VerdictOriginalReseen],
		"too_short", result.TooShort,
		"duration", result.Duration)
	return result, nil
}

func (p *Pipeline) extract(ctx context.Context, src Source) extraction {
	start := time.Now()
	a := src.Adapter
	if a == nil {
		a = adapters.Resolve(src.Site, src.Data)
	}
	if a == nil {
		return extraction{res: SourceResult{
			Source:   src.Name,
			Duration: time.Since(start),
			Err:      fmt.Errorf("no adapter for site %q", src.Site),
		}}
	}

	items, err := a.Extract(ctx, bytes.NewReader(src.Data))
	return extraction{
		items: items,
		res: SourceResult{
			Source:   src.Name,
			Adapter:  a.Name(),
			Items:    len(items),
			Duration: time.Since(start),
			Err:      err,
		},
	}
}
