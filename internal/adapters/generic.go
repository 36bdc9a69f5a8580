// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package adapters

import (
	"context"
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"

	"github.com/davetashner/seen/internal/adapter"
)

// Generic is the fallback adapter. Any page that marks its items with the
// content-item class can be filtered.
type Generic struct{}

// Name implements adapter.Adapter.
func (*Generic) Name() string { return adapter.Fallback }

// Matches implements adapter.Adapter. The fallback is never chosen by
// site; the registry returns it when nothing else matches.
func (*Generic) Matches(string) bool { return false }

// Extract implements adapter.Adapter.
func (*Generic) Extract(_ context.Context, r io.Reader) ([]adapter.Item, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var items []adapter.Item
	doc.Find(".content-item").Each(func(_ int, el *goquery.Selection) {
		items = append(items, adapter.Item{
			Text:     innerText(el),
			OriginID: firstAttr(el, "id", "data-id"),
		})
	})
	return items, nil
}
