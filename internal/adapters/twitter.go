// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package adapters

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/davetashner/seen/internal/adapter"
)

// Twitter extracts tweets from x.com / twitter.com timelines.
type Twitter struct{}

// Name implements adapter.Adapter.
func (*Twitter) Name() string { return "twitter" }

// Matches implements adapter.Adapter.
func (*Twitter) Matches(site string) bool {
	return strings.Contains(site, "twitter") || strings.Contains(site, "x.com")
}

// Extract implements adapter.Adapter.
func (*Twitter) Extract(_ context.Context, r io.Reader) ([]adapter.Item, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var items []adapter.Item
	doc.Find(`article[data-testid="tweet"]`).Each(func(_ int, tweet *goquery.Selection) {
		item := adapter.Item{}
		if text := tweet.Find(`div[data-testid="tweetText"]`).First(); text.Length() > 0 {
			item.Text = innerText(text)
		}
		if href, ok := tweet.Find(`a[href*="/status/"]`).First().Attr("href"); ok {
			item.OriginID = statusID(href)
		}
		items = append(items, item)
	})
	return items, nil
}

// statusID pulls the numeric ID out of a /<user>/status/<id>/... link.
func statusID(href string) string {
	_, rest, ok := strings.Cut(href, "/status/")
	if !ok {
		return ""
	}
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		rest = rest[:i]
	}
	return rest
}
