// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package adapters

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/davetashner/seen/internal/adapter"
)

// Feed extracts entries from RSS, Atom, and JSON feeds.
type Feed struct{}

// Name implements adapter.Adapter.
func (*Feed) Name() string { return "feed" }

// Matches implements adapter.Adapter. Feeds are picked by content, not by
// site; see LooksLikeFeed.
func (*Feed) Matches(string) bool { return false }

// Extract implements adapter.Adapter. Each entry becomes title and
// description joined by a newline, with HTML in the description reduced to
// its text.
func (*Feed) Extract(ctx context.Context, r io.Reader) ([]adapter.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	feed, err := gofeed.NewParser().Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	items := make([]adapter.Item, 0, len(feed.Items))
	for _, fi := range feed.Items {
		id := fi.GUID
		if id == "" {
			id = fi.Link
		}
		items = append(items, adapter.Item{
			Text:     fi.Title + "\n" + htmlText(fi.Description),
			OriginID: id,
		})
	}
	return items, nil
}

// htmlText strips markup from a feed description.
func htmlText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return innerText(doc.Find("body"))
}

// LooksLikeFeed sniffs the start of a document for RSS, Atom, RDF, or JSON
// Feed markers.
func LooksLikeFeed(head []byte) bool {
	if len(head) > 1024 {
		head = head[:1024]
	}
	lower := bytes.ToLower(head)
	for _, marker := range []string{"<rss", "<feed", "<rdf:rdf", "jsonfeed.org/version"} {
		if bytes.Contains(lower, []byte(marker)) {
			return true
		}
	}
	return false
}

// Resolve picks the adapter for a document fetched from site: the feed
// adapter when head looks like a feed, otherwise the registry's choice for
// site.
func Resolve(site string, head []byte) adapter.Adapter {
	if LooksLikeFeed(head) {
		if a := adapter.Get("feed"); a != nil {
			return a
		}
	}
	return adapter.ForSite(site)
}
