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

// Reddit extracts posts and comments from the shreddit web components.
type Reddit struct{}

// Name implements adapter.Adapter.
func (*Reddit) Name() string { return "reddit" }

// Matches implements adapter.Adapter.
func (*Reddit) Matches(site string) bool {
	return strings.Contains(site, "reddit")
}

// Extract implements adapter.Adapter.
func (*Reddit) Extract(_ context.Context, r io.Reader) ([]adapter.Item, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var items []adapter.Item
	doc.Find("shreddit-post, shreddit-comment").Each(func(_ int, el *goquery.Selection) {
		var text string
		if goquery.NodeName(el) == "shreddit-comment" {
			text = redditComment(el)
		} else {
			text = redditPost(el)
		}
		if strings.TrimSpace(text) == "" {
			text = innerText(el)
		}
		items = append(items, adapter.Item{
			Text:     text,
			OriginID: firstAttr(el, "thingid", "id"),
		})
	})
	return items, nil
}

func redditComment(el *goquery.Selection) string {
	if slot := el.Find(`[slot="comment"]`).First(); slot.Length() > 0 {
		return innerText(slot)
	}
	return innerText(el)
}

func redditPost(el *goquery.Selection) string {
	title := el.Find(`[slot="title"]`).First()
	if title.Length() == 0 {
		title = el.Find("h1, h2, h3").First()
	}
	body := el.Find(`[slot="text-body"]`).First()
	return innerText(title) + "\n" + innerText(body)
}
