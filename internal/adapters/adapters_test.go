// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package adapters

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/seen/internal/adapter"
)

const twitterPage = `<html><body>
<article data-testid="tweet">
  <a href="/alice/status/1790000000000000001?s=20">3h</a>
  <div data-testid="tweetText"><span>Big news today</span><br><span>more soon</span></div>
</article>
<article data-testid="tweet">
  <a href="/bob">Bob</a>
  <a href="https://x.com/bob/status/42/photo/1">photo</a>
  <div data-testid="tweetText">Second tweet</div>
</article>
<article data-testid="tweet">
  <div>no text block, no link</div>
</article>
</body></html>`

const redditPage = `<html><body>
<shreddit-post thingid="t3_abc" id="post-1">
  <a slot="title">A title here</a>
  <div slot="text-body"><p>First paragraph.</p><p>Second paragraph.</p></div>
</shreddit-post>
<shreddit-post id="post-2">
  <h2>Heading title</h2>
</shreddit-post>
<shreddit-comment thingid="t1_xyz">
  <div slot="comment"><p>Comment body</p></div>
  <div slot="actions">Reply Share</div>
</shreddit-comment>
<shreddit-comment thingid="t1_empty">
  <span>loose text</span>
</shreddit-comment>
</body></html>`

const genericPage = `<html><body>
<div class="content-item" id="a1">First <b>item</b></div>
<div class="content-item" data-id="b2">Second item<script>var x = 1;</script></div>
<div class="other">ignored</div>
<li class="content-item">No id</li>
</body></html>`

const rssFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Example</title>
<item><title>Launch day</title><description>&lt;p&gt;We &lt;b&gt;shipped&lt;/b&gt; it.&lt;/p&gt;</description><guid>urn:1</guid><link>https://example.com/1</link></item>
<item><title>Follow up</title><description>Plain text</description><link>https://example.com/2</link></item>
</channel></rss>`

func extract(t *testing.T, a adapter.Adapter, doc string) []adapter.Item {
	t.Helper()
	items, err := a.Extract(context.Background(), strings.NewReader(doc))
	require.NoError(t, err)
	return items
}

func TestTwitter_Extract(t *testing.T) {
	items := extract(t, &Twitter{}, twitterPage)
	require.Len(t, items, 3)

	assert.Equal(t, adapter.Item{Text: "Big news today\nmore soon", OriginID: "1790000000000000001"}, items[0])
	assert.Equal(t, adapter.Item{Text: "Second tweet", OriginID: "42"}, items[1])
	assert.Equal(t, adapter.Item{}, items[2])
}

func TestTwitter_Matches(t *testing.T) {
	a := &Twitter{}
	assert.True(t, a.Matches("twitter.com"))
	assert.True(t, a.Matches("x.com"))
	assert.True(t, a.Matches("mobile.twitter.com"))
	assert.False(t, a.Matches("www.reddit.com"))
}

func TestStatusID(t *testing.T) {
	tests := []struct {
		href string
		want string
	}{
		{"/alice/status/123", "123"},
		{"/alice/status/123/analytics", "123"},
		{"/alice/status/123?s=20", "123"},
		{"/alice/status/123#reply", "123"},
		{"/alice", ""},
	}
	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			assert.Equal(t, tt.want, statusID(tt.href))
		})
	}
}

func TestReddit_Extract(t *testing.T) {
	items := extract(t, &Reddit{}, redditPage)
	require.Len(t, items, 4)

	assert.Equal(t, "t3_abc", items[0].OriginID)
	assert.Equal(t, "A title here\nFirst paragraph.\nSecond paragraph.", items[0].Text)

	assert.Equal(t, "post-2", items[1].OriginID)
	assert.Equal(t, "Heading title\n", items[1].Text)

	assert.Equal(t, "t1_xyz", items[2].OriginID)
	assert.Equal(t, "Comment body", items[2].Text)

	assert.Equal(t, "t1_empty", items[3].OriginID)
	assert.Equal(t, "loose text", items[3].Text, "comment without slot falls back to element text")
}

func TestGeneric_Extract(t *testing.T) {
	items := extract(t, &Generic{}, genericPage)
	require.Len(t, items, 3)

	assert.Equal(t, adapter.Item{Text: "First item", OriginID: "a1"}, items[0])
	assert.Equal(t, adapter.Item{Text: "Second item", OriginID: "b2"}, items[1])
	assert.Equal(t, adapter.Item{Text: "No id"}, items[2])
}

func TestFeed_Extract(t *testing.T) {
	items := extract(t, &Feed{}, rssFeed)
	require.Len(t, items, 2)

	assert.Equal(t, adapter.Item{Text: "Launch day\nWe shipped it.", OriginID: "urn:1"}, items[0])
	assert.Equal(t, adapter.Item{Text: "Follow up\nPlain text", OriginID: "https://example.com/2"}, items[1])
}

func TestFeed_ExtractInvalid(t *testing.T) {
	_, err := (&Feed{}).Extract(context.Background(), strings.NewReader("not a feed"))
	assert.Error(t, err)
}

func TestLooksLikeFeed(t *testing.T) {
	assert.True(t, LooksLikeFeed([]byte(rssFeed)))
	assert.True(t, LooksLikeFeed([]byte(`<?xml version="1.0"?><feed xmlns="http://www.w3.org/2005/Atom">`)))
	assert.True(t, LooksLikeFeed([]byte(`<rdf:RDF xmlns:rdf="...">`)))
	assert.True(t, LooksLikeFeed([]byte(`{"version": "https://jsonfeed.org/version/1.1", "items": []}`)))
	assert.False(t, LooksLikeFeed([]byte(twitterPage)))
}

func TestInnerText(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"plain", "<div>hello   world</div>", "hello world"},
		{"br", "<div>a<br>b</div>", "a\nb"},
		{"blocks", "<div><p>one</p><p>two</p></div>", "one\ntwo"},
		{"inline", "<div>a <em>b</em> c</div>", "a b c"},
		{"script and style", "<div>x<script>y()</script><style>.z{}</style></div>", "x"},
		{"blank lines dropped", "<div><p> </p><p>kept</p></div>", "kept"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := goquery.NewDocumentFromReader(strings.NewReader(tt.html))
			require.NoError(t, err)
			assert.Equal(t, tt.want, innerText(doc.Find("div").First()))
		})
	}
}

func TestRegistered(t *testing.T) {
	for _, name := range []string{"twitter", "reddit", "generic", "feed"} {
		assert.NotNil(t, adapter.Get(name), name)
	}
	assert.Equal(t, "twitter", adapter.ForSite("x.com").Name())
	assert.Equal(t, "reddit", adapter.ForSite("old.reddit.com").Name())
	assert.Equal(t, adapter.Fallback, adapter.ForSite("news.example.org").Name())
}

func TestForSite_TwitterBeforeReddit(t *testing.T) {
	assert.Equal(t, "twitter", adapter.ForSite("reddit.x.com").Name())
	assert.Equal(t, "twitter", adapter.ForSite("twitter-reddit.example").Name())
}

func TestBuiltins_Order(t *testing.T) {
	var names []string
	for _, a := range builtins() {
		names = append(names, a.Name())
	}
	assert.Equal(t, []string{"twitter", "reddit", adapter.Fallback, "feed"}, names)
}

func TestFeed_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&Feed{}).Extract(ctx, strings.NewReader(rssFeed))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolve(t *testing.T) {
	assert.Equal(t, "feed", Resolve("x.com", []byte(rssFeed)).Name())
	assert.Equal(t, "twitter", Resolve("x.com", []byte(twitterPage)).Name())
	assert.Equal(t, adapter.Fallback, Resolve("", []byte(genericPage)).Name())
}
