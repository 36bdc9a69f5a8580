// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/seen/internal/blobstore"
	"github.com/davetashner/seen/internal/classify"
	"github.com/davetashner/seen/internal/dedup"
)

const newsPost = "Breaking news: the city council approved the new downtown park budget after a long public hearing on Tuesday evening"

func newClassifier(t *testing.T) *classify.Classifier {
	t.Helper()
	store, err := dedup.Open(context.Background(), blobstore.NewMemory(), dedup.DefaultKey)
	require.NoError(t, err)
	return classify.New(store)
}

// connect runs a server over in-memory transports and returns a client
// session to it.
func connect(t *testing.T, c *classify.Classifier) *mcp.ClientSession {
	t.Helper()
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	go func() {
		_ = Run(ctx, "v1.0.0-test", c, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "test-client",
		Version: "v1.0.0",
	}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func call[T any](t *testing.T, session *mcp.ClientSession, name string, args map[string]any) T {
	t.Helper()
	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.False(t, res.IsError, "tool %s returned an error result", name)
	require.NotEmpty(t, res.Content)

	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected text content")
	var out T
	require.NoError(t, json.Unmarshal([]byte(text.Text), &out))
	return out
}

func callErr(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	return res
}

func TestNew_ReturnsServer(t *testing.T) {
	assert.NotNil(t, New("v1.0.0-test", newClassifier(t)))
}

func TestServer_ListsTools(t *testing.T) {
	session := connect(t, newClassifier(t))

	result, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, result.Tools, 5)

	names := make(map[string]bool)
	for _, tool := range result.Tools {
		names[tool.Name] = true
	}
	for _, name := range []string{"classify", "configure", "reset", "prune", "stats"} {
		assert.True(t, names[name], "should have %s tool", name)
	}
}

func TestClassifyTool(t *testing.T) {
	session := connect(t, newClassifier(t))

	out := call[ClassifyOutput](t, session, "classify", map[string]any{"text": newsPost, "origin_id": "a", "site": "x.com"})
	assert.Equal(t, ClassifyOutput{Verdict: "new", Action: "show", Processed: true}, out)

	out = call[ClassifyOutput](t, session, "classify", map[string]any{"text": newsPost, "origin_id": "b", "site": "x.com"})
	assert.Equal(t, "duplicate", out.Verdict)
	assert.Equal(t, "suppress", out.Action)

	out = call[ClassifyOutput](t, session, "classify", map[string]any{"text": newsPost, "origin_id": "a", "site": "x.com"})
	assert.Equal(t, "original-reseen", out.Verdict)

	out = call[ClassifyOutput](t, session, "classify", map[string]any{"text": "short"})
	assert.True(t, out.TooShort)
	assert.False(t, out.Processed)
}

func TestConfigureTool(t *testing.T) {
	c := newClassifier(t)
	session := connect(t, c)

	out := call[SettingsOutput](t, session, "configure", map[string]any{"retention": "2d", "scope": "global", "min_length": 3})
	assert.Equal(t, SettingsOutput{Retention: "48h0m0s", Scope: "global", Similarity: "low", MinLength: 3}, out)
	assert.Equal(t, dedup.ScopeGlobal, c.Settings().Scope)

	out = call[SettingsOutput](t, session, "configure", map[string]any{"similarity": "sideways"})
	assert.Equal(t, "off", out.Similarity, "unknown modes degrade to off")

	res := callErr(t, session, "configure", map[string]any{"retention": "eventually"})
	assert.True(t, res.IsError)
	res = callErr(t, session, "configure", map[string]any{"min_length": -1})
	assert.True(t, res.IsError)
	assert.Equal(t, 3, c.Settings().MinLength)
}

func TestResetTool_RequiresConfirm(t *testing.T) {
	c := newClassifier(t)
	session := connect(t, c)
	call[ClassifyOutput](t, session, "classify", map[string]any{"text": newsPost, "site": "x.com"})

	res := callErr(t, session, "reset", map[string]any{})
	assert.True(t, res.IsError)
	assert.Equal(t, 1, c.Stats().Records)

	out := call[ResetOutput](t, session, "reset", map[string]any{"confirm": true})
	assert.True(t, out.Cleared)
	assert.Equal(t, 0, c.Stats().Records)
}

func TestPruneAndStatsTools(t *testing.T) {
	session := connect(t, newClassifier(t))
	call[ClassifyOutput](t, session, "classify", map[string]any{"text": newsPost, "site": "x.com"})
	call[ClassifyOutput](t, session, "classify", map[string]any{"text": newsPost, "site": "www.reddit.com"})

	pruned := call[PruneOutput](t, session, "prune", map[string]any{})
	assert.Equal(t, 0, pruned.Removed)

	stats := call[StatsOutput](t, session, "stats", map[string]any{})
	assert.Equal(t, 2, stats.Records)
	assert.Equal(t, []ScopeStats{{Scope: "www.reddit.com", Records: 1}, {Scope: "x.com", Records: 1}}, stats.Scopes)
}
