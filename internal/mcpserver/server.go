// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes the classifier as tools over stdio transport.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/davetashner/seen/internal/classify"
)

// New creates a new MCP server with seen's tools registered against c.
func New(version string, c *classify.Classifier) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "seen",
		Title:   "Seen: duplicate content filter",
		Version: version,
	}, nil)

	registerTools(server, &tools{classifier: c})
	return server
}

// Run creates an MCP server and runs it on the given transport.
// It blocks until the client disconnects or the context is cancelled.
func Run(ctx context.Context, version string, c *classify.Classifier, transport mcp.Transport) error {
	server := New(version, c)
	return server.Run(ctx, transport)
}
