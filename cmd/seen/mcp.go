// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/davetashner/seen/internal/mcpserver"
)

// mcpCmd is the parent command for MCP-related subcommands.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol server commands",
	Long:  "Commands for running seen as an MCP server, exposing classify, configure, reset, prune, and stats tools to AI agents.",
}

// mcpServeCmd runs the MCP server over stdio.
var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	Long: `Start an MCP server on stdin/stdout, exposing seen's tools:
  - classify:  Check a text and remember it if new
  - configure: Change retention, scope, similarity, or minimum length
  - reset:     Erase all history (requires confirm=true)
  - prune:     Drop expired texts
  - stats:     Count remembered texts per site

Logs go to stderr so they never mix with the protocol stream.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		eng, err := openEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer eng.Close() //nolint:errcheck // state is saved per call

		return mcpserver.Run(cmd.Context(), Version, eng.classifier, &mcp.StdioTransport{})
	},
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
}
