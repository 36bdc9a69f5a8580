// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/davetashner/seen/internal/classify"
	"github.com/davetashner/seen/internal/config"
	"github.com/davetashner/seen/internal/dedup"
	"github.com/davetashner/seen/internal/similarity"
)

// ClassifyInput is the input schema for the classify tool.
type ClassifyInput struct {
	Text     string `json:"text" jsonschema:"Text of the post or comment to check"`
	OriginID string `json:"origin_id,omitempty" jsonschema:"Identifier of the item the text came from, if any"`
	Site     string `json:"site,omitempty" jsonschema:"Host the text was seen on, e.g. www.reddit.com"`
}

// ClassifyOutput is the output schema for the classify tool.
type ClassifyOutput struct {
	Verdict   string `json:"verdict" jsonschema:"new, duplicate, or original-reseen"`
	Action    string `json:"action" jsonschema:"show or suppress"`
	Processed bool   `json:"processed"`
	TooShort  bool   `json:"too_short"`
	Warning   string `json:"warning,omitempty" jsonschema:"Set when the verdict is valid but the store could not be saved"`
}

// ConfigureInput is the input schema for the configure tool. Omitted
// fields are left unchanged.
type ConfigureInput struct {
	Retention  string `json:"retention,omitempty" jsonschema:"How long texts are remembered, e.g. 24h, 7d"`
	Scope      string `json:"scope,omitempty" jsonschema:"site or global"`
	Similarity string `json:"similarity,omitempty" jsonschema:"off, low, or high"`
	MinLength  *int   `json:"min_length,omitempty" jsonschema:"Texts shorter than this many characters are ignored"`
}

// SettingsOutput reports the settings in effect.
type SettingsOutput struct {
	Retention  string `json:"retention"`
	Scope      string `json:"scope"`
	Similarity string `json:"similarity"`
	MinLength  int    `json:"min_length"`
}

// ResetInput is the input schema for the reset tool.
type ResetInput struct {
	Confirm bool `json:"confirm" jsonschema:"Must be true; the whole history is erased"`
}

// ResetOutput is the output schema for the reset tool.
type ResetOutput struct {
	Cleared bool `json:"cleared"`
}

// PruneOutput is the output schema for the prune tool.
type PruneOutput struct {
	Removed int `json:"removed"`
}

// ScopeStats is one partition in StatsOutput.
type ScopeStats struct {
	Scope   string `json:"scope"`
	Records int    `json:"records"`
}

// StatsOutput is the output schema for the stats tool.
type StatsOutput struct {
	Records int          `json:"records"`
	Scopes  []ScopeStats `json:"scopes"`
}

// errNotConfirmed is returned by reset without confirm=true.
var errNotConfirmed = errors.New("reset erases all history; call again with confirm=true")

// boolPtr returns a pointer to a bool.
func boolPtr(b bool) *bool { return &b }

type tools struct {
	classifier *classify.Classifier
}

// registerTools adds all seen tools to the MCP server.
func registerTools(server *mcp.Server, t *tools) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "classify",
		Description: "Check whether a text was already seen recently. Returns new, duplicate, or original-reseen and records new texts.",
		Annotations: &mcp.ToolAnnotations{
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, t.classify)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "configure",
		Description: "Change retention, scope, similarity, or minimum length. Omitted fields keep their value. Returns the settings in effect.",
		Annotations: &mcp.ToolAnnotations{
			IdempotentHint:  true,
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, t.configure)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "reset",
		Description: "Erase every remembered text.",
		Annotations: &mcp.ToolAnnotations{
			DestructiveHint: boolPtr(true),
			OpenWorldHint:   boolPtr(false),
		},
	}, t.reset)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "prune",
		Description: "Drop texts older than the retention window.",
		Annotations: &mcp.ToolAnnotations{
			IdempotentHint:  true,
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, t.prune)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "stats",
		Description: "Count remembered texts per scope.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:    true,
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, t.stats)
}

func (t *tools) classify(ctx context.Context, _ *mcp.CallToolRequest, input ClassifyInput) (*mcp.CallToolResult, ClassifyOutput, error) {
	out, err := t.classifier.Classify(classify.WithSite(ctx, input.Site), input.Text, input.OriginID)
	result := ClassifyOutput{
		Verdict:   string(out.Verdict),
		Action:    string(out.Action),
		Processed: out.Processed,
		TooShort:  out.TooShort,
	}
	if err != nil {
		slog.Warn("classify persisted with error", "site", input.Site, "error", err)
		result.Warning = err.Error()
	}
	return nil, result, nil
}

func (t *tools) configure(_ context.Context, _ *mcp.CallToolRequest, input ConfigureInput) (*mcp.CallToolResult, SettingsOutput, error) {
	var opts classify.Options
	if input.Retention != "" {
		d, err := config.ParseDuration(input.Retention)
		if err != nil {
			return nil, SettingsOutput{}, err
		}
		if d <= 0 {
			return nil, SettingsOutput{}, fmt.Errorf("retention must be positive, got %q", input.Retention)
		}
		opts.Retention = &d
	}
	if input.Scope != "" {
		p := dedup.ScopePolicy(input.Scope)
		opts.Scope = &p
	}
	if input.Similarity != "" {
		m := similarity.Mode(input.Similarity)
		opts.Similarity = &m
	}
	if input.MinLength != nil {
		if *input.MinLength < 0 {
			return nil, SettingsOutput{}, fmt.Errorf("min_length must be >= 0, got %d", *input.MinLength)
		}
		opts.MinLength = input.MinLength
	}

	st := t.classifier.Configure(opts)
	return nil, SettingsOutput{
		Retention:  st.Retention.String(),
		Scope:      string(st.Scope),
		Similarity: string(st.Similarity),
		MinLength:  st.MinLength,
	}, nil
}

func (t *tools) reset(ctx context.Context, _ *mcp.CallToolRequest, input ResetInput) (*mcp.CallToolResult, ResetOutput, error) {
	if !input.Confirm {
		return nil, ResetOutput{}, errNotConfirmed
	}
	if err := t.classifier.ResetAll(ctx); err != nil {
		return nil, ResetOutput{}, err
	}
	return nil, ResetOutput{Cleared: true}, nil
}

func (t *tools) prune(ctx context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, PruneOutput, error) {
	removed, err := t.classifier.Prune(ctx)
	if err != nil {
		return nil, PruneOutput{}, err
	}
	return nil, PruneOutput{Removed: removed}, nil
}

func (t *tools) stats(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, StatsOutput, error) {
	st := t.classifier.Stats()
	out := StatsOutput{Records: st.Records, Scopes: make([]ScopeStats, 0, len(st.Scopes))}
	for _, sc := range st.Scopes {
		out.Scopes = append(out.Scopes, ScopeStats{Scope: sc.Scope, Records: sc.Records})
	}
	return nil, out, nil
}
