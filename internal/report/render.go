// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goccy/go-json"

	"github.com/davetashner/seen/internal/classify"
	"github.com/davetashner/seen/internal/dedup"
	"github.com/davetashner/seen/internal/pipeline"
)

// previewWidth is how many runes of item text the item table shows.
const previewWidth = 60

// verdictLabel is the label shown for an outcome. Too-short items were not
// judged, so they get their own label.
func verdictLabel(out classify.Outcome) string {
	if out.TooShort {
		return "too-short"
	}
	return string(out.Verdict)
}

// RenderOutcome writes a single classification result.
func RenderOutcome(w io.Writer, out classify.Outcome) error {
	_, err := fmt.Fprintf(w, "%s\t%s\n", ColorVerdict(verdictLabel(out)), ColorAction(string(out.Action)))
	if err != nil {
		return fmt.Errorf("render outcome: %w", err)
	}
	return nil
}

// RenderItems writes one table row per classified item.
func RenderItems(w io.Writer, result *pipeline.Result) error {
	tbl := NewTable(
		Column{Header: "Source"},
		Column{Header: "Origin"},
		Column{Header: "Verdict", Color: ColorVerdict},
		Column{Header: "Action", Color: ColorAction},
		Column{Header: "Text"},
	)
	for _, it := range result.Items {
		tbl.AddRow(it.Source, it.Item.OriginID, verdictLabel(it.Outcome), string(it.Outcome.Action), Preview(it.Item.Text, previewWidth))
	}
	return tbl.Render(w)
}

// RenderSummary writes verdict totals and any failed sources.
func RenderSummary(w io.Writer, result *pipeline.Result) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d items in %s (batch %s)\n",
		SectionTitle("Scanned"), len(result.Items), result.Duration.Round(time.Millisecond), result.BatchID)
	fmt.Fprintf(&b, "  new: %s  duplicate: %s  original-reseen: %s  too-short: %s\n",
		colorCount(result.Counts[dedup.VerdictNew]),
		colorCount(result.Counts[dedup.VerdictDuplicate]),
		colorCount(result.Counts[dedup.VerdictOriginalReseen]),
		colorCount(result.TooShort))
	for _, src := range result.Sources {
		if src.Err != nil {
			fmt.Fprintf(&b, "  %s %s: %v\n", colorRed.Sprint("failed"), src.Source, src.Err)
		}
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("render summary: %w", err)
	}
	return nil
}

// RenderStats writes per-scope record counts.
func RenderStats(w io.Writer, stats dedup.Stats) error {
	if len(stats.Scopes) == 0 {
		if _, err := fmt.Fprintln(w, "No records."); err != nil {
			return fmt.Errorf("render stats: %w", err)
		}
		return nil
	}

	tbl := NewTable(
		Column{Header: "Scope"},
		Column{Header: "Records", Align: AlignRight},
		Column{Header: "Oldest"},
		Column{Header: "Newest"},
	)
	for _, s := range stats.Scopes {
		tbl.AddRow(s.Scope, fmt.Sprintf("%d", s.Records), formatTime(s.Oldest), formatTime(s.Newest))
	}
	if err := tbl.Render(w); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "\n  %d records total\n", stats.Records); err != nil {
		return fmt.Errorf("render stats: %w", err)
	}
	return nil
}

// ItemJSON is the JSON form of one classified item.
type ItemJSON struct {
	Source    string `json:"source"`
	Index     int    `json:"index"`
	OriginID  string `json:"origin_id,omitempty"`
	Text      string `json:"text"`
	Verdict   string `json:"verdict"`
	Action    string `json:"action"`
	Processed bool   `json:"processed"`
	TooShort  bool   `json:"too_short"`
	Error     string `json:"error,omitempty"`
}

// SourceJSON is the JSON form of one source's extraction.
type SourceJSON struct {
	Name     string `json:"name"`
	Adapter  string `json:"adapter,omitempty"`
	Items    int    `json:"items"`
	Duration string `json:"duration"`
	Error    string `json:"error,omitempty"`
}

// ScanJSON is the top-level JSON document for scan --format json.
type ScanJSON struct {
	BatchID  string         `json:"batch_id"`
	Duration string         `json:"duration"`
	Counts   map[string]int `json:"counts"`
	Sources  []SourceJSON   `json:"sources"`
	Items    []ItemJSON     `json:"items"`
}

// RenderJSON writes the scan result as indented JSON.
func RenderJSON(w io.Writer, result *pipeline.Result) error {
	out := ScanJSON{
		BatchID:  result.BatchID,
		Duration: result.Duration.Round(time.Millisecond).String(),
		Counts:   make(map[string]int, len(result.Counts)+1),
		Sources:  make([]SourceJSON, 0, len(result.Sources)),
		Items:    make([]ItemJSON, 0, len(result.Items)),
	}
	for v, n := range result.Counts {
		out.Counts[string(v)] = n
	}
	out.Counts["too-short"] = result.TooShort

	for _, s := range result.Sources {
		sj := SourceJSON{
			Name:     s.Source,
			Adapter:  s.Adapter,
			Items:    s.Items,
			Duration: s.Duration.Round(time.Millisecond).String(),
		}
		if s.Err != nil {
			sj.Error = s.Err.Error()
		}
		out.Sources = append(out.Sources, sj)
	}
	for _, it := range result.Items {
		ij := ItemJSON{
			Source:    it.Source,
			Index:     it.Index,
			OriginID:  it.Item.OriginID,
			Text:      it.Item.Text,
			Verdict:   string(it.Outcome.Verdict),
			Action:    string(it.Outcome.Action),
			Processed: it.Outcome.Processed,
			TooShort:  it.Outcome.TooShort,
		}
		if it.Err != nil {
			ij.Error = it.Err.Error()
		}
		out.Items = append(out.Items, ij)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("render json: %w", err)
	}
	return nil
}

// Preview flattens text onto one line and truncates it to width runes.
func Preview(text string, width int) string {
	flat := strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(flat) <= width {
		return flat
	}
	runes := []rune(flat)
	return string(runes[:width-1]) + "…"
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
