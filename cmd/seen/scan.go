// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/davetashner/seen/internal/adapter"
	_ "github.com/davetashner/seen/internal/adapters"
	"github.com/davetashner/seen/internal/pipeline"
	"github.com/davetashner/seen/internal/report"
)

// Scan command flags.
var (
	scanSite        string
	scanAdapter     string
	scanFormat      string
	scanConcurrency int
)

// scanCmd runs the pipeline over saved pages and feeds.
var scanCmd = &cobra.Command{
	Use:   "scan <file|->...",
	Short: "Classify every post in saved pages or feeds",
	Long: `Extract posts and comments from saved HTML pages or RSS/Atom/JSON feeds and
classify each one. Use "-" to read a single document from stdin.

The adapter is picked from --site unless --adapter names one. Feeds are
recognized by their content.

Exit codes:
  0  every source was processed
  2  some sources failed or state could not be saved
  3  no source could be processed

Examples:
  seen scan --site www.reddit.com saved/front-page.html
  curl -s https://example.com/feed.xml | seen scan --format json -`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanSite, "site", "", "host the documents came from")
	scanCmd.Flags().StringVar(&scanAdapter, "adapter", "", "adapter to use ("+strings.Join(adapter.List(), ", ")+")")
	scanCmd.Flags().StringVarP(&scanFormat, "format", "f", "table", "output format: table or json")
	scanCmd.Flags().IntVar(&scanConcurrency, "concurrency", pipeline.DefaultConcurrency, "documents extracted in parallel")
}

func runScan(cmd *cobra.Command, args []string) error {
	if scanFormat != "table" && scanFormat != "json" {
		return exitError(ExitInvalidArgs, "unsupported format %q (supported: table, json)", scanFormat)
	}

	var forced adapter.Adapter
	if scanAdapter != "" {
		forced = adapter.Get(scanAdapter)
		if forced == nil {
			return exitError(ExitInvalidArgs, "unknown adapter %q (available: %s)", scanAdapter, strings.Join(adapter.List(), ", "))
		}
	}

	sources := make([]pipeline.Source, 0, len(args))
	for _, arg := range args {
		data, err := readSource(cmd, arg)
		if err != nil {
			return exitError(ExitInvalidArgs, "%v", err)
		}
		sources = append(sources, pipeline.Source{
			Name:    sourceName(arg),
			Site:    scanSite,
			Adapter: forced,
			Data:    data,
		})
	}

	eng, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer eng.Close() //nolint:errcheck // state is saved per item

	result, runErr := pipeline.New(eng.classifier, pipeline.WithConcurrency(scanConcurrency)).Run(cmd.Context(), sources)
	if runErr != nil && len(result.Items) == 0 {
		return exitError(ExitTotalFailure, "%v", runErr)
	}

	w := cmd.OutOrStdout()
	if scanFormat == "json" {
		if err := report.RenderJSON(w, result); err != nil {
			return err
		}
	} else {
		if err := report.RenderItems(w, result); err != nil {
			return err
		}
		if !quiet {
			_, _ = fmt.Fprintln(w)
			if err := report.RenderSummary(w, result); err != nil {
				return err
			}
		}
	}

	if runErr != nil {
		return exitError(ExitPartialFailure, "%v", runErr)
	}
	return scanExitError(result)
}

// scanExitError maps failed sources and unsaved items to an exit code.
func scanExitError(result *pipeline.Result) error {
	failed := 0
	for _, src := range result.Sources {
		if src.Err != nil {
			failed++
		}
	}
	if len(result.Sources) > 0 && failed == len(result.Sources) {
		return exitError(ExitTotalFailure, "seen: all %d sources failed", failed)
	}

	unsaved := 0
	for _, it := range result.Items {
		if it.Err != nil {
			unsaved++
		}
	}
	if failed > 0 || unsaved > 0 {
		return exitError(ExitPartialFailure, "seen: %d sources failed, %d items not saved", failed, unsaved)
	}
	return nil
}

func readSource(cmd *cobra.Command, arg string) ([]byte, error) {
	if arg == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := cmdFS.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", arg, err)
	}
	return data, nil
}

func sourceName(arg string) string {
	if arg == "-" {
		return "stdin"
	}
	return filepath.Base(arg)
}
