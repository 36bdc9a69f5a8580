// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/davetashner/seen/internal/report"
)

// resetYes confirms reset without prompting.
var resetYes bool

// pruneCmd drops expired records.
var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Forget texts older than the retention window",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		eng, err := openEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer eng.Close() //nolint:errcheck // prune saves before returning

		removed, err := eng.classifier.Prune(cmd.Context())
		if err != nil {
			return exitError(ExitPartialFailure, "%v", err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %d expired records\n", removed)
		return nil
	},
}

// resetCmd clears the whole store.
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget every remembered text",
	Long: `Erase the whole history for the configured backend and storage key.

This cannot be undone, so --yes is required.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if !resetYes {
			return exitError(ExitInvalidArgs, "refusing to erase history without --yes")
		}
		eng, err := openEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer eng.Close() //nolint:errcheck // reset saves before returning

		if err := eng.classifier.ResetAll(cmd.Context()); err != nil {
			return exitError(ExitTotalFailure, "%v", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
		return nil
	},
}

// statsCmd prints per-scope record counts.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how many texts are remembered per site",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		eng, err := openEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer eng.Close() //nolint:errcheck // read-only

		return report.RenderStats(cmd.OutOrStdout(), eng.classifier.Stats())
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "confirm erasing all history")
}
