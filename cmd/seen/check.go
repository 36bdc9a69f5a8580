// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package main

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/davetashner/seen/internal/classify"
	"github.com/davetashner/seen/internal/report"
)

// Check command flags.
var (
	checkOrigin string
	checkSite   string
)

// checkCmd classifies a single text.
var checkCmd = &cobra.Command{
	Use:   "check <text>... | -",
	Short: "Check whether a text was already seen",
	Long: `Check one text and print its verdict and the action a reader should take.

The arguments are joined with spaces. Use "-" to read the text from stdin.
A new text is remembered, so checking the same text twice reports it as seen.

Examples:
  seen check --site www.reddit.com --origin t3_abc "Some post text here"
  pbpaste | seen check --site x.com -`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkOrigin, "origin", "", "identifier of the item the text came from")
	checkCmd.Flags().StringVar(&checkSite, "site", "", "host the text was seen on (texts without one share the \"local\" partition)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	if len(args) == 1 && args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return exitError(ExitInvalidArgs, "read stdin: %v", err)
		}
		text = strings.TrimRight(string(data), "\r\n")
	}

	eng, err := openEngine(cmd.Context(), classify.WithScopeFunc(classify.StaticSite(checkSite)))
	if err != nil {
		return err
	}
	defer eng.Close() //nolint:errcheck // read-mostly; save errors surface below

	out, classifyErr := eng.classifier.Classify(cmd.Context(), text, checkOrigin)
	if err := report.RenderOutcome(cmd.OutOrStdout(), out); err != nil {
		return err
	}
	if classifyErr != nil {
		return exitError(ExitPartialFailure, "%v", classifyErr)
	}
	return nil
}
