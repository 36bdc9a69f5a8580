// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package main

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/davetashner/seen/internal/config"
	seenlog "github.com/davetashner/seen/internal/log"
)

// Global flag values.
var (
	verbose    bool
	quiet      bool
	noColor    bool
	configPath string
	logFile    string

	flagRetention  string
	flagScope      string
	flagSimilarity string
	flagBackend    string
	flagDataDir    string
)

// Log file state. logCloser releases activeLog, if any.
var (
	logCloser io.Closer
	activeLog string
)

// rootCmd is the base command for seen.
var rootCmd = &cobra.Command{
	Use:   "seen",
	Short: "Hide posts and comments you have already seen",
	Long: `Seen remembers the text of posts and comments for a while and tells you
when something shows up again, either word for word or lightly reworded.
Pages can be scanned from saved HTML or feeds, single texts can be checked
directly, and the same engine is available over HTTP and MCP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if noColor || os.Getenv("NO_COLOR") != "" {
			color.NoColor = true
		}
		if err := config.LoadDotEnv(); err != nil {
			return exitError(ExitInvalidArgs, "%v", err)
		}
		file := logFile
		if file == "" {
			file = os.Getenv(config.EnvLogFile)
		}
		setupLog(file)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	pf.BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	pf.BoolVar(&noColor, "no-color", false, "disable colored output")
	pf.StringVar(&configPath, "config", "", "config file (default ./"+config.FileName+")")
	pf.StringVar(&logFile, "log-file", "", "also write logs to this file, rotated")

	pf.StringVar(&flagRetention, "retention", "", "how long texts are remembered (e.g. 24h, 7d)")
	pf.StringVar(&flagScope, "scope", "", "site or global")
	pf.StringVar(&flagSimilarity, "similarity", "", "near-duplicate detection: off, low, or high")
	pf.StringVar(&flagBackend, "backend", "", "storage backend: memory, file, sqlite, badger, or redis")
	pf.StringVar(&flagDataDir, "data-dir", "", "directory for file, sqlite, and badger storage")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// setupLog configures logging. Calling it again with a different file
// switches log files.
func setupLog(file string) {
	if logCloser != nil && file == activeLog {
		return
	}
	closeLog()
	logCloser = seenlog.SetupWith(seenlog.Options{Verbose: verbose, Quiet: quiet, File: file})
	activeLog = file
}

func closeLog() {
	if logCloser != nil {
		_ = logCloser.Close()
		logCloser = nil
	}
}
