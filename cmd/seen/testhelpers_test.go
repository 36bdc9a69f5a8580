// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/seen/internal/config"
	"github.com/davetashner/seen/internal/redact"
)

const newsPost = "Breaking news: the city council approved the new downtown park budget after a long public hearing on Tuesday evening"

// isolate points config and data directories at temp dirs, clears SEEN_*
// variables, chdirs into a fresh working directory, and resets all flags.
// It returns the working directory.
func isolate(t *testing.T) string {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	for _, name := range []string{
		config.EnvRetention, config.EnvScope, config.EnvSimilarity, config.EnvMinLength,
		config.EnvStorageKey, config.EnvBackend, config.EnvDataDir, config.EnvRedisAddr,
		config.EnvRedisDB, config.EnvRedisPassword, config.EnvLogFile,
	} {
		t.Setenv(name, "")
	}
	redact.ResetForTest()

	dir := t.TempDir()
	dir, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(origDir) })

	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })
	return dir
}

// resetFlags restores every flag of cmd and its subcommands to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// run executes the CLI with args and stdin, returning stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	stdout := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--quiet", "--no-color"}, args...))
	err := rootCmd.Execute()
	return stdout.String(), err
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// exitCode extracts the exit code from a command error.
func exitCode(t *testing.T, err error) int {
	t.Helper()
	require.Error(t, err)
	var ece *exitCodeError
	require.ErrorAs(t, err, &ece)
	return ece.ExitCode()
}
