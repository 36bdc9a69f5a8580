// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

// Package log configures structured logging for seen using log/slog.
package log

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger setup.
type Options struct {
	Verbose bool
	Quiet   bool

	// File, when set, receives a copy of every record through a rotating
	// writer in addition to stderr.
	File string

	// Stderr overrides the console writer. Defaults to os.Stderr.
	Stderr io.Writer
}

// Rotation limits for the log file.
const (
	maxFileSizeMB = 10
	maxBackups    = 3
	maxAgeDays    = 28
)

// Setup configures the default slog logger based on verbosity flags.
//
//   - quiet mode:   only WARN and ERROR messages
//   - normal mode:  INFO and above
//   - verbose mode: DEBUG and above
//
// Output is written to stderr using slog.TextHandler.
func Setup(verbose, quiet bool) {
	_ = SetupWith(Options{Verbose: verbose, Quiet: quiet})
}

// SetupWith configures the default logger from opts. The returned closer
// releases the log file, if any.
func SetupWith(opts Options) io.Closer {
	level := Level(opts.Verbose, opts.Quiet)

	var w io.Writer = os.Stderr
	if opts.Stderr != nil {
		w = opts.Stderr
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    maxFileSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
		}
		w = io.MultiWriter(w, rotator)
		closer = rotator
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return closer
}

// Level maps the verbosity flags to a slog level. Quiet wins over verbose.
func Level(verbose, quiet bool) slog.Level {
	switch {
	case quiet:
		return slog.LevelWarn
	case verbose:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
