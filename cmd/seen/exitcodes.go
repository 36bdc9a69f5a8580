// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package main

import "fmt"

// Exit codes for the seen CLI.
const (
	ExitOK             = 0 // Everything succeeded.
	ExitInvalidArgs    = 1 // Invalid arguments or configuration.
	ExitPartialFailure = 2 // Some sources failed or state could not be saved.
	ExitTotalFailure   = 3 // Nothing could be processed.
)

// exitCodeError carries a non-zero exit code through cobra's error handling.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError. If msg is empty, the error message is
// set to a generic description of the exit code.
func exitError(code int, format string, args ...any) *exitCodeError {
	msg := fmt.Sprintf(format, args...)
	if msg == "" {
		switch code {
		case ExitPartialFailure:
			msg = "seen: some items could not be processed"
		case ExitTotalFailure:
			msg = "seen: nothing could be processed"
		default:
			msg = "seen: error"
		}
	}
	return &exitCodeError{code: code, msg: msg}
}
