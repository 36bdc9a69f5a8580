// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/davetashner/seen/internal/redact"
)

// Version is set via -ldflags at build time.
var Version = "dev"

func main() {
	err := rootCmd.Execute()
	closeLog()
	if err != nil {
		var ece *exitCodeError
		if errors.As(err, &ece) {
			if ece.msg != "" {
				fmt.Fprintln(os.Stderr, redact.String(ece.msg))
			}
			os.Exit(ece.code)
		}
		fmt.Fprintln(os.Stderr, redact.String(err.Error()))
		os.Exit(ExitInvalidArgs)
	}
}
