// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDuration parses retention values. Go duration syntax ("90m", "24h",
// "1h30m") is accepted, plus whole-number day, week, and year suffixes
// ("7d", "2w", "1y").
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid duration: %q", s)
	}
	numStr := s[:len(s)-1]
	unit := s[len(s)-1]

	n, err := strconv.Atoi(numStr)
	if err != nil {
		return 0, fmt.Errorf("invalid duration number: %q", s)
	}

	switch unit {
	case 'd':
		return time.Duration(n) * 24 * time.Hour, nil
	case 'w':
		return time.Duration(n) * 7 * 24 * time.Hour, nil
	case 'y':
		return time.Duration(n) * 365 * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("invalid duration unit %q in %q (use a Go duration or d/w/y)", string(unit), s)
	}
}
