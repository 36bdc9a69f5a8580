// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

// Package similarity compares SimHash fingerprints by Hamming distance and
// maps the user-facing sensitivity modes onto distance thresholds.
package similarity

import (
	"math/bits"
	"strings"
)

// Mode selects how aggressively near-duplicates are matched.
type Mode string

// Supported modes.
const (
	// ModeOff disables fingerprint comparison; only exact repeats match.
	ModeOff Mode = "off"
	// ModeLow matches texts whose normalized fingerprints are identical.
	ModeLow Mode = "low"
	// ModeHigh tolerates a few differing bits.
	ModeHigh Mode = "high"
)

// thresholds maps each enabled mode to its maximum Hamming distance.
var thresholds = map[Mode]int{
	ModeLow:  0,
	ModeHigh: 4,
}

// ParseMode converts s to a Mode. Unknown values degrade to ModeOff.
func ParseMode(s string) Mode {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if m.Valid() {
		return m
	}
	return ModeOff
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeOff, ModeLow, ModeHigh:
		return true
	}
	return false
}

// Threshold returns the maximum Hamming distance at which two fingerprints
// count as near-duplicates. ok is false when matching is disabled, which
// includes ModeOff and any unrecognized mode.
func (m Mode) Threshold() (threshold int, ok bool) {
	threshold, ok = thresholds[m]
	return threshold, ok
}

// Enabled reports whether m turns on fingerprint comparison.
func (m Mode) Enabled() bool {
	_, ok := m.Threshold()
	return ok
}

// Distance returns the number of differing bits between a and b (0-32).
func Distance(a, b uint32) int {
	return bits.OnesCount32(a ^ b)
}

// Within reports whether a and b are at most threshold bits apart.
func Within(a, b uint32, threshold int) bool {
	return Distance(a, b) <= threshold
}

// Modes lists the valid modes in increasing sensitivity.
func Modes() []Mode {
	return []Mode{ModeOff, ModeLow, ModeHigh}
}
