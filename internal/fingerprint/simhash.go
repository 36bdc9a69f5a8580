// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package fingerprint

import "github.com/davetashner/seen/internal/textnorm"

// Bits is the fingerprint width.
const Bits = 32

// SimHash normalizes text and returns its 32-bit SimHash. Text with no
// surviving tokens yields 0.
func SimHash(text string) uint32 {
	return SimHashTokens(textnorm.Normalize(text))
}

// SimHashTokens folds token hashes into a 32-bit SimHash. Each token votes
// +1 on the bits set in its FNV-1a hash and -1 on the clear ones; a bit is
// set in the result only when its vote total is positive. Token order does
// not matter. An empty slice yields 0.
func SimHashTokens(tokens []string) uint32 {
	if len(tokens) == 0 {
		return 0
	}

	var votes [Bits]int
	for _, tok := range tokens {
		h := Hash32(tok)
		for i := range Bits {
			if h&(1<<i) != 0 {
				votes[i]++
			} else {
				votes[i]--
			}
		}
	}

	var fp uint32
	for i := range Bits {
		if votes[i] > 0 {
			fp |= 1 << i
		}
	}
	return fp
}
