// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

// Package fingerprint computes the two digests the dedup store keys on: an
// exact FNV-1a hash of the trimmed raw text, and a 32-bit SimHash over its
// normalized tokens.
package fingerprint

import (
	"hash/fnv"
	"strconv"
	"strings"
)

// Hash32 returns the FNV-1a 32-bit hash of s's bytes.
func Hash32(s string) uint32 {
	h := fnv.New32a()
	// hash.Hash.Write never returns an error.
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}

// ExactKey returns the store key for text: the FNV-1a hash of the text with
// leading and trailing whitespace removed, as unpadded lowercase hex.
// Identical trimmed text always yields the same key.
func ExactKey(text string) string {
	return strconv.FormatUint(uint64(Hash32(strings.TrimSpace(text))), 16)
}
