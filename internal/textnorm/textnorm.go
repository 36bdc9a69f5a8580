// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

// Package textnorm turns raw post text into the normalized token stream used
// for fingerprinting: lowercase, letters-and-apostrophes tokens, stopwords
// removed, and a light affix-stripping stemmer applied.
package textnorm

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// minStemLength is the shortest token the stemmer will touch.
const minStemLength = 3

// Tokenize lowercases text and returns every maximal run of ASCII letters
// and apostrophes. All other characters act as separators.
func Tokenize(text string) []string {
	// cases.Caser is stateful, so one is built per call.
	lower := cases.Lower(language.Und).String(text)

	var tokens []string
	start := -1
	for i := 0; i < len(lower); i++ {
		if isTokenByte(lower[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = append(tokens, lower[start:i])
			start = -1
		}
	}
	if start >= 0 {
		tokens = append(tokens, lower[start:])
	}
	return tokens
}

// Normalize tokenizes text, drops stopwords, and stems what is left.
// The result may be empty.
func Normalize(text string) []string {
	tokens := Tokenize(text)
	out := tokens[:0]
	for _, tok := range tokens {
		if IsStopword(tok) {
			continue
		}
		out = append(out, Stem(tok))
	}
	return out
}

// Stem applies a simplified version of Porter steps 1a-1c. It is not a
// conformant Porter stemmer; it only needs to map common inflections of the
// same word onto one token.
func Stem(w string) string {
	if len(w) < minStemLength {
		return w
	}

	// Step 1a: plurals.
	switch {
	case strings.HasSuffix(w, "sses"):
		w = w[:len(w)-2]
	case strings.HasSuffix(w, "ies"):
		w = w[:len(w)-2]
	case strings.HasSuffix(w, "ss"):
	case strings.HasSuffix(w, "s"):
		w = w[:len(w)-1]
	}

	// Step 1b: past and progressive forms.
	if strings.HasSuffix(w, "eed") {
		if len(w) > 4 {
			w = w[:len(w)-1]
		}
	} else if suffix := edOrIng(w); suffix != "" {
		stem := w[:len(w)-len(suffix)]
		if containsVowel(stem) {
			w = stem
			switch {
			case strings.HasSuffix(w, "at"), strings.HasSuffix(w, "bl"), strings.HasSuffix(w, "iz"):
				w += "e"
			case endsWithDoubleConsonant(w):
				w = w[:len(w)-1]
			case len(w) > 2 && isShortSyllable(w):
				w += "e"
			}
		}
	}

	// Step 1c: terminal y after a vowel-bearing stem.
	if strings.HasSuffix(w, "y") && containsVowel(w[:len(w)-1]) {
		w = w[:len(w)-1] + "i"
	}

	return w
}

// edOrIng returns the inflection suffix w ends with, or "".
func edOrIng(w string) string {
	switch {
	case strings.HasSuffix(w, "ed"):
		return "ed"
	case strings.HasSuffix(w, "ing"):
		return "ing"
	default:
		return ""
	}
}

// endsWithDoubleConsonant reports a doubled trailing non-vowel, ignoring the
// doubled l, s and z that English keeps ("fall", "miss", "buzz").
func endsWithDoubleConsonant(w string) bool {
	n := len(w)
	if n < 2 {
		return false
	}
	last := w[n-1]
	if last != w[n-2] || isVowel(last) {
		return false
	}
	return last != 'l' && last != 's' && last != 'z'
}

// isShortSyllable matches consonants, one vowel, then a final consonant that
// is not w, x or y ("hop" from "hoping" becomes "hope").
func isShortSyllable(w string) bool {
	n := len(w)
	last := w[n-1]
	if isVowel(last) || last == 'w' || last == 'x' || last == 'y' {
		return false
	}
	if !isVowel(w[n-2]) {
		return false
	}
	lead := w[:n-2]
	if lead == "" {
		return false
	}
	for i := 0; i < len(lead); i++ {
		if isVowel(lead[i]) {
			return false
		}
	}
	return true
}

func containsVowel(s string) bool {
	return strings.ContainsAny(s, "aeiou")
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

func isTokenByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || c == '\''
}
