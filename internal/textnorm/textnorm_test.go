// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"punctuation only", "!!! ... ???", nil},
		{"lowercases", "Hello WORLD", []string{"hello", "world"}},
		{"digits separate", "abc123def", []string{"abc", "def"}},
		{"keeps apostrophes", "don't stop", []string{"don't", "stop"}},
		{"curly quote splits", "don’t", []string{"don", "t"}},
		{"non ascii letters separate", "café naïve", []string{"caf", "na", "ve"}},
		{"newlines and tabs", "a\tb\nc", []string{"a", "b", "c"}},
		{"kelvin sign lowers to k", "King", []string{"king"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.in))
		})
	}
}

func TestStem(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		// Short tokens bypass stemming.
		{"is", "is"},
		{"as", "as"},
		{"'s", "'s"},

		// Step 1a.
		{"caresses", "caress"},
		{"ponies", "poni"},
		{"caress", "caress"},
		{"cats", "cat"},

		// Step 1b.
		{"feed", "feed"},
		{"agreed", "agree"},
		{"plastered", "plaster"},
		{"motoring", "motor"},
		{"sing", "sing"},
		{"conflated", "conflate"},
		{"troubled", "trouble"},
		{"sized", "size"},
		{"hopping", "hop"},
		{"running", "run"},
		{"falling", "fall"},
		{"hissing", "hiss"},
		{"fizzed", "fizz"},
		{"filing", "file"},
		{"failing", "fail"},

		// Step 1c.
		{"happy", "happi"},
		{"sky", "sky"},
		{"played", "plai"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Stem(tt.in))
		})
	}
}

func TestNormalize_DropsStopwordsAndStems(t *testing.T) {
	got := Normalize("The cats were running to the houses")
	assert.Equal(t, []string{"cat", "run", "house"}, got)
}

func TestNormalize_AllStopwords(t *testing.T) {
	assert.Empty(t, Normalize("the and of to it is"))
	assert.Empty(t, Normalize("... --- !!!"))
	assert.Empty(t, Normalize(""))
}

func TestNormalize_CaseAndPunctuationInsensitive(t *testing.T) {
	assert.Equal(t, Normalize("the quick fox runs"), Normalize("The Quick Fox runs."))
}

func TestIsStopword(t *testing.T) {
	assert.True(t, IsStopword("the"))
	assert.True(t, IsStopword("yourselves"))
	assert.False(t, IsStopword("fox"))
	assert.False(t, IsStopword("The"), "lookup expects lowercase input")
}
