// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"

	"github.com/fatih/color"
)

// Shared color printers.
var (
	colorRed    = color.New(color.FgRed)
	colorYellow = color.New(color.FgYellow)
	colorGreen  = color.New(color.FgGreen)
	colorFaint  = color.New(color.Faint)
	colorBold   = color.New(color.Bold)
)

// ColorVerdict colors verdict labels: new is green, duplicate red,
// original-reseen yellow.
func ColorVerdict(val string) string {
	switch val {
	case "new":
		return colorGreen.Sprint(val)
	case "duplicate":
		return colorRed.Sprint(val)
	case "original-reseen":
		return colorYellow.Sprint(val)
	case "too-short":
		return colorFaint.Sprint(val)
	default:
		return val
	}
}

// ColorAction colors show/suppress.
func ColorAction(val string) string {
	switch val {
	case "suppress":
		return colorRed.Sprint(val)
	case "show":
		return colorGreen.Sprint(val)
	default:
		return val
	}
}

// SectionTitle renders a bold section title.
func SectionTitle(title string) string {
	return colorBold.Sprint(title)
}

// colorCount colors a count: 0 is faint, >0 is yellow.
func colorCount(n int) string {
	s := fmt.Sprintf("%d", n)
	if n == 0 {
		return colorFaint.Sprint(s)
	}
	return colorYellow.Sprint(s)
}
