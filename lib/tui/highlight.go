// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HighlightRunes renders text with the runes at positions in
// highlightStyle and every other rune in baseStyle. Consecutive runes
// with the same style are rendered in one call to keep the ANSI output
// compact. Positions outside text are ignored.
func HighlightRunes(text string, positions []int, baseStyle, highlightStyle lipgloss.Style) string {
	if len(positions) == 0 || text == "" {
		return baseStyle.Render(text)
	}

	matched := make(map[int]bool, len(positions))
	for _, position := range positions {
		matched[position] = true
	}

	runes := []rune(text)
	var result strings.Builder
	runStart := 0
	highlighted := matched[0]
	for index := 1; index <= len(runes); index++ {
		current := index < len(runes) && matched[index]
		if index == len(runes) || current != highlighted {
			chunk := string(runes[runStart:index])
			if highlighted {
				result.WriteString(highlightStyle.Render(chunk))
			} else {
				result.WriteString(baseStyle.Render(chunk))
			}
			runStart = index
			highlighted = current
		}
	}
	return result.String()
}
