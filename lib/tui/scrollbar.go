// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ScrollWindow describes which part of a list is on screen.
type ScrollWindow struct {
	// Total is the number of rows in the list.
	Total int

	// Visible is the number of rows that fit on screen.
	Visible int

	// Offset is the index of the first row on screen.
	Offset int
}

// Scrollable reports whether the list is longer than the screen.
func (window ScrollWindow) Scrollable() bool {
	return window.Total > window.Visible && window.Total > 0
}

// RenderScrollbar produces a single-column scrollbar of the given
// height: a track with a thumb proportional to the visible region.
// When everything fits the thumb spans the whole height. The thumb
// takes the accent color when the pane has focus.
func RenderScrollbar(theme Theme, height int, window ScrollWindow, focused bool) string {
	if height <= 0 {
		return ""
	}

	thumbColor := theme.BorderColor
	if focused {
		thumbColor = theme.Accent
	}
	trackStyle := lipgloss.NewStyle().Foreground(theme.BorderColor)
	thumbStyle := lipgloss.NewStyle().Foreground(thumbColor)

	thumbOffset, thumbSize := 0, height
	if window.Scrollable() {
		thumbSize = max(height*window.Visible/window.Total, 1)
		scrollableRange := window.Total - window.Visible
		trackRange := height - thumbSize
		if trackRange > 0 {
			thumbOffset = window.Offset * trackRange / scrollableRange
		}
		thumbOffset = min(thumbOffset, height-thumbSize)
	}

	lines := make([]string, height)
	for index := range lines {
		if index >= thumbOffset && index < thumbOffset+thumbSize {
			lines[index] = thumbStyle.Render("┃")
		} else {
			lines[index] = trackStyle.Render("│")
		}
	}
	return strings.Join(lines, "\n")
}
