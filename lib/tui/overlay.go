// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// SpliceOverlay replaces a rectangular region of a rendered view with
// overlay lines placed from (anchorX, anchorY). Truncation is
// ANSI-aware, so styling on either side of the overlay survives.
func SpliceOverlay(view string, overlayLines []string, anchorX, anchorY int) string {
	if len(overlayLines) == 0 {
		return view
	}

	viewLines := strings.Split(view, "\n")
	overlayWidth := ansi.StringWidth(overlayLines[0])

	for index, overlayLine := range overlayLines {
		lineIndex := anchorY + index
		if lineIndex < 0 || lineIndex >= len(viewLines) {
			continue
		}
		line := viewLines[lineIndex]

		var result strings.Builder
		if anchorX > 0 {
			result.WriteString(ansi.Truncate(line, anchorX, ""))
			// Pad short lines so the overlay lands at anchorX.
			if gap := anchorX - ansi.StringWidth(line); gap > 0 {
				result.WriteString(strings.Repeat(" ", gap))
			}
		}
		result.WriteString("\x1b[0m")
		result.WriteString(overlayLine)
		result.WriteString("\x1b[0m")

		if suffixStart := anchorX + overlayWidth; suffixStart < ansi.StringWidth(line) {
			result.WriteString(ansi.TruncateLeft(line, suffixStart, ""))
		}
		viewLines[lineIndex] = result.String()
	}

	return strings.Join(viewLines, "\n")
}

// RenderNotice renders a one-line notice box: the message padded by one
// space on each side in the theme's notice colors, truncated to
// maxWidth. Failure notices use the error color for the text.
func RenderNotice(theme Theme, message string, failure bool, maxWidth int) string {
	foreground := theme.NoticeForeground
	if failure {
		foreground = theme.ErrorForeground
	}
	style := lipgloss.NewStyle().
		Foreground(foreground).
		Background(theme.NoticeBackground).
		Bold(true)

	if maxWidth > 2 && ansi.StringWidth(message) > maxWidth-2 {
		message = ansi.Truncate(message, maxWidth-2, "…")
	}
	return style.Render(" " + message + " ")
}

// PlaceNotice splices a rendered notice into the top-right corner of
// view, one row below the top edge.
func PlaceNotice(view, notice string, width int) string {
	if notice == "" {
		return view
	}
	anchorX := max(width-ansi.StringWidth(notice)-1, 0)
	return SpliceOverlay(view, []string{notice}, anchorX, 1)
}
