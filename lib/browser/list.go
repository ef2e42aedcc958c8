// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package browser

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/playbook/lib/session"
	"github.com/bureau-foundation/playbook/lib/tui"
)

// taskIndent is the left margin of task rows, aligning task keys under
// the category name after " ▼ ".
const taskIndent = "   "

// ListRenderer renders tree rows at a fixed width.
type ListRenderer struct {
	theme tui.Theme
	width int
}

// NewListRenderer creates a ListRenderer for the given width.
func NewListRenderer(theme tui.Theme, width int) ListRenderer {
	return ListRenderer{theme: theme, width: width}
}

// RenderRow renders one row. atCursor marks the row under the list
// cursor; the selected task row is marked with the accent bar even
// when the cursor is elsewhere.
func (renderer ListRenderer) RenderRow(row session.Row, atCursor bool) string {
	if row.Kind == session.CategoryRow {
		return renderer.renderCategory(row, atCursor)
	}
	return renderer.renderTask(row, atCursor)
}

// renderCategory renders a header like " ▼ Git (4)". Headers whose
// name matched the query take the matched color so it is clear why a
// category shows all of its tasks.
func (renderer ListRenderer) renderCategory(row session.Row, atCursor bool) string {
	indicator := "▶"
	color := renderer.theme.FaintText
	if row.Expanded {
		indicator = "▼"
		color = renderer.theme.HeaderForeground
	}
	if row.MatchedDirectly {
		color = renderer.theme.MatchedHeader
	}

	base := lipgloss.NewStyle().Foreground(color).Bold(true)
	if atCursor {
		base = base.Background(renderer.theme.SelectedBackground)
	}
	faint := base.Bold(false).Foreground(renderer.theme.FaintText)

	prefix := " " + indicator + " "
	count := fmt.Sprintf(" (%d)", row.TaskCount)
	name := truncateLabel(row.Category, renderer.width-ansi.StringWidth(prefix)-ansi.StringWidth(count))

	rendered := base.Render(prefix) +
		renderer.highlight(name, row.Highlight, base, atCursor) +
		faint.Render(count)
	return renderer.fill(rendered, base)
}

func (renderer ListRenderer) renderTask(row session.Row, atCursor bool) string {
	base := lipgloss.NewStyle().Foreground(renderer.theme.NormalText)
	if atCursor {
		base = base.
			Background(renderer.theme.SelectedBackground).
			Foreground(renderer.theme.SelectedForeground)
	}

	marker := base.Render(" ")
	if row.Selected {
		marker = base.Foreground(renderer.theme.Accent).Render("▍")
	}

	key := truncateLabel(row.Task, renderer.width-ansi.StringWidth(taskIndent)-1)
	rendered := base.Render(taskIndent[:len(taskIndent)-1]) + marker + " " +
		renderer.highlight(key, row.Highlight, base, atCursor)
	return renderer.fill(rendered, base)
}

// highlight marks matched runes. Under the cursor the background is
// already tinted, so matches use bold underline instead of a second
// background.
func (renderer ListRenderer) highlight(label string, positions []int, base lipgloss.Style, atCursor bool) string {
	highlightStyle := base.Background(renderer.theme.MatchHighlightBackground)
	if atCursor {
		highlightStyle = base.Bold(true).Underline(true)
	}
	return tui.HighlightRunes(label, positions, base, highlightStyle)
}

// fill pads the row to the full width in the row's background so the
// cursor bar spans the pane.
func (renderer ListRenderer) fill(rendered string, base lipgloss.Style) string {
	if gap := renderer.width - ansi.StringWidth(rendered); gap > 0 {
		rendered += base.Render(fmt.Sprintf("%*s", gap, ""))
	}
	return ansi.Truncate(rendered, renderer.width, "")
}

// truncateLabel shortens text to maxWidth cells, ending in an
// ellipsis when anything was cut. Highlight positions past the cut
// are ignored by HighlightRunes.
func truncateLabel(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return ansi.Truncate(text, maxWidth, "…")
}
