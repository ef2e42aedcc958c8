// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/playbook/lib/catalogue"
	"github.com/bureau-foundation/playbook/lib/session"
	"github.com/bureau-foundation/playbook/lib/tui"
)

// detailHeaderLines is the height of the fixed header above the
// scrollable body: task key, category and step count, separator.
const detailHeaderLines = 3

// stepLexer is the chroma lexer used for step commands.
const stepLexer = "bash"

// DetailPane shows the selected task: a fixed header and a scrollable
// body holding the rendered description and the numbered steps.
type DetailPane struct {
	viewport viewport.Model
	theme    tui.Theme
	width    int
	height   int

	// The displayed task, retained so resizes and theme changes can
	// re-render at the new width.
	selection *session.Selection
	task      *catalogue.Task

	header string
}

// NewDetailPane creates an empty detail pane.
func NewDetailPane(theme tui.Theme) DetailPane {
	return DetailPane{theme: theme}
}

// contentWidth leaves one column of left padding and one for the
// scrollbar.
func (pane DetailPane) contentWidth() int {
	return max(pane.width-2, 1)
}

func (pane DetailPane) bodyHeight() int {
	return max(pane.height-detailHeaderLines, 1)
}

// SetSize updates the pane dimensions, re-rendering when the width
// changed so description wrapping follows the pane.
func (pane *DetailPane) SetSize(width, height int) {
	previousWidth := pane.width
	pane.width = width
	pane.height = height
	pane.viewport.Width = pane.contentWidth()
	pane.viewport.Height = pane.bodyHeight()

	if pane.task != nil && width != previousWidth {
		pane.rerender(true)
	}
}

// SetTheme switches colors and re-renders the current task in place.
func (pane *DetailPane) SetTheme(theme tui.Theme) {
	pane.theme = theme
	if pane.task != nil {
		pane.rerender(true)
	}
}

// Show displays task. Showing a different task scrolls back to the
// top; showing the same task again (after a reload, say) keeps the
// scroll position.
func (pane *DetailPane) Show(selection session.Selection, task *catalogue.Task) {
	same := pane.selection != nil && *pane.selection == selection
	if same && pane.task == task {
		return
	}
	pane.selection = &selection
	pane.task = task
	pane.rerender(same)
}

// Clear removes the displayed task.
func (pane *DetailPane) Clear() {
	pane.selection = nil
	pane.task = nil
	pane.header = ""
	pane.viewport.SetContent("")
	pane.viewport.GotoTop()
}

// Showing reports whether a task is displayed.
func (pane DetailPane) Showing() bool {
	return pane.task != nil
}

func (pane *DetailPane) rerender(keepOffset bool) {
	previousOffset := pane.viewport.YOffset
	width := pane.contentWidth()

	pane.header = renderDetailHeader(pane.theme, *pane.selection, pane.task, width)
	body := renderDetailBody(pane.theme, pane.task, width)
	pane.viewport.SetContent(lipgloss.NewStyle().Width(width).Render(body))

	if !keepOffset {
		pane.viewport.GotoTop()
		return
	}
	maxOffset := max(pane.viewport.TotalLineCount()-pane.viewport.Height, 0)
	pane.viewport.SetYOffset(min(previousOffset, maxOffset))
}

// ScrollUp scrolls up by lines.
func (pane *DetailPane) ScrollUp(lines int) {
	pane.viewport.LineUp(lines)
}

// ScrollDown scrolls down by lines.
func (pane *DetailPane) ScrollDown(lines int) {
	pane.viewport.LineDown(lines)
}

// PageUp scrolls up by half a page.
func (pane *DetailPane) PageUp() {
	pane.viewport.HalfViewUp()
}

// PageDown scrolls down by half a page.
func (pane *DetailPane) PageDown() {
	pane.viewport.HalfViewDown()
}

// Top scrolls to the first line.
func (pane *DetailPane) Top() {
	pane.viewport.GotoTop()
}

// Bottom scrolls to the last line.
func (pane *DetailPane) Bottom() {
	pane.viewport.GotoBottom()
}

// View renders the pane as exactly height lines with a scrollbar in
// the rightmost column.
func (pane DetailPane) View(focused bool) string {
	if pane.task == nil {
		placeholder := lipgloss.NewStyle().
			Foreground(pane.theme.FaintText).
			Render("Select a task to view its steps")
		content := lipgloss.NewStyle().
			PaddingLeft(1).
			Width(pane.width - 1).
			Height(pane.height).
			Render(lipgloss.Place(pane.contentWidth(), pane.height, lipgloss.Center, lipgloss.Center, placeholder))
		scrollbar := tui.RenderScrollbar(pane.theme, pane.height, tui.ScrollWindow{}, focused)
		return lipgloss.JoinHorizontal(lipgloss.Top, content, scrollbar)
	}

	padding := lipgloss.NewStyle().PaddingLeft(1).Width(pane.width - 1)
	bodyHeight := pane.bodyHeight()
	content := padding.Height(detailHeaderLines).Render(pane.header) + "\n" +
		padding.Height(bodyHeight).Render(pane.viewport.View())

	// The scrollbar covers only the body rows.
	headerColumn := lipgloss.NewStyle().Width(1).Height(detailHeaderLines).Render("")
	scrollbar := tui.RenderScrollbar(pane.theme, bodyHeight, tui.ScrollWindow{
		Total:   pane.viewport.TotalLineCount(),
		Visible: pane.viewport.Height,
		Offset:  pane.viewport.YOffset,
	}, focused)
	return lipgloss.JoinHorizontal(lipgloss.Top, content, headerColumn+"\n"+scrollbar)
}

func renderDetailHeader(theme tui.Theme, selection session.Selection, task *catalogue.Task, width int) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground).
		Render(ansi.Truncate(selection.Task, width, "…"))

	var meta string
	switch {
	case !task.HasSteps():
		meta = "no steps"
	case len(task.Steps) == 1:
		meta = "1 step"
	default:
		meta = fmt.Sprintf("%d steps", len(task.Steps))
	}
	meta = ansi.Truncate(selection.Category+" · "+meta, width, "…")

	separator := lipgloss.NewStyle().Foreground(theme.BorderColor).Render(strings.Repeat("─", width))
	return strings.Join([]string{
		title,
		lipgloss.NewStyle().Foreground(theme.FaintText).Render(meta),
		separator,
	}, "\n")
}

// renderDetailBody renders the description followed by the steps. A
// task without a steps field says so rather than showing an empty
// list.
func renderDetailBody(theme tui.Theme, task *catalogue.Task, width int) string {
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)
	var sections []string

	if description := renderMarkdown(task.DescriptionText(), theme, width); description != "" {
		sections = append(sections, description)
	} else {
		sections = append(sections, faint.Render("No description."))
	}

	heading := lipgloss.NewStyle().Bold(true).Foreground(theme.Accent).Render("Steps")
	if len(task.Steps) == 0 {
		sections = append(sections, heading+"\n"+faint.Render("No steps defined."))
		return strings.Join(sections, "\n\n")
	}

	numberWidth := len(fmt.Sprint(len(task.Steps)))
	lines := []string{heading}
	for index, step := range task.Steps {
		number := faint.Render(fmt.Sprintf("%*d. ", numberWidth, index+1))
		code := highlightCode(newForcedRenderer().NewStyle(), theme, step, stepLexer)
		code = strings.TrimRight(code, "\n")
		continuation := strings.Repeat(" ", numberWidth+2)
		lines = append(lines, prefixLines(code, number, continuation))
	}
	sections = append(sections, strings.Join(lines, "\n"))
	return strings.Join(sections, "\n\n")
}
