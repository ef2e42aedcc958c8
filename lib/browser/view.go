// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/playbook/lib/tui"
)

// View implements tea.Model. The frame is the query bar, the list and
// detail panes side by side, a separator, and the help line, with any
// notice spliced over the top-right corner.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top,
		model.renderListPane(),
		model.renderDivider(),
		model.detailPane.View(model.focus == FocusDetail),
	)
	separator := lipgloss.NewStyle().
		Foreground(model.theme.BorderColor).
		Render(strings.Repeat("─", model.width))

	output := strings.Join([]string{
		model.renderQueryBar(),
		content,
		separator,
		model.renderHelp(),
	}, "\n")

	if model.notice != "" {
		notice := tui.RenderNotice(model.theme, model.notice, model.noticeFailure, model.width/2)
		output = tui.PlaceNotice(output, notice, model.width)
	}
	return output
}

// renderQueryBar shows the query with a cursor while it has focus,
// the applied query and match count while one is active, and the
// catalogue summary otherwise.
func (model Model) renderQueryBar() string {
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	accent := lipgloss.NewStyle().Foreground(model.theme.Accent).Bold(true)
	text := lipgloss.NewStyle().Foreground(model.theme.NormalText)

	var bar string
	switch {
	case model.focus == FocusQuery || model.queryInput != "":
		cursor := ""
		if model.focus == FocusQuery {
			cursor = accent.Render("▏")
		}
		matches := model.views.view.MatchCount
		suffix := fmt.Sprintf("  %d matches", matches)
		if matches == 1 {
			suffix = "  1 match"
		}
		if model.views.view.SelectionFiltered {
			suffix += " · selection hidden"
		}
		bar = " " + accent.Render("/") + " " + text.Render(model.queryInput) + cursor + faint.Render(suffix)

	default:
		loaded := model.session.Catalogue()
		summary := fmt.Sprintf("  %d categories · %d tasks", loaded.Len(), loaded.TaskCount())
		if model.options.Provenance != "" {
			summary += " · " + model.options.Provenance
		}
		bar = " " + accent.Render("playbook") + faint.Render(summary)
	}
	return ansi.Truncate(bar, model.width, "…")
}

func (model Model) renderListPane() string {
	listWidth := model.listWidth()
	rowWidth := max(listWidth-1, 1)
	visible := model.visibleHeight()
	rows := model.rows()
	renderer := NewListRenderer(model.theme, rowWidth)

	var lines []string
	for index := model.scrollOffset; index < model.scrollOffset+visible && index < len(rows); index++ {
		lines = append(lines, renderer.RenderRow(rows[index], index == model.cursor && model.focus != FocusDetail))
	}
	if len(rows) == 0 && visible > 0 {
		message := "Catalogue is empty"
		if model.views.view.Query != "" {
			message = fmt.Sprintf("No tasks match %q", model.views.view.Query)
		}
		lines = append(lines, lipgloss.NewStyle().
			Foreground(model.theme.FaintText).
			Render(ansi.Truncate(" "+message, rowWidth, "…")))
	}

	content := lipgloss.NewStyle().
		Width(rowWidth).
		Height(visible).
		MaxHeight(visible).
		Render(strings.Join(lines, "\n"))

	scrollbar := tui.RenderScrollbar(model.theme, visible, tui.ScrollWindow{
		Total:   len(rows),
		Visible: visible,
		Offset:  model.scrollOffset,
	}, model.focus == FocusList)
	return lipgloss.JoinHorizontal(lipgloss.Top, content, scrollbar)
}

func (model Model) renderDivider() string {
	visible := model.visibleHeight()
	lines := make([]string, visible)
	for index := range lines {
		lines[index] = "│"
	}
	return lipgloss.NewStyle().
		Foreground(model.theme.BorderColor).
		Width(1).
		Height(visible).
		Render(strings.Join(lines, "\n"))
}

// renderHelp lists the key bindings after the focus indicator. While
// typing a query only the query keys apply, so only they are shown.
func (model Model) renderHelp() string {
	style := lipgloss.NewStyle().Foreground(model.theme.HelpText)

	var entries []string
	if model.focus == FocusQuery {
		entries = []string{"Enter apply", "Esc clear/close", "C-c quit"}
	} else {
		for _, binding := range model.keys.ShortHelp() {
			help := binding.Help()
			entries = append(entries, help.Key+" "+help.Desc)
		}
	}

	line := fmt.Sprintf(" [%s] %s", model.focus, strings.Join(entries, "  "))
	if rows := len(model.rows()); rows > model.visibleHeight() && model.focus != FocusQuery {
		line += fmt.Sprintf("  %d/%d", model.cursor+1, rows)
	}
	return style.Render(ansi.Truncate(line, model.width, "…"))
}
