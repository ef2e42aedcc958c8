// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package browser

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/playbook/lib/catalogue"
	"github.com/bureau-foundation/playbook/lib/session"
	"github.com/bureau-foundation/playbook/lib/tui"
)

func stringPointer(value string) *string {
	return &value
}

func TestRenderDetailBody(t *testing.T) {
	tests := []struct {
		name     string
		task     *catalogue.Task
		contains []string
	}{
		{
			name: "description and steps",
			task: &catalogue.Task{
				Description: stringPointer("Reset the branch."),
				Steps:       []string{"git fetch", "git reset --hard origin/main"},
			},
			contains: []string{"Reset the branch.", "Steps", "1. git fetch", "2. git reset --hard origin/main"},
		},
		{
			name:     "no description",
			task:     &catalogue.Task{Steps: []string{"ls"}},
			contains: []string{"No description.", "1. ls"},
		},
		{
			name:     "no steps field",
			task:     &catalogue.Task{Description: stringPointer("Just notes.")},
			contains: []string{"Just notes.", "No steps defined."},
		},
		{
			name:     "empty steps",
			task:     &catalogue.Task{Steps: []string{}},
			contains: []string{"No steps defined."},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			body := ansi.Strip(renderDetailBody(tui.DarkTheme, test.task, 60))
			for _, want := range test.contains {
				if !strings.Contains(body, want) {
					t.Errorf("body does not contain %q:\n%s", want, body)
				}
			}
		})
	}
}

func TestRenderDetailBodyAlignsStepNumbers(t *testing.T) {
	steps := make([]string, 12)
	for index := range steps {
		steps[index] = "echo"
	}
	body := ansi.Strip(renderDetailBody(tui.DarkTheme, &catalogue.Task{Steps: steps}, 60))
	if !strings.Contains(body, "\n 1. echo\n") || !strings.Contains(body, "\n12. echo") {
		t.Errorf("step numbers should be right-aligned:\n%s", body)
	}
}

func TestRenderDetailHeader(t *testing.T) {
	selection := session.Selection{Category: "Git", Task: "Undo last commit"}
	tests := []struct {
		task *catalogue.Task
		meta string
	}{
		{&catalogue.Task{}, "Git · no steps"},
		{&catalogue.Task{Steps: []string{"a"}}, "Git · 1 step"},
		{&catalogue.Task{Steps: []string{"a", "b"}}, "Git · 2 steps"},
	}
	for _, test := range tests {
		lines := strings.Split(ansi.Strip(renderDetailHeader(tui.DarkTheme, selection, test.task, 40)), "\n")
		if len(lines) != detailHeaderLines {
			t.Fatalf("header has %d lines, expected %d", len(lines), detailHeaderLines)
		}
		if lines[0] != "Undo last commit" || lines[1] != test.meta {
			t.Errorf("header = %q, expected meta %q", lines, test.meta)
		}
	}
}

func TestDetailPaneKeepsOffsetForSameTask(t *testing.T) {
	steps := make([]string, 50)
	for index := range steps {
		steps[index] = "echo step"
	}
	selection := session.Selection{Category: "Long", Task: "Many"}

	pane := NewDetailPane(tui.DarkTheme)
	pane.SetSize(60, 20)
	pane.Show(selection, &catalogue.Task{Steps: steps})
	pane.ScrollDown(5)

	// The same task reloaded (new pointer) keeps the scroll position.
	pane.Show(selection, &catalogue.Task{Steps: steps})
	if pane.viewport.YOffset != 5 {
		t.Errorf("offset = %d after re-showing the same task, expected 5", pane.viewport.YOffset)
	}

	// A different task starts at the top.
	pane.Show(session.Selection{Category: "Long", Task: "Other"}, &catalogue.Task{Steps: steps})
	if pane.viewport.YOffset != 0 {
		t.Errorf("offset = %d for a new task, expected 0", pane.viewport.YOffset)
	}

	pane.Clear()
	if pane.Showing() {
		t.Error("Clear should remove the task")
	}
	if !strings.Contains(ansi.Strip(pane.View(false)), "Select a task") {
		t.Error("an empty pane should show the placeholder")
	}
}

func TestListRendererCategoryRow(t *testing.T) {
	renderer := NewListRenderer(tui.DarkTheme, 30)

	expanded := ansi.Strip(renderer.RenderRow(session.Row{
		Kind: session.CategoryRow, Category: "Docker", Expanded: true, TaskCount: 3,
	}, false))
	if !strings.HasPrefix(expanded, " ▼ Docker (3)") {
		t.Errorf("expanded header = %q", expanded)
	}
	if width := ansi.StringWidth(expanded); width != 30 {
		t.Errorf("row width = %d, expected 30", width)
	}

	collapsed := ansi.Strip(renderer.RenderRow(session.Row{
		Kind: session.CategoryRow, Category: "Docker", TaskCount: 1,
	}, true))
	if !strings.HasPrefix(collapsed, " ▶ Docker (1)") {
		t.Errorf("collapsed header = %q", collapsed)
	}
}

func TestListRendererTaskRow(t *testing.T) {
	renderer := NewListRenderer(tui.DarkTheme, 20)

	selected := ansi.Strip(renderer.RenderRow(session.Row{
		Kind: session.TaskRow, Category: "Git", Task: "Undo", Selected: true,
	}, false))
	if !strings.HasPrefix(selected, "  ▍ Undo") {
		t.Errorf("selected row = %q", selected)
	}

	long := ansi.Strip(renderer.RenderRow(session.Row{
		Kind: session.TaskRow, Category: "Git", Task: "A very long task name that cannot fit",
		Highlight: []int{30, 31, 32},
	}, true))
	if ansi.StringWidth(long) != 20 || !strings.HasSuffix(long, "…") {
		t.Errorf("long row = %q, expected truncation to 20 columns with an ellipsis", long)
	}
}
