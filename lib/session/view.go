// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"github.com/bureau-foundation/playbook/lib/catalogue"
	"github.com/bureau-foundation/playbook/lib/filter"
)

// RowKind distinguishes category headers from task rows.
type RowKind int

const (
	CategoryRow RowKind = iota
	TaskRow
)

// Row is one line of the rendered tree.
type Row struct {
	Kind     RowKind
	Category string

	// Task is the task key for task rows, empty for category rows.
	Task string

	// Expanded is set on category rows whose tasks follow.
	Expanded bool

	// MatchedDirectly is set on category rows whose name matched the
	// query.
	MatchedDirectly bool

	// TaskCount is the number of visible tasks under a category row.
	TaskCount int

	// Selected is set on the selected task's row.
	Selected bool

	// Highlight holds rune positions in Label covered by the query.
	Highlight []int
}

// Label returns the text a shell displays for the row.
func (row Row) Label() string {
	if row.Kind == CategoryRow {
		return row.Category
	}
	return row.Task
}

// View is everything a shell needs to draw the current state.
type View struct {
	// Query is the state's query as typed (trimmed).
	Query string

	// Rows are the visible categories, each followed by its visible
	// tasks when expanded. Categories with no visible tasks are
	// omitted.
	Rows []Row

	// Selection and SelectedTask describe the selected task, visible or
	// not. Both are nil when nothing is selected.
	Selection    *Selection
	SelectedTask *catalogue.Task

	// SelectionFiltered is true when the selected task exists but the
	// query hides it.
	SelectionFiltered bool

	// SelectedRow is the index in Rows of the selected task, or -1 when
	// it is filtered out, collapsed, or absent.
	SelectedRow int

	// MatchCount is the number of visible tasks across all categories,
	// expanded or not.
	MatchCount int
}

// BuildView derives the rows for state over catalogue.
func BuildView(catalogue *catalogue.Catalogue, state State) View {
	visibility := filter.ComputeVisibility(catalogue, state.Query)

	view := View{
		Query:       state.Query,
		SelectedRow: -1,
		MatchCount:  visibility.MatchCount(),
	}
	if state.Selection != nil {
		if task, exists := catalogue.Task(state.Selection.Category, state.Selection.Task); exists {
			selection := *state.Selection
			view.Selection = &selection
			view.SelectedTask = task
			view.SelectionFiltered = !visibility.TaskVisible(selection.Category, selection.Task)
		}
	}

	for _, category := range visibility.Categories() {
		if !category.Visible || len(category.VisibleTasks) == 0 {
			continue
		}
		expanded := state.Expanded.Has(category.Name)
		header := Row{
			Kind:            CategoryRow,
			Category:        category.Name,
			Expanded:        expanded,
			MatchedDirectly: category.MatchedDirectly,
			TaskCount:       len(category.VisibleTasks),
		}
		if category.MatchedDirectly {
			header.Highlight = filter.Highlight(category.Name, state.Query)
		}
		view.Rows = append(view.Rows, header)

		if !expanded {
			continue
		}
		for _, key := range category.VisibleTasks {
			selected := view.Selection != nil &&
				view.Selection.Category == category.Name &&
				view.Selection.Task == key
			if selected {
				view.SelectedRow = len(view.Rows)
			}
			view.Rows = append(view.Rows, Row{
				Kind:      TaskRow,
				Category:  category.Name,
				Task:      key,
				Selected:  selected,
				Highlight: filter.Highlight(key, state.Query),
			})
		}
	}
	return view
}
