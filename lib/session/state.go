// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"fmt"
	"strings"

	"github.com/bureau-foundation/playbook/lib/catalogue"
	"github.com/bureau-foundation/playbook/lib/filter"
)

// Selection identifies the selected task.
type Selection struct {
	Category string
	Task     string
}

// State is one browsing state. States are values: transitions return a
// new State and never modify their input.
type State struct {
	// Query is the current search text, trimmed but not lowercased.
	Query string

	// Expanded holds the categories whose tasks are shown.
	Expanded Set

	// Selection is the selected task, or nil.
	Selection *Selection
}

// SelectionKind classifies a failed selection.
type SelectionKind int

const (
	// NotFound means the category or the task does not exist in the
	// current catalogue.
	NotFound SelectionKind = iota
)

func (kind SelectionKind) String() string {
	switch kind {
	case NotFound:
		return "not_found"
	default:
		return fmt.Sprintf("unknown(%d)", int(kind))
	}
}

// SelectionError is returned by [SelectTask] when the target does not
// exist. The state is left unchanged.
type SelectionError struct {
	Kind     SelectionKind
	Category string
	Task     string

	// CategoryExists distinguishes a missing task from a missing
	// category.
	CategoryExists bool
}

func (e *SelectionError) Error() string {
	if !e.CategoryExists {
		return fmt.Sprintf("category %q not found", e.Category)
	}
	return fmt.Sprintf("task %q not found in category %q", e.Task, e.Category)
}

// Initial returns the landing state for a freshly loaded catalogue: the
// first category expanded and its first task selected. An empty
// catalogue yields the zero State.
func Initial(catalogue *catalogue.Catalogue) State {
	category, task, ok := catalogue.First()
	if !ok {
		return State{}
	}
	state := State{Expanded: NewSet(category)}
	if task != "" {
		state.Selection = &Selection{Category: category, Task: task}
	}
	return state
}

// SetQuery trims query and stores it. A non-empty query adds every
// category it makes visible to Expanded; clearing the query never
// collapses anything. Applying the same query twice leaves the state as
// the first application left it.
func SetQuery(state State, catalogue *catalogue.Catalogue, query string) State {
	state.Query = strings.TrimSpace(query)
	if state.Query == "" {
		return state
	}
	visibility := filter.ComputeVisibility(catalogue, state.Query)
	state.Expanded = state.Expanded.With(visibility.Visible()...)
	return state
}

// ToggleCategory flips whether the named category is expanded. Names
// absent from the catalogue are ignored.
func ToggleCategory(state State, catalogue *catalogue.Catalogue, name string) State {
	if !catalogue.HasCategory(name) {
		return state
	}
	state.Expanded = state.Expanded.Toggle(name)
	return state
}

// SelectTask selects the task even when the current query hides it. On
// a missing category or task it returns the state unchanged with a
// *SelectionError.
func SelectTask(state State, catalogue *catalogue.Catalogue, category, task string) (State, error) {
	found, exists := catalogue.Category(category)
	if !exists {
		return state, &SelectionError{Kind: NotFound, Category: category, Task: task}
	}
	if _, exists := found.Task(task); !exists {
		return state, &SelectionError{Kind: NotFound, Category: category, Task: task, CategoryExists: true}
	}
	state.Selection = &Selection{Category: category, Task: task}
	return state, nil
}

// Reload revalidates state against a replacement catalogue: a selection
// whose category or task is gone is cleared, expanded names absent from
// the new catalogue are dropped, and the query is kept.
func Reload(state State, replacement *catalogue.Catalogue) State {
	if state.Selection != nil {
		if _, exists := replacement.Task(state.Selection.Category, state.Selection.Task); !exists {
			state.Selection = nil
		}
	}
	state.Expanded = state.Expanded.Keep(replacement.HasCategory)
	return state
}
