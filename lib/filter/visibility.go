// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package filter

import (
	"strings"

	"github.com/bureau-foundation/playbook/lib/catalogue"
)

// CategoryVisibility is the filter result for one category.
type CategoryVisibility struct {
	Name string

	// Visible is true when the category name matches the query or at
	// least one of its tasks does. Always true for an empty query.
	Visible bool

	// MatchedDirectly is true when the category name itself contains a
	// non-empty query. Never true for an empty query.
	MatchedDirectly bool

	// VisibleTasks lists the visible task keys in catalogue order: all
	// of them when the name matched (or the query is empty), otherwise
	// only those whose own text matches.
	VisibleTasks []string
}

// VisibilityMap holds a [CategoryVisibility] for every category of a
// catalogue, in catalogue order.
type VisibilityMap struct {
	// Query is the normalized (trimmed, lowercased) query the map was
	// computed for.
	Query string

	categories []CategoryVisibility
	index      map[string]int
}

// Get returns the visibility of the named category.
func (visibility VisibilityMap) Get(name string) (CategoryVisibility, bool) {
	position, exists := visibility.index[name]
	if !exists {
		return CategoryVisibility{}, false
	}
	return visibility.categories[position], true
}

// Categories returns every category's visibility in catalogue order.
// The slice must not be modified.
func (visibility VisibilityMap) Categories() []CategoryVisibility {
	return visibility.categories
}

// Visible returns the names of visible categories in catalogue order.
func (visibility VisibilityMap) Visible() []string {
	var names []string
	for _, category := range visibility.categories {
		if category.Visible {
			names = append(names, category.Name)
		}
	}
	return names
}

// TaskVisible reports whether the task is among its category's visible
// tasks.
func (visibility VisibilityMap) TaskVisible(category, task string) bool {
	found, exists := visibility.Get(category)
	if !exists {
		return false
	}
	for _, key := range found.VisibleTasks {
		if key == task {
			return true
		}
	}
	return false
}

// MatchCount returns the total number of visible tasks.
func (visibility VisibilityMap) MatchCount() int {
	total := 0
	for _, category := range visibility.categories {
		total += len(category.VisibleTasks)
	}
	return total
}

// NormalizeQuery trims surrounding whitespace and lowercases the query.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// TaskText returns the searchable text of a task: the key, the
// description (empty when absent) and each step, joined by single
// spaces.
func TaskText(key string, task *catalogue.Task) string {
	parts := make([]string, 0, 2+len(task.Steps))
	parts = append(parts, key, task.DescriptionText())
	parts = append(parts, task.Steps...)
	return strings.Join(parts, " ")
}

// TaskMatches reports whether the task's searchable text contains the
// query. The query is normalized first; an empty query matches
// everything.
func TaskMatches(key string, task *catalogue.Task, query string) bool {
	normalized := NormalizeQuery(query)
	if normalized == "" {
		return true
	}
	return strings.Contains(strings.ToLower(TaskText(key, task)), normalized)
}

// ComputeVisibility applies query to every category and task of
// catalogue.
func ComputeVisibility(catalogue *catalogue.Catalogue, query string) VisibilityMap {
	normalized := NormalizeQuery(query)
	names := catalogue.Categories()

	result := VisibilityMap{
		Query:      normalized,
		categories: make([]CategoryVisibility, 0, len(names)),
		index:      make(map[string]int, len(names)),
	}

	for _, name := range names {
		category, _ := catalogue.Category(name)
		keys := category.Keys()

		visibility := CategoryVisibility{Name: name}
		switch {
		case normalized == "":
			visibility.Visible = true
			visibility.VisibleTasks = keys
		case strings.Contains(strings.ToLower(name), normalized):
			visibility.Visible = true
			visibility.MatchedDirectly = true
			visibility.VisibleTasks = keys
		default:
			for _, key := range keys {
				task, _ := category.Task(key)
				if TaskMatches(key, task, normalized) {
					visibility.VisibleTasks = append(visibility.VisibleTasks, key)
				}
			}
			visibility.Visible = len(visibility.VisibleTasks) > 0
		}

		result.index[name] = len(result.categories)
		result.categories = append(result.categories, visibility)
	}
	return result
}
