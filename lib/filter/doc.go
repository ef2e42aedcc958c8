// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package filter computes which categories and tasks of a catalogue are
// visible under a free-text query.
//
// [ComputeVisibility] is the filtering rule used by the browser and the
// list command: a case-insensitive substring match of the trimmed query
// against each task's searchable text (key, description, steps) and
// against each category name. A category whose name matches shows all
// of its tasks; a category that only matches through its tasks shows
// just the matching ones. The function is pure and linear in catalogue
// size, so callers may run it on every keystroke.
//
// [Highlight] and [Rank] are presentation helpers built on fzf's
// matchers. They never change what is visible: Highlight locates the
// substring match inside a row for styling, and Rank orders tasks by
// fuzzy score for the find command.
package filter
