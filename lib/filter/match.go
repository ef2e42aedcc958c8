// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package filter

import (
	"slices"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"

	"github.com/bureau-foundation/playbook/lib/catalogue"
)

// Highlight returns the rune positions in text covered by the first
// case-insensitive occurrence of the normalized query, or nil when the
// query is empty or does not occur. Positions are ascending.
func Highlight(text, query string) []int {
	pattern := []rune(NormalizeQuery(query))
	if len(pattern) == 0 {
		return nil
	}

	chars := util.ToChars([]byte(text))
	result, _ := algo.ExactMatchNaive(false, false, true, &chars, pattern, false, nil)
	if result.Start < 0 || result.End <= result.Start {
		return nil
	}

	positions := make([]int, 0, result.End-result.Start)
	for position := result.Start; position < result.End; position++ {
		positions = append(positions, position)
	}
	return positions
}

// Ranked is one task matched by [Rank].
type Ranked struct {
	Category string
	Task     string
	Score    int

	// Text is the string the pattern was matched against: the category
	// name followed by the task's searchable text.
	Text string

	// Positions are the matched rune positions in Text, ascending.
	Positions []int
}

// Rank fuzzy-matches pattern against every task (prefixed with its
// category name) using fzf's V2 algorithm and returns matches best
// first. Ties keep catalogue order. A limit of zero or less returns
// every match; an empty pattern returns nil.
func Rank(catalogue *catalogue.Catalogue, pattern string, limit int) []Ranked {
	runes := []rune(NormalizeQuery(pattern))
	if len(runes) == 0 {
		return nil
	}

	var ranked []Ranked
	for _, categoryName := range catalogue.Categories() {
		category, _ := catalogue.Category(categoryName)
		for _, key := range category.Keys() {
			task, _ := category.Task(key)
			text := categoryName + " " + TaskText(key, task)

			chars := util.ToChars([]byte(text))
			result, positions := algo.FuzzyMatchV2(false, false, true, &chars, runes, true, nil)
			if result.Score <= 0 {
				continue
			}

			entry := Ranked{
				Category: categoryName,
				Task:     key,
				Score:    result.Score,
				Text:     text,
			}
			if positions != nil {
				entry.Positions = slices.Clone(*positions)
				slices.Sort(entry.Positions)
			}
			ranked = append(ranked, entry)
		}
	}

	slices.SortStableFunc(ranked, func(left, right Ranked) int {
		return right.Score - left.Score
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
