// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package filter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHighlight(t *testing.T) {
	tests := []struct {
		text     string
		query    string
		expected []int
	}{
		{"Rebase onto main", "onto", []int{7, 8, 9, 10}},
		{"Rebase onto main", "  ONTO ", []int{7, 8, 9, 10}},
		{"Rebase onto main", "", nil},
		{"Rebase onto main", "xyz", nil},
		// Rune positions, not byte offsets.
		{"Café setup", "setup", []int{5, 6, 7, 8, 9}},
	}
	for _, test := range tests {
		got := Highlight(test.text, test.query)
		if diff := cmp.Diff(test.expected, got); diff != "" {
			t.Errorf("Highlight(%q, %q) (-want +got):\n%s", test.text, test.query, diff)
		}
	}
}

func TestRank(t *testing.T) {
	parsed := testCatalogue(t)

	results := Rank(parsed, "bisect", 0)
	if len(results) == 0 {
		t.Fatal("expected at least one match for bisect")
	}
	if results[0].Category != "Git" || results[0].Task != "Bisect" {
		t.Errorf("best match = %s/%s, expected Git/Bisect", results[0].Category, results[0].Task)
	}
	if results[0].Score <= 0 {
		t.Errorf("best match score = %d, expected positive", results[0].Score)
	}
	textLength := len([]rune(results[0].Text))
	for index, position := range results[0].Positions {
		if position < 0 || position >= textLength {
			t.Errorf("position %d out of bounds for %q", position, results[0].Text)
		}
		if index > 0 && position <= results[0].Positions[index-1] {
			t.Errorf("positions not ascending: %v", results[0].Positions)
		}
	}
}

func TestRank_NonContiguous(t *testing.T) {
	// "rbs" reaches Git/Rebase through r-e-b-a-s-e.
	results := Rank(testCatalogue(t), "rbs", 0)
	found := false
	for _, result := range results {
		if result.Category == "Git" && result.Task == "Rebase" {
			found = true
		}
	}
	if !found {
		t.Errorf("Git/Rebase should fuzzy-match rbs, got %+v", results)
	}
}

func TestRank_LimitAndEmpty(t *testing.T) {
	parsed := testCatalogue(t)
	if results := Rank(parsed, "   ", 10); results != nil {
		t.Errorf("empty pattern returned %d results", len(results))
	}
	if results := Rank(parsed, "e", 2); len(results) != 2 {
		t.Errorf("limit 2 returned %d results", len(results))
	}
	if results := Rank(parsed, "qqqqqq", 0); len(results) != 0 {
		t.Errorf("unmatched pattern returned %+v", results)
	}
}
