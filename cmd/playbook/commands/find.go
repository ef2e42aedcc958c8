// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/playbook/cmd/playbook/cli"
	"github.com/bureau-foundation/playbook/lib/filter"
	"github.com/bureau-foundation/playbook/lib/tui"
)

type findParams struct {
	sourceParams
	cli.JSONOutput
	Limit int `json:"limit" flag:"limit,n" desc:"maximum number of results (0 for all)" default:"10"`
}

// foundTask is one result in the --json output of find.
type foundTask struct {
	Category string `json:"category"`
	Task     string `json:"task"`
	Score    int    `json:"score"`
}

func findCommand() *cli.Command {
	var params findParams

	return &cli.Command{
		Name:    "find",
		Summary: "Fuzzy-find tasks, best match first",
		Description: `Rank every task against a fuzzy pattern and print the best matches.

Unlike "playbook list", the pattern's characters need not be adjacent:
"dkrm" finds "Docker / Remove stopped containers". Each task is matched
as its category name followed by its name, description, and steps.
Exits 1 when nothing matches.`,
		Usage: "playbook find [flags] <pattern...>",
		Examples: []cli.Example{
			{
				Description: "Find the task for undoing a commit",
				Command:     "playbook find undo commit",
			},
			{
				Description: "Export the best match as a prompt",
				Command:     `playbook find -n1 --json rollback | jq -r '.[0] | "\(.category)\t\(.task)"'`,
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			pattern := strings.TrimSpace(strings.Join(args, " "))
			if pattern == "" {
				return cli.Validation("find requires a pattern").
					WithHint("Run 'playbook list' to see every task.")
			}
			return runFind(ctx, &params, pattern, os.Stdout, logger)
		},
	}
}

func runFind(ctx context.Context, params *findParams, pattern string, stdout io.Writer, logger *slog.Logger) error {
	if params.Limit < 0 {
		return cli.Validation("--limit must not be negative")
	}
	cfg, err := params.resolve()
	if err != nil {
		return err
	}
	result, err := loadCatalogue(ctx, cfg, logger)
	if err != nil {
		return err
	}

	ranked := filter.Rank(result.Catalogue, pattern, params.Limit)

	found := make([]foundTask, len(ranked))
	for index, entry := range ranked {
		found[index] = foundTask{Category: entry.Category, Task: entry.Task, Score: entry.Score}
	}
	if done, err := params.EmitJSON(stdout, found); done {
		if err == nil && len(found) == 0 {
			return &cli.ExitError{Code: 1}
		}
		return err
	}

	if len(ranked) == 0 {
		fmt.Fprintf(stdout, "No tasks match %q\n", pattern)
		return &cli.ExitError{Code: 1}
	}

	color := isTerminal(stdout)
	plain := lipgloss.NewStyle()
	match := lipgloss.NewStyle().Foreground(tui.DarkTheme.Accent).Bold(true)
	for _, entry := range ranked {
		label := entry.Category + " / " + entry.Task
		if color {
			label = tui.HighlightRunes(label, labelPositions(entry), plain, match)
		}
		fmt.Fprintf(stdout, "%5d  %s\n", entry.Score, label)
	}
	return nil
}

// labelPositions maps match positions in the ranked text ("<category>
// <task> <description> <steps>") onto the label "<category> / <task>".
// Positions in the description or steps have no place in the label and
// are dropped.
func labelPositions(entry filter.Ranked) []int {
	categoryLength := utf8.RuneCountInString(entry.Category)
	taskStart := categoryLength + 1
	taskEnd := taskStart + utf8.RuneCountInString(entry.Task)

	var positions []int
	for _, position := range entry.Positions {
		switch {
		case position < categoryLength:
			positions = append(positions, position)
		case position >= taskStart && position < taskEnd:
			positions = append(positions, position+2)
		}
	}
	return positions
}
