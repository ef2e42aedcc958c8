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

	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/playbook/cmd/playbook/cli"
	"github.com/bureau-foundation/playbook/lib/session"
	"github.com/bureau-foundation/playbook/lib/tui"
)

type listParams struct {
	sourceParams
	cli.JSONOutput
	Collapsed bool `json:"collapsed" flag:"collapsed" desc:"list categories only, with their visible task counts"`
}

// listedCategory is one category in the --json output of list.
type listedCategory struct {
	Name            string   `json:"name"`
	MatchedDirectly bool     `json:"matched_directly"`
	TaskCount       int      `json:"task_count"`
	Tasks           []string `json:"tasks"`
}

func listCommand() *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "Print the catalogue tree, optionally filtered",
		Description: `Print categories and their tasks, filtered by the optional query.

The query is matched case-insensitively as a substring. A category
whose name matches shows all of its tasks; otherwise only the tasks
whose name, description, or steps match are shown, and categories left
with no tasks are omitted. This is the same filtering the browser's
search applies.`,
		Usage: "playbook list [flags] [query...]",
		Examples: []cli.Example{
			{
				Description: "Show every task",
				Command:     "playbook list",
			},
			{
				Description: "Tasks mentioning kubectl",
				Command:     "playbook list kubectl",
			},
			{
				Description: "Category names as JSON",
				Command:     "playbook list --collapsed --json | jq -r '.[].name'",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			return runList(ctx, &params, strings.Join(args, " "), os.Stdout, logger)
		},
	}
}

// treeSink keeps the latest view the session renders.
type treeSink struct {
	view session.View
}

func (sink *treeSink) Render(view session.View) {
	sink.view = view
}

func runList(ctx context.Context, params *listParams, query string, stdout io.Writer, logger *slog.Logger) error {
	cfg, err := params.resolve()
	if err != nil {
		return err
	}
	result, err := loadCatalogue(ctx, cfg, logger)
	if err != nil {
		return err
	}

	browsing, err := session.New(result.Catalogue)
	if err != nil {
		return cli.Internal("%w", err)
	}
	sink := &treeSink{}
	browsing.SetViewSink(sink)

	if err := browsing.Dispatch(session.SetQueryIntent{Query: query}); err != nil {
		return cli.Internal("%w", err)
	}
	// Expand whatever the query left collapsed, so the tree is complete
	// unless --collapsed asks for headers only.
	if !params.Collapsed {
		for _, row := range sink.view.Rows {
			if row.Kind == session.CategoryRow && !row.Expanded {
				if err := browsing.Dispatch(session.ToggleCategoryIntent{Category: row.Category}); err != nil {
					return cli.Internal("%w", err)
				}
			}
		}
	}

	listed := listedCategories(sink.view, params.Collapsed)
	if done, err := params.EmitJSON(stdout, listed); done {
		return err
	}

	if len(listed) == 0 {
		if sink.view.Query != "" {
			fmt.Fprintf(stdout, "No tasks match %q\n", sink.view.Query)
			return &cli.ExitError{Code: 1}
		}
		fmt.Fprintln(stdout, "Catalogue is empty")
		return nil
	}
	writeTree(stdout, sink.view, params.Collapsed, isTerminal(stdout))
	return nil
}

// listedCategories groups the view's rows by category.
func listedCategories(view session.View, collapsed bool) []listedCategory {
	var listed []listedCategory
	for _, row := range view.Rows {
		switch row.Kind {
		case session.CategoryRow:
			listed = append(listed, listedCategory{
				Name:            row.Category,
				MatchedDirectly: row.MatchedDirectly,
				TaskCount:       row.TaskCount,
				Tasks:           []string{},
			})
		case session.TaskRow:
			if !collapsed && len(listed) > 0 {
				current := &listed[len(listed)-1]
				current.Tasks = append(current.Tasks, row.Task)
			}
		}
	}
	return listed
}

// writeTree prints the rows as an indented tree. On a terminal, query
// matches are highlighted the way the browser highlights them.
func writeTree(w io.Writer, view session.View, collapsed, color bool) {
	theme := tui.DarkTheme
	plain := lipgloss.NewStyle()
	match := lipgloss.NewStyle().Background(theme.MatchHighlightBackground).Bold(true)
	label := func(row session.Row) string {
		if !color {
			return row.Label()
		}
		return tui.HighlightRunes(row.Label(), row.Highlight, plain, match)
	}

	for _, row := range view.Rows {
		switch row.Kind {
		case session.CategoryRow:
			fmt.Fprintf(w, "%s (%d)\n", label(row), row.TaskCount)
		case session.TaskRow:
			if !collapsed {
				fmt.Fprintf(w, "  %s\n", label(row))
			}
		}
	}
}
