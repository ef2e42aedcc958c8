// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the playbook CLI command tree: the
// interactive browser and the scriptable commands that share its
// catalogue loading, filtering, and export paths.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/bureau-foundation/playbook/cmd/playbook/cli"
	"github.com/bureau-foundation/playbook/lib/version"
)

// Root builds and returns the complete playbook command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "playbook",
		Description: `playbook: a browser for catalogues of operational tasks.

A catalogue is a JSON object of categories, each an object of tasks
with an optional markdown description and a list of shell steps. Browse
it interactively, search it, and export tasks as JSON or as prompt text.

Configuration is read from the file named by --config or
$PLAYBOOK_CONFIG; without either, built-in defaults and the built-in
catalogue are used.`,
		Subcommands: []*cli.Command{
			browseCommand(),
			listCommand(),
			findCommand(),
			exportCommand(),
			validateCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(context.Context, []string, *slog.Logger) error {
					version.Print("playbook")
					return nil
				},
			},
		},
	}
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
