// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

var discardLogger = slog.New(slog.DiscardHandler)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name:   "playbook",
		Logger: discardLogger,
		Subcommands: []*Command{
			{
				Name: "version",
				Run: func(context.Context, []string, *slog.Logger) error {
					called = "version"
					return nil
				},
			},
			{
				Name: "list",
				Run: func(context.Context, []string, *slog.Logger) error {
					called = "list"
					return nil
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"list"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "list" {
		t.Errorf("dispatched to %q, want %q", called, "list")
	}
}

func TestCommand_Execute_NestedSubcommands(t *testing.T) {
	var receivedArgs []string

	root := &Command{
		Name:   "playbook",
		Logger: discardLogger,
		Subcommands: []*Command{
			{
				Name: "export",
				Subcommands: []*Command{
					{
						Name: "task",
						Run: func(_ context.Context, args []string, _ *slog.Logger) error {
							receivedArgs = args
							return nil
						},
					},
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"export", "task", "Git", "Undo"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(receivedArgs) != 2 || receivedArgs[0] != "Git" || receivedArgs[1] != "Undo" {
		t.Errorf("args = %v, want [Git Undo]", receivedArgs)
	}
}

func TestCommand_Execute_ParsesParams(t *testing.T) {
	type params struct {
		JSONOutput
		Limit int `flag:"limit,n" desc:"maximum results" default:"10"`
	}
	var p params
	var receivedArgs []string

	command := &Command{
		Name:   "find",
		Logger: discardLogger,
		Params: func() any { return &p },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			receivedArgs = args
			return nil
		},
	}

	if err := command.Execute(context.Background(), []string{"--json", "-n", "3", "docker"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !p.OutputJSON || p.Limit != 3 {
		t.Errorf("params = %+v, want OutputJSON and Limit 3", p)
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "docker" {
		t.Errorf("args = %v, want [docker]", receivedArgs)
	}
}

func TestCommand_Execute_DefaultsApply(t *testing.T) {
	type params struct {
		Limit int `flag:"limit" default:"10"`
	}
	var p params
	command := &Command{
		Name:   "find",
		Logger: discardLogger,
		Params: func() any { return &p },
		Run:    func(context.Context, []string, *slog.Logger) error { return nil },
	}
	if err := command.Execute(context.Background(), nil); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if p.Limit != 10 {
		t.Errorf("Limit = %d, want default 10", p.Limit)
	}
}

func TestCommand_Execute_UnknownCommandSuggests(t *testing.T) {
	root := &Command{
		Name:   "playbook",
		Logger: discardLogger,
		Subcommands: []*Command{
			{Name: "browse", Run: func(context.Context, []string, *slog.Logger) error { return nil }},
			{Name: "export", Run: func(context.Context, []string, *slog.Logger) error { return nil }},
		},
	}

	err := root.Execute(context.Background(), []string{"exprot"})
	if err == nil {
		t.Fatal("expected an error for an unknown command")
	}
	if !strings.Contains(err.Error(), `did you mean "export"`) {
		t.Errorf("error = %q, want a suggestion for export", err)
	}

	err = root.Execute(context.Background(), []string{"zzzzzzzz"})
	if err == nil || strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %v, want no suggestion for a distant name", err)
	}
}

func TestCommand_Execute_UnknownFlagSuggests(t *testing.T) {
	type params struct {
		Output string `flag:"output" desc:"output directory"`
	}
	var p params
	command := &Command{
		Name:   "export",
		Logger: discardLogger,
		Params: func() any { return &p },
		Run:    func(context.Context, []string, *slog.Logger) error { return nil },
	}

	err := command.Execute(context.Background(), []string{"--ouptut", "dir"})
	if err == nil {
		t.Fatal("expected an error for an unknown flag")
	}
	if !strings.Contains(err.Error(), "did you mean --output?") {
		t.Errorf("error = %q, want a suggestion for --output", err)
	}
}

func TestCommand_Execute_RunWithSubcommandsTakesPositionals(t *testing.T) {
	var receivedArgs []string
	command := &Command{
		Name:   "list",
		Logger: discardLogger,
		Subcommands: []*Command{
			{Name: "categories", Run: func(context.Context, []string, *slog.Logger) error { return nil }},
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			receivedArgs = args
			return nil
		},
	}
	if err := command.Execute(context.Background(), []string{"docker"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "docker" {
		t.Errorf("args = %v, want [docker]", receivedArgs)
	}
}

func TestCommand_Execute_SubcommandRequired(t *testing.T) {
	root := &Command{
		Name:        "export",
		Logger:      discardLogger,
		Subcommands: []*Command{{Name: "task"}},
	}
	err := root.Execute(context.Background(), nil)
	if err == nil || !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("error = %v, want subcommand required", err)
	}
}

func TestCommand_Execute_LoggerScopedByPath(t *testing.T) {
	var buffer bytes.Buffer
	root := &Command{
		Name:   "playbook",
		Logger: slog.New(slog.NewTextHandler(&buffer, nil)),
		Subcommands: []*Command{
			{
				Name: "validate",
				Run: func(_ context.Context, _ []string, logger *slog.Logger) error {
					logger.Info("checked")
					return nil
				},
			},
		},
	}
	if err := root.Execute(context.Background(), []string{"validate"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(buffer.String(), `command="playbook validate"`) {
		t.Errorf("log output = %q, want the command path attribute", buffer.String())
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	type params struct {
		Format string `flag:"format" desc:"output format" default:"json"`
	}
	var p params
	root := &Command{
		Name:        "playbook",
		Description: "Browse a catalogue of tasks.",
		Subcommands: []*Command{
			{
				Name:    "export",
				Summary: "Export tasks",
				Params:  func() any { return &p },
				Examples: []Example{
					{Description: "Export everything", Command: "playbook export all"},
				},
			},
		},
	}

	var output bytes.Buffer
	root.PrintHelp(&output)
	help := output.String()
	for _, want := range []string{"Browse a catalogue of tasks.", "playbook <command> [flags]", "export", "Export tasks"} {
		if !strings.Contains(help, want) {
			t.Errorf("root help missing %q:\n%s", want, help)
		}
	}

	output.Reset()
	root.Subcommands[0].parent = root
	root.Subcommands[0].PrintHelp(&output)
	help = output.String()
	for _, want := range []string{"playbook export [flags]", "--format", "output format", "# Export everything"} {
		if !strings.Contains(help, want) {
			t.Errorf("export help missing %q:\n%s", want, help)
		}
	}
}
