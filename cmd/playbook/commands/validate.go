// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/playbook/cmd/playbook/cli"
	"github.com/bureau-foundation/playbook/lib/catalogue"
	"github.com/bureau-foundation/playbook/lib/codec"
)

type validateParams struct {
	sourceParams
	cli.JSONOutput
	Format string `json:"format" flag:"format" desc:"document format: json or cbor" default:"json"`
}

// validationReport is the --json output of validate.
type validationReport struct {
	Source     string    `json:"source"`
	Valid      bool      `json:"valid"`
	Digest     string    `json:"digest"`
	Categories int       `json:"categories"`
	Tasks      int       `json:"tasks"`
	Problems   []problem `json:"problems"`
}

type problem struct {
	Kind     string `json:"kind"`
	Category string `json:"category,omitempty"`
	Task     string `json:"task,omitempty"`
	Message  string `json:"message"`
}

func validateCommand() *cli.Command {
	var params validateParams

	return &cli.Command{
		Name:    "validate",
		Summary: "Check a catalogue document and report every problem",
		Description: `Load a catalogue and validate it without opening the browser.

The document is the file or URL given as the argument, else the
configured catalogue. Compressed (.zst, .lz4) and encrypted (.age)
files are unwrapped first. Every problem is listed, not just the first.

Exits 0 and prints the catalogue's size and BLAKE3 digest when the
document is valid; exits 1 after listing the problems otherwise. With
--format cbor the document is read as a CBOR export produced by
"playbook export all --format cbor".`,
		Usage: "playbook validate [flags] [file-or-url]",
		Examples: []cli.Example{
			{
				Description: "Validate a catalogue before publishing it",
				Command:     "playbook validate tasks.json",
			},
			{
				Description: "Validate an encrypted catalogue",
				Command:     "playbook validate --identity ~/.config/playbook/key.txt tasks.json.age",
			},
			{
				Description: "Check a CBOR export",
				Command:     "playbook validate --format cbor catalogue.cbor",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 1 {
				return cli.Validation("validate takes at most one file or URL, got %d arguments", len(args))
			}
			if len(args) == 1 {
				params.Catalogue = args[0]
			}
			return runValidate(ctx, &params, os.Stdout, logger)
		},
	}
}

func runValidate(ctx context.Context, params *validateParams, stdout io.Writer, logger *slog.Logger) error {
	if params.Format != "json" && params.Format != "cbor" {
		return cli.Validation("unknown format %q (want json or cbor)", params.Format)
	}
	cfg, err := params.resolve()
	if err != nil {
		return err
	}
	fetcher, err := fetcherFor(cfg)
	if err != nil {
		return err
	}
	if fetcher == nil {
		return cli.Validation("no catalogue to validate").
			WithHint("Pass a file or URL, or set catalogue.path in the configuration.")
	}

	fetchContext, cancel := context.WithTimeout(ctx, cfg.FetchTimeout())
	defer cancel()
	data, err := fetcher.Fetch(fetchContext)
	if err != nil {
		return classifyLoadError(fmt.Errorf("reading %s: %w", fetcher.Describe(), err))
	}

	var loaded *catalogue.Catalogue
	if params.Format == "cbor" {
		loaded, err = codec.DecodeCatalogue(data)
	} else {
		loaded, err = catalogue.Parse(data)
	}

	report := validationReport{
		Source:   fetcher.Describe(),
		Valid:    err == nil,
		Digest:   catalogue.DigestOf(data).String(),
		Problems: []problem{},
	}
	if err != nil {
		report.Problems = problemsOf(err)
	} else {
		report.Categories = loaded.Len()
		report.Tasks = loaded.TaskCount()
	}
	logger.Debug("validated", "source", report.Source, "valid", report.Valid, "problems", len(report.Problems))

	if done, emitErr := params.EmitJSON(stdout, report); done {
		if emitErr != nil {
			return emitErr
		}
		if !report.Valid {
			return &cli.ExitError{Code: 1}
		}
		return nil
	}

	if !report.Valid {
		fmt.Fprintf(stdout, "%s: %d %s\n", report.Source, len(report.Problems), plural(len(report.Problems), "problem", "problems"))
		for _, entry := range report.Problems {
			fmt.Fprintf(stdout, "  %s\n", entry.Message)
		}
		return &cli.ExitError{Code: 1}
	}
	fmt.Fprintf(stdout, "%s: valid, %d %s, %d %s, digest %s\n",
		report.Source,
		report.Categories, plural(report.Categories, "category", "categories"),
		report.Tasks, plural(report.Tasks, "task", "tasks"),
		report.Digest)
	return nil
}

// problemsOf flattens a validation failure into one entry per problem.
// Errors that are not ValidationErrors (CBOR decoding failures) become
// a single entry.
func problemsOf(err error) []problem {
	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}

	problems := make([]problem, 0, len(errs))
	for _, entry := range errs {
		var validation *catalogue.ValidationError
		if errors.As(entry, &validation) {
			problems = append(problems, problem{
				Kind:     validation.Kind.String(),
				Category: validation.Category,
				Task:     validation.Task,
				Message:  validation.Error(),
			})
			continue
		}
		problems = append(problems, problem{Kind: "decode", Message: entry.Error()})
	}
	return problems
}

func plural(count int, singular, pluralForm string) string {
	if count == 1 {
		return singular
	}
	return pluralForm
}
