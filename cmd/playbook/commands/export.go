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
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"

	"github.com/bureau-foundation/playbook/cmd/playbook/cli"
	"github.com/bureau-foundation/playbook/lib/catalogue"
	"github.com/bureau-foundation/playbook/lib/codec"
	"github.com/bureau-foundation/playbook/lib/exporter"
	"github.com/bureau-foundation/playbook/lib/session"
)

// exportParams are shared by every export subcommand.
type exportParams struct {
	sourceParams
	Output    string   `json:"output"     flag:"output,o"   desc:"write into this directory instead of standard output"`
	Compress  string   `json:"compress"   flag:"compress"   desc:"compress the export: none, zstd, or lz4 (default with --output: export.compression)"`
	EncryptTo []string `json:"encrypt_to" flag:"encrypt-to" desc:"encrypt to this age public key; repeatable (default with --output: export.recipients)"`
	Pretty    bool     `json:"pretty"     flag:"pretty"     desc:"syntax-highlight JSON written to a terminal"`
}

type exportAllParams struct {
	exportParams
	Format   string `json:"format"   flag:"format"   desc:"json or cbor" default:"json"`
	Diagnose bool   `json:"diagnose" flag:"diagnose" desc:"print CBOR as diagnostic notation instead of bytes"`
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:    "export",
		Summary: "Export a task, a prompt, or the whole catalogue",
		Description: `Write exports without opening the browser.

Exports go to standard output unless --output names a directory, in
which case the file name is derived from the task key ("catalogue" for
whole-catalogue exports) plus the extensions of any compression and
encryption applied. Directory exports use the configuration's
export.compression and export.recipients unless the flags override
them; standard output uses only the flags.

Binary output (CBOR, compressed, or encrypted) is refused when standard
output is a terminal.`,
		Subcommands: []*cli.Command{
			exportTaskCommand(session.TaskJSON),
			exportTaskCommand(session.PromptText),
			exportAllCommand(),
		},
	}
}

// exportTaskCommand builds "export task" or "export prompt", which
// differ only in the artifact kind.
func exportTaskCommand(kind session.ArtifactKind) *cli.Command {
	var params exportParams

	command := &cli.Command{
		Name:    kind.String(),
		Summary: "Export one task as JSON",
		Description: `Export one task as { "<task>": { "description": ..., "steps": [...] } }.

The output can be checked back in with "playbook validate" after
placing it under a category, and is the same document the browser's e
key writes.`,
		Usage: "playbook export task [flags] <category> <task>",
		Examples: []cli.Example{
			{
				Description: "Print a task",
				Command:     `playbook export task Git "Undo last commit"`,
			},
			{
				Description: "Write it, encrypted, into a shared directory",
				Command:     `playbook export task -o /srv/share --encrypt-to age1... Git "Undo last commit"`,
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 2 {
				return cli.Validation("expected <category> <task>, got %d arguments", len(args)).
					WithHint(`Quote names with spaces: playbook export ` + kind.String() + ` Git "Undo last commit"`)
			}
			return runExportTask(ctx, &params, kind, args[0], args[1], os.Stdout, logger)
		},
	}
	if kind == session.PromptText {
		command.Summary = "Export one task as prompt text"
		command.Description = `Export one task as plain text ready to paste into a prompt: the task
name as a heading, the description, numbered steps, and a footer naming
the catalogue it came from. This is the text the browser's y key
copies and its p key writes.`
		command.Usage = "playbook export prompt [flags] <category> <task>"
		command.Examples = []cli.Example{
			{
				Description: "Copy a prompt on macOS",
				Command:     `playbook export prompt Docker "Prune images" | pbcopy`,
			},
		}
	}
	return command
}

func exportAllCommand() *cli.Command {
	var params exportAllParams

	return &cli.Command{
		Name:    "all",
		Summary: "Export the whole catalogue as JSON or CBOR",
		Description: `Export every category and task.

JSON keeps the catalogue's order and shape and can be loaded as a
catalogue again. CBOR is a deterministic encoding of the same content:
identical catalogues produce identical bytes. Use --diagnose to read
CBOR as text.`,
		Usage: "playbook export all [flags]",
		Examples: []cli.Example{
			{
				Description: "Normalize a hand-edited catalogue",
				Command:     "playbook export all --catalogue draft.jsonc > tasks.json",
			},
			{
				Description: "Publish a compressed CBOR snapshot",
				Command:     "playbook export all --format cbor --compress zstd -o dist/",
			},
			{
				Description: "Inspect the CBOR encoding",
				Command:     "playbook export all --format cbor --diagnose",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			return runExportAll(ctx, &params, os.Stdout, logger)
		},
	}
}

func runExportTask(ctx context.Context, params *exportParams, kind session.ArtifactKind, category, task string, stdout io.Writer, logger *slog.Logger) error {
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
	if err := browsing.Dispatch(session.SelectTaskIntent{Category: category, Task: task}); err != nil {
		return selectionNotFound(err, result.Catalogue)
	}

	sink, err := params.sink(cfg.Export.Compression, cfg.Export.Recipients, kind, stdout, logger)
	if err != nil {
		return err
	}
	if _, err := browsing.Export(kind, result.Source, sink); err != nil {
		return cli.Internal("%w", err)
	}
	return reportWritten(sink, stdout)
}

func runExportAll(ctx context.Context, params *exportAllParams, stdout io.Writer, logger *slog.Logger) error {
	var kind session.ArtifactKind
	switch params.Format {
	case "json":
		kind = session.CatalogueJSON
	case "cbor":
		kind = session.CatalogueCBOR
	default:
		return cli.Validation("unknown format %q (want json or cbor)", params.Format)
	}
	if params.Diagnose && kind != session.CatalogueCBOR {
		return cli.Validation("--diagnose applies to --format cbor only")
	}

	cfg, err := params.resolve()
	if err != nil {
		return err
	}
	result, err := loadCatalogue(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if params.Diagnose {
		artifact, err := session.CatalogueArtifact(result.Catalogue, kind)
		if err != nil {
			return cli.Internal("%w", err)
		}
		notation, err := codec.Diagnose(artifact.Content)
		if err != nil {
			return cli.Internal("%w", err)
		}
		_, err = fmt.Fprintln(stdout, notation)
		return err
	}

	browsing, err := session.New(result.Catalogue)
	if err != nil {
		return cli.Internal("%w", err)
	}
	sink, err := params.sink(cfg.Export.Compression, cfg.Export.Recipients, kind, stdout, logger)
	if err != nil {
		return err
	}
	if _, err := browsing.Export(kind, result.Source, sink); err != nil {
		return cli.Internal("%w", err)
	}
	return reportWritten(sink, stdout)
}

// sink picks where an export of kind goes: a directory when --output is
// set, else stdout. Directory exports fall back to the configured
// envelope; stdout exports use the flags alone.
func (params *exportParams) sink(configCompression string, configRecipients []string, kind session.ArtifactKind, stdout io.Writer, logger *slog.Logger) (session.ExportSink, error) {
	compression, recipients := params.Compress, params.EncryptTo
	if params.Output != "" {
		if compression == "" {
			compression = configCompression
		}
		if len(recipients) == 0 {
			recipients = configRecipients
		}
	}
	envelope, err := envelopeFor(compression, recipients)
	if err != nil {
		return nil, err
	}

	if params.Output != "" {
		directory, err := filepath.Abs(params.Output)
		if err != nil {
			return nil, cli.Validation("%w", err)
		}
		if err := os.MkdirAll(directory, 0o755); err != nil {
			return nil, cli.Internal("creating %s: %w", directory, err)
		}
		return &exporter.DirectorySink{Directory: directory, Envelope: envelope, Logger: logger}, nil
	}

	binary := kind == session.CatalogueCBOR || envelope.Compression != catalogue.CompressionNone || envelope.Encrypted()
	terminal := isTerminal(stdout)
	if binary && terminal {
		return nil, cli.Validation("refusing to write binary output to a terminal").
			WithHint("Redirect standard output to a file, or pass --output <directory>.")
	}
	if params.Pretty && terminal && !binary && kind != session.PromptText {
		return &highlightSink{writer: stdout}, nil
	}
	return &exporter.StreamSink{Writer: stdout, Envelope: envelope}, nil
}

// reportWritten prints the path of a directory export so scripts can
// pick it up.
func reportWritten(sink session.ExportSink, stdout io.Writer) error {
	if directory, ok := sink.(*exporter.DirectorySink); ok {
		_, err := fmt.Fprintln(stdout, directory.LastPath)
		return err
	}
	return nil
}

// highlightSink writes JSON artifacts with terminal syntax colors.
type highlightSink struct {
	writer io.Writer
}

func (sink *highlightSink) Export(artifact session.Artifact) error {
	return quick.Highlight(sink.writer, string(artifact.Content), "json", "terminal256", "monokai")
}

// selectionNotFound turns a failed selection into a NotFound error with
// a suggestion for the closest existing name.
func selectionNotFound(err error, loaded *catalogue.Catalogue) error {
	var selection *session.SelectionError
	if !errors.As(err, &selection) {
		return cli.Internal("%w", err)
	}

	notFound := cli.NotFound("%w", selection)
	if !selection.CategoryExists {
		if suggestion := cli.Suggest(selection.Category, loaded.Categories()); suggestion != "" {
			return notFound.WithHint(fmt.Sprintf("Did you mean category %q?", suggestion))
		}
		return notFound.WithHint("Run 'playbook list --collapsed' to see the categories.")
	}

	category, _ := loaded.Category(selection.Category)
	if suggestion := cli.Suggest(selection.Task, category.Keys()); suggestion != "" {
		return notFound.WithHint(fmt.Sprintf("Did you mean %q?", suggestion))
	}
	return notFound.WithHint("To see its tasks, run: playbook list " + shellQuote(selection.Category))
}

// shellQuote returns name as a single shell word: unchanged when it is
// made of safe characters, single-quoted otherwise.
func shellQuote(name string) string {
	if name != "" && strings.IndexFunc(name, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || strings.ContainsRune("-_./:@%+=,", r))
	}) < 0 {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", `'\''`) + "'"
}
