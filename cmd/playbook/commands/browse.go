// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/playbook/cmd/playbook/cli"
	"github.com/bureau-foundation/playbook/lib/browser"
	"github.com/bureau-foundation/playbook/lib/catalogue"
	"github.com/bureau-foundation/playbook/lib/config"
	"github.com/bureau-foundation/playbook/lib/exporter"
	"github.com/bureau-foundation/playbook/lib/tui"
)

type browseParams struct {
	sourceParams
	Theme     string `json:"theme"      flag:"theme"      desc:"color theme for this session: dark or light (default: saved preference)"`
	LogOutput string `json:"log_output" flag:"log-output" desc:"write JSON log records to this file (in addition to the status bar)"`
	NoWatch   bool   `json:"no_watch"   flag:"no-watch"   desc:"do not reload the catalogue when its file changes"`
}

func browseCommand() *cli.Command {
	var params browseParams

	return &cli.Command{
		Name:    "browse",
		Summary: "Browse the catalogue interactively",
		Description: `Open the interactive catalogue browser.

Categories are listed on the left, the selected task's description and
steps on the right. Press / to search, space or enter to expand a
category, y to copy the selected task as a prompt, e/E/p to export the
task, the whole catalogue, or the prompt text into the export
directory, and t to switch themes.

If the configured catalogue cannot be loaded, the built-in catalogue is
shown with a notice. A local catalogue file is watched and reloaded
when it changes; a rewrite that fails validation keeps the previous
catalogue on screen.

Running playbook with no command is the same as "playbook browse".`,
		Usage: "playbook browse [flags]",
		Examples: []cli.Example{
			{
				Description: "Browse a local catalogue",
				Command:     "playbook browse --catalogue ~/runbooks/tasks.json",
			},
			{
				Description: "Browse a shared catalogue over HTTPS",
				Command:     "playbook browse --catalogue https://example.com/tasks.json.zst",
			},
			{
				Description: "Keep a debug log while browsing",
				Command:     "playbook browse --log-output /tmp/playbook.log",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			return runBrowse(ctx, &params)
		},
	}
}

func runBrowse(ctx context.Context, params *browseParams) error {
	cfg, err := params.resolve()
	if err != nil {
		return err
	}
	if params.LogOutput != "" {
		cfg.Log.Output = params.LogOutput
	}

	// Writing to stderr would corrupt the alt-screen display, so from
	// here on records go to the status bar (warnings and errors only)
	// and, when configured, to a JSON file at the configured level.
	tuiHandler := browser.NewTUILogHandler(slog.LevelWarn)
	var handler slog.Handler = tuiHandler
	if cfg.Log.Output != "" {
		fileHandler, closeFile, err := cli.OpenFileLogHandler(cfg.Log.Output)
		if err != nil {
			return cli.Validation("cannot open log file %s: %w", cfg.Log.Output, err)
		}
		defer closeFile()
		handler = cli.FanoutHandler{tuiHandler, levelHandler{Handler: fileHandler, level: cfg.LogLevel()}}
	}
	logger := slog.New(handler)

	fetcher, err := fetcherFor(cfg)
	if err != nil {
		return err
	}
	loadContext, cancel := context.WithTimeout(ctx, cfg.FetchTimeout())
	result := catalogue.LoadOrFallback(loadContext, fetcher, logger)
	cancel()

	theme, err := browseTheme(cfg, params.Theme, logger)
	if err != nil {
		return err
	}

	envelope, err := envelopeFor(cfg.Export.Compression, cfg.Export.Recipients)
	if err != nil {
		return err
	}
	directory, err := cfg.ExportDirectory()
	if err != nil {
		return cli.Internal("%w", err)
	}

	var updates <-chan catalogue.Update
	if fileFetcher, ok := fetcher.(*catalogue.FileFetcher); ok && cfg.Catalogue.Watch && !params.NoWatch {
		watched, stopWatching, err := catalogue.Watch(fileFetcher, result.Digest)
		if err != nil {
			logger.Warn("catalogue will not reload on change", "path", fileFetcher.Path, "error", err)
		} else {
			defer stopWatching()
			updates = watched
		}
	}

	// A zero debounce in the configuration means apply every keystroke.
	debounce := cfg.Debounce()
	if debounce == 0 {
		debounce = -1
	}

	model, err := browser.NewModel(result.Catalogue, browser.Options{
		Theme:          theme,
		Debounce:       debounce,
		NoticeDuration: cfg.NoticeDuration(),
		Provenance:     result.Source,
		Exports: &exporter.DirectorySink{
			Directory: directory,
			Envelope:  envelope,
			Logger:    logger,
		},
		PreferencesFile: cfg.PreferencesFile,
		Updates:         updates,
		LoadNotice:      result.Notice,
		Logger:          logger,
	})
	if err != nil {
		return cli.Internal("%w", err)
	}

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	// Records logged before this point reach only the file handler;
	// the load notice is carried by the model instead.
	tuiHandler.SetProgram(program)

	_, err = program.Run()
	return err
}

// browseTheme picks the theme: the flag, else the saved preference,
// else the configured default. An unreadable preferences file is
// reported and ignored.
func browseTheme(cfg *config.Config, flagTheme string, logger *slog.Logger) (tui.Theme, error) {
	name := cfg.Browser.Theme
	preferences, err := config.LoadPreferences(cfg.PreferencesFile)
	if err != nil {
		logger.Warn("ignoring unreadable preferences", "path", cfg.PreferencesFile, "error", err)
	} else if preferences.Theme != "" {
		name = preferences.Theme
	}
	if flagTheme != "" {
		name = flagTheme
	}

	theme, err := tui.ThemeNamed(name)
	if err != nil {
		return tui.Theme{}, cli.Validation("%w", err)
	}
	return theme, nil
}

// levelHandler raises the minimum level of the handler it wraps.
type levelHandler struct {
	slog.Handler
	level slog.Level
}

func (handler levelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= handler.level && handler.Handler.Enabled(ctx, level)
}

func (handler levelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return levelHandler{Handler: handler.Handler.WithAttrs(attrs), level: handler.level}
}

func (handler levelHandler) WithGroup(name string) slog.Handler {
	return levelHandler{Handler: handler.Handler.WithGroup(name), level: handler.level}
}
