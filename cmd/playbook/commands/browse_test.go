// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/playbook/cmd/playbook/cli"
	"github.com/bureau-foundation/playbook/lib/config"
)

func TestBrowseTheme(t *testing.T) {
	preferencesFile := filepath.Join(t.TempDir(), "preferences.yaml")
	cfg := config.Default()
	cfg.PreferencesFile = preferencesFile
	cfg.Browser.Theme = "dark"

	theme, err := browseTheme(cfg, "", testLogger)
	if err != nil {
		t.Fatalf("browseTheme: %v", err)
	}
	if theme.Name != "dark" {
		t.Errorf("without a preference: theme = %q, want the configured dark", theme.Name)
	}

	if err := config.SavePreferences(preferencesFile, config.Preferences{Theme: "light"}); err != nil {
		t.Fatal(err)
	}
	theme, err = browseTheme(cfg, "", testLogger)
	if err != nil {
		t.Fatalf("browseTheme: %v", err)
	}
	if theme.Name != "light" {
		t.Errorf("saved preference: theme = %q, want light", theme.Name)
	}

	theme, err = browseTheme(cfg, "dark", testLogger)
	if err != nil {
		t.Fatalf("browseTheme: %v", err)
	}
	if theme.Name != "dark" {
		t.Errorf("flag: theme = %q, want dark", theme.Name)
	}

	_, err = browseTheme(cfg, "solarized", testLogger)
	requireToolError(t, err, cli.CategoryValidation)
}

func TestBrowseTheme_UnreadablePreferences(t *testing.T) {
	preferencesFile := filepath.Join(t.TempDir(), "preferences.yaml")
	if err := os.WriteFile(preferencesFile, []byte("theme: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.PreferencesFile = preferencesFile
	cfg.Browser.Theme = "light"

	var logged bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logged, nil))
	theme, err := browseTheme(cfg, "", logger)
	if err != nil {
		t.Fatalf("browseTheme: %v", err)
	}
	if theme.Name != "light" {
		t.Errorf("theme = %q, want the configured light", theme.Name)
	}
	if !strings.Contains(logged.String(), "ignoring unreadable preferences") {
		t.Errorf("expected a warning, got %q", logged.String())
	}
}

func TestLevelHandler(t *testing.T) {
	var output bytes.Buffer
	inner := slog.NewJSONHandler(&output, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(levelHandler{Handler: inner, level: slog.LevelInfo}).With("component", "test")

	logger.Debug("dropped")
	logger.Info("kept")

	text := output.String()
	if strings.Contains(text, "dropped") {
		t.Errorf("debug record passed an info-level handler: %s", text)
	}
	if !strings.Contains(text, `"msg":"kept"`) || !strings.Contains(text, `"component":"test"`) {
		t.Errorf("info record missing or without attributes: %s", text)
	}
	if !logger.Enabled(context.Background(), slog.LevelWarn) {
		t.Error("warn should be enabled")
	}
}
