// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package browser

import (
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type recordingSender struct {
	messages []tea.Msg
}

func (sender *recordingSender) Send(message tea.Msg) {
	sender.messages = append(sender.messages, message)
}

func TestTUILogHandler(t *testing.T) {
	handler := NewTUILogHandler(slog.LevelWarn)
	logger := slog.New(handler)

	// Dropped: no program yet.
	logger.Warn("early")

	sender := &recordingSender{}
	handler.SetProgram(sender)

	logger.Info("below level")
	logger.With("source", "tasks.json").WithGroup("reload").Warn("catalogue reload failed", "attempt", 2)
	logger.Error("export failed")

	if len(sender.messages) != 2 {
		t.Fatalf("expected 2 messages, got %d: %v", len(sender.messages), sender.messages)
	}
	first := sender.messages[0].(logRecordMsg)
	expected := "catalogue reload failed (source=tasks.json, reload.attempt=2)"
	if first.Summary != expected || first.Level != slog.LevelWarn {
		t.Errorf("first = %+v, expected %q at WARN", first, expected)
	}
	second := sender.messages[1].(logRecordMsg)
	if second.Summary != "export failed" || second.Level != slog.LevelError {
		t.Errorf("second = %+v", second)
	}
}

func TestTUILogHandler_DerivedShareProgram(t *testing.T) {
	handler := NewTUILogHandler(slog.LevelDebug)
	derived := slog.New(handler).With("component", "watcher")

	sender := &recordingSender{}
	handler.SetProgram(sender)
	derived.Debug("tick")

	if len(sender.messages) != 1 {
		t.Fatalf("derived handler did not see SetProgram, got %d messages", len(sender.messages))
	}
}
