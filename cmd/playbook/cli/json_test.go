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

func TestEmitJSON(t *testing.T) {
	var output bytes.Buffer

	disabled := JSONOutput{}
	done, err := disabled.EmitJSON(&output, []string{"a"})
	if done || err != nil || output.Len() != 0 {
		t.Errorf("without --json: done=%v err=%v output=%q", done, err, output.String())
	}

	enabled := JSONOutput{OutputJSON: true}
	var nothing []string
	done, err = enabled.EmitJSON(&output, nothing)
	if !done || err != nil {
		t.Fatalf("with --json: done=%v err=%v", done, err)
	}
	if strings.TrimSpace(output.String()) != "[]" {
		t.Errorf("nil slice = %q, want []", output.String())
	}
}

func TestWriteJSONIndents(t *testing.T) {
	var output bytes.Buffer
	if err := WriteJSON(&output, map[string]int{"tasks": 2}); err != nil {
		t.Fatal(err)
	}
	if output.String() != "{\n  \"tasks\": 2\n}\n" {
		t.Errorf("output = %q", output.String())
	}
}

func TestFanoutHandler(t *testing.T) {
	var warnings, everything bytes.Buffer
	handler := FanoutHandler{
		slog.NewTextHandler(&warnings, &slog.HandlerOptions{Level: slog.LevelWarn}),
		slog.NewTextHandler(&everything, &slog.HandlerOptions{Level: slog.LevelDebug}),
	}
	logger := slog.New(handler).With("source", "tasks.json")

	if !handler.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("fanout should be enabled when any handler is")
	}

	logger.Info("catalogue loaded")
	logger.Warn("reload failed")

	if strings.Contains(warnings.String(), "catalogue loaded") {
		t.Error("info record reached the warn-level handler")
	}
	if !strings.Contains(warnings.String(), "reload failed") {
		t.Error("warn record missing from the warn-level handler")
	}
	if strings.Count(everything.String(), "source=tasks.json") != 2 {
		t.Errorf("debug handler output = %q, want both records with attrs", everything.String())
	}
}
