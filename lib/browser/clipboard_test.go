// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package browser

import (
	"errors"
	"testing"
)

func TestOSC52Sequences(t *testing.T) {
	// base64("hi") = "aGk="
	direct := "\x1b]52;c;aGk=\x07"

	if got := osc52Sequences("hi", false); got != direct {
		t.Errorf("without tmux = %q, expected %q", got, direct)
	}

	wrapped := "\x1bPtmux;\x1b" + direct + "\x1b\\" + direct
	if got := osc52Sequences("hi", true); got != wrapped {
		t.Errorf("inside tmux = %q, expected %q", got, wrapped)
	}
}

func TestInsideTmux(t *testing.T) {
	tests := []struct {
		tmux, term string
		expected   bool
	}{
		{"", "xterm-256color", false},
		{"/tmp/tmux-1000/default,123,0", "xterm-256color", true},
		{"", "tmux-256color", true},
		{"", "screen", true},
	}
	for _, test := range tests {
		t.Setenv("TMUX", test.tmux)
		t.Setenv("TERM", test.term)
		if got := insideTmux(); got != test.expected {
			t.Errorf("TMUX=%q TERM=%q: insideTmux() = %v", test.tmux, test.term, got)
		}
	}
}

func TestCopyCommand(t *testing.T) {
	failure := errors.New("no terminal")
	var received string
	command := copyCommand(func(text string) error {
		received = text
		return failure
	}, "payload", "prompt")

	result, ok := command().(clipboardResultMsg)
	if !ok {
		t.Fatal("copyCommand should produce a clipboardResultMsg")
	}
	if received != "payload" || result.Label != "prompt" || !errors.Is(result.Err, failure) {
		t.Errorf("received=%q result=%+v", received, result)
	}
}
