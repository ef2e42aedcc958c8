// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package browser

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Clipboard places text on the user's clipboard.
type Clipboard func(text string) error

// clipboardResultMsg reports the outcome of a copy.
type clipboardResultMsg struct {
	Label string
	Err   error
}

// TerminalClipboard copies text with the OSC 52 escape sequence,
// written directly to /dev/tty so it bypasses bubbletea's renderer. The
// sequence has no visible effect, so writing it alongside the TUI is
// safe.
func TerminalClipboard(text string) error {
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	defer tty.Close()

	_, err = tty.WriteString(osc52Sequences(text, insideTmux()))
	return err
}

// insideTmux checks $TMUX for a local session and the $TERM prefix for
// one forwarded over SSH.
func insideTmux() bool {
	term := os.Getenv("TERM")
	return os.Getenv("TMUX") != "" ||
		strings.HasPrefix(term, "tmux") ||
		strings.HasPrefix(term, "screen")
}

// osc52Sequences returns the bytes that set the clipboard to text. BEL
// terminates the OSC because it survives SSH and multiplexer layers
// intact. Inside tmux the sequence is sent twice: wrapped in DCS
// passthrough (allow-passthrough on) and bare (set-clipboard on).
func osc52Sequences(text string, tmux bool) string {
	osc52 := "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte(text)) + "\x07"
	if !tmux {
		return osc52
	}
	return "\x1bPtmux;\x1b" + osc52 + "\x1b\\" + osc52
}

// copyCommand runs clipboard off the event loop and reports back with
// a clipboardResultMsg carrying label.
func copyCommand(clipboard Clipboard, text, label string) tea.Cmd {
	return func() tea.Msg {
		return clipboardResultMsg{Label: label, Err: clipboard(text)}
	}
}
