// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package browser is the interactive terminal shell over a
// session.Session.
//
// The screen has a query bar, a two-pane content area, and a help
// line. The left pane lists categories (▼ expanded, ▶ collapsed) with
// their visible tasks. The right pane shows the selected task: its
// description rendered from markdown and its numbered steps with
// shell highlighting.
//
// All catalogue logic lives in the session. The browser turns
// keystrokes into intents, debounces query edits, and redraws from the
// [session.View] the session renders into it. Exports go through a
// session.ExportSink; copying uses OSC 52 so it works over SSH.
//
// Catalogue reloads from a file watcher and slog records from
// [TUILogHandler] arrive as bubbletea messages, so the model is only
// ever touched from the bubbletea event loop.
package browser
