// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides shared terminal rendering pieces for playbook's
// interactive browser: the dark and light color themes, a scrollbar,
// character-level match highlighting, and ANSI-aware overlay splicing
// for transient notices.
//
// Everything here is pure rendering over lipgloss and x/ansi. The
// browser owns layout, state, and key handling.
package tui
