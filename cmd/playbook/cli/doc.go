// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the playbook CLI.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a parameter struct whose tagged
// fields become flags (see [BindFlags]), and a Run function. Commands are
// assembled into a tree in cmd/playbook/commands and dispatched via
// [Command.Execute], which handles flag parsing, subcommand routing, and
// structured help output with examples.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3). Commands reuse the same
// matcher through [Suggest] for unknown category and task names.
//
// Errors returned by commands are categorized with [ToolError]
// ([Validation], [NotFound], [Internal]) and may carry a hint for the
// user. [ExitError] requests a specific exit code without printing a
// message.
package cli
