// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package session holds the browsing state of a single user over a
// loaded catalogue: the current query, the set of expanded categories,
// and the selected task.
//
// Transitions are plain functions from one [State] to the next
// ([SetQuery], [ToggleCategory], [SelectTask], [Reload]), so earlier
// states are never mutated and a failed transition returns its input
// unchanged. [Reduce] dispatches the same transitions from [Intent]
// values, and [Session] pairs a state with its catalogue for shells that
// prefer an object with methods.
//
// [BuildView] turns a state into the rows a shell renders. The package
// never draws anything itself: shells implement [ViewSink] to present a
// [View] and [ExportSink] to deliver an [Artifact] (clipboard, file,
// standard output).
package session
