// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for playbook packages.
//
// [RequireReceive], [RequireNoReceive], and [RequireClosed] encapsulate
// the timeout safety valve pattern (select with time.After fallback) so
// that individual tests do not need direct time.After calls. The
// catalogue watcher and the browser's asynchronous commands are tested
// through them.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil
