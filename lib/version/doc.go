// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports the build version of the playbook binary.
//
// [GitCommit], [GitDirty], [BuildTime] and [Version] are injected with
// -ldflags -X. When they are not injected (go install, test runs) the
// commit, dirty flag and build time come from the VCS stamp the Go
// toolchain embeds in the binary, if any.
package version
