// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"bytes"
	"runtime/debug"
	"strings"
	"testing"
)

func TestBuildString(t *testing.T) {
	build := Build{Version: "1.2.0", Commit: "abc1234", BuildTime: "2026-10-01T00:00:00Z"}
	if got := build.String(); got != "1.2.0 (abc1234, 2026-10-01T00:00:00Z)" {
		t.Errorf("String() = %q", got)
	}
	build.Dirty = true
	if got := build.String(); !strings.Contains(got, "abc1234-dirty") {
		t.Errorf("dirty String() = %q", got)
	}
}

func TestApplyBuildSettings(t *testing.T) {
	settings := []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef0123"},
		{Key: "vcs.modified", Value: "true"},
		{Key: "vcs.time", Value: "2026-09-30T12:00:00Z"},
	}

	build := Build{Commit: "unknown", BuildTime: "unknown"}
	applyBuildSettings(&build, settings)
	if build.Commit != "0123456789ab" || !build.Dirty || build.BuildTime != "2026-09-30T12:00:00Z" {
		t.Errorf("build = %+v", build)
	}

	injected := Build{Commit: "feedbee", BuildTime: "now"}
	applyBuildSettings(&injected, settings)
	if injected.Commit != "feedbee" || injected.Dirty || injected.BuildTime != "now" {
		t.Errorf("ldflags values should win, got %+v", injected)
	}
}

func TestFprint(t *testing.T) {
	var output bytes.Buffer
	Fprint(&output, "playbook")
	text := output.String()
	if !strings.HasPrefix(text, "playbook "+Version) {
		t.Errorf("output %q does not start with the binary and version", text)
	}
	if !strings.Contains(text, "Go: ") || !strings.Contains(text, "Platform: ") {
		t.Errorf("output %q is missing runtime details", text)
	}
}
