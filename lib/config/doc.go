// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for playbook.
//
// Configuration is loaded from a single file named by either the
// PLAYBOOK_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). [Resolve] picks between the two and falls back to
// [Default] only when neither names a file. There is no ~/.config
// discovery and no automatic file search, and environment variables
// never override individual values.
//
// Variable expansion is performed on path fields after loading:
// ${HOME}, ${XDG_STATE_HOME}, and ${VAR:-default} patterns are
// expanded.
//
// [Preferences] is separate from the configuration: it holds the
// single value the browser persists (the theme) and is rewritten
// atomically whenever the user toggles it.
package config
