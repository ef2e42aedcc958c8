// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/playbook/lib/atomicfile"
)

// Preferences holds settings the browser changes at runtime.
type Preferences struct {
	// Theme is "dark" or "light". Empty means no preference was saved.
	Theme string `yaml:"theme,omitempty"`
}

// LoadPreferences reads preferences from path. A missing file yields
// zero preferences.
func LoadPreferences(path string) (Preferences, error) {
	var preferences Preferences
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return preferences, nil
	}
	if err != nil {
		return preferences, err
	}
	if err := yaml.Unmarshal(data, &preferences); err != nil {
		return Preferences{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return preferences, nil
}

// SavePreferences writes preferences to path atomically, creating the
// parent directory when needed.
func SavePreferences(path string, preferences Preferences) error {
	data, err := yaml.Marshal(preferences)
	if err != nil {
		return err
	}
	return atomicfile.WriteAll(path, data, 0o644)
}
