// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package browser

import (
	"errors"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/playbook/lib/config"
	"github.com/bureau-foundation/playbook/lib/session"
)

// copyPrompt copies the selected task's prompt text.
func (model *Model) copyPrompt() tea.Cmd {
	artifact, err := session.BuildArtifact(
		model.session.Catalogue(), model.session.State(),
		session.PromptText, model.options.Provenance,
	)
	if errors.Is(err, session.ErrNoSelection) {
		return model.setNotice("Select a task to copy", true)
	}
	if err != nil {
		return model.setNotice("Copy failed: "+err.Error(), true)
	}
	return copyCommand(model.options.Clipboard, string(artifact.Content), "prompt for "+artifact.Task)
}

// export writes an artifact through the directory sink. Files are
// small, so the write happens inline on the event loop.
func (model *Model) export(kind session.ArtifactKind) tea.Cmd {
	if model.options.Exports == nil {
		return model.setNotice("Exports are disabled", true)
	}
	artifact, err := model.session.Export(kind, model.options.Provenance, model.options.Exports)
	if errors.Is(err, session.ErrNoSelection) {
		return model.setNotice("Select a task to export", true)
	}
	if err != nil {
		return model.setNotice("Export failed: "+err.Error(), true)
	}

	location := artifact.Filename
	if path := model.options.Exports.LastPath; path != "" {
		location = filepath.Base(path)
	}
	return model.setNotice("Exported "+location, false)
}

// toggleTheme switches between the light and dark themes and saves the
// choice to the preferences file in the background.
func (model *Model) toggleTheme() tea.Cmd {
	model.theme = model.theme.Toggled()
	model.detailPane.SetTheme(model.theme)
	notice := model.setNotice("Theme: "+model.theme.Name, false)

	path := model.options.PreferencesFile
	if path == "" {
		return notice
	}
	theme := model.theme.Name
	save := func() tea.Msg {
		err := config.SavePreferences(path, config.Preferences{Theme: theme})
		return preferencesSavedMsg{theme: theme, err: err}
	}
	return tea.Batch(notice, save)
}
