// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package browser

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the browser.
type KeyMap struct {
	// Navigation. In the detail pane these scroll instead.
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding // Collapse the category / go to its header.
	Right    key.Binding // Expand the category / enter its first task.
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	Toggle      key.Binding // Expand or collapse the category under the cursor.
	FocusToggle key.Binding

	Search      key.Binding // Focus the query bar.
	ClearSearch key.Binding

	CopyPrompt      key.Binding
	ExportTask      key.Binding
	ExportCatalogue key.Binding
	ExportPrompt    key.Binding

	ToggleTheme key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "collapse"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "expand"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("C-d", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "enter"),
		key.WithHelp("space", "toggle"),
	),
	FocusToggle: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "switch pane"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	ClearSearch: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "clear search"),
	),
	CopyPrompt: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy prompt"),
	),
	ExportTask: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export task"),
	),
	ExportCatalogue: key.NewBinding(
		key.WithKeys("E"),
		key.WithHelp("E", "export all"),
	),
	ExportPrompt: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "export prompt"),
	),
	ToggleTheme: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "theme"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp returns the bindings shown on the help line, in order.
func (keys KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		keys.Quit, keys.Up, keys.Toggle, keys.FocusToggle, keys.Search,
		keys.CopyPrompt, keys.ExportTask, keys.ExportCatalogue,
		keys.ExportPrompt, keys.ToggleTheme,
	}
}
