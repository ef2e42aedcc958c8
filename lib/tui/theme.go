// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for the browser. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Name is the preference value that selects the theme.
	Name string

	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Category headers. MatchedHeader is used when the category name
	// itself matched the query.
	HeaderForeground lipgloss.Color
	MatchedHeader    lipgloss.Color

	// UI chrome.
	BorderColor lipgloss.Color
	HelpText    lipgloss.Color
	Accent      lipgloss.Color

	// Background tint for characters covered by the query.
	MatchHighlightBackground lipgloss.Color

	// Transient notices (copied, exported) and load failures.
	NoticeForeground lipgloss.Color
	NoticeBackground lipgloss.Color
	ErrorForeground  lipgloss.Color

	// CodeStyle is the chroma style for fenced code in descriptions.
	CodeStyle string
}

// DarkTheme is the default scheme for terminals with a dark background.
var DarkTheme = Theme{
	Name: "dark",

	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	HeaderForeground: lipgloss.Color("255"),
	MatchedHeader:    lipgloss.Color("220"), // amber

	BorderColor: lipgloss.Color("240"),
	HelpText:    lipgloss.Color("241"),
	Accent:      lipgloss.Color("75"), // blue

	MatchHighlightBackground: lipgloss.Color("58"), // dark amber

	NoticeForeground: lipgloss.Color("255"),
	NoticeBackground: lipgloss.Color("24"),
	ErrorForeground:  lipgloss.Color("203"),

	CodeStyle: "monokai",
}

// LightTheme is the scheme for terminals with a light background.
var LightTheme = Theme{
	Name: "light",

	NormalText: lipgloss.Color("235"),
	FaintText:  lipgloss.Color("243"),

	SelectedBackground: lipgloss.Color("254"),
	SelectedForeground: lipgloss.Color("232"),

	HeaderForeground: lipgloss.Color("232"),
	MatchedHeader:    lipgloss.Color("130"), // dark orange

	BorderColor: lipgloss.Color("250"),
	HelpText:    lipgloss.Color("244"),
	Accent:      lipgloss.Color("25"), // dark blue

	MatchHighlightBackground: lipgloss.Color("229"), // pale yellow

	NoticeForeground: lipgloss.Color("232"),
	NoticeBackground: lipgloss.Color("153"),
	ErrorForeground:  lipgloss.Color("160"),

	CodeStyle: "github",
}

// ThemeNamed returns the theme whose Name is name.
func ThemeNamed(name string) (Theme, error) {
	switch name {
	case DarkTheme.Name:
		return DarkTheme, nil
	case LightTheme.Name:
		return LightTheme, nil
	default:
		return Theme{}, fmt.Errorf("unknown theme %q (want %q or %q)", name, DarkTheme.Name, LightTheme.Name)
	}
}

// Toggled returns the other built-in theme.
func (theme Theme) Toggled() Theme {
	if theme.Name == LightTheme.Name {
		return DarkTheme
	}
	return LightTheme
}
