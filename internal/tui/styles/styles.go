// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package styles defines consistent visual styling for TUI components.
package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme selects a palette.
type Theme int

// Available themes.
const (
	Dark Theme = iota
	Light
)

// String returns the theme name, also used as the glamour style name.
func (t Theme) String() string {
	if t == Light {
		return "light"
	}

	return "dark"
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == Light {
		return Dark
	}

	return Light
}

type palette struct {
	primary    lipgloss.Color
	secondary  lipgloss.Color
	success    lipgloss.Color
	warning    lipgloss.Color
	errorColor lipgloss.Color
	info       lipgloss.Color
	muted      lipgloss.Color
	background lipgloss.Color
	foreground lipgloss.Color
}

// Tokyo Night and its day variant.
func paletteFor(theme Theme) palette {
	if theme == Light {
		return palette{
			primary:    lipgloss.Color("#2e7de9"),
			secondary:  lipgloss.Color("#9854f1"),
			success:    lipgloss.Color("#587539"),
			warning:    lipgloss.Color("#8c6c3e"),
			errorColor: lipgloss.Color("#f52a65"),
			info:       lipgloss.Color("#007197"),
			muted:      lipgloss.Color("#848cb5"),
			background: lipgloss.Color("#e1e2e7"),
			foreground: lipgloss.Color("#3760bf"),
		}
	}

	return palette{
		primary:    lipgloss.Color("#7aa2f7"),
		secondary:  lipgloss.Color("#bb9af7"),
		success:    lipgloss.Color("#9ece6a"),
		warning:    lipgloss.Color("#e0af68"),
		errorColor: lipgloss.Color("#f7768e"),
		info:       lipgloss.Color("#7dcfff"),
		muted:      lipgloss.Color("#565f89"),
		background: lipgloss.Color("#1a1b26"),
		foreground: lipgloss.Color("#c0caf5"),
	}
}

// Styles contains all the styles used in the TUI.
type Styles struct {
	Theme Theme

	// Color palette
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Info      lipgloss.Color
	Muted     lipgloss.Color

	// Component styles
	Header     lipgloss.Style
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Card       lipgloss.Style
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Chip       lipgloss.Style
	ActiveChip lipgloss.Style
	Marquee    lipgloss.Style
	Border     lipgloss.Style

	// Text styles (cached for performance)
	MutedText   lipgloss.Style
	PrimaryText lipgloss.Style
	SuccessText lipgloss.Style
	ErrorText   lipgloss.Style
	WarningText lipgloss.Style

	Container lipgloss.Style
}

// New creates a Styles instance for theme.
func New(theme Theme) *Styles {
	p := paletteFor(theme)

	return &Styles{
		Theme:     theme,
		Primary:   p.primary,
		Secondary: p.secondary,
		Success:   p.success,
		Warning:   p.warning,
		Error:     p.errorColor,
		Info:      p.info,
		Muted:     p.muted,

		Header: lipgloss.NewStyle().
			Background(p.primary).
			Foreground(p.background).
			Bold(true).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(p.secondary).
			Italic(true),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.muted).
			Padding(0, 1),

		Selected: lipgloss.NewStyle().
			Background(p.primary).
			Foreground(p.background).
			Padding(0, 1),

		Unselected: lipgloss.NewStyle().
			Foreground(p.foreground).
			Padding(0, 1),

		Chip: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(0, 1),

		ActiveChip: lipgloss.NewStyle().
			Foreground(p.background).
			Background(p.secondary).
			Bold(true).
			Padding(0, 1),

		Marquee: lipgloss.NewStyle().
			Foreground(p.info).
			Italic(true),

		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.primary),

		MutedText:   lipgloss.NewStyle().Foreground(p.muted),
		PrimaryText: lipgloss.NewStyle().Foreground(p.primary),
		SuccessText: lipgloss.NewStyle().Foreground(p.success),
		ErrorText:   lipgloss.NewStyle().Foreground(p.errorColor),
		WarningText: lipgloss.NewStyle().Foreground(p.warning),

		Container: lipgloss.NewStyle().
			Padding(0, 2),
	}
}

// Logo returns the styled application name.
func (s *Styles) Logo() string {
	return s.Title.Render("🎬 CineRec")
}

// Rating renders a vote average with a star, colored by how good it is.
func (s *Styles) Rating(vote float64) string {
	style := s.MutedText

	switch {
	case vote >= 7.5:
		style = s.SuccessText
	case vote >= 6:
		style = s.WarningText
	case vote > 0:
		style = s.ErrorText
	}

	return style.Render(fmt.Sprintf("★ %.1f", vote))
}

// Keybinding returns styled keybinding text.
func (s *Styles) Keybinding(key, desc string) string {
	keyStyle := lipgloss.NewStyle().
		Foreground(s.Primary).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(s.Muted)

	return keyStyle.Render("["+key+"]") + " " + descStyle.Render(desc)
}
