// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/janderssonse/cinerec/internal/domain"
	"github.com/janderssonse/cinerec/internal/share"
	"github.com/janderssonse/cinerec/internal/tui/styles"
)

const (
	detailMaxWrap    = 100
	detailChrome     = 4 // title bar and footer
	detailMinHeight  = 3
	detailWrapMargin = 4
)

// DetailKeyMap defines key bindings for the detail view.
type DetailKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	ToggleWatch key.Binding
	Share       key.Binding
	Back        key.Binding
}

// DefaultDetailKeyMap returns the default key bindings.
func DefaultDetailKeyMap() DetailKeyMap {
	return DetailKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		ToggleWatch: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "watchlist +/-"),
		),
		Share: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "share"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "q", "backspace"),
			key.WithHelp("esc", "back"),
		),
	}
}

// Detail shows a single movie rendered as markdown.
type Detail struct {
	styles   *styles.Styles
	movie    domain.Movie
	watched  bool
	width    int
	height   int
	viewport viewport.Model
	keyMap   DetailKeyMap
}

// NewDetail creates the detail view of movie.
func NewDetail(styleConfig *styles.Styles, movie domain.Movie, watched bool, width, height int) *Detail {
	d := &Detail{
		styles:  styleConfig,
		movie:   movie,
		watched: watched,
		keyMap:  DefaultDetailKeyMap(),
	}
	d.resize(width, height)

	return d
}

// Movie returns the movie shown.
func (d *Detail) Movie() domain.Movie {
	return d.movie
}

// SetWatched updates the watchlist marker.
func (d *Detail) SetWatched(watched bool) {
	d.watched = watched
}

// Init implements tea.Model.
func (d *Detail) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. Watchlist and share keys are left to the
// browser, which owns the watchlist and the clipboard.
func (d *Detail) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.resize(msg.Width, msg.Height)

		return d, nil
	case tea.KeyMsg:
		if key.Matches(msg, d.keyMap.Back) {
			return d, func() tea.Msg { return CloseDetailMsg{} }
		}
	}

	var cmd tea.Cmd

	d.viewport, cmd = d.viewport.Update(msg)

	return d, cmd
}

// View implements tea.Model.
func (d *Detail) View() string {
	marker := "♡ not in watchlist"
	if d.watched {
		marker = "♥ in watchlist"
	}

	title := lipgloss.JoinHorizontal(lipgloss.Top,
		d.styles.Header.Render(d.movie.Title),
		"  ",
		d.styles.MutedText.Render(marker),
	)

	footer := RenderFooter(d.styles, d.width-detailWrapMargin, []FooterAction{
		{Key: "↑/↓", Action: "scroll"},
		{Key: "w", Action: "watchlist"},
		{Key: "s", Action: "share"},
		{Key: "esc", Action: "back"},
	})

	return lipgloss.JoinVertical(lipgloss.Left, title, d.viewport.View(), footer)
}

func (d *Detail) resize(width, height int) {
	d.width = width
	d.height = height

	vpHeight := max(height-detailChrome, detailMinHeight)
	d.viewport = viewport.New(max(width, 1), vpHeight)
	d.viewport.SetContent(d.render())
}

func (d *Detail) render() string {
	markdown := share.Markdown(d.movie)

	wrap := min(max(d.width-detailWrapMargin, 20), detailMaxWrap)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(d.styles.Theme.String()),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return markdown
	}

	rendered, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}

	return strings.TrimRight(rendered, "\n")
}
