// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janderssonse/cinerec/internal/catalog"
	"github.com/janderssonse/cinerec/internal/domain"
	"github.com/janderssonse/cinerec/internal/resolve"
	"github.com/janderssonse/cinerec/internal/tui/styles"
	"github.com/janderssonse/cinerec/internal/view"
	"github.com/janderssonse/cinerec/internal/watchlist"
)

type stubExecutor struct {
	calls     []view.Request
	byKind    map[view.FetchKind][]domain.Movie
	searchErr error
}

func (s *stubExecutor) Execute(_ context.Context, req view.Request) view.Response {
	s.calls = append(s.calls, req)

	if req.Kind == view.FetchSearch && s.searchErr != nil {
		return view.Response{Request: req, Err: s.searchErr}
	}

	return view.Response{Request: req, Movies: s.byKind[req.Kind]}
}

func (s *stubExecutor) last() view.Request {
	return s.calls[len(s.calls)-1]
}

type recordingCopier struct {
	text string
}

func (r *recordingCopier) Copy(text string) error {
	r.text = text

	return nil
}

func newTestBrowser(t *testing.T) (*Browser, *stubExecutor, *recordingCopier) {
	t.Helper()

	executor := &stubExecutor{byKind: map[view.FetchKind][]domain.Movie{
		view.FetchLanding: {
			{Title: "Dune", Genres: "Science Fiction Adventure", VoteAverage: 7.8},
			{Title: "Titanic", Genres: "Drama Romance", VoteAverage: 7.9},
			{Title: "Heat", Genres: "Action Crime Drama", VoteAverage: 7.9},
		},
		view.FetchMarquee: {
			{Title: "Avatar", PosterPath: "/a.jpg"},
			{Title: "Joker", PosterPath: "/j.jpg"},
		},
		view.FetchSearch: {
			{Title: "Inception", Genres: "Action Science Fiction", IsSearched: true},
			{Title: "Interstellar", Genres: "Adventure Drama"},
		},
		view.FetchCategoryFallback: {
			{Title: "The Conjuring", Genres: "Horror Thriller"},
		},
	}}
	copier := &recordingCopier{}

	cat := catalog.Default()
	machine := view.NewMachine(cat, resolve.New(cat), watchlist.New(), domain.DefaultCap)

	b := NewBrowser(context.Background(), BrowserOptions{
		Machine:  machine,
		Executor: executor,
		Copier:   copier,
		Logger:   zerolog.Nop(),
		Theme:    styles.Dark,
	})
	b.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	drain(b, b.Init())

	return b, executor, copier
}

// drain runs cmd and feeds the messages the browser cares about back into it.
func drain(b *Browser, cmd tea.Cmd) {
	if cmd == nil {
		return
	}

	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			drain(b, c)
		}
	case ResponseMsg, ShareResultMsg, CloseDetailMsg:
		_, next := b.Update(msg)
		drain(b, next)
	}
}

func press(b *Browser, keys ...string) tea.Cmd {
	var cmd tea.Cmd

	for _, k := range keys {
		var msg tea.KeyMsg

		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "shift+tab":
			msg = tea.KeyMsg{Type: tea.KeyShiftTab}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}

		_, cmd = b.Update(msg)
	}

	return cmd
}

func titles(movies []domain.Movie) []string {
	out := make([]string, len(movies))
	for i, m := range movies {
		out[i] = m.Title
	}

	return out
}

func TestBrowserInitLoadsLandingAndMarquee(t *testing.T) {
	t.Parallel()

	b, executor, _ := newTestBrowser(t)

	state := b.State()
	assert.Equal(t, domain.ModeLanding, state.Mode)
	assert.Equal(t, view.LabelLanding, state.Label)
	assert.False(t, state.Loading)
	assert.Equal(t, []string{"Dune", "Titanic", "Heat"}, titles(state.Movies))
	assert.Equal(t, []string{"Avatar", "Joker"}, titles(state.Marquee))
	assert.Len(t, executor.calls, 2)

	out := b.View()
	assert.Contains(t, out, "CineRec")
	assert.Contains(t, out, "Popular")
	assert.Contains(t, out, "3 films")
}

func TestBrowserSearch(t *testing.T) {
	t.Parallel()

	b, executor, _ := newTestBrowser(t)

	press(b, "/")
	require.True(t, b.Searching())

	press(b, "c", "o", "b", "b")
	drain(b, press(b, "enter"))

	assert.False(t, b.Searching())
	assert.Equal(t, view.FetchSearch, executor.last().Kind)
	assert.Equal(t, []string{"Inception"}, executor.last().Seeds)

	state := b.State()
	assert.Equal(t, domain.ModeSearched, state.Mode)
	assert.Equal(t, "Inception", state.Label)
	assert.Equal(t, "cobb", state.ResolvedFrom)
	assert.Equal(t, "Inception", state.Movies[0].Title)
	assert.True(t, state.Movies[0].IsSearched)
}

func TestBrowserSearchNotFound(t *testing.T) {
	t.Parallel()

	b, executor, _ := newTestBrowser(t)
	executor.searchErr = domain.ErrTitleNotFound

	press(b, "/", "x", "y", "z")
	drain(b, press(b, "enter"))

	state := b.State()
	require.ErrorIs(t, state.Notice, domain.ErrSearchNotFound)
	assert.Empty(t, state.Movies)
	assert.Contains(t, b.View(), "Movie not found")
}

func TestBrowserEmptySearchIsRejected(t *testing.T) {
	t.Parallel()

	b, executor, _ := newTestBrowser(t)

	press(b, "/", " ")
	cmd := press(b, "enter")

	assert.Nil(t, cmd)
	assert.True(t, b.Searching())
	assert.Len(t, executor.calls, 2)
	assert.Equal(t, "Type a movie title first", b.Status())

	press(b, "esc")
	assert.False(t, b.Searching())
}

func TestBrowserQuickPickChip(t *testing.T) {
	t.Parallel()

	b, executor, _ := newTestBrowser(t)

	drain(b, press(b, "2"))

	assert.Equal(t, []string{"Titanic"}, executor.last().Seeds)
	assert.Equal(t, "Titanic", b.State().Label)
	assert.Empty(t, b.State().ResolvedFrom)
}

func TestBrowserCategoryCycling(t *testing.T) {
	t.Parallel()

	b, executor, _ := newTestBrowser(t)

	drain(b, press(b, "tab"))

	state := b.State()
	assert.Equal(t, domain.ModeCategory, state.Mode)
	assert.Equal(t, "Action", state.Label)
	assert.Equal(t, []string{"Heat"}, titles(state.Movies))
	assert.Len(t, executor.calls, 2, "local match needs no fetch")

	drain(b, press(b, "shift+tab"))
	assert.Equal(t, domain.ModeLanding, b.State().Mode)
	assert.Equal(t, view.FetchLanding, executor.last().Kind)
}

func TestBrowserCategoryFallback(t *testing.T) {
	t.Parallel()

	b, executor, _ := newTestBrowser(t)

	horror, err := catalog.Default().CategoryIndex("Horror")
	require.NoError(t, err)

	cmd := b.selectCategory(horror)
	require.NotNil(t, cmd)
	assert.True(t, b.State().Loading)

	drain(b, cmd)

	assert.Equal(t, view.FetchCategoryFallback, executor.last().Kind)
	assert.Equal(t, "Horror", b.State().Label)
	assert.Equal(t, []string{"The Conjuring"}, titles(b.State().Movies))
}

func TestBrowserCursorMovement(t *testing.T) {
	t.Parallel()

	b, _, _ := newTestBrowser(t)
	require.Equal(t, 2, b.columns())

	press(b, "down")
	assert.Equal(t, 2, b.Cursor())

	press(b, "down")
	assert.Equal(t, 2, b.Cursor(), "cursor stays on the last card")

	press(b, "h")
	assert.Equal(t, 1, b.Cursor())

	movie, ok := b.Selected()
	require.True(t, ok)
	assert.Equal(t, "Titanic", movie.Title)
}

func TestBrowserWatchlistFocus(t *testing.T) {
	t.Parallel()

	b, _, _ := newTestBrowser(t)

	press(b, "W")
	assert.Equal(t, domain.ModeLanding, b.State().Mode)
	assert.Contains(t, b.Status(), "watchlist is empty")

	press(b, "l", "w")
	assert.Equal(t, 1, b.State().WatchlistSize)
	assert.Contains(t, b.Status(), "Added Titanic")

	press(b, "W")
	state := b.State()
	assert.Equal(t, domain.ModeWatchlistFocus, state.Mode)
	assert.Equal(t, view.LabelWatchlist, state.Label)
	assert.Equal(t, []string{"Titanic"}, titles(state.Movies))
	assert.Equal(t, 0, b.Cursor())

	press(b, "W")
	assert.Equal(t, domain.ModeLanding, b.State().Mode)
	assert.Len(t, b.State().Movies, 3)
}

func TestBrowserFlashClearsOnNextKey(t *testing.T) {
	t.Parallel()

	b, _, _ := newTestBrowser(t)

	press(b, "W")
	require.Contains(t, b.Status(), "watchlist is empty")
	assert.Contains(t, b.View(), "watchlist is empty")

	press(b, "l")
	assert.Empty(t, b.Status())
	assert.NotContains(t, b.View(), "watchlist is empty")

	press(b, "w")
	require.Contains(t, b.Status(), "Added")

	press(b, "h")
	assert.Empty(t, b.Status())
}

func TestBrowserDetailView(t *testing.T) {
	t.Parallel()

	b, _, _ := newTestBrowser(t)

	press(b, "enter")
	require.True(t, b.DetailOpen())
	assert.Contains(t, b.View(), "Dune")

	press(b, "w")
	assert.Equal(t, 1, b.State().WatchlistSize)
	assert.Contains(t, b.View(), "in watchlist")

	drain(b, press(b, "esc"))
	assert.False(t, b.DetailOpen())
}

func TestBrowserShare(t *testing.T) {
	t.Parallel()

	b, _, copier := newTestBrowser(t)

	drain(b, press(b, "s"))

	assert.Equal(t, "Check out Dune on CineRec", copier.text)
	assert.Equal(t, "Copied share text for Dune", b.Status())
}

func TestBrowserShareFailure(t *testing.T) {
	t.Parallel()

	b, _, _ := newTestBrowser(t)

	_, _ = b.Update(ShareResultMsg{Title: "Dune", Err: errors.New("no display")})
	assert.Contains(t, b.Status(), "Could not copy")
}

func TestBrowserThemeToggle(t *testing.T) {
	t.Parallel()

	b, _, _ := newTestBrowser(t)
	require.Equal(t, styles.Dark, b.Theme())

	cmd := press(b, "t")
	require.NotNil(t, cmd)
	assert.IsType(t, ThemeChangedMsg{}, cmd())
	assert.Equal(t, styles.Light, b.Theme())
}

func TestBrowserQuit(t *testing.T) {
	t.Parallel()

	b, _, _ := newTestBrowser(t)

	cmd := press(b, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestBrowserStaleResponseIgnored(t *testing.T) {
	t.Parallel()

	b, _, _ := newTestBrowser(t)

	stale := view.Response{
		Request: view.Request{Generation: 0, Kind: view.FetchLanding},
		Movies:  []domain.Movie{{Title: "Old"}},
	}
	_, _ = b.Update(ResponseMsg{Response: stale})

	assert.NotContains(t, titles(b.State().Movies), "Old")
}
