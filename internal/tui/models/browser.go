// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog"

	"github.com/janderssonse/cinerec/internal/domain"
	"github.com/janderssonse/cinerec/internal/share"
	"github.com/janderssonse/cinerec/internal/tui/styles"
	"github.com/janderssonse/cinerec/internal/view"
)

// Layout constants.
const (
	cardWidth      = 30
	cardGap        = 1
	cardHeight     = 5 // including border
	chromeHeight   = 9 // header, input, chips, categories, marquee, footer
	marqueeSpeed   = 250 * time.Millisecond
	marqueeDivider = "  ·  "
)

// Executor performs view requests. *view.Dispatcher satisfies it.
type Executor interface {
	Execute(ctx context.Context, req view.Request) view.Response
}

// Browser is the main screen: search bar, chips, categories and the movie grid.
//
//nolint:containedctx // requests issued from Update need the program context
type Browser struct {
	ctx      context.Context
	machine  *view.Machine
	executor Executor
	copier   share.Copier
	logger   zerolog.Logger

	styles  *styles.Styles
	keyMap  BrowserKeyMap
	help    help.Model
	input   textinput.Model
	spinner spinner.Model

	width  int
	height int

	state     view.State
	cursor    int
	searching bool
	detail    *Detail
	status    string
	statusErr bool
	offset    int // marquee scroll position in cells
}

// BrowserOptions configures a Browser.
type BrowserOptions struct {
	Machine  *view.Machine
	Executor Executor
	Copier   share.Copier
	Logger   zerolog.Logger
	Theme    styles.Theme
}

// NewBrowser creates the browse screen.
func NewBrowser(ctx context.Context, opts BrowserOptions) *Browser {
	input := textinput.New()
	input.Placeholder = "Search for a movie…"
	input.Prompt = "🔍 "
	input.CharLimit = 120

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	b := &Browser{
		ctx:      ctx,
		machine:  opts.Machine,
		executor: opts.Executor,
		copier:   opts.Copier,
		logger:   opts.Logger,
		keyMap:   DefaultBrowserKeyMap(),
		help:     help.New(),
		input:    input,
		spinner:  spin,
		width:    80,
		height:   24,
	}
	b.applyTheme(opts.Theme)
	b.state = b.machine.State()

	return b
}

// Init implements tea.Model. It issues the landing and marquee fetches.
func (b *Browser) Init() tea.Cmd {
	cmds := []tea.Cmd{b.spinner.Tick, marqueeTick()}
	for _, req := range b.machine.Start() {
		cmds = append(cmds, b.fetch(req))
	}

	b.sync()

	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.help.Width = msg.Width
		b.input.Width = max(msg.Width-10, 10)

		if b.detail != nil {
			b.detail.resize(msg.Width, msg.Height)
		}

		return b, nil

	case ResponseMsg:
		if !b.machine.Deliver(msg.Response) {
			b.logger.Debug().
				Str("kind", msg.Response.Request.Kind.String()).
				Uint64("generation", msg.Response.Request.Generation).
				Msg("dropped stale response")
		}

		b.sync()

		return b, nil

	case ShareResultMsg:
		if msg.Err != nil {
			b.flashError(fmt.Sprintf("Could not copy: %v", msg.Err))
		} else {
			b.flash(fmt.Sprintf("Copied share text for %s", msg.Title))
		}

		return b, nil

	case CloseDetailMsg:
		b.detail = nil

		return b, nil

	case marqueeTickMsg:
		b.offset++

		return b, marqueeTick()

	case spinner.TickMsg:
		var cmd tea.Cmd

		b.spinner, cmd = b.spinner.Update(msg)

		return b, cmd

	case tea.KeyMsg:
		return b.handleKey(msg)
	}

	if b.searching {
		var cmd tea.Cmd

		b.input, cmd = b.input.Update(msg)

		return b, cmd
	}

	return b, nil
}

// handleKey routes a key press. A flash message lasts until the next key.
func (b *Browser) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b.status, b.statusErr = "", false

	if b.detail != nil {
		return b.handleDetailKey(msg)
	}

	if b.searching {
		return b.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, b.keyMap.Quit):
		return b, tea.Quit
	case key.Matches(msg, b.keyMap.Search):
		b.searching = true

		return b, b.input.Focus()
	case key.Matches(msg, b.keyMap.Up):
		b.moveCursor(-b.columns())
	case key.Matches(msg, b.keyMap.Down):
		b.moveCursor(b.columns())
	case key.Matches(msg, b.keyMap.Left):
		b.moveCursor(-1)
	case key.Matches(msg, b.keyMap.Right):
		b.moveCursor(1)
	case key.Matches(msg, b.keyMap.NextCategory):
		return b, b.selectCategory(b.state.CategoryIndex + 1)
	case key.Matches(msg, b.keyMap.PrevCategory):
		return b, b.selectCategory(b.state.CategoryIndex - 1)
	case key.Matches(msg, b.keyMap.Popular):
		return b, b.selectCategory(0)
	case key.Matches(msg, b.keyMap.Chip):
		return b, b.pickChip(msg.String())
	case key.Matches(msg, b.keyMap.ToggleWatch):
		b.toggleSelected()
	case key.Matches(msg, b.keyMap.WatchlistView):
		b.toggleFocus()
	case key.Matches(msg, b.keyMap.Open):
		if movie, ok := b.Selected(); ok {
			b.detail = NewDetail(b.styles, movie, b.machine.InWatchlist(movie.Title), b.width, b.height)
		}
	case key.Matches(msg, b.keyMap.Share):
		return b, b.shareSelected()
	case key.Matches(msg, b.keyMap.Theme):
		b.applyTheme(b.styles.Theme.Toggle())

		return b, func() tea.Msg { return ThemeChangedMsg{} }
	case key.Matches(msg, b.keyMap.Help):
		b.help.ShowAll = !b.help.ShowAll
	}

	return b, nil
}

func (b *Browser) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return b, tea.Quit
	case key.Matches(msg, b.keyMap.Cancel):
		b.searching = false
		b.input.Blur()

		return b, nil
	case key.Matches(msg, b.keyMap.Submit):
		return b, b.submit(b.input.Value())
	}

	var cmd tea.Cmd

	b.input, cmd = b.input.Update(msg)

	return b, cmd
}

func (b *Browser) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return b, tea.Quit
	case key.Matches(msg, b.detail.keyMap.ToggleWatch):
		movie := b.detail.Movie()
		b.detail.SetWatched(b.machine.ToggleItem(movie.Title))
		b.sync()

		return b, nil
	case key.Matches(msg, b.detail.keyMap.Share):
		return b, b.share(b.detail.Movie())
	}

	_, cmd := b.detail.Update(msg)

	return b, cmd
}

func (b *Browser) submit(query string) tea.Cmd {
	req, err := b.machine.Submit(query)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyQuery) {
			b.flashError("Type a movie title first")
		}

		return nil
	}

	b.searching = false
	b.input.Blur()
	b.cursor = 0
	b.sync()

	return b.fetch(req)
}

func (b *Browser) pickChip(digit string) tea.Cmd {
	n, err := strconv.Atoi(digit)
	chips := b.machine.Catalog().QuickPicks

	if err != nil || n < 1 || n > len(chips) {
		return nil
	}

	chip := chips[n-1]
	b.input.SetValue(chip)

	req, err := b.machine.PickChip(chip)
	if err != nil {
		return nil
	}

	b.cursor = 0
	b.sync()

	return b.fetch(req)
}

func (b *Browser) selectCategory(i int) tea.Cmd {
	n := len(b.machine.Catalog().Categories)
	if n == 0 {
		return nil
	}

	i = ((i % n) + n) % n

	req, err := b.machine.SelectCategory(i)
	if err != nil {
		b.flashError(err.Error())

		return nil
	}

	b.cursor = 0
	b.sync()

	if req == nil {
		return nil
	}

	return b.fetch(*req)
}

func (b *Browser) toggleSelected() {
	movie, ok := b.Selected()
	if !ok {
		return
	}

	if b.machine.ToggleItem(movie.Title) {
		b.flash(fmt.Sprintf("Added %s to your watchlist", movie.Title))
	} else {
		b.flash(fmt.Sprintf("Removed %s from your watchlist", movie.Title))
	}

	b.sync()
}

func (b *Browser) toggleFocus() {
	if err := b.machine.ToggleFocus(); err != nil {
		b.flashError("Your watchlist is empty: press w on a movie to add it")

		return
	}

	b.cursor = 0
	b.sync()
}

func (b *Browser) shareSelected() tea.Cmd {
	movie, ok := b.Selected()
	if !ok {
		return nil
	}

	return b.share(movie)
}

func (b *Browser) share(movie domain.Movie) tea.Cmd {
	copier := b.copier
	if copier == nil {
		copier = share.SystemClipboard{}
	}

	return func() tea.Msg {
		text, err := share.Copy(copier, movie)

		return ShareResultMsg{Title: movie.Title, Text: text, Err: err}
	}
}

func (b *Browser) fetch(req view.Request) tea.Cmd {
	ctx, executor := b.ctx, b.executor

	return func() tea.Msg {
		return ResponseMsg{Response: executor.Execute(ctx, req)}
	}
}

func marqueeTick() tea.Cmd {
	return tea.Tick(marqueeSpeed, func(time.Time) tea.Msg { return marqueeTickMsg{} })
}

// sync refreshes the cached snapshot and keeps the cursor in range.
func (b *Browser) sync() {
	b.state = b.machine.State()

	if n := len(b.state.Movies); b.cursor >= n {
		b.cursor = max(n-1, 0)
	}
}

func (b *Browser) moveCursor(delta int) {
	n := len(b.state.Movies)
	if n == 0 {
		return
	}

	b.cursor = min(max(b.cursor+delta, 0), n-1)
}

func (b *Browser) columns() int {
	return max((b.width-4)/(cardWidth+cardGap), 1)
}

func (b *Browser) flash(text string) {
	b.status = text
	b.statusErr = false
}

func (b *Browser) flashError(text string) {
	b.status = text
	b.statusErr = true
}

func (b *Browser) applyTheme(theme styles.Theme) {
	b.styles = styles.New(theme)
	b.input.PromptStyle = b.styles.PrimaryText
	b.spinner.Style = b.styles.PrimaryText

	if b.detail != nil {
		b.detail = NewDetail(b.styles, b.detail.Movie(), b.detail.watched, b.width, b.height)
	}
}

// State returns the last snapshot taken from the machine.
func (b *Browser) State() view.State {
	return b.state
}

// Cursor returns the index of the selected card.
func (b *Browser) Cursor() int {
	return b.cursor
}

// Selected returns the movie under the cursor.
func (b *Browser) Selected() (domain.Movie, bool) {
	if b.cursor < 0 || b.cursor >= len(b.state.Movies) {
		return domain.Movie{}, false
	}

	return b.state.Movies[b.cursor], true
}

// Searching reports whether the search input has focus.
func (b *Browser) Searching() bool {
	return b.searching
}

// DetailOpen reports whether the detail view is showing.
func (b *Browser) DetailOpen() bool {
	return b.detail != nil
}

// Status returns the last flash message.
func (b *Browser) Status() string {
	return b.status
}

// Theme returns the active theme.
func (b *Browser) Theme() styles.Theme {
	return b.styles.Theme
}

// View implements tea.Model.
func (b *Browser) View() string {
	if b.detail != nil {
		return b.detail.View()
	}

	sections := []string{
		b.renderHeader(),
		b.input.View(),
		b.renderChips(),
		b.renderCategories(),
		b.renderGrid(),
		b.renderMarquee(),
		b.help.View(b.keyMap),
	}

	return b.styles.Container.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (b *Browser) renderHeader() string {
	label := b.styles.Header.Render(b.state.Label)
	count := b.styles.MutedText.Render(filmCount(len(b.state.Movies)))

	parts := []string{b.styles.Logo(), "  ", label, " ", count}

	if b.state.Loading {
		parts = append(parts, " ", b.spinner.View())
	}

	if b.state.WatchlistSize > 0 {
		parts = append(parts, "  ", b.styles.WarningText.Render(fmt.Sprintf("♥ %d", b.state.WatchlistSize)))
	}

	lines := []string{lipgloss.JoinHorizontal(lipgloss.Top, parts...)}

	switch {
	case b.state.Notice != nil:
		lines = append(lines, b.styles.ErrorText.Render(fmt.Sprintf("Movie not found: %s", b.state.Label)))
	case b.state.ResolvedFrom != "":
		lines = append(lines, b.styles.Subtitle.Render(
			fmt.Sprintf("Showing results for %s (similar to %q)", b.state.Label, b.state.ResolvedFrom)))
	}

	if b.status != "" {
		style := b.styles.SuccessText
		if b.statusErr {
			style = b.styles.WarningText
		}

		lines = append(lines, style.Render(b.status))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (b *Browser) renderChips() string {
	chips := b.machine.Catalog().QuickPicks
	rendered := make([]string, 0, len(chips))

	for i, chip := range chips {
		style := b.styles.Chip
		if b.state.Mode == domain.ModeSearched && domain.SameTitle(chip, b.state.Label) {
			style = b.styles.ActiveChip
		}

		rendered = append(rendered, style.Render(fmt.Sprintf("%d %s", i+1, chip)))
	}

	return lipgloss.NewStyle().Width(max(b.width-4, 1)).Render(strings.Join(rendered, " "))
}

func (b *Browser) renderCategories() string {
	categories := b.machine.Catalog().Categories
	rendered := make([]string, 0, len(categories))

	active := -1
	if b.state.Mode == domain.ModeCategory || b.state.Mode == domain.ModeLanding {
		active = b.state.CategoryIndex
	}

	for i, cat := range categories {
		style := b.styles.Unselected
		if i == active {
			style = b.styles.Selected
		}

		rendered = append(rendered, style.Render(cat.Label))
	}

	return lipgloss.NewStyle().Width(max(b.width-4, 1)).Render(strings.Join(rendered, ""))
}

func (b *Browser) renderGrid() string {
	movies := b.state.Movies
	if len(movies) == 0 {
		switch {
		case b.state.Loading:
			return b.styles.MutedText.Render(b.spinner.View() + " Loading recommendations…")
		case b.state.Mode == domain.ModeWatchlistFocus:
			return b.styles.MutedText.Render("Nothing from your watchlist is in the current results.")
		default:
			return b.styles.MutedText.Render("No movies to show.")
		}
	}

	cols := b.columns()
	rowsVisible := max((b.height-chromeHeight)/cardHeight, 1)
	firstRow := max(b.cursor/cols-rowsVisible+1, 0)

	rows := make([]string, 0, rowsVisible)

	for row := firstRow; row < firstRow+rowsVisible; row++ {
		start := row * cols
		if start >= len(movies) {
			break
		}

		end := min(start+cols, len(movies))
		cards := make([]string, 0, end-start)

		for i := start; i < end; i++ {
			cards = append(cards, b.renderCard(movies[i], i == b.cursor))
		}

		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (b *Browser) renderCard(m domain.Movie, selected bool) string {
	inner := cardWidth - 4

	heart := "♡"
	if b.machine.InWatchlist(m.Title) {
		heart = "♥"
	}

	title := runewidth.Truncate(m.Title, inner-2, "…")
	if m.IsSearched {
		title = "▸ " + runewidth.Truncate(m.Title, inner-4, "…")
	}

	titleLine := runewidth.FillRight(title, inner-2) + " " + heart
	meta := b.styles.Rating(m.VoteAverage) + b.styles.MutedText.Render("  "+share.Year(m))
	genres := b.styles.MutedText.Render(runewidth.Truncate(m.Genres, inner, "…"))

	style := b.styles.Card.Width(cardWidth - 2).MarginRight(cardGap)
	if selected {
		style = style.BorderForeground(b.styles.Primary)
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, b.styles.Title.Render(titleLine), meta, genres))
}

func (b *Browser) renderMarquee() string {
	if len(b.state.Marquee) == 0 {
		return ""
	}

	titles := make([]string, 0, len(b.state.Marquee))
	for _, m := range b.state.Marquee {
		titles = append(titles, m.Title)
	}

	strip := []rune(strings.Join(titles, marqueeDivider) + marqueeDivider)
	width := max(b.width-4, 10)
	start := b.offset % len(strip)

	var sb strings.Builder

	for i := 0; runewidth.StringWidth(sb.String()) < width && i < len(strip)*2; i++ {
		sb.WriteRune(strip[(start+i)%len(strip)])
	}

	return b.styles.Marquee.Render(runewidth.Truncate(sb.String(), width, ""))
}

func filmCount(n int) string {
	if n == 1 {
		return "1 film"
	}

	return fmt.Sprintf("%d films", n)
}
