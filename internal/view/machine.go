// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package view unifies search, category and watchlist state into the single
// list that is exposed for display.
//
// The Machine is synchronous: events mutate it immediately and return the
// Requests that need network I/O. Whoever owns the event loop performs the
// requests (see Dispatcher) and hands the Responses back through Deliver.
// Each request carries the generation it was issued under; responses from a
// superseded generation are dropped, so a slow old search can never overwrite
// a newer one.
package view

import (
	"fmt"
	"slices"
	"strings"

	"github.com/janderssonse/cinerec/internal/catalog"
	"github.com/janderssonse/cinerec/internal/classify"
	"github.com/janderssonse/cinerec/internal/domain"
	"github.com/janderssonse/cinerec/internal/resolve"
	"github.com/janderssonse/cinerec/internal/watchlist"
)

// Status labels.
const (
	LabelLanding   = "Popular"
	LabelWatchlist = "Your Watchlist"
)

// State is what the renderer needs after every transition.
type State struct {
	Mode          domain.Mode
	Label         string
	CategoryIndex int
	Loading       bool
	Movies        []domain.Movie // displayed subset
	Marquee       []domain.Movie
	WatchlistSize int
	// Notice is the user-visible failure of the last search, if any.
	Notice error
	// ResolvedFrom is the raw query when the label came from fuzzy resolution.
	ResolvedFrom string
}

type modeState struct {
	mode          domain.Mode
	label         string
	categoryIndex int
	// passthrough shows the held set as-is in category mode; set once the
	// fallback path has run.
	passthrough bool
}

// Machine is the view state machine. It is not safe for concurrent use; it
// belongs to the event loop.
type Machine struct {
	catalog   catalog.Catalog
	resolver  *resolve.Resolver
	watchlist *watchlist.Store
	limit     int

	current  modeState
	restore  modeState // mode to return to when leaving watchlist focus
	held     []domain.Movie
	marquee  []domain.Movie
	loading  bool
	notice   error
	resolved string

	generation        uint64
	marqueeGeneration uint64
}

// NewMachine creates a machine in the landing mode with nothing held.
func NewMachine(cat catalog.Catalog, resolver *resolve.Resolver, store *watchlist.Store, limit int) *Machine {
	if limit <= 0 {
		limit = domain.DefaultCap
	}

	return &Machine{
		catalog:   cat,
		resolver:  resolver,
		watchlist: store,
		limit:     limit,
		current:   modeState{mode: domain.ModeLanding, label: LabelLanding},
		held:      []domain.Movie{},
		marquee:   []domain.Movie{},
	}
}

// Start enters the landing mode and returns the landing and marquee requests.
func (m *Machine) Start() []Request {
	landing := m.enterLanding()

	m.marqueeGeneration++
	marquee := Request{
		Generation: m.marqueeGeneration,
		Kind:       FetchMarquee,
		Seeds:      slices.Clone(m.catalog.MarqueeSeeds),
	}

	return []Request{landing, marquee}
}

// Submit searches for a free-text query. Blank queries are rejected without
// any transition.
func (m *Machine) Submit(query string) (Request, error) {
	raw := strings.TrimSpace(query)
	if raw == "" {
		return Request{}, domain.ErrEmptyQuery
	}

	target := m.resolver.Target(raw)

	m.generation++
	m.current = modeState{mode: domain.ModeSearched, label: target}
	m.restore = modeState{}
	m.loading = true
	m.notice = nil
	m.resolved = ""

	if !domain.SameTitle(target, raw) {
		m.resolved = raw
	}

	return Request{
		Generation: m.generation,
		Kind:       FetchSearch,
		Seeds:      []string{target},
		Label:      target,
	}, nil
}

// PickChip searches for a quick-pick chip. It behaves exactly like Submit.
func (m *Machine) PickChip(chip string) (Request, error) {
	return m.Submit(chip)
}

// SelectCategory switches to category i. Index 0 reloads the landing
// aggregation. The returned request is nil when the held set already
// satisfies the category or there is no fallback seed.
func (m *Machine) SelectCategory(i int) (*Request, error) {
	category, err := m.catalog.Category(i)
	if err != nil {
		return nil, err
	}

	if i == 0 {
		req := m.enterLanding()

		return &req, nil
	}

	m.generation++
	m.current = modeState{mode: domain.ModeCategory, label: category.Label, categoryIndex: i}
	m.restore = modeState{}
	m.notice = nil
	m.resolved = ""
	m.loading = false

	plan := classify.PlanCategory(m.held, category)
	if plan.Local || plan.Seed == "" {
		return nil, nil //nolint:nilnil // nothing to fetch is a valid outcome
	}

	m.loading = true

	return &Request{
		Generation:    m.generation,
		Kind:          FetchCategoryFallback,
		Seeds:         []string{plan.Seed},
		Label:         category.Label,
		CategoryIndex: i,
		Category:      category,
		Held:          slices.Clone(m.held),
	}, nil
}

// ToggleFocus enters watchlist focus, or leaves it and restores the previous
// mode. Entering requires a non-empty watchlist. No fetch is ever needed.
func (m *Machine) ToggleFocus() error {
	if m.current.mode.IsFocused() {
		m.current = m.restore
		m.restore = modeState{}

		return nil
	}

	if m.watchlist.Len() == 0 {
		return domain.ErrEmptyWatchlist
	}

	m.restore = m.current
	m.current = modeState{mode: domain.ModeWatchlistFocus, label: LabelWatchlist}

	return nil
}

// Focused reports whether watchlist focus is active.
func (m *Machine) Focused() bool {
	return m.current.mode.IsFocused()
}

// ToggleItem adds or removes a title from the watchlist and returns the new
// membership. The mode is unchanged.
func (m *Machine) ToggleItem(title string) bool {
	return m.watchlist.Toggle(title)
}

// Deliver applies a response. It reports false when the response belongs to a
// superseded request and was dropped.
func (m *Machine) Deliver(resp Response) bool {
	req := resp.Request

	if req.Kind == FetchMarquee {
		if req.Generation != m.marqueeGeneration {
			return false
		}

		m.marquee = nonNil(resp.Movies)

		return true
	}

	if req.Generation != m.generation {
		return false
	}

	m.loading = false
	base := m.base()

	switch req.Kind {
	case FetchLanding:
		m.held = unmark(resp.Movies)
	case FetchSearch:
		if resp.Err != nil {
			m.notice = fmt.Errorf("%w: %s", domain.ErrSearchNotFound, req.Label)
			m.held = []domain.Movie{}

			break
		}

		m.held = markSearched(domain.Truncate(resp.Movies, m.limit), req.Label)
	case FetchCategoryFallback:
		if resp.Err == nil {
			m.held = nonNil(domain.Truncate(resp.Movies, m.limit))
		}

		if base.mode == domain.ModeCategory && base.categoryIndex == req.CategoryIndex {
			base.passthrough = true
		}
	case FetchMarquee:
	}

	return true
}

// State computes the displayed view from the held set and the active mode.
func (m *Machine) State() State {
	return State{
		Mode:          m.current.mode,
		Label:         m.current.label,
		CategoryIndex: m.current.categoryIndex,
		Loading:       m.loading,
		Movies:        m.displayed(),
		Marquee:       slices.Clone(m.marquee),
		WatchlistSize: m.watchlist.Len(),
		Notice:        m.notice,
		ResolvedFrom:  m.resolved,
	}
}

// Held returns a copy of the underlying movie set.
func (m *Machine) Held() []domain.Movie {
	return slices.Clone(m.held)
}

// InWatchlist reports whether a title is saved.
func (m *Machine) InWatchlist(title string) bool {
	return m.watchlist.Contains(title)
}

// Catalog returns the catalog the machine was built with.
func (m *Machine) Catalog() catalog.Catalog {
	return m.catalog
}

func (m *Machine) displayed() []domain.Movie {
	switch m.current.mode {
	case domain.ModeWatchlistFocus:
		return m.watchlist.Filter(m.held, m.limit)
	case domain.ModeCategory:
		if m.current.passthrough {
			return slices.Clone(domain.Truncate(m.held, m.limit))
		}

		category, err := m.catalog.Category(m.current.categoryIndex)
		if err != nil {
			return []domain.Movie{}
		}

		return classify.Filter(m.held, category, m.limit)
	case domain.ModeLanding, domain.ModeSearched:
		return slices.Clone(domain.Truncate(m.held, m.limit))
	default:
		return []domain.Movie{}
	}
}

// base is the mode a response applies to: the current one, or the one
// hidden behind watchlist focus.
func (m *Machine) base() *modeState {
	if m.current.mode.IsFocused() {
		return &m.restore
	}

	return &m.current
}

func (m *Machine) enterLanding() Request {
	m.generation++
	m.current = modeState{mode: domain.ModeLanding, label: LabelLanding}
	m.restore = modeState{}
	m.loading = true
	m.notice = nil
	m.resolved = ""

	return Request{
		Generation: m.generation,
		Kind:       FetchLanding,
		Seeds:      slices.Clone(m.catalog.Seeds),
		Label:      LabelLanding,
	}
}

func markSearched(movies []domain.Movie, label string) []domain.Movie {
	out := make([]domain.Movie, len(movies))
	for i, movie := range movies {
		movie.IsSearched = domain.SameTitle(movie.Title, label)
		out[i] = movie
	}

	return out
}

func unmark(movies []domain.Movie) []domain.Movie {
	return markSearched(movies, "")
}

func nonNil(movies []domain.Movie) []domain.Movie {
	if movies == nil {
		return []domain.Movie{}
	}

	return slices.Clone(movies)
}
