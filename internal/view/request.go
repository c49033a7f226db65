// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package view

import (
	"context"

	"github.com/janderssonse/cinerec/internal/aggregate"
	"github.com/janderssonse/cinerec/internal/classify"
	"github.com/janderssonse/cinerec/internal/domain"
)

// FetchKind identifies what a Request asks for.
type FetchKind int

// Fetch kinds.
const (
	FetchLanding FetchKind = iota
	FetchSearch
	FetchCategoryFallback
	FetchMarquee
)

// String returns the fetch kind name.
func (k FetchKind) String() string {
	switch k {
	case FetchLanding:
		return "landing"
	case FetchSearch:
		return "search"
	case FetchCategoryFallback:
		return "category-fallback"
	case FetchMarquee:
		return "marquee"
	default:
		return "unknown"
	}
}

// Request is a fetch the machine needs performed. It is the only point where
// the machine waits on the network.
type Request struct {
	Generation    uint64
	Kind          FetchKind
	Seeds         []string
	Label         string
	CategoryIndex int
	// Category and Held are set on category fallbacks: the category being
	// applied and the set it was found not to match.
	Category domain.Category
	Held     []domain.Movie
}

// Response carries the outcome of a Request back to the machine.
type Response struct {
	Request Request
	Movies  []domain.Movie
	Err     error
}

// Dispatcher performs requests against a Fetcher.
type Dispatcher struct {
	fetcher    *aggregate.Fetcher
	classifier *classify.Classifier
	limit      int
	filler     aggregate.Enricher
}

// NewDispatcher creates a dispatcher. The filler enriches landing and marquee
// aggregations only; single-title fetches are returned as the upstream sent them.
func NewDispatcher(fetcher *aggregate.Fetcher, limit int, filler aggregate.Enricher) *Dispatcher {
	return &Dispatcher{
		fetcher:    fetcher,
		classifier: classify.New(fetcher, limit, fetcher.Logger()),
		limit:      limit,
		filler:     filler,
	}
}

// Execute performs req and returns its response. It blocks until the fetch settles.
func (d *Dispatcher) Execute(ctx context.Context, req Request) Response {
	resp := Response{Request: req}

	switch req.Kind {
	case FetchLanding:
		resp.Movies = d.fetcher.Aggregate(ctx, req.Seeds, aggregate.Params{Cap: d.limit, Enrich: d.filler})
	case FetchMarquee:
		resp.Movies = d.fetcher.Aggregate(ctx, req.Seeds, aggregate.Params{Admit: aggregate.HasPoster, Enrich: d.filler})
	case FetchCategoryFallback:
		out := d.classifier.Apply(ctx, req.Held, req.Category)
		resp.Movies, resp.Err = out.Movies, out.FallbackErr
	case FetchSearch:
		if len(req.Seeds) == 0 {
			resp.Err = domain.ErrTitleNotFound

			return resp
		}

		resp.Movies, resp.Err = d.fetcher.FetchOne(ctx, req.Seeds[0], d.limit)
	}

	return resp
}
