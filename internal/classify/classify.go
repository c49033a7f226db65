// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package classify decides whether a result set satisfies a genre category
// and fetches a fallback set when it does not.
package classify

import (
	"context"

	"github.com/janderssonse/cinerec/internal/domain"
	"github.com/rs/zerolog"
)

// SeedFetcher fetches recommendations for a single seed title.
type SeedFetcher interface {
	FetchOne(ctx context.Context, title string, limit int) ([]domain.Movie, error)
}

// HasLocalMatch reports whether at least one movie matches the category.
func HasLocalMatch(movies []domain.Movie, category domain.Category) bool {
	for _, m := range movies {
		if category.Matches(m) {
			return true
		}
	}

	return false
}

// Filter returns the movies matching the category, in order, at most limit.
func Filter(movies []domain.Movie, category domain.Category, limit int) []domain.Movie {
	out := []domain.Movie{}

	for _, m := range movies {
		if len(out) == limit {
			break
		}

		if category.Matches(m) {
			out = append(out, m)
		}
	}

	return out
}

// Outcome is what applying a category produced.
type Outcome struct {
	Movies       []domain.Movie
	UsedFallback bool
	// FallbackErr is set when the fallback fetch failed. It is informational;
	// Movies then holds the prior set unchanged.
	FallbackErr error
}

// Plan is the first, synchronous half of applying a category.
type Plan struct {
	// Local is true when the current set already satisfies the category.
	Local bool
	// Seed is the fallback seed to fetch when Local is false. Empty means
	// there is nothing to fetch and the result is an empty list.
	Seed string
}

// PlanCategory decides how a category is satisfied without doing any I/O.
func PlanCategory(movies []domain.Movie, category domain.Category) Plan {
	if HasLocalMatch(movies, category) {
		return Plan{Local: true}
	}

	return Plan{Seed: category.FallbackSeed}
}

// Classifier applies categories, fetching fallback seeds when needed.
type Classifier struct {
	fetcher SeedFetcher
	logger  zerolog.Logger
	limit   int
}

// New creates a classifier that caps every displayed list at limit.
func New(fetcher SeedFetcher, limit int, logger zerolog.Logger) *Classifier {
	return &Classifier{fetcher: fetcher, limit: limit, logger: logger}
}

// Apply returns the movies to display for category given the current set.
// A failed fallback fetch is absorbed and the current set returned unchanged.
func (c *Classifier) Apply(ctx context.Context, movies []domain.Movie, category domain.Category) Outcome {
	plan := PlanCategory(movies, category)

	switch {
	case plan.Local:
		return Outcome{Movies: Filter(movies, category, c.limit)}
	case plan.Seed == "":
		return Outcome{Movies: []domain.Movie{}}
	}

	fetched, err := c.fetcher.FetchOne(ctx, plan.Seed, c.limit)
	if err != nil {
		c.logger.Warn().Err(err).
			Str("category", category.Label).
			Str("seed", plan.Seed).
			Msg("category fallback failed, keeping current set")

		return Outcome{Movies: movies, UsedFallback: true, FallbackErr: err}
	}

	return Outcome{Movies: fetched, UsedFallback: true}
}
