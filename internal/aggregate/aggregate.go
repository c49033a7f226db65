// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package aggregate fans lookups out over several seed titles and merges the
// partial results into one deduplicated, ordered list.
package aggregate

import (
	"context"
	"errors"
	"fmt"

	"github.com/janderssonse/cinerec/internal/domain"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"
)

// Enricher fills in attributes the upstream did not provide.
type Enricher func(domain.Movie) domain.Movie

// Params controls one aggregation.
type Params struct {
	// Cap truncates the merged list. Zero or negative means no cap.
	Cap int
	// Enrich is applied to every admitted movie. Nil leaves movies untouched.
	Enrich Enricher
	// Admit filters movies before deduplication. Nil admits everything.
	Admit func(domain.Movie) bool
}

// Fetcher issues recommendation lookups.
type Fetcher struct {
	recommender    domain.Recommender
	logger         zerolog.Logger
	maxConcurrency int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithLogger sets the logger used for absorbed seed failures.
func WithLogger(logger zerolog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// WithMaxConcurrency bounds in-flight lookups per aggregation. Zero means one
// goroutine per seed.
func WithMaxConcurrency(n int) Option {
	return func(f *Fetcher) {
		f.maxConcurrency = n
	}
}

// New creates a Fetcher backed by recommender.
func New(recommender domain.Recommender, opts ...Option) *Fetcher {
	f := &Fetcher{
		recommender: recommender,
		logger:      zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Logger returns the logger absorbed failures are reported to.
func (f *Fetcher) Logger() zerolog.Logger {
	return f.logger
}

// Aggregate looks up every seed concurrently, waits for all of them to settle
// and merges the successful results. A failed or empty seed contributes
// nothing. Merge order follows seed order then upstream order, and the first
// occurrence of a title (case-insensitive) wins. It never returns an error;
// total failure yields an empty list.
func (f *Fetcher) Aggregate(ctx context.Context, seeds []string, params Params) []domain.Movie {
	if len(seeds) == 0 {
		return []domain.Movie{}
	}

	results := make([][]domain.Movie, len(seeds))

	workers := f.maxConcurrency
	if workers <= 0 || workers > len(seeds) {
		workers = len(seeds)
	}

	p := pool.New().WithMaxGoroutines(workers)

	for i, seed := range seeds {
		p.Go(func() {
			movies, err := f.recommender.Recommend(ctx, seed)
			if err != nil {
				f.logger.Warn().Err(err).Str("seed", seed).Msg("seed lookup failed")

				return
			}

			results[i] = movies
		})
	}

	p.Wait()

	merged := Merge(results, params)

	f.logger.Debug().
		Int("seeds", len(seeds)).
		Int("succeeded", countNonNil(results)).
		Int("merged", len(merged)).
		Msg("aggregation settled")

	return merged
}

// FetchOne looks up a single title and returns at most limit results
// (no cap when limit <= 0). Unlike Aggregate it reports failure.
func (f *Fetcher) FetchOne(ctx context.Context, title string, limit int) ([]domain.Movie, error) {
	movies, err := f.recommender.Recommend(ctx, title)
	if err != nil {
		if !errors.Is(err, domain.ErrTitleNotFound) && !errors.Is(err, domain.ErrUpstreamUnavailable) {
			err = fmt.Errorf("%w: %w", domain.ErrTitleNotFound, err)
		}

		return nil, fmt.Errorf("lookup %q: %w", title, err)
	}

	if limit > 0 {
		movies = domain.Truncate(movies, limit)
	}

	return movies, nil
}

// Merge combines per-seed results in order, keeping the first occurrence of
// each case-insensitive title, then applies the cap.
func Merge(perSeed [][]domain.Movie, params Params) []domain.Movie {
	seen := make(map[string]struct{})
	merged := []domain.Movie{}

	for _, movies := range perSeed {
		for _, movie := range movies {
			if params.Admit != nil && !params.Admit(movie) {
				continue
			}

			key := movie.Key()
			if _, dup := seen[key]; dup {
				continue
			}

			seen[key] = struct{}{}

			if params.Enrich != nil {
				movie = params.Enrich(movie)
			}

			merged = append(merged, movie)
		}
	}

	if params.Cap > 0 {
		merged = domain.Truncate(merged, params.Cap)
	}

	return merged
}

// HasPoster admits only movies with a poster path.
func HasPoster(m domain.Movie) bool {
	return m.PosterPath != ""
}

func countNonNil(results [][]domain.Movie) int {
	n := 0

	for _, r := range results {
		if r != nil {
			n++
		}
	}

	return n
}
