// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import "context"

// Recommender looks up related titles for one canonical title.
// Any non-success outcome is reported as an error wrapping ErrTitleNotFound
// or ErrUpstreamUnavailable; callers do not distinguish further.
type Recommender interface {
	Recommend(ctx context.Context, title string) ([]Movie, error)
}

// RecommenderFunc adapts a function to the Recommender interface.
type RecommenderFunc func(ctx context.Context, title string) ([]Movie, error)

// Recommend calls f.
func (f RecommenderFunc) Recommend(ctx context.Context, title string) ([]Movie, error) {
	return f(ctx, title)
}
