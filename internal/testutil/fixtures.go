// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package testutil

import "github.com/janderssonse/cinerec/internal/domain"

// Movies builds bare movies from titles.
func Movies(titles ...string) []domain.Movie {
	out := make([]domain.Movie, len(titles))
	for i, title := range titles {
		out[i] = domain.Movie{Title: title}
	}

	return out
}

// Titles returns the titles of movies in order.
func Titles(movies []domain.Movie) []string {
	out := make([]string, len(movies))
	for i, m := range movies {
		out[i] = m.Title
	}

	return out
}
