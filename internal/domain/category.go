// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import "strings"

// Category is a genre grouping the user can browse.
// An empty keyword set marks the "show everything" category.
type Category struct {
	Label        string   `json:"label"`
	Keywords     []string `json:"keywords,omitempty"`
	FallbackSeed string   `json:"fallback_seed,omitempty"`
}

// IsAll reports whether the category shows everything.
func (c Category) IsAll() bool {
	return len(c.Keywords) == 0
}

// Matches reports whether the movie's genre tokens intersect the category keywords.
func (c Category) Matches(m Movie) bool {
	if m.Genres == "" || c.IsAll() {
		return false
	}

	tokens := m.GenreTokens()

	for _, kw := range c.Keywords {
		kw = strings.ToLower(kw)
		for _, token := range tokens {
			if token == kw {
				return true
			}
		}
	}

	return false
}

// AliasPair maps a partial or colloquial string to a canonical title.
type AliasPair struct {
	Alias string `toml:"alias"`
	Title string `toml:"title"`
}
