// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package domain holds the core types shared by the recommendation pipeline.
package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultCap is the maximum number of movies kept in any aggregated or displayed list.
const DefaultCap = 16

// UnknownValue is the sentinel for optional numeric attributes the upstream did not provide.
const UnknownValue = 0

// Movie is a single recommendation as returned by the upstream service.
// Title is the identity key and is compared case-insensitively.
type Movie struct {
	Title            string  `json:"title"`
	PosterPath       string  `json:"poster_path"`
	Overview         string  `json:"overview"`
	Tagline          string  `json:"tagline"`
	Genres           string  `json:"genres"`
	OriginalLanguage string  `json:"original_language"`
	VoteAverage      float64 `json:"vote_average"`
	Popularity       float64 `json:"popularity"`
	IsSearched       bool    `json:"is_searched"`
	ReleaseYear      int     `json:"release_year,omitempty"`
	Runtime          int     `json:"runtime,omitempty"`
}

// TitleKey returns the case-insensitive identity key of a title: the title
// lowercased. Titles that only fold together, such as "Straße" and
// "STRASSE", stay distinct. A Caser is stateful, so a fresh one is used per call.
func TitleKey(title string) string {
	return cases.Lower(language.Und).String(title)
}

// Key returns the identity key of the movie.
func (m Movie) Key() string {
	return TitleKey(m.Title)
}

// SameTitle reports whether two titles identify the same movie.
func SameTitle(a, b string) bool {
	return TitleKey(a) == TitleKey(b)
}

// GenreTokens splits the genre string into lowercased whitespace-separated tokens.
func (m Movie) GenreTokens() []string {
	return strings.Fields(strings.ToLower(m.Genres))
}

// HasReleaseYear reports whether a release year is known.
func (m Movie) HasReleaseYear() bool {
	return m.ReleaseYear != UnknownValue
}

// HasRuntime reports whether a runtime is known.
func (m Movie) HasRuntime() bool {
	return m.Runtime != UnknownValue
}

// Truncate returns at most limit movies. The input is never modified.
func Truncate(movies []Movie, limit int) []Movie {
	if limit < 0 {
		limit = 0
	}

	if len(movies) <= limit {
		return movies
	}

	return movies[:limit]
}
