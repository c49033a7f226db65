// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package watchlist keeps the session's saved titles.
package watchlist

import (
	"slices"

	"github.com/janderssonse/cinerec/internal/domain"
)

// Store is a set of saved titles that lives as long as the session.
// Membership is by exact title, like the titles the user bookmarked.
type Store struct {
	titles map[string]struct{}
	order  []string
}

// New creates an empty watchlist.
func New() *Store {
	return &Store{titles: make(map[string]struct{})}
}

// Toggle adds title when absent and removes it when present.
// It returns the new membership.
func (s *Store) Toggle(title string) bool {
	if _, ok := s.titles[title]; ok {
		delete(s.titles, title)
		s.order = slices.DeleteFunc(s.order, func(t string) bool { return t == title })

		return false
	}

	s.titles[title] = struct{}{}
	s.order = append(s.order, title)

	return true
}

// Contains reports whether title is saved.
func (s *Store) Contains(title string) bool {
	_, ok := s.titles[title]

	return ok
}

// Len returns the number of saved titles.
func (s *Store) Len() int {
	return len(s.titles)
}

// Titles returns saved titles in the order they were added.
func (s *Store) Titles() []string {
	return slices.Clone(s.order)
}

// Filter returns the movies that are saved, in order, at most limit.
func (s *Store) Filter(movies []domain.Movie, limit int) []domain.Movie {
	out := []domain.Movie{}

	for _, m := range movies {
		if len(out) == limit {
			break
		}

		if s.Contains(m.Title) {
			out = append(out, m)
		}
	}

	return out
}
