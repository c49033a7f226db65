// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package resolve maps free-text input to a canonical title the
// recommendation service recognizes.
package resolve

import (
	"strings"

	"github.com/janderssonse/cinerec/internal/catalog"
	"github.com/janderssonse/cinerec/internal/domain"
)

// Resolver matches queries against an alias table and two title catalogs.
// It is a pure function of its catalogs and safe for concurrent use.
type Resolver struct {
	aliases    []domain.AliasPair
	quickPicks []string
	seeds      []string
}

// New creates a resolver over the catalog's aliases, quick picks and seeds.
func New(cat catalog.Catalog) *Resolver {
	return &Resolver{
		aliases:    cat.Aliases,
		quickPicks: cat.QuickPicks,
		seeds:      cat.Seeds,
	}
}

// Resolve returns the canonical title for query and whether a match was found.
// Passes run in order and the first hit wins:
//  1. exact, case-insensitive alias match
//  2. alias containment in either direction, alias table order
//  3. the same containment test against quick picks, then seeds
func (r *Resolver) Resolve(query string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", false
	}

	for _, pair := range r.aliases {
		if q == strings.ToLower(pair.Alias) {
			return pair.Title, true
		}
	}

	for _, pair := range r.aliases {
		if overlaps(q, strings.ToLower(pair.Alias)) {
			return pair.Title, true
		}
	}

	for _, list := range [][]string{r.quickPicks, r.seeds} {
		for _, title := range list {
			if overlaps(q, strings.ToLower(title)) {
				return title, true
			}
		}
	}

	return "", false
}

// Target returns the title to look up for query: the resolved title, or the
// trimmed query itself when nothing matched.
func (r *Resolver) Target(query string) string {
	if title, ok := r.Resolve(query); ok {
		return title
	}

	return strings.TrimSpace(query)
}

func overlaps(query, candidate string) bool {
	return strings.Contains(query, candidate) || strings.Contains(candidate, query)
}
