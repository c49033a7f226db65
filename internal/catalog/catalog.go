// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package catalog provides the immutable title catalogs the resolver,
// aggregator and classifier are configured with.
package catalog

import (
	"fmt"
	"strings"

	"github.com/janderssonse/cinerec/internal/domain"
)

// AllLabel is the label of the "show everything" category.
const AllLabel = "All"

// Catalog bundles the process-wide, read-only lists.
// It is built once at startup and passed by value to the components that need it.
type Catalog struct {
	Seeds        []string           // landing aggregation seeds
	MarqueeSeeds []string           // marquee strip seeds
	QuickPicks   []string           // one-click search chips
	Aliases      []domain.AliasPair // ordered; first match wins
	Categories   []domain.Category  // index 0 is the "All" category
}

// Default returns the built-in catalog.
func Default() Catalog {
	return Catalog{
		Seeds: []string{
			"Inception", "Titanic", "The Dark Knight", "Interstellar",
			"Pulp Fiction", "The Godfather", "Parasite", "Spirited Away",
		},
		MarqueeSeeds: []string{
			"Avatar", "The Matrix", "Gladiator", "Fight Club",
			"Parasite", "Joker", "Dune", "Everything Everywhere All at Once",
		},
		QuickPicks: []string{
			"Inception", "Titanic", "The Dark Knight", "Interstellar",
			"Pulp Fiction", "The Godfather", "La La Land", "Spider-Man",
		},
		Aliases:    defaultAliases(),
		Categories: defaultCategories(),
	}
}

func defaultCategories() []domain.Category {
	return []domain.Category{
		{Label: AllLabel},
		{Label: "Action", Keywords: []string{"action"}, FallbackSeed: "John Wick"},
		{Label: "Drama", Keywords: []string{"drama"}, FallbackSeed: "The Shawshank Redemption"},
		{Label: "Romance", Keywords: []string{"romance"}, FallbackSeed: "The Notebook"},
		{Label: "Comedy", Keywords: []string{"comedy"}, FallbackSeed: "The Hangover"},
		{Label: "Sci-Fi", Keywords: []string{"sci-fi", "science fiction", "scifi"}, FallbackSeed: "Blade Runner 2049"},
		{Label: "Horror", Keywords: []string{"horror"}, FallbackSeed: "The Conjuring"},
		{Label: "Thriller", Keywords: []string{"thriller"}, FallbackSeed: "Gone Girl"},
		{Label: "Adventure", Keywords: []string{"adventure"}, FallbackSeed: "Indiana Jones"},
		{Label: "Family", Keywords: []string{"family", "animation"}, FallbackSeed: "The Lion King"},
		{Label: "Musical", Keywords: []string{"music", "musical"}, FallbackSeed: "La La Land"},
		{Label: "Mystery", Keywords: []string{"mystery"}, FallbackSeed: "Knives Out"},
	}
}

//nolint:funlen // flat data table
func defaultAliases() []domain.AliasPair {
	return []domain.AliasPair{
		{Alias: "incept", Title: "Inception"},
		{Alias: "incpt", Title: "Inception"},
		{Alias: "inceptio", Title: "Inception"},
		{Alias: "cobb", Title: "Inception"},
		{Alias: "titan", Title: "Titanic"},
		{Alias: "titani", Title: "Titanic"},
		{Alias: "titanic ship", Title: "Titanic"},
		{Alias: "dark", Title: "The Dark Knight"},
		{Alias: "batman", Title: "The Dark Knight"},
		{Alias: "bat", Title: "The Dark Knight"},
		{Alias: "joker", Title: "The Dark Knight"},
		{Alias: "inter", Title: "Interstellar"},
		{Alias: "interstel", Title: "Interstellar"},
		{Alias: "space movie", Title: "Interstellar"},
		{Alias: "pulp", Title: "Pulp Fiction"},
		{Alias: "pulp fic", Title: "Pulp Fiction"},
		{Alias: "god", Title: "The Godfather"},
		{Alias: "godfath", Title: "The Godfather"},
		{Alias: "mafia", Title: "The Godfather"},
		{Alias: "avat", Title: "Avatar"},
		{Alias: "blue people", Title: "Avatar"},
		{Alias: "matri", Title: "The Matrix"},
		{Alias: "neo", Title: "The Matrix"},
		{Alias: "gladi", Title: "Gladiator"},
		{Alias: "maximus", Title: "Gladiator"},
		{Alias: "fight", Title: "Fight Club"},
		{Alias: "tyler", Title: "Fight Club"},
		{Alias: "parasi", Title: "Parasite"},
		{Alias: "korean", Title: "Parasite"},
		{Alias: "joaquin", Title: "Joker"},
		{Alias: "arthur", Title: "Joker"},
		{Alias: "dun", Title: "Dune"},
		{Alias: "spice", Title: "Dune"},
		{Alias: "lala", Title: "La La Land"},
		{Alias: "la land", Title: "La La Land"},
		{Alias: "spider", Title: "Spider-Man"},
		{Alias: "spidey", Title: "Spider-Man"},
		{Alias: "peter parker", Title: "Spider-Man"},
		{Alias: "shawshank", Title: "The Shawshank Redemption"},
		{Alias: "andy dufresne", Title: "The Shawshank Redemption"},
		{Alias: "john w", Title: "John Wick"},
		{Alias: "wick", Title: "John Wick"},
		{Alias: "noteb", Title: "The Notebook"},
		{Alias: "allie", Title: "The Notebook"},
		{Alias: "hang", Title: "The Hangover"},
		{Alias: "wolf pack", Title: "The Hangover"},
		{Alias: "blade", Title: "Blade Runner 2049"},
		{Alias: "runner", Title: "Blade Runner 2049"},
		{Alias: "conjur", Title: "The Conjuring"},
		{Alias: "horror movie", Title: "The Conjuring"},
		{Alias: "gone", Title: "Gone Girl"},
		{Alias: "amy", Title: "Gone Girl"},
		{Alias: "indiana", Title: "Indiana Jones"},
		{Alias: "indiana j", Title: "Indiana Jones"},
		{Alias: "lion", Title: "The Lion King"},
		{Alias: "simba", Title: "The Lion King"},
		{Alias: "knives", Title: "Knives Out"},
		{Alias: "detective", Title: "Knives Out"},
	}
}

// Category returns the category at index i.
func (c Catalog) Category(i int) (domain.Category, error) {
	if i < 0 || i >= len(c.Categories) {
		return domain.Category{}, fmt.Errorf("%w: index %d", domain.ErrUnknownCategory, i)
	}

	return c.Categories[i], nil
}

// CategoryIndex looks a category up by case-insensitive label.
func (c Catalog) CategoryIndex(label string) (int, error) {
	for i, cat := range c.Categories {
		if strings.EqualFold(cat.Label, strings.TrimSpace(label)) {
			return i, nil
		}
	}

	return -1, fmt.Errorf("%w: %q", domain.ErrUnknownCategory, label)
}

// Validate checks the structural invariants the components rely on.
func (c Catalog) Validate() error {
	if len(c.Categories) == 0 || !c.Categories[0].IsAll() {
		return fmt.Errorf("%w: first category must have no keywords", domain.ErrUnknownCategory)
	}

	for i, pair := range c.Aliases {
		if strings.TrimSpace(pair.Alias) == "" || strings.TrimSpace(pair.Title) == "" {
			return fmt.Errorf("alias %d: alias and title must be non-empty", i)
		}
	}

	return nil
}
