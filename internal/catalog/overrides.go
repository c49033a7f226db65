// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package catalog

import (
	"slices"

	"github.com/janderssonse/cinerec/internal/domain"
)

// CategoryEntry is the file representation of a category.
type CategoryEntry struct {
	Label    string   `toml:"label"`
	Keywords []string `toml:"keywords"`
	Seed     string   `toml:"seed"`
}

// Overrides replaces parts of the built-in catalog. A non-empty list replaces
// the built-in list of the same name; empty lists keep the defaults.
type Overrides struct {
	Seeds        []string           `toml:"seeds"`
	MarqueeSeeds []string           `toml:"marquee_seeds"`
	QuickPicks   []string           `toml:"quick_picks"`
	Aliases      []domain.AliasPair `toml:"aliases"`
	Categories   []CategoryEntry    `toml:"categories"`
}

// WithOverrides returns a copy of c with the non-empty override lists applied.
// Category overrides never replace the leading "All" category.
func (c Catalog) WithOverrides(o Overrides) Catalog {
	out := Catalog{
		Seeds:        slices.Clone(c.Seeds),
		MarqueeSeeds: slices.Clone(c.MarqueeSeeds),
		QuickPicks:   slices.Clone(c.QuickPicks),
		Aliases:      slices.Clone(c.Aliases),
		Categories:   slices.Clone(c.Categories),
	}

	if len(o.Seeds) > 0 {
		out.Seeds = slices.Clone(o.Seeds)
	}

	if len(o.MarqueeSeeds) > 0 {
		out.MarqueeSeeds = slices.Clone(o.MarqueeSeeds)
	}

	if len(o.QuickPicks) > 0 {
		out.QuickPicks = slices.Clone(o.QuickPicks)
	}

	if len(o.Aliases) > 0 {
		out.Aliases = slices.Clone(o.Aliases)
	}

	if len(o.Categories) > 0 {
		cats := []domain.Category{{Label: AllLabel}}
		for _, entry := range o.Categories {
			if len(entry.Keywords) == 0 {
				continue
			}

			cats = append(cats, domain.Category{
				Label:        entry.Label,
				Keywords:     slices.Clone(entry.Keywords),
				FallbackSeed: entry.Seed,
			})
		}

		out.Categories = cats
	}

	return out
}
