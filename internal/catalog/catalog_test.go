// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package catalog

import (
	"testing"

	"github.com/janderssonse/cinerec/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	t.Parallel()

	cat := Default()
	require.NoError(t, cat.Validate())

	assert.Len(t, cat.Seeds, 8)
	assert.Len(t, cat.MarqueeSeeds, 8)
	assert.Len(t, cat.QuickPicks, 8)
	assert.Len(t, cat.Categories, 12)
	assert.True(t, cat.Categories[0].IsAll())
	assert.Equal(t, domain.AliasPair{Alias: "incept", Title: "Inception"}, cat.Aliases[0])
}

func TestCategoryLookup(t *testing.T) {
	t.Parallel()

	cat := Default()

	idx, err := cat.CategoryIndex(" horror ")
	require.NoError(t, err)
	assert.Equal(t, "Horror", cat.Categories[idx].Label)
	assert.Equal(t, "The Conjuring", cat.Categories[idx].FallbackSeed)

	_, err = cat.CategoryIndex("western")
	require.ErrorIs(t, err, domain.ErrUnknownCategory)

	_, err = cat.Category(len(cat.Categories))
	require.ErrorIs(t, err, domain.ErrUnknownCategory)

	got, err := cat.Category(0)
	require.NoError(t, err)
	assert.Equal(t, AllLabel, got.Label)
}

func TestWithOverrides(t *testing.T) {
	t.Parallel()

	base := Default()
	out := base.WithOverrides(Overrides{
		Seeds:   []string{"Alien"},
		Aliases: []domain.AliasPair{{Alias: "xeno", Title: "Alien"}},
		Categories: []CategoryEntry{
			{Label: "Horror", Keywords: []string{"horror"}, Seed: "Alien"},
			{Label: "Broken"},
		},
	})

	require.NoError(t, out.Validate())
	assert.Equal(t, []string{"Alien"}, out.Seeds)
	assert.Equal(t, base.MarqueeSeeds, out.MarqueeSeeds)
	assert.Equal(t, base.QuickPicks, out.QuickPicks)
	assert.Len(t, out.Aliases, 1)
	require.Len(t, out.Categories, 2)
	assert.Equal(t, AllLabel, out.Categories[0].Label)
	assert.Equal(t, "Alien", out.Categories[1].FallbackSeed)

	// base catalog is untouched
	assert.Len(t, base.Seeds, 8)
}

func TestValidate_RejectsBlankAlias(t *testing.T) {
	t.Parallel()

	cat := Default()
	cat.Aliases = append(cat.Aliases, domain.AliasPair{Alias: " ", Title: "X"})

	require.Error(t, cat.Validate())
}
