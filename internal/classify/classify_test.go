// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package classify

import (
	"context"
	"fmt"
	"testing"

	"github.com/janderssonse/cinerec/internal/domain"
	"github.com/janderssonse/cinerec/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var horror = domain.Category{Label: "Horror", Keywords: []string{"horror"}, FallbackSeed: "The Conjuring"}

func heldSet() []domain.Movie {
	return []domain.Movie{
		{Title: "Inception", Genres: "Action Science Fiction"},
		{Title: "Titanic", Genres: "Drama Romance"},
		{Title: "Heat", Genres: "Action Crime Drama"},
		{Title: "Untagged"},
	}
}

func TestHasLocalMatch(t *testing.T) {
	t.Parallel()

	drama := domain.Category{Label: "Drama", Keywords: []string{"DRAMA"}}

	assert.True(t, HasLocalMatch(heldSet(), drama))
	assert.False(t, HasLocalMatch(heldSet(), horror))
	assert.False(t, HasLocalMatch(nil, drama))
	assert.False(t, HasLocalMatch(heldSet(), domain.Category{Label: "All"}))
}

func TestHasLocalMatch_Monotone(t *testing.T) {
	t.Parallel()

	drama := domain.Category{Keywords: []string{"drama"}}
	set := heldSet()
	require.True(t, HasLocalMatch(set, drama))

	for i := range 5 {
		set = append(set, domain.Movie{Title: fmt.Sprintf("extra %d", i), Genres: "Drama"})
		assert.True(t, HasLocalMatch(set, drama))
	}
}

func TestFilter_OrderAndCap(t *testing.T) {
	t.Parallel()

	action := domain.Category{Keywords: []string{"action"}}

	got := Filter(heldSet(), action, 16)
	require.Len(t, got, 2)
	assert.Equal(t, "Inception", got[0].Title)
	assert.Equal(t, "Heat", got[1].Title)

	assert.Len(t, Filter(heldSet(), action, 1), 1)
}

func TestApply_LocalMatch(t *testing.T) {
	t.Parallel()

	fetcher := &testutil.MockSeedFetcher{}
	classifier := New(fetcher, domain.DefaultCap, zerolog.Nop())

	out := classifier.Apply(context.Background(), heldSet(), domain.Category{Label: "Drama", Keywords: []string{"drama"}, FallbackSeed: "X"})

	assert.False(t, out.UsedFallback)
	assert.Len(t, out.Movies, 2)
	fetcher.AssertNotCalled(t, "FetchOne", mock.Anything, mock.Anything, mock.Anything)
}

func TestApply_FallbackSuccess(t *testing.T) {
	t.Parallel()

	fallback := []domain.Movie{{Title: "Annabelle"}, {Title: "Insidious"}}

	fetcher := &testutil.MockSeedFetcher{}
	fetcher.On("FetchOne", mock.Anything, "The Conjuring", domain.DefaultCap).Return(fallback, nil).Once()

	out := New(fetcher, domain.DefaultCap, zerolog.Nop()).Apply(context.Background(), heldSet(), horror)

	assert.True(t, out.UsedFallback)
	require.NoError(t, out.FallbackErr)
	assert.Equal(t, fallback, out.Movies)
	fetcher.AssertExpectations(t)
}

func TestApply_FallbackFailureKeepsPriorSet(t *testing.T) {
	t.Parallel()

	fetcher := &testutil.MockSeedFetcher{}
	fetcher.On("FetchOne", mock.Anything, "The Conjuring", domain.DefaultCap).
		Return(nil, domain.ErrTitleNotFound).Once()

	prior := heldSet()
	out := New(fetcher, domain.DefaultCap, zerolog.Nop()).Apply(context.Background(), prior, horror)

	assert.True(t, out.UsedFallback)
	require.ErrorIs(t, out.FallbackErr, domain.ErrTitleNotFound)
	assert.Equal(t, prior, out.Movies)
}

func TestApply_NoMatchNoSeed(t *testing.T) {
	t.Parallel()

	fetcher := &testutil.MockSeedFetcher{}
	out := New(fetcher, domain.DefaultCap, zerolog.Nop()).
		Apply(context.Background(), heldSet(), domain.Category{Label: "Western", Keywords: []string{"western"}})

	assert.False(t, out.UsedFallback)
	assert.Empty(t, out.Movies)
	assert.NotNil(t, out.Movies)
}

func TestPlanCategory(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Plan{Seed: "The Conjuring"}, PlanCategory(heldSet(), horror))
	assert.Equal(t, Plan{Local: true}, PlanCategory(heldSet(), domain.Category{Keywords: []string{"romance"}}))
}
