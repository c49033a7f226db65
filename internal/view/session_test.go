// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package view

import (
	"context"
	"testing"

	"github.com/janderssonse/cinerec/internal/aggregate"
	"github.com/janderssonse/cinerec/internal/catalog"
	"github.com/janderssonse/cinerec/internal/domain"
	"github.com/janderssonse/cinerec/internal/resolve"
	"github.com/janderssonse/cinerec/internal/testutil"
	"github.com/janderssonse/cinerec/internal/watchlist"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, rec domain.Recommender) *Session {
	t.Helper()

	cat := catalog.Default()
	cat.Seeds = []string{"Inception", "Titanic"}
	cat.MarqueeSeeds = []string{"Avatar"}

	machine := NewMachine(cat, resolve.New(cat), watchlist.New(), domain.DefaultCap)
	dispatcher := NewDispatcher(aggregate.New(rec), domain.DefaultCap, aggregate.SyntheticFiller(1))

	return NewSession(machine, dispatcher, zerolog.Nop())
}

func TestSession_EndToEnd(t *testing.T) {
	t.Parallel()

	rec := &testutil.MockRecommender{}
	rec.On("Recommend", mock.Anything, "Inception").Return([]domain.Movie{
		{Title: "Interstellar", Genres: "Science Fiction Drama"},
		{Title: "Memento", Genres: "Mystery Thriller"},
	}, nil)
	rec.On("Recommend", mock.Anything, "Titanic").Return(nil, domain.ErrTitleNotFound)
	rec.On("Recommend", mock.Anything, "Avatar").Return([]domain.Movie{
		{Title: "Avatar 2", PosterPath: "/a2.jpg"},
		{Title: "Posterless"},
	}, nil)
	rec.On("Recommend", mock.Anything, "The Dark Knight").Return([]domain.Movie{
		{Title: "The Dark Knight"},
		{Title: "Batman Begins"},
	}, nil)
	rec.On("Recommend", mock.Anything, "The Conjuring").Return([]domain.Movie{
		{Title: "Annabelle"},
	}, nil)

	session := newSession(t, rec)

	state := session.Start(context.Background())
	assert.Equal(t, []string{"Interstellar", "Memento"}, testutil.Titles(state.Movies))
	assert.True(t, state.Movies[0].HasReleaseYear(), "landing movies are filled")
	assert.Equal(t, []string{"Avatar 2"}, testutil.Titles(state.Marquee))

	state, err := session.SelectCategory(context.Background(), horrorIndex)
	require.NoError(t, err)
	assert.Equal(t, []string{"Annabelle"}, testutil.Titles(state.Movies))

	state, err = session.Search(context.Background(), "batman")
	require.NoError(t, err)
	assert.Equal(t, "The Dark Knight", state.Label)
	assert.True(t, state.Movies[0].IsSearched)
	assert.False(t, state.Movies[0].HasReleaseYear(), "search results are not filled")

	rec.AssertExpectations(t)
}

func TestSession_SearchNotFound(t *testing.T) {
	t.Parallel()

	rec := domain.RecommenderFunc(func(context.Context, string) ([]domain.Movie, error) {
		return nil, domain.ErrTitleNotFound
	})

	session := newSession(t, rec)
	session.Start(context.Background())

	state, err := session.Search(context.Background(), "unknown xyz")
	require.ErrorIs(t, err, domain.ErrSearchNotFound)
	assert.Empty(t, state.Movies)
	assert.Equal(t, "unknown xyz", state.Label)
}

func TestSession_EmptyQuery(t *testing.T) {
	t.Parallel()

	session := newSession(t, domain.RecommenderFunc(func(context.Context, string) ([]domain.Movie, error) {
		return nil, nil
	}))

	_, err := session.Search(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrEmptyQuery)
}

func TestSession_CategoryFallbackFailureKeepsLanding(t *testing.T) {
	t.Parallel()

	rec := &testutil.MockRecommender{}
	rec.On("Recommend", mock.Anything, "Inception").Return([]domain.Movie{
		{Title: "Interstellar", Genres: "Science Fiction Drama"},
		{Title: "Memento", Genres: "Mystery Thriller"},
	}, nil)
	rec.On("Recommend", mock.Anything, mock.Anything).Return(nil, domain.ErrTitleNotFound)

	session := newSession(t, rec)
	session.Start(context.Background())

	state, err := session.SelectCategory(context.Background(), horrorIndex)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeCategory, state.Mode)
	assert.Equal(t, []string{"Interstellar", "Memento"}, testutil.Titles(state.Movies))
	assert.NoError(t, state.Notice)
}

func TestDispatcher_CategoryFallback(t *testing.T) {
	t.Parallel()

	held := []domain.Movie{{Title: "Heat", Genres: "Crime Drama"}}
	horror := domain.Category{Label: "Horror", Keywords: []string{"horror"}, FallbackSeed: "The Conjuring"}

	tests := []struct {
		name    string
		movies  []domain.Movie
		err     error
		want    []string
		wantErr error
	}{
		{name: "fallback success", movies: testutil.Movies("Annabelle", "Insidious"), want: []string{"Annabelle", "Insidious"}},
		{name: "fallback failure keeps held", err: domain.ErrTitleNotFound, want: []string{"Heat"}, wantErr: domain.ErrTitleNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := &testutil.MockRecommender{}
			rec.On("Recommend", mock.Anything, "The Conjuring").Return(tt.movies, tt.err).Once()

			dispatcher := NewDispatcher(aggregate.New(rec), domain.DefaultCap, aggregate.UnknownFiller())
			resp := dispatcher.Execute(context.Background(), Request{
				Kind:     FetchCategoryFallback,
				Seeds:    []string{"The Conjuring"},
				Label:    "Horror",
				Category: horror,
				Held:     held,
			})

			assert.Equal(t, tt.want, testutil.Titles(resp.Movies))

			if tt.wantErr != nil {
				require.ErrorIs(t, resp.Err, tt.wantErr)
			} else {
				require.NoError(t, resp.Err)
			}

			rec.AssertExpectations(t)
		})
	}
}
