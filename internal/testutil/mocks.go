// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package testutil provides testify mocks and fixtures shared by package tests.
package testutil

import (
	"context"

	"github.com/janderssonse/cinerec/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockRecommender mocks the Recommender port for testing.
type MockRecommender struct {
	mock.Mock
}

// Recommend mocks a recommendation lookup.
func (m *MockRecommender) Recommend(ctx context.Context, title string) ([]domain.Movie, error) {
	args := m.Called(ctx, title)
	if result := args.Get(0); result != nil {
		res, ok := result.([]domain.Movie)
		if !ok {
			return nil, args.Error(1)
		}

		return res, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockSeedFetcher mocks single-seed fetching for testing.
type MockSeedFetcher struct {
	mock.Mock
}

// FetchOne mocks a single-seed fetch.
func (m *MockSeedFetcher) FetchOne(ctx context.Context, title string, limit int) ([]domain.Movie, error) {
	args := m.Called(ctx, title, limit)
	if result := args.Get(0); result != nil {
		res, ok := result.([]domain.Movie)
		if !ok {
			return nil, args.Error(1)
		}

		return res, args.Error(1)
	}

	return nil, args.Error(1)
}
