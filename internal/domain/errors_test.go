// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/janderssonse/cinerec/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExitErrorFormatting tests that ExitError properly formats messages.
func TestExitErrorFormatting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		exitError       *domain.ExitError
		expectedCode    int
		expectedMessage string
	}{
		{
			name:            "exit error with underlying error",
			exitError:       domain.NewExitError(5, "Movie not found", domain.ErrSearchNotFound),
			expectedCode:    5,
			expectedMessage: "Movie not found: movie not found",
		},
		{
			name:            "exit error without underlying error",
			exitError:       domain.NewExitError(2, "Invalid configuration", nil),
			expectedCode:    2,
			expectedMessage: "Invalid configuration",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expectedMessage, tc.exitError.Error())
			assert.Equal(t, tc.expectedCode, tc.exitError.Code)
		})
	}
}

func TestAsExitError(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("command failed: %w", domain.NewExitError(11, "Network down", domain.ErrUpstreamUnavailable))

	exitErr, ok := domain.AsExitError(wrapped)
	require.True(t, ok)
	assert.Equal(t, 11, exitErr.Code)
	require.ErrorIs(t, wrapped, domain.ErrUpstreamUnavailable)

	_, ok = domain.AsExitError(errors.New("plain"))
	assert.False(t, ok)
}

// TestFormatErrorMessage tests user-friendly error formatting.
func TestFormatErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		err              error
		verbose          bool
		shouldContain    []string
		shouldNotContain []string
	}{
		{
			name:             "search not found",
			err:              fmt.Errorf("%w: Xyzzy", domain.ErrSearchNotFound),
			shouldContain:    []string{"✗", "Movie not found"},
			shouldNotContain: []string{"Technical details"},
		},
		{
			name:          "title not found from upstream",
			err:           fmt.Errorf("%w: status 404", domain.ErrTitleNotFound),
			shouldContain: []string{"Movie not found"},
		},
		{
			name:          "empty query",
			err:           domain.ErrEmptyQuery,
			shouldContain: []string{"✗"},
		},
		{
			name:          "upstream unavailable",
			err:           domain.ErrUpstreamUnavailable,
			shouldContain: []string{"Recommendation service unavailable", "Try again"},
		},
		{
			name:          "network error",
			err:           errors.New("dial tcp: connection refused"),
			shouldContain: []string{"Network connection failed", "Check your internet connection"},
		},
		{
			name:             "generic error non-verbose",
			err:              errors.New("unexpected error occurred"),
			shouldContain:    []string{"Operation failed", "Run with --verbose for more details"},
			shouldNotContain: []string{"unexpected error occurred"},
		},
		{
			name:          "generic error verbose",
			err:           errors.New("unexpected error occurred"),
			verbose:       true,
			shouldContain: []string{"Operation failed", "Technical details", "unexpected error occurred", "Suggestions:"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result := domain.FormatErrorMessage(tc.err, tc.verbose)

			for _, expected := range tc.shouldContain {
				assert.Contains(t, result, expected, "Error message should contain: %s", expected)
			}

			for _, unexpected := range tc.shouldNotContain {
				assert.NotContains(t, result, unexpected, "Error message should not contain: %s", unexpected)
			}
		})
	}
}

func TestGetErrorInfoNil(t *testing.T) {
	t.Parallel()

	assert.Equal(t, domain.ErrorInfo{}, domain.GetErrorInfo(nil, true))
}
