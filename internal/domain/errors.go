// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"errors"
	"strings"
)

// Common domain errors.
var (
	// ErrTitleNotFound is returned by a recommender for any non-success lookup.
	ErrTitleNotFound = errors.New("title not found")
	// ErrSearchNotFound is the user-visible failure of an explicit search.
	ErrSearchNotFound = errors.New("movie not found")
	// ErrEmptyQuery is returned when a search query is blank after trimming.
	ErrEmptyQuery = errors.New("empty query")
	// ErrUnknownCategory is returned for a category index or label outside the catalog.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrEmptyWatchlist is returned when focusing an empty watchlist.
	ErrEmptyWatchlist = errors.New("watchlist is empty")
	// ErrUpstreamUnavailable is returned when the recommender is short-circuited.
	ErrUpstreamUnavailable = errors.New("recommendation service unavailable")
)

// ErrorInfo provides user-friendly error information.
type ErrorInfo struct {
	Message     string   // User-friendly message
	Suggestions []string // Actionable suggestions
	ShowDetails bool     // Whether to show technical details
}

// GetErrorInfo analyzes an error and returns user-friendly information.
func GetErrorInfo(err error, verbose bool) ErrorInfo {
	switch {
	case err == nil:
		return ErrorInfo{}
	case errors.Is(err, ErrSearchNotFound), errors.Is(err, ErrTitleNotFound):
		return ErrorInfo{
			Message:     "Movie not found. Try another title!",
			Suggestions: []string{"Check the title spelling", "Try one of the quick picks"},
			ShowDetails: verbose,
		}
	case errors.Is(err, ErrEmptyQuery):
		return ErrorInfo{
			Message:     "Nothing to search for",
			Suggestions: []string{"Type a movie title first"},
			ShowDetails: verbose,
		}
	case errors.Is(err, ErrUnknownCategory):
		return ErrorInfo{
			Message:     "Unknown category",
			Suggestions: []string{"Run 'cinerec categories' to list them"},
			ShowDetails: verbose,
		}
	case errors.Is(err, ErrEmptyWatchlist):
		return ErrorInfo{
			Message:     "Your watchlist is empty",
			Suggestions: []string{"Bookmark a movie first"},
			ShowDetails: verbose,
		}
	case errors.Is(err, ErrUpstreamUnavailable):
		return ErrorInfo{
			Message:     "Recommendation service unavailable",
			Suggestions: []string{"Try again in a few moments"},
			ShowDetails: verbose,
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, pattern := range []string{"network", "connection", "timeout", "no such host"} {
		if strings.Contains(errStr, pattern) {
			return ErrorInfo{
				Message:     "Network connection failed",
				Suggestions: []string{"Check your internet connection", "Try again in a few moments"},
				ShowDetails: verbose,
			}
		}
	}

	return ErrorInfo{
		Message:     "Operation failed",
		Suggestions: []string{"Run with --verbose for more details"},
		ShowDetails: verbose,
	}
}

// FormatErrorMessage formats an error for display.
func FormatErrorMessage(err error, verbose bool) string {
	info := GetErrorInfo(err, verbose)

	var result strings.Builder

	result.WriteString("✗ ")
	result.WriteString(info.Message)

	if info.ShowDetails && err != nil {
		result.WriteString("\n  Technical details: ")
		result.WriteString(err.Error())
	}

	if len(info.Suggestions) > 0 && !verbose {
		result.WriteString(" (")
		result.WriteString(info.Suggestions[0])
		result.WriteString(")")
	} else if len(info.Suggestions) > 0 {
		result.WriteString("\n  Suggestions:")

		for _, suggestion := range info.Suggestions {
			result.WriteString("\n    • ")
			result.WriteString(suggestion)
		}
	}

	return result.String()
}
