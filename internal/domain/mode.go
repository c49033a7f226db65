// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

// Mode is the single discriminant of what the display currently shows.
type Mode int

// View modes in increasing display precedence.
const (
	ModeLanding Mode = iota
	ModeSearched
	ModeCategory
	ModeWatchlistFocus
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeLanding:
		return "landing"
	case ModeSearched:
		return "searched"
	case ModeCategory:
		return "category"
	case ModeWatchlistFocus:
		return "watchlist"
	default:
		return "unknown"
	}
}

// IsFocused reports whether the display is restricted to watchlist members.
func (m Mode) IsFocused() bool {
	return m == ModeWatchlistFocus
}
