// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package models implements the TUI screen models using Bubble Tea.
package models

import (
	"github.com/janderssonse/cinerec/internal/domain"
	"github.com/janderssonse/cinerec/internal/view"
)

// ResponseMsg carries a settled fetch back to the event loop.
type ResponseMsg struct {
	Response view.Response
}

// ShareResultMsg reports the outcome of a clipboard copy.
type ShareResultMsg struct {
	Title string
	Text  string
	Err   error
}

// OpenDetailMsg asks the browser to open the detail view of a movie.
type OpenDetailMsg struct {
	Movie domain.Movie
}

// CloseDetailMsg closes the detail view.
type CloseDetailMsg struct{}

// ThemeChangedMsg is sent after the palette was switched.
type ThemeChangedMsg struct{}

// marqueeTickMsg advances the marquee strip.
type marqueeTickMsg struct{}
