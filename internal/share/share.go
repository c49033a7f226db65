// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package share renders a movie as shareable text and as a markdown detail card.
package share

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/janderssonse/cinerec/internal/domain"
)

// OverviewRunes is how much of the overview the share text carries.
const OverviewRunes = 100

// Unknown is how a missing attribute is displayed.
const Unknown = "unknown"

// Text returns the share text for m.
func Text(m domain.Movie) string {
	text := fmt.Sprintf("Check out %s on CineRec", m.Title)

	overview := strings.TrimSpace(m.Overview)
	if overview == "" {
		return text
	}

	runes := []rune(overview)
	if len(runes) > OverviewRunes {
		overview = strings.TrimSpace(string(runes[:OverviewRunes])) + "…"
	}

	return text + ": " + overview
}

// Copier writes text to a clipboard.
type Copier interface {
	Copy(text string) error
}

// SystemClipboard copies to the desktop clipboard.
type SystemClipboard struct{}

// Copy implements Copier.
func (SystemClipboard) Copy(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnsupported
	}

	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}

	return nil
}

// Copy places the share text for m on the clipboard and returns it.
func Copy(c Copier, m domain.Movie) (string, error) {
	text := Text(m)

	return text, c.Copy(text)
}

// Year renders the release year, or Unknown.
func Year(m domain.Movie) string {
	if !m.HasReleaseYear() {
		return Unknown
	}

	return strconv.Itoa(m.ReleaseYear)
}

// Runtime renders the runtime in minutes, or Unknown.
func Runtime(m domain.Movie) string {
	if !m.HasRuntime() {
		return Unknown
	}

	return fmt.Sprintf("%d min", m.Runtime)
}

// Markdown renders the detail card for m.
func Markdown(m domain.Movie) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", m.Title)

	if tagline := strings.TrimSpace(m.Tagline); tagline != "" {
		fmt.Fprintf(&b, "> %s\n\n", tagline)
	}

	b.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Rating | %.1f / 10 |\n", m.VoteAverage)
	fmt.Fprintf(&b, "| Popularity | %.1f |\n", m.Popularity)
	fmt.Fprintf(&b, "| Year | %s |\n", Year(m))
	fmt.Fprintf(&b, "| Runtime | %s |\n", Runtime(m))
	fmt.Fprintf(&b, "| Language | %s |\n", orUnknown(strings.ToUpper(m.OriginalLanguage)))
	fmt.Fprintf(&b, "| Genres | %s |\n", orUnknown(m.Genres))
	fmt.Fprintf(&b, "| Poster | %s |\n\n", orUnknown(m.PosterPath))

	if overview := strings.TrimSpace(m.Overview); overview != "" {
		b.WriteString(overview)
		b.WriteString("\n")
	}

	return b.String()
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return Unknown
	}

	return s
}
