// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package console formats command output for terminals, pipes and JSON consumers.
package console

import (
	"fmt"
	"io"
	"maps"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/janderssonse/cinerec/internal/domain"
	"github.com/janderssonse/cinerec/internal/share"
)

// Column widths of the movie table.
const (
	titleWidth  = 40
	genresWidth = 28
)

// OutputState holds output configuration.
type OutputState struct {
	Verbose bool
	JSON    bool
	Plain   bool

	Out io.Writer
	Err io.Writer
}

// DefaultOutput provides output formatting utilities.
var DefaultOutput = &OutputState{} //nolint:gochecknoglobals

// SetMode configures output mode.
func (o *OutputState) SetMode(verbose, json, plain bool) {
	o.Verbose = verbose
	o.JSON = json
	o.Plain = plain
}

func (o *OutputState) stdout() io.Writer {
	if o.Out != nil {
		return o.Out
	}

	return os.Stdout
}

func (o *OutputState) stderr() io.Writer {
	if o.Err != nil {
		return o.Err
	}

	return os.Stderr
}

// Stdout returns the writer results are printed to.
func (o *OutputState) Stdout() io.Writer {
	return o.stdout()
}

// Stderr returns the writer diagnostics are printed to.
func (o *OutputState) Stderr() io.Writer {
	return o.stderr()
}

// IsTTY checks if output is going to a terminal (not piped/redirected).
func (o *OutputState) IsTTY() bool {
	file, ok := o.stdout().(*os.File)

	return ok && term.IsTerminal(int(file.Fd()))
}

// Bold formats text with bold when in TTY, uppercase when piped.
func (o *OutputState) Bold(text string) string {
	if o.JSON || o.Plain {
		return text
	}

	// no-color.org
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return text
	}

	if o.IsTTY() {
		return "\033[1m" + text + "\033[0m"
	}

	return strings.ToUpper(text)
}

// Header formats section headers consistently.
func (o *OutputState) Header(text string) string {
	return o.Bold(text)
}

// Progressf writes progress messages to stderr (only if verbose and not JSON/Plain).
func (o *OutputState) Progressf(format string, args ...any) {
	if o.Verbose && !o.JSON && !o.Plain {
		fmt.Fprintf(o.stderr(), format+"\n", args...)
	}
}

// Successf writes success messages to stderr (only if not JSON/Plain).
func (o *OutputState) Successf(format string, args ...any) {
	if !o.JSON && !o.Plain {
		fmt.Fprintf(o.stderr(), "✓ "+format+"\n", args...)
	}
}

// Warningf writes warning messages to stderr.
func (o *OutputState) Warningf(format string, args ...any) {
	if o.Plain {
		fmt.Fprintf(o.stderr(), "warning: "+format+"\n", args...)
	} else {
		fmt.Fprintf(o.stderr(), "⚠ "+format+"\n", args...)
	}
}

// Errorf writes error messages to stderr (always visible).
func (o *OutputState) Errorf(format string, args ...any) {
	if o.Plain {
		fmt.Fprintf(o.stderr(), "error: "+format+"\n", args...)
	} else {
		fmt.Fprintf(o.stderr(), "✗ "+format+"\n", args...)
	}
}

// JSONResult writes structured JSON results to stdout.
func (o *OutputState) JSONResult(status string, data map[string]any) {
	result := map[string]any{
		"status": status,
	}
	maps.Copy(result, data)

	enc := json.NewEncoder(o.stdout())
	enc.SetIndent("", "  ")

	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(o.stderr(), "error encoding JSON: %v\n", err)
	}
}

// ErrorResult reports err, as JSON on stdout when in JSON mode and always on stderr.
func (o *OutputState) ErrorResult(err error, code int) {
	if o.JSON {
		o.JSONResult("error", map[string]any{
			"error": err.Error(),
			"code":  code,
		})
	}

	o.Errorf("%s", err.Error())
}

// PlainList outputs a simple list of items, one per line.
func (o *OutputState) PlainList(items []string) {
	for _, item := range items {
		_, _ = fmt.Fprintf(o.stdout(), "%s\n", item)
	}
}

// PlainValue outputs a single value.
func (o *OutputState) PlainValue(value string) {
	_, _ = fmt.Fprintf(o.stdout(), "%s\n", value)
}

// Listing is a labelled movie list as printed by the list commands.
type Listing struct {
	Label        string         `json:"label"`
	Mode         string         `json:"mode,omitempty"`
	ResolvedFrom string         `json:"resolved_from,omitempty"`
	Notice       string         `json:"notice,omitempty"`
	Movies       []domain.Movie `json:"movies"`
}

// Movies prints a listing as JSON, as tab separated titles in plain mode,
// or as an aligned table.
func (o *OutputState) Movies(listing Listing) {
	if listing.Movies == nil {
		listing.Movies = []domain.Movie{}
	}

	switch {
	case o.JSON:
		o.JSONResult("success", map[string]any{"result": listing})
	case o.Plain:
		for _, m := range listing.Movies {
			_, _ = fmt.Fprintf(o.stdout(), "%s\t%.1f\t%s\t%s\n", m.Title, m.VoteAverage, share.Year(m), m.Genres)
		}
	default:
		o.table(listing)
	}
}

func (o *OutputState) table(listing Listing) {
	out := o.stdout()

	_, _ = fmt.Fprintf(out, "%s  (%s)\n", o.Header(listing.Label), FilmCount(len(listing.Movies)))

	if listing.ResolvedFrom != "" {
		_, _ = fmt.Fprintf(out, "showing results for %s (similar to %q)\n", listing.Label, listing.ResolvedFrom)
	}

	if listing.Notice != "" {
		_, _ = fmt.Fprintf(out, "%s\n", listing.Notice)
	}

	if len(listing.Movies) == 0 {
		return
	}

	_, _ = fmt.Fprintf(out, "\n  %s  %s  %-6s  %-4s  %s\n",
		Pad("TITLE", titleWidth), "★   ", "YEAR", "LANG", "GENRES")

	for _, m := range listing.Movies {
		marker := " "
		if m.IsSearched {
			marker = "▸"
		}

		_, _ = fmt.Fprintf(out, "%s %s  %4.1f  %-6s  %-4s  %s\n",
			marker,
			Pad(m.Title, titleWidth),
			m.VoteAverage,
			share.Year(m),
			strings.ToUpper(m.OriginalLanguage),
			runewidth.Truncate(m.Genres, genresWidth, "…"))
	}
}

// Pad truncates or pads s to exactly width terminal cells.
func Pad(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

// FilmCount renders "N film" or "N films".
func FilmCount(n int) string {
	if n == 1 {
		return "1 film"
	}

	return fmt.Sprintf("%d films", n)
}
