// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package share

import (
	"errors"
	"strings"
	"testing"

	"github.com/janderssonse/cinerec/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCopier struct {
	text string
	err  error
}

func (r *recordingCopier) Copy(text string) error {
	r.text = text

	return r.err
}

func TestText(t *testing.T) {
	t.Parallel()

	t.Run("title only", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Check out Heat on CineRec", Text(domain.Movie{Title: "Heat"}))
	})

	t.Run("short overview kept whole", func(t *testing.T) {
		t.Parallel()
		got := Text(domain.Movie{Title: "Heat", Overview: "Cops and robbers."})
		assert.Equal(t, "Check out Heat on CineRec: Cops and robbers.", got)
	})

	t.Run("long overview truncated by runes", func(t *testing.T) {
		t.Parallel()

		overview := strings.Repeat("é", 150)
		got := Text(domain.Movie{Title: "Amélie", Overview: overview})

		_, tail, found := strings.Cut(got, ": ")
		require.True(t, found)
		assert.Equal(t, OverviewRunes+1, len([]rune(tail)))
		assert.True(t, strings.HasSuffix(tail, "…"))
	})
}

func TestCopy(t *testing.T) {
	t.Parallel()

	copier := &recordingCopier{}
	text, err := Copy(copier, domain.Movie{Title: "Alien"})
	require.NoError(t, err)
	assert.Equal(t, "Check out Alien on CineRec", text)
	assert.Equal(t, text, copier.text)

	failing := &recordingCopier{err: errors.New("no display")}
	_, err = Copy(failing, domain.Movie{Title: "Alien"})
	require.Error(t, err)
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	known := Markdown(domain.Movie{
		Title:       "Heat",
		Tagline:     "A Los Angeles crime saga",
		VoteAverage: 7.9,
		ReleaseYear: 1995,
		Runtime:     170,
		Genres:      "Action Crime Drama",
		Overview:    "Obsessive cop hunts a master thief.",
	})

	assert.Contains(t, known, "# Heat")
	assert.Contains(t, known, "> A Los Angeles crime saga")
	assert.Contains(t, known, "| Year | 1995 |")
	assert.Contains(t, known, "| Runtime | 170 min |")
	assert.Contains(t, known, "7.9 / 10")
	assert.Contains(t, known, "Obsessive cop")

	unknown := Markdown(domain.Movie{Title: "Mystery"})
	assert.Contains(t, unknown, "| Year | unknown |")
	assert.Contains(t, unknown, "| Runtime | unknown |")
	assert.Contains(t, unknown, "| Poster | unknown |")
	assert.NotContains(t, unknown, ">")
}
