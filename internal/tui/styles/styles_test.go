// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThemeToggle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Light, Dark.Toggle())
	assert.Equal(t, Dark, Light.Toggle())
	assert.Equal(t, "dark", Dark.String())
	assert.Equal(t, "light", Light.String())
}

func TestNewPalettesDiffer(t *testing.T) {
	t.Parallel()

	dark := New(Dark)
	light := New(Light)

	assert.Equal(t, Dark, dark.Theme)
	assert.Equal(t, Light, light.Theme)
	assert.NotEqual(t, dark.Primary, light.Primary)
	assert.NotEqual(t, dark.Muted, light.Muted)
}

func TestRatingText(t *testing.T) {
	t.Parallel()

	s := New(Dark)

	assert.Contains(t, s.Rating(8.44), "★ 8.4")
	assert.Contains(t, s.Rating(10), "★ 10.0")
	assert.Contains(t, s.Rating(0), "★ 0.0")
	assert.Contains(t, s.Keybinding("q", "quit"), "quit")
	assert.Contains(t, s.Logo(), "CineRec")
}
