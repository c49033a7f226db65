// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package aggregate

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/janderssonse/cinerec/internal/domain"
)

// Filler modes.
const (
	FillerUnknown   = "unknown"
	FillerSynthetic = "synthetic"
)

// Synthetic filler ranges.
const (
	minYear     = 1970
	yearSpan    = 50
	minRuntime  = 90
	runtimeSpan = 120
)

// UnknownFiller leaves absent attributes at domain.UnknownValue.
func UnknownFiller() Enricher {
	return func(m domain.Movie) domain.Movie {
		return m
	}
}

// SyntheticFiller fills an absent release year and runtime with random demo
// values drawn from a generator seeded with seed. The values carry no meaning.
func SyntheticFiller(seed uint64) Enricher {
	var mu sync.Mutex

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint:gosec // demo filler only

	return func(m domain.Movie) domain.Movie {
		mu.Lock()
		defer mu.Unlock()

		if !m.HasReleaseYear() {
			m.ReleaseYear = minYear + rng.IntN(yearSpan)
		}

		if !m.HasRuntime() {
			m.Runtime = minRuntime + rng.IntN(runtimeSpan)
		}

		return m
	}
}

// NewFiller returns the enricher for a configured filler mode.
func NewFiller(mode string, seed uint64) (Enricher, error) {
	switch mode {
	case "", FillerUnknown:
		return UnknownFiller(), nil
	case FillerSynthetic:
		return SyntheticFiller(seed), nil
	default:
		return nil, fmt.Errorf("unknown filler mode %q", mode)
	}
}
