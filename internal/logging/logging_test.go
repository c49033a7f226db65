// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{" warning ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"chatty", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), tt.in)
	}

	assert.True(t, ValidLevel("trace"))
	assert.False(t, ValidLevel("chatty"))
}

func TestNewWritesJSONWithSession(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := New(Config{Level: "info", Output: &buf})
	logger.Info().Str("title", "Inception").Msg("fetched")
	logger.Debug().Msg("filtered out")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))

	assert.Equal(t, "fetched", entry["message"])
	assert.Equal(t, "Inception", entry["title"])
	assert.Equal(t, logger.SessionID, entry["session"])
	assert.NotEmpty(t, logger.SessionID)
	assert.NoError(t, logger.Close())
}

func TestNewWritesRotatingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cinerec.log")

	logger := New(Config{Level: "debug", File: path, MaxSize: 1})
	logger.Debug().Msg("hello")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello"`)
}

func TestNopAndNilClose(t *testing.T) {
	t.Parallel()

	logger := Nop()
	logger.Error().Msg("dropped")
	assert.NoError(t, logger.Close())

	var nilLogger *Logger
	assert.NoError(t, nilLogger.Close())
}
