// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package logging builds the zerolog loggers used across cinerec.
//
// Logs go to a rotating file when one is configured and to the given
// writer otherwise. Every logger carries a per-process session id so that
// lines from concurrent runs sharing a log file can be told apart.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logging configuration.
type Config struct {
	Level      string // trace, debug, info, warn, error, disabled
	File       string // rotating log file, empty for Output
	MaxSize    int    // megabytes before rotation
	MaxBackups int
	MaxAge     int // days
	Output     io.Writer
	Console    bool // human readable output instead of JSON
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() Config {
	return Config{
		Level:      "warn",
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Output:     os.Stderr,
		Console:    true,
	}
}

// Logger is a configured logger together with the resources it owns.
type Logger struct {
	zerolog.Logger

	SessionID string
	closer    io.Closer
}

// New builds a logger from cfg.
func New(cfg Config) *Logger {
	session := uuid.NewString()

	var (
		out    io.Writer
		closer io.Closer
	)

	switch {
	case cfg.File != "":
		file := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
		}
		out, closer = file, file
	case cfg.Output != nil:
		out = cfg.Output
		if cfg.Console {
			out = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: time.TimeOnly}
		}
	default:
		out = io.Discard
	}

	logger := zerolog.New(out).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Str("session", session).
		Logger()

	return &Logger{Logger: logger, SessionID: session, closer: closer}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}

	return l.closer.Close()
}

// ParseLevel converts a level name to a zerolog level. Unknown names map to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off", "none":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// ValidLevel reports whether level names a known level.
func ValidLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "disabled", "off", "none":
		return true
	default:
		return false
	}
}
