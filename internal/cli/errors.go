// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"context"
	"errors"

	"github.com/charmbracelet/huh"

	"github.com/janderssonse/cinerec/internal/config"
	"github.com/janderssonse/cinerec/internal/domain"
)

// Exit codes for different failure modes.
const (
	ExitSuccess        = 0
	ExitGeneralError   = 1
	ExitUsageError     = 2
	ExitConfigError    = 3
	ExitNotFoundError  = 5
	ExitNetworkError   = 11
	ExitTimeoutError   = 13
	ExitInterruptError = 14
)

// exitCode maps a failure to its process exit code.
func exitCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrEmptyQuery):
		return ExitUsageError
	case errors.Is(err, config.ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, domain.ErrUnknownCategory),
		errors.Is(err, domain.ErrSearchNotFound),
		errors.Is(err, domain.ErrTitleNotFound),
		errors.Is(err, domain.ErrEmptyWatchlist):
		return ExitNotFoundError
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return ExitNetworkError
	case errors.Is(err, context.DeadlineExceeded):
		return ExitTimeoutError
	case errors.Is(err, context.Canceled), errors.Is(err, huh.ErrUserAborted):
		return ExitInterruptError
	default:
		return ExitGeneralError
	}
}

// fail reports err in the active output mode and wraps it with an exit code.
// An error that already carries an exit code is passed through unchanged.
func (app *CLI) fail(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := domain.AsExitError(err); ok {
		return err
	}

	code := exitCode(err)

	if app.output.JSON {
		app.output.JSONResult("error", map[string]any{"error": err.Error(), "code": code})
	}

	return domain.NewExitError(code, domain.FormatErrorMessage(err, app.verbose), err)
}
