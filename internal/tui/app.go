// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package tui provides the interactive terminal interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/janderssonse/cinerec/internal/share"
	"github.com/janderssonse/cinerec/internal/tui/models"
	"github.com/janderssonse/cinerec/internal/tui/styles"
	"github.com/janderssonse/cinerec/internal/view"
)

// GoodbyeMessage is printed when the program exits.
const GoodbyeMessage = "Enjoy the movie! 🍿\n"

// ErrNoTerminal is returned when the TUI is launched in a non-terminal environment.
var ErrNoTerminal = errors.New("TUI requires a terminal environment")

// Options wires the TUI to the recommendation core.
type Options struct {
	Machine  *view.Machine
	Executor models.Executor
	Copier   share.Copier
	Logger   zerolog.Logger
	Theme    styles.Theme
}

// App is the root model. It owns quitting and hands everything else to the browser.
type App struct {
	browser  *models.Browser
	quitting bool
}

// NewApp creates the root model.
func NewApp(ctx context.Context, opts Options) *App {
	return &App{
		browser: models.NewBrowser(ctx, models.BrowserOptions{
			Machine:  opts.Machine,
			Executor: opts.Executor,
			Copier:   opts.Copier,
			Logger:   opts.Logger,
			Theme:    opts.Theme,
		}),
	}
}

// Init implements the tea.Model interface.
func (a *App) Init() tea.Cmd {
	return a.browser.Init()
}

// Update implements the tea.Model interface.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "ctrl+c" {
		a.quitting = true

		return a, tea.Quit
	}

	_, cmd := a.browser.Update(msg)

	return a, cmd
}

// View implements the tea.Model interface.
func (a *App) View() string {
	if a.quitting {
		return GoodbyeMessage
	}

	return a.browser.View()
}

// Browser returns the browse screen (for testing).
func (a *App) Browser() *models.Browser {
	return a.browser
}

// Run starts the TUI application with the provided context.
func (a *App) Run(ctx context.Context) error {
	program := tea.NewProgram(
		a,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}

		return fmt.Errorf("TUI application failed: %w", err)
	}

	return nil
}

// LaunchInteractive starts the interactive TUI interface.
func LaunchInteractive(ctx context.Context, opts Options) error {
	if !isTerminal() {
		return fmt.Errorf("terminal check failed: %w", ErrNoTerminal)
	}

	return NewApp(ctx, opts).Run(ctx)
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
