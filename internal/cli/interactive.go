// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/gofrs/flock"
	cli "github.com/urfave/cli/v3"

	"github.com/janderssonse/cinerec/internal/config"
	"github.com/janderssonse/cinerec/internal/domain"
	"github.com/janderssonse/cinerec/internal/logging"
	"github.com/janderssonse/cinerec/internal/tui"
	"github.com/janderssonse/cinerec/internal/tui/styles"
)

func (app *CLI) createPickCommand() *cli.Command {
	return &cli.Command{
		Name:  "pick",
		Usage: "Choose a quick pick and show its recommendations",
		Action: func(ctx context.Context, _ *cli.Command) error {
			if app.output.JSON || app.output.Plain {
				return domain.NewExitError(ExitUsageError, "pick is interactive and cannot be combined with --json or --plain", nil)
			}

			choice, err := app.choose(ctx, "What did you enjoy recently?", app.cfg.BuildCatalog().QuickPicks)
			if err != nil {
				return app.fail(err)
			}

			state, err := app.search(ctx, choice)
			if err != nil {
				return err
			}

			app.output.Movies(listingOf(state))

			return nil
		},
	}
}

// huhChoose shows a select form over options.
func huhChoose(ctx context.Context, title string, options []string) (string, error) {
	var choice string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(huh.NewOptions(options...)...).
				Value(&choice),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.RunWithContext(ctx); err != nil {
		return "", fmt.Errorf("pick: %w", err)
	}

	return choice, nil
}

// runTUI is the default action: the interactive browser.
// Logs go to a rotating file so they never draw over the screen.
func (app *CLI) runTUI(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Present() {
		app.commandNotFound(ctx, cmd, cmd.Args().First())

		return domain.NewExitError(ExitUsageError, "unknown command", nil)
	}

	logFile := config.ExpandPath(app.cfg.Log.File)
	if logFile == "" {
		logFile = config.DefaultLogFile()
	}

	logCfg := logging.Config{
		Level:      app.cfg.Log.Level,
		MaxSize:    app.cfg.Log.MaxSize,
		MaxBackups: app.cfg.Log.MaxBackups,
		MaxAge:     app.cfg.Log.MaxAge,
	}

	// Rotation is not safe across processes: a second browser logs nowhere.
	lock := flock.New(logFile + ".lock")
	if err := os.MkdirAll(filepath.Dir(logFile), 0o750); err == nil {
		if locked, err := lock.TryLock(); err == nil && locked {
			logCfg.File = logFile

			defer func() { _ = lock.Unlock() }()
		}
	}

	logger := logging.New(logCfg)

	// The console logger from initConfig is replaced for the lifetime of the browser.
	_ = app.logger.Close()
	app.logger = logger

	machine, dispatcher, err := app.newCore()
	if err != nil {
		return err
	}

	theme := styles.Dark
	if app.theme == "light" {
		theme = styles.Light
	}

	err = tui.LaunchInteractive(ctx, tui.Options{
		Machine:  machine,
		Executor: dispatcher,
		Copier:   app.copier,
		Logger:   logger.Logger,
		Theme:    theme,
	})

	switch {
	case errors.Is(err, tui.ErrNoTerminal):
		return domain.NewExitError(ExitUsageError, "no terminal detected, use a subcommand such as 'cinerec search <title>'", err)
	case err != nil:
		return app.fail(err)
	}

	_, _ = fmt.Fprint(app.output.Stdout(), tui.GoodbyeMessage)

	return nil
}
