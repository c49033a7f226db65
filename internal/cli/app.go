// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package cli provides the cinerec command-line interface.
package cli

import (
	"context"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/janderssonse/cinerec/internal/adapters/network"
	"github.com/janderssonse/cinerec/internal/aggregate"
	"github.com/janderssonse/cinerec/internal/config"
	"github.com/janderssonse/cinerec/internal/console"
	"github.com/janderssonse/cinerec/internal/domain"
	"github.com/janderssonse/cinerec/internal/logging"
	"github.com/janderssonse/cinerec/internal/resolve"
	"github.com/janderssonse/cinerec/internal/share"
	"github.com/janderssonse/cinerec/internal/view"
	"github.com/janderssonse/cinerec/internal/watchlist"
)

// Version is set at build time.
var Version = "dev" //nolint:gochecknoglobals

// Chooser asks the user to pick one of options.
type Chooser func(ctx context.Context, title string, options []string) (string, error)

// CLI wires configuration, the recommendation core and the command tree.
type CLI struct {
	app *cli.Command

	// flags
	verbose    bool
	json       bool
	plain      bool
	apiBase    string
	configPath string
	filler     string
	theme      string
	timeout    time.Duration

	cfg    config.Config
	logger *logging.Logger
	output *console.OutputState

	recommender domain.Recommender
	choose      Chooser
	copier      share.Copier
	lookupEnv   func(string) (string, bool)
}

// Option customises a CLI.
type Option func(*CLI)

// WithRecommender replaces the HTTP recommendation client.
func WithRecommender(r domain.Recommender) Option {
	return func(c *CLI) { c.recommender = r }
}

// WithOutput replaces the console output.
func WithOutput(o *console.OutputState) Option {
	return func(c *CLI) { c.output = o }
}

// WithChooser replaces the interactive picker.
func WithChooser(choose Chooser) Option {
	return func(c *CLI) { c.choose = choose }
}

// WithCopier replaces the system clipboard.
func WithCopier(copier share.Copier) Option {
	return func(c *CLI) { c.copier = copier }
}

// WithEnv replaces the environment lookup used for configuration.
func WithEnv(lookup func(string) (string, bool)) Option {
	return func(c *CLI) { c.lookupEnv = lookup }
}

// NewCLI creates the command tree.
func NewCLI(opts ...Option) *CLI {
	app := &CLI{
		output:    console.DefaultOutput,
		choose:    huhChoose,
		copier:    share.SystemClipboard{},
		lookupEnv: os.LookupEnv,
		logger:    logging.Nop(),
	}

	for _, opt := range opts {
		opt(app)
	}

	app.app = &cli.Command{
		Name:    "cinerec",
		Usage:   "Movie recommendations in your terminal",
		Version: Version,
		Suggest: true,
		Description: `Finds movies similar to the ones you love.

Run without a command to open the interactive browser.

EXAMPLES:
  cinerec                          Open the interactive browser
  cinerec search "the dark knight"  Recommendations for a title
  cinerec search batman            Fuzzy titles are resolved first
  cinerec category horror          Browse a genre
  cinerec pick                     Choose from the quick picks

CONFIGURATION:
  $XDG_CONFIG_HOME/cinerec/config.toml, overridden by CINEREC_* variables
  and command-line flags.`,
		Flags:           app.globalFlags(),
		Before:          app.initConfig,
		After:           app.cleanup,
		Action:          app.runTUI,
		Commands:        app.createAllCommands(),
		CommandNotFound: app.commandNotFound,
	}

	if app.output.Out != nil {
		app.app.Writer = app.output.Out
	}

	if app.output.Err != nil {
		app.app.ErrWriter = app.output.Err
	}

	return app
}

// Run executes the CLI application.
func (app *CLI) Run(ctx context.Context, args []string) error {
	return app.app.Run(ctx, args)
}

func (app *CLI) globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "verbose",
			Usage:       "show progress messages and error details",
			Aliases:     []string{"v"},
			Destination: &app.verbose,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "output structured JSON results",
			Aliases:     []string{"j"},
			Destination: &app.json,
		},
		&cli.BoolFlag{
			Name:        "plain",
			Usage:       "output tab separated text for scripts",
			Destination: &app.plain,
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to the config file",
			Aliases:     []string{"c"},
			Destination: &app.configPath,
		},
		&cli.StringFlag{
			Name:        "api-base",
			Usage:       "base URL of the recommendation service",
			Destination: &app.apiBase,
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "timeout per upstream request (0 = no timeout)",
			Destination: &app.timeout,
		},
		&cli.StringFlag{
			Name:        "filler",
			Usage:       "missing year/runtime handling: unknown or synthetic",
			Destination: &app.filler,
		},
		&cli.StringFlag{
			Name:        "theme",
			Usage:       "interface palette: dark or light",
			Value:       "dark",
			Destination: &app.theme,
		},
	}
}

// initConfig loads configuration and applies flag overrides.
func (app *CLI) initConfig(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if app.json && app.plain {
		return ctx, domain.NewExitError(ExitUsageError, "cannot use both --json and --plain flags simultaneously", nil)
	}

	if app.theme != "dark" && app.theme != "light" {
		return ctx, domain.NewExitError(ExitUsageError, "invalid --theme value: must be dark or light", nil)
	}

	cfg, err := config.LoadWithEnv(app.configPath, app.lookupEnv)
	if err != nil {
		return ctx, domain.NewExitError(ExitConfigError, "failed to load configuration", err)
	}

	if cmd.IsSet("api-base") {
		cfg.APIBase = app.apiBase
	}

	if cmd.IsSet("timeout") {
		cfg.Timeout = config.Duration{Duration: app.timeout}
	}

	if cmd.IsSet("filler") {
		cfg.Filler = app.filler
	}

	if app.verbose && logging.ParseLevel(cfg.Log.Level) > logging.ParseLevel("info") {
		cfg.Log.Level = "info"
	}

	if err := cfg.Validate(); err != nil {
		return ctx, domain.NewExitError(ExitConfigError, "invalid configuration", err)
	}

	app.cfg = cfg
	app.output.SetMode(app.verbose, app.json, app.plain)

	app.logger = logging.New(logging.Config{
		Level:      cfg.Log.Level,
		File:       config.ExpandPath(cfg.Log.File),
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Output:     app.output.Stderr(),
		Console:    true,
	})

	return ctx, nil
}

func (app *CLI) cleanup(_ context.Context, _ *cli.Command) error {
	return app.logger.Close()
}

// newRecommender returns the injected recommender or an HTTP client for the configured service.
func (app *CLI) newRecommender() (domain.Recommender, error) {
	if app.recommender != nil {
		return app.recommender, nil
	}

	client, err := network.NewRecommendClient(network.ClientConfig{
		BaseURL:   app.cfg.APIBase,
		Timeout:   app.cfg.Timeout.Duration,
		Retries:   app.cfg.Retries,
		RateLimit: app.cfg.RateLimit,
		RateBurst: app.cfg.RateBurst,
		CacheSize: app.cfg.CacheSize,
		CacheTTL:  app.cfg.CacheTTL.Duration,
		Logger:    app.logger.Logger,
	})
	if err != nil {
		return nil, domain.NewExitError(ExitConfigError, "invalid api base", err)
	}

	return client, nil
}

// newCore builds a fresh view machine and the dispatcher that serves it.
func (app *CLI) newCore() (*view.Machine, *view.Dispatcher, error) {
	rec, err := app.newRecommender()
	if err != nil {
		return nil, nil, err
	}

	filler, err := aggregate.NewFiller(app.cfg.Filler, app.cfg.FillerSeed)
	if err != nil {
		return nil, nil, domain.NewExitError(ExitConfigError, "invalid filler", err)
	}

	fetcher := aggregate.New(rec,
		aggregate.WithLogger(app.logger.Logger),
		aggregate.WithMaxConcurrency(app.cfg.MaxConcurrency),
	)

	cat := app.cfg.BuildCatalog()
	machine := view.NewMachine(cat, resolve.New(cat), watchlist.New(), app.cfg.Cap)

	return machine, view.NewDispatcher(fetcher, app.cfg.Cap, filler), nil
}

func (app *CLI) newSession() (*view.Session, error) {
	machine, dispatcher, err := app.newCore()
	if err != nil {
		return nil, err
	}

	return view.NewSession(machine, dispatcher, app.logger.Logger), nil
}

func (app *CLI) commandNotFound(_ context.Context, _ *cli.Command, name string) {
	app.output.Errorf("unknown command %q, run 'cinerec --help' for a list of commands", name)
}
