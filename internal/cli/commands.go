// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	cli "github.com/urfave/cli/v3"

	"github.com/janderssonse/cinerec/internal/console"
	"github.com/janderssonse/cinerec/internal/domain"
	"github.com/janderssonse/cinerec/internal/resolve"
	"github.com/janderssonse/cinerec/internal/share"
	"github.com/janderssonse/cinerec/internal/view"
)

const renderWidth = 80

func (app *CLI) createAllCommands() []*cli.Command {
	return []*cli.Command{
		app.createSearchCommand(),
		app.createResolveCommand(),
		app.createLandingCommand(),
		app.createCategoryCommand(),
		app.createCategoriesCommand(),
		app.createMarqueeCommand(),
		app.createPickCommand(),
		app.createShowCommand(),
		app.createShareCommand(),
		app.createConfigCommand(),
	}
}

func (app *CLI) createSearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Aliases:   []string{"s"},
		Usage:     "Recommend movies similar to a title",
		ArgsUsage: "<title...>",
		Description: `Looks up recommendations for a title. Fuzzy input such as
"batman" or "nolan" is first resolved to a well-known title.

EXAMPLES:
  cinerec search inception
  cinerec search --json the dark knight`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			state, err := app.search(ctx, queryArg(cmd))
			if err != nil {
				return err
			}

			app.output.Movies(listingOf(state))

			return nil
		},
	}
}

func (app *CLI) createResolveCommand() *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Usage:     "Show which title a fuzzy query resolves to",
		ArgsUsage: "<query...>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			query := queryArg(cmd)
			if strings.TrimSpace(query) == "" {
				return app.fail(domain.ErrEmptyQuery)
			}

			title, matched := resolve.New(app.cfg.BuildCatalog()).Resolve(query)
			if !matched {
				title = strings.TrimSpace(query)
			}

			switch {
			case app.output.JSON:
				app.output.JSONResult("success", map[string]any{
					"query":   query,
					"title":   title,
					"matched": matched,
				})
			case app.output.Plain:
				app.output.PlainValue(title)
			case matched:
				app.output.Successf("%q resolves to %s", query, app.output.Bold(title))
			default:
				app.output.Warningf("no alias for %q, it is searched as written", query)
			}

			return nil
		},
	}
}

func (app *CLI) createLandingCommand() *cli.Command {
	return &cli.Command{
		Name:    "landing",
		Aliases: []string{"popular"},
		Usage:   "Show the popular landing selection",
		Action: func(ctx context.Context, _ *cli.Command) error {
			session, err := app.newSession()
			if err != nil {
				return err
			}

			app.output.Progressf("Loading popular movies from %s", app.cfg.APIBase)

			state, err := session.SelectCategory(ctx, 0)
			if err != nil {
				return app.fail(err)
			}

			app.output.Movies(listingOf(state))

			return nil
		},
	}
}

func (app *CLI) createCategoryCommand() *cli.Command {
	return &cli.Command{
		Name:      "category",
		Aliases:   []string{"genre"},
		Usage:     "Browse a category by label or index",
		ArgsUsage: "<label|index>",
		Description: `Filters the popular selection by genre. When nothing in the
selection matches, recommendations for the category's seed title are shown.

EXAMPLES:
  cinerec category horror
  cinerec category 5`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			arg := queryArg(cmd)
			if arg == "" {
				return domain.NewExitError(ExitUsageError, "category requires a label or index", nil)
			}

			index, err := app.categoryIndex(arg)
			if err != nil {
				return app.fail(err)
			}

			session, err := app.newSession()
			if err != nil {
				return err
			}

			if _, err := session.SelectCategory(ctx, 0); err != nil {
				return app.fail(err)
			}

			state, err := session.SelectCategory(ctx, index)
			if err != nil {
				return app.fail(err)
			}

			app.output.Movies(listingOf(state))

			return nil
		},
	}
}

func (app *CLI) createCategoriesCommand() *cli.Command {
	return &cli.Command{
		Name:  "categories",
		Usage: "List the available categories",
		Action: func(_ context.Context, _ *cli.Command) error {
			cat := app.cfg.BuildCatalog()

			switch {
			case app.output.JSON:
				app.output.JSONResult("success", map[string]any{"categories": cat.Categories})
			case app.output.Plain:
				labels := make([]string, 0, len(cat.Categories))
				for _, c := range cat.Categories {
					labels = append(labels, c.Label)
				}

				app.output.PlainList(labels)
			default:
				out := app.output.Stdout()
				_, _ = fmt.Fprintln(out, app.output.Header("Categories"))

				for i, c := range cat.Categories {
					keywords := strings.Join(c.Keywords, ", ")
					if c.IsAll() {
						keywords = "everything"
					}

					_, _ = fmt.Fprintf(out, "%3d  %s  %s\n", i, console.Pad(c.Label, 12), keywords)
				}
			}

			return nil
		},
	}
}

func (app *CLI) createMarqueeCommand() *cli.Command {
	return &cli.Command{
		Name:  "marquee",
		Usage: "Show the rotating featured strip",
		Action: func(ctx context.Context, _ *cli.Command) error {
			session, err := app.newSession()
			if err != nil {
				return err
			}

			state := session.Start(ctx)
			app.output.Movies(console.Listing{Label: "Featured", Movies: state.Marquee})

			return nil
		},
	}
}

func (app *CLI) createShowCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show the detail card of a title",
		ArgsUsage: "<title...>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			movie, err := app.lookup(ctx, queryArg(cmd))
			if err != nil {
				return err
			}

			if app.output.JSON {
				app.output.JSONResult("success", map[string]any{"result": movie})

				return nil
			}

			card := share.Markdown(movie)
			if app.output.Plain || !app.output.IsTTY() {
				app.output.PlainValue(card)

				return nil
			}

			app.output.PlainValue(renderMarkdown(card, app.theme))

			return nil
		},
	}
}

func (app *CLI) createShareCommand() *cli.Command {
	var copyText bool

	return &cli.Command{
		Name:      "share",
		Usage:     "Print or copy a shareable blurb for a title",
		ArgsUsage: "<title...>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "copy",
				Usage:       "copy the text to the clipboard",
				Destination: &copyText,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			movie, err := app.lookup(ctx, queryArg(cmd))
			if err != nil {
				return err
			}

			text := share.Text(movie)
			copied := false

			if copyText {
				if _, err := share.Copy(app.copier, movie); err != nil {
					app.output.Warningf("clipboard unavailable: %v", err)
				} else {
					copied = true
				}
			}

			if app.output.JSON {
				app.output.JSONResult("success", map[string]any{"text": text, "copied": copied})

				return nil
			}

			app.output.PlainValue(text)

			if copied {
				app.output.Successf("Copied to clipboard")
			}

			return nil
		},
	}
}

func (app *CLI) createConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Print the effective configuration",
		Action: func(_ context.Context, _ *cli.Command) error {
			if app.output.JSON {
				app.output.JSONResult("success", map[string]any{"config": app.cfg})

				return nil
			}

			if err := app.cfg.Encode(app.output.Stdout()); err != nil {
				return domain.NewExitError(ExitGeneralError, "failed to encode configuration", err)
			}

			return nil
		},
	}
}

// search runs a single search session.
func (app *CLI) search(ctx context.Context, query string) (view.State, error) {
	session, err := app.newSession()
	if err != nil {
		return view.State{}, err
	}

	app.output.Progressf("Searching for %q", query)

	state, err := session.Search(ctx, query)
	if err != nil {
		return state, app.fail(err)
	}

	return state, nil
}

// lookup searches for query and returns the searched title itself.
func (app *CLI) lookup(ctx context.Context, query string) (domain.Movie, error) {
	state, err := app.search(ctx, query)
	if err != nil {
		return domain.Movie{}, err
	}

	for _, m := range state.Movies {
		if m.IsSearched {
			return m, nil
		}
	}

	if len(state.Movies) > 0 {
		return state.Movies[0], nil
	}

	return domain.Movie{}, app.fail(fmt.Errorf("%w: %s", domain.ErrSearchNotFound, query))
}

func (app *CLI) categoryIndex(arg string) (int, error) {
	cat := app.cfg.BuildCatalog()

	if i, err := strconv.Atoi(arg); err == nil {
		if _, err := cat.Category(i); err != nil {
			return -1, err
		}

		return i, nil
	}

	return cat.CategoryIndex(arg)
}

func queryArg(cmd *cli.Command) string {
	return strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
}

func listingOf(state view.State) console.Listing {
	listing := console.Listing{
		Label:        state.Label,
		Mode:         state.Mode.String(),
		ResolvedFrom: state.ResolvedFrom,
		Movies:       state.Movies,
	}

	if state.Notice != nil {
		listing.Notice = state.Notice.Error()
	}

	return listing
}

func renderMarkdown(markdown, theme string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(theme),
		glamour.WithWordWrap(renderWidth),
	)
	if err != nil {
		return markdown
	}

	out, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}

	return out
}
