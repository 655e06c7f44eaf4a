package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/tms/internal/core/logging"
	"github.com/colonyops/tms/internal/tms"
	"github.com/colonyops/tms/internal/tui"
)

type ReviewCmd struct {
	flags *Flags
	app   *tms.App

	language string
}

// NewReviewCmd creates a new review command.
func NewReviewCmd(flags *Flags, app *tms.App) *ReviewCmd {
	return &ReviewCmd{flags: flags, app: app}
}

// Flags returns the review flags so the root command can accept them too.
func (cmd *ReviewCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "language",
			Aliases:     []string{"l"},
			Usage:       "target language to review (defaults to review.target_language)",
			Local:       true,
			Destination: &cmd.language,
		},
	}
}

// Register adds the review command to the application.
func (cmd *ReviewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "review",
		Usage:     "Open the review grid for a target language",
		UsageText: "tms review [--language <code>]",
		Description: `Opens the interactive review grid.

Strings load from the API when a backend is configured and reachable, and
from the local cache otherwise. Edits are saved when a cell loses focus.

Examples:
  tms review              # review the configured target language
  tms review -l de        # review German
  tms --offline review    # work against the local cache only`,
		Flags:  cmd.Flags(),
		Action: cmd.Run,
	})

	return app
}

// Run starts the TUI and blocks until it exits.
func (cmd *ReviewCmd) Run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.app.Config
	lang := cmd.flags.LanguageFlag(cmd.language)

	logger := logging.Session("review", lang, cmd.app.Reviews.Offline())
	logger.Debug().Msg("starting review")

	m := tui.New(tui.Options{
		Service:         cmd.app.Reviews,
		Language:        lang,
		LengthLimit:     cfg.Review.LengthLimit,
		Author:          cfg.Review.Author,
		SourceLanguages: cfg.Review.SourceLanguages,
		Timeout:         cfg.Backend.Timeout,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		logger.Error().Err(err).Msg("review ended")
		return fmt.Errorf("run tui: %w", err)
	}
	logger.Debug().Msg("review closed")
	return nil
}
