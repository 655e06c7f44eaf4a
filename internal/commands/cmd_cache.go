package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tms/internal/core/logging"
	"github.com/colonyops/tms/internal/tms"
)

type CacheCmd struct {
	flags *Flags
	app   *tms.App
}

// NewCacheCmd creates the local cache commands.
func NewCacheCmd(flags *Flags, app *tms.App) *CacheCmd {
	return &CacheCmd{flags: flags, app: app}
}

// Register adds the cache command to the application.
func (cmd *CacheCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "cache",
		Usage: "Manage the local cache",
		Commands: []*cli.Command{
			{
				Name:      "clear",
				Usage:     "Drop every cached string, comment and activity entry",
				UsageText: "tms cache clear",
				Description: `Empties the local cache. The next 'tms review' refetches from the API;
offline work that was never pushed is lost.`,
				Action: cmd.runClear,
			},
		},
	})
	return app
}

func (cmd *CacheCmd) runClear(ctx context.Context, c *cli.Command) error {
	langs, err := cmd.app.Reviews.CachedLanguages(ctx)
	if err != nil {
		return fmt.Errorf("list cached languages: %w", err)
	}
	if err := cmd.app.DB.Reset(ctx); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}

	logging.Component("cache").Info().Strs("languages", langs).Msg("cache cleared")
	_, _ = fmt.Fprintf(c.Root().Writer, "Cleared the local cache (%d languages)\n", len(langs))
	return nil
}
