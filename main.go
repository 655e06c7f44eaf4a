package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/tms/internal/commands"
	"github.com/colonyops/tms/internal/core/config"
	"github.com/colonyops/tms/internal/core/logging"
	"github.com/colonyops/tms/internal/core/styles"
	"github.com/colonyops/tms/internal/data/db"
	"github.com/colonyops/tms/internal/data/stores"
	"github.com/colonyops/tms/internal/tms"
	"github.com/colonyops/tms/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		tmsApp    = &tms.App{}
		database  *db.DB
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "tms",
		Usage:     "Review translations from the terminal",
		UsageText: "tms [global options] command [command options]",
		Description: `tms is a terminal front-end for a translation management system.

It lists the strings of a target language, lets reviewers edit candidate
translations, change statuses and discuss strings, and keeps a local cache
so that work continues when the backend is unreachable.

Run 'tms' with no arguments to open the review grid.
Run 'tms import seeds/*.json' to load strings into the local cache.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TMS_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/tms.log)",
				Sources:     cli.EnvVars("TMS_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TMS_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("TMS_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.StringFlag{
				Name:        "token",
				Usage:       "API token (overrides backend.token)",
				Sources:     cli.EnvVars("TMS_TOKEN"),
				Destination: &flags.Token,
			},
			&cli.BoolFlag{
				Name:        "offline",
				Usage:       "work against the local cache only",
				Sources:     cli.EnvVars("TMS_OFFLINE"),
				Destination: &flags.Offline,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Always log to a file; the TUI owns the terminal.
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "tms.log")
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger.Hook(logging.ContextHook{})
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			if flags.Token != "" {
				cfg.Backend.Token = flags.Token
			}
			flags.Config = cfg

			// Apply configured theme (validation ensures name is valid)
			palette, _ := styles.GetPalette(cfg.TUI.Theme)
			styles.SetTheme(palette)

			database, err = openDatabase(cfg.DataDir)
			if err != nil {
				return ctx, err
			}

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*tmsApp = *tms.NewApp(cfg, database, flags.Offline)

			log.Debug().
				Str("data_dir", cfg.DataDir).
				Bool("offline", tmsApp.Reviews.Offline()).
				Msg("tms ready")
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			// Close database connection
			if database != nil {
				if err := database.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close database")
					return err
				}
			}

			// Close log file
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	reviewCmd := commands.NewReviewCmd(flags, tmsApp)

	app = reviewCmd.Register(app)
	app = commands.NewLsCmd(flags, tmsApp).Register(app)
	app = commands.NewImportCmd(flags, tmsApp).Register(app)
	app = commands.NewCommentCmd(flags, tmsApp).Register(app)
	app = commands.NewCatalogCmd(flags, tmsApp).Register(app)
	app = commands.NewCacheCmd(flags, tmsApp).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)

	// Register review flags on root command
	app.Flags = append(app.Flags, reviewCmd.Flags()...)

	// Open the review grid when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'tms --help' for usage", c.Args().First())
		}
		return reviewCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}

// openDatabase opens the cache in dataDir. A corrupted file is moved aside
// and a fresh cache is created.
func openDatabase(dataDir string) (*db.DB, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	database, err := db.Open(dataDir, db.DefaultOpenOptions())
	if err == nil {
		return database, nil
	}
	if !stores.IsCorruptionError(err) {
		return nil, fmt.Errorf("open database: %w", err)
	}

	log.Warn().Err(err).Msg("cache database is corrupted, starting a fresh one")
	if err := stores.RecoverFromCorruption(dataDir); err != nil {
		return nil, fmt.Errorf("recover database: %w", err)
	}
	database, err = db.Open(dataDir, db.DefaultOpenOptions())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return database, nil
}
