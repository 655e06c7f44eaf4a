package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tms/internal/core/translation"
	"github.com/colonyops/tms/internal/importer"
	"github.com/colonyops/tms/internal/tms"
	"github.com/colonyops/tms/pkg/iojson"
)

type ImportCmd struct {
	flags *Flags
	app   *tms.App

	language string
	push     bool
	input    *iojson.FileReader[[]translation.Record]
}

// NewImportCmd creates a new import command.
func NewImportCmd(flags *Flags, app *tms.App) *ImportCmd {
	return &ImportCmd{
		flags: flags,
		app:   app,
		input: iojson.NewFileReader[[]translation.Record](),
	}
}

// Register adds the import command to the application.
func (cmd *ImportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "import",
		Usage:     "Load strings from JSON seed files into the local cache",
		UsageText: "tms import [--language <code>] [--push] [glob...]",
		Description: `Reads JSON arrays of strings and merges them into the cached snapshot of
a target language. Strings already cached are replaced, new ones are
appended.

Arguments are doublestar globs such as "seeds/**/*.json". Without
arguments the import.sources patterns from the config are used, and
without those a JSON array is read from --file or stdin.

With --push, strings that were not cached yet are also created on the
backend.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "language",
				Aliases:     []string{"l"},
				Usage:       "target language (defaults to review.target_language)",
				Destination: &cmd.language,
			},
			&cli.BoolFlag{
				Name:        "push",
				Usage:       "create new strings on the backend",
				Destination: &cmd.push,
			},
			cmd.input.Flag(),
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ImportCmd) run(ctx context.Context, c *cli.Command) error {
	records, err := cmd.read(c.Args().Slice())
	if err != nil {
		return err
	}

	lang := cmd.flags.LanguageFlag(cmd.language)
	summary, err := cmd.app.Reviews.Import(ctx, lang, records, cmd.push)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	out := c.Root().Writer
	_, _ = fmt.Fprintf(out, "Imported %d strings into %s: %d added, %d updated", len(records), lang, summary.Added, summary.Updated)
	if cmd.push {
		_, _ = fmt.Fprintf(out, ", %d pushed", summary.Pushed)
	}
	_, _ = fmt.Fprintln(out)
	return nil
}

// read resolves the input: explicit globs, then configured sources, then
// --file or stdin.
func (cmd *ImportCmd) read(args []string) ([]translation.Record, error) {
	patterns := args
	if len(patterns) == 0 && !cmd.input.HasFile() && !cmd.input.Piped() {
		patterns = cmd.app.Config.Import.Sources
	}

	if len(patterns) > 0 {
		res, err := importer.Load(patterns)
		if err != nil {
			return nil, err
		}
		for _, id := range res.Duplicates {
			fmt.Fprintf(os.Stderr, "Skipping duplicate string %s\n", id)
		}
		return res.Records, nil
	}

	raw, err := cmd.input.Read()
	if errors.Is(err, iojson.ErrNoInput) {
		return nil, errors.New("nothing to import: pass a glob, set import.sources or pipe a JSON array")
	}
	if err != nil {
		return nil, err
	}

	records, err := importer.Normalize(raw)
	if err != nil {
		return nil, err
	}
	records, dups := importer.Dedupe(records)
	for _, id := range dups {
		fmt.Fprintf(os.Stderr, "Skipping duplicate string %s\n", id)
	}
	return records, nil
}
