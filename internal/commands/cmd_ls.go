package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tms/internal/core/pagination"
	"github.com/colonyops/tms/internal/core/projection"
	"github.com/colonyops/tms/internal/core/styles"
	"github.com/colonyops/tms/internal/core/translation"
	"github.com/colonyops/tms/internal/tms"
	"github.com/colonyops/tms/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	app   *tms.App

	// flags
	language   string
	search     string
	status     string
	sourceLang string
	page       int
	all        bool
	jsonOutput bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *tms.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List strings of a target language",
		UsageText: "tms ls [--language <code>] [--search <text>] [--status <status>] [--page <n>] [--json]",
		Description: `Displays one page of strings with their status and translations.

Filters combine: a string is listed when it matches the search text, the
status and the source language. Use --all to skip pagination and --json
for one JSON object per line.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "language",
				Aliases:     []string{"l"},
				Usage:       "target language (defaults to review.target_language)",
				Destination: &cmd.language,
			},
			&cli.StringFlag{
				Name:        "search",
				Aliases:     []string{"s"},
				Usage:       "case-insensitive text matched against source and translations",
				Destination: &cmd.search,
			},
			&cli.StringFlag{
				Name:        "status",
				Usage:       "only strings with this status (pending, in progress, approved, rejected)",
				Destination: &cmd.status,
			},
			&cli.StringFlag{
				Name:        "source-lang",
				Usage:       "only strings with this source language",
				Destination: &cmd.sourceLang,
			},
			&cli.IntFlag{
				Name:        "page",
				Aliases:     []string{"p"},
				Usage:       "page to show, clamped to the available pages",
				Value:       1,
				Destination: &cmd.page,
			},
			&cli.BoolFlag{
				Name:        "all",
				Usage:       "list every matching string",
				Destination: &cmd.all,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) filter() (projection.FilterState, error) {
	f := projection.FilterState{
		SearchText:           cmd.search,
		SourceLanguageFilter: cmd.sourceLang,
	}
	if cmd.status != "" {
		status, ok := translation.ParseStatus(cmd.status)
		if !ok {
			return f, fmt.Errorf("unknown status %q", cmd.status)
		}
		f.StatusFilter = status
	}
	return f, nil
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	f, err := cmd.filter()
	if err != nil {
		return err
	}

	lang := cmd.flags.LanguageFlag(cmd.language)
	records, origin, err := cmd.app.Reviews.Records(ctx, lang)
	if err != nil {
		return fmt.Errorf("list strings: %w", err)
	}
	if origin == tms.OriginCache && !cmd.jsonOutput {
		fmt.Fprintln(os.Stderr, "Backend unavailable, listing cached strings")
	}

	matches := projection.FilterRecords(records, f)
	page := pagination.Page[translation.Record]{Items: matches, Page: 1, TotalPages: 1, Total: len(matches)}
	if !cmd.all {
		page = pagination.Paginate(matches, pagination.DefaultPageSize, cmd.page)
	}

	out := c.Root().Writer
	limit := cmd.app.Config.Review.LengthLimit
	rows := projection.Project(page.Items, limit)

	if cmd.jsonOutput {
		infos := make([]recordInfo, len(rows))
		for i, row := range rows {
			infos[i] = recordInfo{Record: row.Record, LengthOK: row.LengthOK}
		}
		return iojson.WriteLines(out, infos)
	}

	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "No strings found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tSTATUS\tSOURCE\tLANG\tTRANSLATIONS")
	for _, row := range rows {
		r := row.Record
		values := make([]string, len(r.TargetValues))
		for j, v := range r.TargetValues {
			values[j] = fmt.Sprintf("%s (%d/%d)", v, utf8.RuneCountInString(v), limit)
			if !row.LengthOK[j] {
				values[j] += "!"
			}
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.StringID, styles.Badge(row.Badge)+" "+string(r.Status), r.SourceValue, r.SourceLanguage, strings.Join(values, " | "))
	}
	_ = w.Flush()

	_, _ = fmt.Fprintf(out, "\nPage %d of %d · %d of %d strings\n", page.Page, page.TotalPages, len(matches), len(records))
	return nil
}

// recordInfo is the JSON output format for tms ls --json.
type recordInfo struct {
	translation.Record
	LengthOK []bool `json:"lengthOk"`
}
