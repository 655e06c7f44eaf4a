package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/tms/internal/core/catalog"
	"github.com/colonyops/tms/internal/core/styles"
	"github.com/colonyops/tms/internal/tms"
	"github.com/colonyops/tms/pkg/iojson"
)

// CatalogCmd groups the projects, variants and languages listings.
type CatalogCmd struct {
	flags *Flags
	app   *tms.App

	search     string
	page       int
	jsonOutput bool
}

// NewCatalogCmd creates the catalog commands.
func NewCatalogCmd(flags *Flags, app *tms.App) *CatalogCmd {
	return &CatalogCmd{flags: flags, app: app}
}

func (cmd *CatalogCmd) listFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "search",
			Aliases:     []string{"s"},
			Usage:       "case-insensitive text to filter by",
			Destination: &cmd.search,
		},
		&cli.IntFlag{
			Name:        "page",
			Aliases:     []string{"p"},
			Usage:       "page to show",
			Value:       1,
			Destination: &cmd.page,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "output as JSON lines",
			Destination: &cmd.jsonOutput,
		},
	}
}

// Register adds the projects, variants and languages commands.
func (cmd *CatalogCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:      "projects",
			Usage:     "List translation projects",
			UsageText: "tms projects [--search <text>] [--page <n>] [--json]",
			Flags:     cmd.listFlags(),
			Action:    cmd.runProjects,
		},
		&cli.Command{
			Name:      "variants",
			Usage:     "List the variants of a project",
			UsageText: "tms variants <project-id> [--search <text>] [--page <n>] [--json]",
			Flags:     cmd.listFlags(),
			Action:    cmd.runVariants,
		},
		&cli.Command{
			Name:      "languages",
			Usage:     "List the target languages of a variant",
			UsageText: "tms languages [variant-id] [--search <text>] [--page <n>] [--json]",
			Description: `Lists the target languages of a variant with their review progress.

Without a variant id, or without a backend, the languages that have a
cached snapshot are listed instead.`,
			Flags:  cmd.listFlags(),
			Action: cmd.runLanguages,
		},
	)
	return app
}

func (cmd *CatalogCmd) query() tms.Query {
	return tms.Query{Search: cmd.search, Page: cmd.page}
}

func (cmd *CatalogCmd) runProjects(ctx context.Context, c *cli.Command) error {
	page, err := cmd.app.Catalog.Projects(ctx, cmd.query())
	if err != nil {
		return fmt.Errorf("list projects: %w", err)
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.WriteLines(out, page.Items)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tTYPE\tSTATUS")
	for _, p := range page.Items {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Type, p.Status)
	}
	_ = w.Flush()
	writePager(c, page.Page, page.TotalPages, page.Total, "projects")
	return nil
}

func (cmd *CatalogCmd) runVariants(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return errors.New("expected exactly one project id")
	}

	page, err := cmd.app.Catalog.Variants(ctx, c.Args().First(), cmd.query())
	if err != nil {
		return fmt.Errorf("list variants: %w", err)
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.WriteLines(out, page.Items)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tBRANCH\tSTATUS\tDESCRIPTION")
	for _, v := range page.Items {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", v.ID, v.Name, v.Branch, v.Status, v.Description)
	}
	_ = w.Flush()
	writePager(c, page.Page, page.TotalPages, page.Total, "variants")
	return nil
}

func (cmd *CatalogCmd) runLanguages(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() == 0 || cmd.app.Reviews.Offline() {
		return cmd.runCachedLanguages(ctx, c)
	}

	page, err := cmd.app.Catalog.Languages(ctx, c.Args().First(), cmd.query())
	if errors.Is(err, tms.ErrOffline) {
		return cmd.runCachedLanguages(ctx, c)
	}
	if err != nil {
		return fmt.Errorf("list languages: %w", err)
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.WriteLines(out, page.Items)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "CODE\tLANGUAGE\tCOUNTRY\tSTRINGS\tPROGRESS")
	for _, l := range page.Items {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", l.LanguageCode, l.LanguageName, l.CountryName, l.TotalTexts, progressBar(l.Progress))
	}
	_ = w.Flush()
	writePager(c, page.Page, page.TotalPages, page.Total, "languages")
	return nil
}

func (cmd *CatalogCmd) runCachedLanguages(ctx context.Context, c *cli.Command) error {
	codes, err := cmd.app.Reviews.CachedLanguages(ctx)
	if err != nil {
		return fmt.Errorf("list cached languages: %w", err)
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.WriteLines(out, codes)
	}
	if len(codes) == 0 {
		_, _ = fmt.Fprintln(out, "No cached languages. Run 'tms import' or 'tms review' first.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "CODE\tLANGUAGE")
	for _, code := range codes {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", code, catalog.LanguageName(code))
	}
	return w.Flush()
}

func writePager(c *cli.Command, page, pages, total int, noun string) {
	_, _ = fmt.Fprintf(c.Root().Writer, "\n%s\n", styles.MutedStyle.Render(fmt.Sprintf("Page %d of %d · %d %s", page, pages, total, noun)))
}

const progressWidth = 10

// progressBar draws pct as a fixed-width bar colored by its band.
func progressBar(pct int) string {
	pct = min(max(pct, 0), 100)
	filled := pct * progressWidth / 100

	var style lipgloss.Style
	switch catalog.ProgressBand(pct) {
	case catalog.BandComplete:
		style = styles.ProgressCompleted
	case catalog.BandPartial:
		style = styles.ProgressPartial
	default:
		style = styles.ProgressLow
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", progressWidth-filled)
	return style.Render(fmt.Sprintf("%s %3d%%", bar, pct))
}
