package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tms/internal/core/annotation"
	"github.com/colonyops/tms/internal/core/grid"
	"github.com/colonyops/tms/internal/core/styles"
	"github.com/colonyops/tms/internal/tms"
	"github.com/colonyops/tms/pkg/iojson"
)

type CommentCmd struct {
	flags *Flags
	app   *tms.App

	language   string
	jsonOutput bool
}

// NewCommentCmd creates a new comment command.
func NewCommentCmd(flags *Flags, app *tms.App) *CommentCmd {
	return &CommentCmd{flags: flags, app: app}
}

// Register adds the comment command to the application.
func (cmd *CommentCmd) Register(app *cli.Command) *cli.Command {
	languageFlag := &cli.StringFlag{
		Name:        "language",
		Aliases:     []string{"l"},
		Usage:       "target language (defaults to review.target_language)",
		Destination: &cmd.language,
	}

	app.Commands = append(app.Commands, &cli.Command{
		Name:  "comment",
		Usage: "Read and write string comments",
		Commands: []*cli.Command{
			{
				Name:          "ls",
				Usage:         "Show the comment thread of a string",
				UsageText:     "tms comment ls <string-id>",
				Flags:         []cli.Flag{languageFlag, &cli.BoolFlag{Name: "json", Usage: "output as JSON lines", Destination: &cmd.jsonOutput}},
				ShellComplete: StringIDCompleter(cmd.flags, cmd.app, &cmd.language),
				Action:        cmd.runList,
			},
			{
				Name:          "add",
				Usage:         "Add a comment to a string",
				UsageText:     "tms comment add <string-id> <text...>",
				Flags:         []cli.Flag{languageFlag},
				ShellComplete: StringIDCompleter(cmd.flags, cmd.app, &cmd.language),
				Action:        cmd.runAdd,
			},
		},
	})

	return app
}

func (cmd *CommentCmd) runList(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one string id")
	}
	id := c.Args().First()
	lang := cmd.flags.LanguageFlag(cmd.language)

	comments, err := cmd.app.Reviews.Comments(ctx, lang, id)
	if err != nil {
		return fmt.Errorf("list comments: %w", err)
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.WriteLines(out, comments)
	}

	if len(comments) == 0 {
		_, _ = fmt.Fprintf(out, "No comments on %s\n", id)
		return nil
	}
	for _, cm := range comments {
		_, _ = fmt.Fprintf(out, "%s %s\n  %s\n", styles.CommentAuthor.Render(cm.Author), styles.CommentTimestamp.Render(cm.Timestamp), cm.Text)
	}
	return nil
}

func (cmd *CommentCmd) runAdd(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() < 2 {
		return fmt.Errorf("expected a string id and comment text")
	}
	id := c.Args().First()
	text := strings.Join(c.Args().Tail(), " ")
	lang := cmd.flags.LanguageFlag(cmd.language)

	comment, err := annotation.NewService().AddComment(id, text, cmd.app.Config.Review.Author)
	if err != nil {
		return err
	}

	err = cmd.app.Reviews.Persist(ctx, []grid.Effect{{
		Op:      grid.OpCommentAdd,
		Payload: grid.CommentPayload{Language: lang, RecordID: id, Comment: comment},
	}})
	if err != nil {
		return fmt.Errorf("add comment: %w", err)
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "Commented on %s as %s\n", id, comment.Author)
	return nil
}
