package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/tms/internal/core/styles"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "tms config validate [options]",
				Description: "Validates the configuration file: backend URL, language tags, import globs, theme and data directory.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

type validationIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func issues(err error) []validationIssue {
	if err == nil {
		return nil
	}
	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []validationIssue{{Message: err.Error()}}
	}
	out := make([]validationIssue, len(fieldErrs))
	for i, fe := range fieldErrs {
		out[i] = validationIssue{Field: fe.Field, Message: fe.Err.Error()}
	}
	return out
}

func (cmd *ConfigValidateCmd) run(_ context.Context, c *cli.Command) error {
	found := issues(cmd.flags.Config.ValidateDeep(cmd.flags.ConfigPath))
	out := c.Root().Writer

	if cmd.format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Valid  bool              `json:"valid"`
			Errors []validationIssue `json:"errors,omitempty"`
		}{Valid: len(found) == 0, Errors: found})
	}

	if len(found) == 0 {
		_, _ = fmt.Fprintln(out, styles.ProgressCompleted.Render("✔ Configuration is valid"))
		return nil
	}

	for _, is := range found {
		_, _ = fmt.Fprintf(out, "%s %s: %s\n", styles.ProgressLow.Render("✘"), is.Field, is.Message)
	}
	_, _ = fmt.Fprintln(out)
	return cli.Exit(fmt.Sprintf("%d error(s) found", len(found)), 1)
}
