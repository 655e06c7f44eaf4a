package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tms/internal/tms"
)

// StringIDCompleter returns a ShellCompleteFunc that suggests the cached
// string ids of the selected language as positional completions.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func StringIDCompleter(flags *Flags, app *tms.App, language *string) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
			// Only the first argument is a string id.
			if args.Len() > 1 {
				return
			}
		}

		records, _, err := app.Reviews.Records(ctx, flags.LanguageFlag(*language))
		if err != nil {
			return
		}

		w := cmd.Root().Writer
		for _, r := range records {
			_, _ = fmt.Fprintln(w, r.StringID)
		}
	}
}
