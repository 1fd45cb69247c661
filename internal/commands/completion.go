package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/artisan/internal/artisan"
	"github.com/hay-kot/artisan/internal/core/macro"
)

// MacroNameCompleter returns a ShellCompleteFunc that suggests macro names
// from the macros directory once the item argument has been typed.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func MacroNameCompleter(app *artisan.App) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		args := cmd.Args()
		if args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}
		if args.Len() < 1 {
			return
		}

		files, err := macro.Discover(app.Config.MacrosDir)
		if err != nil {
			return
		}

		w := cmd.Root().Writer
		for _, f := range files {
			_, _ = fmt.Fprintln(w, f.Name)
		}
	}
}
