package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/artisan/internal/artisan"
	"github.com/hay-kot/artisan/pkg/iojson"
)

type BatchCmd struct {
	flags  *Flags
	app    *artisan.App
	fr     *iojson.FileReader[artisan.BatchInput]
	dryRun bool
	yes    bool
	format string
}

func NewBatchCmd(flags *Flags, app *artisan.App) *BatchCmd {
	return &BatchCmd{
		flags: flags,
		app:   app,
		fr:    &iojson.FileReader[artisan.BatchInput]{},
	}
}

func (cmd *BatchCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "batch",
		Usage: "Craft several items from a JSON or YAML task list",
		UsageText: `artisan batch [options]

Read from stdin:
  echo '{"tasks":[{"item":"Iron Ingot","macro":"ingot","count":5}]}' | artisan batch

Read from file:
  artisan batch -f tasks.yaml`,
		Description: `Runs every task in order as one batch. Recipes are looked up and macros
parsed before any input is sent, so a bad entry fails the whole batch early.

Input schema:
  {
    "tasks": [
      {
        "item": "Iron Ingot",
        "macro": "ingot",
        "job": "BSM",
        "count": 5,
        "index": 0,
        "gearset": 0,
        "collectable": false,
        "materials": [{"name": "Iron Ore", "count": 2}]
      }
    ]
  }

Fields:
  item        - Required. Item name as shown in the crafting log.
  macro       - Required. Macro name inside macros_dir, or a file path.
  job         - Optional. Crafter abbreviation; selects the recipe and the
                configured gearset.
  count       - Optional. Number of crafts (default 1).
  index       - Optional. Search result to pick (default 0).
  gearset     - Optional. Gearset number; overrides the job's gearset.
  collectable - Optional. Craft in collectable synthesis mode.
  materials   - Optional. Ingredients in recipe order; skips the lookup.`,
		Flags: []cli.Flag{
			cmd.fr.Flag(),
			&cli.BoolFlag{
				Name:        "dry-run",
				Aliases:     []string{"n"},
				Usage:       "select each recipe but skip the syntheses",
				Destination: &cmd.dryRun,
			},
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "skip the confirmation prompt",
				Destination: &cmd.yes,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "error output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *BatchCmd) run(ctx context.Context, c *cli.Command) error {
	input, err := cmd.fr.Read()
	if err != nil {
		return cmd.fail(c, "read input", err)
	}

	input.Normalize()
	if err := input.Validate(); err != nil {
		return cmd.fail(c, "invalid input", err)
	}

	tasks, err := cmd.app.Tasks.ResolveAll(ctx, input.Tasks)
	if err != nil {
		return cmd.fail(c, "resolve tasks", err)
	}

	return runTasks(ctx, cmd.flags, cmd.app, tasks, cmd.dryRun, cmd.yes)
}

// fail reports an error that happened before any input was sent, as JSON on
// the error writer when --format json is set.
func (cmd *BatchCmd) fail(c *cli.Command, msg string, err error) error {
	if cmd.format != "json" {
		return fmt.Errorf("%s: %w", msg, err)
	}
	if werr := iojson.WriteError(errWriter(c), msg, iojson.ErrorData(err)); werr != nil {
		return werr
	}
	return cli.Exit("", 1)
}
