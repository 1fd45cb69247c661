package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/artisan/internal/artisan"
	"github.com/hay-kot/artisan/internal/core/craft"
	"github.com/hay-kot/artisan/internal/core/validate"
)

type CraftCmd struct {
	flags *Flags
	app   *artisan.App

	index       int
	count       int
	gearset     int
	job         string
	collectable bool
	dryRun      bool
	yes         bool
	noLookup    bool
	materials   []string
}

func NewCraftCmd(flags *Flags, app *artisan.App) *CraftCmd {
	return &CraftCmd{flags: flags, app: app}
}

func (cmd *CraftCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "craft",
		Usage:     "Craft an item using a macro",
		UsageText: "artisan craft [options] <item> <macro>",
		Description: `Looks up the item's recipe, parses the macro and drives the crafting log
in the game window.

<macro> is a macro name inside macros_dir or a path to a macro file. Macro
files hold in-game macro lines such as:

  /ac "Inner Quiet" <wait.2>
  /ac "Basic Synthesis" <wait.3>

Use --no-lookup with --material to skip the recipe lookup:

  artisan craft --no-lookup --material "Iron Ore=2" --material "Fire Shard=1" "Iron Ingot" ingot`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "index",
				Aliases:     []string{"i"},
				Usage:       "search result to pick when several recipes match (0 is the first)",
				Destination: &cmd.index,
			},
			&cli.IntFlag{
				Name:        "count",
				Aliases:     []string{"c"},
				Usage:       "number of items to craft",
				Value:       1,
				Destination: &cmd.count,
			},
			&cli.IntFlag{
				Name:        "gearset",
				Aliases:     []string{"g"},
				Usage:       "gearset to switch to before crafting (0 keeps the current one)",
				Destination: &cmd.gearset,
			},
			&cli.StringFlag{
				Name:        "job",
				Aliases:     []string{"j"},
				Usage:       "crafter abbreviation (CRP, BSM, ...); picks the recipe and the configured gearset",
				Destination: &cmd.job,
			},
			&cli.BoolFlag{
				Name:        "collectable",
				Usage:       "craft in collectable synthesis mode",
				Destination: &cmd.collectable,
			},
			&cli.BoolFlag{
				Name:        "dry-run",
				Aliases:     []string{"n"},
				Usage:       "select the recipe but skip the syntheses",
				Destination: &cmd.dryRun,
			},
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "skip the confirmation prompt",
				Destination: &cmd.yes,
			},
			&cli.BoolFlag{
				Name:        "no-lookup",
				Usage:       "do not look up the recipe; materials come from --material",
				Destination: &cmd.noLookup,
			},
			&cli.StringSliceFlag{
				Name:        "material",
				Aliases:     []string{"m"},
				Usage:       "ingredient as name=count, in recipe order (requires --no-lookup)",
				Destination: &cmd.materials,
			},
		},
		ShellComplete: MacroNameCompleter(cmd.app),
		Action:        cmd.run,
	})
	return app
}

func (cmd *CraftCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 2 {
		return fmt.Errorf("expected <item> and <macro>, got %d argument(s)", c.Args().Len())
	}

	spec, err := cmd.spec(c.Args().Get(0), c.Args().Get(1))
	if err != nil {
		return err
	}

	task, err := cmd.app.Tasks.Resolve(ctx, spec)
	if err != nil {
		return err
	}

	return runTasks(ctx, cmd.flags, cmd.app, []craft.Task{task}, cmd.dryRun, cmd.yes)
}

func (cmd *CraftCmd) spec(item, macroRef string) (artisan.TaskSpec, error) {
	spec := artisan.TaskSpec{
		Item:        item,
		Job:         cmd.job,
		Macro:       macroRef,
		Index:       cmd.index,
		Count:       cmd.count,
		Gearset:     cmd.gearset,
		Collectable: cmd.collectable,
	}

	switch {
	case cmd.noLookup && len(cmd.materials) == 0:
		return spec, fmt.Errorf("--no-lookup requires at least one --material")
	case !cmd.noLookup && len(cmd.materials) > 0:
		return spec, fmt.Errorf("--material requires --no-lookup")
	}

	for _, m := range cmd.materials {
		mat, err := validate.ParseMaterial(m)
		if err != nil {
			return spec, err
		}
		spec.Materials = append(spec.Materials, mat)
	}

	spec.Normalize()
	if err := spec.Validate(); err != nil {
		return spec, fmt.Errorf("invalid arguments: %w", err)
	}
	return spec, nil
}
