package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/artisan/internal/artisan"
	"github.com/hay-kot/artisan/pkg/iojson"
)

type RecipeCmd struct {
	flags *Flags
	app   *artisan.App
	job   string
	json  bool
}

func NewRecipeCmd(flags *Flags, app *artisan.App) *RecipeCmd {
	return &RecipeCmd{flags: flags, app: app}
}

func (cmd *RecipeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "recipe",
		Usage:     "Look up an item's recipe and materials",
		UsageText: "artisan recipe [options] <item>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "job",
				Aliases:     []string{"j"},
				Usage:       "crafter abbreviation (CRP, BSM, ...)",
				Destination: &cmd.job,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.json,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *RecipeCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected <item>, got %d argument(s)", c.Args().Len())
	}

	name := c.Args().First()
	item, err := cmd.app.Recipes.Lookup(ctx, name, cmd.job)
	if err != nil {
		if !cmd.json {
			return err
		}
		data := iojson.ErrorData(err)
		data["item"] = name
		if cmd.job != "" {
			data["job"] = cmd.job
		}
		if werr := iojson.WriteError(errWriter(c), "recipe lookup failed", data); werr != nil {
			return werr
		}
		return cli.Exit("", 1)
	}

	if cmd.json {
		return iojson.WriteWith(c.Root().Writer, errWriter(c), item)
	}

	_, err = fmt.Fprint(c.Root().Writer, renderMarkdown(itemMarkdown(item)))
	return err
}
