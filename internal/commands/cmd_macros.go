package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/artisan/internal/artisan"
	"github.com/hay-kot/artisan/internal/core/craft"
	"github.com/hay-kot/artisan/internal/core/macro"
	"github.com/hay-kot/artisan/internal/core/styles"
	"github.com/hay-kot/artisan/pkg/iojson"
)

type MacrosCmd struct {
	flags *Flags
	app   *artisan.App
	json  bool
}

func NewMacrosCmd(flags *Flags, app *artisan.App) *MacrosCmd {
	return &MacrosCmd{flags: flags, app: app}
}

func (cmd *MacrosCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "macros",
		Usage:     "List macros in the macros directory",
		UsageText: "artisan macros [--json]",
		Flags: []cli.Flag{
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

// MacroInfo describes a discovered macro.
type MacroInfo struct {
	Name    string         `json:"name"`
	Path    string         `json:"path"`
	Actions []craft.Action `json:"actions,omitempty"`
	Error   string         `json:"error,omitempty"`
}

func (cmd *MacrosCmd) run(_ context.Context, c *cli.Command) error {
	files, err := macro.Discover(cmd.app.Config.MacrosDir)
	if err != nil {
		return err
	}

	infos := make([]MacroInfo, 0, len(files))
	for _, f := range files {
		info := MacroInfo{Name: f.Name, Path: f.Path}
		actions, err := macro.ParseFile(f.Path)
		if err != nil {
			info.Error = err.Error()
		}
		info.Actions = actions
		infos = append(infos, info)
	}

	if cmd.json {
		return iojson.WriteWith(c.Root().Writer, errWriter(c), infos)
	}

	w := c.Root().Writer
	if len(infos) == 0 {
		_, _ = fmt.Fprintln(w, styles.TextMutedStyle.Render("no macros in "+cmd.app.Config.MacrosDir))
		return nil
	}

	for _, info := range infos {
		if info.Error != "" {
			_, _ = fmt.Fprintf(w, "%s %s %s\n",
				styles.TextErrorStyle.Render(styles.IconFail),
				styles.TextForegroundBoldStyle.Render(info.Name),
				styles.TextMutedStyle.Render(info.Error))
			continue
		}
		_, _ = fmt.Fprintf(w, "%s %s %s\n",
			styles.TextSuccessStyle.Render(styles.IconPass),
			styles.TextForegroundBoldStyle.Render(info.Name),
			styles.TextMutedStyle.Render(fmt.Sprintf("%d actions", len(info.Actions))))
	}
	return nil
}
