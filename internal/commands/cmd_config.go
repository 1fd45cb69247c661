package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/hay-kot/artisan/internal/artisan"
	"github.com/hay-kot/artisan/internal/core/styles"
	"github.com/hay-kot/artisan/pkg/iojson"
)

type ConfigCmd struct {
	flags  *Flags
	app    *artisan.App
	format string
}

// NewConfigCmd creates a new config command.
func NewConfigCmd(flags *Flags, app *artisan.App) *ConfigCmd {
	return &ConfigCmd{flags: flags, app: app}
}

// Register adds the config commands to the application.
func (cmd *ConfigCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "artisan config validate [options]",
				Description: "Validates the configuration file, including the macros directory and the input backend executable.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.runValidate,
			},
			{
				Name:      "show",
				Usage:     "Print the effective configuration as YAML",
				UsageText: "artisan config show",
				Action:    cmd.runShow,
			},
		},
	})

	return app
}

func (cmd *ConfigCmd) runValidate(_ context.Context, c *cli.Command) error {
	err := cmd.flags.Config.ValidateDeep(cmd.flags.ConfigPath, cmd.app.Exec)

	if cmd.format == "json" {
		if err == nil {
			return iojson.WriteWith(c.Root().Writer, errWriter(c), map[string]bool{"valid": true})
		}
		if werr := iojson.WriteError(errWriter(c), "configuration is invalid", iojson.ErrorData(err)); werr != nil {
			return werr
		}
		return cli.Exit("", 1)
	}

	var fieldErrs criterio.FieldErrors
	if err != nil && !errors.As(err, &fieldErrs) {
		fieldErrs = criterio.FieldErrors{{Field: "config", Err: err}}
	}

	w := c.Root().Writer
	if err == nil {
		_, _ = fmt.Fprintln(w, styles.TextSuccessStyle.Render(styles.IconPass+" configuration is valid"))
		return nil
	}

	for _, fe := range fieldErrs {
		_, _ = fmt.Fprintf(w, "%s %s %s\n",
			styles.TextErrorStyle.Render(styles.IconFail),
			styles.TextForegroundBoldStyle.Render(fe.Field),
			styles.TextMutedStyle.Render(fe.Err.Error()))
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, styles.TextErrorStyle.Render(fmt.Sprintf("%d error(s) found", len(fieldErrs))))
	return cli.Exit("", 1)
}

func (cmd *ConfigCmd) runShow(_ context.Context, c *cli.Command) error {
	enc := yaml.NewEncoder(c.Root().Writer)
	enc.SetIndent(2)
	if err := enc.Encode(cmd.flags.Config); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}
