package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/artisan/internal/artisan"
	"github.com/hay-kot/artisan/internal/commands"
	"github.com/hay-kot/artisan/internal/core/config"
	"github.com/hay-kot/artisan/internal/core/logging"
	"github.com/hay-kot/artisan/internal/core/recipe"
	"github.com/hay-kot/artisan/internal/core/styles"
	"github.com/hay-kot/artisan/pkg/executil"
	"github.com/hay-kot/artisan/pkg/logutils"
	"github.com/hay-kot/artisan/pkg/utils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		logCloser  func()
		artisanApp = &artisan.App{}
	)

	flags := &commands.Flags{
		Console: utils.NewDeferredWriter(os.Stderr),
	}

	app := &cli.Command{
		Name:      "artisan",
		Usage:     "Automate crafting in FINAL FANTASY XIV",
		UsageText: "artisan [global options] command [command options]",
		Description: `Artisan drives the in-game crafting log with simulated key presses.

It looks up the recipe, selects the materials and plays back a crafting macro
for as many repetitions as requested, switching gearsets and role actions as
needed.

Run 'artisan doctor' to check your setup.
Run 'artisan craft <item> <macro>' to craft a single item.`,
		Version:               build(),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("ARTISAN_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (logs go to stderr when unset)",
				Sources:     cli.EnvVars("ARTISAN_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Usage:       "path to config file",
				Sources:     cli.EnvVars("ARTISAN_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile, flags.Console)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger.Hook(logging.ContextHook{})
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			// Apply configured theme (validation ensures name is valid)
			palette, _ := styles.GetPalette(cfg.Theme)
			styles.SetTheme(palette)

			recipes := recipe.NewClient(cfg.RecipeOptions(), logging.Component("recipe"))

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*artisanApp = *artisan.NewApp(cfg, &executil.RealExecutor{}, recipes)

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if err := flags.Console.Release(); err != nil {
				log.Error().Err(err).Msg("failed to flush console logs")
			}

			// Close log file
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	app = commands.NewCraftCmd(flags, artisanApp).Register(app)
	app = commands.NewBatchCmd(flags, artisanApp).Register(app)
	app = commands.NewMacrosCmd(flags, artisanApp).Register(app)
	app = commands.NewRecipeCmd(flags, artisanApp).Register(app)
	app = commands.NewDoctorCmd(flags, artisanApp).Register(app)
	app = commands.NewConfigCmd(flags, artisanApp).Register(app)

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	stop()
	os.Exit(exitCode)
}
