// Package artisan wires configuration, input backends, recipe lookup and the
// orchestrator into the services the commands consume.
package artisan

import (
	"github.com/hay-kot/artisan/internal/core/config"
	"github.com/hay-kot/artisan/internal/core/input"
	"github.com/hay-kot/artisan/internal/core/logging"
	"github.com/hay-kot/artisan/internal/core/recipe"
	"github.com/hay-kot/artisan/pkg/executil"
)

// App is the central entry point for all artisan operations.
// Commands consume App instead of cherry-picking raw dependencies.
type App struct {
	Config  *config.Config
	Exec    executil.Executor
	Craft   *CraftService
	Tasks   *Resolver
	Doctor  *DoctorService
	Recipes recipe.Source
}

// NewApp constructs an App from explicit dependencies.
func NewApp(cfg *config.Config, exec executil.Executor, recipes recipe.Source) *App {
	newLocator := func() (input.Locator, error) {
		return input.NewLocator(cfg.InputOptions(), exec, logging.Component("input"))
	}

	return &App{
		Config:  cfg,
		Exec:    exec,
		Craft:   NewCraftService(cfg, newLocator, logging.Component("craft")),
		Tasks:   NewResolver(recipes, cfg.MacrosDir, cfg.Gearset, logging.Component("tasks")),
		Doctor:  NewDoctorService(cfg, exec, newLocator),
		Recipes: recipes,
	}
}
