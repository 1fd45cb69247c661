package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"slices"
	"time"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/artisan/internal/core/input"
	"github.com/hay-kot/artisan/internal/core/recipe"
	"github.com/hay-kot/artisan/internal/core/styles"
	"github.com/hay-kot/artisan/internal/core/validate"
	"github.com/hay-kot/artisan/pkg/executil"
)

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		c.validateInput(),
		c.validateTiming(),
		c.validateCraft(),
		c.validateGearsets(),
		c.validateRecipes(),
		criterio.Run("theme", c.Theme, validTheme),
	)
}

// ValidateDeep performs Validate plus checks that touch the filesystem: the
// config file, the macros directory and the backend executable, resolved
// through exec.
func (c *Config) ValidateDeep(configPath string, exec executil.Executor) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("macros_dir", c.MacrosDir, isDirectory),
		criterio.Run("input.backend", c.Input.Backend, backendExecutableExists(exec)),
	)
}

func (c *Config) validateInput() error {
	var errs criterio.FieldErrorsBuilder

	if !slices.Contains(input.Backends, c.Input.Backend) {
		errs = errs.Append("input.backend", fmt.Errorf("must be one of %v, got %q", input.Backends, c.Input.Backend))
	}
	if c.Input.Target == "" {
		errs = errs.Append("input.target", errors.New("cannot be empty"))
	}
	for name, val := range c.Input.Keys {
		field := fmt.Sprintf("input.keys[%q]", name)
		if !input.Key(name).Valid() {
			errs = errs.Append(field, fmt.Errorf("unknown key, must be one of %v", input.AllKeys))
		}
		if val == "" {
			errs = errs.Append(field, errors.New("key name cannot be empty"))
		}
	}

	return errs.ToError()
}

func (c *Config) validateTiming() error {
	t := c.Timing
	fields := []struct {
		name string
		d    time.Duration
	}{
		{"char_delay", t.CharDelay},
		{"command_submit", t.CommandSubmit},
		{"gearset_settle", t.GearsetSettle},
		{"menu_settle", t.MenuSettle},
		{"role_action_settle", t.RoleActionSettle},
		{"craft_window_settle", t.CraftWindowSettle},
		{"search_input_settle", t.SearchInputSettle},
		{"search_results_settle", t.SearchResultsSettle},
		{"synthesis_settle", t.SynthesisSettle},
		{"short_action", t.ShortAction},
		{"long_action", t.LongAction},
		{"collectable_prompt", t.CollectablePrompt},
		{"collectable_confirm", t.CollectableConfirm},
		{"completion_settle", t.CompletionSettle},
		{"finish_settle", t.FinishSettle},
	}

	var errs criterio.FieldErrorsBuilder
	for _, f := range fields {
		if f.d < 0 {
			errs = errs.Append("timing."+f.name, fmt.Errorf("cannot be negative, got %s", f.d))
		}
	}
	return errs.ToError()
}

func (c *Config) validateCraft() error {
	var errs criterio.FieldErrorsBuilder

	if c.Craft.SearchBackwardSteps < 1 {
		errs = errs.Append("craft.search_backward_steps", errors.New("must be at least 1"))
	}
	if c.Craft.RoleActionSlots < 1 {
		errs = errs.Append("craft.role_action_slots", errors.New("must be at least 1"))
	}
	for i, name := range c.Craft.RoleActions {
		if name == "" {
			errs = errs.Append(fmt.Sprintf("craft.role_actions[%d]", i), errors.New("cannot be empty"))
		}
	}

	return errs.ToError()
}

func (c *Config) validateGearsets() error {
	var errs criterio.FieldErrorsBuilder

	for job, n := range c.Gearsets {
		field := fmt.Sprintf("gearsets[%q]", job)
		if _, err := recipe.NormalizeJob(job); err != nil {
			errs = errs.Append(field, err)
		}
		if n < 1 || n > validate.MaxGearset {
			errs = errs.Append(field, fmt.Errorf("gearset must be between 1 and %d, got %d", validate.MaxGearset, n))
		}
	}

	return errs.ToError()
}

func (c *Config) validateRecipes() error {
	var errs criterio.FieldErrorsBuilder

	u, err := url.Parse(c.Recipes.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = errs.Append("recipes.base_url", fmt.Errorf("must be an http(s) URL, got %q", c.Recipes.BaseURL))
	}
	if c.Recipes.Timeout <= 0 {
		errs = errs.Append("recipes.timeout", errors.New("must be positive"))
	}

	return errs.ToError()
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// backendExecutableExists validates that the backend's executable is on PATH.
func backendExecutableExists(exec executil.Executor) func(string) error {
	return func(backend string) error {
		name := input.Executable(backend)
		if name == "" {
			return nil
		}
		if _, err := exec.LookPath(name); err != nil {
			return fmt.Errorf("executable not found: %s", name)
		}
		return nil
	}
}

// isDirectory validates that a path exists and is a directory.
func isDirectory(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return errors.New("exists but is not a directory")
	}
	return nil
}

func validTheme(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q, must be one of %v", name, styles.ThemeNames())
	}
	return nil
}
