// Package config handles configuration loading and validation for artisan.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hay-kot/artisan/internal/core/craft"
	"github.com/hay-kot/artisan/internal/core/input"
	"github.com/hay-kot/artisan/internal/core/recipe"
	"github.com/hay-kot/artisan/internal/core/styles"
)

// DefaultTarget is the window title of the game client.
const DefaultTarget = "FINAL FANTASY XIV"

// Config holds the application configuration.
type Config struct {
	Input     InputConfig    `yaml:"input"`
	Timing    craft.Timing   `yaml:"timing"`
	Craft     CraftConfig    `yaml:"craft"`
	Gearsets  map[string]int `yaml:"gearsets"`   // job abbreviation -> gearset number
	MacrosDir string         `yaml:"macros_dir"` // relative paths resolve against the config file
	Recipes   RecipesConfig  `yaml:"recipes"`
	Theme     string         `yaml:"theme"`
}

// InputConfig selects and tunes the input backend.
type InputConfig struct {
	Backend string `yaml:"backend"` // xdotool or tmux
	// Target is the window title (xdotool) or target pane (tmux).
	Target string `yaml:"target"`
	// Keys overrides backend key names, keyed by logical key (confirm, up, ...).
	Keys map[string]string `yaml:"keys"`
}

// CraftConfig tunes the crafting sequence.
type CraftConfig struct {
	SearchBackwardSteps int      `yaml:"search_backward_steps"`
	RoleActionSlots     int      `yaml:"role_action_slots"`
	RoleActions         []string `yaml:"role_actions"`
}

// RecipesConfig configures the recipe lookup service.
type RecipesConfig struct {
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
	Language string        `yaml:"language"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Input: InputConfig{
			Backend: input.BackendXdotool,
			Target:  DefaultTarget,
			Keys:    map[string]string{},
		},
		Timing: craft.DefaultTiming(),
		Craft: CraftConfig{
			SearchBackwardSteps: craft.DefaultSearchBackwardSteps,
			RoleActionSlots:     craft.DefaultRoleActionSlots,
			RoleActions:         append([]string(nil), craft.DefaultRoleActions...),
		},
		Gearsets: map[string]int{},
		Recipes: RecipesConfig{
			BaseURL:  recipe.DefaultBaseURL,
			Timeout:  recipe.DefaultTimeout,
			Language: recipe.DefaultLanguage,
		},
		Theme: styles.DefaultTheme,
	}
}

// Load reads configuration from the given path. If configPath is empty or
// doesn't exist, the defaults are returned.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults(configPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options and
// normalizes names.
func (c *Config) applyDefaults(configPath string) {
	defaults := DefaultConfig()

	c.Input.Backend = strings.ToLower(strings.TrimSpace(c.Input.Backend))
	if c.Input.Backend == "" {
		c.Input.Backend = defaults.Input.Backend
	}
	if c.Input.Target == "" {
		c.Input.Target = defaults.Input.Target
	}
	if c.Craft.SearchBackwardSteps == 0 {
		c.Craft.SearchBackwardSteps = defaults.Craft.SearchBackwardSteps
	}
	if c.Craft.RoleActionSlots == 0 {
		c.Craft.RoleActionSlots = defaults.Craft.RoleActionSlots
	}
	if len(c.Craft.RoleActions) == 0 {
		c.Craft.RoleActions = defaults.Craft.RoleActions
	}
	if c.Recipes.BaseURL == "" {
		c.Recipes.BaseURL = defaults.Recipes.BaseURL
	}
	if c.Recipes.Timeout == 0 {
		c.Recipes.Timeout = defaults.Recipes.Timeout
	}
	if c.Recipes.Language == "" {
		c.Recipes.Language = defaults.Recipes.Language
	}
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}

	gearsets := make(map[string]int, len(c.Gearsets))
	for job, n := range c.Gearsets {
		gearsets[strings.ToUpper(strings.TrimSpace(job))] = n
	}
	c.Gearsets = gearsets

	configDir := "."
	if configPath != "" {
		configDir = filepath.Dir(configPath)
	}
	if c.MacrosDir == "" {
		c.MacrosDir = filepath.Join(configDir, "macros")
	} else if !filepath.IsAbs(c.MacrosDir) {
		c.MacrosDir = filepath.Join(configDir, c.MacrosDir)
	}
}

// Gearset returns the configured gearset for a job abbreviation, or 0.
func (c *Config) Gearset(job string) int {
	return c.Gearsets[strings.ToUpper(strings.TrimSpace(job))]
}

// SequencerOptions returns the sequencer settings described by the config.
func (c *Config) SequencerOptions() craft.SequencerOptions {
	return craft.SequencerOptions{
		Timing:              c.Timing,
		SearchBackwardSteps: c.Craft.SearchBackwardSteps,
	}
}

// InputOptions returns the backend settings described by the config.
func (c *Config) InputOptions() input.Options {
	return input.Options{
		Backend: c.Input.Backend,
		Target:  c.Input.Target,
		Keys:    c.Input.Keys,
	}
}

// RecipeOptions returns the recipe client settings described by the config.
func (c *Config) RecipeOptions() recipe.Options {
	return recipe.Options{
		BaseURL:  c.Recipes.BaseURL,
		Language: c.Recipes.Language,
		Timeout:  c.Recipes.Timeout,
	}
}
