package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/artisan/internal/artisan"
	"github.com/hay-kot/artisan/internal/core/config"
	"github.com/hay-kot/artisan/internal/core/craft"
	"github.com/hay-kot/artisan/internal/core/input"
	"github.com/hay-kot/artisan/internal/core/recipe"
	"github.com/hay-kot/artisan/pkg/executil"
)

const ingotMacro = `/ac "Inner Quiet" <wait.2>
/ac "Basic Synthesis" <wait.3>
`

type testEnv struct {
	flags *Flags
	app   *artisan.App
	rec   *input.Recorder
	exec  *executil.RecordingExecutor
	dir   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ingot.macro"), []byte(ingotMacro), 0o644))

	cfg := config.DefaultConfig()
	cfg.MacrosDir = dir
	cfg.Gearsets = map[string]int{"BSM": 3}

	rec := input.NewRecorder()
	recipes := recipe.NewStatic(craft.Item{
		Name:      "Iron Ingot",
		Job:       "BSM",
		Materials: []craft.Material{{Name: "Iron Ore", Count: 2}, {Name: "Fire Shard", Count: 1}},
	})

	exec := &executil.RecordingExecutor{
		Outputs: map[string][]byte{"xdotool": []byte("4194307\n")},
	}
	locator := func() (input.Locator, error) { return rec, nil }

	app := &artisan.App{
		Config:  &cfg,
		Exec:    exec,
		Craft:   artisan.NewCraftService(&cfg, locator, zerolog.Nop()),
		Tasks:   artisan.NewResolver(recipes, cfg.MacrosDir, cfg.Gearset, zerolog.Nop()),
		Recipes: recipes,
		Doctor:  artisan.NewDoctorService(&cfg, exec, locator),
	}

	return &testEnv{
		flags: &Flags{Config: &cfg},
		app:   app,
		rec:   rec,
		exec:  exec,
		dir:   dir,
	}
}

func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	// ExitErrHandler keeps cli.Exit from terminating the test binary.
	root := &cli.Command{
		Name:           "artisan",
		Writer:         &out,
		ErrWriter:      &out,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
	root = NewCraftCmd(e.flags, e.app).Register(root)
	root = NewBatchCmd(e.flags, e.app).Register(root)
	root = NewMacrosCmd(e.flags, e.app).Register(root)
	root = NewRecipeCmd(e.flags, e.app).Register(root)
	root = NewConfigCmd(e.flags, e.app).Register(root)
	root = NewDoctorCmd(e.flags, e.app).Register(root)

	err := root.Run(context.Background(), append([]string{"artisan"}, args...))
	return out.String(), err
}

func TestCraftCmd(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "craft", "-y", "-c", "2", "Iron Ingot", "ingot")
	require.NoError(t, err)

	typed := env.rec.Typed()
	assert.Contains(t, typed, "/gearset change 3")
	assert.Contains(t, typed, "Iron Ingot")
	assert.Contains(t, typed, `/ac "Basic Synthesis"`)
}

func TestCraftCmd_NoLookup(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "craft", "-y", "-n", "--no-lookup", "-m", "Maple Log=3", "Maple Lumber", filepath.Join(env.dir, "ingot.macro"))
	require.NoError(t, err)
	assert.Contains(t, env.rec.Typed(), "Maple Lumber")
}

func TestCraftCmd_ArgumentErrors(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing macro", []string{"craft", "Iron Ingot"}, "expected <item> and <macro>"},
		{"material without no-lookup", []string{"craft", "-m", "Iron Ore=2", "Iron Ingot", "ingot"}, "--material requires --no-lookup"},
		{"no-lookup without material", []string{"craft", "--no-lookup", "Iron Ingot", "ingot"}, "requires at least one --material"},
		{"bad material", []string{"craft", "--no-lookup", "-m", "Iron Ore", "Iron Ingot", "ingot"}, "expected name=count"},
		{"negative count", []string{"craft", "--count=-1", "Iron Ingot", "ingot"}, "invalid arguments"},
		{"unknown macro", []string{"craft", "-y", "Iron Ingot", "nope"}, "macro not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
	assert.Zero(t, env.rec.Len(), "no input is sent for invalid arguments")
}

func TestBatchCmd(t *testing.T) {
	env := newTestEnv(t)

	path := filepath.Join(env.dir, "tasks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`tasks:
  - item: Iron Ingot
    macro: ingot
    count: 1
  - item: Bronze Ingot
    macro: ingot
    gearset: 5
    materials:
      - name: Copper Ore
        count: 2
`), 0o644))

	_, err := env.run(t, "batch", "-y", "-f", path)
	require.NoError(t, err)

	typed := env.rec.Typed()
	assert.Contains(t, typed, "/gearset change 3")
	assert.Contains(t, typed, "/gearset change 5")
	assert.Contains(t, typed, "Bronze Ingot")
}

func TestBatchCmd_InvalidInput(t *testing.T) {
	env := newTestEnv(t)

	path := filepath.Join(env.dir, "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tasks":[{"item":"","macro":"ingot"}]}`), 0o644))

	_, err := env.run(t, "batch", "-y", "-f", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid input")
	assert.Zero(t, env.rec.Len())
}

func TestBatchCmd_InvalidInputJSON(t *testing.T) {
	env := newTestEnv(t)

	path := filepath.Join(env.dir, "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tasks":[{"item":"","macro":"ingot"}]}`), 0o644))

	out, err := env.run(t, "batch", "-y", "--format", "json", "-f", path)
	require.Error(t, err)
	assert.Contains(t, out, `"message": "invalid input"`)
	assert.Contains(t, out, `"field": "tasks[0].item"`)
	assert.Zero(t, env.rec.Len())
}

func TestMacrosCmd(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(env.dir, "broken.macro"), []byte("/echo hi\n"), 0o644))

	out, err := env.run(t, "macros")
	require.NoError(t, err)
	assert.Contains(t, out, "ingot")
	assert.Contains(t, out, "2 actions")
	assert.Contains(t, out, "broken")

	out, err = env.run(t, "macros", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "ingot"`)
	assert.Contains(t, out, `"error":`)
}

func TestRecipeCmd(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "recipe", "iron ingot")
	require.NoError(t, err)
	assert.Contains(t, out, "## Iron Ingot (BSM)")
	assert.Contains(t, out, "| Iron Ore | 2 |")

	out, err = env.run(t, "recipe", "--json", "Iron Ingot")
	require.NoError(t, err)
	assert.Contains(t, out, `"job": "BSM"`)

	_, err = env.run(t, "recipe", "Mythril Ingot")
	require.ErrorIs(t, err, recipe.ErrRecipeNotFound)
}

func TestRecipeCmd_JSONError(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "recipe", "--json", "--job", "GSM", "Mythril Ingot")
	require.Error(t, err)
	assert.Contains(t, out, `"message": "recipe lookup failed"`)
	assert.Contains(t, out, `"item": "Mythril Ingot"`)
	assert.Contains(t, out, `"job": "GSM"`)
	assert.Contains(t, out, "recipe not found")
}

func TestConfigCmd_Show(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "backend: xdotool")
	assert.Contains(t, out, "char_delay: 20ms")
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "artisan", "config.yaml"), DefaultConfigPath())
}

func TestConfigCmd_Validate(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "config", "validate", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"valid": true`)

	env.exec.Missing = []string{"xdotool"}

	out, err = env.run(t, "config", "validate", "--format", "json")
	require.Error(t, err)
	assert.Contains(t, out, `"message": "configuration is invalid"`)
	assert.Contains(t, out, `"field": "input.backend"`)
	assert.Contains(t, out, "executable not found: xdotool")

	out, err = env.run(t, "config", "validate")
	require.Error(t, err)
	assert.Contains(t, out, "1 error(s) found")
}

func TestDoctorCmd(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "doctor")
	require.NoError(t, err)
	assert.Contains(t, out, "xdotool -> FINAL FANTASY XIV")
	assert.Contains(t, out, "ready to craft")

	env.exec.Missing = []string{"xdotool"}

	out, err = env.run(t, "doctor")
	require.Error(t, err)
	assert.Contains(t, out, "not ready to craft")
	assert.Contains(t, out, "Configuration: input.backend (executable not found: xdotool)")
	assert.Contains(t, out, "Input Backends: xdotool")
}

func TestDoctorCmd_JSON(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "doctor", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"ready": true`)
	assert.Contains(t, out, `"backend": "xdotool"`)
	assert.Contains(t, out, `"name": "Target Window"`)
	assert.Contains(t, out, `"name": "Macros"`)
	assert.NotContains(t, out, `"blockers"`)
}
