package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/artisan/pkg/executil"
)

// validConfig returns a Config with all required fields set for testing.
func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.MacrosDir = t.TempDir()
	return &cfg
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig(t).Validate())
}

func TestValidate_CollectsFieldErrors(t *testing.T) {
	cfg := validConfig(t)
	cfg.Input.Target = ""
	cfg.Craft.RoleActionSlots = 0
	cfg.Recipes.BaseURL = "ftp://example.com"

	err := cfg.Validate()

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)

	fields := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		fields[i] = fe.Field
	}
	assert.ElementsMatch(t, []string{"input.target", "craft.role_action_slots", "recipes.base_url"}, fields)
}

func TestValidate_RoleActions(t *testing.T) {
	cfg := validConfig(t)
	cfg.Craft.RoleActions = []string{"Waste Not", ""}

	err := cfg.Validate()

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "craft.role_actions[1]", fieldErrs[0].Field)
}

func TestValidateDeep_MacrosDir(t *testing.T) {
	cfg := validConfig(t)
	cfg.MacrosDir = filepath.Join(t.TempDir(), "missing")

	err := cfg.ValidateDeep("", &executil.RecordingExecutor{})

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)

	found := false
	for _, fe := range fieldErrs {
		if fe.Field == "macros_dir" {
			found = true
		}
	}
	assert.True(t, found, "expected macros_dir error, got %v", err)
}

func TestValidateDeep_ConfigFileIsDirectory(t *testing.T) {
	cfg := validConfig(t)
	dir := t.TempDir()

	err := cfg.ValidateDeep(dir, &executil.RecordingExecutor{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestValidateDeep_StopsOnStructuralErrors(t *testing.T) {
	cfg := validConfig(t)
	cfg.Input.Backend = "wayland"

	err := cfg.ValidateDeep("", &executil.RecordingExecutor{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input.backend")
}

func TestValidateDeep_BackendExecutable(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		missing []string
		wantErr bool
	}{
		{name: "xdotool present", backend: "xdotool"},
		{name: "xdotool missing", backend: "xdotool", missing: []string{"xdotool"}, wantErr: true},
		{name: "other backend missing", backend: "tmux", missing: []string{"xdotool"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			cfg.Input.Backend = tt.backend

			err := cfg.ValidateDeep("", &executil.RecordingExecutor{Missing: tt.missing})
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, "input.backend", fieldErrs[0].Field)
			assert.Contains(t, fieldErrs[0].Err.Error(), "executable not found: xdotool")
		})
	}
}

func TestIsDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	assert.NoError(t, isDirectory(dir))
	assert.Error(t, isDirectory(file))
	assert.Error(t, isDirectory(filepath.Join(dir, "missing")))
}
