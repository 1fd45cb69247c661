package artisan

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/artisan/internal/core/config"
	"github.com/hay-kot/artisan/internal/core/doctor"
	"github.com/hay-kot/artisan/internal/core/input"
	"github.com/hay-kot/artisan/internal/core/recipe"
	"github.com/hay-kot/artisan/pkg/executil"
)

func resultNames(results []doctor.Result) []string {
	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.Name
	}
	return names
}

func TestDoctorService_RunChecks(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.MacrosDir = t.TempDir()
	exec := &executil.RecordingExecutor{}

	app := NewApp(&cfg, exec, recipe.NewStatic())
	report := app.Doctor.RunChecks(context.Background(), "", false)

	assert.Equal(t, []string{"Configuration", "Input Backends", "Target Window", "Macros"}, resultNames(report.Checks))
	assert.Equal(t, "xdotool", report.Backend)
	assert.Equal(t, "FINAL FANTASY XIV", report.Target)
	assert.Contains(t, exec.Lines(), `xdotool search --name FINAL FANTASY XIV`)
}

func TestDoctorService_SkipsTargetWithoutBackend(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.MacrosDir = t.TempDir()

	svc := NewDoctorService(&cfg, &executil.RecordingExecutor{}, func() (input.Locator, error) {
		return nil, errors.New("unknown input backend")
	})
	report := svc.RunChecks(context.Background(), "", false)

	require.Len(t, report.Checks, 3)
	assert.NotContains(t, resultNames(report.Checks), "Target Window")
}
