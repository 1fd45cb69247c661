package artisan

import (
	"context"

	"github.com/hay-kot/artisan/internal/core/config"
	"github.com/hay-kot/artisan/internal/core/doctor"
	"github.com/hay-kot/artisan/internal/core/input"
	"github.com/hay-kot/artisan/pkg/executil"
)

// DoctorService runs health checks on the artisan setup.
type DoctorService struct {
	config     *config.Config
	exec       executil.Executor
	newLocator func() (input.Locator, error)
}

// NewDoctorService creates a new DoctorService.
func NewDoctorService(cfg *config.Config, exec executil.Executor, newLocator func() (input.Locator, error)) *DoctorService {
	return &DoctorService{
		config:     cfg,
		exec:       exec,
		newLocator: newLocator,
	}
}

// RunChecks executes all doctor checks against the configured backend and
// target window.
func (d *DoctorService) RunChecks(ctx context.Context, configPath string, autofix bool) doctor.Report {
	checks := []doctor.Check{
		doctor.NewConfigCheck(d.config, configPath, d.exec),
		doctor.NewToolsCheck(d.config.Input.Backend, d.exec),
	}

	// An unknown backend is already reported by the config check.
	if locator, err := d.newLocator(); err == nil {
		checks = append(checks, doctor.NewTargetCheck(locator, d.config.Input.Target))
	}

	checks = append(checks, doctor.NewMacrosCheck(d.config.MacrosDir, autofix))
	return doctor.Run(ctx, d.config.Input.Backend, d.config.Input.Target, checks)
}
