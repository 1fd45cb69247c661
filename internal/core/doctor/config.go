package doctor

import (
	"context"
	"errors"
	"os"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/artisan/internal/core/config"
	"github.com/hay-kot/artisan/pkg/executil"
)

// ConfigCheck reports on the config file and runs deep validation.
type ConfigCheck struct {
	cfg  *config.Config
	path string
	exec executil.Executor
}

// NewConfigCheck creates a new config check.
func NewConfigCheck(cfg *config.Config, path string, exec executil.Executor) *ConfigCheck {
	return &ConfigCheck{cfg: cfg, path: path, exec: exec}
}

func (c *ConfigCheck) Name() string {
	return "Configuration"
}

func (c *ConfigCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	item := CheckItem{Label: "config file", Status: StatusPass, Detail: c.path}
	if c.path == "" {
		item.Detail = "none, using defaults"
	} else if _, err := os.Stat(c.path); os.IsNotExist(err) {
		item.Detail = c.path + " not found, using defaults"
	}
	result.Items = append(result.Items, item)

	err := c.cfg.ValidateDeep(c.path, c.exec)
	if err == nil {
		result.Items = append(result.Items, CheckItem{Label: "validation", Status: StatusPass})
		return result
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		result.Items = append(result.Items, CheckItem{
			Label:  "validation",
			Status: StatusFail,
			Detail: err.Error(),
		})
		return result
	}

	for _, fe := range fieldErrs {
		result.Items = append(result.Items, CheckItem{
			Label:  fe.Field,
			Status: StatusFail,
			Detail: fe.Err.Error(),
		})
	}
	return result
}
