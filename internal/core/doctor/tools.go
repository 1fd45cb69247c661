package doctor

import (
	"context"

	"github.com/hay-kot/artisan/internal/core/input"
	"github.com/hay-kot/artisan/pkg/executil"
)

// ToolsCheck verifies that the input backend executables are available on
// $PATH. Only the configured backend is required.
type ToolsCheck struct {
	backend string
	exec    executil.Executor
}

// NewToolsCheck creates a new tools check.
func NewToolsCheck(backend string, exec executil.Executor) *ToolsCheck {
	return &ToolsCheck{backend: backend, exec: exec}
}

func (c *ToolsCheck) Name() string {
	return "Input Backends"
}

func (c *ToolsCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	for _, backend := range input.Backends {
		name := input.Executable(backend)
		required := backend == c.backend

		path, err := c.exec.LookPath(name)
		switch {
		case err == nil:
			result.Items = append(result.Items, CheckItem{
				Label:  name,
				Status: StatusPass,
				Detail: path,
			})
		case required:
			result.Items = append(result.Items, CheckItem{
				Label:  name,
				Status: StatusFail,
				Detail: "not found on PATH (required by input.backend)",
			})
		default:
			result.Items = append(result.Items, CheckItem{
				Label:  name,
				Status: StatusWarn,
				Detail: "not found on PATH (optional)",
			})
		}
	}

	return result
}
