package doctor

import (
	"context"
	"fmt"
	"os"

	"github.com/hay-kot/artisan/internal/core/macro"
)

// MacrosCheck verifies the macros directory and parses every macro in it.
type MacrosCheck struct {
	dir     string
	autofix bool
}

// NewMacrosCheck creates a new macros check. With autofix a missing
// directory is created.
func NewMacrosCheck(dir string, autofix bool) *MacrosCheck {
	return &MacrosCheck{dir: dir, autofix: autofix}
}

func (c *MacrosCheck) Name() string {
	return "Macros"
}

func (c *MacrosCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name(), Required: true}

	info, err := os.Stat(c.dir)
	switch {
	case os.IsNotExist(err):
		if c.autofix {
			if err := os.MkdirAll(c.dir, 0o755); err != nil {
				result.Items = append(result.Items, CheckItem{
					Label:  c.dir,
					Status: StatusFail,
					Detail: fmt.Sprintf("create directory: %v", err),
				})
				return result
			}
			result.Items = append(result.Items, CheckItem{
				Label:  c.dir,
				Status: StatusPass,
				Detail: "created",
			})
			return result
		}
		result.Items = append(result.Items, CheckItem{
			Label:   c.dir,
			Status:  StatusWarn,
			Detail:  "directory does not exist",
			Fixable: true,
		})
		return result
	case err != nil:
		result.Items = append(result.Items, CheckItem{
			Label:  c.dir,
			Status: StatusFail,
			Detail: fmt.Sprintf("inaccessible: %v", err),
		})
		return result
	case !info.IsDir():
		result.Items = append(result.Items, CheckItem{
			Label:  c.dir,
			Status: StatusFail,
			Detail: "path is not a directory",
		})
		return result
	}

	files, err := macro.Discover(c.dir)
	if err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  c.dir,
			Status: StatusFail,
			Detail: err.Error(),
		})
		return result
	}

	if len(files) == 0 {
		result.Items = append(result.Items, CheckItem{
			Label:  c.dir,
			Status: StatusWarn,
			Detail: "no " + macro.Ext + " files found",
		})
		return result
	}

	for _, f := range files {
		actions, err := macro.ParseFile(f.Path)
		if err != nil {
			result.Items = append(result.Items, CheckItem{
				Label:  f.Name,
				Status: StatusFail,
				Detail: err.Error(),
			})
			continue
		}
		result.Items = append(result.Items, CheckItem{
			Label:  f.Name,
			Status: StatusPass,
			Detail: fmt.Sprintf("%d actions", len(actions)),
		})
	}

	return result
}
