package doctor

import (
	"context"
	"errors"
	"time"

	"github.com/hay-kot/artisan/internal/core/input"
)

// targetTimeout bounds how long locating the window may take.
const targetTimeout = 5 * time.Second

// TargetCheck verifies that the game window can be located.
type TargetCheck struct {
	locator input.Locator
	target  string
}

// NewTargetCheck creates a new target window check.
func NewTargetCheck(locator input.Locator, target string) *TargetCheck {
	return &TargetCheck{locator: locator, target: target}
}

func (c *TargetCheck) Name() string {
	return "Target Window"
}

func (c *TargetCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name(), Required: true}

	ctx, cancel := context.WithTimeout(ctx, targetTimeout)
	defer cancel()

	_, err := c.locator.Locate(ctx)
	switch {
	case err == nil:
		result.Items = append(result.Items, CheckItem{
			Label:  c.target,
			Status: StatusPass,
			Detail: "found",
		})
	case errors.Is(err, input.ErrTargetNotFound):
		result.Items = append(result.Items, CheckItem{
			Label:  c.target,
			Status: StatusWarn,
			Detail: "not found (start the game before crafting)",
		})
	default:
		result.Items = append(result.Items, CheckItem{
			Label:  c.target,
			Status: StatusFail,
			Detail: err.Error(),
		})
	}

	return result
}
