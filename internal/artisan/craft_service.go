package artisan

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hay-kot/artisan/internal/core/config"
	"github.com/hay-kot/artisan/internal/core/craft"
	"github.com/hay-kot/artisan/internal/core/input"
	"github.com/hay-kot/artisan/internal/orchestrator"
	"github.com/hay-kot/artisan/internal/tui/progress"
)

// Display consumes the status stream of a running batch. It returns once the
// last task is done or with the reason it stopped early.
type Display func(ctx context.Context, src progress.Source, tasks []craft.Task) error

// RunOptions configures a single CraftService.Run call.
type RunOptions struct {
	DryRun  bool
	Display Display
}

// CraftService runs task batches against the target window.
type CraftService struct {
	config     *config.Config
	newLocator func() (input.Locator, error)
	log        zerolog.Logger
}

// NewCraftService creates a new CraftService.
func NewCraftService(cfg *config.Config, newLocator func() (input.Locator, error), log zerolog.Logger) *CraftService {
	return &CraftService{config: cfg, newLocator: newLocator, log: log}
}

// Run starts an orchestrator, submits tasks as one batch and hands the status
// stream to opts.Display. When the display stops early the status stream is
// closed, which aborts the task in flight.
func (s *CraftService) Run(ctx context.Context, tasks []craft.Task, opts RunOptions) error {
	if len(tasks) == 0 {
		return errors.New("no tasks to run")
	}

	locator, err := s.newLocator()
	if err != nil {
		return fmt.Errorf("create input backend: %w", err)
	}

	seq := s.config.SequencerOptions()
	seq.DryRun = opts.DryRun

	orc, err := orchestrator.New(ctx, locator,
		orchestrator.WithSequencerOptions(seq),
		orchestrator.WithRoleActions(s.config.Craft.RoleActions...),
		orchestrator.WithRoleActionSlots(s.config.Craft.RoleActionSlots),
		orchestrator.WithLogger(s.log),
	)
	if err != nil {
		return err
	}

	s.log.Info().Int("tasks", len(tasks)).Bool("dry_run", opts.DryRun).Msg("starting batch")

	if err := orc.Submit(tasks); err != nil {
		return errors.Join(err, orc.Shutdown())
	}

	display := opts.Display
	if display == nil {
		display = func(ctx context.Context, src progress.Source, tasks []craft.Task) error {
			return progress.NewPlain(src, tasks, s.log).Run(ctx)
		}
	}

	displayErr := display(ctx, orc, tasks)
	if displayErr != nil {
		orc.CloseStatus()
	}

	workerErr := orc.Shutdown()
	switch {
	case workerErr != nil && displayErr != nil && errors.Is(workerErr, orchestrator.ErrChannelClosed):
		// The worker only saw the stream we closed.
		return displayErr
	case workerErr != nil:
		return fmt.Errorf("run batch: %w", workerErr)
	case displayErr != nil:
		return displayErr
	}

	s.log.Info().Int("tasks", len(tasks)).Msg("batch finished")
	return nil
}
