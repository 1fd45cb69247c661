package progress

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hay-kot/artisan/internal/core/craft"
	"github.com/hay-kot/artisan/pkg/stream"
)

// Plain logs one line per status. It is used when stdout is not a terminal.
type Plain struct {
	src   Source
	tasks []craft.Task
	log   zerolog.Logger
}

// NewPlain creates a Plain reporter for tasks.
func NewPlain(src Source, tasks []craft.Task, log zerolog.Logger) *Plain {
	return &Plain{src: src, tasks: tasks, log: log}
}

// Run reads statuses until the last task is done. A stream closed before
// that point is reported as an error.
func (p *Plain) Run(ctx context.Context) error {
	for {
		s, err := p.src.NextStatus(ctx)
		if err != nil {
			if errors.Is(err, stream.ErrClosed) {
				return fmt.Errorf("status stream closed before the batch finished: %w", err)
			}
			return err
		}

		task := taskAt(p.tasks, s.Task)
		ev := p.log.Info()
		if s.State.Phase == craft.PhaseCrafting {
			ev = p.log.Debug()
		}
		ev.Int("task", s.Task+1).
			Int("tasks", len(p.tasks)).
			Str("item", task.Item.Name).
			Int("craft", s.Craft).
			Int("count", task.Count).
			Int("step", s.Step).
			Int("steps", len(task.Actions)).
			Msg(s.State.String())

		if Finished(s, p.tasks) {
			return nil
		}
	}
}
