package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook extracts batch_id and task from context and adds them to log events.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == context.Background() || ctx == nil {
		return
	}

	if batchID := GetBatchID(ctx); batchID != "" {
		e.Str("batch_id", batchID)
	}

	if idx, ok := GetTask(ctx); ok {
		e.Int("task", idx)
	}
}
