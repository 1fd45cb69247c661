package logging

import "context"

type contextKey string

const (
	batchIDKey contextKey = "batch_id"
	taskKey    contextKey = "task"
)

// WithBatchID adds a batch ID to the context.
func WithBatchID(ctx context.Context, batchID string) context.Context {
	return context.WithValue(ctx, batchIDKey, batchID)
}

// WithTask adds the index of the running task to the context.
func WithTask(ctx context.Context, index int) context.Context {
	return context.WithValue(ctx, taskKey, index)
}

// GetBatchID retrieves the batch ID from the context.
// Returns empty string if not present.
func GetBatchID(ctx context.Context) string {
	if id, ok := ctx.Value(batchIDKey).(string); ok {
		return id
	}
	return ""
}

// GetTask retrieves the task index from the context.
func GetTask(ctx context.Context) (int, bool) {
	idx, ok := ctx.Value(taskKey).(int)
	return idx, ok
}
