// Package progress renders the crafting status stream, either as a bubbletea
// view with progress bars or as plain log lines.
package progress

import (
	"context"
	"errors"

	"github.com/hay-kot/artisan/internal/core/craft"
)

// ErrInterrupted is returned when the user quits the progress view before the
// batch finishes.
var ErrInterrupted = errors.New("artisan: interrupted")

// Source yields statuses in the order they were produced.
type Source interface {
	NextStatus(ctx context.Context) (craft.Status, error)
}

// Finished reports whether s marks the end of a batch of tasks.
func Finished(s craft.Status, tasks []craft.Task) bool {
	return s.State.Phase == craft.PhaseDone && s.Task >= len(tasks)-1
}

// taskAt returns the task for a status, or the zero Task when the index is out
// of range.
func taskAt(tasks []craft.Task, i int) craft.Task {
	if i < 0 || i >= len(tasks) {
		return craft.Task{}
	}
	return tasks[i]
}

func ratio(n, total int) float64 {
	if total <= 0 {
		return 0
	}
	r := float64(n) / float64(total)
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	default:
		return r
	}
}
