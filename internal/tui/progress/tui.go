package progress

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hay-kot/artisan/internal/core/craft"
)

// RunTUI shows the progress view on out until the batch finishes, the user
// quits, or the stream fails.
func RunTUI(ctx context.Context, src Source, tasks []craft.Task, out io.Writer) error {
	p := tea.NewProgram(
		New(ctx, src, tasks),
		tea.WithContext(ctx),
		tea.WithOutput(out),
	)

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run progress view: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return fmt.Errorf("unexpected model type %T", final)
	}

	switch {
	case m.Interrupted():
		return ErrInterrupted
	case m.Err() != nil:
		return m.Err()
	default:
		return nil
	}
}
