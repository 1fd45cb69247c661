package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/artisan/internal/artisan"
	"github.com/hay-kot/artisan/internal/core/craft"
	"github.com/hay-kot/artisan/internal/core/styles"
	"github.com/hay-kot/artisan/internal/tui/progress"
)

// runTasks confirms the batch unless skipConfirm is set and then runs it with
// the progress display that fits the terminal.
func runTasks(ctx context.Context, flags *Flags, app *artisan.App, tasks []craft.Task, dryRun, skipConfirm bool) error {
	interactive := term.IsTerminal(int(os.Stdout.Fd()))

	if !skipConfirm && interactive {
		ok, err := confirmTasks(tasks, dryRun)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("confirm: %w", err)
		}
		if !ok {
			return nil
		}
	}

	opts := artisan.RunOptions{DryRun: dryRun}
	if interactive {
		opts.Display = func(ctx context.Context, src progress.Source, tasks []craft.Task) error {
			if flags.Console != nil {
				flags.Console.Hold()
				defer func() { _ = flags.Console.Release() }()
			}
			return progress.RunTUI(ctx, src, tasks, os.Stdout)
		}
	}

	err := app.Craft.Run(ctx, tasks, opts)
	if errors.Is(err, progress.ErrInterrupted) {
		_, _ = fmt.Fprintln(os.Stderr, styles.TextWarningStyle.Render("interrupted"))
		return cli.Exit("", 130)
	}
	return err
}

func confirmTasks(tasks []craft.Task, dryRun bool) (bool, error) {
	var b strings.Builder
	for i, t := range tasks {
		fmt.Fprintf(&b, "%d. %s x%d (%d actions", i+1, t.Item.Name, t.Count, len(t.Actions))
		if t.Gearset > 0 {
			fmt.Fprintf(&b, ", gearset %d", t.Gearset)
		}
		if t.Collectable {
			b.WriteString(", collectable")
		}
		b.WriteString(")\n")
	}
	b.WriteString("\nFocus the game window once confirmed; input starts immediately.")

	title := "Start crafting?"
	if dryRun {
		title = "Start dry run?"
	}

	ok := true
	err := huh.NewConfirm().
		Title(title).
		Description(b.String()).
		Value(&ok).
		Run()
	return ok, err
}
