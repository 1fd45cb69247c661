package progress

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hay-kot/artisan/internal/core/craft"
	"github.com/hay-kot/artisan/internal/core/styles"
)

const (
	defaultBarWidth = 40
	maxBarWidth     = 80
	barPadding      = 14
)

type statusMsg struct{ status craft.Status }

type errMsg struct{ err error }

// Model is the bubbletea progress view. It shows the current task plus a bar
// for repetitions and a bar for steps within the current repetition.
type Model struct {
	ctx   context.Context
	src   Source
	tasks []craft.Task

	status   craft.Status
	seen     bool
	craftBar progress.Model
	stepBar  progress.Model

	finished    bool
	interrupted bool
	err         error
}

// New creates a Model reading from src.
func New(ctx context.Context, src Source, tasks []craft.Task) Model {
	return Model{
		ctx:      ctx,
		src:      src,
		tasks:    tasks,
		craftBar: newBar(),
		stepBar:  newBar(),
	}
}

func newBar() progress.Model {
	return progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(defaultBarWidth),
		progress.WithoutPercentage(),
	)
}

func (m Model) waitForStatus() tea.Cmd {
	return func() tea.Msg {
		s, err := m.src.NextStatus(m.ctx)
		if err != nil {
			return errMsg{err: err}
		}
		return statusMsg{status: s}
	}
}

func (m Model) Init() tea.Cmd {
	return m.waitForStatus()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.interrupted = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		w := min(max(msg.Width-barPadding, 10), maxBarWidth)
		m.craftBar.Width = w
		m.stepBar.Width = w
	case statusMsg:
		m.status = msg.status
		m.seen = true
		if Finished(msg.status, m.tasks) {
			m.finished = true
			return m, tea.Quit
		}
		return m, m.waitForStatus()
	case errMsg:
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	if !m.seen {
		b.WriteString(styles.ProgressTitleStyle.Render("Waiting for the crafting window..."))
		b.WriteString("\n")
		return b.String()
	}

	task := taskAt(m.tasks, m.status.Task)
	b.WriteString(styles.ProgressTitleStyle.Render(
		fmt.Sprintf("Task %d/%d: %s", m.status.Task+1, len(m.tasks), task.Item.Name)))
	b.WriteString("  ")
	b.WriteString(styles.TextMutedStyle.Render(m.status.State.Phase.String()))
	b.WriteString("\n\n")

	b.WriteString(styles.ProgressLabelStyle.Render(fmt.Sprintf("Craft %d/%d", m.status.Craft, task.Count)))
	b.WriteString("\n")
	b.WriteString(m.craftBar.ViewAs(ratio(m.status.Craft, task.Count)))
	b.WriteString("\n\n")

	b.WriteString(styles.ProgressLabelStyle.Render(fmt.Sprintf("Step %d/%d", m.status.Step, len(task.Actions))))
	if m.status.State.Phase == craft.PhaseCrafting {
		b.WriteString("  ")
		b.WriteString(styles.ProgressActionStyle.Render(m.status.State.Action))
	}
	b.WriteString("\n")
	b.WriteString(m.stepBar.ViewAs(ratio(m.status.Step, len(task.Actions))))
	b.WriteString("\n\n")

	if m.finished {
		b.WriteString(styles.TextSuccessStyle.Render(styles.IconPass + " all tasks done"))
	} else {
		b.WriteString(styles.ProgressHelpStyle.Render("q: abort"))
	}
	b.WriteString("\n")

	return b.String()
}

// Finished reports whether the last task of the batch completed.
func (m Model) Finished() bool { return m.finished }

// Interrupted reports whether the user quit the view.
func (m Model) Interrupted() bool { return m.interrupted }

// Err returns the error that ended the status stream, if any.
func (m Model) Err() error { return m.err }

// Status returns the last status received.
func (m Model) Status() craft.Status { return m.status }
