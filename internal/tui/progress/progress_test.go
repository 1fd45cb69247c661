package progress

import (
	"bytes"
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/artisan/internal/core/craft"
	"github.com/hay-kot/artisan/pkg/stream"
	"github.com/hay-kot/artisan/pkg/tuitest"
)

func testTasks() []craft.Task {
	return []craft.Task{
		{
			Item:    craft.Item{Name: "Iron Ingot"},
			Count:   2,
			Actions: []craft.Action{{Name: "Inner Quiet"}, {Name: "Basic Synthesis", Wait: craft.WaitLong}},
		},
		{
			Item:    craft.Item{Name: "Bronze Ingot"},
			Count:   1,
			Actions: []craft.Action{{Name: "Basic Synthesis", Wait: craft.WaitLong}},
		},
	}
}

func feed(t *testing.T, statuses ...craft.Status) *stream.Stream[craft.Status] {
	t.Helper()
	s := stream.New[craft.Status]()
	for _, st := range statuses {
		require.NoError(t, s.Send(st))
	}
	return s
}

func TestFinished(t *testing.T) {
	tasks := testTasks()

	assert.False(t, Finished(craft.Status{State: craft.Done, Task: 0}, tasks))
	assert.False(t, Finished(craft.Status{State: craft.Setup, Task: 1}, tasks))
	assert.True(t, Finished(craft.Status{State: craft.Done, Task: 1}, tasks))
	assert.True(t, Finished(craft.Status{State: craft.Done}, nil))
}

func TestRatio(t *testing.T) {
	assert.InDelta(t, 0.5, ratio(1, 2), 0.0001)
	assert.InDelta(t, 0.0, ratio(1, 0), 0.0001)
	assert.InDelta(t, 1.0, ratio(3, 2), 0.0001)
}

func TestPlain_RunsUntilLastTaskDone(t *testing.T) {
	src := feed(t,
		craft.Status{State: craft.Queued},
		craft.Status{State: craft.Initializing},
		craft.Status{State: craft.Done},
		craft.Status{State: craft.Initializing, Task: 1},
		craft.Status{State: craft.Done, Task: 1},
		craft.Status{State: craft.Initializing, Task: 2},
	)

	var buf bytes.Buffer
	p := NewPlain(src, testTasks(), zerolog.New(&buf))

	require.NoError(t, p.Run(context.Background()))
	out := buf.String()
	assert.Contains(t, out, `"item":"Bronze Ingot"`)
	assert.Equal(t, 5, bytes.Count(buf.Bytes(), []byte("\n")))

	// The status after the last Done is left unread.
	next, err := src.Recv(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, next.Task)
}

func TestPlain_StreamClosedEarly(t *testing.T) {
	src := feed(t, craft.Status{State: craft.Initializing})
	src.CloseSend()

	p := NewPlain(src, testTasks(), zerolog.Nop())
	err := p.Run(context.Background())
	require.ErrorIs(t, err, stream.ErrClosed)
}

func TestPlain_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPlain(stream.New[craft.Status](), testTasks(), zerolog.Nop())
	require.ErrorIs(t, p.Run(ctx), context.Canceled)
}

func TestModel_StatusFlow(t *testing.T) {
	tasks := testTasks()
	m := New(context.Background(), feed(t), tasks)

	assert.Contains(t, tuitest.StripANSI(m.View()), "Waiting")
	require.NotNil(t, m.Init())

	next, cmd := m.Update(statusMsg{status: craft.Status{State: craft.Crafting("Inner Quiet"), Craft: 1}})
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.False(t, m.Finished())

	view := tuitest.StripANSI(m.View())
	assert.Contains(t, view, "Task 1/2: Iron Ingot")
	assert.Contains(t, view, "Craft 1/2")
	assert.Contains(t, view, "Step 0/2")
	assert.Contains(t, view, "Inner Quiet")

	next, _ = m.Update(statusMsg{status: craft.Status{State: craft.Done, Task: 1}})
	m = next.(Model)
	assert.True(t, m.Finished())
	assert.Contains(t, tuitest.StripANSI(m.View()), "all tasks done")
}

func TestModel_WaitForStatusReadsSource(t *testing.T) {
	src := feed(t, craft.Status{State: craft.Setup, Craft: 1})
	m := New(context.Background(), src, testTasks())

	msg := m.Init()()
	assert.Equal(t, statusMsg{status: craft.Status{State: craft.Setup, Craft: 1}}, msg)

	src.CloseSend()
	msg = m.waitForStatus()()
	em, ok := msg.(errMsg)
	require.True(t, ok)
	require.ErrorIs(t, em.err, stream.ErrClosed)

	next, _ := m.Update(em)
	assert.ErrorIs(t, next.(Model).Err(), stream.ErrClosed)
}

func TestModel_Interrupt(t *testing.T) {
	m := New(context.Background(), feed(t), testTasks())

	next, cmd := m.Update(tuitest.KeyPress('q'))
	require.NotNil(t, cmd)
	assert.True(t, next.(Model).Interrupted())

	next, _ = m.Update(tuitest.KeyCtrlC())
	assert.True(t, next.(Model).Interrupted())

	next, cmd = m.Update(tuitest.KeyPress('x'))
	assert.Nil(t, cmd)
	assert.False(t, next.(Model).Interrupted())
}

func TestModel_WindowSize(t *testing.T) {
	m := New(context.Background(), feed(t), testTasks())

	next, _ := m.Update(tuitest.WindowSize(200, 40))
	assert.Equal(t, maxBarWidth, next.(Model).craftBar.Width)

	next, _ = m.Update(tuitest.WindowSize(30, 40))
	assert.Equal(t, 16, next.(Model).stepBar.Width)

	var _ tea.Model = m
}
