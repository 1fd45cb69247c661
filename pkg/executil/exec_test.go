package executil

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealExecutor_Run(t *testing.T) {
	e := &RealExecutor{}
	ctx := context.Background()

	t.Run("successful command", func(t *testing.T) {
		out, err := e.Run(ctx, "echo", "hello")
		require.NoError(t, err)
		assert.Equal(t, "hello\n", string(out))
	})

	t.Run("stderr is part of the error", func(t *testing.T) {
		_, err := e.Run(ctx, "sh", "-c", "echo 'no such window' >&2; exit 1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no such window")

		var exitErr *exec.ExitError
		assert.ErrorAs(t, err, &exitErr)
	})

	t.Run("missing executable", func(t *testing.T) {
		_, err := e.Run(ctx, "definitely-not-a-real-binary-artisan")
		require.Error(t, err)
	})
}

func TestRealExecutor_LookPath(t *testing.T) {
	e := &RealExecutor{}

	_, err := e.LookPath("sh")
	require.NoError(t, err)

	_, err = e.LookPath("definitely-not-a-real-binary-artisan")
	require.Error(t, err)
}

func TestRecordingExecutor(t *testing.T) {
	rec := &RecordingExecutor{
		Outputs: map[string][]byte{"xdotool": []byte("42\n")},
		Errors:  map[string]error{"tmux": errors.New("no server running")},
		Missing: []string{"tmux"},
	}
	ctx := context.Background()

	out, err := rec.Run(ctx, "xdotool", "search", "--name", "game")
	require.NoError(t, err)
	assert.Equal(t, "42\n", string(out))

	_, err = rec.Run(ctx, "tmux", "has-session", "-t", "x")
	require.Error(t, err)

	assert.Equal(t, []string{
		"xdotool search --name game",
		"tmux has-session -t x",
	}, rec.Lines())

	_, err = rec.LookPath("tmux")
	assert.Error(t, err)
	path, err := rec.LookPath("xdotool")
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/xdotool", path)

	rec.Reset()
	assert.Empty(t, rec.Commands)
}
