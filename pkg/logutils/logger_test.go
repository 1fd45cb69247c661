package logutils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer

	l, closer, err := New("info", "", &buf)
	require.NoError(t, err)
	defer closer()

	l.Debug().Msg("hidden")
	l.Info().Str("item", "Iron Ingot").Msg("selecting recipe")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "selecting recipe")
	assert.Contains(t, out, "Iron Ingot")
}

func TestNew_FileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "artisan.log")

	for _, msg := range []string{"first", "second"} {
		l, closer, err := New("debug", path, nil)
		require.NoError(t, err)
		l.Info().Msg(msg)
		closer()
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"first"`)
	assert.Contains(t, string(data), `"message":"second"`)
}

func TestNew_BadLevel(t *testing.T) {
	_, _, err := New("loud", "", &bytes.Buffer{})
	require.Error(t, err)
}
