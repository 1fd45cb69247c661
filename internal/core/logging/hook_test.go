package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextHook_Run(t *testing.T) {
	tests := []struct {
		name      string
		setupCtx  func() context.Context
		wantKeys  []string
		wantEmpty []string
	}{
		{
			name: "batch_id and task",
			setupCtx: func() context.Context {
				return WithTask(WithBatchID(context.Background(), "b-123"), 2)
			},
			wantKeys: []string{"batch_id", "task"},
		},
		{
			name: "only batch_id",
			setupCtx: func() context.Context {
				return WithBatchID(context.Background(), "b-123")
			},
			wantKeys:  []string{"batch_id"},
			wantEmpty: []string{"task"},
		},
		{
			name: "first task is still reported",
			setupCtx: func() context.Context {
				return WithTask(context.Background(), 0)
			},
			wantKeys:  []string{"task"},
			wantEmpty: []string{"batch_id"},
		},
		{
			name:      "no context values",
			setupCtx:  context.Background,
			wantEmpty: []string{"batch_id", "task"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			logger := zerolog.New(&buf).Hook(ContextHook{})
			logger.Info().Ctx(tt.setupCtx()).Msg("test")

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

			for _, key := range tt.wantKeys {
				assert.Contains(t, entry, key)
			}
			for _, key := range tt.wantEmpty {
				assert.NotContains(t, entry, key)
			}
		})
	}
}
