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
			name: "transcript and item",
			setupCtx: func() context.Context {
				return WithItemID(WithTranscriptID(context.Background(), 3), 9)
			},
			wantKeys: []string{"transcript_id", "item_id"},
		},
		{
			name: "only transcript",
			setupCtx: func() context.Context {
				return WithTranscriptID(context.Background(), 3)
			},
			wantKeys:  []string{"transcript_id"},
			wantEmpty: []string{"item_id"},
		},
		{
			name:      "no context values",
			setupCtx:  context.Background,
			wantEmpty: []string{"transcript_id", "item_id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			logger := zerolog.New(&buf).Hook(ContextHook{})
			logger.Info().Ctx(tt.setupCtx()).Msg("test")

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

			for _, k := range tt.wantKeys {
				assert.Contains(t, entry, k)
			}
			for _, k := range tt.wantEmpty {
				assert.NotContains(t, entry, k)
			}
		})
	}
}

func TestContextHook_NumericValues(t *testing.T) {
	var buf bytes.Buffer

	logger := zerolog.New(&buf).Hook(ContextHook{})
	logger.Info().Ctx(WithTranscriptID(context.Background(), 12)).Msg("test")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.InDelta(t, 12, entry["transcript_id"], 0)
}
