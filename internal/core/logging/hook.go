package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook copies transcript_id and item_id from the event context into
// the log event.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	ctx := e.GetCtx()
	if ctx == nil || ctx == context.Background() {
		return
	}

	if id := TranscriptID(ctx); id != 0 {
		e.Int64("transcript_id", id)
	}

	if id := ItemID(ctx); id != 0 {
		e.Int64("item_id", id)
	}
}
