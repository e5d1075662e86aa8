package logging

import "context"

type contextKey string

const (
	transcriptIDKey contextKey = "transcript_id"
	itemIDKey       contextKey = "item_id"
)

// WithTranscriptID tags the context with the transcript being worked on.
func WithTranscriptID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, transcriptIDKey, id)
}

// WithItemID tags the context with the action item being worked on.
func WithItemID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, itemIDKey, id)
}

// TranscriptID returns the transcript id stored in ctx, or 0.
func TranscriptID(ctx context.Context) int64 {
	if id, ok := ctx.Value(transcriptIDKey).(int64); ok {
		return id
	}
	return 0
}

// ItemID returns the item id stored in ctx, or 0.
func ItemID(ctx context.Context) int64 {
	if id, ok := ctx.Value(itemIDKey).(int64); ok {
		return id
	}
	return 0
}
