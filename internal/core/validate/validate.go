// Package validate provides the local emptiness checks that run before any
// request reaches the backend.
package validate

import (
	"errors"
	"strings"

	"github.com/hay-kot/criterio"
)

var (
	ErrTranscriptEmpty = errors.New("transcript is empty")
	ErrTaskRequired    = errors.New("task is required")
	ErrNoTranscript    = errors.New("no transcript selected")
)

// Transcript rejects text that is empty after trimming whitespace.
func Transcript(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrTranscriptEmpty
	}
	return nil
}

// Task rejects an empty action item task.
func Task(task string) error {
	if strings.TrimSpace(task) == "" {
		return ErrTaskRequired
	}
	return nil
}

// TranscriptID rejects the zero id, which the client uses for "none selected".
func TranscriptID(id int64) error {
	if id <= 0 {
		return ErrNoTranscript
	}
	return nil
}

// NewItem validates the fields required to create an action item.
func NewItem(transcriptID int64, task string) error {
	return criterio.ValidateStruct(
		criterio.Run("transcript_id", transcriptID, TranscriptID),
		criterio.Run("task", task, Task),
	)
}
