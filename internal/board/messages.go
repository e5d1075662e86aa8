package board

import (
	"github.com/colonyops/minutes/internal/core/tracker"
)

// Form identifies an input form owned by the UI.
type Form int

const (
	FormTranscript Form = iota
	FormAddItem
)

// FormResetMsg asks the UI to clear a form after a successful submission.
type FormResetMsg struct {
	Form Form
}

type submittedMsg struct {
	seq        uint64
	submission tracker.Submission
	err        error
}

type itemsLoadedMsg struct {
	seq   uint64
	items []tracker.ActionItem
	err   error
}

type historyLoadedMsg struct {
	seq         uint64
	transcripts []tracker.Transcript
	err         error
}

type statusWrittenMsg struct {
	id     int64
	status tracker.Status
	err    error
}

type itemSavedMsg struct {
	id  int64
	err error
}

type itemAddedMsg struct {
	err error
}

type itemDeletedMsg struct {
	id  int64
	err error
}
