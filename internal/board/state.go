// Package board holds the client controller: the single state container for
// the action item board and the operations that keep it in sync with the
// tracker backend.
package board

import (
	"github.com/colonyops/minutes/internal/core/tracker"
)

// State is the client side view of the board. It is owned by a Controller
// and only mutated from its Update loop.
type State struct {
	TranscriptID    int64 // 0 when no transcript is selected
	Filter          tracker.Filter
	Source          string // extraction source of the last submission
	Items           []tracker.ActionItem
	History         []tracker.Transcript
	Loading         bool
	EditingID       int64 // 0 when idle
	PendingDeleteID int64 // 0 when no delete awaits confirmation

	// writes tracks status updates that have been sent but not answered.
	writes map[int64]*itemWrite
}

// itemWrite serializes status writes for one item. Only one request per
// item is in flight; later toggles overwrite queued.
type itemWrite struct {
	confirmed tracker.Status  // last status the backend acknowledged
	want      tracker.Status  // latest status the user asked for
	queued    *tracker.Status // sent once the in-flight write resolves
}

// Item returns the item with id from the current list.
func (s State) Item(id int64) (tracker.ActionItem, bool) {
	for _, it := range s.Items {
		if it.ID == id {
			return it, true
		}
	}
	return tracker.ActionItem{}, false
}

// Syncing reports whether a status write for id is in flight.
func (s State) Syncing(id int64) bool {
	_, ok := s.writes[id]
	return ok
}

func (s *State) setStatus(id int64, status tracker.Status) {
	for i := range s.Items {
		if s.Items[i].ID == id {
			s.Items[i].Status = status
			return
		}
	}
}
