package board

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/colonyops/minutes/internal/core/sanitize"
	"github.com/colonyops/minutes/internal/core/tracker"
)

// View is the render-ready projection of State. Every string that came from
// the user or the backend has been passed through sanitize.Line.
type View struct {
	TranscriptID int64
	Source       string
	Loading      bool
	Filters      []FilterTab
	Items        []ItemRow
	EmptyText    string // set when Items is empty
	History      []HistoryRow
	Delete       *DeleteConfirm
}

// FilterTab is one entry of the filter selector.
type FilterTab struct {
	Filter tracker.Filter
	Label  string
	Active bool
}

// ItemRow is a single rendered action item.
type ItemRow struct {
	ID      int64
	Task    string
	Owner   string
	DueDate string
	Meta    string // owner and due date joined, empty when both are unset
	Done    bool
	Editing bool
	Syncing bool
}

// HistoryRow is a single transcript in the history list.
type HistoryRow struct {
	ID        int64
	When      string // local time
	Age       string // relative to now, e.g. "3 minutes ago"
	ItemCount int
	Current   bool
}

// DeleteConfirm describes the pending delete confirmation.
type DeleteConfirm struct {
	ID   int64
	Task string
}

// ViewOptions controls time formatting in BuildView.
type ViewOptions struct {
	Now      time.Time
	Location *time.Location
}

const historyTimeLayout = "2006-01-02 15:04"

// BuildView maps state to a view model. It has no side effects.
func BuildView(s State, opts ViewOptions) View {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	v := View{
		TranscriptID: s.TranscriptID,
		Source:       sanitize.Line(s.Source),
		Loading:      s.Loading,
	}

	for _, f := range tracker.Filters {
		v.Filters = append(v.Filters, FilterTab{
			Filter: f,
			Label:  filterLabel(f),
			Active: f == s.Filter,
		})
	}

	for _, it := range s.Items {
		row := ItemRow{
			ID:      it.ID,
			Task:    sanitize.Line(it.Task),
			Owner:   sanitize.Line(it.Owner),
			DueDate: sanitize.Line(it.DueDate),
			Done:    it.Done(),
			Editing: s.EditingID != 0 && s.EditingID == it.ID,
			Syncing: s.Syncing(it.ID),
		}
		row.Meta = strings.TrimSpace(row.Owner + " " + row.DueDate)
		v.Items = append(v.Items, row)
	}

	if len(v.Items) == 0 {
		if s.TranscriptID == 0 {
			v.EmptyText = MsgNoTranscriptShown
		} else {
			v.EmptyText = MsgNoItems
		}
	}

	for _, t := range s.History {
		row := HistoryRow{
			ID:        t.ID,
			ItemCount: t.ItemCount,
			Current:   t.ID == s.TranscriptID,
		}
		if !t.CreatedAt.IsZero() {
			row.When = t.CreatedAt.In(loc).Format(historyTimeLayout)
			row.Age = humanize.RelTime(t.CreatedAt.Time, now, "ago", "from now")
		}
		v.History = append(v.History, row)
	}

	if s.PendingDeleteID != 0 {
		confirm := &DeleteConfirm{ID: s.PendingDeleteID}
		if it, ok := s.Item(s.PendingDeleteID); ok {
			confirm.Task = sanitize.Line(it.Task)
		}
		v.Delete = confirm
	}

	return v
}

func filterLabel(f tracker.Filter) string {
	switch f {
	case tracker.FilterAll:
		return "All"
	case tracker.FilterOpen:
		return "Open"
	case tracker.FilterDone:
		return "Done"
	default:
		return sanitize.Line(string(f))
	}
}
