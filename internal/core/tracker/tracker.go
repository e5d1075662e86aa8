// Package tracker defines the transcript and action item domain types shared
// by the API client, the board controller and the CLI.
package tracker

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Status is the completion state of an action item.
type Status string

const (
	StatusOpen Status = "open"
	StatusDone Status = "done"
)

// StatusFor maps a checkbox value to a status.
func StatusFor(done bool) Status {
	if done {
		return StatusDone
	}
	return StatusOpen
}

// Filter restricts an item listing by status. Values other than the known
// three are passed to the backend verbatim.
type Filter string

const (
	FilterAll  Filter = "all"
	FilterOpen Filter = "open"
	FilterDone Filter = "done"
)

// Filters lists the known filters in display order.
var Filters = []Filter{FilterAll, FilterOpen, FilterDone}

// QueryValue returns the value for the status query parameter, or an empty
// string when no parameter should be sent.
func (f Filter) QueryValue() string {
	if f == "" || f == FilterAll {
		return ""
	}
	return string(f)
}

// Next returns the filter after f in display order, wrapping around.
// Unknown filters advance to all.
func (f Filter) Next() Filter {
	for i, v := range Filters {
		if v == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// Transcript is the summary of a submitted meeting transcript.
type Transcript struct {
	ID        int64     `json:"id"`
	CreatedAt Timestamp `json:"created_at"`
	ItemCount int       `json:"item_count"`
}

// ActionItem is a task extracted from, or added to, a transcript.
type ActionItem struct {
	ID           int64  `json:"id"`
	TranscriptID int64  `json:"transcript_id"`
	Task         string `json:"task"`
	Owner        string `json:"owner,omitempty"`
	DueDate      string `json:"due_date,omitempty"`
	Status       Status `json:"status"`
}

// Done reports whether the item is complete.
func (a ActionItem) Done() bool {
	return a.Status == StatusDone
}

// Submission is the backend's answer to a transcript submission.
type Submission struct {
	TranscriptID int64  `json:"transcript_id"`
	Source       string `json:"source"`
}

// NewItem is the payload for creating an action item.
type NewItem struct {
	TranscriptID int64  `json:"transcript_id"`
	Task         string `json:"task"`
	Owner        string `json:"owner,omitempty"`
	DueDate      string `json:"due_date,omitempty"`
}

// ItemUpdate is a partial update. Nil fields are omitted from the request
// and left unchanged by the backend.
type ItemUpdate struct {
	Task    *string `json:"task,omitempty"`
	Owner   *string `json:"owner,omitempty"`
	DueDate *string `json:"due_date,omitempty"`
	Status  *Status `json:"status,omitempty"`
}

// StatusUpdate builds an update that only changes the status.
func StatusUpdate(s Status) ItemUpdate {
	return ItemUpdate{Status: &s}
}

// FieldsUpdate builds an update for the editable text fields. Empty owner or
// due date values are omitted rather than sent as empty strings.
func FieldsUpdate(task, owner, dueDate string) ItemUpdate {
	u := ItemUpdate{Task: &task}
	if owner != "" {
		u.Owner = &owner
	}
	if dueDate != "" {
		u.DueDate = &dueDate
	}
	return u
}

// IsEmpty reports whether the update changes nothing.
func (u ItemUpdate) IsEmpty() bool {
	return u.Task == nil && u.Owner == nil && u.DueDate == nil && u.Status == nil
}

// BackendStatus is the health report served by GET /status.
type BackendStatus struct {
	Backend  string `json:"backend"`
	Database string `json:"database"`
	LLM      string `json:"llm"`
	Fallback string `json:"fallback"`
}

// Healthy reports whether the backend and its database are usable.
func (s BackendStatus) Healthy() bool {
	return s.Backend == "healthy" && s.Database == "connected"
}

// sqliteLayout is the CURRENT_TIMESTAMP format, always UTC.
const sqliteLayout = "2006-01-02 15:04:05"

// Timestamp decodes the created_at values emitted by the backend, which may
// be RFC 3339 or a bare SQLite timestamp.
type Timestamp struct {
	time.Time
}

// ParseTimestamp parses either supported layout.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(sqliteLayout, s, time.UTC); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.UTC); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		t.Time = time.Time{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}

	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339))
}
