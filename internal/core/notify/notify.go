// Package notify defines the user facing notification model shared by the
// terminal UI and the command line.
package notify

import (
	"sync"
	"time"
)

// Level represents the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification represents a single notification event.
type Notification struct {
	ID        int64
	Level     Level
	Message   string
	CreatedAt time.Time
}

// Recent keeps the last N notifications in memory. It is safe for
// concurrent use.
type Recent struct {
	mu     sync.Mutex
	items  []Notification
	limit  int
	nextID int64
}

// NewRecent returns a buffer holding at most limit notifications.
// A limit <= 0 is treated as 1.
func NewRecent(limit int) *Recent {
	return &Recent{limit: max(limit, 1)}
}

// Save stores n, evicting the oldest entry when full, and returns the id
// assigned to it.
func (r *Recent) Save(n Notification) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	n.ID = r.nextID
	r.items = append(r.items, n)
	if len(r.items) > r.limit {
		r.items = r.items[len(r.items)-r.limit:]
	}
	return n.ID
}

// List returns the stored notifications, newest first.
func (r *Recent) List() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Notification, len(r.items))
	for i, n := range r.items {
		out[len(r.items)-1-i] = n
	}
	return out
}

// Clear drops every stored notification.
func (r *Recent) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
}
