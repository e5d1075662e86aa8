package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/colonyops/minutes/internal/core/notify"
)

// Subscriber is a callback invoked when a notification is published.
type Subscriber func(notify.Notification)

// Bus is a synchronous in-process notification bus. Subscribers run inline
// on the publishing goroutine, which in the TUI is the Update loop.
type Bus struct {
	recent      *notify.Recent
	subscribers []Subscriber
	mu          sync.Mutex
}

// NewBus creates a bus that remembers published notifications in recent.
// If recent is nil, notifications are only dispatched.
func NewBus(recent *notify.Recent) *Bus {
	return &Bus{recent: recent}
}

// Subscribe registers a callback that will be invoked on every Publish.
func (b *Bus) Subscribe(fn Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, fn)
}

// Publish dispatches a notification to all subscribers.
func (b *Bus) Publish(n notify.Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	if b.recent != nil {
		n.ID = b.recent.Save(n)
	}

	b.mu.Lock()
	subs := make([]Subscriber, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.Unlock()

	for _, fn := range subs {
		fn(n)
	}
}

// Errorf publishes an error-level notification.
func (b *Bus) Errorf(format string, args ...any) {
	b.Publish(notify.Notification{
		Level:   notify.LevelError,
		Message: fmt.Sprintf(format, args...),
	})
}

// Warnf publishes a warning-level notification.
func (b *Bus) Warnf(format string, args ...any) {
	b.Publish(notify.Notification{
		Level:   notify.LevelWarning,
		Message: fmt.Sprintf(format, args...),
	})
}

// Infof publishes an info-level notification.
func (b *Bus) Infof(format string, args ...any) {
	b.Publish(notify.Notification{
		Level:   notify.LevelInfo,
		Message: fmt.Sprintf(format, args...),
	})
}

// History returns remembered notifications, newest first.
func (b *Bus) History() []notify.Notification {
	if b.recent == nil {
		return nil
	}
	return b.recent.List()
}
