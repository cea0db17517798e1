package controller

import (
	"sync"
	"time"

	"github.com/sekolahdigital/tamuadmin/internal/domain"
)

// DefaultNotifyTTL is how long a notification stays visible unless replaced
// or dismissed.
const DefaultNotifyTTL = 3 * time.Second

// Notification is a transient status message shown to the user.
type Notification struct {
	Kind      domain.NotificationKind
	Text      string
	CreatedAt time.Time
}

// Notifier holds at most one active notification. Showing a new one replaces
// the old and restarts the auto-dismiss timer; there is no queue.
type Notifier struct {
	mu       sync.Mutex
	ttl      time.Duration
	cur      *Notification
	gen      uint64
	timer    *time.Timer
	onChange func(*Notification)
}

// NewNotifier creates a Notifier with the given auto-dismiss TTL.
// A non-positive ttl falls back to DefaultNotifyTTL.
func NewNotifier(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultNotifyTTL
	}
	return &Notifier{ttl: ttl}
}

// SetOnChange registers a callback invoked with the current notification
// (nil on dismissal) after every change. Used by the rendering layer.
func (n *Notifier) SetOnChange(fn func(*Notification)) {
	n.mu.Lock()
	n.onChange = fn
	n.mu.Unlock()
}

// Show replaces the active notification and restarts the dismiss timer.
func (n *Notifier) Show(kind domain.NotificationKind, text string) {
	n.mu.Lock()
	n.gen++
	gen := n.gen
	n.cur = &Notification{Kind: kind, Text: text, CreatedAt: time.Now()}
	if n.timer != nil {
		n.timer.Stop()
	}
	n.timer = time.AfterFunc(n.ttl, func() { n.expire(gen) })
	fn := n.onChange
	cur := *n.cur
	n.mu.Unlock()

	if fn != nil {
		fn(&cur)
	}
}

// Dismiss clears the active notification immediately.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	n.gen++
	n.cur = nil
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	fn := n.onChange
	n.mu.Unlock()

	if fn != nil {
		fn(nil)
	}
}

// Current returns a copy of the active notification, or nil.
func (n *Notifier) Current() *Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.cur == nil {
		return nil
	}
	cur := *n.cur
	return &cur
}

// expire clears the notification when its timer fires, unless a newer Show
// or Dismiss already superseded this generation.
func (n *Notifier) expire(gen uint64) {
	n.mu.Lock()
	if gen != n.gen {
		n.mu.Unlock()
		return
	}
	n.cur = nil
	n.timer = nil
	fn := n.onChange
	n.mu.Unlock()

	if fn != nil {
		fn(nil)
	}
}
