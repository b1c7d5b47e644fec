package reminder

import (
	"sync"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/j-veylop/hydration-tui/internal/logger"
)

// Notification is a single desktop notification to fire after Delay.
type Notification struct {
	Title string
	Body  string
	Delay time.Duration
}

// SendFunc delivers a notification immediately.
type SendFunc func(title, message string) error

// Desktop sends through the platform notification center.
func Desktop(title, message string) error {
	return beeep.Notify(title, message, "")
}

// Notifier fires delayed notifications. At most one is pending at a time;
// scheduling a new one replaces it.
type Notifier struct {
	mu      sync.Mutex
	send    SendFunc
	pending *time.Timer
	sent    int
}

// NewNotifier creates a notifier. A nil send uses Desktop.
func NewNotifier(send SendFunc) *Notifier {
	if send == nil {
		send = Desktop
	}
	return &Notifier{send: send}
}

// Schedule arranges for n to be delivered after n.Delay.
func (nt *Notifier) Schedule(n Notification) {
	nt.mu.Lock()
	defer nt.mu.Unlock()

	if nt.pending != nil {
		nt.pending.Stop()
	}

	var timer *time.Timer
	timer = time.AfterFunc(n.Delay, func() {
		nt.mu.Lock()
		if nt.pending != timer {
			nt.mu.Unlock()
			return
		}
		nt.pending = nil
		nt.sent++
		send := nt.send
		nt.mu.Unlock()

		if err := send(n.Title, n.Body); err != nil {
			logger.Warn("failed to deliver notification", "title", n.Title, "error", err)
			return
		}
		logger.Debug("notification delivered", "title", n.Title)
	})
	nt.pending = timer
}

// ClearAll cancels the pending notification, if any.
func (nt *Notifier) ClearAll() {
	nt.mu.Lock()
	defer nt.mu.Unlock()

	if nt.pending != nil {
		nt.pending.Stop()
		nt.pending = nil
	}
}

// Pending reports whether a notification is waiting to fire.
func (nt *Notifier) Pending() bool {
	nt.mu.Lock()
	defer nt.mu.Unlock()
	return nt.pending != nil
}

// Sent returns how many notifications have been handed to the sender.
func (nt *Notifier) Sent() int {
	nt.mu.Lock()
	defer nt.mu.Unlock()
	return nt.sent
}

// DesktopAlert sends a notification with an audible alert.
func DesktopAlert(title, message string) error {
	return beeep.Alert(title, message, "")
}
