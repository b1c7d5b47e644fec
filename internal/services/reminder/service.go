package reminder

import (
	"sync"
	"time"

	"github.com/j-veylop/hydration-tui/internal/clock"
	"github.com/j-veylop/hydration-tui/internal/logger"
	"github.com/j-veylop/hydration-tui/internal/models"
)

// Reminder texts.
const (
	Title = "Reminder"
	Body  = "It has been a while since your last drink!"
)

// Source provides the newest-first drink history.
type Source interface {
	Snapshot() []models.DrinkEvent
}

// Config controls the periodic reminder check.
type Config struct {
	Enabled   bool
	Threshold time.Duration
	Interval  time.Duration
	Delay     time.Duration
}

// DefaultConfig returns the default reminder configuration.
func DefaultConfig() Config {
	return Config{
		Enabled:   true,
		Threshold: time.Hour,
		Interval:  time.Minute,
		Delay:     3 * time.Second,
	}
}

// Event is emitted whenever a reminder is scheduled.
type Event struct {
	LastDrink time.Time
	Elapsed   time.Duration
}

// Service periodically evaluates ShouldRemind against the ledger and
// schedules at most one reminder per most-recent drink.
type Service struct {
	mu           sync.Mutex
	source       Source
	clock        clock.Clock
	notifier     *Notifier
	config       Config
	lastReminded time.Time
	eventChan    chan Event
	stopChan     chan struct{}
	stopOnce     sync.Once
	started      bool
}

// New creates a reminder service. It does nothing until Start is called.
func New(source Source, clk clock.Clock, notifier *Notifier, cfg Config) *Service {
	if clk == nil {
		clk = clock.System{}
	}
	if notifier == nil {
		notifier = NewNotifier(nil)
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultConfig().Interval
	}
	return &Service{
		source:    source,
		clock:     clk,
		notifier:  notifier,
		config:    cfg,
		eventChan: make(chan Event, 10),
		stopChan:  make(chan struct{}),
	}
}

// Events returns the event channel for scheduled reminders.
func (s *Service) Events() <-chan Event {
	return s.eventChan
}

// Start clears any pending notification, checks once and then keeps
// checking every Interval until Close.
func (s *Service) Start() {
	s.notifier.ClearAll()
	if !s.config.Enabled {
		logger.Info("reminders disabled")
		return
	}

	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	s.Check()
	go s.poll()
}

func (s *Service) poll() {
	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Check()
		case <-s.stopChan:
			return
		}
	}
}

// Check schedules a reminder when the policy fires and none was scheduled
// yet for the current most-recent drink. It reports whether one was scheduled.
func (s *Service) Check() bool {
	if !s.config.Enabled {
		return false
	}

	events := s.source.Snapshot()
	now := s.clock.Now()
	if !ShouldRemind(events, now, s.config.Threshold) {
		return false
	}

	last := events[0].Timestamp

	s.mu.Lock()
	if last.Equal(s.lastReminded) {
		s.mu.Unlock()
		return false
	}
	s.lastReminded = last
	s.mu.Unlock()

	s.notifier.Schedule(Notification{Title: Title, Body: Body, Delay: s.config.Delay})

	elapsed := now.Sub(last)
	logger.Info("reminder scheduled", "last_drink", last, "elapsed", elapsed)

	select {
	case s.eventChan <- Event{LastDrink: last, Elapsed: elapsed}:
	default:
	}
	return true
}

// Close stops the periodic check and cancels any pending notification.
func (s *Service) Close() error {
	s.stopOnce.Do(func() { close(s.stopChan) })
	s.notifier.ClearAll()
	return nil
}
