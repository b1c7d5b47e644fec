// Package services provides service orchestration for the TUI.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/hydration-tui/internal/clock"
	"github.com/j-veylop/hydration-tui/internal/config"
	"github.com/j-veylop/hydration-tui/internal/db"
	"github.com/j-veylop/hydration-tui/internal/logger"
	"github.com/j-veylop/hydration-tui/internal/models"
	"github.com/j-veylop/hydration-tui/internal/services/ledger"
	"github.com/j-veylop/hydration-tui/internal/services/profile"
	"github.com/j-veylop/hydration-tui/internal/services/reminder"
	"github.com/j-veylop/hydration-tui/internal/services/stats"
)

type (
	// LedgerChangedEvent is emitted when the drink history changes.
	LedgerChangedEvent struct {
		Drinks        []models.DrinkEvent
		CurrentMl     int
		TodaysTotalMl int
		External      bool
	}

	// ProfileChangedEvent is emitted when the profile or theme changes.
	ProfileChangedEvent struct {
		Profile   models.HydrationProfile
		DarkTheme bool
	}

	// ReminderEvent is emitted when a drink reminder is scheduled.
	ReminderEvent struct {
		LastDrink time.Time
		Elapsed   time.Duration
	}

	// GoalReachedEvent is emitted when today's progress first reaches the goal.
	GoalReachedEvent struct {
		GoalMl    int
		CurrentMl int
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (LedgerChangedEvent) isServiceEvent()  {}
func (ProfileChangedEvent) isServiceEvent() {}
func (ReminderEvent) isServiceEvent()       {}
func (GoalReachedEvent) isServiceEvent()    {}
func (ErrorEvent) isServiceEvent()          {}

// Overview is the state the TUI needs to render on start-up.
type Overview struct {
	Drinks        []models.DrinkEvent
	CurrentMl     int
	TodaysTotalMl int
	MaxDailyMl    int
	Profile       models.HydrationProfile
	ProfileFound  bool
	DarkTheme     bool
}

// Option customizes a Manager.
type Option func(*Manager)

// WithClock overrides the time source.
func WithClock(clk clock.Clock) Option {
	return func(m *Manager) { m.clock = clk }
}

// WithNotifier overrides how reminders are delivered.
func WithNotifier(send reminder.SendFunc) Option {
	return func(m *Manager) { m.notify = send }
}

// WithAlert overrides how the goal-reached alert is delivered.
func WithAlert(send reminder.SendFunc) Option {
	return func(m *Manager) { m.alert = send }
}

// WithoutWatch disables reloading on external database writes.
func WithoutWatch() Option {
	return func(m *Manager) { m.watch = false }
}

// Manager orchestrates services and event routing.
type Manager struct {
	mu           sync.RWMutex
	cfg          *config.Config
	clock        clock.Clock
	database     *db.DB
	ledger       *ledger.Service
	profile      *profile.Service
	reminder     *reminder.Service
	notify       reminder.SendFunc
	alert        reminder.SendFunc
	watch        bool
	profileFound bool
	eventChan    chan ServiceEvent
	stopChan     chan struct{}
	closeOnce    sync.Once
	subscribers  []chan<- ServiceEvent
}

// NewManager opens the database, loads the profile and drink history and
// starts routing service events. Reminders start with Start.
func NewManager(cfg *config.Config, opts ...Option) (*Manager, error) {
	m := &Manager{
		cfg:       cfg,
		clock:     clock.System{Location: cfg.Location},
		alert:     reminder.DesktopAlert,
		watch:     true,
		eventChan: make(chan ServiceEvent, 100),
		stopChan:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}

	var err error
	m.database, err = db.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	ctx := context.Background()

	m.profile = profile.New(m.database)
	m.profileFound, err = m.profile.Load(ctx)
	if err != nil {
		_ = m.database.Close()
		return nil, err
	}

	m.ledger = ledger.New(m.database, m.clock, cfg.MaxDailyMl)
	m.ledger.SetGoal(m.profile.GoalMl())
	if err := m.ledger.Load(ctx); err != nil {
		_ = m.database.Close()
		return nil, err
	}

	if m.watch {
		if err := m.ledger.Watch(cfg.DatabasePath); err != nil {
			logger.Warn("database watcher unavailable", "error", err)
		}
	}

	m.reminder = reminder.New(m.ledger, m.clock, reminder.NewNotifier(m.notify), reminder.Config{
		Enabled:   cfg.RemindersEnabled,
		Threshold: cfg.ReminderThreshold,
		Interval:  cfg.ReminderCheckInterval,
		Delay:     cfg.ReminderDelay,
	})

	go m.routeEvents()

	return m, nil
}

// Start begins the reminder session: pending notifications are cleared,
// the policy is checked once and then periodically.
func (m *Manager) Start() {
	m.reminder.Start()
}

// routeEvents routes events from individual services to subscribers.
func (m *Manager) routeEvents() {
	for {
		select {
		case event := <-m.ledger.Events():
			m.handleLedgerEvent(event)

		case event := <-m.reminder.Events():
			m.broadcast(ReminderEvent{LastDrink: event.LastDrink, Elapsed: event.Elapsed})

		case <-m.stopChan:
			return
		}
	}
}

// handleLedgerEvent converts and broadcasts ledger events.
func (m *Manager) handleLedgerEvent(event ledger.Event) {
	switch event.Type {
	case ledger.EventLoaded, ledger.EventRecorded, ledger.EventDeleted, ledger.EventReloaded:
		m.broadcast(LedgerChangedEvent{
			Drinks:        m.ledger.Snapshot(),
			CurrentMl:     m.ledger.CurrentMl(),
			TodaysTotalMl: m.ledger.TodaysTotal(),
			External:      event.Type == ledger.EventReloaded,
		})

	case ledger.EventError:
		m.broadcast(ErrorEvent{
			Service: "ledger",
			Error:   event.Error,
		})
	}
}

// AddDrink records a drink subject to the daily ceiling.
func (m *Manager) AddDrink(ctx context.Context, amountMl int) (models.DrinkEvent, error) {
	before := m.ledger.CurrentMl()
	drink, err := m.ledger.Record(ctx, amountMl)
	if err != nil && (errors.Is(err, ledger.ErrInvalidAmount) || errors.Is(err, ledger.ErrDailyLimitExceeded)) {
		return drink, err
	}
	m.checkGoal(before)
	return drink, err
}

// AddTowardGoal records a drink whose display value is clamped to the goal.
func (m *Manager) AddTowardGoal(ctx context.Context, amountMl int) (models.DrinkEvent, error) {
	before := m.ledger.CurrentMl()
	drink, err := m.ledger.RecordTowardGoal(ctx, amountMl)
	if err != nil && errors.Is(err, ledger.ErrInvalidAmount) {
		return drink, err
	}
	m.checkGoal(before)
	return drink, err
}

// DeleteDrink removes the drink at index, 0 being the most recent.
func (m *Manager) DeleteDrink(ctx context.Context, index int) (bool, error) {
	return m.ledger.Delete(ctx, index)
}

// checkGoal alerts when the display value crosses the goal.
func (m *Manager) checkGoal(before int) {
	goal := m.profile.GoalMl()
	after := m.ledger.CurrentMl()
	if goal <= 0 || before >= goal || after < goal {
		return
	}

	logger.Info("daily goal reached", "goal_ml", goal, "current_ml", after)
	m.broadcast(GoalReachedEvent{GoalMl: goal, CurrentMl: after})

	if m.alert != nil {
		body := fmt.Sprintf("You reached your daily goal of %.1f L!", float64(goal)/1000)
		if err := m.alert("Goal reached", body); err != nil {
			logger.Warn("failed to deliver goal alert", "error", err)
		}
	}
}

// SetProfile stores a new profile and updates the ledger's goal.
func (m *Manager) SetProfile(ctx context.Context, weightKg, activityMinutes float64, goalMl int) (models.HydrationProfile, error) {
	p, err := m.profile.Set(ctx, weightKg, activityMinutes, goalMl)
	if err != nil {
		return p, err
	}

	m.mu.Lock()
	m.profileFound = true
	m.mu.Unlock()

	m.ledger.SetGoal(p.HydrationGoalMl)
	m.broadcast(ProfileChangedEvent{Profile: p, DarkTheme: m.profile.DarkTheme()})
	return p, nil
}

// ToggleTheme flips the persisted dark theme preference.
func (m *Manager) ToggleTheme(ctx context.Context) (bool, error) {
	dark, err := m.profile.ToggleTheme(ctx)
	if err != nil {
		return dark, err
	}
	m.broadcast(ProfileChangedEvent{Profile: m.profile.Profile(), DarkTheme: dark})
	return dark, nil
}

// ResetProfile clears the stored profile so the next start prompts for it.
func (m *Manager) ResetProfile(ctx context.Context) error {
	if err := m.profile.Reset(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	m.profileFound = false
	m.mu.Unlock()

	m.ledger.SetGoal(0)
	m.broadcast(ProfileChangedEvent{Profile: m.profile.Profile(), DarkTheme: m.profile.DarkTheme()})
	return nil
}

// Overview returns the current state for rendering.
func (m *Manager) Overview() Overview {
	m.mu.RLock()
	found := m.profileFound
	m.mu.RUnlock()

	return Overview{
		Drinks:        m.ledger.Snapshot(),
		CurrentMl:     m.ledger.CurrentMl(),
		TodaysTotalMl: m.ledger.TodaysTotal(),
		MaxDailyMl:    m.ledger.MaxDailyMl(),
		Profile:       m.profile.Profile(),
		ProfileFound:  found,
		DarkTheme:     m.profile.DarkTheme(),
	}
}

// Report returns the buckets and statistics for window.
func (m *Manager) Report(window models.ReportingWindow) ([]models.Bucket, models.Statistics) {
	events := m.ledger.Snapshot()
	now := m.clock.Now()
	return stats.Bucket(events, window, now), stats.Compute(events, m.profile.GoalMl(), window, now)
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	// Send to main event channel
	select {
	case m.eventChan <- event:
	default:
	}

	// Send to subscribers
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, waitForEvent(ch)
}

// waitForEvent returns a tea.Cmd that waits for the next event.
func waitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return waitForEvent(ch)
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Ledger returns the ledger service.
func (m *Manager) Ledger() *ledger.Service {
	return m.ledger
}

// Profile returns the profile service.
func (m *Manager) Profile() *profile.Service {
	return m.profile
}

// Reminder returns the reminder service.
func (m *Manager) Reminder() *reminder.Service {
	return m.reminder
}

// Database returns the database instance for direct access.
func (m *Manager) Database() *db.DB {
	return m.database
}

// Close closes the manager and all its services.
func (m *Manager) Close() error {
	var errs []error

	m.closeOnce.Do(func() {
		close(m.stopChan)

		m.mu.Lock()
		for _, sub := range m.subscribers {
			close(sub)
		}
		m.subscribers = nil
		m.mu.Unlock()

		if err := m.reminder.Close(); err != nil {
			errs = append(errs, err)
		}

		if err := m.ledger.Close(); err != nil {
			errs = append(errs, err)
		}

		if m.database != nil {
			if err := m.database.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	})

	return errors.Join(errs...)
}
