// Package ledger owns the newest-first history of drink events and persists
// it to the key-value store after every mutation.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/j-veylop/hydration-tui/internal/clock"
	"github.com/j-veylop/hydration-tui/internal/db"
	"github.com/j-veylop/hydration-tui/internal/logger"
	"github.com/j-veylop/hydration-tui/internal/models"
)

var (
	// ErrInvalidAmount is returned for amounts that are not positive.
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	// ErrDailyLimitExceeded is returned when a drink would push today's total over the ceiling.
	ErrDailyLimitExceeded = errors.New("daily limit exceeded")
)

// DefaultMaxDailyMl is the per-day ceiling used when none is configured.
const DefaultMaxDailyMl = 7000

// Store is the key-value capability the history is persisted through.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// EventType defines the type of ledger event.
type EventType int

const (
	EventLoaded EventType = iota
	EventRecorded
	EventDeleted
	EventReloaded
	EventError
)

// Event represents a ledger change.
type Event struct {
	Type  EventType
	Drink *models.DrinkEvent
	Error error
}

// Service owns the drink history.
type Service struct {
	mu         sync.RWMutex
	store      Store
	clock      clock.Clock
	maxDailyMl int
	goalMl     int

	events    []models.DrinkEvent
	currentMl int
	dayStart  int64
	lastSaved string

	eventChan chan Event
	watch     *watcher
}

// New creates a ledger backed by store. maxDailyMl <= 0 selects DefaultMaxDailyMl.
func New(store Store, clk clock.Clock, maxDailyMl int) *Service {
	if maxDailyMl <= 0 {
		maxDailyMl = DefaultMaxDailyMl
	}
	if clk == nil {
		clk = clock.System{}
	}
	return &Service{
		store:      store,
		clock:      clk,
		maxDailyMl: maxDailyMl,
		events:     make([]models.DrinkEvent, 0),
		eventChan:  make(chan Event, 100),
	}
}

// Events returns the event channel for subscribing to ledger changes.
func (s *Service) Events() <-chan Event {
	return s.eventChan
}

// MaxDailyMl returns the configured per-day ceiling.
func (s *Service) MaxDailyMl() int {
	return s.maxDailyMl
}

// SetGoal sets the goal that RecordTowardGoal clamps the display value to.
func (s *Service) SetGoal(goalMl int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goalMl = goalMl
}

// Load reads the persisted history. An empty store yields an empty ledger.
// The display value is recomputed from today's total.
func (s *Service) Load(ctx context.Context) error {
	data, err := s.store.Get(ctx, db.KeyDrinkHistory)
	if err != nil {
		return fmt.Errorf("failed to load drink history: %w", err)
	}
	events, err := models.DecodeHistory(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.replaceLocked(events, data)
	count := len(s.events)
	s.mu.Unlock()

	logger.Info("drink history loaded", "events", count)
	s.sendEvent(Event{Type: EventLoaded})
	return nil
}

// Reload re-reads the persisted history and replaces the in-memory ledger
// when it differs from what this service last wrote. It reports whether
// anything changed.
func (s *Service) Reload(ctx context.Context) (bool, error) {
	// Read and replace under one lock so a concurrent Record is never
	// overwritten by an older read.
	s.mu.Lock()
	events, changed, err := s.reloadLocked(ctx)
	s.mu.Unlock()
	if err != nil || !changed {
		return false, err
	}

	logger.Info("drink history changed externally", "events", len(events))
	s.sendEvent(Event{Type: EventReloaded})
	return true, nil
}

func (s *Service) reloadLocked(ctx context.Context) ([]models.DrinkEvent, bool, error) {
	data, err := s.store.Get(ctx, db.KeyDrinkHistory)
	if err != nil {
		return nil, false, fmt.Errorf("failed to reload drink history: %w", err)
	}
	if data == s.lastSaved {
		return nil, false, nil
	}
	events, err := models.DecodeHistory(data)
	if err != nil {
		return nil, false, err
	}
	s.replaceLocked(events, data)
	return events, true, nil
}

// Record appends a drink of amountMl stamped with the current time.
// A drink that would push today's total over the ceiling is rejected with
// ErrDailyLimitExceeded and nothing is written. If persisting fails the
// drink stays recorded in memory and the store error is returned.
func (s *Service) Record(ctx context.Context, amountMl int) (models.DrinkEvent, error) {
	if amountMl <= 0 {
		return models.DrinkEvent{}, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	s.rolloverLocked(now)

	if s.todaysTotalLocked(now)+amountMl > s.maxDailyMl {
		return models.DrinkEvent{}, ErrDailyLimitExceeded
	}

	drink := models.DrinkEvent{Timestamp: now, AmountMl: amountMl}
	s.prependLocked(drink)
	s.currentMl += amountMl

	return drink, s.persistLocked(ctx, Event{Type: EventRecorded, Drink: &drink})
}

// RecordTowardGoal records amountMl in history without the ceiling check
// while the display value is clamped to the goal. Stored history may
// therefore exceed what CurrentMl reports.
func (s *Service) RecordTowardGoal(ctx context.Context, amountMl int) (models.DrinkEvent, error) {
	if amountMl <= 0 {
		return models.DrinkEvent{}, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	s.rolloverLocked(now)

	drink := models.DrinkEvent{Timestamp: now, AmountMl: amountMl}
	s.prependLocked(drink)

	s.currentMl += amountMl
	if s.goalMl > 0 && s.currentMl > s.goalMl {
		s.currentMl = s.goalMl
	}

	return drink, s.persistLocked(ctx, Event{Type: EventRecorded, Drink: &drink})
}

// Delete removes the event at index, 0 being the most recent. An index out
// of range is a no-op and reports false.
func (s *Service) Delete(ctx context.Context, index int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.events) {
		return false, nil
	}

	removed := s.events[index]
	s.events = append(s.events[:index], s.events[index+1:]...)

	// The display value never exceeds today's stored total.
	now := s.clock.Now()
	s.rolloverLocked(now)
	s.currentMl = min(s.currentMl, s.todaysTotalLocked(now))

	return true, s.persistLocked(ctx, Event{Type: EventDeleted, Drink: &removed})
}

// TodaysTotal sums the drinks stamped between local midnight and now.
func (s *Service) TodaysTotal() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.todaysTotalLocked(s.clock.Now())
}

// CurrentMl returns the display value shown as today's progress.
func (s *Service) CurrentMl() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rolloverLocked(s.clock.Now())
	return s.currentMl
}

// Snapshot returns a copy of the history, newest first.
func (s *Service) Snapshot() []models.DrinkEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]models.DrinkEvent, len(s.events))
	copy(events, s.events)
	return events
}

// Count returns the number of recorded drinks.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// Export returns the persisted JSON encoding of the current history.
func (s *Service) Export() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.EncodeHistory(s.events)
}

// Close stops the file watcher, if any.
func (s *Service) Close() error {
	s.mu.Lock()
	w := s.watch
	s.watch = nil
	s.mu.Unlock()

	if w != nil {
		return w.close()
	}
	return nil
}

func (s *Service) todaysTotalLocked(now time.Time) int {
	start := clock.StartOfDay(now)
	total := 0
	for _, e := range s.events {
		if !e.Timestamp.Before(start) && !e.Timestamp.After(now) {
			total += e.AmountMl
		}
	}
	return total
}

// rolloverLocked resets the display value when the calendar day changed
// since it was last computed.
func (s *Service) rolloverLocked(now time.Time) {
	start := clock.StartOfDay(now).Unix()
	if start != s.dayStart {
		s.dayStart = start
		s.currentMl = s.todaysTotalLocked(now)
	}
}

func (s *Service) prependLocked(drink models.DrinkEvent) {
	s.events = append(s.events, models.DrinkEvent{})
	copy(s.events[1:], s.events)
	s.events[0] = drink
}

func (s *Service) replaceLocked(events []models.DrinkEvent, data string) {
	s.events = events
	s.lastSaved = data
	now := s.clock.Now()
	s.dayStart = clock.StartOfDay(now).Unix()
	s.currentMl = s.todaysTotalLocked(now)
}

// persistLocked writes the full history. On failure memory and store
// diverge until the next successful write.
func (s *Service) persistLocked(ctx context.Context, ok Event) error {
	data, err := models.EncodeHistory(s.events)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, db.KeyDrinkHistory, data); err != nil {
		err = fmt.Errorf("failed to save drink history: %w", err)
		logger.Error("drink history not persisted", "error", err)
		s.sendEvent(Event{Type: EventError, Error: err})
		return err
	}
	s.lastSaved = data
	s.sendEvent(ok)
	return nil
}

// sendEvent sends an event to the event channel non-blocking.
func (s *Service) sendEvent(event Event) {
	select {
	case s.eventChan <- event:
	default:
		// Channel full, drop oldest event
		select {
		case <-s.eventChan:
		default:
		}
		select {
		case s.eventChan <- event:
		default:
		}
	}
}
