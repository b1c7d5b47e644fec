// Package app provides the main Bubble Tea application model and state management.
package app

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/j-veylop/hydration-tui/internal/models"
	"github.com/j-veylop/hydration-tui/internal/services"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
	// NotificationLoading represents a loading notification with spinner.
	NotificationLoading
)

const (
	// LoadingNotificationID is the fixed ID for loading notifications.
	LoadingNotificationID = "__loading__"

	maxNotifications = 10
)

// String returns the string representation of a NotificationType.
func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	case NotificationInfo:
		return "info"
	case NotificationLoading:
		return "loading"
	default:
		return "unknown"
	}
}

// Notification represents a user-facing notification message.
type Notification struct {
	ID        string
	Type      NotificationType
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// LoadingState tracks loading states for different resources.
type LoadingState struct {
	Initial bool
	Ledger  bool
	Report  bool
}

// State is the data shared between the root model and the tabs.
type State struct {
	mu sync.RWMutex

	Drinks        []models.DrinkEvent
	CurrentMl     int
	TodaysTotalMl int
	MaxDailyMl    int
	Profile       models.HydrationProfile
	ProfileFound  bool
	DarkTheme     bool

	Loading LoadingState

	LastUpdated time.Time

	notifications []Notification
}

// NewState creates an empty state that is waiting for its initial load.
func NewState() *State {
	return &State{
		Drinks:        make([]models.DrinkEvent, 0),
		notifications: make([]Notification, 0),
		Loading: LoadingState{
			Initial: true,
		},
	}
}

// SetLoading sets the loading state for a specific resource.
func (s *State) SetLoading(resource string, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch resource {
	case "initial":
		s.Loading.Initial = loading
	case "ledger":
		s.Loading.Ledger = loading
	case "report":
		s.Loading.Report = loading
	}
}

// AnyLoading returns true if any resource is currently loading.
func (s *State) AnyLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.Loading.Initial || s.Loading.Ledger || s.Loading.Report
}

// IsInitialLoading returns true if initial data is still loading.
func (s *State) IsInitialLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Loading.Initial
}

// GetLoadingResources returns a list of currently loading resources.
func (s *State) GetLoadingResources() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var resources []string
	if s.Loading.Initial {
		resources = append(resources, "initial")
	}
	if s.Loading.Ledger {
		resources = append(resources, "ledger")
	}
	if s.Loading.Report {
		resources = append(resources, "report")
	}
	return resources
}

// SetOverview replaces the whole state with a freshly loaded overview.
func (s *State) SetOverview(o services.Overview) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Drinks = o.Drinks
	s.CurrentMl = o.CurrentMl
	s.TodaysTotalMl = o.TodaysTotalMl
	s.MaxDailyMl = o.MaxDailyMl
	s.Profile = o.Profile
	s.ProfileFound = o.ProfileFound
	s.DarkTheme = o.DarkTheme
	s.LastUpdated = time.Now()
}

// ApplyLedger updates the drink history and today's figures.
func (s *State) ApplyLedger(e services.LedgerChangedEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Drinks = e.Drinks
	s.CurrentMl = e.CurrentMl
	s.TodaysTotalMl = e.TodaysTotalMl
	s.LastUpdated = time.Now()
}

// ApplyProfile updates the profile and theme.
func (s *State) ApplyProfile(e services.ProfileChangedEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Profile = e.Profile
	s.ProfileFound = s.ProfileFound || e.Profile.IsSet()
	s.DarkTheme = e.DarkTheme
	s.LastUpdated = time.Now()
}

// GetDrinks returns a copy of the drink history, newest first.
func (s *State) GetDrinks() []models.DrinkEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	drinks := make([]models.DrinkEvent, len(s.Drinks))
	copy(drinks, s.Drinks)
	return drinks
}

// GetDrinkCount returns the number of recorded drinks.
func (s *State) GetDrinkCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.Drinks)
}

// GetCurrentMl returns today's displayed progress.
func (s *State) GetCurrentMl() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.CurrentMl
}

// GetTodaysTotalMl returns the sum of today's drinks.
func (s *State) GetTodaysTotalMl() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.TodaysTotalMl
}

// GetMaxDailyMl returns the daily intake ceiling.
func (s *State) GetMaxDailyMl() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.MaxDailyMl
}

// GetProfile returns the hydration profile.
func (s *State) GetProfile() models.HydrationProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Profile
}

// GetGoalMl returns the daily goal.
func (s *State) GetGoalMl() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Profile.HydrationGoalMl
}

// IsProfileFound reports whether a profile was stored.
func (s *State) IsProfileFound() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ProfileFound
}

// IsDarkTheme reports the theme preference.
func (s *State) IsDarkTheme() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.DarkTheme
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()

	s.notifications = append(s.notifications, Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	})

	if len(s.notifications) > maxNotifications {
		s.notifications = s.notifications[len(s.notifications)-maxNotifications:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// ClearExpiredNotifications removes all expired notifications.
func (s *State) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	s.notifications = active
}

// GetNotifications returns a copy of all active notifications.
func (s *State) GetNotifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	return active
}

// ClearAllNotifications removes all notifications.
func (s *State) ClearAllNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = make([]Notification, 0)
}

// SetLoadingNotification sets a loading notification message.
func (s *State) SetLoadingNotification(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications[i].Message = message
			return
		}
	}

	s.notifications = append(s.notifications, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
	})
}

// ClearLoadingNotification removes the loading notification.
func (s *State) ClearLoadingNotification() {
	s.RemoveNotification(LoadingNotificationID)
}

// GetLastUpdated returns the last time the state was updated.
func (s *State) GetLastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.LastUpdated
}

// TimeSinceUpdate returns the duration since the last update.
func (s *State) TimeSinceUpdate() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.LastUpdated.IsZero() {
		return 0
	}
	return time.Since(s.LastUpdated)
}
