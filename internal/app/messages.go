package app

import (
	"time"

	"github.com/j-veylop/hydration-tui/internal/models"
	"github.com/j-veylop/hydration-tui/internal/services"
)

// TickMsg is sent periodically to trigger state refresh.
type TickMsg struct {
	Time time.Time
}

// StartLoadingMsg signals that a resource is starting to load.
type StartLoadingMsg struct {
	Resource string
}

// StopLoadingMsg signals that a resource has finished loading.
type StopLoadingMsg struct {
	Resource string
}

// OverviewLoadedMsg contains the state loaded from the services.
type OverviewLoadedMsg struct {
	Overview services.Overview
}

// AddDrinkMsg requests recording a drink. TowardGoal records it as
// progress toward the goal without the daily ceiling check.
type AddDrinkMsg struct {
	AmountMl   int
	TowardGoal bool
}

// DrinkAddedMsg contains the result of recording a drink.
type DrinkAddedMsg struct {
	Drink      models.DrinkEvent
	TowardGoal bool
	Error      error
}

// DeleteDrinkMsg requests deletion of the drink at Index, 0 being the newest.
type DeleteDrinkMsg struct {
	Index int
}

// DrinkDeletedMsg contains the result of a deletion.
type DrinkDeletedMsg struct {
	Index   int
	Deleted bool
	Error   error
}

// SetProfileMsg requests saving the hydration profile. A zero GoalMl
// uses the ideal intake.
type SetProfileMsg struct {
	WeightKg        float64
	ActivityMinutes float64
	GoalMl          int
}

// ProfileSavedMsg contains the result of saving the profile.
type ProfileSavedMsg struct {
	Profile models.HydrationProfile
	Error   error
}

// ToggleThemeMsg requests switching between light and dark themes.
type ToggleThemeMsg struct{}

// ThemeToggledMsg contains the result of a theme switch.
type ThemeToggledMsg struct {
	Dark  bool
	Error error
}

// ReportLoadedMsg contains the buckets and statistics for a window.
type ReportLoadedMsg struct {
	Window  models.ReportingWindow
	Buckets []models.Bucket
	Stats   models.Statistics
}

// LedgerUpdatedMsg is forwarded to tabs after the drink history changed.
type LedgerUpdatedMsg struct {
	Event services.LedgerChangedEvent
}

// ProfileUpdatedMsg is forwarded to tabs after the profile changed.
type ProfileUpdatedMsg struct {
	Event services.ProfileChangedEvent
}

// OpenProfilePromptMsg asks the settings tab to open the profile form.
type OpenProfilePromptMsg struct{}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ClearNotificationsMsg requests clearing all notifications.
type ClearNotificationsMsg struct{}

// ClearExpiredNotificationsMsg triggers clearing of expired notifications.
type ClearExpiredNotificationsMsg struct{}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// QuitMsg requests the application to quit.
type QuitMsg struct{}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}
