package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/hydration-tui/internal/models"
	"github.com/j-veylop/hydration-tui/internal/services"
	"github.com/j-veylop/hydration-tui/internal/services/ledger"
)

const (
	// DefaultTickInterval is the default interval between ticks.
	DefaultTickInterval = 2 * time.Second

	// DefaultNotificationDuration is the default duration for notifications.
	DefaultNotificationDuration = 5 * time.Second

	// QuickNotificationDuration is for brief notifications.
	QuickNotificationDuration = 3 * time.Second

	// LongNotificationDuration is for important notifications.
	LongNotificationDuration = 10 * time.Second

	// serviceTimeout bounds a single store round-trip issued from the UI.
	serviceTimeout = 5 * time.Second
)

// errNoServices is returned by commands issued without a service manager.
var errNoServices = errors.New("services not initialized")

// tickCmd returns a command that sends a TickMsg after the specified interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// defaultTickCmd returns a command that sends a TickMsg after the default interval.
func defaultTickCmd() tea.Cmd {
	return tickCmd(DefaultTickInterval)
}

// loadOverviewCmd returns a command that loads the current overview.
func loadOverviewCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		return OverviewLoadedMsg{Overview: mgr.Overview()}
	}
}

// addDrinkCmd returns a command that records a drink.
func addDrinkCmd(mgr *services.Manager, amountMl int, towardGoal bool) tea.Cmd {
	return func() tea.Msg {
		if mgr == nil {
			return DrinkAddedMsg{TowardGoal: towardGoal, Error: errNoServices}
		}
		ctx, cancel := context.WithTimeout(context.Background(), serviceTimeout)
		defer cancel()

		var (
			drink models.DrinkEvent
			err   error
		)
		if towardGoal {
			drink, err = mgr.AddTowardGoal(ctx, amountMl)
		} else {
			drink, err = mgr.AddDrink(ctx, amountMl)
		}
		return DrinkAddedMsg{Drink: drink, TowardGoal: towardGoal, Error: err}
	}
}

// deleteDrinkCmd returns a command that deletes the drink at index.
func deleteDrinkCmd(mgr *services.Manager, index int) tea.Cmd {
	return func() tea.Msg {
		if mgr == nil {
			return DrinkDeletedMsg{Index: index, Error: errNoServices}
		}
		ctx, cancel := context.WithTimeout(context.Background(), serviceTimeout)
		defer cancel()

		deleted, err := mgr.DeleteDrink(ctx, index)
		return DrinkDeletedMsg{Index: index, Deleted: deleted, Error: err}
	}
}

// setProfileCmd returns a command that saves the hydration profile.
func setProfileCmd(mgr *services.Manager, msg SetProfileMsg) tea.Cmd {
	return func() tea.Msg {
		if mgr == nil {
			return ProfileSavedMsg{Error: errNoServices}
		}
		ctx, cancel := context.WithTimeout(context.Background(), serviceTimeout)
		defer cancel()

		p, err := mgr.SetProfile(ctx, msg.WeightKg, msg.ActivityMinutes, msg.GoalMl)
		return ProfileSavedMsg{Profile: p, Error: err}
	}
}

// toggleThemeCmd returns a command that flips the persisted theme.
func toggleThemeCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		if mgr == nil {
			return ThemeToggledMsg{Error: errNoServices}
		}
		ctx, cancel := context.WithTimeout(context.Background(), serviceTimeout)
		defer cancel()

		dark, err := mgr.ToggleTheme(ctx)
		return ThemeToggledMsg{Dark: dark, Error: err}
	}
}

// LoadReportCmd returns a command that computes buckets and statistics.
func LoadReportCmd(mgr *services.Manager, window models.ReportingWindow) tea.Cmd {
	return func() tea.Msg {
		if mgr == nil {
			return ReportLoadedMsg{Window: window}
		}
		buckets, st := mgr.Report(window)
		return ReportLoadedMsg{Window: window, Buckets: buckets, Stats: st}
	}
}

// subscribeToServicesCmd returns a command that subscribes to service events.
func subscribeToServicesCmd(mgr *services.Manager) tea.Cmd {
	ch, _ := mgr.Subscribe()
	return func() tea.Msg {
		return SubscriptionEventMsg{Channel: ch}
	}
}

// waitForServiceEventCmd returns a command that waits for the next service event.
func waitForServiceEventCmd(ch <-chan services.ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return ServiceEventMsg{Event: event}
	}
}

// clearNotificationCmd returns a command that removes a notification after a delay.
func clearNotificationCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return RemoveNotificationMsg{ID: id}
	})
}

// notifySuccessCmd returns a command that adds a success notification.
func notifySuccessCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationSuccess,
			Message:  message,
			Duration: DefaultNotificationDuration,
		}
	}
}

// notifyErrorCmd returns a command that adds an error notification.
func notifyErrorCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationError,
			Message:  message,
			Duration: LongNotificationDuration,
		}
	}
}

// notifyWarningCmd returns a command that adds a warning notification.
func notifyWarningCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationWarning,
			Message:  message,
			Duration: DefaultNotificationDuration,
		}
	}
}

// notifyInfoCmd returns a command that adds an info notification.
func notifyInfoCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationInfo,
			Message:  message,
			Duration: QuickNotificationDuration,
		}
	}
}

// LimitMessage is the warning shown when a drink would exceed the daily ceiling.
func LimitMessage(maxDailyMl int) string {
	liters := strconv.FormatFloat(float64(maxDailyMl)/1000, 'f', -1, 64)
	return fmt.Sprintf("You have reached the maximum daily limit of %s liters!", liters)
}

// drinkErrorCmd maps a failed record to the notification the user sees.
func drinkErrorCmd(err error, maxDailyMl int) tea.Cmd {
	switch {
	case errors.Is(err, ledger.ErrDailyLimitExceeded):
		return notifyWarningCmd(LimitMessage(maxDailyMl))
	case errors.Is(err, ledger.ErrInvalidAmount):
		return notifyWarningCmd("Please enter an amount greater than zero")
	default:
		return notifyErrorCmd(fmt.Sprintf("Failed to record drink: %v", err))
	}
}

// Commands provides a public interface to the command functions.
type Commands struct {
	manager *services.Manager
}

// NewCommands creates a new Commands instance.
func NewCommands(mgr *services.Manager) *Commands {
	return &Commands{manager: mgr}
}

// Tick returns a tick command with the specified interval.
func (c *Commands) Tick(interval time.Duration) tea.Cmd {
	return tickCmd(interval)
}

// DefaultTick returns a tick command with the default interval.
func (c *Commands) DefaultTick() tea.Cmd {
	return defaultTickCmd()
}

// AddDrink returns a command that records a drink.
func (c *Commands) AddDrink(amountMl int, towardGoal bool) tea.Cmd {
	return addDrinkCmd(c.manager, amountMl, towardGoal)
}

// DeleteDrink returns a command that deletes a drink.
func (c *Commands) DeleteDrink(index int) tea.Cmd {
	return deleteDrinkCmd(c.manager, index)
}

// SetProfile returns a command that saves the profile.
func (c *Commands) SetProfile(msg SetProfileMsg) tea.Cmd {
	return setProfileCmd(c.manager, msg)
}

// ToggleTheme returns a command that flips the theme.
func (c *Commands) ToggleTheme() tea.Cmd {
	return toggleThemeCmd(c.manager)
}

// LoadReport returns a command that computes a report for window.
func (c *Commands) LoadReport(window models.ReportingWindow) tea.Cmd {
	return LoadReportCmd(c.manager, window)
}

// NotifySuccess returns a command that adds a success notification.
func (c *Commands) NotifySuccess(message string) tea.Cmd {
	return notifySuccessCmd(message)
}

// NotifyError returns a command that adds an error notification.
func (c *Commands) NotifyError(message string) tea.Cmd {
	return notifyErrorCmd(message)
}

// NotifyWarning returns a command that adds a warning notification.
func (c *Commands) NotifyWarning(message string) tea.Cmd {
	return notifyWarningCmd(message)
}

// NotifyInfo returns a command that adds an info notification.
func (c *Commands) NotifyInfo(message string) tea.Cmd {
	return notifyInfoCmd(message)
}

// ClearNotification returns a command that removes a notification after a delay.
func (c *Commands) ClearNotification(id string, delay time.Duration) tea.Cmd {
	return clearNotificationCmd(id, delay)
}

// Quit returns a command that quits the application.
func (c *Commands) Quit() tea.Cmd {
	return tea.Quit
}
