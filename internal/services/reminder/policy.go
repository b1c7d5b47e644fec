// Package reminder decides when the user should be nudged to drink and
// dispatches desktop notifications.
package reminder

import (
	"time"

	"github.com/j-veylop/hydration-tui/internal/models"
)

// ShouldRemind reports whether at least threshold has elapsed since the
// most recent drink. events must be newest first. An empty history never
// triggers a reminder.
func ShouldRemind(events []models.DrinkEvent, now time.Time, threshold time.Duration) bool {
	if len(events) == 0 {
		return false
	}
	return now.Sub(events[0].Timestamp) >= threshold
}
