package models

import (
	"fmt"
	"strings"
)

// ReportingWindow selects the aggregation span used for charts and statistics.
type ReportingWindow int

const (
	// WindowDay buckets today's drinks into 24 hourly slots.
	WindowDay ReportingWindow = iota
	// WindowWeek buckets the last 7 calendar days, today included.
	WindowWeek
	// WindowMonth buckets the last 30 calendar days, today included.
	WindowMonth
)

// String returns the display name for a window.
func (w ReportingWindow) String() string {
	switch w {
	case WindowDay:
		return "Day"
	case WindowWeek:
		return "Week"
	case WindowMonth:
		return "Month"
	default:
		return "Unknown"
	}
}

// SpanDays returns the fixed number of calendar days covered by the window.
func (w ReportingWindow) SpanDays() int {
	switch w {
	case WindowDay:
		return 1
	case WindowWeek:
		return 7
	case WindowMonth:
		return 30
	default:
		return 0
	}
}

// BucketCount returns how many buckets the aggregator produces for the window.
func (w ReportingWindow) BucketCount() int {
	switch w {
	case WindowDay:
		return 24
	default:
		return w.SpanDays()
	}
}

// Next cycles to the next window.
func (w ReportingWindow) Next() ReportingWindow {
	return (w + 1) % 3
}

// ParseReportingWindow accepts "day", "week" or "month" (case-insensitive).
func ParseReportingWindow(s string) (ReportingWindow, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day", "hour":
		return WindowDay, nil
	case "week":
		return WindowWeek, nil
	case "month":
		return WindowMonth, nil
	default:
		return WindowWeek, fmt.Errorf("unknown reporting window: %q", s)
	}
}
