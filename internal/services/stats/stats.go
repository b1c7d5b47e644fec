// Package stats buckets drink events into reporting windows and derives
// consumption statistics. Every function is pure over the events passed in.
package stats

import (
	"fmt"
	"time"

	"github.com/j-veylop/hydration-tui/internal/clock"
	"github.com/j-veylop/hydration-tui/internal/models"
)

// dayLabelLayout is the label format for daily buckets.
const dayLabelLayout = "Jan 2"

type dateKey struct {
	y int
	m time.Month
	d int
}

func keyOf(t time.Time) dateKey {
	y, m, d := t.Date()
	return dateKey{y, m, d}
}

// Range returns the inclusive bounds of window relative to now, in now's
// location. Day covers today; Week and Month end today and reach back
// six and twenty-nine days.
func Range(window models.ReportingWindow, now time.Time) (start, end time.Time) {
	span := window.SpanDays()
	if span <= 0 {
		span = 1
	}
	y, m, d := now.Date()
	start = time.Date(y, m, d-(span-1), 0, 0, 0, 0, now.Location())
	end = clock.EndOfDay(now)
	return start, end
}

// InWindow reports whether t falls inside window relative to now.
func InWindow(t time.Time, window models.ReportingWindow, now time.Time) bool {
	start, end := Range(window, now)
	return !t.Before(start) && !t.After(end)
}

// Bucket groups events into the slots of window. Day mode yields 24 hourly
// buckets of the current calendar day; Week and Month yield one bucket per
// calendar day, oldest first. Buckets without events report zero.
func Bucket(events []models.DrinkEvent, window models.ReportingWindow, now time.Time) []models.Bucket {
	if window == models.WindowDay {
		return bucketHours(events, now)
	}
	return bucketDays(events, window.SpanDays(), now)
}

func bucketHours(events []models.DrinkEvent, now time.Time) []models.Bucket {
	buckets := make([]models.Bucket, 24)
	for h := range buckets {
		buckets[h].Label = fmt.Sprintf("%d:00", h)
	}

	today := keyOf(now)
	loc := now.Location()
	for _, e := range events {
		local := e.Timestamp.In(loc)
		if keyOf(local) != today {
			continue
		}
		buckets[local.Hour()].TotalMl += e.AmountMl
	}

	fillLiters(buckets)
	return buckets
}

func bucketDays(events []models.DrinkEvent, span int, now time.Time) []models.Bucket {
	if span <= 0 {
		return nil
	}

	loc := now.Location()
	y, m, d := now.Date()
	buckets := make([]models.Bucket, span)
	index := make(map[dateKey]int, span)
	for i := 0; i < span; i++ {
		day := time.Date(y, m, d-(span-1-i), 0, 0, 0, 0, loc)
		buckets[i].Label = day.Format(dayLabelLayout)
		index[keyOf(day)] = i
	}

	for _, e := range events {
		if i, ok := index[keyOf(e.Timestamp.In(loc))]; ok {
			buckets[i].TotalMl += e.AmountMl
		}
	}

	fillLiters(buckets)
	return buckets
}

func fillLiters(buckets []models.Bucket) {
	for i := range buckets {
		buckets[i].Liters = float64(buckets[i].TotalMl) / 1000
	}
}

// DistinctDays counts the calendar dates, in loc, that hold at least one event.
func DistinctDays(events []models.DrinkEvent, loc *time.Location) int {
	seen := make(map[dateKey]struct{})
	for _, e := range events {
		seen[keyOf(e.Timestamp.In(loc))] = struct{}{}
	}
	return len(seen)
}

// Compute derives statistics for the events falling inside window.
// Averages divide by the window's fixed span. Goal achievement compares
// the windowed total to goalMl per day of span and is clamped to [0, 100];
// a non-positive goal yields 0.
func Compute(events []models.DrinkEvent, goalMl int, window models.ReportingWindow, now time.Time) models.Statistics {
	s := models.Statistics{
		Window:       window,
		SpanDays:     window.SpanDays(),
		DistinctDays: DistinctDays(events, now.Location()),
	}

	start, end := Range(window, now)
	for _, e := range events {
		if e.Timestamp.Before(start) || e.Timestamp.After(end) {
			continue
		}
		s.TotalMl += e.AmountMl
		s.EventCount++
	}

	divisor := s.SpanDays
	if divisor <= 0 {
		divisor = s.DistinctDays
	}
	if divisor > 0 {
		s.AverageMl = float64(s.TotalMl) / float64(divisor)
		s.FrequencyPerDay = float64(s.EventCount) / float64(divisor)
	}

	s.GoalAchievementPct = goalAchievement(s.TotalMl, goalMl, window)
	return s
}

func goalAchievement(totalMl, goalMl int, window models.ReportingWindow) float64 {
	if goalMl <= 0 {
		return 0
	}

	target := float64(goalMl)
	if window != models.WindowDay {
		target *= float64(window.SpanDays())
	}
	if target <= 0 {
		return 0
	}

	pct := float64(totalMl) * 100 / target
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	default:
		return pct
	}
}
