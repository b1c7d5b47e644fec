// Package profile owns the user's hydration profile and the ideal intake formula.
package profile

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/j-veylop/hydration-tui/internal/db"
	"github.com/j-veylop/hydration-tui/internal/logger"
	"github.com/j-veylop/hydration-tui/internal/models"
)

const (
	mlPerKg          = 35
	mlPerActivitySet = 355
	activitySetMin   = 30
)

// IdealIntake returns the recommended daily intake in milliliters:
// 35 ml per kilogram plus 355 ml per 30 minutes of activity, rounded.
func IdealIntake(weightKg, activityMinutes float64) int {
	base := weightKg * mlPerKg
	activity := activityMinutes / activitySetMin * mlPerActivitySet
	return int(math.Round(base + activity))
}

// Store is the key-value capability the profile is persisted through.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// FieldError describes one invalid profile field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationError collects every invalid field of a profile update.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	return "invalid profile: " + strings.Join(msgs, "; ")
}

// Validate checks that weight, activity and goal are non-negative numbers.
func Validate(weightKg, activityMinutes float64, goalMl int) error {
	var fields []FieldError
	if weightKg < 0 || math.IsNaN(weightKg) || math.IsInf(weightKg, 0) {
		fields = append(fields, FieldError{Field: "weight", Message: "must be a non-negative number"})
	}
	if activityMinutes < 0 || math.IsNaN(activityMinutes) || math.IsInf(activityMinutes, 0) {
		fields = append(fields, FieldError{Field: "activity", Message: "must be a non-negative number"})
	}
	if goalMl < 0 {
		fields = append(fields, FieldError{Field: "goal", Message: "must not be negative"})
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Service holds the current profile and the theme preference.
type Service struct {
	mu        sync.RWMutex
	store     Store
	profile   models.HydrationProfile
	darkTheme bool
}

// New creates a profile service backed by store.
func New(store Store) *Service {
	return &Service{store: store}
}

// Load reads the profile from the store. found is false when any of the
// three profile keys is missing; the profile then stays at zero values and
// the caller is expected to prompt for it.
func (s *Service) Load(ctx context.Context) (found bool, err error) {
	weightRaw, err := s.store.Get(ctx, db.KeyWeight)
	if err != nil {
		return false, fmt.Errorf("failed to load weight: %w", err)
	}
	activityRaw, err := s.store.Get(ctx, db.KeyActiveMinutes)
	if err != nil {
		return false, fmt.Errorf("failed to load activity: %w", err)
	}
	goalRaw, err := s.store.Get(ctx, db.KeyWaterGoal)
	if err != nil {
		return false, fmt.Errorf("failed to load goal: %w", err)
	}
	themeRaw, err := s.store.Get(ctx, db.KeyDarkTheme)
	if err != nil {
		return false, fmt.Errorf("failed to load theme: %w", err)
	}

	dark := themeRaw == "true"

	if weightRaw == "" || activityRaw == "" || goalRaw == "" {
		s.mu.Lock()
		s.profile = models.HydrationProfile{}
		s.darkTheme = dark
		s.mu.Unlock()
		logger.Info("no hydration profile stored")
		return false, nil
	}

	weight, err := strconv.ParseFloat(weightRaw, 64)
	if err != nil {
		return false, fmt.Errorf("failed to parse weight %q: %w", weightRaw, err)
	}
	activity, err := strconv.ParseFloat(activityRaw, 64)
	if err != nil {
		return false, fmt.Errorf("failed to parse activity %q: %w", activityRaw, err)
	}
	goal, err := strconv.ParseFloat(goalRaw, 64)
	if err != nil {
		return false, fmt.Errorf("failed to parse goal %q: %w", goalRaw, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = models.HydrationProfile{
		WeightKg:           weight,
		ActivityMinutes:    activity,
		HydrationGoalMl:    int(math.Round(goal)),
		IdealWaterIntakeMl: IdealIntake(weight, activity),
	}
	s.darkTheme = dark
	return true, nil
}

// Profile returns the current profile.
func (s *Service) Profile() models.HydrationProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// GoalMl returns the current daily goal.
func (s *Service) GoalMl() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.HydrationGoalMl
}

// Set validates and stores a new profile. A goal of zero means "use the
// ideal intake". The ideal intake is recomputed on every call.
func (s *Service) Set(ctx context.Context, weightKg, activityMinutes float64, goalMl int) (models.HydrationProfile, error) {
	if err := Validate(weightKg, activityMinutes, goalMl); err != nil {
		return models.HydrationProfile{}, err
	}

	ideal := IdealIntake(weightKg, activityMinutes)
	if goalMl == 0 {
		goalMl = ideal
	}

	next := models.HydrationProfile{
		WeightKg:           weightKg,
		ActivityMinutes:    activityMinutes,
		HydrationGoalMl:    goalMl,
		IdealWaterIntakeMl: ideal,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	writes := []struct{ key, value string }{
		{db.KeyWeight, formatNumber(weightKg)},
		{db.KeyActiveMinutes, formatNumber(activityMinutes)},
		{db.KeyWaterGoal, strconv.Itoa(goalMl)},
	}
	for _, w := range writes {
		if err := s.store.Set(ctx, w.key, w.value); err != nil {
			return s.profile, fmt.Errorf("failed to save %s: %w", w.key, err)
		}
	}

	s.profile = next
	logger.Info("profile updated", "weight_kg", weightKg, "activity_min", activityMinutes, "goal_ml", goalMl)
	return next, nil
}

// Reset clears the stored profile back to the first-run state.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for _, key := range []string{db.KeyWeight, db.KeyActiveMinutes, db.KeyWaterGoal} {
		if err := s.store.Set(ctx, key, ""); err != nil {
			errs = append(errs, fmt.Errorf("failed to clear %s: %w", key, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	s.profile = models.HydrationProfile{}
	return nil
}

// DarkTheme reports the stored theme preference.
func (s *Service) DarkTheme() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.darkTheme
}

// ToggleTheme flips and persists the theme preference, returning the new value.
func (s *Service) ToggleTheme(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := !s.darkTheme
	if err := s.store.Set(ctx, db.KeyDarkTheme, strconv.FormatBool(next)); err != nil {
		return s.darkTheme, fmt.Errorf("failed to save theme: %w", err)
	}
	s.darkTheme = next
	return next, nil
}

// formatNumber renders a float without a trailing ".0" for whole numbers.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
