package services

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/j-veylop/hydration-tui/internal/clock"
	"github.com/j-veylop/hydration-tui/internal/config"
	"github.com/j-veylop/hydration-tui/internal/models"
	"github.com/j-veylop/hydration-tui/internal/services/ledger"
)

var noon = time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC)

type sink struct {
	mu     sync.Mutex
	titles []string
}

func (s *sink) send(title, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.titles = append(s.titles, title)
	return nil
}

func (s *sink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.titles)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		DatabasePath:          filepath.Join(t.TempDir(), "test.db"),
		MaxDailyMl:            7000,
		ReminderThreshold:     time.Hour,
		ReminderCheckInterval: time.Hour,
		RemindersEnabled:      true,
		Location:              time.UTC,
	}
}

func newTestManager(t *testing.T, cfg *config.Config) (*Manager, *sink, *clock.Fixed) {
	t.Helper()
	alerts := &sink{}
	clk := &clock.Fixed{T: noon}
	mgr, err := NewManager(cfg, WithClock(clk), WithAlert(alerts.send), WithNotifier(alerts.send), WithoutWatch())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	t.Cleanup(func() { _ = mgr.Close() })
	return mgr, alerts, clk
}

func TestNewManager(t *testing.T) {
	mgr, _, _ := newTestManager(t, testConfig(t))

	if mgr.Ledger() == nil {
		t.Error("Ledger service should be initialized")
	}
	if mgr.Profile() == nil {
		t.Error("Profile service should be initialized")
	}
	if mgr.Reminder() == nil {
		t.Error("Reminder service should be initialized")
	}
	if mgr.Database() == nil {
		t.Error("Database should be initialized")
	}

	ov := mgr.Overview()
	if ov.ProfileFound {
		t.Error("fresh database should have no profile")
	}
	if ov.MaxDailyMl != 7000 || len(ov.Drinks) != 0 {
		t.Errorf("Overview() = %+v", ov)
	}
}

func TestManager_AddDrinkAndGoal(t *testing.T) {
	ctx := context.Background()
	mgr, alerts, _ := newTestManager(t, testConfig(t))

	ch, _ := mgr.Subscribe()
	defer mgr.Unsubscribe(ch)

	if _, err := mgr.SetProfile(ctx, 70, 0, 1000); err != nil {
		t.Fatalf("SetProfile() failed: %v", err)
	}
	if _, err := mgr.AddDrink(ctx, 600); err != nil {
		t.Fatalf("AddDrink() failed: %v", err)
	}
	if alerts.count() != 0 {
		t.Fatal("goal alert fired before the goal was reached")
	}
	if _, err := mgr.AddDrink(ctx, 400); err != nil {
		t.Fatalf("AddDrink() failed: %v", err)
	}
	if alerts.count() != 1 {
		t.Errorf("goal alert fired %d times, want 1", alerts.count())
	}
	if _, err := mgr.AddDrink(ctx, 100); err != nil {
		t.Fatalf("AddDrink() failed: %v", err)
	}
	if alerts.count() != 1 {
		t.Errorf("goal alert fired again after the goal: %d", alerts.count())
	}

	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev := <-ch:
			if g, ok := ev.(GoalReachedEvent); ok {
				if g.GoalMl != 1000 || g.CurrentMl != 1000 {
					t.Errorf("GoalReachedEvent = %+v", g)
				}
				return
			}
		case <-timeout:
			t.Fatal("timeout waiting for GoalReachedEvent")
		}
	}
}

func TestManager_AddDrinkRejected(t *testing.T) {
	ctx := context.Background()
	mgr, _, _ := newTestManager(t, testConfig(t))

	if _, err := mgr.AddDrink(ctx, 0); !errors.Is(err, ledger.ErrInvalidAmount) {
		t.Errorf("AddDrink(0) error = %v, want ErrInvalidAmount", err)
	}
	if _, err := mgr.AddDrink(ctx, 7001); !errors.Is(err, ledger.ErrDailyLimitExceeded) {
		t.Errorf("AddDrink(7001) error = %v, want ErrDailyLimitExceeded", err)
	}
}

func TestManager_AddTowardGoal(t *testing.T) {
	ctx := context.Background()
	mgr, _, _ := newTestManager(t, testConfig(t))

	if _, err := mgr.SetProfile(ctx, 60, 0, 500); err != nil {
		t.Fatalf("SetProfile() failed: %v", err)
	}
	if _, err := mgr.AddTowardGoal(ctx, 750); err != nil {
		t.Fatalf("AddTowardGoal() failed: %v", err)
	}

	ov := mgr.Overview()
	if ov.CurrentMl != 500 || ov.TodaysTotalMl != 750 {
		t.Errorf("CurrentMl, TodaysTotalMl = %d, %d; want 500, 750", ov.CurrentMl, ov.TodaysTotalMl)
	}
}

func TestManager_Report(t *testing.T) {
	ctx := context.Background()
	mgr, _, _ := newTestManager(t, testConfig(t))

	if _, err := mgr.SetProfile(ctx, 70, 0, 2000); err != nil {
		t.Fatalf("SetProfile() failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := mgr.AddDrink(ctx, 500); err != nil {
			t.Fatalf("AddDrink() failed: %v", err)
		}
	}

	buckets, s := mgr.Report(models.WindowDay)
	if len(buckets) != 24 || buckets[12].TotalMl != 1500 {
		t.Errorf("hour 12 bucket = %d, want 1500", buckets[12].TotalMl)
	}
	if s.GoalAchievementPct != 75 {
		t.Errorf("GoalAchievementPct = %v, want 75", s.GoalAchievementPct)
	}
}

func TestManager_DeleteDrink(t *testing.T) {
	ctx := context.Background()
	mgr, _, _ := newTestManager(t, testConfig(t))

	if _, err := mgr.AddDrink(ctx, 500); err != nil {
		t.Fatalf("AddDrink() failed: %v", err)
	}
	if ok, err := mgr.DeleteDrink(ctx, 3); ok || err != nil {
		t.Errorf("DeleteDrink(3) = %v, %v; want false, nil", ok, err)
	}
	if ok, err := mgr.DeleteDrink(ctx, 0); !ok || err != nil {
		t.Errorf("DeleteDrink(0) = %v, %v; want true, nil", ok, err)
	}
}

func TestManager_Persistence(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	mgr, _, _ := newTestManager(t, cfg)
	if _, err := mgr.SetProfile(ctx, 80, 30, 3000); err != nil {
		t.Fatalf("SetProfile() failed: %v", err)
	}
	if _, err := mgr.ToggleTheme(ctx); err != nil {
		t.Fatalf("ToggleTheme() failed: %v", err)
	}
	if _, err := mgr.AddDrink(ctx, 250); err != nil {
		t.Fatalf("AddDrink() failed: %v", err)
	}
	if err := mgr.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	reopened, _, _ := newTestManager(t, cfg)
	ov := reopened.Overview()
	if !ov.ProfileFound || ov.Profile.HydrationGoalMl != 3000 {
		t.Errorf("Profile = %+v, found = %v", ov.Profile, ov.ProfileFound)
	}
	if ov.Profile.IdealWaterIntakeMl != 3155 {
		t.Errorf("IdealWaterIntakeMl = %d, want 3155", ov.Profile.IdealWaterIntakeMl)
	}
	if !ov.DarkTheme {
		t.Error("DarkTheme not persisted")
	}
	if len(ov.Drinks) != 1 || ov.TodaysTotalMl != 250 {
		t.Errorf("Drinks = %+v", ov.Drinks)
	}
}

func TestManager_ResetProfile(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	mgr, _, _ := newTestManager(t, cfg)
	if _, err := mgr.SetProfile(ctx, 70, 0, 2000); err != nil {
		t.Fatalf("SetProfile() failed: %v", err)
	}
	if err := mgr.ResetProfile(ctx); err != nil {
		t.Fatalf("ResetProfile() failed: %v", err)
	}

	ov := mgr.Overview()
	if ov.ProfileFound || ov.Profile.IsSet() {
		t.Errorf("Profile = %+v, found = %v, want cleared", ov.Profile, ov.ProfileFound)
	}

	// Without a goal the toward-goal display is no longer clamped.
	if _, err := mgr.AddTowardGoal(ctx, 2500); err != nil {
		t.Fatalf("AddTowardGoal() failed: %v", err)
	}
	if got := mgr.Overview().CurrentMl; got != 2500 {
		t.Errorf("CurrentMl = %d, want 2500", got)
	}

	if err := mgr.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	reopened, _, _ := newTestManager(t, cfg)
	if reopened.Overview().ProfileFound {
		t.Error("reset profile should stay cleared after reopening")
	}
}

func TestManager_Start(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	mgr, _, clk := newTestManager(t, cfg)

	if _, err := mgr.AddDrink(ctx, 250); err != nil {
		t.Fatalf("AddDrink() failed: %v", err)
	}
	clk.Advance(2 * time.Hour)

	ch, _ := mgr.Subscribe()
	defer mgr.Unsubscribe(ch)

	mgr.Start()

	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev := <-ch:
			if r, ok := ev.(ReminderEvent); ok {
				if r.Elapsed != 2*time.Hour {
					t.Errorf("Elapsed = %v, want 2h", r.Elapsed)
				}
				return
			}
		case <-timeout:
			t.Fatal("timeout waiting for ReminderEvent")
		}
	}
}

func TestManager_Subscription(t *testing.T) {
	mgr, _, _ := newTestManager(t, testConfig(t))

	ch, cmd := mgr.Subscribe()
	if ch == nil {
		t.Error("Subscribe returned nil channel")
	}
	if cmd == nil {
		t.Error("Subscribe returned nil command")
	}

	mgr.Unsubscribe(ch)

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("Channel should be closed")
		}
	default:
		t.Error("Channel should be closed")
	}
}

func TestManager_Broadcast(t *testing.T) {
	mgr, _, _ := newTestManager(t, testConfig(t))

	ch, _ := mgr.Subscribe()
	defer mgr.Unsubscribe(ch)

	event := ErrorEvent{Service: "test"}
	mgr.broadcast(event)

	timeout := time.After(time.Second)
	for {
		select {
		case e := <-ch:
			if got, ok := e.(ErrorEvent); ok && got.Service == "test" {
				return
			}
		case <-timeout:
			t.Fatal("Timeout waiting for broadcast")
		}
	}
}

func TestWaitForEvent(t *testing.T) {
	ch := make(chan ServiceEvent, 1)
	ch <- ErrorEvent{}

	cmd := WaitForEvent(ch)
	if msg := cmd(); msg == nil {
		t.Error("WaitForEvent cmd returned nil msg")
	}
}

func TestServiceEvent_Interface(t *testing.T) {
	var _ ServiceEvent = LedgerChangedEvent{}
	var _ ServiceEvent = ProfileChangedEvent{}
	var _ ServiceEvent = ReminderEvent{}
	var _ ServiceEvent = GoalReachedEvent{}
	var _ ServiceEvent = ErrorEvent{}
}
