package ledger

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/j-veylop/hydration-tui/internal/clock"
	"github.com/j-veylop/hydration-tui/internal/db"
)

type memStore struct {
	mu      sync.Mutex
	values  map[string]string
	failSet bool
	sets    int
}

func newMemStore() *memStore {
	return &memStore{values: make(map[string]string)}
}

func (m *memStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

func (m *memStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSet {
		return errors.New("store unavailable")
	}
	m.sets++
	m.values[key] = value
	return nil
}

var noon = time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *memStore, *clock.Fixed) {
	t.Helper()
	store := newMemStore()
	clk := &clock.Fixed{T: noon}
	svc := New(store, clk, 7000)
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	return svc, store, clk
}

func newTestDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("db.New() failed: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func TestRecord_Sum(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Record(ctx, 500); err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}

	if got := svc.TodaysTotal(); got != 1500 {
		t.Errorf("TodaysTotal() = %d, want 1500", got)
	}
	if got := svc.CurrentMl(); got != 1500 {
		t.Errorf("CurrentMl() = %d, want 1500", got)
	}
	if store.sets != 3 {
		t.Errorf("store written %d times, want 3", store.sets)
	}
}

func TestRecord_NewestFirst(t *testing.T) {
	svc, _, clk := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Record(ctx, 100); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	clk.Advance(time.Minute)
	second, err := svc.Record(ctx, 200)
	if err != nil {
		t.Fatalf("Record() failed: %v", err)
	}

	events := svc.Snapshot()
	if len(events) != 2 || events[0].AmountMl != 200 {
		t.Fatalf("Snapshot() = %+v, want 200 first", events)
	}
	if !events[0].Timestamp.Equal(second.Timestamp) || !second.Timestamp.Equal(noon.Add(time.Minute)) {
		t.Errorf("newest timestamp = %v, want %v", events[0].Timestamp, noon.Add(time.Minute))
	}
}

func TestRecord_InvalidAmount(t *testing.T) {
	svc, store, _ := newTestService(t)

	for _, amount := range []int{0, -250} {
		if _, err := svc.Record(context.Background(), amount); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("Record(%d) error = %v, want ErrInvalidAmount", amount, err)
		}
		if _, err := svc.RecordTowardGoal(context.Background(), amount); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("RecordTowardGoal(%d) error = %v, want ErrInvalidAmount", amount, err)
		}
	}
	if svc.Count() != 0 || store.sets != 0 {
		t.Errorf("invalid amounts mutated the ledger: count=%d sets=%d", svc.Count(), store.sets)
	}
}

func TestRecord_CeilingBoundary(t *testing.T) {
	tests := []struct {
		name    string
		first   int
		second  int
		wantErr error
	}{
		{"Exact", 6000, 1000, nil},
		{"OneOver", 6000, 1001, ErrDailyLimitExceeded},
		{"SingleExact", 7000, 0, nil},
		{"SingleOver", 7001, 0, ErrDailyLimitExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _ := newTestService(t)
			ctx := context.Background()

			_, err := svc.Record(ctx, tt.first)
			if tt.second == 0 {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Record(%d) error = %v, want %v", tt.first, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Record(%d) failed: %v", tt.first, err)
			}

			before := store.values[db.KeyDrinkHistory]
			_, err = svc.Record(ctx, tt.second)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Record(%d) error = %v, want %v", tt.second, err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if svc.Count() != 1 {
					t.Errorf("Count() = %d after rejection, want 1", svc.Count())
				}
				if store.values[db.KeyDrinkHistory] != before {
					t.Error("rejected drink was written to the store")
				}
			}
		})
	}
}

func TestRecord_CeilingIsPerDay(t *testing.T) {
	svc, _, clk := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Record(ctx, 7000); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	clk.Advance(24 * time.Hour)
	if _, err := svc.Record(ctx, 500); err != nil {
		t.Errorf("Record() next day failed: %v", err)
	}
	if got := svc.TodaysTotal(); got != 500 {
		t.Errorf("TodaysTotal() = %d, want 500", got)
	}
}

func TestRecordTowardGoal_ClampsDisplay(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	svc.SetGoal(1000)

	if _, err := svc.RecordTowardGoal(ctx, 800); err != nil {
		t.Fatalf("RecordTowardGoal() failed: %v", err)
	}
	if _, err := svc.RecordTowardGoal(ctx, 500); err != nil {
		t.Fatalf("RecordTowardGoal() failed: %v", err)
	}

	if got := svc.CurrentMl(); got != 1000 {
		t.Errorf("CurrentMl() = %d, want clamped 1000", got)
	}
	if got := svc.TodaysTotal(); got != 1300 {
		t.Errorf("TodaysTotal() = %d, want raw 1300", got)
	}
}

func TestRecordTowardGoal_DeleteKeepsClamp(t *testing.T) {
	svc, _, clk := newTestService(t)
	ctx := context.Background()
	svc.SetGoal(2000)

	clk.Set(noon.Add(-24 * time.Hour))
	if _, err := svc.Record(ctx, 300); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	clk.Set(noon)
	if _, err := svc.RecordTowardGoal(ctx, 2500); err != nil {
		t.Fatalf("RecordTowardGoal() failed: %v", err)
	}
	if got := svc.CurrentMl(); got != 2000 {
		t.Fatalf("CurrentMl() = %d, want clamped 2000", got)
	}

	if ok, err := svc.Delete(ctx, 1); err != nil || !ok {
		t.Fatalf("Delete(1) = %v, %v; want true, nil", ok, err)
	}
	if got := svc.CurrentMl(); got != 2000 {
		t.Errorf("CurrentMl() after deleting yesterday's drink = %d, want 2000", got)
	}
	if got := svc.TodaysTotal(); got != 2500 {
		t.Errorf("TodaysTotal() = %d, want 2500", got)
	}

	if ok, err := svc.Delete(ctx, 0); err != nil || !ok {
		t.Fatalf("Delete(0) = %v, %v; want true, nil", ok, err)
	}
	if got := svc.CurrentMl(); got != 0 {
		t.Errorf("CurrentMl() after deleting today's drink = %d, want 0", got)
	}
}

func TestRecordTowardGoal_NoCeiling(t *testing.T) {
	svc, _, _ := newTestService(t)
	svc.SetGoal(2000)

	if _, err := svc.RecordTowardGoal(context.Background(), 8000); err != nil {
		t.Fatalf("RecordTowardGoal() over ceiling failed: %v", err)
	}
	if got := svc.TodaysTotal(); got != 8000 {
		t.Errorf("TodaysTotal() = %d, want 8000", got)
	}
}

func TestDelete(t *testing.T) {
	svc, store, clk := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Record(ctx, 300); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	clk.Advance(time.Minute)
	if _, err := svc.Record(ctx, 400); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}

	ok, err := svc.Delete(ctx, 0)
	if err != nil || !ok {
		t.Fatalf("Delete(0) = %v, %v; want true, nil", ok, err)
	}
	events := svc.Snapshot()
	if len(events) != 1 || events[0].AmountMl != 300 {
		t.Errorf("Snapshot() after delete = %+v, want the 300ml drink", events)
	}
	if svc.CurrentMl() != 300 {
		t.Errorf("CurrentMl() = %d, want 300", svc.CurrentMl())
	}
	if store.sets != 3 {
		t.Errorf("store written %d times, want 3", store.sets)
	}
}

func TestDelete_OutOfRange(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := svc.Record(ctx, 250); err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}
	before := svc.Snapshot()
	sets := store.sets

	for _, idx := range []int{5, 2, -1} {
		ok, err := svc.Delete(ctx, idx)
		if err != nil || ok {
			t.Errorf("Delete(%d) = %v, %v; want false, nil", idx, ok, err)
		}
	}

	if len(svc.Snapshot()) != len(before) {
		t.Error("out-of-range delete changed the ledger")
	}
	if store.sets != sets {
		t.Error("out-of-range delete wrote to the store")
	}
}

func TestTodaysTotal_ExcludesOtherDays(t *testing.T) {
	svc, _, clk := newTestService(t)
	ctx := context.Background()

	clk.Set(noon.Add(-24 * time.Hour))
	if _, err := svc.Record(ctx, 700); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	clk.Set(time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC))
	if _, err := svc.Record(ctx, 200); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	clk.Set(noon)

	if got := svc.TodaysTotal(); got != 200 {
		t.Errorf("TodaysTotal() = %d, want 200", got)
	}
}

func TestCurrentMl_Rollover(t *testing.T) {
	svc, _, clk := newTestService(t)
	svc.SetGoal(500)

	clk.Set(time.Date(2026, 5, 2, 23, 0, 0, 0, time.UTC))
	if _, err := svc.RecordTowardGoal(context.Background(), 800); err != nil {
		t.Fatalf("RecordTowardGoal() failed: %v", err)
	}
	if svc.CurrentMl() != 500 {
		t.Fatalf("CurrentMl() = %d, want 500", svc.CurrentMl())
	}

	clk.Advance(2 * time.Hour)
	if got := svc.CurrentMl(); got != 0 {
		t.Errorf("CurrentMl() after midnight = %d, want 0", got)
	}
}

func TestPersistFailure_Diverges(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	store.failSet = true

	if _, err := svc.Record(ctx, 250); err == nil {
		t.Fatal("Record() should surface store failure")
	}
	if svc.Count() != 1 {
		t.Errorf("Count() = %d, want in-memory drink kept", svc.Count())
	}
	if store.values[db.KeyDrinkHistory] != "" {
		t.Error("store should not hold the failed write")
	}

	store.failSet = false
	if _, err := svc.Record(ctx, 250); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}

	reloaded := New(store, &clock.Fixed{T: noon}, 7000)
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if reloaded.Count() != 2 {
		t.Errorf("next successful write persisted %d drinks, want 2", reloaded.Count())
	}
}

func TestRoundTrip_SQLite(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)
	clk := &clock.Fixed{T: noon}
	svc := New(database, clk, 7000)
	if err := svc.Load(ctx); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	for i, amount := range []int{250, 330, 500} {
		clk.Set(noon.Add(time.Duration(i) * time.Minute))
		if _, err := svc.Record(ctx, amount); err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}

	reloaded := New(database, clk, 7000)
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	want := svc.Snapshot()
	got := reloaded.Snapshot()
	if len(got) != len(want) {
		t.Fatalf("reloaded %d events, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].AmountMl != want[i].AmountMl || !got[i].Timestamp.Equal(want[i].Timestamp) {
			t.Errorf("event %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if reloaded.TodaysTotal() != 1080 {
		t.Errorf("TodaysTotal() = %d, want 1080", reloaded.TodaysTotal())
	}
}

func TestLoad_Corrupt(t *testing.T) {
	store := newMemStore()
	store.values[db.KeyDrinkHistory] = "{broken"
	svc := New(store, &clock.Fixed{T: noon}, 0)

	if err := svc.Load(context.Background()); err == nil {
		t.Error("Load() should fail on corrupt history")
	}
	if svc.MaxDailyMl() != DefaultMaxDailyMl {
		t.Errorf("MaxDailyMl() = %d, want default", svc.MaxDailyMl())
	}
}

func TestReload(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	clk := &clock.Fixed{T: noon}

	a := New(store, clk, 7000)
	b := New(store, clk, 7000)
	for _, svc := range []*Service{a, b} {
		if err := svc.Load(ctx); err != nil {
			t.Fatalf("Load() failed: %v", err)
		}
	}

	if _, err := b.Record(ctx, 400); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}

	changed, err := a.Reload(ctx)
	if err != nil || !changed {
		t.Fatalf("Reload() = %v, %v; want true, nil", changed, err)
	}
	if a.TodaysTotal() != 400 {
		t.Errorf("TodaysTotal() after reload = %d, want 400", a.TodaysTotal())
	}

	changed, err = b.Reload(ctx)
	if err != nil || changed {
		t.Errorf("Reload() of own write = %v, %v; want false, nil", changed, err)
	}
}

func TestReload_ConcurrentRecord(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			if _, err := svc.Reload(ctx); err != nil {
				t.Errorf("Reload() failed: %v", err)
				return
			}
		}
	}()
	for i := 0; i < 50; i++ {
		if _, err := svc.Record(ctx, 10); err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}
	<-done

	if got := svc.Count(); got != 50 {
		t.Errorf("Count() = %d, want 50 after reloads of own writes", got)
	}
}

func TestExport(t *testing.T) {
	svc, store, _ := newTestService(t)
	if _, err := svc.Record(context.Background(), 250); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}

	data, err := svc.Export()
	if err != nil {
		t.Fatalf("Export() failed: %v", err)
	}
	if data != store.values[db.KeyDrinkHistory] {
		t.Errorf("Export() = %s, want persisted %s", data, store.values[db.KeyDrinkHistory])
	}
}

func TestEvents(t *testing.T) {
	svc, _, _ := newTestService(t)

	if ev := <-svc.Events(); ev.Type != EventLoaded {
		t.Fatalf("first event = %v, want EventLoaded", ev.Type)
	}

	if _, err := svc.Record(context.Background(), 250); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	ev := <-svc.Events()
	if ev.Type != EventRecorded || ev.Drink == nil || ev.Drink.AmountMl != 250 {
		t.Errorf("event = %+v, want EventRecorded for 250ml", ev)
	}
}

func TestEvents_DropOldest(t *testing.T) {
	svc := New(newMemStore(), &clock.Fixed{T: noon}, 0)
	for i := 0; i < 150; i++ {
		svc.sendEvent(Event{Type: EventReloaded})
	}
	if len(svc.Events()) != 100 {
		t.Errorf("expected 100 buffered events, got %d", len(svc.Events()))
	}
}
