package clock

import (
	"testing"
	"time"
)

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	in := time.Date(2026, 3, 14, 17, 45, 12, 500, loc)

	got := StartOfDay(in)
	want := time.Date(2026, 3, 14, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("StartOfDay() = %v, want %v", got, want)
	}
}

func TestEndOfDay(t *testing.T) {
	in := time.Date(2026, 3, 14, 1, 0, 0, 0, time.UTC)

	got := EndOfDay(in)
	want := time.Date(2026, 3, 14, 23, 59, 59, 999_000_000, time.UTC)
	if !got.Equal(want) {
		t.Errorf("EndOfDay() = %v, want %v", got, want)
	}
}

func TestSameDay(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	ref := time.Date(2026, 3, 14, 12, 0, 0, 0, loc)

	tests := []struct {
		name string
		in   time.Time
		want bool
	}{
		{"SameLocalDay", time.Date(2026, 3, 14, 0, 0, 0, 0, loc), true},
		{"UTCNextDayButLocalSame", time.Date(2026, 3, 15, 3, 0, 0, 0, time.UTC), true},
		{"PreviousDay", time.Date(2026, 3, 13, 23, 59, 59, 0, loc), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameDay(tt.in, ref); got != tt.want {
				t.Errorf("SameDay() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFixed(t *testing.T) {
	start := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	c := &Fixed{T: start}

	if !c.Now().Equal(start) {
		t.Errorf("Now() = %v, want %v", c.Now(), start)
	}
	c.Advance(90 * time.Minute)
	if want := start.Add(90 * time.Minute); !c.Now().Equal(want) {
		t.Errorf("Now() after Advance = %v, want %v", c.Now(), want)
	}
}

func TestSystem_Location(t *testing.T) {
	loc := time.FixedZone("Test", 3600)
	if got := (System{Location: loc}).Now().Location(); got != loc {
		t.Errorf("System.Now().Location() = %v, want %v", got, loc)
	}
}
