package components

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/hydration-tui/internal/models"
)

func TestSpinner(t *testing.T) {
	s := NewSpinner("Loading drinks...")

	if !strings.Contains(s.View(), "Loading drinks...") {
		t.Errorf("View() = %q, want the caption", s.View())
	}
	if !strings.HasPrefix(s.View(), Droplet.Frames[0]) {
		t.Errorf("View() = %q, want the first droplet frame", s.View())
	}
	if s.Init() == nil {
		t.Error("Init should return command")
	}

	next, cmd := s.Update(s.spinner.Tick())
	if cmd == nil {
		t.Error("Update should return command for tick")
	}
	if !strings.HasPrefix(next.View(), Droplet.Frames[1]) {
		t.Errorf("View() after a tick = %q, want the second frame", next.View())
	}
}

func TestRenderSpinnerCentered(t *testing.T) {
	s := NewSpinner("Loading...")
	view := RenderSpinnerCentered(s, 20, 5)
	if !strings.Contains(view, "Loading...") {
		t.Error("RenderSpinnerCentered missing label")
	}
}

func TestRenderLineChart(t *testing.T) {
	if s := RenderLineChart([]float64{0.25, 0.5, 1}, 20, 5, "Test"); s == "" {
		t.Error("RenderLineChart returned empty")
	}
	if s := RenderLineChart(nil, 20, 5, ""); !strings.Contains(s, "No data") {
		t.Errorf("RenderLineChart(nil) = %q, want placeholder", s)
	}
}

func TestRenderBucketChart(t *testing.T) {
	buckets := []models.Bucket{
		{Label: "Apr 26", TotalMl: 500, Liters: 0.5},
		{Label: "Apr 27", TotalMl: 0, Liters: 0},
		{Label: "Apr 28", TotalMl: 1500, Liters: 1.5},
	}
	s := RenderBucketChart(buckets, 40, 5, "Liters")
	if !strings.Contains(s, "Apr 26") || !strings.Contains(s, "Apr 28") {
		t.Errorf("RenderBucketChart() missing axis labels:\n%s", s)
	}

	empty := []models.Bucket{{Label: "Apr 26"}, {Label: "Apr 27"}}
	if s := RenderBucketChart(empty, 40, 5, ""); !strings.Contains(s, "No drinks") {
		t.Errorf("RenderBucketChart(empty) = %q, want placeholder", s)
	}
}

func TestAxisLabels(t *testing.T) {
	buckets := []models.Bucket{{Label: "a"}, {Label: "b"}, {Label: "c"}}
	got := axisLabels(buckets, 3)
	if !strings.Contains(got, "a .. c") {
		t.Errorf("axisLabels() narrow = %q, want compact form", got)
	}
	if got := axisLabels(buckets[:1], 20); !strings.Contains(got, "a") {
		t.Errorf("axisLabels() single = %q", got)
	}
}

func TestRenderBucketBars(t *testing.T) {
	buckets := []models.Bucket{
		{Label: "May 1", TotalMl: 500, Liters: 0.5},
		{Label: "May 2", TotalMl: 1000, Liters: 1},
	}
	lines := strings.Split(RenderBucketBars(buckets, 30), "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderBucketBars() lines = %d, want 2", len(lines))
	}
	if want := "May 2 │" + strings.Repeat("█", 15) + " 1.00 L"; lines[1] != want {
		t.Errorf("fullest bar = %q, want %q", lines[1], want)
	}
	if !strings.HasSuffix(lines[0], " 0.50 L") || strings.Count(lines[0], "█") != 7 {
		t.Errorf("half bar = %q", lines[0])
	}
	if RenderBucketBars(nil, 20) != "" {
		t.Error("RenderBucketBars(nil) should be empty")
	}
}

func TestRenderSparkline(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		width  int
		want   string
	}{
		{"empty", nil, 10, ""},
		{"zero width", []float64{1}, 0, ""},
		{"rising", []float64{0, 1}, 10, "▁█"},
		{"sampled", []float64{0, 0, 1, 1}, 2, "▁█"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderSparkline(tt.values, tt.width); got != tt.want {
				t.Errorf("RenderSparkline() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGoalPercent(t *testing.T) {
	tests := []struct {
		current, goal int
		want          float64
	}{
		{1500, 2000, 75},
		{2500, 2000, 100},
		{500, 0, 0},
		{0, 2000, 0},
	}
	for _, tt := range tests {
		if got := GoalPercent(tt.current, tt.goal); got != tt.want {
			t.Errorf("GoalPercent(%d, %d) = %v, want %v", tt.current, tt.goal, got, tt.want)
		}
	}
}

func TestFormatLiters(t *testing.T) {
	if got := FormatLiters(1500); got != "1.50 L" {
		t.Errorf("FormatLiters(1500) = %q, want %q", got, "1.50 L")
	}
}

func TestGoalBar_Animation(t *testing.T) {
	bar := NewGoalBar()
	if bar.Init() != nil {
		t.Error("Init should return nil")
	}

	if cmd := bar.SetPercent(50); cmd == nil {
		t.Fatal("SetPercent should start the animation")
	}
	if bar.Resume() == nil {
		t.Error("Resume should restart an unfinished animation")
	}
	if bar.Target() != 50 {
		t.Errorf("Target() = %v, want 50", bar.Target())
	}

	for i := 0; i < 200 && bar.isAnimating; i++ {
		bar, _ = bar.Update(AnimationTickMsg{})
	}
	if bar.Percent() != 50 {
		t.Errorf("Percent() = %v, want 50", bar.Percent())
	}
	if bar.isAnimating {
		t.Error("animation should stop at target")
	}
	if bar.Resume() != nil {
		t.Error("Resume should be a no-op once the animation finished")
	}

	if _, cmd := bar.Update(tea.KeyMsg{}); cmd != nil {
		t.Error("non-tick message should not return a command")
	}
}

func TestGoalBar_View(t *testing.T) {
	bar := NewGoalBarWithWidth(20)
	view := bar.View(1500, 2000, 60)
	if !strings.Contains(view, "75%") {
		t.Errorf("View() missing percentage:\n%s", view)
	}
	if !strings.Contains(view, "1.50 L / 2.00 L") {
		t.Errorf("View() missing volumes:\n%s", view)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr error
	}{
		{"250", 250, nil},
		{" 330 ", 330, nil},
		{"249.6", 250, nil},
		{"0", 0, ErrNotPositive},
		{"-5", 0, ErrNotPositive},
		{"abc", 0, ErrNotANumber},
		{"", 0, ErrNotANumber},
		{"NaN", 0, ErrNotANumber},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.in)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("ParseAmount(%q) error = %v, want %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseAmount(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseMeasurement(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr error
	}{
		{"70", 70, nil},
		{"70,5", 70.5, nil},
		{"", 0, nil},
		{"0", 0, nil},
		{"-1", 0, ErrNegative},
		{"heavy", 0, ErrNotANumber},
	}
	for _, tt := range tests {
		got, err := ParseMeasurement(tt.in)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("ParseMeasurement(%q) error = %v, want %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseMeasurement(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPrompt(t *testing.T) {
	p := NewPrompt("Amount (ml)", "250")
	if p.Label() != "Amount (ml)" {
		t.Errorf("Label() = %q", p.Label())
	}

	p.Focus()
	if !p.Focused() {
		t.Error("Focused() = false after Focus")
	}

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("42")})
	if p.Value() != "42" {
		t.Errorf("Value() = %q, want 42", p.Value())
	}

	p.SetError(ErrNotANumber)
	if !strings.Contains(p.View(), ErrNotANumber.Error()) {
		t.Error("View() should show the error")
	}
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if p.Err() != nil {
		t.Error("editing should clear the error")
	}

	p.SetValue("500")
	p.Reset()
	if p.Value() != "" {
		t.Errorf("Value() after Reset = %q", p.Value())
	}
	p.Blur()
	if p.Focused() {
		t.Error("Focused() = true after Blur")
	}
}
