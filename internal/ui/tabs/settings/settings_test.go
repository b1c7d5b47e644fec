package settings

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/hydration-tui/internal/app"
	"github.com/j-veylop/hydration-tui/internal/config"
	"github.com/j-veylop/hydration-tui/internal/models"
	"github.com/j-veylop/hydration-tui/internal/services"
	"github.com/j-veylop/hydration-tui/internal/ui/components"
)

func newModel(ov services.Overview) *Model {
	state := app.NewState()
	state.SetOverview(ov)
	m := New(state, &config.Config{
		DatabasePath:     "/tmp/hydration.db",
		LogPath:          "/tmp/hydration.log",
		MaxDailyMl:       7500,
		RemindersEnabled: false,
		Location:         time.UTC,
	})
	m.SetSize(100, 120)
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNew(t *testing.T) {
	m := New(app.NewState(), nil)
	if m.Init() != nil {
		t.Error("Init() should return nil")
	}
	if m.CapturingInput() {
		t.Error("CapturingInput() should be false initially")
	}
}

func TestModel_OpenForm(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.Msg
	}{
		{"EditKey", runes("e")},
		{"Prompt", app.OpenProfilePromptMsg{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel(services.Overview{})
			m.Update(tt.msg)
			if !m.Editing() || !m.CapturingInput() {
				t.Fatal("form should be open")
			}
			if m.focusedField != fieldWeight {
				t.Errorf("focusedField = %v, want weight", m.focusedField)
			}
			if !strings.Contains(m.View(), "Edit Profile") {
				t.Error("View should show the form")
			}
		})
	}
}

func TestModel_Submit(t *testing.T) {
	m := newModel(services.Overview{})
	m.Update(runes("e"))

	m.Update(runes("70"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(runes("60"))
	if !strings.Contains(m.View(), "3.16 L") {
		t.Error("View should preview the ideal intake")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focusedField != fieldSubmit {
		t.Fatalf("focusedField = %v, want submit", m.focusedField)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("submit should return a command")
	}
	msg, ok := cmd().(app.SetProfileMsg)
	if !ok {
		t.Fatalf("expected SetProfileMsg, got %T", cmd())
	}
	want := app.SetProfileMsg{WeightKg: 70, ActivityMinutes: 60, GoalMl: 0}
	if msg != want {
		t.Errorf("SetProfileMsg = %+v, want %+v", msg, want)
	}
	if m.Editing() {
		t.Error("form should close after submit")
	}
}

func TestModel_SubmitInvalid(t *testing.T) {
	m := newModel(services.Overview{})
	m.Update(runes("e"))
	m.weight.SetValue("-5")
	m.focus(fieldSubmit)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Editing() {
		t.Error("form should stay open")
	}
	if m.focusedField != fieldWeight {
		t.Errorf("focusedField = %v, want weight", m.focusedField)
	}
	if !errors.Is(m.weight.Err(), components.ErrNegative) {
		t.Errorf("weight error = %v, want ErrNegative", m.weight.Err())
	}
}

func TestModel_Cancel(t *testing.T) {
	m := newModel(services.Overview{})
	m.Update(runes("e"))

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Editing() {
		t.Error("esc should close the form")
	}

	m.Update(runes("e"))
	m.focus(fieldCancel)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Editing() {
		t.Error("enter on cancel should close the form")
	}
}

func TestModel_FieldCycle(t *testing.T) {
	m := newModel(services.Overview{})
	m.Update(runes("e"))

	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focusedField != fieldCancel {
		t.Errorf("focusedField = %v, want cancel", m.focusedField)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focusedField != fieldWeight {
		t.Errorf("focusedField = %v, want weight", m.focusedField)
	}
}

func TestModel_Prefill(t *testing.T) {
	m := newModel(services.Overview{
		Profile: models.HydrationProfile{
			WeightKg:           72.5,
			ActivityMinutes:    45,
			HydrationGoalMl:    3000,
			IdealWaterIntakeMl: 3070,
		},
		ProfileFound: true,
	})
	m.Update(runes("e"))

	if m.weight.Value() != "72.5" {
		t.Errorf("weight = %q, want %q", m.weight.Value(), "72.5")
	}
	if m.activity.Value() != "45" {
		t.Errorf("activity = %q, want %q", m.activity.Value(), "45")
	}
	if m.goal.Value() != "3000" {
		t.Errorf("goal = %q, want %q", m.goal.Value(), "3000")
	}
}

func TestModel_ToggleTheme(t *testing.T) {
	m := newModel(services.Overview{})
	_, cmd := m.Update(runes("t"))
	if cmd == nil {
		t.Fatal("'t' should return a command")
	}
	if _, ok := cmd().(app.ToggleThemeMsg); !ok {
		t.Errorf("expected ToggleThemeMsg, got %T", cmd())
	}

	// Typing into the form does not toggle the theme.
	m.Update(runes("e"))
	m.Update(runes("t"))
	if m.weight.Value() != "t" {
		t.Errorf("weight = %q, want the typed rune", m.weight.Value())
	}
}

func TestModel_View(t *testing.T) {
	m := newModel(services.Overview{})
	if !strings.Contains(m.View(), "No profile saved yet") {
		t.Error("View should show the empty profile")
	}
	if !strings.Contains(m.View(), "Light") {
		t.Error("View should show the light theme")
	}

	m = newModel(services.Overview{
		Profile:      models.HydrationProfile{WeightKg: 70, HydrationGoalMl: 2450, IdealWaterIntakeMl: 2450},
		ProfileFound: true,
		DarkTheme:    true,
	})
	view := m.View()
	for _, want := range []string{"70 kg", "2.45 L", "Dark"} {
		if !strings.Contains(view, want) {
			t.Errorf("View missing %q", want)
		}
	}

	m.Update(app.ProfileSavedMsg{Error: errors.New("disk full")})
	if !strings.Contains(m.View(), "disk full") {
		t.Error("View should show the save error")
	}
}

func TestModel_ConfigAndAbout(t *testing.T) {
	m := newModel(services.Overview{Drinks: []models.DrinkEvent{{AmountMl: 250}}})
	view := m.View()
	for _, want := range []string{"/tmp/hydration.db", "7.5 L", "off", "UTC", "About Hydration TUI", "Drinks logged"} {
		if !strings.Contains(view, want) {
			t.Errorf("View missing %q", want)
		}
	}

	m = New(app.NewState(), nil)
	m.SetSize(100, 120)
	if !strings.Contains(m.View(), "Configuration not loaded") {
		t.Error("View should note the missing configuration")
	}
}

func TestModel_Scroll(t *testing.T) {
	m := newModel(services.Overview{})
	m.SetSize(100, 10)
	m.View()
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.viewport.YOffset != 1 {
		t.Errorf("YOffset = %d, want 1", m.viewport.YOffset)
	}
}

func TestModel_Help(t *testing.T) {
	m := New(app.NewState(), nil)
	if len(m.ShortHelp()) != 2 {
		t.Errorf("ShortHelp() has %d bindings, want 2", len(m.ShortHelp()))
	}
	m.Update(runes("e"))
	if len(m.ShortHelp()) != 3 {
		t.Errorf("ShortHelp() while editing has %d bindings, want 3", len(m.ShortHelp()))
	}
	if len(m.FullHelp()) == 0 {
		t.Error("FullHelp empty")
	}
}
