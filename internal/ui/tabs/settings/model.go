// Package settings provides the profile and theme tab.
package settings

import (
	"math"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/hydration-tui/internal/app"
	"github.com/j-veylop/hydration-tui/internal/config"
	"github.com/j-veylop/hydration-tui/internal/services/profile"
	"github.com/j-veylop/hydration-tui/internal/ui/components"
)

type formField int

const (
	fieldWeight formField = iota
	fieldActivity
	fieldGoal
	fieldSubmit
	fieldCancel
	fieldCount
)

// keyMap defines the key bindings specific to the settings tab.
type keyMap struct {
	Edit        key.Binding
	ToggleTheme key.Binding
	NextField   key.Binding
	PrevField   key.Binding
	Submit      key.Binding
	Cancel      key.Binding
}

// defaultKeyMap returns the default key bindings for the settings tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit profile"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle theme"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "next/submit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// Model represents the settings tab state.
type Model struct {
	state    *app.State
	config   *config.Config
	keys     keyMap
	viewport viewport.Model
	width    int
	height   int

	editing      bool
	focusedField formField
	weight       components.Prompt
	activity     components.Prompt
	goal         components.Prompt
	saveErr      error
}

// New creates a new settings model. cfg may be nil.
func New(state *app.State, cfg *config.Config) *Model {
	return &Model{
		state:    state,
		config:   cfg,
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
		weight:   components.NewPrompt("Weight (kg)", "70"),
		activity: components.NewPrompt("Activity (min/day)", "30"),
		goal:     components.NewPrompt("Daily goal (ml)", "ideal"),
	}
}

// Init initializes the settings tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// CapturingInput reports whether the profile form is open.
func (m *Model) CapturingInput() bool {
	return m.editing
}

// Editing reports whether the profile form is open.
func (m *Model) Editing() bool {
	return m.editing
}

// Update handles messages for the settings tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case app.OpenProfilePromptMsg:
		return m, m.openForm()

	case app.ProfileSavedMsg:
		m.saveErr = msg.Error

	case tea.KeyMsg:
		if m.editing {
			return m.updateForm(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Edit):
			return m, m.openForm()
		case key.Matches(msg, m.keys.ToggleTheme):
			return m, func() tea.Msg { return app.ToggleThemeMsg{} }
		default:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// openForm opens the profile form pre-filled with the saved profile.
func (m *Model) openForm() tea.Cmd {
	m.editing = true
	m.saveErr = nil
	m.weight.Reset()
	m.activity.Reset()
	m.goal.Reset()

	if p := m.state.GetProfile(); p.IsSet() {
		m.weight.SetValue(formatNumber(p.WeightKg))
		m.activity.SetValue(formatNumber(p.ActivityMinutes))
		if p.HydrationGoalMl != p.IdealWaterIntakeMl {
			m.goal.SetValue(strconv.Itoa(p.HydrationGoalMl))
		}
	}
	return m.focus(fieldWeight)
}

func (m *Model) closeForm() {
	m.editing = false
	m.weight.Blur()
	m.activity.Blur()
	m.goal.Blur()
}

// focus moves keyboard focus to field.
func (m *Model) focus(field formField) tea.Cmd {
	m.focusedField = field
	m.weight.Blur()
	m.activity.Blur()
	m.goal.Blur()

	switch field {
	case fieldWeight:
		return m.weight.Focus()
	case fieldActivity:
		return m.activity.Focus()
	case fieldGoal:
		return m.goal.Focus()
	}
	return nil
}

func (m *Model) updateForm(msg tea.KeyMsg) (app.Tab, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeForm()
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		return m, m.focus((m.focusedField + 1) % fieldCount)

	case key.Matches(msg, m.keys.PrevField):
		return m, m.focus((m.focusedField + fieldCount - 1) % fieldCount)

	case key.Matches(msg, m.keys.Submit):
		switch m.focusedField {
		case fieldCancel:
			m.closeForm()
			return m, nil
		case fieldSubmit:
			return m, m.submit()
		default:
			return m, m.focus(m.focusedField + 1)
		}
	}

	var cmd tea.Cmd
	switch m.focusedField {
	case fieldWeight:
		m.weight, cmd = m.weight.Update(msg)
	case fieldActivity:
		m.activity, cmd = m.activity.Update(msg)
	case fieldGoal:
		m.goal, cmd = m.goal.Update(msg)
	}
	return m, cmd
}

// submit validates every field and emits the profile update. The form
// stays open on the first invalid field.
func (m *Model) submit() tea.Cmd {
	weight, err := components.ParseMeasurement(m.weight.Value())
	if err != nil {
		m.weight.SetError(err)
		return m.focus(fieldWeight)
	}
	activity, err := components.ParseMeasurement(m.activity.Value())
	if err != nil {
		m.activity.SetError(err)
		return m.focus(fieldActivity)
	}
	goal, err := components.ParseMeasurement(m.goal.Value())
	if err != nil {
		m.goal.SetError(err)
		return m.focus(fieldGoal)
	}

	m.closeForm()
	msg := app.SetProfileMsg{
		WeightKg:        weight,
		ActivityMinutes: activity,
		GoalMl:          int(math.Round(goal)),
	}
	return func() tea.Msg { return msg }
}

// previewIdeal returns the ideal intake for the values typed so far.
func (m *Model) previewIdeal() int {
	weight, err := components.ParseMeasurement(m.weight.Value())
	if err != nil {
		return 0
	}
	activity, err := components.ParseMeasurement(m.activity.Value())
	if err != nil {
		return 0
	}
	return profile.IdealIntake(weight, activity)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// SetSize sets the available size for the settings tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	if m.editing {
		return []key.Binding{m.keys.NextField, m.keys.Submit, m.keys.Cancel}
	}
	return []key.Binding{m.keys.Edit, m.keys.ToggleTheme}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Edit, m.keys.ToggleTheme},
		{m.keys.NextField, m.keys.PrevField, m.keys.Submit, m.keys.Cancel},
	}
}
