// Package history provides the history tab for charts and consumption statistics.
package history

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/hydration-tui/internal/app"
	"github.com/j-veylop/hydration-tui/internal/models"
	"github.com/j-veylop/hydration-tui/internal/services"
)

// keyMap defines the key bindings specific to the history tab.
type keyMap struct {
	ToggleWindow key.Binding
	Up           key.Binding
	Down         key.Binding
}

// defaultKeyMap returns the default key bindings for the history tab.
func defaultKeyMap() keyMap {
	return keyMap{
		ToggleWindow: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "day/week/month"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
	}
}

// Model represents the history tab state.
type Model struct {
	state    *app.State
	services *services.Manager
	width    int
	height   int
	keys     keyMap
	viewport viewport.Model

	// Current view state
	window      models.ReportingWindow
	buckets     []models.Bucket
	stats       models.Statistics
	loaded      bool
	loading     bool
	lastRefresh time.Time
}

// New creates a new history model showing the last week.
func New(state *app.State, svc *services.Manager) *Model {
	return &Model{
		state:    state,
		services: svc,
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
		window:   models.WindowWeek,
	}
}

// Init initializes the history tab.
func (m *Model) Init() tea.Cmd {
	return m.loadReport()
}

// Window returns the selected reporting window.
func (m *Model) Window() models.ReportingWindow {
	return m.window
}

func (m *Model) loadReport() tea.Cmd {
	m.loading = true
	return app.LoadReportCmd(m.services, m.window)
}

// Update handles messages for the history tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case app.ReportLoadedMsg:
		// A report for a window the user already toggled away from is stale.
		if msg.Window == m.window {
			m.buckets = msg.Buckets
			m.stats = msg.Stats
			m.loaded = true
			m.loading = false
			m.lastRefresh = time.Now()
		}

	case app.LedgerUpdatedMsg, app.ProfileUpdatedMsg:
		cmds = append(cmds, m.loadReport())

	case app.TabSwitchMsg:
		if msg.Tab == app.TabHistory {
			cmds = append(cmds, m.loadReport())
		}

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd
	switch {
	case key.Matches(msg, m.keys.ToggleWindow):
		m.window = m.window.Next()
		m.viewport.GotoTop()
		cmds = append(cmds, m.loadReport())

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// SetSize sets the available size for the history tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.ToggleWindow,
		m.keys.Up,
		m.keys.Down,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.ToggleWindow},
		{m.keys.Up, m.keys.Down},
	}
}
