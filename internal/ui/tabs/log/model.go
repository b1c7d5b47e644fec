// Package log provides the drink log tab: every recorded drink, newest
// first, with deletion of a single entry.
package log

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/hydration-tui/internal/app"
	"github.com/j-veylop/hydration-tui/internal/clock"
	"github.com/j-veylop/hydration-tui/internal/models"
	"github.com/j-veylop/hydration-tui/internal/ui/components"
	"github.com/j-veylop/hydration-tui/internal/ui/styles"
)

// keyMap defines the key bindings specific to the log tab.
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Delete  key.Binding
	Confirm key.Binding
	Escape  key.Binding
}

// defaultKeyMap returns the default key bindings for the log tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous drink"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next drink"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		Escape: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n/esc", "cancel"),
		),
	}
}

// Model represents the log tab state.
type Model struct {
	state         *app.State
	clock         clock.Clock
	table         table.Model
	spinner       components.LoadingSpinner
	keys          keyMap
	width         int
	height        int
	confirmDelete bool
	deleteIndex   int
	deleteDrink   models.DrinkEvent
}

// New creates a new log model.
func New(state *app.State, clk clock.Clock) *Model {
	t := table.New(
		table.WithColumns(columns(0)),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Subtle).
		BorderBottom(true).
		Bold(true).
		Foreground(styles.Primary)
	s.Selected = s.Selected.
		Foreground(styles.TextPrimary).
		Background(styles.BgAccent).
		Bold(true)
	t.SetStyles(s)

	return &Model{
		state:   state,
		clock:   clk,
		table:   t,
		spinner: components.NewSpinner("Loading drinks..."),
		keys:    defaultKeyMap(),
	}
}

func columns(width int) []table.Column {
	whenWidth := min(max(width-50, 20), 30)
	return []table.Column{
		{Title: "#", Width: 5},
		{Title: "When", Width: whenWidth},
		{Title: "Amount", Width: 10},
		{Title: "Day total", Width: 10},
	}
}

// Init initializes the log tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// CapturingInput reports whether a delete confirmation is open.
func (m *Model) CapturingInput() bool {
	return m.confirmDelete
}

// Cursor returns the index of the selected drink, 0 being the newest.
func (m *Model) Cursor() int {
	return m.table.Cursor()
}

// Update handles messages for the log tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	if m.confirmDelete {
		return m.updateDeleteConfirm(msg)
	}

	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Delete):
			drinks := m.state.GetDrinks()
			if idx := m.table.Cursor(); idx >= 0 && idx < len(drinks) {
				m.confirmDelete = true
				m.deleteIndex = idx
				m.deleteDrink = drinks[idx]
			}

		default:
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			cmds = append(cmds, cmd)
		}

	case app.LedgerUpdatedMsg:
		m.updateTableData()

	case app.TabSwitchMsg:
		if msg.Tab == app.TabLog {
			m.updateTableData()
		}
	}

	return m, tea.Batch(cmds...)
}

// updateDeleteConfirm handles the delete confirmation.
func (m *Model) updateDeleteConfirm(msg tea.Msg) (app.Tab, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		m.confirmDelete = false
		index := m.deleteIndex
		return m, func() tea.Msg {
			return app.DeleteDrinkMsg{Index: index}
		}
	case key.Matches(keyMsg, m.keys.Escape):
		m.confirmDelete = false
	}
	return m, nil
}

// updateTableData rebuilds the rows from the shared drink history.
func (m *Model) updateTableData() {
	drinks := m.state.GetDrinks()
	loc := m.clock.Now().Location()

	// Running totals per calendar day, accumulated oldest first.
	dayTotals := make([]int, len(drinks))
	for i := len(drinks) - 1; i >= 0; i-- {
		dayTotals[i] = drinks[i].AmountMl
		if i+1 < len(drinks) && clock.SameDay(drinks[i+1].Timestamp, drinks[i].Timestamp.In(loc)) {
			dayTotals[i] += dayTotals[i+1]
		}
	}

	rows := make([]table.Row, 0, len(drinks))
	for i, d := range drinks {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			d.Timestamp.In(loc).Format("Mon Jan 2 15:04"),
			fmt.Sprintf("%d ml", d.AmountMl),
			components.FormatLiters(dayTotals[i]),
		})
	}

	m.table.SetRows(rows)
	m.table.SetCursor(min(m.table.Cursor(), max(len(rows)-1, 0)))
}

// SetSize sets the available size for the log tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(max(height-10, 3))
	m.table.SetColumns(columns(width))
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	if m.confirmDelete {
		return []key.Binding{m.keys.Confirm, m.keys.Escape}
	}
	return []key.Binding{
		m.keys.Up,
		m.keys.Down,
		m.keys.Delete,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Up, m.keys.Down},
		{m.keys.Delete, m.keys.Confirm, m.keys.Escape},
	}
}
