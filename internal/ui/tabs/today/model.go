// Package today provides the tab that tracks today's intake against the goal.
package today

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/hydration-tui/internal/app"
	"github.com/j-veylop/hydration-tui/internal/clock"
	"github.com/j-veylop/hydration-tui/internal/ui/components"
)

// keyMap defines the key bindings specific to the today tab.
type keyMap struct {
	Prev       key.Binding
	Next       key.Binding
	Add        key.Binding
	Custom     key.Binding
	TowardGoal key.Binding
	Cancel     key.Binding
}

// defaultKeyMap returns the default key bindings for the today tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "smaller amount"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "larger amount"),
		),
		Add: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "add selected"),
		),
		Custom: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "custom amount"),
		),
		TowardGoal: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "add toward goal"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

type promptMode int

const (
	promptNone promptMode = iota
	promptCustom
	promptTowardGoal
)

// Model represents the today tab state.
type Model struct {
	state    *app.State
	clock    clock.Clock
	spinner  components.LoadingSpinner
	bar      components.GoalBar
	prompt   components.Prompt
	mode     promptMode
	keys     keyMap
	viewport viewport.Model
	amounts  []int
	selected int
	width    int
	height   int
}

// New creates a new today model. quickAmounts are the one-key drink sizes.
func New(state *app.State, clk clock.Clock, quickAmounts []int) *Model {
	amounts := make([]int, 0, len(quickAmounts))
	for _, a := range quickAmounts {
		if a > 0 {
			amounts = append(amounts, a)
		}
	}
	selected := 0
	for i, a := range amounts {
		if a == 250 {
			selected = i
		}
	}

	return &Model{
		state:    state,
		clock:    clk,
		spinner:  components.NewSpinner("Loading drinks..."),
		bar:      components.NewGoalBar(),
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
		amounts:  amounts,
		selected: selected,
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Init()
}

// CapturingInput reports whether an amount prompt is open.
func (m *Model) CapturingInput() bool {
	return m.mode != promptNone
}

// Selected returns the highlighted quick amount in milliliters.
func (m *Model) Selected() int {
	if len(m.amounts) == 0 {
		return 0
	}
	return m.amounts[m.selected]
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case components.AnimationTickMsg:
		var cmd tea.Cmd
		m.bar, cmd = m.bar.Update(msg)
		cmds = append(cmds, cmd)

	case app.LedgerUpdatedMsg, app.ProfileUpdatedMsg:
		cmds = append(cmds, m.syncGoal())

	case app.TabSwitchMsg:
		if msg.Tab == app.TabToday {
			cmds = append(cmds, m.syncGoal(), m.bar.Resume())
		}

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKeyMsg(msg))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// syncGoal points the goal bar at the current progress.
func (m *Model) syncGoal() tea.Cmd {
	return m.bar.SetPercent(components.GoalPercent(m.state.GetCurrentMl(), m.state.GetGoalMl()))
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	if m.mode != promptNone {
		return m.handlePromptKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Prev):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Next):
		if m.selected < len(m.amounts)-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Add):
		if amount := m.Selected(); amount > 0 {
			return addDrink(amount, false)
		}
	case key.Matches(msg, m.keys.Custom):
		return m.openPrompt(promptCustom)
	case key.Matches(msg, m.keys.TowardGoal):
		return m.openPrompt(promptTowardGoal)
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.closePrompt()
		return nil
	case tea.KeyEnter:
		amount, err := components.ParseAmount(m.prompt.Value())
		if err != nil {
			m.prompt.SetError(err)
			return nil
		}
		towardGoal := m.mode == promptTowardGoal
		m.closePrompt()
		return addDrink(amount, towardGoal)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return cmd
}

func (m *Model) openPrompt(mode promptMode) tea.Cmd {
	label := "Amount (ml)"
	if mode == promptTowardGoal {
		label = "Toward goal (ml)"
	}
	m.mode = mode
	m.prompt = components.NewPrompt(label, "250")
	return m.prompt.Focus()
}

func (m *Model) closePrompt() {
	m.mode = promptNone
	m.prompt.Blur()
	m.prompt.Reset()
}

func addDrink(amountMl int, towardGoal bool) tea.Cmd {
	return func() tea.Msg {
		return app.AddDrinkMsg{AmountMl: amountMl, TowardGoal: towardGoal}
	}
}

// SetSize sets the available size for the tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.Prev,
		m.keys.Next,
		m.keys.Add,
		m.keys.Custom,
		m.keys.TowardGoal,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Prev, m.keys.Next, m.keys.Add},
		{m.keys.Custom, m.keys.TowardGoal, m.keys.Cancel},
	}
}
