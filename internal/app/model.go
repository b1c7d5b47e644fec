// Package app implements the main Bubble Tea application with tab-based navigation.
package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/hydration-tui/internal/services"
	"github.com/j-veylop/hydration-tui/internal/ui/components"
	"github.com/j-veylop/hydration-tui/internal/ui/styles"
)

// TabID represents the identifier for a tab in the application.
type TabID int

const (
	// TabToday is the ID for today's progress tab.
	TabToday TabID = iota
	// TabHistory is the ID for the charts and statistics tab.
	TabHistory
	// TabLog is the ID for the drink log tab.
	TabLog
	// TabSettings is the ID for the profile and theme tab.
	TabSettings
)

// String returns the string representation of the TabID.
func (t TabID) String() string {
	switch t {
	case TabToday:
		return "Today"
	case TabHistory:
		return "History"
	case TabLog:
		return "Log"
	case TabSettings:
		return "Settings"
	default:
		return "Unknown"
	}
}

// Tab defines the interface that all tabs must implement.
type Tab interface {
	// Init initializes the tab and returns any initial commands.
	Init() tea.Cmd

	// Update handles messages and returns the updated tab and any commands.
	Update(msg tea.Msg) (Tab, tea.Cmd)

	// View renders the tab content.
	View() string

	// SetSize sets the available size for the tab.
	SetSize(width, height int)

	// ShortHelp returns key bindings for the short help view.
	ShortHelp() []key.Binding

	// FullHelp returns key bindings for the full help view.
	FullHelp() [][]key.Binding
}

// InputCapturer is implemented by tabs that can own keyboard input, such as
// an open text prompt. While capturing, global shortcuts other than ctrl+c
// are passed to the tab.
type InputCapturer interface {
	CapturingInput() bool
}

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	Tab1    key.Binding
	Tab2    key.Binding
	Tab3    key.Binding
	Tab4    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
	Escape  key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	km := KeyMap{}
	km = setTabKeys(km)
	km = setActionKeys(km)
	return km
}

func setTabKeys(k KeyMap) KeyMap {
	k.Tab1 = key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "today"))
	k.Tab2 = key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "history"))
	k.Tab3 = key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "log"))
	k.Tab4 = key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "settings"))
	k.NextTab = key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab"))
	k.PrevTab = key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab"))
	return k
}

func setActionKeys(k KeyMap) KeyMap {
	k.Refresh = key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "refresh"))
	k.Help = key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help"))
	k.Quit = key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit"))
	k.Escape = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close"))
	return k
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Refresh, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab1, k.Tab2, k.Tab3, k.Tab4},
		{k.NextTab, k.PrevTab},
		{k.Refresh, k.Help, k.Quit},
	}
}

// Styles holds the lipgloss styles of the application frame: tab bar,
// toasts and help panel. Tab content is styled by the tabs themselves.
type Styles struct {
	TabBar, ActiveTab, InactiveTab lipgloss.Style

	NotificationSuccess, NotificationError lipgloss.Style
	NotificationWarning, NotificationInfo  lipgloss.Style

	Content, Toast           lipgloss.Style
	Title, Subtle, Highlight lipgloss.Style
}

// DefaultStyles returns the frame styles built on the shared palette.
func DefaultStyles() Styles {
	tab := lipgloss.NewStyle().Padding(0, 2)
	toast := lipgloss.NewStyle().Padding(0, 1)

	return Styles{
		TabBar: lipgloss.NewStyle().Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(styles.Subtle),
		ActiveTab:   tab.Bold(true).Foreground(styles.Primary),
		InactiveTab: tab.Foreground(styles.TextMuted),

		NotificationSuccess: toast.Foreground(styles.Success),
		NotificationError:   toast.Foreground(styles.Error).Bold(true),
		NotificationWarning: toast.Foreground(styles.Warning),
		NotificationInfo:    toast.Foreground(styles.Info),

		Content: lipgloss.NewStyle().Padding(1, 2),
		Toast:   styles.ToastStyle,

		Title:     styles.TitleStyle.MarginBottom(0),
		Subtle:    styles.HelpStyle,
		Highlight: lipgloss.NewStyle().Foreground(styles.Secondary),
	}
}

// Model is the main application model.
type Model struct {
	// Tab management
	activeTab TabID
	tabs      []Tab
	tabNames  []string

	// Shared state
	state    *State
	services *services.Manager
	commands *Commands
	keymap   KeyMap
	styles   Styles

	// UI components
	spinner spinner.Model
	help    help.Model

	// Window dimensions
	width  int
	height int

	// UI state
	showHelp        bool
	ready           bool
	profilePrompted bool

	// Service subscription
	eventChannel chan services.ServiceEvent
}

// NewModel initializes a new application model.
func NewModel(mgr *services.Manager) *Model {
	s := spinner.New(
		spinner.WithSpinner(components.Droplet),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.Primary)),
	)

	return &Model{
		activeTab: TabToday,
		tabNames:  []string{"Today", "History", "Log", "Settings"},
		tabs:      make([]Tab, 4), // Placeholder - tabs will be set externally
		state:     NewState(),
		services:  mgr,
		commands:  NewCommands(mgr),
		keymap:    DefaultKeyMap(),
		styles:    DefaultStyles(),
		spinner:   s,
		help:      newHelp(),
	}
}

// SetTabs sets the tabs for the model.
func (m *Model) SetTabs(tabs []Tab) {
	m.tabs = tabs
	if m.width > 0 && m.height > 0 {
		m.updateTabSizes()
	}
}

// GetState returns the application state.
func (m *Model) GetState() *State {
	return m.state
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	m.state.SetLoadingNotification("Loading...")

	cmds := []tea.Cmd{
		m.spinner.Tick,
		defaultTickCmd(),
	}

	if m.services != nil {
		cmds = append(cmds, subscribeToServicesCmd(m.services))
	}

	for _, tab := range m.tabs {
		if tab != nil {
			cmds = append(cmds, tab.Init())
		}
	}

	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd, handled := m.handleKeyMsg(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if handled {
			return m, tea.Batch(cmds...)
		}

	case tea.WindowSizeMsg:
		m.handleWindowSize(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	default:
		if appCmds := m.handleAppMsg(msg); len(appCmds) > 0 {
			cmds = append(cmds, appCmds...)
		}
	}

	if cmd := m.updateActiveTab(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleAppMsg(msg tea.Msg) []tea.Cmd {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case TickMsg:
		m.state.ClearExpiredNotifications()
		cmds = append(cmds, defaultTickCmd())
	case SubscriptionEventMsg:
		m.eventChannel = msg.Channel
		cmds = append(cmds, waitForServiceEventCmd(m.eventChannel))
		if m.services != nil {
			cmds = append(cmds, loadOverviewCmd(m.services))
		}
	case ServiceEventMsg:
		if cmd := m.handleServiceEvent(msg.Event); cmd != nil {
			cmds = append(cmds, cmd)
		}
		if m.eventChannel != nil {
			cmds = append(cmds, waitForServiceEventCmd(m.eventChannel))
		}
	case OverviewLoadedMsg:
		cmds = append(cmds, m.handleOverviewLoaded(msg)...)
	case AddDrinkMsg:
		cmds = append(cmds, m.commands.AddDrink(msg.AmountMl, msg.TowardGoal))
	case DrinkAddedMsg:
		cmds = append(cmds, m.handleDrinkAdded(msg))
	case DeleteDrinkMsg:
		cmds = append(cmds, m.commands.DeleteDrink(msg.Index))
	case DrinkDeletedMsg:
		cmds = append(cmds, m.handleDrinkDeleted(msg))
	case SetProfileMsg:
		cmds = append(cmds, m.commands.SetProfile(msg))
	case ProfileSavedMsg:
		cmds = append(cmds, m.handleProfileSaved(msg))
	case ToggleThemeMsg:
		cmds = append(cmds, m.commands.ToggleTheme())
	case ThemeToggledMsg:
		cmds = append(cmds, m.handleThemeToggled(msg))
	case AddNotificationMsg:
		id := m.state.AddNotification(msg.Type, msg.Message, msg.Duration)
		if msg.Duration > 0 {
			cmds = append(cmds, clearNotificationCmd(id, msg.Duration))
		}
	case RemoveNotificationMsg:
		m.state.RemoveNotification(msg.ID)
	case ClearNotificationsMsg:
		m.state.ClearAllNotifications()
	case ClearExpiredNotificationsMsg:
		m.state.ClearExpiredNotifications()
	case StartLoadingMsg:
		m.state.SetLoading(msg.Resource, true)
		m.state.SetLoadingNotification("Refreshing...")
	case StopLoadingMsg:
		m.state.SetLoading(msg.Resource, false)
		if !m.state.AnyLoading() {
			m.state.ClearLoadingNotification()
		}
	case ErrorMsg:
		cmds = append(cmds, notifyErrorCmd(fmt.Sprintf("%s: %v", msg.Context, msg.Error)))
	case TabSwitchMsg:
		m.activeTab = msg.Tab
		m.updateTabSizes()
	case ToggleHelpMsg:
		m.showHelp = !m.showHelp
	case QuitMsg:
		cmds = append(cmds, tea.Quit)
	}
	return cmds
}

func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	m.updateTabSizes()
}

func (m *Model) handleOverviewLoaded(msg OverviewLoadedMsg) []tea.Cmd {
	var cmds []tea.Cmd

	m.state.SetOverview(msg.Overview)
	m.state.SetLoading("initial", false)
	m.state.SetLoading("ledger", false)
	if !m.state.AnyLoading() {
		m.state.ClearLoadingNotification()
	}
	styles.SetDarkTheme(msg.Overview.DarkTheme)

	cmds = append(cmds, func() tea.Msg {
		return LedgerUpdatedMsg{Event: services.LedgerChangedEvent{
			Drinks:        msg.Overview.Drinks,
			CurrentMl:     msg.Overview.CurrentMl,
			TodaysTotalMl: msg.Overview.TodaysTotalMl,
		}}
	})

	if !msg.Overview.ProfileFound && !m.profilePrompted {
		m.profilePrompted = true
		cmds = append(cmds,
			m.switchTab(TabSettings),
			func() tea.Msg { return OpenProfilePromptMsg{} },
			notifyInfoCmd("Welcome! Set up your profile to get a daily goal"),
		)
	}
	return cmds
}

func (m *Model) handleDrinkAdded(msg DrinkAddedMsg) tea.Cmd {
	if msg.Error != nil {
		return drinkErrorCmd(msg.Error, m.state.GetMaxDailyMl())
	}
	if msg.TowardGoal {
		return notifySuccessCmd(fmt.Sprintf("Added %d ml toward your goal", msg.Drink.AmountMl))
	}
	return notifySuccessCmd(fmt.Sprintf("Added %d ml", msg.Drink.AmountMl))
}

func (m *Model) handleDrinkDeleted(msg DrinkDeletedMsg) tea.Cmd {
	switch {
	case msg.Error != nil:
		return notifyErrorCmd(fmt.Sprintf("Failed to delete drink: %v", msg.Error))
	case !msg.Deleted:
		return notifyWarningCmd("Nothing to delete")
	default:
		return notifySuccessCmd("Drink deleted")
	}
}

func (m *Model) handleProfileSaved(msg ProfileSavedMsg) tea.Cmd {
	if msg.Error != nil {
		return notifyErrorCmd(fmt.Sprintf("Failed to save profile: %v", msg.Error))
	}
	return notifySuccessCmd(fmt.Sprintf("Profile saved, daily goal %.2f L",
		float64(msg.Profile.HydrationGoalMl)/1000))
}

func (m *Model) handleThemeToggled(msg ThemeToggledMsg) tea.Cmd {
	if msg.Error != nil {
		return notifyErrorCmd(fmt.Sprintf("Failed to save theme: %v", msg.Error))
	}
	styles.SetDarkTheme(msg.Dark)
	if msg.Dark {
		return notifyInfoCmd("Dark theme enabled")
	}
	return notifyInfoCmd("Light theme enabled")
}

func (m *Model) updateActiveTab(msg tea.Msg) tea.Cmd {
	if int(m.activeTab) < len(m.tabs) && m.tabs[m.activeTab] != nil {
		var cmd tea.Cmd
		m.tabs[m.activeTab], cmd = m.tabs[m.activeTab].Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) updateTabSizes() {
	contentHeight := max(0, m.height-5)

	for _, tab := range m.tabs {
		if tab != nil {
			tab.SetSize(m.width, contentHeight)
		}
	}
}

// switchTab activates id and tells the tab it became visible.
func (m *Model) switchTab(id TabID) tea.Cmd {
	m.activeTab = id
	m.updateTabSizes()
	return func() tea.Msg { return TabSwitchMsg{Tab: id} }
}

func (m *Model) activeTabCapturing() bool {
	if int(m.activeTab) >= len(m.tabs) || m.tabs[m.activeTab] == nil {
		return false
	}
	c, ok := m.tabs[m.activeTab].(InputCapturer)
	return ok && c.CapturingInput()
}

// handleKeyMsg handles keyboard input. It reports whether the key was
// consumed by a global binding and must not reach the active tab.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit, true
	}
	if m.activeTabCapturing() {
		return nil, false
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return tea.Quit, true

	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp
		return nil, true

	case key.Matches(msg, m.keymap.Tab1):
		return m.switchTab(TabToday), true

	case key.Matches(msg, m.keymap.Tab2):
		return m.switchTab(TabHistory), true

	case key.Matches(msg, m.keymap.Tab3):
		return m.switchTab(TabLog), true

	case key.Matches(msg, m.keymap.Tab4):
		return m.switchTab(TabSettings), true

	case key.Matches(msg, m.keymap.NextTab):
		if m.showHelp || len(m.tabs) == 0 {
			return nil, true
		}
		return m.switchTab(TabID((int(m.activeTab) + 1) % len(m.tabs))), true

	case key.Matches(msg, m.keymap.PrevTab):
		if m.showHelp || len(m.tabs) == 0 {
			return nil, true
		}
		return m.switchTab(TabID((int(m.activeTab) - 1 + len(m.tabs)) % len(m.tabs))), true

	case key.Matches(msg, m.keymap.Refresh):
		if m.services == nil {
			return nil, true
		}
		return tea.Batch(
			func() tea.Msg { return StartLoadingMsg{Resource: "ledger"} },
			loadOverviewCmd(m.services),
		), true

	case key.Matches(msg, m.keymap.Escape):
		if m.showHelp {
			m.showHelp = false
			return nil, true
		}
	}

	return nil, false
}

func (m *Model) handleServiceEvent(event services.ServiceEvent) tea.Cmd {
	switch e := event.(type) {
	case services.LedgerChangedEvent:
		m.state.ApplyLedger(e)
		forward := func() tea.Msg { return LedgerUpdatedMsg{Event: e} }
		if e.External {
			return tea.Batch(forward, notifyInfoCmd("Drink history updated from another session"))
		}
		return forward

	case services.ProfileChangedEvent:
		m.state.ApplyProfile(e)
		styles.SetDarkTheme(e.DarkTheme)
		return func() tea.Msg { return ProfileUpdatedMsg{Event: e} }

	case services.ReminderEvent:
		return func() tea.Msg {
			return AddNotificationMsg{
				Type:     NotificationInfo,
				Message:  fmt.Sprintf("Time for some water! Last drink %s ago", formatElapsed(e.Elapsed)),
				Duration: LongNotificationDuration,
			}
		}

	case services.GoalReachedEvent:
		return notifySuccessCmd(fmt.Sprintf("Daily goal of %.2f L reached!", float64(e.GoalMl)/1000))

	case services.ErrorEvent:
		return notifyErrorCmd(fmt.Sprintf("[%s] %v", e.Service, e.Error))
	}

	return nil
}

// formatElapsed renders a duration as hours and minutes.
func formatElapsed(d time.Duration) string {
	d = d.Round(time.Minute)
	h := int(d.Hours())
	mins := int(d.Minutes()) % 60
	if h == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dh %02dm", h, mins)
}
