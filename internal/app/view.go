package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/hydration-tui/internal/ui/components"
	"github.com/j-veylop/hydration-tui/internal/ui/styles"
)

// toastTop is the first screen row used by the toast stack, below the tab bar.
const toastTop = 2

func newHelp() help.Model {
	h := help.New()
	h.FullSeparator = "    "
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.FullDesc = styles.HelpStyle
	h.Styles.FullSeparator = styles.HelpSeparatorStyle
	return h
}

// View renders the application UI.
func (m *Model) View() string {
	var b strings.Builder

	if m.width > 0 {
		b.WriteString(m.renderNavbar())
		b.WriteString("\n")
	}

	if !m.ready {
		b.WriteString(m.styles.Content.Render(m.spinner.View() + " Loading..."))
		return b.String()
	}

	if tab := m.currentTab(); tab != nil {
		b.WriteString(tab.View())
	} else {
		b.WriteString(m.styles.Content.Render(
			m.styles.Subtle.Render(fmt.Sprintf("%s is unavailable.", m.activeTab))))
	}

	view := b.String()

	if m.showHelp {
		panel := m.renderHelp()
		x := max((m.width-lipgloss.Width(panel))/2, 0)
		y := max((m.height-lipgloss.Height(panel))/2, 0)
		view = placeOverlay(view, panel, x, y)
	}

	if toasts := m.renderNotifications(); len(toasts) > 0 {
		stack := lipgloss.JoinVertical(lipgloss.Right, toasts...)
		x := max(m.width-lipgloss.Width(stack)-2, 0)
		view = placeOverlay(view, stack, x, toastTop)
	}

	return view
}

func (m *Model) currentTab() Tab {
	if int(m.activeTab) < len(m.tabs) {
		return m.tabs[m.activeTab]
	}
	return nil
}

// placeOverlay draws fg over bg with its top-left corner at column x, row y.
// Cells of bg outside the overlay are kept, including their styling.
func placeOverlay(bg, fg string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	fgWidth := lipgloss.Width(fg)

	for i, line := range strings.Split(fg, "\n") {
		row := y + i
		if row >= len(bgLines) {
			break
		}

		left := ansi.Truncate(bgLines[row], x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		right := ansi.TruncateLeft(bgLines[row], x+fgWidth, "")

		bgLines[row] = left + line + right
	}

	return strings.Join(bgLines, "\n")
}

func (m *Model) renderNavbar() string {
	tabs := make([]string, 0, len(m.tabNames))
	for i, name := range m.tabNames {
		if TabID(i) == m.activeTab {
			tabs = append(tabs, m.styles.ActiveTab.Render(fmt.Sprintf("[%d] %s", i+1, name)))
			continue
		}
		tabs = append(tabs, m.styles.InactiveTab.Render(fmt.Sprintf(" %d  %s", i+1, name)))
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	if progress := m.renderProgress(); progress != "" {
		gap := m.width - lipgloss.Width(bar) - lipgloss.Width(progress) - 4
		if gap > 0 {
			bar += strings.Repeat(" ", gap) + progress
		}
	}

	return m.styles.TabBar.Width(m.width).Render(bar)
}

// renderProgress summarizes today's intake for the tab bar.
func (m *Model) renderProgress() string {
	current := m.state.GetCurrentMl()
	goal := m.state.GetGoalMl()
	if goal <= 0 {
		if current == 0 {
			return ""
		}
		return m.styles.Subtle.Render(components.FormatLiters(current))
	}

	pct := components.GoalPercent(current, goal)
	return styles.GetGoalStyle(pct).Render(fmt.Sprintf("%s / %s",
		components.FormatLiters(current), components.FormatLiters(goal)))
}

var notificationPrefixes = map[NotificationType]string{
	NotificationSuccess: "[OK]",
	NotificationError:   "[ERR]",
	NotificationWarning: "[WARN]",
	NotificationInfo:    "[INFO]",
}

func (m *Model) renderNotifications() []string {
	notifications := m.state.GetNotifications()
	toasts := make([]string, 0, len(notifications))

	for _, n := range notifications {
		style := m.styles.NotificationInfo
		switch n.Type {
		case NotificationSuccess:
			style = m.styles.NotificationSuccess
		case NotificationError:
			style = m.styles.NotificationError
		case NotificationWarning:
			style = m.styles.NotificationWarning
		}

		prefix, ok := notificationPrefixes[n.Type]
		if !ok {
			prefix = m.spinner.View()
		}

		toasts = append(toasts, m.styles.Toast.Render(style.Render(prefix+" "+n.Message)))
	}

	return toasts
}

// renderHelp lists the global bindings and those of the active tab.
func (m *Model) renderHelp() string {
	groups := m.keymap.FullHelp()
	sections := []string{
		m.styles.Title.Render("Keyboard Shortcuts"),
		"",
		m.styles.Highlight.Render("Global"),
		m.help.FullHelpView(groups),
	}

	if tab := m.currentTab(); tab != nil {
		if bindings := tab.ShortHelp(); len(bindings) > 0 {
			sections = append(sections,
				"",
				m.styles.Highlight.Render(m.tabNames[m.activeTab]),
				m.help.FullHelpView([][]key.Binding{bindings}),
			)
		}
	}

	sections = append(sections, "", m.styles.Subtle.Render("Press ? or Esc to close"))

	return styles.HelpPanelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
