package log

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/hydration-tui/internal/ui/components"
	"github.com/j-veylop/hydration-tui/internal/ui/styles"
)

// View renders the log tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return m.renderLoading()
	}

	var sections []string

	sections = append(sections, m.renderTitle())

	if m.confirmDelete {
		sections = append(sections, m.renderDeleteConfirm())
	}
	sections = append(sections, m.renderTable())

	sections = append(sections, m.renderFooter())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderLoading() string {
	return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Drink Log")

	count := m.state.GetDrinkCount()
	noun := "drinks"
	if count == 1 {
		noun = "drink"
	}
	subtitle := styles.HelpStyle.Render(fmt.Sprintf("%d %s recorded, newest first", count, noun))

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) renderTable() string {
	if m.state.GetDrinkCount() == 0 {
		return m.renderEmptyState()
	}

	if len(m.table.Rows()) != m.state.GetDrinkCount() {
		m.updateTableData()
	}

	cardWidth := max(m.width-6, 60)
	return styles.CardStyle.Width(cardWidth).Render(m.table.View())
}

func (m *Model) renderEmptyState() string {
	cardWidth := max(m.width-6, 40)

	content := lipgloss.JoinVertical(lipgloss.Center,
		"",
		styles.SubTitleStyle.Render("No drinks recorded yet"),
		"",
		styles.HelpStyle.Render("Every drink you log shows up here."),
		"",
		styles.InfoTextStyle.Render("Press '1' to add one from the Today tab"),
		"",
	)

	return styles.CardStyle.Width(cardWidth).Render(content)
}

func (m *Model) renderDeleteConfirm() string {
	cardWidth := 50
	loc := m.clock.Now().Location()

	content := lipgloss.JoinVertical(lipgloss.Center,
		"",
		styles.WarningTextStyle.Bold(true).Render("Delete Drink?"),
		"",
		"Remove this entry from the log:",
		styles.ErrorTextStyle.Render(fmt.Sprintf("%d ml on %s",
			m.deleteDrink.AmountMl,
			m.deleteDrink.Timestamp.In(loc).Format("Mon Jan 2 15:04"))),
		"",
		"This action cannot be undone.",
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			styles.ButtonActiveStyle.Render(" (Y)es "),
			"  ",
			styles.ButtonInactiveStyle.Render(" (N)o "),
		),
		"",
	)

	return styles.CenterHorizontal(
		styles.ModalContentStyle.Width(cardWidth).Render(content),
		m.width,
	)
}

func (m *Model) renderFooter() string {
	var shortcuts []string

	if m.confirmDelete {
		shortcuts = []string{
			styles.HelpKeyStyle.Render("Y") + " confirm",
			styles.HelpKeyStyle.Render("N") + " cancel",
		}
	} else {
		shortcuts = []string{
			styles.HelpKeyStyle.Render("↑/↓") + " select",
			styles.HelpKeyStyle.Render("d") + " delete",
		}
	}

	footer := strings.Join(shortcuts, styles.HelpSeparatorStyle.Render(" | "))

	total := 0
	for _, d := range m.state.GetDrinks() {
		total += d.AmountMl
	}
	summary := styles.HelpStyle.Render(fmt.Sprintf("Total logged: %s", components.FormatLiters(total)))

	return lipgloss.NewStyle().
		MarginTop(1).
		Foreground(styles.TextMuted).
		Render(lipgloss.JoinVertical(lipgloss.Left, summary, footer))
}
