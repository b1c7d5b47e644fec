package settings

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/hydration-tui/internal/ui/components"
	"github.com/j-veylop/hydration-tui/internal/ui/styles"
)

// View renders the settings tab.
func (m *Model) View() string {
	sections := []string{m.renderTitle()}

	if m.editing {
		sections = append(sections, m.renderForm())
		return styles.DocStyle.
			Width(m.width).
			Height(m.height).
			Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
	}

	sections = append(sections,
		m.renderProfile(),
		m.renderAppearance(),
		m.renderConfigCard(),
		m.renderAboutCard(),
	)

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Settings")
	subtitle := styles.HelpStyle.Render("Your profile sets the daily goal")
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) cardWidth() int {
	return min(max(m.width-6, 40), 80)
}

func (m *Model) renderProfile() string {
	var rows []string

	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("◉")
	rows = append(rows, fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("Profile")), "")

	if !m.state.IsProfileFound() {
		rows = append(rows,
			styles.HelpStyle.Render("  No profile saved yet."),
			"",
			styles.InfoTextStyle.Render("  Press 'e' to enter your weight and activity"),
		)
	} else {
		p := m.state.GetProfile()
		rows = append(rows,
			renderField("Weight", formatNumber(p.WeightKg)+" kg"),
			renderField("Activity", formatNumber(p.ActivityMinutes)+" min/day"),
			renderField("Ideal intake", components.FormatLiters(p.IdealWaterIntakeMl)),
			renderField("Daily goal", components.FormatLiters(p.HydrationGoalMl)),
		)
	}

	if m.saveErr != nil {
		rows = append(rows, "", styles.ErrorTextStyle.Render("  "+m.saveErr.Error()))
	}
	rows = append(rows, "")

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderAppearance() string {
	var rows []string

	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("◐")
	rows = append(rows, fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("Appearance")), "")

	theme := "Light"
	if m.state.IsDarkTheme() {
		theme = "Dark"
	}
	rows = append(rows,
		renderField("Theme", theme),
		"",
		styles.HelpStyle.Render("  Press 't' to switch"),
		"",
	)

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func renderField(label, value string) string {
	return fmt.Sprintf("  %s %s",
		styles.HelpStyle.Width(16).Render(label),
		lipgloss.NewStyle().Bold(true).Render(value),
	)
}

func (m *Model) renderForm() string {
	cardWidth := m.cardWidth()

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Edit Profile"), "")

	inputs := []struct {
		field  formField
		prompt components.Prompt
	}{
		{fieldWeight, m.weight},
		{fieldActivity, m.activity},
		{fieldGoal, m.goal},
	}
	for _, in := range inputs {
		border := styles.BlurredBorderStyle
		if m.focusedField == in.field {
			border = styles.FocusedBorderStyle
		}
		rows = append(rows, border.Width(cardWidth-10).Render(in.prompt.View()))
	}
	rows = append(rows, "")

	if ideal := m.previewIdeal(); ideal > 0 {
		rows = append(rows, styles.InfoTextStyle.Render(
			fmt.Sprintf("Ideal intake: %s (used when the goal is empty)", components.FormatLiters(ideal))), "")
	}

	submitStyle := styles.ButtonInactiveStyle
	cancelStyle := styles.ButtonInactiveStyle
	if m.focusedField == fieldSubmit {
		submitStyle = styles.ButtonActiveStyle
	}
	if m.focusedField == fieldCancel {
		cancelStyle = styles.ButtonActiveStyle
	}

	rows = append(rows,
		lipgloss.JoinHorizontal(lipgloss.Center,
			submitStyle.Render(" Save "),
			"  ",
			cancelStyle.Render(" Cancel "),
		),
		"",
		styles.HelpStyle.Render("Tab: next field | Enter: next/submit | Esc: cancel"),
	)

	return styles.ModalContentStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}
