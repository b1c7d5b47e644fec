package settings

import (
	"fmt"
	"runtime"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/hydration-tui/internal/ui/styles"
	"github.com/j-veylop/hydration-tui/internal/version"
)

// renderConfigCard renders the paths and limits the app was started with.
func (m *Model) renderConfigCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Configuration"), "")

	if m.config != nil {
		reminders := "off"
		if m.config.RemindersEnabled {
			reminders = fmt.Sprintf("after %s, checked every %s",
				m.config.ReminderThreshold, m.config.ReminderCheckInterval)
		}
		rows = append(rows,
			renderConfigRow("Database", m.config.DatabasePath),
			renderConfigRow("Log file", m.config.LogPath),
			renderConfigRow("Daily limit", strconv.FormatFloat(m.config.MaxDailyLiters(), 'f', -1, 64)+" L"),
			renderConfigRow("Reminders", reminders),
		)
		if m.config.Location != nil {
			rows = append(rows, renderConfigRow("Time zone", m.config.Location.String()))
		}
	} else {
		rows = append(rows, styles.HelpStyle.Render("Configuration not loaded"))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func renderConfigRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(18).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

// renderAboutCard renders the build information card.
func (m *Model) renderAboutCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("About Hydration TUI"), "")

	rows = append(rows,
		renderConfigRow("Version", version.GetVersion()),
		renderConfigRow("Build Date", version.GetDate()),
		renderConfigRow("Git Commit", version.GetCommit()),
		renderConfigRow("Go Version", runtime.Version()),
		renderConfigRow("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)),
		"",
		fmt.Sprintf("Drinks logged: %s", styles.InfoTextStyle.Render(strconv.Itoa(m.state.GetDrinkCount()))),
	)

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}
