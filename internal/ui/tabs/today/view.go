package today

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/hydration-tui/internal/models"
	"github.com/j-veylop/hydration-tui/internal/services/stats"
	"github.com/j-veylop/hydration-tui/internal/ui/components"
	"github.com/j-veylop/hydration-tui/internal/ui/styles"
)

// View renders the today tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	sections := []string{
		m.renderTitle(),
		m.renderGoal(),
		m.renderQuickAdd(),
		m.renderHourly(),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	now := m.clock.Now()
	title := styles.TitleStyle.Render("Today")
	subtitle := styles.HelpStyle.Render(now.Format("Monday, January 2"))
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) cardWidth() int {
	return max(m.width-6, 40)
}

func (m *Model) renderGoal() string {
	cardWidth := m.cardWidth()
	profile := m.state.GetProfile()
	current := m.state.GetCurrentMl()
	goal := profile.HydrationGoalMl

	var rows []string
	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("💧")
	rows = append(rows, fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("Daily Goal")), "")

	if goal <= 0 {
		rows = append(rows,
			styles.WarningTextStyle.Render("  No daily goal set yet."),
			styles.InfoTextStyle.Render("  ╰─▶ Press 4 to fill in your profile"),
			"",
		)
	} else {
		rows = append(rows, "  "+m.bar.View(current, goal, cardWidth-6), "")
	}

	drinks := m.state.GetDrinks()
	now := m.clock.Now()
	todays := 0
	for _, d := range drinks {
		if stats.InWindow(d.Timestamp, models.WindowDay, now) {
			todays++
		}
	}

	rows = append(rows,
		m.renderStat("Drunk today", components.FormatLiters(m.state.GetTodaysTotalMl())),
		m.renderStat("Ideal intake", components.FormatLiters(profile.IdealWaterIntakeMl)),
	)
	if goal > 0 {
		rows = append(rows, m.renderStat("Remaining", components.FormatLiters(max(goal-current, 0))))
	}
	rows = append(rows, m.renderStat("Drinks today", fmt.Sprintf("%d", todays)))

	if len(drinks) > 0 {
		last := drinks[0]
		rows = append(rows, m.renderStat("Last drink",
			fmt.Sprintf("%d ml at %s (%s)", last.AmountMl,
				last.Timestamp.In(now.Location()).Format("15:04"), formatAgo(now.Sub(last.Timestamp)))))
	}

	if goal > 0 && current >= goal {
		rows = append(rows, "", styles.SuccessTextStyle.Render("  ✓ Goal reached, well done!"))
	}

	rows = append(rows, "")
	return styles.CardStyle.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) renderStat(label, value string) string {
	return fmt.Sprintf("  %s %s",
		styles.HelpStyle.Width(14).Render(label),
		lipgloss.NewStyle().Bold(true).Render(value),
	)
}

func (m *Model) renderQuickAdd() string {
	cardWidth := m.cardWidth()

	var rows []string
	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("◈")
	rows = append(rows, fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("Quick Add")), "")

	if len(m.amounts) == 0 {
		rows = append(rows, styles.HelpStyle.Render("  No quick amounts configured"))
	} else {
		buttons := make([]string, len(m.amounts))
		for i, a := range m.amounts {
			label := fmt.Sprintf("%d ml", a)
			if i == m.selected {
				buttons[i] = styles.ButtonActiveStyle.Render(label)
			} else {
				buttons[i] = styles.ButtonInactiveStyle.Render(label)
			}
		}
		rows = append(rows, "  "+lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
	}

	rows = append(rows, "")
	if m.mode != promptNone {
		rows = append(rows,
			m.prompt.View(),
			styles.HelpStyle.Render("  enter confirm • esc cancel"),
		)
		if m.mode == promptTowardGoal {
			rows = append(rows, styles.HelpStyle.Render("  Counts toward the goal without the daily limit"))
		}
	} else {
		rows = append(rows, styles.HelpStyle.Render("  ←/→ select • enter add • a custom • g toward goal"))
	}

	rows = append(rows, "")
	return styles.CardStyle.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) renderHourly() string {
	cardWidth := m.cardWidth()

	var rows []string
	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("🕐")
	rows = append(rows, fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("By Hour")), "")

	buckets := stats.Bucket(m.state.GetDrinks(), models.WindowDay, m.clock.Now())
	idx, peak := models.PeakBucket(buckets)
	if idx < 0 {
		rows = append(rows, styles.HelpStyle.Render("  Nothing recorded today"))
	} else {
		spark := components.RenderSparkline(models.Liters(buckets), len(buckets))
		rows = append(rows,
			"  "+lipgloss.NewStyle().Foreground(styles.Secondary).Render(spark),
			"  "+styles.HelpStyle.Render("0:00"+strings.Repeat(" ", max(len(buckets)-9, 1))+"23:00"),
			"",
			fmt.Sprintf("  Peak: %s (%s)",
				lipgloss.NewStyle().Bold(true).Foreground(styles.Primary).Render(peak.Label),
				components.FormatLiters(peak.TotalMl)),
		)
	}

	rows = append(rows, "")
	return styles.CardStyle.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func formatAgo(d time.Duration) string {
	d = d.Round(time.Minute)
	if d < time.Minute {
		return "just now"
	}
	h := int(d.Hours())
	mins := int(d.Minutes()) % 60
	if h == 0 {
		return fmt.Sprintf("%dm ago", mins)
	}
	return fmt.Sprintf("%dh %02dm ago", h, mins)
}
