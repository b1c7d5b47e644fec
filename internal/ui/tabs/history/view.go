package history

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/hydration-tui/internal/models"
	"github.com/j-veylop/hydration-tui/internal/ui/components"
	"github.com/j-veylop/hydration-tui/internal/ui/styles"
)

// View renders the history tab.
func (m *Model) View() string {
	if !m.loaded {
		return m.renderLoading()
	}

	sections := []string{
		m.renderHeader(),
		m.renderConsumptionChart(),
		m.renderStatistics(),
	}
	if m.stats.HasData() {
		sections = append(sections, m.renderBreakdown())
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderLoading() string {
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(styles.HelpStyle.Render("Loading history data..."))
}

func describeWindow(w models.ReportingWindow) string {
	switch w {
	case models.WindowDay:
		return "Today, by hour"
	case models.WindowMonth:
		return "Last 30 days"
	default:
		return "Last 7 days"
	}
}

func (m *Model) renderHeader() string {
	title := styles.TitleStyle.Render("History")

	rangeStyle := lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Primary)

	rangeIndicator := rangeStyle.Render(fmt.Sprintf("[t] %s", m.window.String()))

	header := lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", rangeIndicator)

	subtitle := describeWindow(m.window)
	if m.loading {
		subtitle += " (refreshing)"
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, styles.HelpStyle.Render(subtitle), "")
}

func (m *Model) cardWidth() int {
	return max(m.width-6, 40)
}

func (m *Model) renderConsumptionChart() string {
	cardWidth := m.cardWidth()

	var rows []string

	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("📈")
	rows = append(rows, fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("Consumption")), "")

	caption := "Liters per day"
	if m.window == models.WindowDay {
		caption = "Liters per hour"
	}

	chartWidth := max(cardWidth-12, 30)
	chart := components.RenderBucketChart(m.buckets, chartWidth, 8, caption)
	for line := range strings.SplitSeq(chart, "\n") {
		rows = append(rows, "  "+line)
	}

	rows = append(rows, "")

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderStatistics() string {
	cardWidth := m.cardWidth()
	st := m.stats

	var rows []string

	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("◈")
	rows = append(rows, fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("Statistics")), "")

	goal := "no goal set"
	if m.state.GetGoalMl() > 0 {
		goal = styles.GetGoalStyle(st.GoalAchievementPct).Render(fmt.Sprintf("%.0f%%", st.GoalAchievementPct))
	}

	rows = append(rows,
		renderStat("Total", components.FormatLiters(st.TotalMl)),
		renderStat("Drinks", fmt.Sprintf("%d", st.EventCount)),
		renderStat("Daily average", fmt.Sprintf("%.2f L", st.AverageMl/1000)),
		renderStat("Drinks per day", fmt.Sprintf("%.1f", st.FrequencyPerDay)),
		renderStat("Goal achieved", goal),
	)

	if idx, peak := models.PeakBucket(m.buckets); idx >= 0 {
		rows = append(rows, renderStat("Peak", fmt.Sprintf("%s (%s)", peak.Label, components.FormatLiters(peak.TotalMl))))
	}
	rows = append(rows, renderStat("Days tracked", fmt.Sprintf("%d", st.DistinctDays)))

	rows = append(rows, "")

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func renderStat(label, value string) string {
	return fmt.Sprintf("  %s %s",
		styles.HelpStyle.Width(16).Render(label),
		lipgloss.NewStyle().Bold(true).Render(value),
	)
}

func (m *Model) renderBreakdown() string {
	cardWidth := m.cardWidth()

	var rows []string

	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("📅")
	rows = append(rows, fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("Breakdown")), "")

	chartWidth := max(cardWidth-12, 30)
	barChart := components.RenderBucketBars(m.buckets, chartWidth)
	for line := range strings.SplitSeq(barChart, "\n") {
		rows = append(rows, "  "+line)
	}

	rows = append(rows, "")

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}
