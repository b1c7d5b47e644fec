package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/hydration-tui/internal/ui/styles"
)

// AnimationTickMsg advances the goal bar fill animation.
type AnimationTickMsg time.Time

func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*50, func(t time.Time) tea.Msg {
		return AnimationTickMsg(t)
	})
}

// GoalPercent returns current as a percentage of goal, capped at 100.
// A goal of zero or less yields zero.
func GoalPercent(currentMl, goalMl int) float64 {
	if goalMl <= 0 || currentMl <= 0 {
		return 0
	}
	pct := float64(currentMl) * 100 / float64(goalMl)
	return min(pct, 100)
}

// FormatLiters renders milliliters as liters with two decimals.
func FormatLiters(ml int) string {
	return fmt.Sprintf("%.2f L", float64(ml)/1000)
}

// GoalBar renders today's progress toward the hydration goal.
type GoalBar struct {
	progress       progress.Model
	isAnimating    bool
	targetPercent  float64
	currentPercent float64
}

// NewGoalBar creates a goal bar with a water gradient.
func NewGoalBar() GoalBar {
	return NewGoalBarWithWidth(30)
}

// NewGoalBarWithWidth creates a goal bar with a specific width.
func NewGoalBarWithWidth(width int) GoalBar {
	p := progress.New(
		progress.WithScaledGradient("#9ad9ff", "#0a6cff"),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)

	return GoalBar{progress: p}
}

// Init initializes the progress bar model.
func (g GoalBar) Init() tea.Cmd {
	return nil
}

// Update steps the fill animation toward its target.
func (g GoalBar) Update(msg tea.Msg) (GoalBar, tea.Cmd) {
	if _, ok := msg.(AnimationTickMsg); !ok || !g.isAnimating {
		return g, nil
	}

	diff := g.targetPercent - g.currentPercent
	if diff == 0 {
		g.isAnimating = false
		return g, nil
	}

	step := diff / 10
	if step > 0 && step < 0.5 {
		step = 0.5
	} else if step < 0 && step > -0.5 {
		step = -0.5
	}
	g.currentPercent += step
	if (diff > 0 && g.currentPercent > g.targetPercent) || (diff < 0 && g.currentPercent < g.targetPercent) {
		g.currentPercent = g.targetPercent
	}

	return g, animationTick()
}

// SetPercent sets the target percentage and starts animating toward it.
func (g *GoalBar) SetPercent(percent float64) tea.Cmd {
	g.targetPercent = percent
	if g.isAnimating {
		return nil
	}
	g.isAnimating = true
	return animationTick()
}

// Resume restarts the tick loop of an unfinished animation whose ticks were
// dropped, for example while its tab was hidden.
func (g GoalBar) Resume() tea.Cmd {
	if !g.isAnimating {
		return nil
	}
	return animationTick()
}

// Percent returns the percentage currently drawn.
func (g GoalBar) Percent() float64 {
	return g.currentPercent
}

// Target returns the percentage the bar is animating toward.
func (g GoalBar) Target() float64 {
	return g.targetPercent
}

// View renders the bar with the current and goal volumes.
func (g GoalBar) View(currentMl, goalMl, width int) string {
	barWidth := width - 30 // Reserve space for volumes and percentage
	if barWidth < 10 {
		barWidth = 10
	}
	g.progress.Width = barWidth

	percent := g.currentPercent
	if !g.isAnimating {
		percent = GoalPercent(currentMl, goalMl)
	}

	bar := g.progress.ViewAs(percent / 100)

	target := GoalPercent(currentMl, goalMl)
	percentStr := styles.GetGoalStyle(target).
		Width(6).
		Align(lipgloss.Right).
		Render(fmt.Sprintf("%.0f%%", target))

	volumes := styles.ProgressLabelStyle.
		Render(fmt.Sprintf("%s / %s", FormatLiters(currentMl), FormatLiters(goalMl)))

	return lipgloss.JoinHorizontal(lipgloss.Center, volumes, bar, " ", percentStr)
}
