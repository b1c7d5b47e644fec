package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/hydration-tui/internal/ui/styles"
)

// Droplet fills up and drains again.
var Droplet = spinner.Spinner{
	Frames: []string{"◌", "○", "◔", "◑", "◕", "●", "◕", "◑", "◔", "○"},
	FPS:    time.Second / 10,
}

// LoadingSpinner is a droplet spinner with a caption, shown while the
// drink history loads.
type LoadingSpinner struct {
	spinner spinner.Model
	label   string
}

// NewSpinner creates a spinner captioned with label.
func NewSpinner(label string) LoadingSpinner {
	return LoadingSpinner{
		spinner: spinner.New(
			spinner.WithSpinner(Droplet),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.Primary)),
		),
		label: label,
	}
}

// Init starts the animation.
func (l LoadingSpinner) Init() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the animation on its own tick messages.
func (l LoadingSpinner) Update(msg tea.Msg) (LoadingSpinner, tea.Cmd) {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return l, cmd
}

// View renders the current frame followed by the caption.
func (l LoadingSpinner) View() string {
	caption := lipgloss.NewStyle().Foreground(styles.TextSecondary).Render(l.label)
	return l.spinner.View() + " " + caption
}

// RenderSpinnerCentered places the spinner in the middle of a width x height area.
func RenderSpinnerCentered(s LoadingSpinner, width, height int) string {
	return styles.CenterBoth(s.View(), width, height)
}
