package components

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/hydration-tui/internal/ui/styles"
)

var (
	// ErrNotANumber is returned when prompt input cannot be parsed.
	ErrNotANumber = errors.New("please enter a number")
	// ErrNotPositive is returned when an amount is zero or negative.
	ErrNotPositive = errors.New("amount must be greater than zero")
	// ErrNegative is returned when a measurement is negative.
	ErrNegative = errors.New("value cannot be negative")
)

// ParseAmount parses a drink amount in milliliters. Fractions are rounded.
func ParseAmount(s string) (int, error) {
	f, err := parseNumber(s)
	if err != nil {
		return 0, err
	}
	ml := int(math.Round(f))
	if ml <= 0 {
		return 0, ErrNotPositive
	}
	return ml, nil
}

// ParseMeasurement parses a non-negative number such as a weight.
// Empty input parses as zero.
func ParseMeasurement(s string) (float64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	f, err := parseNumber(s)
	if err != nil {
		return 0, err
	}
	if f < 0 {
		return 0, ErrNegative
	}
	return f, nil
}

func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrNotANumber
	}
	return f, nil
}

// Prompt is a labelled numeric text input.
type Prompt struct {
	input textinput.Model
	label string
	err   error
}

// NewPrompt creates a prompt with the given label and placeholder.
func NewPrompt(label, placeholder string) Prompt {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 8
	ti.Width = 12
	ti.Prompt = "› "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(styles.Primary)

	return Prompt{input: ti, label: label}
}

// Focus gives the prompt keyboard focus.
func (p *Prompt) Focus() tea.Cmd {
	return p.input.Focus()
}

// Blur removes keyboard focus.
func (p *Prompt) Blur() {
	p.input.Blur()
}

// Focused reports whether the prompt has focus.
func (p Prompt) Focused() bool {
	return p.input.Focused()
}

// Reset clears the value and any error.
func (p *Prompt) Reset() {
	p.input.Reset()
	p.err = nil
}

// SetValue replaces the current value.
func (p *Prompt) SetValue(s string) {
	p.input.SetValue(s)
}

// Value returns the raw input.
func (p Prompt) Value() string {
	return p.input.Value()
}

// Label returns the prompt label.
func (p Prompt) Label() string {
	return p.label
}

// SetError shows err under the input until the next edit.
func (p *Prompt) SetError(err error) {
	p.err = err
}

// Err returns the error currently shown.
func (p Prompt) Err() error {
	return p.err
}

// Update forwards key input to the text field.
func (p Prompt) Update(msg tea.Msg) (Prompt, tea.Cmd) {
	var cmd tea.Cmd
	if _, ok := msg.(tea.KeyMsg); ok {
		p.err = nil
	}
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// View renders the label, input and error line.
func (p Prompt) View() string {
	labelStyle := styles.BlurredStyle
	if p.input.Focused() {
		labelStyle = styles.FocusedStyle
	}

	line := lipgloss.JoinHorizontal(lipgloss.Left,
		labelStyle.Width(22).Render(p.label),
		p.input.View(),
	)
	if p.err != nil {
		line = lipgloss.JoinVertical(lipgloss.Left, line, styles.ErrorTextStyle.Render("  "+p.err.Error()))
	}
	return line
}
