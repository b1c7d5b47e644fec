// Package styles defines the visual styling for the application.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette. Each color carries a light and a dark variant; SetDarkTheme
// selects which one is rendered.
var (
	Primary   = lipgloss.AdaptiveColor{Light: "25", Dark: "39"} // deep water
	Secondary = lipgloss.AdaptiveColor{Light: "30", Dark: "44"} // teal
	Subtle    = lipgloss.AdaptiveColor{Light: "250", Dark: "240"}

	Success = lipgloss.AdaptiveColor{Light: "28", Dark: "42"}
	Error   = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	Warning = lipgloss.AdaptiveColor{Light: "166", Dark: "220"}
	Info    = Primary

	BgPanel  = lipgloss.AdaptiveColor{Light: "255", Dark: "235"}
	BgButton = lipgloss.AdaptiveColor{Light: "253", Dark: "237"}
	BgAccent = lipgloss.AdaptiveColor{Light: "254", Dark: "236"}

	TextPrimary   = lipgloss.AdaptiveColor{Light: "235", Dark: "252"}
	TextSecondary = lipgloss.AdaptiveColor{Light: "240", Dark: "245"}
	TextMuted     = lipgloss.AdaptiveColor{Light: "246", Dark: "240"}
)

// SetDarkTheme switches every adaptive color to its dark or light variant.
func SetDarkTheme(dark bool) {
	lipgloss.SetHasDarkBackground(dark)
}

// Layout.
var (
	DocStyle = lipgloss.NewStyle().
			Margin(1, 2).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			MarginBottom(1)

	SubTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Secondary).
			MarginBottom(1)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Subtle).
			Padding(1, 2).
			MarginBottom(1)

	CardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			MarginBottom(1)

	ModalContentStyle = lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(Primary).
				Padding(1, 2).
				Background(BgPanel)

	ToastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1).
			MarginBottom(1)
)

// Inputs and buttons.
var (
	FocusedStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	BlurredStyle = lipgloss.NewStyle().
			Foreground(TextMuted)

	FocusedBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Primary).
				Padding(0, 1)

	BlurredBorderStyle = FocusedBorderStyle.
				BorderForeground(Subtle)

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			MarginRight(1)

	ButtonActiveStyle = buttonStyle.
				Background(Primary).
				Foreground(lipgloss.Color("231")).
				Bold(true)

	ButtonInactiveStyle = buttonStyle.
				Background(BgButton).
				Foreground(TextSecondary)
)

// Help and status text.
var (
	HelpStyle          = lipgloss.NewStyle().Foreground(TextMuted)
	HelpKeyStyle       = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	HelpSeparatorStyle = lipgloss.NewStyle().Foreground(Subtle)

	HelpPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(Primary).
			Padding(1, 3).
			Background(BgPanel)

	ProgressLabelStyle = lipgloss.NewStyle().
				Foreground(TextSecondary).
				Width(20)

	ErrorTextStyle   = lipgloss.NewStyle().Foreground(Error)
	SuccessTextStyle = lipgloss.NewStyle().Foreground(Success)
	WarningTextStyle = lipgloss.NewStyle().Foreground(Warning)
	InfoTextStyle    = lipgloss.NewStyle().Foreground(Info)
)

// Goal progress, from thirsty to quenched.
var (
	goalLowStyle     = lipgloss.NewStyle().Foreground(Warning)
	goalMediumStyle  = lipgloss.NewStyle().Foreground(Info)
	goalReachedStyle = lipgloss.NewStyle().Foreground(Success).Bold(true)
)

// GetGoalStyle returns the style for a goal progress percentage: below
// half, on the way, or reached.
func GetGoalStyle(percent float64) lipgloss.Style {
	switch {
	case percent >= 100:
		return goalReachedStyle
	case percent >= 50:
		return goalMediumStyle
	default:
		return goalLowStyle
	}
}

// CenterHorizontal centers content horizontally within a given width.
func CenterHorizontal(content string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}

// CenterBoth centers content both horizontally and vertically.
func CenterBoth(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
