package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorText     lipgloss.Color = "#cdd6f4"
	colorMuted    lipgloss.Color = "#a6adc8"
	colorBorder   lipgloss.Color = "#585b70"
	colorAccent   lipgloss.Color = "#89b4fa"
	colorSuccess  lipgloss.Color = "#a6e3a1"
	colorError    lipgloss.Color = "#f38ba8"
	colorCountry  lipgloss.Color = "#89b4fa"
	colorState    lipgloss.Color = "#a6e3a1"
	colorCity     lipgloss.Color = "#cba6f7"
	colorSurface1 lipgloss.Color = "#313244"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	textStyle    = lipgloss.NewStyle().Foreground(colorText)
	errStyle     = lipgloss.NewStyle().Foreground(colorError)
	okStyle      = lipgloss.NewStyle().Foreground(colorSuccess)
	badgeStyle   = lipgloss.NewStyle().Foreground(colorText).Background(colorSurface1).Padding(0, 1)
	cursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	paneStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1)
	focusedStyle = paneStyle.BorderForeground(colorAccent)
	previewStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(colorBorder).Padding(0, 1)
	keyStyle     = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
)

func levelColor(i int) lipgloss.Color {
	switch i {
	case 0:
		return colorCountry
	case 1:
		return colorState
	default:
		return colorCity
	}
}
