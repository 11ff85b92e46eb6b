package tui

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	ColorPrimary = lipgloss.Color("#2E7D32")
	ColorAccent  = lipgloss.Color("#8BC34A")
	ColorMuted   = lipgloss.Color("#78909C")
	ColorError   = lipgloss.Color("#E53935")
	ColorWarning = lipgloss.Color("#FFC107")
)

// Styles groups every style the screens use.
type Styles struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Hint     lipgloss.Style
	Error    lipgloss.Style
	Focused  lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
	Alert    lipgloss.Style
	Success  lipgloss.Style
	Panel    lipgloss.Style
	Help     lipgloss.Style
}

// DefaultStyles returns the standard look.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).MarginBottom(1),
		Label:    lipgloss.NewStyle().Bold(true),
		Hint:     lipgloss.NewStyle().Foreground(ColorError).Italic(true),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(ColorError),
		Focused:  lipgloss.NewStyle().Foreground(ColorAccent),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(ColorAccent),
		Muted:    lipgloss.NewStyle().Foreground(ColorMuted),
		Alert: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorError).
			Padding(0, 1),
		Success: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1).
			MarginTop(1),
		Help: lipgloss.NewStyle().Foreground(ColorMuted).MarginTop(1),
	}
}
