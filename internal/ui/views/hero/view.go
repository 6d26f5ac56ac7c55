package hero

import (
	"github.com/charmbracelet/lipgloss"

	"kiosk/internal/ui/theme"
)

var banner = lipgloss.NewStyle().
	Foreground(theme.Lavender).
	Bold(true).
	Padding(1, 4).
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(theme.Lavender)

// View renders the attract screen.
func View(width, height int) string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		banner.Render("Discover the city"),
		"",
		theme.Muted.Render("Tell us what you like and we'll find offers for you."),
		"",
		theme.Hot.Render("press space to start"),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
