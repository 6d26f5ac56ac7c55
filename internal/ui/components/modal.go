package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kiosk/internal/ui/theme"
)

var modalStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.DoubleBorder()).
	BorderForeground(theme.Peach).
	Background(theme.Mantle).
	Foreground(theme.Text).
	Padding(1, 3).
	Align(lipgloss.Center)

// Modal is a centred overlay box drawn above the feed.
type Modal struct {
	Title string
	Lines []string
	Hint  string
}

func (m Modal) Render(width int) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(m.Title))
	for _, line := range m.Lines {
		sb.WriteString("\n\n" + line)
	}
	if m.Hint != "" {
		sb.WriteString("\n\n" + theme.Muted.Render(m.Hint))
	}
	w := width
	if w < 20 || w > 48 {
		w = 48
	}
	return modalStyle.Width(w).Render(sb.String())
}

// GameModal renders the mini-game drawn for this play.
func GameModal(kind string, width int) string {
	title := "Spin the wheel"
	body := theme.Hot.Render("( ◐ )") + "\n\npress enter to spin"
	if kind == "scratch" {
		title = "Scratch card"
		body = theme.Hot.Render("[ ░░░░░░ ]") + "\n\npress enter to scratch"
	}
	return Modal{Title: title, Lines: []string{body}, Hint: "esc: close"}.Render(width)
}

// RewardModal renders a won prize or a claimed offer.
func RewardModal(prizeLabel, offerTitle string, width int) string {
	lines := []string{theme.Prize.Render(prizeLabel)}
	if offerTitle != "" {
		lines = append(lines, theme.Muted.Render("on ")+offerTitle)
	}
	return Modal{Title: "You won!", Lines: lines, Hint: "enter/esc: close"}.Render(width)
}
