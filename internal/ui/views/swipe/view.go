package swipe

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	onboardingdto "kiosk/internal/modules/onboarding/dto"
	"kiosk/internal/ui/theme"
)

const cardWidth = 40

// Model renders the card stack. It holds no session state of its own.
type Model struct {
	threshold float64
	width     int
	height    int
}

func New(threshold float64) Model {
	if threshold <= 0 {
		threshold = 100
	}
	return Model{threshold: threshold}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) View(snap onboardingdto.SnapshotOutput) string {
	if snap.Current == nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, theme.Muted.Render("no more cards"))
	}
	progress := theme.Muted.Render(fmt.Sprintf("%d / %d", snap.Cursor+1, snap.Total))
	stack := []string{progress, "", m.card(snap)}
	for i := len(snap.Lookahead) - 1; i >= 0; i-- {
		peek := theme.CardBehind.Width(cardWidth - 2*(i+1)).Render(snap.Lookahead[i].Title)
		stack = append(stack, peek)
	}
	stack = append(stack, "", m.hint(snap))
	body := lipgloss.JoinVertical(lipgloss.Center, stack...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m Model) card(snap onboardingdto.SnapshotOutput) string {
	card := snap.Current
	style := theme.CardActive
	stamp := ""
	lean := snap.DragOffset
	switch {
	case snap.Pending == "accept":
		style, stamp, lean = theme.CardAccept, theme.Accept.Render("LIKE"), m.threshold*2
	case snap.Pending == "reject":
		style, stamp, lean = theme.CardReject, theme.Reject.Render("NOPE"), -m.threshold*2
	case lean > m.threshold:
		style, stamp = theme.CardAccept, theme.Accept.Render("LIKE")
	case lean < -m.threshold:
		style, stamp = theme.CardReject, theme.Reject.Render("NOPE")
	}
	lines := []string{theme.Title.Render(card.Title)}
	if stamp != "" {
		lines = append([]string{stamp, ""}, lines...)
	}
	if card.Blurb != "" {
		lines = append(lines, "", card.Blurb)
	}
	rendered := style.Width(cardWidth).Render(strings.Join(lines, "\n"))
	shift := m.shift(lean)
	if shift > 0 {
		return lipgloss.NewStyle().PaddingLeft(shift).Render(rendered)
	}
	if shift < 0 {
		return lipgloss.NewStyle().PaddingRight(-shift).Render(rendered)
	}
	return rendered
}

// shift maps a drag offset to a column displacement capped at a third of the
// card width.
func (m Model) shift(offset float64) int {
	limit := float64(cardWidth / 3)
	cols := offset / m.threshold * limit / 2
	return int(math.Max(-limit, math.Min(limit, cols)))
}

func (m Model) hint(snap onboardingdto.SnapshotOutput) string {
	if snap.Animating {
		return theme.Muted.Render("…")
	}
	return theme.Reject.Render("← nope") + theme.Muted.Render("   drag or use arrows   s: skip all   ") + theme.Accept.Render("like →")
}
