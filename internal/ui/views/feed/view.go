package feed

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	onboardingdto "kiosk/internal/modules/onboarding/dto"
	"kiosk/internal/ui/theme"
)

type offerItem struct {
	offer onboardingdto.OfferOutput
}

func (i offerItem) Title() string { return i.offer.Title }
func (i offerItem) Description() string {
	return i.offer.Description + "  " + theme.Muted.Render("#"+strings.Join(i.offer.Interests, " #"))
}
func (i offerItem) FilterValue() string { return i.offer.Title }

// Model lists the personalised offers.
type Model struct {
	list list.Model
}

func New() Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Picked for you"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	return Model{list: l}
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

func (m *Model) SetOffers(offers []onboardingdto.OfferOutput) tea.Cmd {
	items := make([]list.Item, len(offers))
	for i, offer := range offers {
		items[i] = offerItem{offer: offer}
	}
	m.list.Select(0)
	return m.list.SetItems(items)
}

func (m Model) Selected() (onboardingdto.OfferOutput, bool) {
	item, ok := m.list.SelectedItem().(offerItem)
	if !ok {
		return onboardingdto.OfferOutput{}, false
	}
	return item.offer, true
}

// Title looks up an offer title by id; empty when the offer is not listed.
func (m Model) Title(offerID string) string {
	for _, it := range m.list.Items() {
		if item, ok := it.(offerItem); ok && item.offer.ID == offerID {
			return item.offer.Title
		}
	}
	return ""
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return theme.Muted.Render("no offers right now")
	}
	return m.list.View()
}
