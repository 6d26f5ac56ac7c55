package domain

import swipedomain "kiosk/internal/modules/swipe/domain"

// Offer is a personalised feed entry tagged with the interests it serves.
type Offer struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Interests   []string `yaml:"interests" json:"interests"`
}

// Catalog is everything a kiosk session is built from.
type Catalog struct {
	Interests []swipedomain.CandidateItem `yaml:"interests" json:"interests"`
	Offers    []Offer                     `yaml:"offers" json:"offers"`
	Prizes    []string                    `yaml:"prizes" json:"prizes"`
}

// Personalize orders offers by the selection: offers for the first selected
// interest come first, each offer at most once. An empty selection keeps the
// whole catalog in its original order.
func Personalize(offers []Offer, selection []string) []Offer {
	if len(selection) == 0 {
		return append([]Offer{}, offers...)
	}
	out := []Offer{}
	taken := map[string]struct{}{}
	for _, interest := range selection {
		for _, offer := range offers {
			if _, ok := taken[offer.ID]; ok || !offer.serves(interest) {
				continue
			}
			taken[offer.ID] = struct{}{}
			out = append(out, offer)
		}
	}
	return out
}

func (o Offer) serves(interest string) bool {
	for _, candidate := range o.Interests {
		if candidate == interest {
			return true
		}
	}
	return false
}
