package domain

import (
	"fmt"
	"strings"

	apperrors "kiosk/internal/platform/errors"
)

// CandidateItem is one interest card. Everything but ID is display metadata.
type CandidateItem struct {
	ID    string `yaml:"id" json:"id"`
	Title string `yaml:"title" json:"title"`
	Blurb string `yaml:"blurb" json:"blurb"`
	Image string `yaml:"image" json:"image,omitempty"`
}

// ValidateItems checks a session's candidate list: non-empty, ids present and unique.
func ValidateItems(items []CandidateItem) error {
	if len(items) == 0 {
		return apperrors.ErrNoCandidates
	}
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		if strings.TrimSpace(item.ID) == "" {
			return fmt.Errorf("%w: item %d has no id", apperrors.ErrInvalidInput, i)
		}
		if _, ok := seen[item.ID]; ok {
			return fmt.Errorf("%w: duplicate item id %q", apperrors.ErrInvalidInput, item.ID)
		}
		seen[item.ID] = struct{}{}
	}
	return nil
}
