package domain

import (
	"fmt"

	apperrors "kiosk/internal/platform/errors"
)

// SelectionAccumulator collects accepted ids in swipe order for one pass.
type SelectionAccumulator struct {
	ids  []string
	seen map[string]struct{}
}

func NewSelectionAccumulator() *SelectionAccumulator {
	return &SelectionAccumulator{seen: map[string]struct{}{}}
}

// Add appends id. A repeated id is dropped and reported; the queue visits each
// card once, so a repeat means the caller replayed a decision.
func (a *SelectionAccumulator) Add(id string) error {
	if _, ok := a.seen[id]; ok {
		return fmt.Errorf("%w: %q already selected", apperrors.ErrInvalidStateTransition, id)
	}
	a.seen[id] = struct{}{}
	a.ids = append(a.ids, id)
	return nil
}

// FinalSelection returns a copy of the accepted ids. Never nil.
func (a *SelectionAccumulator) FinalSelection() []string {
	out := make([]string, len(a.ids))
	copy(out, a.ids)
	return out
}

func (a *SelectionAccumulator) Len() int { return len(a.ids) }

func (a *SelectionAccumulator) Reset() {
	a.ids = nil
	a.seen = map[string]struct{}{}
}
