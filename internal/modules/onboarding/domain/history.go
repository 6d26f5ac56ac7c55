package domain

import "time"

// SessionRecord is the audit row written when a kiosk session ends.
type SessionRecord struct {
	ID          string
	StartedAt   time.Time
	EndedAt     time.Time
	Selection   []string
	Passes      int
	Skipped     bool
	GamesPlayed int
	PrizeLabel  string
	OfferID     string
}

func (r SessionRecord) Duration() time.Duration {
	if r.EndedAt.Before(r.StartedAt) {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}
