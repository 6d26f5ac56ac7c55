package dto

import "time"

type CardOutput struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Blurb string `json:"blurb,omitempty"`
	Image string `json:"image,omitempty"`
}

type RewardOutput struct {
	Visible    bool   `json:"visible"`
	PrizeLabel string `json:"prize_label,omitempty"`
	OfferID    string `json:"offer_id,omitempty"`
}

type SnapshotOutput struct {
	SessionID  string       `json:"session_id"`
	Version    uint64       `json:"version"`
	Screen     string       `json:"screen"`
	Game       string       `json:"game"`
	Reward     RewardOutput `json:"reward"`
	Animating  bool         `json:"animating"`
	Pending    string       `json:"pending,omitempty"`
	Current    *CardOutput  `json:"current,omitempty"`
	Lookahead  []CardOutput `json:"lookahead,omitempty"`
	Cursor     int          `json:"cursor"`
	Total      int          `json:"total"`
	Accepted   []string     `json:"accepted,omitempty"`
	Selection  []string     `json:"selection"`
	DragOffset float64      `json:"drag_offset"`
}

type SessionOutput struct {
	SessionID string    `json:"session_id"`
	StartedAt time.Time `json:"started_at"`
	Snapshot  SnapshotOutput `json:"snapshot"`
}

type DecisionOutput struct {
	Decision string         `json:"decision"`
	Snapshot SnapshotOutput `json:"snapshot"`
}

type GameOutput struct {
	Game     string         `json:"game"`
	Snapshot SnapshotOutput `json:"snapshot"`
}

type OfferOutput struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Interests   []string `json:"interests"`
}

type EndOutput struct {
	SessionID   string        `json:"session_id"`
	Selection   []string      `json:"selection"`
	Passes      int           `json:"passes"`
	Skipped     bool          `json:"skipped"`
	GamesPlayed int           `json:"games_played"`
	PrizeLabel  string        `json:"prize_label,omitempty"`
	OfferID     string        `json:"offer_id,omitempty"`
	Duration    time.Duration `json:"duration"`
}

type HistoryOutput struct {
	SessionID   string    `json:"session_id"`
	StartedAt   time.Time `json:"started_at"`
	EndedAt     time.Time `json:"ended_at"`
	Selection   []string  `json:"selection"`
	Skipped     bool      `json:"skipped"`
	GamesPlayed int       `json:"games_played"`
	PrizeLabel  string    `json:"prize_label,omitempty"`
	OfferID     string    `json:"offer_id,omitempty"`
}

type CatalogOutput struct {
	Interests []CardOutput  `json:"interests"`
	Offers    []OfferOutput `json:"offers"`
	Prizes    []string      `json:"prizes"`
}

type SimulateInput struct {
	Decisions []string
	// SkipAt is the card index at which skip-all fires; negative disables it.
	SkipAt   int
	PlayGame bool
	ClaimID  string
}

type SimulateOutput struct {
	SessionID string           `json:"session_id"`
	Decisions []DecisionOutput `json:"decisions"`
	Feed      []OfferOutput    `json:"feed"`
	Game      string           `json:"game,omitempty"`
	Rewards   []RewardOutput   `json:"rewards,omitempty"`
	Final     SnapshotOutput   `json:"final"`
	End       EndOutput        `json:"end"`
}
