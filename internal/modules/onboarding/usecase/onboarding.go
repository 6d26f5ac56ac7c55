package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"kiosk/internal/modules/onboarding/domain"
	onboardingdto "kiosk/internal/modules/onboarding/dto"
	onboardingin "kiosk/internal/modules/onboarding/port/in"
	onboardingout "kiosk/internal/modules/onboarding/port/out"
	"kiosk/internal/modules/onboarding/service"
	swipedomain "kiosk/internal/modules/swipe/domain"
	"kiosk/internal/platform/clock"
	apperrors "kiosk/internal/platform/errors"
	"kiosk/internal/platform/id"
)

// Interactor hosts any number of independent kiosk sessions keyed by id.
type Interactor struct {
	catalog onboardingout.CatalogStore
	history onboardingout.HistoryStore
	clock   clock.Clock
	ids     id.Generator
	opts    service.Options
	log     *slog.Logger

	mu       sync.Mutex
	sessions map[string]*hosted
}

type hosted struct {
	session *service.Session
	catalog domain.Catalog

	mu     sync.Mutex
	record domain.SessionRecord
}

// NewInteractor takes opts as the template for every session it creates;
// Hooks.OnPassComplete is wrapped so history sees each pass.
func NewInteractor(catalog onboardingout.CatalogStore, history onboardingout.HistoryStore, clk clock.Clock, ids id.Generator, opts service.Options) onboardingin.Usecase {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Interactor{
		catalog:  catalog,
		history:  history,
		clock:    clk,
		ids:      ids,
		opts:     opts,
		log:      logger,
		sessions: map[string]*hosted{},
	}
}

func (i *Interactor) Start(ctx context.Context) (onboardingdto.SessionOutput, error) {
	catalog, err := i.catalog.Load(ctx)
	if err != nil {
		return onboardingdto.SessionOutput{}, fmt.Errorf("load catalog: %w", err)
	}
	sessionID := i.ids.New()
	h := &hosted{catalog: catalog, record: domain.SessionRecord{ID: sessionID, StartedAt: i.clock.Now(), Selection: []string{}}}

	opts := i.opts
	opts.Logger = i.log.With("session", sessionID)
	outer := i.opts.Hooks.OnPassComplete
	opts.Hooks.OnPassComplete = func(pass service.Pass) {
		h.mu.Lock()
		h.record.Selection = pass.Selection
		h.record.Skipped = pass.Skipped
		h.record.Passes++
		h.mu.Unlock()
		if outer != nil {
			outer(pass)
		}
	}
	session, err := service.NewSession(catalog.Interests, opts)
	if err != nil {
		return onboardingdto.SessionOutput{}, err
	}
	h.session = session

	i.mu.Lock()
	i.sessions[sessionID] = h
	i.mu.Unlock()
	i.log.Info("session started", "session", sessionID, "cards", len(catalog.Interests))
	return onboardingdto.SessionOutput{
		SessionID: sessionID,
		StartedAt: h.record.StartedAt,
		Snapshot:  toSnapshot(sessionID, session.Snapshot()),
	}, nil
}

func (i *Interactor) StartExperience(_ context.Context, sessionID string) (onboardingdto.SnapshotOutput, error) {
	return i.apply(sessionID, func(h *hosted) error { return h.session.StartExperience() })
}

func (i *Interactor) DragUpdate(_ context.Context, sessionID string, offset float64) (onboardingdto.SnapshotOutput, error) {
	return i.apply(sessionID, func(h *hosted) error {
		h.session.OnDragUpdate(offset)
		return nil
	})
}

func (i *Interactor) Release(_ context.Context, sessionID string, offset float64) (onboardingdto.DecisionOutput, error) {
	h, err := i.lookup(sessionID)
	if err != nil {
		return onboardingdto.DecisionOutput{}, err
	}
	d := h.session.OnRelease(offset)
	return onboardingdto.DecisionOutput{Decision: d.String(), Snapshot: toSnapshot(sessionID, h.session.Snapshot())}, nil
}

func (i *Interactor) Decide(_ context.Context, sessionID, decision string) (onboardingdto.DecisionOutput, error) {
	parsed, err := swipedomain.ParseDecision(decision)
	if err != nil {
		return onboardingdto.DecisionOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	h, err := i.lookup(sessionID)
	if err != nil {
		return onboardingdto.DecisionOutput{}, err
	}
	d := h.session.OnButtonDecision(parsed)
	return onboardingdto.DecisionOutput{Decision: d.String(), Snapshot: toSnapshot(sessionID, h.session.Snapshot())}, nil
}

func (i *Interactor) SkipAll(_ context.Context, sessionID string) (onboardingdto.SnapshotOutput, error) {
	return i.apply(sessionID, func(h *hosted) error { return h.session.OnSkipAll() })
}

func (i *Interactor) PlayGame(_ context.Context, sessionID string) (onboardingdto.GameOutput, error) {
	h, err := i.lookup(sessionID)
	if err != nil {
		return onboardingdto.GameOutput{}, err
	}
	kind, err := h.session.PlayGame()
	if err != nil {
		return onboardingdto.GameOutput{}, err
	}
	h.mu.Lock()
	h.record.GamesPlayed++
	h.mu.Unlock()
	return onboardingdto.GameOutput{Game: kind.String(), Snapshot: toSnapshot(sessionID, h.session.Snapshot())}, nil
}

func (i *Interactor) WinPrize(_ context.Context, sessionID, prizeLabel, offerID string) (onboardingdto.SnapshotOutput, error) {
	return i.apply(sessionID, func(h *hosted) error {
		if err := h.session.WinPrize(prizeLabel, offerID); err != nil {
			return err
		}
		h.rewarded(prizeLabel, offerID)
		return nil
	})
}

func (i *Interactor) ClaimOffer(_ context.Context, sessionID, offerID string) (onboardingdto.SnapshotOutput, error) {
	return i.apply(sessionID, func(h *hosted) error {
		if err := h.session.ClaimOffer(offerID); err != nil {
			return err
		}
		h.rewarded(i.opts.ClaimPrizeLabel, offerID)
		return nil
	})
}

func (i *Interactor) CloseGame(_ context.Context, sessionID string) (onboardingdto.SnapshotOutput, error) {
	return i.apply(sessionID, func(h *hosted) error { return h.session.CloseGame() })
}

func (i *Interactor) CloseReward(_ context.Context, sessionID string) (onboardingdto.SnapshotOutput, error) {
	return i.apply(sessionID, func(h *hosted) error { return h.session.CloseReward() })
}

func (i *Interactor) Restart(_ context.Context, sessionID string) (onboardingdto.SnapshotOutput, error) {
	return i.apply(sessionID, func(h *hosted) error { return h.session.Restart() })
}

func (i *Interactor) Snapshot(_ context.Context, sessionID string) (onboardingdto.SnapshotOutput, error) {
	return i.apply(sessionID, func(*hosted) error { return nil })
}

func (i *Interactor) Feed(_ context.Context, sessionID string) ([]onboardingdto.OfferOutput, error) {
	h, err := i.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	view := h.session.Snapshot().View
	if view.Screen != domain.ScreenFeed {
		return nil, fmt.Errorf("%w: feed requested in %s", apperrors.ErrInvalidStateTransition, view.Screen)
	}
	return toOffers(domain.Personalize(h.catalog.Offers, view.Selection)), nil
}

// End tears the session down and records it. The pending exit window, if
// any, is dropped.
func (i *Interactor) End(ctx context.Context, sessionID string) (onboardingdto.EndOutput, error) {
	i.mu.Lock()
	h, ok := i.sessions[sessionID]
	delete(i.sessions, sessionID)
	i.mu.Unlock()
	if !ok {
		return onboardingdto.EndOutput{}, fmt.Errorf("%w: session %s", apperrors.ErrNotFound, sessionID)
	}
	h.session.Close()

	h.mu.Lock()
	h.record.EndedAt = i.clock.Now()
	record := h.record
	h.mu.Unlock()

	if i.history != nil {
		if err := i.history.Record(ctx, record); err != nil {
			return onboardingdto.EndOutput{}, err
		}
	}
	i.log.Info("session ended", "session", sessionID, "selected", len(record.Selection), "games", record.GamesPlayed)
	return onboardingdto.EndOutput{
		SessionID:   record.ID,
		Selection:   record.Selection,
		Passes:      record.Passes,
		Skipped:     record.Skipped,
		GamesPlayed: record.GamesPlayed,
		PrizeLabel:  record.PrizeLabel,
		OfferID:     record.OfferID,
		Duration:    record.Duration(),
	}, nil
}

func (i *Interactor) History(ctx context.Context, limit int) ([]onboardingdto.HistoryOutput, error) {
	if i.history == nil {
		return nil, nil
	}
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", apperrors.ErrInvalidInput)
	}
	records, err := i.history.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]onboardingdto.HistoryOutput, 0, len(records))
	for _, r := range records {
		out = append(out, onboardingdto.HistoryOutput{
			SessionID:   r.ID,
			StartedAt:   r.StartedAt,
			EndedAt:     r.EndedAt,
			Selection:   r.Selection,
			Skipped:     r.Skipped,
			GamesPlayed: r.GamesPlayed,
			PrizeLabel:  r.PrizeLabel,
			OfferID:     r.OfferID,
		})
	}
	return out, nil
}

func (i *Interactor) Catalog(ctx context.Context) (onboardingdto.CatalogOutput, error) {
	catalog, err := i.catalog.Load(ctx)
	if err != nil {
		return onboardingdto.CatalogOutput{}, fmt.Errorf("load catalog: %w", err)
	}
	cards := make([]onboardingdto.CardOutput, 0, len(catalog.Interests))
	for _, item := range catalog.Interests {
		cards = append(cards, toCard(item))
	}
	return onboardingdto.CatalogOutput{
		Interests: cards,
		Offers:    toOffers(catalog.Offers),
		Prizes:    append([]string{}, catalog.Prizes...),
	}, nil
}

func (i *Interactor) lookup(sessionID string) (*hosted, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	h, ok := i.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: session %s", apperrors.ErrNotFound, sessionID)
	}
	return h, nil
}

func (i *Interactor) apply(sessionID string, fn func(*hosted) error) (onboardingdto.SnapshotOutput, error) {
	h, err := i.lookup(sessionID)
	if err != nil {
		return onboardingdto.SnapshotOutput{}, err
	}
	if err := fn(h); err != nil {
		return toSnapshot(sessionID, h.session.Snapshot()), err
	}
	return toSnapshot(sessionID, h.session.Snapshot()), nil
}

func (h *hosted) rewarded(prizeLabel, offerID string) {
	h.mu.Lock()
	h.record.PrizeLabel = prizeLabel
	h.record.OfferID = offerID
	h.mu.Unlock()
}

func toSnapshot(sessionID string, s service.Snapshot) onboardingdto.SnapshotOutput {
	out := onboardingdto.SnapshotOutput{
		SessionID:  sessionID,
		Version:    s.Version,
		Screen:     string(s.View.Screen),
		Game:       s.View.Game.String(),
		Reward:     onboardingdto.RewardOutput{Visible: s.View.Reward.Visible, PrizeLabel: s.View.Reward.PrizeLabel, OfferID: s.View.Reward.OfferID},
		Animating:  s.View.IsAnimating,
		Cursor:     s.Cursor,
		Total:      s.Total,
		Accepted:   s.Accepted,
		Selection:  s.View.Selection,
		DragOffset: s.DragOffset,
	}
	if s.Pending != swipedomain.NoDecision {
		out.Pending = s.Pending.String()
	}
	if s.HasCurrent {
		card := toCard(s.Current)
		out.Current = &card
	}
	for _, item := range s.Lookahead {
		out.Lookahead = append(out.Lookahead, toCard(item))
	}
	return out
}

func toCard(item swipedomain.CandidateItem) onboardingdto.CardOutput {
	return onboardingdto.CardOutput{ID: item.ID, Title: item.Title, Blurb: item.Blurb, Image: item.Image}
}

func toOffers(offers []domain.Offer) []onboardingdto.OfferOutput {
	out := make([]onboardingdto.OfferOutput, 0, len(offers))
	for _, o := range offers {
		out = append(out, onboardingdto.OfferOutput{
			ID:          o.ID,
			Title:       o.Title,
			Description: o.Description,
			Interests:   append([]string{}, o.Interests...),
		})
	}
	return out
}
