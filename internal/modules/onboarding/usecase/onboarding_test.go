package usecase_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"kiosk/internal/modules/onboarding/domain"
	"kiosk/internal/modules/onboarding/service"
	"kiosk/internal/modules/onboarding/usecase"
	swipedomain "kiosk/internal/modules/swipe/domain"
	"kiosk/internal/platform/clock"
	apperrors "kiosk/internal/platform/errors"
)

const window = 300 * time.Millisecond

type fakeClock struct {
	values []time.Time
	idx    int
}

func (f *fakeClock) Now() time.Time {
	if f.idx >= len(f.values) {
		return f.values[len(f.values)-1]
	}
	v := f.values[f.idx]
	f.idx++
	return v
}

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return "kiosk-" + string(rune('0'+s.n))
}

type fixedRNG struct{ val int }

func (r fixedRNG) Intn(n int) int { return r.val % n }

type memCatalog struct {
	catalog domain.Catalog
	err     error
}

func (m memCatalog) Load(context.Context) (domain.Catalog, error) { return m.catalog, m.err }

type memHistory struct {
	records []domain.SessionRecord
}

func (m *memHistory) Record(_ context.Context, r domain.SessionRecord) error {
	m.records = append(m.records, r)
	return nil
}

func (m *memHistory) List(_ context.Context, limit int) ([]domain.SessionRecord, error) {
	out := []domain.SessionRecord{}
	for i := len(m.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.records[i])
	}
	return out, nil
}

func testCatalog() domain.Catalog {
	ids := []string{"beach", "history", "food", "nightlife", "nature", "shopping"}
	items := make([]swipedomain.CandidateItem, len(ids))
	for i, id := range ids {
		items[i] = swipedomain.CandidateItem{ID: id, Title: id}
	}
	return domain.Catalog{
		Interests: items,
		Offers: []domain.Offer{
			{ID: "surf", Interests: []string{"beach"}},
			{ID: "museum", Interests: []string{"history"}},
			{ID: "tapas", Interests: []string{"food", "nightlife"}},
		},
		Prizes: []string{"Free Coffee"},
	}
}

func TestKioskFlowRecordsHistory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sched := clock.NewManualScheduler()
	history := &memHistory{}
	clk := &fakeClock{values: []time.Time{
		time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 1, 9, 4, 0, 0, time.UTC),
	}}
	uc := usecase.NewInteractor(memCatalog{catalog: testCatalog()}, history, clk, &seqID{}, service.Options{
		Scheduler:       sched,
		RNG:             fixedRNG{val: 1},
		ExitWindow:      window,
		ClaimPrizeLabel: "Special Offer",
	})

	started, err := uc.Start(ctx)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	id := started.SessionID
	if started.Snapshot.Screen != "hero" {
		t.Fatalf("expected hero, got %s", started.Snapshot.Screen)
	}
	if _, err := uc.StartExperience(ctx, id); err != nil {
		t.Fatalf("start experience: %v", err)
	}
	for _, d := range []string{"accept", "reject", "accept", "accept", "reject", "reject"} {
		out, err := uc.Decide(ctx, id, d)
		if err != nil {
			t.Fatalf("decide %s: %v", d, err)
		}
		if out.Decision != d {
			t.Fatalf("expected %s, got %s", d, out.Decision)
		}
		sched.Advance(window)
	}
	snap, err := uc.Snapshot(ctx, id)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.Screen != "feed" || !reflect.DeepEqual(snap.Selection, []string{"beach", "food", "nightlife"}) {
		t.Fatalf("unexpected feed snapshot %+v", snap)
	}

	feed, err := uc.Feed(ctx, id)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(feed) != 2 || feed[0].ID != "surf" || feed[1].ID != "tapas" {
		t.Fatalf("unexpected personalised feed %+v", feed)
	}

	game, err := uc.PlayGame(ctx, id)
	if err != nil || game.Game != "scratch" {
		t.Fatalf("expected scratch, got %+v %v", game, err)
	}
	won, err := uc.WinPrize(ctx, id, "Free Coffee", "tapas")
	if err != nil {
		t.Fatalf("win: %v", err)
	}
	if won.Game != "none" || !won.Reward.Visible {
		t.Fatalf("expected reward overlay only, got %+v", won)
	}

	ended, err := uc.End(ctx, id)
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	if ended.Duration != 4*time.Minute || ended.GamesPlayed != 1 || ended.PrizeLabel != "Free Coffee" || ended.Passes != 1 {
		t.Fatalf("unexpected end output %+v", ended)
	}
	if len(history.records) != 1 || !reflect.DeepEqual(history.records[0].Selection, []string{"beach", "food", "nightlife"}) {
		t.Fatalf("history not recorded: %+v", history.records)
	}
	if _, err := uc.Snapshot(ctx, id); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("ended session should be gone, got %v", err)
	}
	listed, err := uc.History(ctx, 5)
	if err != nil || len(listed) != 1 || listed[0].SessionID != id {
		t.Fatalf("unexpected history listing %+v %v", listed, err)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sched := clock.NewManualScheduler()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}}
	uc := usecase.NewInteractor(memCatalog{catalog: testCatalog()}, nil, clk, &seqID{}, service.Options{
		Scheduler: sched, RNG: fixedRNG{}, ExitWindow: window, ClaimPrizeLabel: "Special Offer",
	})
	a, err := uc.Start(ctx)
	if err != nil {
		t.Fatalf("start a: %v", err)
	}
	b, err := uc.Start(ctx)
	if err != nil {
		t.Fatalf("start b: %v", err)
	}
	if a.SessionID == b.SessionID {
		t.Fatalf("session ids must differ")
	}
	_, _ = uc.StartExperience(ctx, a.SessionID)
	_, _ = uc.StartExperience(ctx, b.SessionID)
	_, _ = uc.Decide(ctx, a.SessionID, "accept")
	sched.Advance(window)
	if _, err := uc.SkipAll(ctx, b.SessionID); err != nil {
		t.Fatalf("skip b: %v", err)
	}
	snapA, _ := uc.Snapshot(ctx, a.SessionID)
	snapB, _ := uc.Snapshot(ctx, b.SessionID)
	if snapA.Screen != "swipe" || snapA.Cursor != 1 || !reflect.DeepEqual(snapA.Accepted, []string{"beach"}) {
		t.Fatalf("session a disturbed: %+v", snapA)
	}
	if snapB.Screen != "feed" || len(snapB.Selection) != 0 {
		t.Fatalf("session b should be on an empty feed: %+v", snapB)
	}
	ended, err := uc.End(ctx, b.SessionID)
	if err != nil || !ended.Skipped {
		t.Fatalf("expected skipped end without history store, got %+v %v", ended, err)
	}
}

func TestEndDropsPendingWindow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sched := clock.NewManualScheduler()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}}
	history := &memHistory{}
	uc := usecase.NewInteractor(memCatalog{catalog: testCatalog()}, history, clk, &seqID{}, service.Options{
		Scheduler: sched, RNG: fixedRNG{}, ExitWindow: window, ClaimPrizeLabel: "Special Offer",
	})
	s, _ := uc.Start(ctx)
	_, _ = uc.StartExperience(ctx, s.SessionID)
	if _, err := uc.Decide(ctx, s.SessionID, "accept"); err != nil {
		t.Fatalf("decide: %v", err)
	}
	if _, err := uc.End(ctx, s.SessionID); err != nil {
		t.Fatalf("end: %v", err)
	}
	if sched.Pending() != 0 {
		t.Fatalf("end should cancel the exit window")
	}
	sched.Advance(window)
	if len(history.records[0].Selection) != 0 || history.records[0].Passes != 0 {
		t.Fatalf("torn-down decision leaked into history: %+v", history.records[0])
	}
}

func TestUsecaseErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}}
	opts := service.Options{Scheduler: clock.NewManualScheduler(), RNG: fixedRNG{}, ExitWindow: window, ClaimPrizeLabel: "x"}

	broken := usecase.NewInteractor(memCatalog{err: errors.New("disk gone")}, nil, clk, &seqID{}, opts)
	if _, err := broken.Start(ctx); err == nil {
		t.Fatalf("catalog failure must surface")
	}

	uc := usecase.NewInteractor(memCatalog{catalog: testCatalog()}, &memHistory{}, clk, &seqID{}, opts)
	if _, err := uc.Decide(ctx, "missing", "accept"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	s, _ := uc.Start(ctx)
	if _, err := uc.Decide(ctx, s.SessionID, "sideways"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := uc.Feed(ctx, s.SessionID); !errors.Is(err, apperrors.ErrInvalidStateTransition) {
		t.Fatalf("feed in hero should fail, got %v", err)
	}
	if _, err := uc.PlayGame(ctx, s.SessionID); !errors.Is(err, apperrors.ErrInvalidStateTransition) {
		t.Fatalf("play in hero should fail, got %v", err)
	}
	if _, err := uc.History(ctx, 0); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("zero limit should fail, got %v", err)
	}
	if _, err := uc.End(ctx, "missing"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found on end, got %v", err)
	}
}

func TestClaimOfferRecordsFixedLabel(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}}
	history := &memHistory{}
	uc := usecase.NewInteractor(memCatalog{catalog: testCatalog()}, history, clk, &seqID{}, service.Options{
		Scheduler: clock.NewManualScheduler(), RNG: fixedRNG{}, ExitWindow: window, ClaimPrizeLabel: "Special Offer",
	})
	s, _ := uc.Start(ctx)
	_, _ = uc.StartExperience(ctx, s.SessionID)
	_, _ = uc.SkipAll(ctx, s.SessionID)
	snap, err := uc.ClaimOffer(ctx, s.SessionID, "museum")
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if snap.Reward.PrizeLabel != "Special Offer" || snap.Reward.OfferID != "museum" {
		t.Fatalf("unexpected reward %+v", snap.Reward)
	}
	if _, err := uc.CloseReward(ctx, s.SessionID); err != nil {
		t.Fatalf("close reward: %v", err)
	}
	if _, err := uc.End(ctx, s.SessionID); err != nil {
		t.Fatalf("end: %v", err)
	}
	if history.records[0].OfferID != "museum" || history.records[0].PrizeLabel != "Special Offer" {
		t.Fatalf("offer not recorded: %+v", history.records[0])
	}
}

func TestCatalogListsInterestsOffersAndPrizes(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Now()}}
	uc := usecase.NewInteractor(memCatalog{catalog: testCatalog()}, nil, clk, &seqID{}, service.Options{
		Scheduler: clock.NewManualScheduler(), RNG: fixedRNG{}, ExitWindow: window, ClaimPrizeLabel: "x",
	})
	out, err := uc.Catalog(context.Background())
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if len(out.Interests) != 6 || len(out.Offers) != 3 || len(out.Prizes) != 1 {
		t.Fatalf("unexpected catalog %+v", out)
	}
}

func TestSkippedReflectsTheLastPass(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sched := clock.NewManualScheduler()
	history := &memHistory{}
	clk := &fakeClock{values: []time.Time{time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}}
	uc := usecase.NewInteractor(memCatalog{catalog: testCatalog()}, history, clk, &seqID{}, service.Options{
		Scheduler:       sched,
		RNG:             fixedRNG{},
		ExitWindow:      window,
		ClaimPrizeLabel: "Special Offer",
	})
	started, err := uc.Start(ctx)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	id := started.SessionID
	if _, err := uc.StartExperience(ctx, id); err != nil {
		t.Fatalf("start experience: %v", err)
	}
	if _, err := uc.SkipAll(ctx, id); err != nil {
		t.Fatalf("skip all: %v", err)
	}
	if _, err := uc.Restart(ctx, id); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if _, err := uc.StartExperience(ctx, id); err != nil {
		t.Fatalf("second start experience: %v", err)
	}
	for i := 0; i < 6; i++ {
		if _, err := uc.Decide(ctx, id, "accept"); err != nil {
			t.Fatalf("decide %d: %v", i, err)
		}
		sched.Advance(window)
	}

	ended, err := uc.End(ctx, id)
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	if ended.Skipped || ended.Passes != 2 || len(ended.Selection) != 6 {
		t.Fatalf("expected a completed second pass, got %+v", ended)
	}
	if len(history.records) != 1 || history.records[0].Skipped {
		t.Fatalf("history row must match the last pass: %+v", history.records)
	}
}
