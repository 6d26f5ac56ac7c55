package in_test

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	onboardingin "kiosk/internal/modules/onboarding/adapter/in"
	onboardingout "kiosk/internal/modules/onboarding/adapter/out"
	onboardingdto "kiosk/internal/modules/onboarding/dto"
	"kiosk/internal/modules/onboarding/service"
	"kiosk/internal/modules/onboarding/usecase"
	"kiosk/internal/platform/clock"
)

const window = 300 * time.Millisecond

type zeroRNG struct{}

func (zeroRNG) Intn(int) int { return 0 }

type fixedIDs struct{}

func (fixedIDs) New() string { return "sim-1" }

func newHandler(t *testing.T) (onboardingin.CLIHandler, *clock.ManualScheduler) {
	t.Helper()
	sched := clock.NewManualScheduler()
	catalog := onboardingout.NewYAMLCatalogStore(filepath.Join(t.TempDir(), "missing.yaml"))
	uc := usecase.NewInteractor(catalog, nil, clock.SystemClock{}, fixedIDs{}, service.Options{
		Scheduler:       sched,
		RNG:             zeroRNG{},
		ExitWindow:      window,
		ClaimPrizeLabel: "Special Offer",
	})
	return onboardingin.NewCLIHandler(uc), sched
}

func TestSimulateFullPass(t *testing.T) {
	t.Parallel()
	h, sched := newHandler(t)
	out, err := h.Simulate(context.Background(), onboardingdto.SimulateInput{
		Decisions: []string{"accept", "reject", "accept", "reject", "reject", "reject"},
		SkipAt:    -1,
		PlayGame:  true,
		ClaimID:   "museum-pass",
	}, func() { sched.Advance(window) })
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if len(out.Decisions) != 6 {
		t.Fatalf("expected six decisions, got %d", len(out.Decisions))
	}
	var feed []string
	for _, offer := range out.Feed {
		feed = append(feed, offer.ID)
	}
	if !reflect.DeepEqual(feed, []string{"surf-lesson", "tapas-crawl", "market-breakfast"}) {
		t.Fatalf("unexpected feed %v", feed)
	}
	if out.Game != "spin" {
		t.Fatalf("expected spin, got %q", out.Game)
	}
	if len(out.Rewards) != 2 || out.Rewards[0].PrizeLabel != "Free Coffee" || out.Rewards[1].PrizeLabel != "Special Offer" {
		t.Fatalf("unexpected rewards %+v", out.Rewards)
	}
	if out.Final.Screen != "feed" || out.Final.Reward.Visible {
		t.Fatalf("expected clean feed at the end, got %+v", out.Final)
	}
	if !reflect.DeepEqual(out.End.Selection, []string{"beach", "food"}) || out.End.GamesPlayed != 1 {
		t.Fatalf("unexpected end %+v", out.End)
	}
	if elapsed := sched.Elapsed(); elapsed != 6*window {
		t.Fatalf("expected six windows elapsed, got %s", elapsed)
	}
}

func TestSimulateSkipAllDiscardsSelection(t *testing.T) {
	t.Parallel()
	h, sched := newHandler(t)
	out, err := h.Simulate(context.Background(), onboardingdto.SimulateInput{
		Decisions: []string{"accept", "accept", "accept"},
		SkipAt:    2,
	}, func() { sched.Advance(window) })
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if len(out.Decisions) != 2 {
		t.Fatalf("expected two decisions before skip, got %d", len(out.Decisions))
	}
	if len(out.Feed) != 8 {
		t.Fatalf("empty selection should show every offer, got %d", len(out.Feed))
	}
	if !out.End.Skipped || len(out.End.Selection) != 0 {
		t.Fatalf("unexpected end %+v", out.End)
	}
}

func TestSimulateStopsMidPassWithoutSkip(t *testing.T) {
	t.Parallel()
	h, sched := newHandler(t)
	out, err := h.Simulate(context.Background(), onboardingdto.SimulateInput{
		Decisions: []string{"accept"},
		SkipAt:    -1,
	}, func() { sched.Advance(window) })
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if out.Final.Screen != "swipe" || out.Final.Cursor != 1 {
		t.Fatalf("expected swipe at cursor 1, got %+v", out.Final)
	}
	if out.Feed != nil {
		t.Fatalf("feed should be empty before the pass completes")
	}
}

func TestSimulateRejectsUnknownDecision(t *testing.T) {
	t.Parallel()
	h, sched := newHandler(t)
	_, err := h.Simulate(context.Background(), onboardingdto.SimulateInput{
		Decisions: []string{"maybe"},
		SkipAt:    -1,
	}, func() { sched.Advance(window) })
	if err == nil {
		t.Fatalf("unknown decision must fail")
	}
}
