package in

import (
	"context"

	onboardingdto "kiosk/internal/modules/onboarding/dto"
	onboardingin "kiosk/internal/modules/onboarding/port/in"
)

// TUIHandler is the surface the kiosk terminal UI drives. Every call is
// scoped to one session id handed out by Start.
type TUIHandler struct {
	usecase onboardingin.Usecase
}

func NewTUIHandler(usecase onboardingin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Start(ctx context.Context) (onboardingdto.SessionOutput, error) {
	return h.usecase.Start(ctx)
}

func (h TUIHandler) StartExperience(ctx context.Context, id string) (onboardingdto.SnapshotOutput, error) {
	return h.usecase.StartExperience(ctx, id)
}

func (h TUIHandler) Drag(ctx context.Context, id string, offset float64) (onboardingdto.SnapshotOutput, error) {
	return h.usecase.DragUpdate(ctx, id, offset)
}

func (h TUIHandler) Release(ctx context.Context, id string, offset float64) (onboardingdto.DecisionOutput, error) {
	return h.usecase.Release(ctx, id, offset)
}

func (h TUIHandler) Decide(ctx context.Context, id, decision string) (onboardingdto.DecisionOutput, error) {
	return h.usecase.Decide(ctx, id, decision)
}

func (h TUIHandler) SkipAll(ctx context.Context, id string) (onboardingdto.SnapshotOutput, error) {
	return h.usecase.SkipAll(ctx, id)
}

func (h TUIHandler) PlayGame(ctx context.Context, id string) (onboardingdto.GameOutput, error) {
	return h.usecase.PlayGame(ctx, id)
}

func (h TUIHandler) WinPrize(ctx context.Context, id, prizeLabel, offerID string) (onboardingdto.SnapshotOutput, error) {
	return h.usecase.WinPrize(ctx, id, prizeLabel, offerID)
}

func (h TUIHandler) ClaimOffer(ctx context.Context, id, offerID string) (onboardingdto.SnapshotOutput, error) {
	return h.usecase.ClaimOffer(ctx, id, offerID)
}

func (h TUIHandler) CloseGame(ctx context.Context, id string) (onboardingdto.SnapshotOutput, error) {
	return h.usecase.CloseGame(ctx, id)
}

func (h TUIHandler) CloseReward(ctx context.Context, id string) (onboardingdto.SnapshotOutput, error) {
	return h.usecase.CloseReward(ctx, id)
}

func (h TUIHandler) Restart(ctx context.Context, id string) (onboardingdto.SnapshotOutput, error) {
	return h.usecase.Restart(ctx, id)
}

func (h TUIHandler) Snapshot(ctx context.Context, id string) (onboardingdto.SnapshotOutput, error) {
	return h.usecase.Snapshot(ctx, id)
}

func (h TUIHandler) Feed(ctx context.Context, id string) ([]onboardingdto.OfferOutput, error) {
	return h.usecase.Feed(ctx, id)
}

func (h TUIHandler) Prizes(ctx context.Context) ([]string, error) {
	catalog, err := h.usecase.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Prizes, nil
}

func (h TUIHandler) End(ctx context.Context, id string) (onboardingdto.EndOutput, error) {
	return h.usecase.End(ctx, id)
}
