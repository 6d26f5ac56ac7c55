package in

import (
	"context"

	"kiosk/internal/modules/onboarding/dto"
)

type Usecase interface {
	Start(ctx context.Context) (dto.SessionOutput, error)
	StartExperience(ctx context.Context, sessionID string) (dto.SnapshotOutput, error)
	DragUpdate(ctx context.Context, sessionID string, offset float64) (dto.SnapshotOutput, error)
	Release(ctx context.Context, sessionID string, offset float64) (dto.DecisionOutput, error)
	Decide(ctx context.Context, sessionID, decision string) (dto.DecisionOutput, error)
	SkipAll(ctx context.Context, sessionID string) (dto.SnapshotOutput, error)
	PlayGame(ctx context.Context, sessionID string) (dto.GameOutput, error)
	WinPrize(ctx context.Context, sessionID, prizeLabel, offerID string) (dto.SnapshotOutput, error)
	ClaimOffer(ctx context.Context, sessionID, offerID string) (dto.SnapshotOutput, error)
	CloseGame(ctx context.Context, sessionID string) (dto.SnapshotOutput, error)
	CloseReward(ctx context.Context, sessionID string) (dto.SnapshotOutput, error)
	Restart(ctx context.Context, sessionID string) (dto.SnapshotOutput, error)
	Snapshot(ctx context.Context, sessionID string) (dto.SnapshotOutput, error)
	Feed(ctx context.Context, sessionID string) ([]dto.OfferOutput, error)
	End(ctx context.Context, sessionID string) (dto.EndOutput, error)
	History(ctx context.Context, limit int) ([]dto.HistoryOutput, error)
	Catalog(ctx context.Context) (dto.CatalogOutput, error)
}
