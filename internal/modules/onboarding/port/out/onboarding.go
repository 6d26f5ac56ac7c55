package out

import (
	"context"

	"kiosk/internal/modules/onboarding/domain"
)

type CatalogStore interface {
	Load(ctx context.Context) (domain.Catalog, error)
}

type HistoryStore interface {
	Record(ctx context.Context, record domain.SessionRecord) error
	List(ctx context.Context, limit int) ([]domain.SessionRecord, error)
}
