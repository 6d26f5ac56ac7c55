package out

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"kiosk/internal/modules/onboarding/domain"
	onboardingout "kiosk/internal/modules/onboarding/port/out"
	swipedomain "kiosk/internal/modules/swipe/domain"
	"kiosk/internal/platform/slug"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

// YAMLCatalogStore reads catalog.yaml on every Load so edits apply to the next
// session. Without a file it serves the embedded default catalog.
type YAMLCatalogStore struct {
	path string
}

func NewYAMLCatalogStore(path string) onboardingout.CatalogStore {
	return &YAMLCatalogStore{path: path}
}

func (s *YAMLCatalogStore) Load(_ context.Context) (domain.Catalog, error) {
	raw := defaultCatalog
	if s.path != "" {
		payload, err := os.ReadFile(s.path)
		switch {
		case err == nil:
			raw = payload
		case errors.Is(err, os.ErrNotExist):
		default:
			return domain.Catalog{}, fmt.Errorf("read catalog: %w", err)
		}
	}
	return DecodeCatalog(raw)
}

// DecodeCatalog parses and normalises a catalog document. Entries without an
// id get one derived from their title.
func DecodeCatalog(raw []byte) (domain.Catalog, error) {
	catalog := domain.Catalog{}
	if err := yaml.Unmarshal(raw, &catalog); err != nil {
		return domain.Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	for i := range catalog.Interests {
		if strings.TrimSpace(catalog.Interests[i].ID) == "" {
			catalog.Interests[i].ID = slug.Make(catalog.Interests[i].Title)
		}
	}
	for i := range catalog.Offers {
		if strings.TrimSpace(catalog.Offers[i].ID) == "" {
			catalog.Offers[i].ID = slug.Make(catalog.Offers[i].Title)
		}
	}
	if err := swipedomain.ValidateItems(catalog.Interests); err != nil {
		return domain.Catalog{}, fmt.Errorf("catalog interests: %w", err)
	}
	return catalog, nil
}
