package out_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	onboardingoutadapter "kiosk/internal/modules/onboarding/adapter/out"
	apperrors "kiosk/internal/platform/errors"
)

func TestDefaultCatalogHasReferenceInterests(t *testing.T) {
	t.Parallel()
	store := onboardingoutadapter.NewYAMLCatalogStore(filepath.Join(t.TempDir(), "missing.yaml"))
	catalog, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load default catalog: %v", err)
	}
	want := []string{"beach", "history", "food", "nightlife", "nature", "shopping"}
	if len(catalog.Interests) != len(want) {
		t.Fatalf("expected %d interests, got %d", len(want), len(catalog.Interests))
	}
	for i, id := range want {
		if catalog.Interests[i].ID != id {
			t.Fatalf("interest %d: expected %s, got %s", i, id, catalog.Interests[i].ID)
		}
	}
	if len(catalog.Offers) == 0 || len(catalog.Prizes) == 0 {
		t.Fatalf("default catalog should carry offers and prizes")
	}
}

func TestCatalogFileDerivesMissingIDs(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := `interests:
  - title: Wine & Dine
  - id: art
    title: Art
offers:
  - title: Gallery Night
    interests: [art]
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	catalog, err := onboardingoutadapter.NewYAMLCatalogStore(path).Load(context.Background())
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if catalog.Interests[0].ID != "wine-and-dine" {
		t.Fatalf("expected slug id, got %q", catalog.Interests[0].ID)
	}
	if catalog.Offers[0].ID != "gallery-night" {
		t.Fatalf("expected slug offer id, got %q", catalog.Offers[0].ID)
	}
}

func TestDecodeCatalogRejectsBadInterests(t *testing.T) {
	t.Parallel()
	if _, err := onboardingoutadapter.DecodeCatalog([]byte("interests: []\n")); !errors.Is(err, apperrors.ErrNoCandidates) {
		t.Fatalf("expected no candidates, got %v", err)
	}
	dup := "interests:\n  - id: a\n  - id: a\n"
	if _, err := onboardingoutadapter.DecodeCatalog([]byte(dup)); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected duplicate ids to fail, got %v", err)
	}
	if _, err := onboardingoutadapter.DecodeCatalog([]byte("interests: [")); err == nil {
		t.Fatalf("malformed yaml must fail")
	}
}
