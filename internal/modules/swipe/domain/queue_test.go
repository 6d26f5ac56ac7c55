package domain_test

import (
	"errors"
	"math"
	"testing"

	"kiosk/internal/modules/swipe/domain"
	apperrors "kiosk/internal/platform/errors"
)

func items(ids ...string) []domain.CandidateItem {
	out := make([]domain.CandidateItem, len(ids))
	for i, id := range ids {
		out[i] = domain.CandidateItem{ID: id, Title: id}
	}
	return out
}

func TestCardQueueTraversal(t *testing.T) {
	t.Parallel()
	q := domain.NewCardQueue(items("beach", "history", "food"))
	cur, ok := q.Current()
	if !ok || cur.ID != "beach" {
		t.Fatalf("expected beach first, got %+v", cur)
	}
	next, ok := q.Lookahead(2)
	if !ok || next.ID != "food" {
		t.Fatalf("expected food two ahead, got %+v", next)
	}
	if _, ok := q.Lookahead(3); ok {
		t.Fatalf("lookahead past end must be empty")
	}
	if _, ok := q.Lookahead(-1); ok {
		t.Fatalf("negative lookahead must be empty")
	}
	if q.Cursor() != 0 {
		t.Fatalf("lookahead must not move cursor")
	}
	q.Advance()
	q.Advance()
	cur, _ = q.Current()
	if cur.ID != "food" || q.IsExhausted() {
		t.Fatalf("expected food and not exhausted, got %+v", cur)
	}
	q.Advance()
	if !q.IsExhausted() {
		t.Fatalf("queue should be exhausted")
	}
	if _, ok := q.Current(); ok {
		t.Fatalf("exhausted queue has no current item")
	}
}

func TestCardQueueAdvancePastEndIsIdempotent(t *testing.T) {
	t.Parallel()
	q := domain.NewCardQueue(items("a"))
	q.Advance()
	before := q.Cursor()
	for i := 0; i < 5; i++ {
		q.Advance()
	}
	if q.Cursor() != before || q.Cursor() != q.Len() {
		t.Fatalf("cursor moved past end: %d", q.Cursor())
	}
}

func TestCardQueueOwnsItsItems(t *testing.T) {
	t.Parallel()
	src := items("a", "b")
	q := domain.NewCardQueue(src)
	src[0].ID = "mutated"
	cur, _ := q.Current()
	if cur.ID != "a" {
		t.Fatalf("queue must not alias caller slice, got %s", cur.ID)
	}
}

func TestValidateItems(t *testing.T) {
	t.Parallel()
	if err := domain.ValidateItems(nil); !errors.Is(err, apperrors.ErrNoCandidates) {
		t.Fatalf("expected no candidates, got %v", err)
	}
	if err := domain.ValidateItems(items("a", "a")); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected duplicate id to fail, got %v", err)
	}
	if err := domain.ValidateItems(items("a", " ")); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected blank id to fail, got %v", err)
	}
	if err := domain.ValidateItems(items("a", "b")); err != nil {
		t.Fatalf("valid items rejected: %v", err)
	}
}

func TestLookaheadHugeOffsetIsEmpty(t *testing.T) {
	t.Parallel()
	q := domain.NewCardQueue(items("a", "b"))
	q.Advance()
	for _, n := range []int{math.MaxInt, math.MaxInt - 1, 2, 1} {
		if _, ok := q.Lookahead(n); ok {
			t.Fatalf("lookahead %d past the end must be empty", n)
		}
	}
	if cur, ok := q.Lookahead(0); !ok || cur.ID != "b" {
		t.Fatalf("expected b under the cursor, got %+v", cur)
	}
	q.Advance()
	if _, ok := q.Lookahead(math.MaxInt); ok {
		t.Fatalf("exhausted queue must have no lookahead")
	}
}
