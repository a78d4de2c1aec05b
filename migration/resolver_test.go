package migration

import (
	"context"
	"testing"
)

func TestResolveMemoizesHits(t *testing.T) {
	store := newFakeStore()
	store.cases[10] = 110
	r := NewResolver(store)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		id, ok, err := r.Resolve(ctx, IdentityCase, 10)
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if !ok || id != 110 {
			t.Fatalf("expected (110, true); got (%d, %v)", id, ok)
		}
	}
	if store.lookups != 1 {
		t.Errorf("expected a single store lookup for repeated resolves; got %d", store.lookups)
	}
}

func TestResolveDoesNotCacheMisses(t *testing.T) {
	store := newFakeStore()
	r := NewResolver(store)
	ctx := context.Background()

	if _, ok, err := r.Resolve(ctx, IdentityWine, 7); err != nil || ok {
		t.Fatalf("expected miss; got ok=%v err=%v", ok, err)
	}

	// The id appears between resolves (e.g. EnsureWine on another path). A
	// cached miss would hide it.
	store.wines[7] = 70
	id, ok, err := r.Resolve(ctx, IdentityWine, 7)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !ok || id != 70 {
		t.Errorf("expected the later hit to be visible; got (%d, %v)", id, ok)
	}
}

func TestResolveKeysByKind(t *testing.T) {
	store := newFakeStore()
	store.cases[5] = 105
	store.wines[5] = 205
	r := NewResolver(store)
	ctx := context.Background()

	caseId, _, err := r.Resolve(ctx, IdentityCase, 5)
	if err != nil {
		t.Fatalf("Resolve case: %v", err)
	}
	wineId, _, err := r.Resolve(ctx, IdentityWine, 5)
	if err != nil {
		t.Fatalf("Resolve wine: %v", err)
	}
	if caseId != 105 || wineId != 205 {
		t.Errorf("same legacy id under different kinds must not collide: case=%d wine=%d", caseId, wineId)
	}
}

func TestEnsureWineCreatesPlaceholderOnce(t *testing.T) {
	store := newFakeStore()
	r := NewResolver(store)
	ctx := context.Background()

	first, err := r.EnsureWine(ctx, 999)
	if err != nil {
		t.Fatalf("EnsureWine: %v", err)
	}
	second, err := r.EnsureWine(ctx, 999)
	if err != nil {
		t.Fatalf("EnsureWine: %v", err)
	}
	if first != second {
		t.Errorf("expected the same placeholder id; got %d then %d", first, second)
	}
	if len(store.placeholderWines) != 1 {
		t.Errorf("expected one placeholder created; got %d", len(store.placeholderWines))
	}
}

func TestEnsureWinePrefersExistingMapping(t *testing.T) {
	store := newFakeStore()
	store.wines[7] = 70
	r := NewResolver(store)

	id, err := r.EnsureWine(context.Background(), 7)
	if err != nil {
		t.Fatalf("EnsureWine: %v", err)
	}
	if id != 70 {
		t.Errorf("expected mapped id 70; got %d", id)
	}
	if len(store.placeholderWines) != 0 {
		t.Errorf("expected no placeholder for a mapped wine; got %v", store.placeholderWines)
	}
}
