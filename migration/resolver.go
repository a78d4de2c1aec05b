package migration

import (
	"context"
)

type resolveKey struct {
	kind     IdentityKind
	legacyId int
}

// Resolver memoizes legacy-id to target-id lookups for one run. It is plain
// mutable state owned by the single-threaded walker; construct one per run
// and pass it down, no package-level cache.
type Resolver struct {
	store TargetStore
	cache map[resolveKey]int
}

func NewResolver(store TargetStore) *Resolver {
	return &Resolver{
		store: store,
		cache: make(map[resolveKey]int),
	}
}

// Resolve maps (kind, legacyId) to a target id. Misses are not cached: a
// later EnsureWine for the same id must still be able to fill the slot.
func (r *Resolver) Resolve(ctx context.Context, kind IdentityKind, legacyId int) (int, bool, error) {
	key := resolveKey{kind: kind, legacyId: legacyId}
	if id, ok := r.cache[key]; ok {
		return id, true, nil
	}
	id, ok, err := r.store.LookupByLegacyId(ctx, kind, legacyId)
	if err != nil {
		return 0, false, err
	}
	if !ok {
		return 0, false, nil
	}
	r.cache[key] = id
	return id, true, nil
}

// EnsureWine resolves a legacy wine id, creating a placeholder wine when no
// counterpart exists. The new id is cached so one legacy wine id yields
// exactly one placeholder per run. Wine is the only kind with this fallback;
// formats and vintages are never auto-created.
func (r *Resolver) EnsureWine(ctx context.Context, legacyWineId int) (int, error) {
	id, ok, err := r.Resolve(ctx, IdentityWine, legacyWineId)
	if err != nil {
		return 0, err
	}
	if ok {
		return id, nil
	}
	id, err = r.store.CreatePlaceholderWine(ctx, legacyWineId)
	if err != nil {
		return 0, err
	}
	r.cache[resolveKey{kind: IdentityWine, legacyId: legacyWineId}] = id
	return id, nil
}
