package navigation

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/elliottking-cpu/beast-app-sub003/internal/domain"
	"github.com/elliottking-cpu/beast-app-sub003/internal/repository"
	"github.com/elliottking-cpu/beast-app-sub003/internal/slug"
)

// UnitCache is the slug-addressable map of business units for one console
// session. Build performs the single full scan; Lookup is synchronous and
// never touches the store. Two units whose names slugify identically are a
// known limitation: which one Lookup returns is undefined.
type UnitCache struct {
	store  repository.UnitsStore
	logger *zap.Logger

	mu    sync.RWMutex
	units map[string]domain.BusinessUnit
	built bool
}

// NewUnitCache creates an empty, unbuilt cache.
func NewUnitCache(store repository.UnitsStore, logger *zap.Logger) *UnitCache {
	return &UnitCache{
		store:  store,
		logger: logger,
		units:  make(map[string]domain.BusinessUnit),
	}
}

// Build scans every business unit once and indexes them by slug. Callers
// run it once per session; re-invocation is allowed but repeats the full
// scan. On failure the cache stays empty and every Lookup reports not-found
// until a retry succeeds.
func (c *UnitCache) Build(ctx context.Context) error {
	units, err := c.store.ListBusinessUnits(ctx)
	if err != nil {
		return fmt.Errorf("failed to build unit cache: %w", err)
	}

	indexed := make(map[string]domain.BusinessUnit, len(units))
	for _, unit := range units {
		indexed[slug.ToSlug(unit.Name)] = unit
	}

	c.mu.Lock()
	c.units = indexed
	c.built = true
	c.mu.Unlock()

	c.logger.Info("Built business unit cache", zap.Int("unit_count", len(indexed)))
	return nil
}

// Lookup resolves a slug from the in-memory index. Returns false before a
// successful Build and for unknown slugs.
func (c *UnitCache) Lookup(unitSlug string) (domain.BusinessUnit, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	unit, ok := c.units[unitSlug]
	return unit, ok
}

// Built reports whether a full scan has completed.
func (c *UnitCache) Built() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.built
}

// Reset empties the cache (logout lifecycle).
func (c *UnitCache) Reset() {
	c.mu.Lock()
	c.units = make(map[string]domain.BusinessUnit)
	c.built = false
	c.mu.Unlock()
}
