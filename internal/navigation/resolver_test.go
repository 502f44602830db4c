package navigation_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/elliottking-cpu/beast-app-sub003/internal/navigation"
)

func TestResolveCurrentUnit_CacheHit(t *testing.T) {
	store := newFakeStore()
	store.units = groupAndRegions()

	cache := navigation.NewUnitCache(store, zap.NewNop())
	require.NoError(t, cache.Build(context.Background()))

	resolver := navigation.NewContextResolver(cache)

	unit, ok := resolver.ResolveCurrentUnit("yorkshire")
	require.True(t, ok)
	assert.Equal(t, "unit-york", unit.ID)
}

func TestResolveCurrentUnit_UnknownSlug(t *testing.T) {
	store := newFakeStore()
	store.units = groupAndRegions()

	cache := navigation.NewUnitCache(store, zap.NewNop())
	require.NoError(t, cache.Build(context.Background()))

	resolver := navigation.NewContextResolver(cache)

	_, ok := resolver.ResolveCurrentUnit("atlantis")
	assert.False(t, ok)
}

// Navigating between already-cached units is a pure context swap: after the
// initial build, repeated resolutions issue zero store calls of any kind.
func TestResolveCurrentUnit_ZeroStoreCallsBetweenCachedUnits(t *testing.T) {
	store := newFakeStore()
	store.units = groupAndRegions()

	cache := navigation.NewUnitCache(store, zap.NewNop())
	require.NoError(t, cache.Build(context.Background()))

	resolver := navigation.NewContextResolver(cache)

	for i := 0; i < 5; i++ {
		_, ok := resolver.ResolveCurrentUnit("yorkshire")
		require.True(t, ok)
		_, ok = resolver.ResolveCurrentUnit("kent")
		require.True(t, ok)
	}

	assert.Equal(t, 1, store.count("ListBusinessUnits"))
	assert.Equal(t, 0, store.count("ListChildUnits"))
	assert.Equal(t, 0, store.count("ListActiveDepartments"))
	assert.Equal(t, 0, store.count("ListActivePages"))
}

func TestResolveCurrentUnit_AcceptsUnsluggedInput(t *testing.T) {
	store := newFakeStore()
	store.units = groupAndRegions()

	cache := navigation.NewUnitCache(store, zap.NewNop())
	require.NoError(t, cache.Build(context.Background()))

	resolver := navigation.NewContextResolver(cache)

	unit, ok := resolver.ResolveCurrentUnit("North West Region")
	require.True(t, ok)
	assert.Equal(t, "unit-nw", unit.ID)
}
