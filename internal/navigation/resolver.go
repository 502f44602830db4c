package navigation

import (
	"github.com/elliottking-cpu/beast-app-sub003/internal/domain"
	"github.com/elliottking-cpu/beast-app-sub003/internal/slug"
)

// ContextResolver swaps the "current unit" pointer on route changes. It
// answers purely from the UnitCache: navigating between units whose trees
// are already loaded must issue zero store calls, which is what separates a
// navigation (cheap context swap) from the initial load (tree build).
type ContextResolver struct {
	cache *UnitCache
}

// NewContextResolver creates a resolver over a session's unit cache.
func NewContextResolver(cache *UnitCache) *ContextResolver {
	return &ContextResolver{cache: cache}
}

// ResolveCurrentUnit resolves the unit a route slug addresses. The input is
// re-slugged first, a no-op for well-formed route slugs.
func (r *ContextResolver) ResolveCurrentUnit(slugFromRoute string) (domain.BusinessUnit, bool) {
	return r.cache.Lookup(slug.ToSlug(slugFromRoute))
}
