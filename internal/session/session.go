// Package session holds per-login console state: the slug-addressable unit
// cache, the sidebar expansion state, and the unit the session is currently
// scoped to. Everything here is in-memory and dies with the session.
package session

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/elliottking-cpu/beast-app-sub003/internal/navigation"
	"github.com/elliottking-cpu/beast-app-sub003/internal/repository"
)

// Session is one login's console state.
type Session struct {
	ID        string
	Units     *navigation.UnitCache
	Expansion *navigation.ExpansionState

	mu          sync.Mutex
	currentUnit string
}

// SetCurrentUnit records the slug of the unit the session last resolved.
func (s *Session) SetCurrentUnit(slug string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentUnit = slug
}

// CurrentUnit returns the last resolved unit slug, empty before the first
// resolve.
func (s *Session) CurrentUnit() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentUnit
}

// Registry tracks live sessions by id and builds their unit caches over the
// shared store.
type Registry struct {
	store  repository.UnitsStore
	logger *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry(store repository.UnitsStore, logger *zap.Logger) *Registry {
	return &Registry{
		store:    store,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// GetOrCreate returns the session for id, creating one when id is empty or
// unknown. The returned session's ID is authoritative; callers echo it back
// to the client.
func (r *Registry) GetOrCreate(id string) *Session {
	if id != "" {
		r.mu.RLock()
		s, ok := r.sessions[id]
		r.mu.RUnlock()
		if ok {
			return s
		}
	}

	s := &Session{
		ID:        uuid.New().String(),
		Units:     navigation.NewUnitCache(r.store, r.logger),
		Expansion: navigation.NewExpansionState(),
	}

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s
}

// Delete drops a session. The expansion state goes with it, so the next
// login starts from the seeded defaults.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Len reports the live session count.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
