package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/elliottking-cpu/beast-app-sub003/internal/domain"
	"github.com/elliottking-cpu/beast-app-sub003/internal/navigation"
	"github.com/elliottking-cpu/beast-app-sub003/internal/session"
)

// SessionHeader carries the console session id. The server echoes the
// authoritative id on every response so the first request establishes it.
const SessionHeader = "X-Session-Id"

// NavigationHandler serves unit resolution, tree loads, and the sidebar
// expansion state.
type NavigationHandler struct {
	loader   *navigation.HierarchyLoader
	sessions *session.Registry
	logger   *zap.Logger
}

func NewNavigationHandler(loader *navigation.HierarchyLoader, sessions *session.Registry, logger *zap.Logger) *NavigationHandler {
	return &NavigationHandler{loader: loader, sessions: sessions, logger: logger}
}

// session resolves the request's session and echoes its id.
func (h *NavigationHandler) session(w http.ResponseWriter, r *http.Request) *session.Session {
	s := h.sessions.GetOrCreate(r.Header.Get(SessionHeader))
	w.Header().Set(SessionHeader, s.ID)
	return s
}

// ensureCache lazily builds the session's unit cache on first use.
func (h *NavigationHandler) ensureCache(w http.ResponseWriter, r *http.Request, s *session.Session) bool {
	if s.Units.Built() {
		return true
	}
	if err := s.Units.Build(r.Context()); err != nil {
		h.logger.Error("Failed to build unit cache", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to load business units"))
		return false
	}
	return true
}

type resolveResult struct {
	Unit      domain.BusinessUnit `json:"unit"`
	SessionID string              `json:"session_id"`
}

// GET /api/v1/navigation/resolve?slug=<unit-slug>
func (h *NavigationHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	unitSlug := r.URL.Query().Get("slug")
	if unitSlug == "" {
		writeJSON(w, http.StatusBadRequest, Fail("slug is required"))
		return
	}

	s := h.session(w, r)
	if !h.ensureCache(w, r, s) {
		return
	}

	resolver := navigation.NewContextResolver(s.Units)
	unit, ok := resolver.ResolveCurrentUnit(unitSlug)
	if !ok {
		writeJSON(w, http.StatusNotFound, Fail("unknown business unit"))
		return
	}

	s.SetCurrentUnit(unitSlug)
	writeJSON(w, http.StatusOK, Ok(resolveResult{Unit: unit, SessionID: s.ID}))
}

type treeResult struct {
	Tree      *navigation.UnitTree `json:"tree"`
	Expansion map[string]bool      `json:"expansion"`
}

// GET /api/v1/navigation/tree?slug=<unit-slug>
func (h *NavigationHandler) Tree(w http.ResponseWriter, r *http.Request) {
	unitSlug := r.URL.Query().Get("slug")
	if unitSlug == "" {
		writeJSON(w, http.StatusBadRequest, Fail("slug is required"))
		return
	}

	s := h.session(w, r)
	if !h.ensureCache(w, r, s) {
		return
	}

	resolver := navigation.NewContextResolver(s.Units)
	unit, ok := resolver.ResolveCurrentUnit(unitSlug)
	if !ok {
		writeJSON(w, http.StatusNotFound, Fail("unknown business unit"))
		return
	}

	tree, err := h.loader.LoadFullTree(r.Context(), unit)
	if err != nil {
		h.logger.Error("Failed to load unit tree",
			zap.String("unit_id", unit.ID),
			zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to load unit tree"))
		return
	}

	s.SetCurrentUnit(unitSlug)
	writeJSON(w, http.StatusOK, Ok(treeResult{Tree: tree, Expansion: s.Expansion.Snapshot()}))
}

type toggleRequest struct {
	Key string `json:"key"`
}

type toggleResult struct {
	Key      string `json:"key"`
	Expanded bool   `json:"expanded"`
}

// POST /api/v1/navigation/expansion/toggle
func (h *NavigationHandler) ToggleExpansion(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := readBodyJSON(r, 4096, &req); err != nil || req.Key == "" {
		writeJSON(w, http.StatusBadRequest, Fail("key is required"))
		return
	}

	s := h.session(w, r)
	expanded := s.Expansion.Toggle(req.Key)
	writeJSON(w, http.StatusOK, Ok(toggleResult{Key: req.Key, Expanded: expanded}))
}

// DELETE /api/v1/session
//
// Logout drops the session outright: the unit cache and expansion state go
// with it, so the next login rebuilds from the seeded defaults.
func (h *NavigationHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get(SessionHeader)
	if id == "" {
		writeJSON(w, http.StatusBadRequest, Fail("session id is required"))
		return
	}

	h.sessions.Delete(id)
	writeJSON(w, http.StatusOK, Ok[any](nil))
}
