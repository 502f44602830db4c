package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/elliottking-cpu/beast-app-sub003/internal/domain"
	"github.com/elliottking-cpu/beast-app-sub003/internal/navigation"
	"github.com/elliottking-cpu/beast-app-sub003/internal/session"
)

type stubUnitsStore struct {
	units []domain.BusinessUnit
}

func (s *stubUnitsStore) ListBusinessUnits(context.Context) ([]domain.BusinessUnit, error) {
	return s.units, nil
}

func (s *stubUnitsStore) ListChildUnits(context.Context, string) ([]domain.BusinessUnit, error) {
	return nil, nil
}

func newRegistry() *session.Registry {
	store := &stubUnitsStore{units: []domain.BusinessUnit{
		{ID: "unit-york", Name: "Yorkshire", UnitType: domain.UnitTypeRegional},
	}}
	return session.NewRegistry(store, zap.NewNop())
}

func TestRegistry_GetOrCreateRoundTrip(t *testing.T) {
	registry := newRegistry()

	created := registry.GetOrCreate("")
	require.NotEmpty(t, created.ID)

	fetched := registry.GetOrCreate(created.ID)
	assert.Same(t, created, fetched)
	assert.Equal(t, 1, registry.Len())
}

func TestRegistry_UnknownIDCreatesFresh(t *testing.T) {
	registry := newRegistry()

	s := registry.GetOrCreate("not-a-session")

	assert.NotEqual(t, "not-a-session", s.ID)
	assert.Equal(t, 1, registry.Len())
}

func TestRegistry_NewSessionStartsUnbuiltAndSeeded(t *testing.T) {
	registry := newRegistry()

	s := registry.GetOrCreate("")

	assert.False(t, s.Units.Built(), "the unit cache builds on first resolve, not on login")
	assert.True(t, s.Expansion.IsExpanded(navigation.SectionKey(navigation.SectionMainDepartments)))
	assert.False(t, s.Expansion.IsExpanded(navigation.SectionKey(navigation.SectionAccount)))
}

func TestRegistry_SessionUnitCacheResolves(t *testing.T) {
	registry := newRegistry()
	s := registry.GetOrCreate("")

	require.NoError(t, s.Units.Build(context.Background()))

	unit, ok := s.Units.Lookup("yorkshire")
	require.True(t, ok)
	assert.Equal(t, "unit-york", unit.ID)
}

func TestRegistry_DeleteDropsSessionState(t *testing.T) {
	registry := newRegistry()

	s := registry.GetOrCreate("")
	s.Expansion.Toggle(navigation.UnitKey("unit-york"))
	registry.Delete(s.ID)
	assert.Equal(t, 0, registry.Len())

	fresh := registry.GetOrCreate(s.ID)
	assert.NotEqual(t, s.ID, fresh.ID)
	assert.False(t, fresh.Expansion.IsExpanded(navigation.UnitKey("unit-york")))
	assert.False(t, fresh.Units.Built())
}

func TestSession_CurrentUnit(t *testing.T) {
	registry := newRegistry()
	s := registry.GetOrCreate("")

	assert.Empty(t, s.CurrentUnit())
	s.SetCurrentUnit("yorkshire")
	assert.Equal(t, "yorkshire", s.CurrentUnit())
}
