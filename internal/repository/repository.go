package repository

import (
	"context"
	"errors"

	"github.com/elliottking-cpu/beast-app-sub003/internal/domain"
)

// ErrNotFound is returned when a single-record lookup matches nothing.
// Callers distinguish it from infrastructure failures with errors.Is.
var ErrNotFound = errors.New("record not found")

// UnitsStore reads the business-unit tree.
type UnitsStore interface {
	// ListBusinessUnits returns every unit (the UnitCache full scan).
	ListBusinessUnits(ctx context.Context) ([]domain.BusinessUnit, error)

	// ListChildUnits returns the direct children of a unit, ordered by
	// display name ascending.
	ListChildUnits(ctx context.Context, parentUnitID string) ([]domain.BusinessUnit, error)
}

// HierarchyStore reads department and page activations. Both methods are
// batched by key set so a whole tree level costs one round trip.
type HierarchyStore interface {
	// ListActiveDepartments returns the active departments offered by each
	// of the given units, keyed by unit id. Ordering within a unit is
	// store-defined.
	ListActiveDepartments(ctx context.Context, unitIDs []string) (map[string][]domain.Department, error)

	// ListActivePages returns the active pages of the given departments.
	// Join rows whose page definition is missing are dropped, never
	// surfaced as errors. Ordering is store-defined; callers sort.
	ListActivePages(ctx context.Context, departmentIDs []string) ([]domain.DepartmentPage, error)
}

// ClientsStore reads account aggregates.
type ClientsStore interface {
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
	GetContact(ctx context.Context, contactID string) (*domain.Contact, error)
	ListActiveProperties(ctx context.Context, accountID string) ([]domain.Property, error)

	// ListActiveTanks returns active tanks across the given property set in
	// one call.
	ListActiveTanks(ctx context.Context, propertyIDs []string) ([]domain.Tank, error)

	// ListTankTypes resolves the given type ids in one call. Absent ids are
	// simply missing from the result, not errors.
	ListTankTypes(ctx context.Context, typeIDs []string) ([]domain.TankType, error)
}

// Store bundles the three read interfaces; both the postgres and REST
// backends satisfy it.
type Store interface {
	UnitsStore
	HierarchyStore
	ClientsStore
}
