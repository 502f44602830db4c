package navigation_test

import (
	"context"
	"sync"

	"github.com/elliottking-cpu/beast-app-sub003/internal/domain"
)

// fakeStore is an in-memory UnitsStore + HierarchyStore that counts calls,
// so tests can assert how many round trips an operation costs.
type fakeStore struct {
	mu sync.Mutex

	units             []domain.BusinessUnit
	childrenByParent  map[string][]domain.BusinessUnit
	departmentsByUnit map[string][]domain.Department
	pages             []domain.DepartmentPage

	listUnitsErr error
	childErr     error
	pagesErr     error
	// failDeptCall makes the nth ListActiveDepartments call fail (1-based);
	// 0 disables.
	failDeptCall int

	calls map[string]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		childrenByParent:  map[string][]domain.BusinessUnit{},
		departmentsByUnit: map[string][]domain.Department{},
		calls:             map[string]int{},
	}
}

func (f *fakeStore) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeStore) ListBusinessUnits(_ context.Context) ([]domain.BusinessUnit, error) {
	f.mu.Lock()
	f.calls["ListBusinessUnits"]++
	f.mu.Unlock()

	if f.listUnitsErr != nil {
		return nil, f.listUnitsErr
	}
	return f.units, nil
}

func (f *fakeStore) ListChildUnits(_ context.Context, parentUnitID string) ([]domain.BusinessUnit, error) {
	f.mu.Lock()
	f.calls["ListChildUnits"]++
	f.mu.Unlock()

	if f.childErr != nil {
		return nil, f.childErr
	}
	return f.childrenByParent[parentUnitID], nil
}

func (f *fakeStore) ListActiveDepartments(_ context.Context, unitIDs []string) (map[string][]domain.Department, error) {
	f.mu.Lock()
	f.calls["ListActiveDepartments"]++
	n := f.calls["ListActiveDepartments"]
	f.mu.Unlock()

	if f.failDeptCall != 0 && n == f.failDeptCall {
		return nil, errStoreDown
	}

	byUnit := make(map[string][]domain.Department)
	for _, id := range unitIDs {
		if deps, ok := f.departmentsByUnit[id]; ok {
			byUnit[id] = deps
		}
	}
	return byUnit, nil
}

func (f *fakeStore) ListActivePages(_ context.Context, departmentIDs []string) ([]domain.DepartmentPage, error) {
	f.mu.Lock()
	f.calls["ListActivePages"]++
	f.mu.Unlock()

	if f.pagesErr != nil {
		return nil, f.pagesErr
	}

	wanted := make(map[string]bool, len(departmentIDs))
	for _, id := range departmentIDs {
		wanted[id] = true
	}

	var out []domain.DepartmentPage
	for _, page := range f.pages {
		if wanted[page.DepartmentID] {
			out = append(out, page)
		}
	}
	return out, nil
}
