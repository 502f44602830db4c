package navigation

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/elliottking-cpu/beast-app-sub003/internal/domain"
	"github.com/elliottking-cpu/beast-app-sub003/internal/fallback"
	"github.com/elliottking-cpu/beast-app-sub003/internal/repository"
)

// DepartmentNode is a department with its ordered pages.
type DepartmentNode struct {
	Department domain.Department      `json:"department"`
	Pages      []domain.DepartmentPage `json:"pages"`
}

// HasPages reports whether the node is expandable in the sidebar.
func (n DepartmentNode) HasPages() bool {
	return len(n.Pages) > 0
}

// ChildUnitNode is a child business unit with its own department set.
// Child trees are exactly one level deep: grandchildren are never expanded.
type ChildUnitNode struct {
	Unit        domain.BusinessUnit `json:"unit"`
	Departments []DepartmentNode    `json:"departments"`
}

// UnitTree is the fully composed sidebar tree for one unit.
type UnitTree struct {
	Unit        domain.BusinessUnit `json:"unit"`
	Departments []DepartmentNode    `json:"departments"`
	ChildUnits  []ChildUnitNode     `json:"child_units"`
}

// HierarchyLoader composes unit trees from the record store. Each tree
// level costs one batched query: all child units' departments in one call
// keyed by the unit-id set, then every department's pages in one call keyed
// by the department-id set.
type HierarchyLoader struct {
	units     repository.UnitsStore
	hierarchy repository.HierarchyStore
	logger    *zap.Logger
}

// NewHierarchyLoader creates a loader.
func NewHierarchyLoader(units repository.UnitsStore, hierarchy repository.HierarchyStore, logger *zap.Logger) *HierarchyLoader {
	return &HierarchyLoader{units: units, hierarchy: hierarchy, logger: logger}
}

// LoadDepartments returns the active departments offered by one unit.
// Ordering is store-defined.
func (l *HierarchyLoader) LoadDepartments(ctx context.Context, unitID string) ([]domain.Department, error) {
	byUnit, err := l.hierarchy.ListActiveDepartments(ctx, []string{unitID})
	if err != nil {
		return nil, fmt.Errorf("failed to load departments for unit %s: %w", unitID, err)
	}
	return byUnit[unitID], nil
}

// LoadPages returns one department's active pages ordered by sort order
// ascending; rows tied on sort order keep their source order. Zero pages is
// a normal outcome.
func (l *HierarchyLoader) LoadPages(ctx context.Context, departmentID string) ([]domain.DepartmentPage, error) {
	pages, err := l.hierarchy.ListActivePages(ctx, []string{departmentID})
	if err != nil {
		return nil, fmt.Errorf("failed to load pages for department %s: %w", departmentID, err)
	}

	sortPages(pages)
	return pages, nil
}

// LoadChildUnits returns a group root's direct children, name ascending.
func (l *HierarchyLoader) LoadChildUnits(ctx context.Context, parentUnitID string) ([]domain.BusinessUnit, error) {
	children, err := l.units.ListChildUnits(ctx, parentUnitID)
	if err != nil {
		return nil, fmt.Errorf("failed to load child units of %s: %w", parentUnitID, err)
	}
	return children, nil
}

// LoadFullTree composes the sidebar tree for a unit: its departments and
// pages, plus one level of child units (group roots only) with theirs.
//
// Failure policy: the unit's own department load is the one hard
// dependency. A failed child-unit fetch degrades the root to no children; a
// failed child-department or page fetch degrades the affected nodes to
// empty lists. Soft failures are logged, never returned.
func (l *HierarchyLoader) LoadFullTree(ctx context.Context, unit domain.BusinessUnit) (*UnitTree, error) {
	var (
		wg       sync.WaitGroup
		rootDeps []domain.Department
		rootErr  error
		children []domain.BusinessUnit
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		rootDeps, rootErr = l.LoadDepartments(ctx, unit.ID)
	}()

	if unit.IsGroupRoot() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			loaded, err := l.units.ListChildUnits(ctx, unit.ID)
			children = fallback.Value(l.logger, "load child units", loaded, err,
				[]domain.BusinessUnit{}, zap.String("unit_id", unit.ID))
		}()
	}

	wg.Wait()
	if rootErr != nil {
		return nil, rootErr
	}

	// Batch the whole child level in one call keyed by the unit-id set.
	childDeps := make(map[string][]domain.Department)
	if len(children) > 0 {
		childIDs := make([]string, 0, len(children))
		for _, child := range children {
			childIDs = append(childIDs, child.ID)
		}

		loaded, err := l.hierarchy.ListActiveDepartments(ctx, childIDs)
		childDeps = fallback.Value(l.logger, "load child unit departments", loaded, err,
			map[string][]domain.Department{}, zap.Int("child_count", len(children)))
	}

	// One page query for every department in the tree.
	departmentIDs := make([]string, 0, len(rootDeps))
	for _, dept := range rootDeps {
		departmentIDs = append(departmentIDs, dept.ID)
	}
	for _, deps := range childDeps {
		for _, dept := range deps {
			departmentIDs = append(departmentIDs, dept.ID)
		}
	}

	pagesByDept := make(map[string][]domain.DepartmentPage)
	if len(departmentIDs) > 0 {
		pages, err := l.hierarchy.ListActivePages(ctx, departmentIDs)
		pages = fallback.Value(l.logger, "load department pages", pages, err,
			[]domain.DepartmentPage{}, zap.Int("department_count", len(departmentIDs)))

		sortPages(pages)
		for _, page := range pages {
			pagesByDept[page.DepartmentID] = append(pagesByDept[page.DepartmentID], page)
		}
	}

	tree := &UnitTree{
		Unit:        unit,
		Departments: buildDepartmentNodes(rootDeps, pagesByDept),
		ChildUnits:  make([]ChildUnitNode, 0, len(children)),
	}
	for _, child := range children {
		tree.ChildUnits = append(tree.ChildUnits, ChildUnitNode{
			Unit:        child,
			Departments: buildDepartmentNodes(childDeps[child.ID], pagesByDept),
		})
	}

	return tree, nil
}

func buildDepartmentNodes(departments []domain.Department, pagesByDept map[string][]domain.DepartmentPage) []DepartmentNode {
	nodes := make([]DepartmentNode, 0, len(departments))
	for _, dept := range departments {
		pages := pagesByDept[dept.ID]
		if pages == nil {
			pages = []domain.DepartmentPage{}
		}
		nodes = append(nodes, DepartmentNode{Department: dept, Pages: pages})
	}
	return nodes
}

// sortPages orders by sort order ascending, keeping source order on ties.
func sortPages(pages []domain.DepartmentPage) {
	sort.SliceStable(pages, func(i, j int) bool {
		return pages[i].SortOrder < pages[j].SortOrder
	})
}
