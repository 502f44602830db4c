package navigation

import "sync"

// Sidebar section identifiers.
const (
	SectionMainDepartments = "main-departments"
	SectionRegionalUnits   = "regional-units"
	SectionAccount         = "account"
)

// DefaultExpandedDepartmentID is the one department seeded expanded. Fixed
// product default, not derived from data.
const DefaultExpandedDepartmentID = "dept-overview"

// SectionKey builds the expansion key for a sidebar section.
func SectionKey(sectionID string) string {
	return "section:" + sectionID
}

// DeptKey builds the expansion key for a department node. childUnitID
// namespaces departments rendered under a child unit so the same department
// can be open under one unit and closed under another; pass "" for the
// current unit's own departments.
func DeptKey(departmentID, childUnitID string) string {
	if childUnitID == "" {
		return "dept:" + departmentID
	}
	return "dept:" + childUnitID + ":" + departmentID
}

// UnitKey builds the expansion key for a child-unit node.
func UnitKey(unitID string) string {
	return "unit:" + unitID
}

// ExpansionState tracks which tree nodes are expanded for one session.
// Pure in-memory state; nothing persists across sessions.
type ExpansionState struct {
	mu       sync.Mutex
	expanded map[string]bool
}

// NewExpansionState creates the store with the default layout: the
// main-departments and regional-units sections open, the account section
// and individual nodes closed, plus the one seeded department default.
func NewExpansionState() *ExpansionState {
	s := &ExpansionState{}
	s.seed()
	return s
}

func (s *ExpansionState) seed() {
	s.expanded = map[string]bool{
		SectionKey(SectionMainDepartments):       true,
		SectionKey(SectionRegionalUnits):         true,
		SectionKey(SectionAccount):               false,
		DeptKey(DefaultExpandedDepartmentID, ""): true,
	}
}

// IsExpanded reports the flag for a key; keys never seen default collapsed.
func (s *ExpansionState) IsExpanded(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expanded[key]
}

// Toggle flips the flag for a key, creating the entry (collapsed before the
// flip) if absent. Returns the new value.
func (s *ExpansionState) Toggle(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expanded[key] = !s.expanded[key]
	return s.expanded[key]
}

// Snapshot returns a copy of the current flags.
func (s *ExpansionState) Snapshot() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]bool, len(s.expanded))
	for k, v := range s.expanded {
		out[k] = v
	}
	return out
}

// Reset restores the default layout (logout lifecycle).
func (s *ExpansionState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seed()
}
