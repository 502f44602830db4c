package domain

// Department navigable department (departments table). Units offer
// departments through the business_unit_departments activation join.
type Department struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Icon *string `json:"icon,omitempty"`
}

// DepartmentPage a page offered by a department (department_pages join
// resolved against pages). SortOrder drives presentation order; duplicates
// are allowed and resolved stably by insertion order.
type DepartmentPage struct {
	ID           string `json:"id"`
	DepartmentID string `json:"department_id"`
	Name         string `json:"name"`
	Path         string `json:"path"`
	SortOrder    int    `json:"sort_order"`
}
