package domain

// Unit type identifiers (business_units.unit_type).
const (
	UnitTypeGroup    = "GROUP"
	UnitTypeRegional = "REGIONAL"
)

// BusinessUnit organizational unit (business_units table).
// The tree is store-managed and read-only here: a parent reference, when
// present, always names an existing unit and cycles are forbidden upstream.
type BusinessUnit struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	UnitType     string  `json:"unit_type"`
	LogoURL      *string `json:"logo_url,omitempty"`
	ParentUnitID *string `json:"parent_unit_id,omitempty"`
}

// IsGroupRoot reports whether the unit heads an organizational hierarchy
// and is therefore entitled to child units.
func (u BusinessUnit) IsGroupRoot() bool {
	return u.UnitType == UnitTypeGroup
}
