package domain

import "time"

// Property serviced site belonging to exactly one account (properties table).
type Property struct {
	ID           string  `json:"id"`
	AccountID    string  `json:"account_id"`
	AddressLine1 string  `json:"address_line1"`
	AddressLine2 *string `json:"address_line2,omitempty"`
	City         string  `json:"city"`
	Postcode     string  `json:"postcode"`
	PropertyType string  `json:"property_type"`
	AccessNotes  *string `json:"access_notes,omitempty"`
	IsActive     bool    `json:"is_active"`
}

// Tank equipment unit installed at a property (tanks table).
type Tank struct {
	ID              string     `json:"id"`
	PropertyID      string     `json:"property_id"`
	Name            string     `json:"name"`
	CapacityLitres  int        `json:"capacity_litres"`
	InstallDate     *time.Time `json:"install_date,omitempty"`
	LastServiceDate *time.Time `json:"last_service_date,omitempty"`
	NextServiceDate *time.Time `json:"next_service_date,omitempty"`
	TankTypeID      *string    `json:"tank_type_id,omitempty"`
}

// TankType equipment type label (tank_types table).
type TankType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
