// Package models holds the composed, request-scoped view shapes the console
// serves. Views are denormalized snapshots owned by the caller; they hold no
// references back into the store.
package models

import "github.com/elliottking-cpu/beast-app-sub003/internal/domain"

// TankView is a tank with its resolved type label. TypeName stays nil when
// the tank has no type or the type could not be resolved.
type TankView struct {
	domain.Tank
	TypeName *string `json:"type_name"`
}

// PropertyView is a property carrying its tanks.
type PropertyView struct {
	domain.Property
	Tanks []TankView `json:"tanks"`
}

// ClientView is the aggregate client detail: account plus contact
// (nullable), properties, and each property's tanks.
type ClientView struct {
	Account    domain.Account  `json:"account"`
	Contact    *domain.Contact `json:"contact"`
	Properties []PropertyView  `json:"properties"`

	PropertyCount int `json:"property_count"`
	TankCount     int `json:"tank_count"`
}
