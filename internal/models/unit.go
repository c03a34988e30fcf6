package models

import (
	"time"

	"github.com/google/uuid"
)

type UnitType string

const (
	UnitTypeApartment UnitType = "APARTMENT"
	UnitTypeOffice    UnitType = "OFFICE"
	UnitTypeGarden    UnitType = "GARDEN"
	UnitTypeParking   UnitType = "PARKING"
	UnitTypeOther     UnitType = "OTHER"
)

// Unit represents a tenant-addressable space inside a specific building
// that lives on a property. Number is NULL rather than "" when unset so an
// empty label can never trip a uniqueness constraint.
type Unit struct {
	ID               uuid.UUID `json:"id"`
	PropertyID       uuid.UUID `json:"property_id"`
	BuildingID       uuid.UUID `json:"building_id"`
	Number           *string   `json:"number"`
	Type             *UnitType `json:"type"`
	Floor            string    `json:"floor"`
	Entrance         string    `json:"entrance"`
	Size             float64   `json:"size"`
	CoOwnershipShare float64   `json:"co_ownership_share"`
	ConstructionYear *int      `json:"construction_year,omitempty"`
	Rooms            float64   `json:"rooms"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
