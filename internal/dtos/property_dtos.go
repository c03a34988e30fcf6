package dtos

import (
	"github.com/google/uuid"

	"github.com/buena/portfolio-service/internal/models"
)

/*
GeneralInfoInput carries the property-level fields of a create or update
payload. Status is optional; creation defaults it to ACTIVE.
*/
type GeneralInfoInput struct {
	Name           string  `json:"name" validate:"required,min=2"`
	ManagementType string  `json:"management_type" validate:"required,oneof=WEG MV"`
	ManagerID      *string `json:"manager_id,omitempty"`
	AccountantID   *string `json:"accountant_id,omitempty"`
	Status         string  `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE DRAFT"`
}

/*
BuildingInput is one submitted building. On create every building carries a
request-scoped temp_id so units can reference it before it has a server id.
On update a building with an id is patched in place; one without an id is
created (and may still carry a temp_id for new units to reference).
*/
type BuildingInput struct {
	ID          *uuid.UUID `json:"id,omitempty"`
	TempID      string     `json:"temp_id,omitempty" validate:"required_without=ID"`
	Street      string     `json:"street" validate:"required"`
	HouseNumber string     `json:"house_number" validate:"required"`
	ZipMode     *string    `json:"zip_mode,omitempty"`
	City        *string    `json:"city,omitempty"`
}

/*
UnitInput is one submitted unit. A new unit references its building via
building_temp_id (same request) or building_id (already persisted); a unit
with an id is patched in place and its building reference is left untouched.
*/
type UnitInput struct {
	ID               *uuid.UUID `json:"id,omitempty"`
	BuildingTempID   string     `json:"building_temp_id,omitempty" validate:"required_without_all=ID BuildingID"`
	BuildingID       *uuid.UUID `json:"building_id,omitempty"`
	Number           string     `json:"number,omitempty"`
	Type             string     `json:"type,omitempty" validate:"omitempty,oneof=APARTMENT OFFICE GARDEN PARKING OTHER"`
	Floor            string     `json:"floor,omitempty"`
	Entrance         string     `json:"entrance,omitempty"`
	Size             float64    `json:"size,omitempty" validate:"min=0"`
	CoOwnershipShare float64    `json:"co_ownership_share,omitempty" validate:"min=0,max=1000"`
	ConstructionYear *int       `json:"construction_year,omitempty" validate:"omitempty,min=1800,max=2100"`
	Rooms            float64    `json:"rooms,omitempty" validate:"min=0"`
}

type CreatePropertyRequest struct {
	GeneralInfo GeneralInfoInput `json:"general_info" validate:"required"`
	Buildings   []BuildingInput  `json:"buildings" validate:"dive"`
	Units       []UnitInput      `json:"units" validate:"dive"`
}

/*
UpdatePropertyRequest patches a property graph. GeneralInfo is optional: a
buildings-only or units-only patch leaves the property fields untouched.
*/
type UpdatePropertyRequest struct {
	GeneralInfo *GeneralInfoInput `json:"general_info,omitempty"`
	Buildings   []BuildingInput   `json:"buildings" validate:"dive"`
	Units       []UnitInput       `json:"units" validate:"dive"`
}

/*
PropertyResponse is the full persisted graph returned by create, get and
update.
*/
type PropertyResponse struct {
	models.Property
	Buildings []*models.Building `json:"buildings"`
	Units     []*models.Unit     `json:"units"`
}
