package services

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/buena/portfolio-service/internal/dtos"
	"github.com/buena/portfolio-service/internal/models"
	"github.com/buena/portfolio-service/internal/utils"
)

/*
ValidateBuildingRefs checks a submitted building/unit set before anything is
persisted:

  - every new building's temp_id is unique within the request;
  - every new unit resolves to a building: via building_temp_id within the
    request, or via an explicit building_id.

Units that already carry a server id are skipped; their building reference is
not rewritten on update. The function only reads its inputs.
*/
func ValidateBuildingRefs(buildings []dtos.BuildingInput, units []dtos.UnitInput) error {
	tempIDs := make(map[string]struct{}, len(buildings))
	for _, b := range buildings {
		if b.TempID == "" {
			continue
		}
		if _, dup := tempIDs[b.TempID]; dup {
			return &utils.AppError{
				StatusCode: http.StatusBadRequest,
				Code:       utils.ErrCodeDuplicateTempID,
				Message:    fmt.Sprintf("Building temp_ids must be unique; %q appears more than once", b.TempID),
				Err:        utils.ErrDuplicateTempID,
			}
		}
		tempIDs[b.TempID] = struct{}{}
	}

	for _, u := range units {
		if u.ID != nil || u.BuildingID != nil {
			continue
		}
		if _, ok := tempIDs[u.BuildingTempID]; !ok {
			return &utils.AppError{
				StatusCode: http.StatusBadRequest,
				Code:       utils.ErrCodeUnknownBuildingRef,
				Message:    fmt.Sprintf("Unit references unknown building temp_id: %s", u.BuildingTempID),
				Err:        utils.ErrUnknownBuildingRef,
			}
		}
	}
	return nil
}

/*
ResolveUnits maps submitted units onto persistable rows using the
temp-id → server-id map captured while inserting buildings. Field defaults are
applied here: an empty number becomes NULL (not ""), an empty type becomes
NULL, missing numerics stay 0.

A unit whose reference cannot be resolved at this stage slipped past
ValidateBuildingRefs; that is an invariant violation and the caller must abort
the surrounding transaction.
*/
func ResolveUnits(propertyID uuid.UUID, tempToReal map[string]uuid.UUID, units []dtos.UnitInput) ([]models.Unit, error) {
	out := make([]models.Unit, 0, len(units))
	for _, u := range units {
		var buildingID uuid.UUID
		switch {
		case u.BuildingID != nil:
			buildingID = *u.BuildingID
		default:
			real, ok := tempToReal[u.BuildingTempID]
			if !ok {
				return nil, fmt.Errorf("%w: %q", utils.ErrUnmappedBuildingRef, u.BuildingTempID)
			}
			buildingID = real
		}

		var number *string
		if u.Number != "" {
			number = &u.Number
		}
		var unitType *models.UnitType
		if u.Type != "" {
			t := models.UnitType(u.Type)
			unitType = &t
		}

		out = append(out, models.Unit{
			ID:               uuid.New(),
			PropertyID:       propertyID,
			BuildingID:       buildingID,
			Number:           number,
			Type:             unitType,
			Floor:            u.Floor,
			Entrance:         u.Entrance,
			Size:             u.Size,
			CoOwnershipShare: u.CoOwnershipShare,
			ConstructionYear: u.ConstructionYear,
			Rooms:            u.Rooms,
		})
	}
	return out, nil
}
