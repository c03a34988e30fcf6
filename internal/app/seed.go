package app

import (
	"context"

	"github.com/buena/portfolio-service/internal/dtos"
	"github.com/buena/portfolio-service/internal/repositories"
	"github.com/buena/portfolio-service/internal/services"
	"github.com/buena/portfolio-service/internal/utils"
)

const seedPropertyName = "Demo Portfolio Hausverwaltung"

// SeedTestData creates one demo property through the normal creation
// transaction so dev environments have something to look at. Skipped when a
// property with the demo name already exists.
func SeedTestData(ctx context.Context, db repositories.DB, propertyService *services.PropertyService) error {
	existing, err := repositories.NewPropertyRepository(db).GetByName(ctx, seedPropertyName)
	if err != nil {
		return err
	}
	if existing != nil {
		utils.Logger.Infof("Demo property already seeded as %s", existing.PropertyNumber)
		return nil
	}

	req := dtos.CreatePropertyRequest{
		GeneralInfo: dtos.GeneralInfoInput{
			Name:           seedPropertyName,
			ManagementType: "WEG",
		},
		Buildings: []dtos.BuildingInput{
			{TempID: "seed_b1", Street: "Musterstraße", HouseNumber: "12", ZipMode: utils.StrPtr("10115"), City: utils.StrPtr("Berlin")},
			{TempID: "seed_b2", Street: "Musterstraße", HouseNumber: "14", ZipMode: utils.StrPtr("10115"), City: utils.StrPtr("Berlin")},
		},
		Units: []dtos.UnitInput{
			{BuildingTempID: "seed_b1", Number: "WE1", Type: "APARTMENT", Floor: "EG", Size: 72.5, CoOwnershipShare: 250, Rooms: 3},
			{BuildingTempID: "seed_b1", Number: "WE2", Type: "APARTMENT", Floor: "1. OG", Size: 80, CoOwnershipShare: 300, Rooms: 3},
			{BuildingTempID: "seed_b2", Number: "TG1", Type: "PARKING", Floor: "KG", Size: 12, CoOwnershipShare: 50},
		},
	}

	resp, err := propertyService.Create(ctx, req)
	if err != nil {
		return err
	}
	utils.Logger.Infof("Seeded demo property %s", resp.PropertyNumber)
	return nil
}
