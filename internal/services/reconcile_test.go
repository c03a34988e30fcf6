package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/buena/portfolio-service/internal/dtos"
	"github.com/buena/portfolio-service/internal/utils"
)

func TestValidateBuildingRefsAcceptsResolvableGraph(t *testing.T) {
	buildings := []dtos.BuildingInput{
		{TempID: "b1", Street: "Musterstraße", HouseNumber: "12"},
		{TempID: "b2", Street: "Musterstraße", HouseNumber: "14"},
	}
	units := []dtos.UnitInput{
		{BuildingTempID: "b1", Number: "WE1"},
		{BuildingTempID: "b2", Number: "WE2"},
	}

	if err := ValidateBuildingRefs(buildings, units); err != nil {
		t.Fatalf("Expected valid graph to pass, got: %v", err)
	}
}

func TestValidateBuildingRefsRejectsDuplicateTempID(t *testing.T) {
	buildings := []dtos.BuildingInput{
		{TempID: "b1", Street: "A", HouseNumber: "1"},
		{TempID: "b1", Street: "B", HouseNumber: "2"},
	}

	err := ValidateBuildingRefs(buildings, nil)
	if err == nil {
		t.Fatal("Expected error for duplicate temp_id, got nil")
	}
	if !errors.Is(err, utils.ErrDuplicateTempID) {
		t.Fatalf("Expected ErrDuplicateTempID, got: %v", err)
	}

	var appErr *utils.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("Expected AppError, got %T", err)
	}
	if appErr.Code != utils.ErrCodeDuplicateTempID {
		t.Errorf("Expected code %q, got %q", utils.ErrCodeDuplicateTempID, appErr.Code)
	}
}

func TestValidateBuildingRefsNamesUnknownReference(t *testing.T) {
	buildings := []dtos.BuildingInput{
		{TempID: "b1", Street: "A", HouseNumber: "1"},
	}
	units := []dtos.UnitInput{
		{BuildingTempID: "b_missing", Number: "WE1"},
	}

	err := ValidateBuildingRefs(buildings, units)
	if err == nil {
		t.Fatal("Expected error for unknown building reference, got nil")
	}
	if !errors.Is(err, utils.ErrUnknownBuildingRef) {
		t.Fatalf("Expected ErrUnknownBuildingRef, got: %v", err)
	}

	var appErr *utils.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("Expected AppError, got %T", err)
	}
	if !strings.Contains(appErr.Message, "b_missing") {
		t.Errorf("Expected message to name the offending reference, got %q", appErr.Message)
	}
}

func TestValidateBuildingRefsSkipsPersistedUnits(t *testing.T) {
	existingUnit := uuid.New()
	existingBuilding := uuid.New()

	units := []dtos.UnitInput{
		{ID: &existingUnit, Number: "WE1"},
		{BuildingID: &existingBuilding, Number: "WE2"},
	}

	// No buildings submitted at all; persisted references need no temp_id.
	if err := ValidateBuildingRefs(nil, units); err != nil {
		t.Fatalf("Expected persisted references to pass, got: %v", err)
	}
}

func TestResolveUnitsAppliesFieldDefaults(t *testing.T) {
	propID := uuid.New()
	bldgID := uuid.New()
	tempToReal := map[string]uuid.UUID{"b1": bldgID}

	units := []dtos.UnitInput{
		{BuildingTempID: "b1", Number: "", Type: "", Floor: "EG", Size: 55.5, CoOwnershipShare: 120, Rooms: 2},
		{BuildingTempID: "b1", Number: "WE2", Type: "APARTMENT"},
	}

	resolved, err := ResolveUnits(propID, tempToReal, units)
	if err != nil {
		t.Fatalf("ResolveUnits returned error: %v", err)
	}
	if len(resolved) != 2 {
		t.Fatalf("Expected 2 resolved units, got %d", len(resolved))
	}

	first := resolved[0]
	if first.Number != nil {
		t.Errorf("Expected empty number to become nil, got %q", *first.Number)
	}
	if first.Type != nil {
		t.Errorf("Expected empty type to become nil, got %q", *first.Type)
	}
	if first.PropertyID != propID || first.BuildingID != bldgID {
		t.Error("Expected property and building ids to be set from the mapping")
	}
	if first.Size != 55.5 || first.CoOwnershipShare != 120 || first.Rooms != 2 {
		t.Error("Expected numeric fields to be carried over unchanged")
	}

	second := resolved[1]
	if second.Number == nil || *second.Number != "WE2" {
		t.Error("Expected non-empty number to survive")
	}
	if second.Type == nil || string(*second.Type) != "APARTMENT" {
		t.Error("Expected non-empty type to survive")
	}
	if second.Size != 0 || second.CoOwnershipShare != 0 {
		t.Error("Expected missing numerics to default to 0")
	}
}

func TestResolveUnitsHonorsExplicitBuildingID(t *testing.T) {
	propID := uuid.New()
	explicit := uuid.New()

	units := []dtos.UnitInput{
		{BuildingID: &explicit, Number: "WE1"},
	}

	resolved, err := ResolveUnits(propID, map[string]uuid.UUID{}, units)
	if err != nil {
		t.Fatalf("ResolveUnits returned error: %v", err)
	}
	if resolved[0].BuildingID != explicit {
		t.Errorf("Expected explicit building_id %s, got %s", explicit, resolved[0].BuildingID)
	}
}

func TestResolveUnitsFailsOnUnmappedReference(t *testing.T) {
	units := []dtos.UnitInput{
		{BuildingTempID: "b_gone", Number: "WE1"},
	}

	_, err := ResolveUnits(uuid.New(), map[string]uuid.UUID{}, units)
	if err == nil {
		t.Fatal("Expected error for unmapped reference, got nil")
	}
	if !errors.Is(err, utils.ErrUnmappedBuildingRef) {
		t.Fatalf("Expected ErrUnmappedBuildingRef, got: %v", err)
	}
}
