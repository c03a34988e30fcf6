package services

import (
	"errors"
	"testing"

	"github.com/buena/portfolio-service/internal/utils"
)

func TestNormalizeExtractionObjectForm(t *testing.T) {
	raw := `{
		"address": "Musterstraße 12, 10115 Berlin",
		"units": [
			{"number": "WE1", "type": "APARTMENT", "floor": "EG", "size": 72.5, "coOwnershipShare": 250, "rooms": 3},
			{"number": "TG1", "type": "PARKING", "size": 12, "coOwnershipShare": 50}
		]
	}`

	address, units, err := NormalizeExtraction(raw)
	if err != nil {
		t.Fatalf("NormalizeExtraction returned error: %v", err)
	}
	if address == nil || *address != "Musterstraße 12, 10115 Berlin" {
		t.Fatalf("Expected address to be picked up, got %v", address)
	}
	if len(units) != 2 {
		t.Fatalf("Expected 2 units, got %d", len(units))
	}
	if units[0].Number != "WE1" || units[0].Type != "APARTMENT" || units[0].Size != 72.5 {
		t.Errorf("First unit mapped wrong: %+v", units[0])
	}
	if units[0].CoOwnershipShare != 250 {
		t.Errorf("Expected coOwnershipShare 250, got %v", units[0].CoOwnershipShare)
	}
}

func TestNormalizeExtractionBareArray(t *testing.T) {
	raw := `[{"number": "WE1", "type": "APARTMENT"}, {"number": "WE2", "type": "OFFICE"}]`

	address, units, err := NormalizeExtraction(raw)
	if err != nil {
		t.Fatalf("NormalizeExtraction returned error: %v", err)
	}
	if address != nil {
		t.Errorf("Expected no address from a bare array, got %q", *address)
	}
	if len(units) != 2 {
		t.Fatalf("Expected 2 units, got %d", len(units))
	}
}

func TestNormalizeExtractionFallbackKey(t *testing.T) {
	raw := `{"rooms_overview": [{"number": "WE1", "type": "APARTMENT", "size": 60}]}`

	_, units, err := NormalizeExtraction(raw)
	if err != nil {
		t.Fatalf("NormalizeExtraction returned error: %v", err)
	}
	if len(units) != 1 {
		t.Fatalf("Expected units under an unexpected key to be found, got %d", len(units))
	}
	if units[0].Size != 60 {
		t.Errorf("Expected size 60, got %v", units[0].Size)
	}
}

func TestNormalizeExtractionSingleUnitObject(t *testing.T) {
	raw := `{"number": "WE1", "type": "APARTMENT", "size": 80}`

	_, units, err := NormalizeExtraction(raw)
	if err != nil {
		t.Fatalf("NormalizeExtraction returned error: %v", err)
	}
	if len(units) != 1 {
		t.Fatalf("Expected a single-unit object to yield one unit, got %d", len(units))
	}
}

func TestNormalizeExtractionStripsCodeFences(t *testing.T) {
	raw := "```json\n{\"units\": [{\"number\": \"WE1\", \"type\": \"APARTMENT\"}]}\n```"

	_, units, err := NormalizeExtraction(raw)
	if err != nil {
		t.Fatalf("NormalizeExtraction returned error: %v", err)
	}
	if len(units) != 1 {
		t.Fatalf("Expected fenced reply to parse, got %d units", len(units))
	}
}

func TestNormalizeExtractionEmptyReply(t *testing.T) {
	address, units, err := NormalizeExtraction("")
	if err != nil {
		t.Fatalf("Expected empty reply to be zero units, got error: %v", err)
	}
	if address != nil || units != nil {
		t.Error("Expected nil address and units for an empty reply")
	}
}

func TestNormalizeExtractionScalarReply(t *testing.T) {
	_, units, err := NormalizeExtraction(`"no units found"`)
	if err != nil {
		t.Fatalf("Expected scalar reply to be zero units, got error: %v", err)
	}
	if len(units) != 0 {
		t.Errorf("Expected 0 units, got %d", len(units))
	}
}

func TestNormalizeExtractionMalformedJSON(t *testing.T) {
	_, _, err := NormalizeExtraction(`{"units": [`)
	if err == nil {
		t.Fatal("Expected error for truncated JSON, got nil")
	}
	if !errors.Is(err, utils.ErrMalformedExtraction) {
		t.Fatalf("Expected ErrMalformedExtraction, got: %v", err)
	}
}

func TestNormalizeExtractionTolerantFieldTypes(t *testing.T) {
	raw := `{"units": [
		{"number": 3, "type": "APARTMENT", "co_ownership_share": "125,5", "size": "60.5", "rooms": 2}
	]}`

	_, units, err := NormalizeExtraction(raw)
	if err != nil {
		t.Fatalf("NormalizeExtraction returned error: %v", err)
	}
	if len(units) != 1 {
		t.Fatalf("Expected 1 unit, got %d", len(units))
	}

	u := units[0]
	if u.Number != "3" {
		t.Errorf("Expected numeric number to be stringified, got %q", u.Number)
	}
	if u.CoOwnershipShare != 125.5 {
		t.Errorf("Expected comma-decimal snake_case share 125.5, got %v", u.CoOwnershipShare)
	}
	if u.Size != 60.5 {
		t.Errorf("Expected string size 60.5, got %v", u.Size)
	}
}
