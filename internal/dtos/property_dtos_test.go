package dtos

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestUpdateRequestAllowsOmittedGeneralInfo(t *testing.T) {
	payload := `{
		"buildings": [
			{"id": "7d9a2c1e-3f60-4b5e-9a93-27c6f84a1a10", "street": "Musterstraße", "house_number": "12"}
		]
	}`

	var req UpdatePropertyRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if req.GeneralInfo != nil {
		t.Error("Expected general_info to stay nil when omitted")
	}
	if err := validator.New().Struct(req); err != nil {
		t.Fatalf("Expected a buildings-only patch to validate, got: %v", err)
	}
}

func TestUpdateRequestStillValidatesSuppliedGeneralInfo(t *testing.T) {
	payload := `{"general_info": {"name": "Haus A", "management_type": "CONDO"}}`

	var req UpdatePropertyRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if err := validator.New().Struct(req); err == nil {
		t.Fatal("Expected invalid management_type to fail validation")
	}
}
