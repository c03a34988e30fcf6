package services

import (
	"strings"
	"testing"

	"github.com/buena/portfolio-service/internal/dtos"
)

func hasAdvisory(warnings []dtos.Advisory, code string) (dtos.Advisory, bool) {
	for _, w := range warnings {
		if w.Code == code {
			return w, true
		}
	}
	return dtos.Advisory{}, false
}

func TestAdviseShareShortfall(t *testing.T) {
	units := []dtos.ExtractedUnit{
		{Number: "WE1", Size: 70, CoOwnershipShare: 250},
		{Number: "WE2", Size: 60, CoOwnershipShare: 150},
	}

	warnings := Advise(units, nil, "")

	w, ok := hasAdvisory(warnings, AdvisoryShareShortfall)
	if !ok {
		t.Fatalf("Expected shortfall advisory for sum 400, got: %+v", warnings)
	}
	if !strings.Contains(w.Message, "600 missing") {
		t.Errorf("Expected message to quantify the gap, got %q", w.Message)
	}
}

func TestAdviseZeroSizeAndShare(t *testing.T) {
	units := []dtos.ExtractedUnit{
		{Number: "WE1", Size: 0, CoOwnershipShare: 500},
		{Number: "WE2", Size: 80, CoOwnershipShare: 0},
		{Number: "WE3", Size: 0, CoOwnershipShare: 500},
	}

	warnings := Advise(units, nil, "")

	if w, ok := hasAdvisory(warnings, AdvisoryUnitSizeZero); !ok {
		t.Error("Expected zero-size advisory")
	} else if !strings.Contains(w.Message, "2 unit(s)") {
		t.Errorf("Expected 2 zero-size units counted, got %q", w.Message)
	}
	if _, ok := hasAdvisory(warnings, AdvisoryShareZero); !ok {
		t.Error("Expected zero-share advisory")
	}
	// Sum is exactly 1000; no shortfall expected.
	if _, ok := hasAdvisory(warnings, AdvisoryShareShortfall); ok {
		t.Error("Did not expect shortfall advisory at a full 1000")
	}
}

func TestAdviseCleanResult(t *testing.T) {
	units := []dtos.ExtractedUnit{
		{Number: "WE1", Size: 70, CoOwnershipShare: 600},
		{Number: "WE2", Size: 60, CoOwnershipShare: 400},
	}
	address := "Musterstraße 12, 10115 Berlin"

	warnings := Advise(units, &address, "Musterstraße 12, Berlin")
	if len(warnings) != 0 {
		t.Fatalf("Expected no warnings, got: %+v", warnings)
	}
}

func TestAdviseAddressMismatch(t *testing.T) {
	address := "Beispielweg 3, 20095 Hamburg"

	warnings := Advise(nil, &address, "Musterstraße 12, Berlin")

	w, ok := hasAdvisory(warnings, AdvisoryAddressMismatch)
	if !ok {
		t.Fatal("Expected address mismatch advisory")
	}
	if !strings.Contains(w.Message, address) {
		t.Errorf("Expected message to include the extracted address, got %q", w.Message)
	}
}

func TestAdviseMatchesAddressesWithUmlauts(t *testing.T) {
	// The probe cut falls inside the "ä" here; byte slicing would produce an
	// invalid probe and a spurious mismatch.
	address := "Brunnenstädter Weg 4, 97070 Würzburg"

	warnings := Advise(nil, &address, "Brunnenstädter Weg 4")
	if len(warnings) != 0 {
		t.Fatalf("Expected matching umlaut address to produce no warnings, got: %+v", warnings)
	}
}

func TestAdviseSkipsTrivialAddresses(t *testing.T) {
	short := "12"
	if warnings := Advise(nil, &short, "Musterstraße 12, Berlin"); len(warnings) != 0 {
		t.Errorf("Expected short extracted address to be ignored, got: %+v", warnings)
	}

	full := "Beispielweg 3, 20095 Hamburg"
	if warnings := Advise(nil, &full, ""); len(warnings) != 0 {
		t.Errorf("Expected empty current address to skip the check, got: %+v", warnings)
	}

	if warnings := Advise(nil, nil, "Musterstraße 12"); len(warnings) != 0 {
		t.Errorf("Expected nil extracted address to skip the check, got: %+v", warnings)
	}
}
