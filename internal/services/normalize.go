package services

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/buena/portfolio-service/internal/dtos"
	"github.com/buena/portfolio-service/internal/utils"
)

/*
NormalizeExtraction turns the model's raw reply into a unit list. The model is
told to answer {"address": ..., "units": [...]}, but replies drift, so decode
attempts run in a fixed order:

 1. object with a "units" array (address picked up when present)
 2. bare array of units
 3. object with the units under some other key (first array-valued property,
    keys in sorted order for determinism)
 4. object that is itself a single unit (has both "number" and "type")
 5. anything else valid → zero units

Markdown code fences are stripped first. An empty reply is zero units, not an
error; a reply that fails to parse as JSON after cleanup is a hard failure
(utils.ErrMalformedExtraction), distinct from "zero units found".
*/
func NormalizeExtraction(raw string) (*string, []dtos.ExtractedUnit, error) {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return nil, nil, nil
	}

	var parsed interface{}
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", utils.ErrMalformedExtraction, err)
	}

	switch v := parsed.(type) {
	case []interface{}:
		return nil, mapUnits(v), nil

	case map[string]interface{}:
		var address *string
		if a, ok := v["address"].(string); ok && strings.TrimSpace(a) != "" {
			address = &a
		}

		if arr, ok := v["units"].([]interface{}); ok {
			return address, mapUnits(arr), nil
		}

		// Units nested under an unpredictable key.
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if arr, ok := v[k].([]interface{}); ok {
				return address, mapUnits(arr), nil
			}
		}

		// The object itself is a single unit.
		if v["number"] != nil && v["type"] != nil {
			return address, mapUnits([]interface{}{v}), nil
		}

		return address, nil, nil

	default:
		// Valid JSON but not a recognizable shape (string, number, ...).
		return nil, nil, nil
	}
}

func mapUnits(raw []interface{}) []dtos.ExtractedUnit {
	units := make([]dtos.ExtractedUnit, 0, len(raw))
	for _, r := range raw {
		m, ok := r.(map[string]interface{})
		if !ok {
			continue
		}
		units = append(units, dtos.ExtractedUnit{
			Number:           asString(m["number"]),
			Type:             asString(m["type"]),
			Floor:            asString(m["floor"]),
			Entrance:         asString(m["entrance"]),
			Size:             asFloat(m["size"]),
			CoOwnershipShare: asFloat(m["coOwnershipShare"], m["co_ownership_share"]),
			Rooms:            asFloat(m["rooms"]),
		})
	}
	return units
}

// asString tolerates the model emitting numbers where strings are expected.
func asString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return ""
	}
}

// asFloat takes the first candidate that carries a usable numeric value.
func asFloat(candidates ...interface{}) float64 {
	for _, v := range candidates {
		switch n := v.(type) {
		case float64:
			return n
		case string:
			if f, err := strconv.ParseFloat(strings.ReplaceAll(n, ",", "."), 64); err == nil {
				return f
			}
		}
	}
	return 0
}
