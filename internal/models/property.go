package models

import (
	"time"

	"github.com/google/uuid"
)

type ManagementType string

const (
	ManagementTypeWEG ManagementType = "WEG"
	ManagementTypeMV  ManagementType = "MV"
)

type PropertyStatus string

const (
	PropertyStatusActive PropertyStatus = "ACTIVE"
	PropertyStatusDraft  PropertyStatus = "DRAFT"
)

// Property is the root of the ownership hierarchy. PropertyNumber is the
// human-legible business key (BT-000001, ...); it is assigned exactly once
// from a durable sequence and never reused, even after deletion.
type Property struct {
	ID             uuid.UUID      `json:"id"`
	Name           string         `json:"name"`
	PropertyNumber string         `json:"property_number"`
	ManagementType ManagementType `json:"management_type"`
	ManagerID      *string        `json:"manager_id,omitempty"`
	AccountantID   *string        `json:"accountant_id,omitempty"`
	Status         PropertyStatus `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
