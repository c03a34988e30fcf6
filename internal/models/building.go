package models

import (
	"time"

	"github.com/google/uuid"
)

// Building is an addressed structure on a property. During a creation request
// the client references buildings by a request-scoped temp-id; the persisted
// row only ever carries the server-assigned ID.
type Building struct {
	ID          uuid.UUID `json:"id"`
	PropertyID  uuid.UUID `json:"property_id"`
	Street      string    `json:"street"`
	HouseNumber string    `json:"house_number"`
	ZipMode     *string   `json:"zip_mode,omitempty"`
	City        *string   `json:"city,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
