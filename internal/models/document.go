package models

import (
	"time"

	"github.com/google/uuid"
)

// Document is the metadata row for an uploaded file. StorageKey is the
// uuid-keyed filename in the uploads directory and doubles as the document_id
// used by the extraction endpoint.
type Document struct {
	ID         uuid.UUID  `json:"id"`
	PropertyID *uuid.UUID `json:"property_id,omitempty"`
	FileName   string     `json:"file_name"`
	StorageKey string     `json:"storage_key"`
	CreatedAt  time.Time  `json:"created_at"`
}
