package utils

import (
	"errors"
	"net/http"
)

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons.
var (
	ErrDuplicateTempID     = errors.New("duplicate_temp_id")
	ErrUnknownBuildingRef  = errors.New("unknown_building_reference")
	ErrUnmappedBuildingRef = errors.New("unmapped_building_reference")
	ErrPropertyNotFound    = errors.New("property_not_found")
	ErrDocumentNotFound    = errors.New("document_not_found")
	ErrMalformedExtraction = errors.New("malformed_extraction_output")
	ErrExtractionDisabled  = errors.New("extraction_disabled")
)

// AppError carries structured failure info from services to controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
	} else {
		// Fallback for unexpected error types
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
