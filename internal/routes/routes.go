package routes

const (
	// Health
	Health = "/health"

	// Property endpoints
	PropertiesBase    = "/api/v1/properties"
	PropertiesExtract = "/api/v1/properties/extract"
	PropertyByID      = "/api/v1/properties/{id}"
	PropertyDocuments = "/api/v1/properties/{id}/documents"

	// Document upload
	DocumentsBase = "/api/v1/documents"
)
