package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/buena/portfolio-service/internal/services"
	"github.com/buena/portfolio-service/internal/utils"
)

const maxUploadBytes = 32 << 20 // 32 MiB

type DocumentsController struct {
	documentService *services.DocumentService
}

func NewDocumentsController(ds *services.DocumentService) *DocumentsController {
	return &DocumentsController{documentService: ds}
}

// POST /api/v1/documents (multipart: "file", optional "property_id")
func (c *DocumentsController) UploadDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid multipart payload", nil, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Missing file field", nil, err)
		return
	}
	defer file.Close()

	var propertyID *uuid.UUID
	if raw := r.FormValue("property_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid property_id", nil, err)
			return
		}
		propertyID = &id
	}

	doc, err := c.documentService.Upload(r.Context(), header.Filename, propertyID, file)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, doc)
}

// GET /api/v1/properties/{id}/documents
func (c *DocumentsController) ListPropertyDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePropertyID(w, r)
	if !ok {
		return
	}

	docs, err := c.documentService.ListByProperty(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, docs)
}
