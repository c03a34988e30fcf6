package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/buena/portfolio-service/internal/dtos"
	"github.com/buena/portfolio-service/internal/services"
	"github.com/buena/portfolio-service/internal/utils"
)

type PropertiesController struct {
	propertyService   *services.PropertyService
	extractionService *services.ExtractionService
	validate          *validator.Validate
}

func NewPropertiesController(ps *services.PropertyService, es *services.ExtractionService) *PropertiesController {
	return &PropertiesController{
		propertyService:   ps,
		extractionService: es,
		validate:          validator.New(),
	}
}

// POST /api/v1/properties
func (c *PropertiesController) CreatePropertyHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, err.Error(), nil, err)
		return
	}

	resp, err := c.propertyService.Create(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

// PATCH /api/v1/properties/{id}
func (c *PropertiesController) UpdatePropertyHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePropertyID(w, r)
	if !ok {
		return
	}

	var req dtos.UpdatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, err.Error(), nil, err)
		return
	}

	resp, err := c.propertyService.Update(r.Context(), id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GET /api/v1/properties
func (c *PropertiesController) ListPropertiesHandler(w http.ResponseWriter, r *http.Request) {
	resp, err := c.propertyService.List(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GET /api/v1/properties/{id}
func (c *PropertiesController) GetPropertyHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePropertyID(w, r)
	if !ok {
		return
	}

	resp, err := c.propertyService.Get(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// DELETE /api/v1/properties/{id}
func (c *PropertiesController) DeletePropertyHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePropertyID(w, r)
	if !ok {
		return
	}

	if err := c.propertyService.Delete(r.Context(), id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/v1/properties/extract
func (c *PropertiesController) ExtractHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, err.Error(), nil, err)
		return
	}

	resp, err := c.extractionService.ExtractUnitsFromDocument(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func parsePropertyID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := mux.Vars(r)["id"]
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid property id", nil, err)
		return uuid.Nil, false
	}
	return id, true
}
