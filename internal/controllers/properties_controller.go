package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/AryanKumar02/HomeIQ-sub000/internal/dtos"
	"github.com/AryanKumar02/HomeIQ-sub000/internal/services"
	"github.com/AryanKumar02/HomeIQ-sub000/internal/utils"
)

type PropertiesController struct {
	propertyService *services.PropertyService
	validate        *validator.Validate
}

func NewPropertiesController(ps *services.PropertyService) *PropertiesController {
	return &PropertiesController{
		propertyService: ps,
		validate:        validator.New(),
	}
}

// ----------------------------------------------------------------
// POST /api/v1/properties
// ----------------------------------------------------------------
func (c *PropertiesController) CreatePropertyHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	managerID, ok := managerIDFromContext(w, r)
	if !ok {
		return
	}

	var req dtos.CreatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Invalid JSON payload", nil, err,
		)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	property, err := c.propertyService.CreateProperty(ctx, managerID, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, property)
}

// ----------------------------------------------------------------
// GET /api/v1/properties
// ----------------------------------------------------------------
func (c *PropertiesController) ListPropertiesHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	managerID, ok := managerIDFromContext(w, r)
	if !ok {
		return
	}

	properties, err := c.propertyService.ListProperties(ctx, managerID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, properties)
}

// ----------------------------------------------------------------
// GET /api/v1/properties/{propertyId}
// ----------------------------------------------------------------
func (c *PropertiesController) GetPropertyHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	managerID, ok := managerIDFromContext(w, r)
	if !ok {
		return
	}
	propertyID, ok := pathUUID(w, mux.Vars(r)["propertyId"], "property id")
	if !ok {
		return
	}

	property, err := c.propertyService.GetProperty(ctx, managerID, propertyID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, property)
}

// ----------------------------------------------------------------
// DELETE /api/v1/properties/{propertyId}
// ----------------------------------------------------------------
func (c *PropertiesController) ArchivePropertyHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	managerID, ok := managerIDFromContext(w, r)
	if !ok {
		return
	}
	propertyID, ok := pathUUID(w, mux.Vars(r)["propertyId"], "property id")
	if !ok {
		return
	}

	if err := c.propertyService.ArchiveProperty(ctx, managerID, propertyID); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "archived"})
}
