package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/AryanKumar02/HomeIQ-sub000/internal/dtos"
	"github.com/AryanKumar02/HomeIQ-sub000/internal/services"
	"github.com/AryanKumar02/HomeIQ-sub000/internal/utils"
)

type TenancyController struct {
	tenancyService *services.TenancyService
	validate       *validator.Validate
}

func NewTenancyController(ts *services.TenancyService) *TenancyController {
	return &TenancyController{
		tenancyService: ts,
		validate:       validator.New(),
	}
}

// ----------------------------------------------------------------
// POST /api/v1/tenancies/assign
// ----------------------------------------------------------------
func (c *TenancyController) AssignHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	managerID, ok := managerIDFromContext(w, r)
	if !ok {
		return
	}

	var req dtos.AssignTenancyRequest
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

	result, err := c.tenancyService.AssignTenant(ctx, managerID, req.TenantID, req.PropertyID, req.UnitID, req.Terms)
	if err != nil {
		switch e := err.(type) {
		case *utils.RowVersionConflictError:
			utils.RespondErrorWithCode(
				w, http.StatusConflict, utils.ErrCodeRowVersionConflict,
				"Another update occurred, please refresh", e.Current, err,
			)
		default:
			utils.HandleAppError(w, err)
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, result)
}

// ----------------------------------------------------------------
// POST /api/v1/tenancies/unassign
// ----------------------------------------------------------------
func (c *TenancyController) UnassignHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	managerID, ok := managerIDFromContext(w, r)
	if !ok {
		return
	}

	var req dtos.UnassignTenancyRequest
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

	result, err := c.tenancyService.UnassignTenant(ctx, managerID, req.TenantID, req.PropertyID, req.UnitID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, result)
}
