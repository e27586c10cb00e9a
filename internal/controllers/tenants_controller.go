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

type TenantsController struct {
	tenantService *services.TenantService
	statusService *services.TenantStatusService
	validate      *validator.Validate
}

func NewTenantsController(ts *services.TenantService, ss *services.TenantStatusService) *TenantsController {
	return &TenantsController{
		tenantService: ts,
		statusService: ss,
		validate:      validator.New(),
	}
}

// ----------------------------------------------------------------
// POST /api/v1/tenants
// ----------------------------------------------------------------
func (c *TenantsController) CreateTenantHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	managerID, ok := managerIDFromContext(w, r)
	if !ok {
		return
	}

	var req dtos.CreateTenantRequest
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

	tenant, err := c.tenantService.CreateTenant(ctx, managerID, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, tenant)
}

// ----------------------------------------------------------------
// GET /api/v1/tenants
// ----------------------------------------------------------------
func (c *TenantsController) ListTenantsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	managerID, ok := managerIDFromContext(w, r)
	if !ok {
		return
	}

	tenants, err := c.tenantService.ListTenants(ctx, managerID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tenants)
}

// ----------------------------------------------------------------
// GET /api/v1/tenants/{tenantId}
// ----------------------------------------------------------------
func (c *TenantsController) GetTenantHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	managerID, ok := managerIDFromContext(w, r)
	if !ok {
		return
	}
	tenantID, ok := pathUUID(w, mux.Vars(r)["tenantId"], "tenant id")
	if !ok {
		return
	}

	tenant, err := c.tenantService.GetTenant(ctx, managerID, tenantID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tenant)
}

// ----------------------------------------------------------------
// DELETE /api/v1/tenants/{tenantId}
// ----------------------------------------------------------------
func (c *TenantsController) ArchiveTenantHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	managerID, ok := managerIDFromContext(w, r)
	if !ok {
		return
	}
	tenantID, ok := pathUUID(w, mux.Vars(r)["tenantId"], "tenant id")
	if !ok {
		return
	}

	if err := c.tenantService.ArchiveTenant(ctx, managerID, tenantID); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "archived"})
}

// ----------------------------------------------------------------
// PATCH /api/v1/tenants/facts
// ----------------------------------------------------------------
func (c *TenantsController) UpdateFactsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	managerID, ok := managerIDFromContext(w, r)
	if !ok {
		return
	}

	var req dtos.TenantFactsRequest
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

	tenant, err := c.statusService.UpdateFacts(ctx, managerID, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tenant)
}

// ----------------------------------------------------------------
// POST /api/v1/tenants/qualification/evaluate
// ----------------------------------------------------------------
func (c *TenantsController) EvaluateQualificationHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	managerID, ok := managerIDFromContext(w, r)
	if !ok {
		return
	}

	var req dtos.EvaluateQualificationRequest
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

	record, err := c.statusService.EvaluateQualification(ctx, managerID, req.TenantID, req.CandidateRent)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, record)
}

// ----------------------------------------------------------------
// POST /api/v1/tenants/status/recompute
// ----------------------------------------------------------------
func (c *TenantsController) RecomputeStatusHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	managerID, ok := managerIDFromContext(w, r)
	if !ok {
		return
	}

	var req dtos.RecomputeStatusRequest
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

	tenant, err := c.statusService.RecomputeStatus(ctx, managerID, req.TenantID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tenant)
}

// ----------------------------------------------------------------
// PUT /api/v1/tenants/status/override
// ----------------------------------------------------------------
func (c *TenantsController) SetStatusOverrideHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	managerID, ok := managerIDFromContext(w, r)
	if !ok {
		return
	}

	var req dtos.StatusOverrideRequest
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

	tenant, err := c.statusService.SetStatusOverride(ctx, managerID, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tenant)
}

// ----------------------------------------------------------------
// DELETE /api/v1/tenants/status/override
// ----------------------------------------------------------------
func (c *TenantsController) ClearStatusOverrideHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	managerID, ok := managerIDFromContext(w, r)
	if !ok {
		return
	}

	var req dtos.ClearStatusOverrideRequest
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

	tenant, err := c.statusService.ClearStatusOverride(ctx, managerID, req.TenantID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tenant)
}
