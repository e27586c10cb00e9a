package services

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/AryanKumar02/HomeIQ-sub000/internal/dtos"
	"github.com/AryanKumar02/HomeIQ-sub000/internal/models"
	"github.com/AryanKumar02/HomeIQ-sub000/internal/repositories"
	"github.com/AryanKumar02/HomeIQ-sub000/internal/utils"
)

// TenantService owns the tenant lifecycle outside of tenancy
// assignment: creation, lookup, and archival.
type TenantService struct {
	tenantRepo repositories.TenantRepository
	now        func() time.Time
}

func NewTenantService(tenantRepo repositories.TenantRepository) *TenantService {
	return &TenantService{
		tenantRepo: tenantRepo,
		now:        time.Now,
	}
}

func (s *TenantService) CreateTenant(ctx context.Context, managerID uuid.UUID, req *dtos.CreateTenantRequest) (*models.Tenant, error) {
	now := s.now()
	t := &models.Tenant{
		ID:            uuid.New(),
		ManagerID:     managerID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		PhoneNumber:   req.PhoneNumber,
		AccountStatus: models.TenantAccountActive,
		ApplicationStatus: models.ApplicationStatusRecord{
			Status:    models.ApplicationStatusPending,
			UpdatedAt: now,
		},
		Qualification: models.QualificationRecord{
			Verdict: models.VerdictUnknown,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.tenantRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TenantService) GetTenant(ctx context.Context, managerID, tenantID uuid.UUID) (*models.Tenant, error) {
	t, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if t == nil || t.ManagerID != managerID {
		return nil, notFoundErr("Tenant not found")
	}
	return t, nil
}

func (s *TenantService) ListTenants(ctx context.Context, managerID uuid.UUID) ([]*models.Tenant, error) {
	return s.tenantRepo.ListByManagerID(ctx, managerID)
}

// ArchiveTenant soft-deletes a tenant. A tenant holding an active
// lease must be unassigned first.
func (s *TenantService) ArchiveTenant(ctx context.Context, managerID, tenantID uuid.UUID) error {
	t, err := s.GetTenant(ctx, managerID, tenantID)
	if err != nil {
		return err
	}
	if t.HasActiveLease() {
		return &utils.AppError{
			StatusCode: http.StatusConflict,
			Code:       utils.ErrCodeConflict,
			Message:    "Tenant holds an active lease and cannot be archived",
			Err:        utils.ErrTenantAlreadyHoused,
		}
	}

	err = s.tenantRepo.UpdateWithRetry(ctx, tenantID, func(fresh *models.Tenant) error {
		if fresh.HasActiveLease() {
			return &utils.AppError{
				StatusCode: http.StatusConflict,
				Code:       utils.ErrCodeConflict,
				Message:    "Tenant holds an active lease and cannot be archived",
				Err:        utils.ErrTenantAlreadyHoused,
			}
		}
		fresh.AccountStatus = models.TenantAccountArchived
		return nil
	})
	if err != nil {
		return err
	}
	return s.tenantRepo.SoftDelete(ctx, tenantID)
}
