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

/*
TenantStatusService owns the tenant-scoped flows around the
qualification engine: updating facts, evaluating against a candidate
rent, and projecting the application status from the verdict.

The projection is idempotent and single-aggregate; it never touches
the property side.
*/
type TenantStatusService struct {
	tenantRepo repositories.TenantRepository
	engine     *QualificationEngine
	now        func() time.Time
}

func NewTenantStatusService(
	tenantRepo repositories.TenantRepository,
	engine *QualificationEngine,
) *TenantStatusService {
	return &TenantStatusService{
		tenantRepo: tenantRepo,
		engine:     engine,
		now:        time.Now,
	}
}

// Project recomputes the cached verdict from current facts and derives
// the application status from it, unless a manual override pins the
// status. Re-running with unchanged facts changes nothing: audit
// fields a human entered (rejection reason, approval date) survive.
func (s *TenantStatusService) Project(t *models.Tenant) {
	if t.Qualification.CandidateRent > 0 {
		at := s.now()
		rec := s.engine.Evaluate(t, t.Qualification.CandidateRent)
		rec.EvaluatedAt = &at
		t.Qualification = rec
	} else {
		t.Qualification.Verdict = models.VerdictUnknown
	}
	s.projectStatusOnly(t)
}

// RecomputeStatus re-derives verdict and application status and
// persists the tenant. Idempotent.
func (s *TenantStatusService) RecomputeStatus(ctx context.Context, managerID, tenantID uuid.UUID) (*models.Tenant, error) {
	if _, err := s.ownedTenant(ctx, managerID, tenantID); err != nil {
		return nil, err
	}
	err := s.tenantRepo.UpdateWithRetry(ctx, tenantID, func(t *models.Tenant) error {
		s.Project(t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.tenantRepo.GetByID(ctx, tenantID)
}

// EvaluateQualification runs the engine against a candidate rent,
// caches the verdict on the tenant and reprojects the status.
func (s *TenantStatusService) EvaluateQualification(
	ctx context.Context,
	managerID, tenantID uuid.UUID,
	candidateRent float64,
) (*models.QualificationRecord, error) {
	if _, err := s.ownedTenant(ctx, managerID, tenantID); err != nil {
		return nil, err
	}

	var out models.QualificationRecord
	err := s.tenantRepo.UpdateWithRetry(ctx, tenantID, func(t *models.Tenant) error {
		at := s.now()
		rec := s.engine.Evaluate(t, candidateRent)
		rec.EvaluatedAt = &at
		t.Qualification = rec
		s.projectStatusOnly(t)
		out = t.Qualification
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateFacts applies a partial facts update and reprojects.
func (s *TenantStatusService) UpdateFacts(
	ctx context.Context,
	managerID uuid.UUID,
	req dtos.TenantFactsRequest,
) (*models.Tenant, error) {
	if _, err := s.ownedTenant(ctx, managerID, req.TenantID); err != nil {
		return nil, err
	}
	err := s.tenantRepo.UpdateWithRetry(ctx, req.TenantID, func(t *models.Tenant) error {
		if req.RightToOccupy != nil {
			t.RightToOccupy = *req.RightToOccupy
		}
		if req.EmploymentIncome != nil {
			t.EmploymentIncome = *req.EmploymentIncome
		}
		if req.Affordability != nil {
			t.Affordability = *req.Affordability
		}
		if req.Guarantor != nil {
			t.Guarantor = *req.Guarantor
		}
		if req.Referencing != nil {
			t.Referencing = *req.Referencing
		}
		s.Project(t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.tenantRepo.GetByID(ctx, req.TenantID)
}

// SetStatusOverride pins the application status until cleared.
func (s *TenantStatusService) SetStatusOverride(
	ctx context.Context,
	managerID uuid.UUID,
	req dtos.StatusOverrideRequest,
) (*models.Tenant, error) {
	if _, err := s.ownedTenant(ctx, managerID, req.TenantID); err != nil {
		return nil, err
	}
	err := s.tenantRepo.UpdateWithRetry(ctx, req.TenantID, func(t *models.Tenant) error {
		t.ApplicationStatus.Status = req.Status
		t.ApplicationStatus.ManualOverride = true
		t.ApplicationStatus.UpdatedAt = s.now()
		t.ApplicationStatus.UpdatedBy = &managerID
		if req.RejectionReason != "" {
			t.ApplicationStatus.RejectionReason = req.RejectionReason
		}
		if req.Status == models.ApplicationStatusApproved && t.ApplicationStatus.ApprovedAt == nil {
			at := s.now()
			t.ApplicationStatus.ApprovedAt = &at
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.tenantRepo.GetByID(ctx, req.TenantID)
}

// ClearStatusOverride drops the manual pin and reprojects from the
// current verdict.
func (s *TenantStatusService) ClearStatusOverride(
	ctx context.Context,
	managerID, tenantID uuid.UUID,
) (*models.Tenant, error) {
	if _, err := s.ownedTenant(ctx, managerID, tenantID); err != nil {
		return nil, err
	}
	err := s.tenantRepo.UpdateWithRetry(ctx, tenantID, func(t *models.Tenant) error {
		t.ApplicationStatus.ManualOverride = false
		t.ApplicationStatus.UpdatedAt = s.now()
		t.ApplicationStatus.UpdatedBy = &managerID
		s.Project(t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.tenantRepo.GetByID(ctx, tenantID)
}

/* ---------- internals ---------- */

// projectStatusOnly maps the already-computed verdict without
// re-running the engine.
func (s *TenantStatusService) projectStatusOnly(t *models.Tenant) {
	if t.ApplicationStatus.ManualOverride {
		return
	}
	var next models.ApplicationStatusType
	switch t.Qualification.Verdict {
	case models.VerdictQualified:
		next = models.ApplicationStatusApproved
	case models.VerdictNotQualified:
		next = models.ApplicationStatusRejected
	case models.VerdictNeedsReview:
		next = models.ApplicationStatusUnderReview
	default:
		next = models.ApplicationStatusPending
	}
	if t.ApplicationStatus.Status == next {
		return
	}
	t.ApplicationStatus.Status = next
	t.ApplicationStatus.UpdatedAt = s.now()
	if next == models.ApplicationStatusApproved && t.ApplicationStatus.ApprovedAt == nil {
		at := s.now()
		t.ApplicationStatus.ApprovedAt = &at
	}
}

func (s *TenantStatusService) ownedTenant(ctx context.Context, managerID, tenantID uuid.UUID) (*models.Tenant, error) {
	t, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if t == nil || t.ManagerID != managerID {
		return nil, &utils.AppError{
			StatusCode: http.StatusNotFound,
			Code:       utils.ErrCodeNotFound,
			Message:    "Tenant not found",
			Err:        utils.ErrNotFound,
		}
	}
	return t, nil
}
