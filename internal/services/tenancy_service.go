package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/AryanKumar02/HomeIQ-sub000/internal/constants"
	"github.com/AryanKumar02/HomeIQ-sub000/internal/dtos"
	"github.com/AryanKumar02/HomeIQ-sub000/internal/models"
	"github.com/AryanKumar02/HomeIQ-sub000/internal/repositories"
	"github.com/AryanKumar02/HomeIQ-sub000/internal/utils"
)

/*
TenancyService coordinates the two-aggregate write that binds a tenant
and a property space. The two writes are not atomic with each other,
so the ordering and failure handling matter:

 1. the lease is appended to the tenant ledger first (versioned write),
 2. the occupancy record is then claimed with a conditional
    UpdateIfVersion against the version read during the availability
    check.

The conditional write is the serialization point: two concurrent
assigns against the same slot cannot both satisfy it, so the first
committer wins and the loser re-reads, compensates its lease and
reports AlreadyOccupied. If compensation itself fails the pair is left
detectably inconsistent and the reconciliation sweep repairs it.
*/
type TenancyService struct {
	tenantRepo repositories.TenantRepository
	propRepo   repositories.PropertyRepository
	engine     *QualificationEngine
	status     *TenantStatusService
	now        func() time.Time
}

func NewTenancyService(
	tenantRepo repositories.TenantRepository,
	propRepo repositories.PropertyRepository,
	engine *QualificationEngine,
	status *TenantStatusService,
) *TenancyService {
	return &TenancyService{
		tenantRepo: tenantRepo,
		propRepo:   propRepo,
		engine:     engine,
		status:     status,
		now:        time.Now,
	}
}

func (s *TenancyService) AssignTenant(
	ctx context.Context,
	managerID, tenantID, propertyID uuid.UUID,
	unitID *uuid.UUID,
	terms dtos.LeaseTermsRequest,
) (*dtos.AssignmentResult, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil || tenant.ManagerID != managerID {
		return nil, notFoundErr("Tenant not found")
	}
	if tenant.AccountStatus != models.TenantAccountActive {
		return nil, &utils.AppError{
			StatusCode: http.StatusConflict,
			Code:       utils.ErrCodeTenantNotActive,
			Message:    "Tenant account is not active",
			Err:        utils.ErrTenantNotActive,
		}
	}
	// Caller policy applied uniformly here: one active lease per
	// tenant system-wide. The ledger itself only forbids duplicates
	// per (property, unit) pair.
	if tenant.HasActiveLease() {
		return nil, &utils.AppError{
			StatusCode: http.StatusConflict,
			Code:       utils.ErrCodeTenantAlreadyHoused,
			Message:    "Tenant already holds an active lease",
			Err:        utils.ErrTenantAlreadyHoused,
		}
	}

	prop, err := s.propRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil || prop.ManagerID != managerID {
		return nil, notFoundErr("Property not found")
	}

	if prop.PropertyType.IsMultiUnit() && unitID == nil {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeUnitRequired,
			Message:    "A unit must be specified for a multi-unit property",
			Err:        utils.ErrUnitRequired,
		}
	}
	if !prop.PropertyType.IsMultiUnit() && unitID != nil {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeUnitNotAllowed,
			Message:    "This property type does not have units",
			Err:        utils.ErrUnitNotAllowed,
		}
	}

	occ := prop.OccupancyFor(unitID)
	if occ == nil {
		return nil, notFoundErr("Unit not found")
	}
	if occ.IsOccupied && occ.TenantID != nil {
		return nil, alreadyOccupiedErr()
	}

	lease, err := s.materializeLease(tenantID, propertyID, unitID, prop, terms)
	if err != nil {
		return nil, err
	}

	// Step 1 of the saga: append the ACTIVE lease to the tenant
	// ledger. The mutate re-checks the ledger invariants because a
	// concurrent writer may have gotten there between our read and
	// the versioned write.
	err = s.tenantRepo.UpdateWithRetry(ctx, tenantID, func(t *models.Tenant) error {
		if t.HasActiveLease() {
			return &utils.AppError{
				StatusCode: http.StatusConflict,
				Code:       utils.ErrCodeTenantAlreadyHoused,
				Message:    "Tenant already holds an active lease",
				Err:        utils.ErrTenantAlreadyHoused,
			}
		}
		if t.ActiveLease(propertyID, unitID) != nil {
			return &utils.AppError{
				StatusCode: http.StatusConflict,
				Code:       utils.ErrCodeConflict,
				Message:    "Tenant already has an active lease for this space",
				Err:        utils.ErrLeaseExists,
			}
		}
		t.Leases = append(t.Leases, *lease)

		// Advisory only: the verdict is stored, it never blocks.
		at := s.now()
		rec := s.engine.Evaluate(t, lease.MonthlyRent)
		rec.EvaluatedAt = &at
		t.Qualification = rec
		s.status.projectStatusOnly(t)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Step 2: claim the occupancy record. First committer wins.
	if err := s.occupyWithRetry(ctx, prop, tenantID, unitID, lease); err != nil {
		s.compensateLease(ctx, tenantID, lease.ID)
		return nil, err
	}

	updatedTenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	updatedProp, err := s.propRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	utils.Logger.WithFields(logrus.Fields{
		"tenant_id":   tenantID,
		"property_id": propertyID,
		"lease_id":    lease.ID,
	}).Info("Tenant assigned")

	return &dtos.AssignmentResult{
		Tenant:   updatedTenant,
		Property: updatedProp,
		Lease:    lease,
	}, nil
}

func (s *TenancyService) UnassignTenant(
	ctx context.Context,
	managerID, tenantID, propertyID uuid.UUID,
	unitID *uuid.UUID,
) (*dtos.UnassignmentResult, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil || tenant.ManagerID != managerID {
		return nil, notFoundErr("Tenant not found")
	}
	if tenant.ActiveLease(propertyID, unitID) == nil {
		return nil, noActiveLeaseErr()
	}

	prop, err := s.propRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil || prop.ManagerID != managerID {
		return nil, notFoundErr("Property not found")
	}

	// Terminate the lease first; the mutate re-locates it so a
	// concurrent termination surfaces as NoActiveLease rather than a
	// double transition.
	terminatedAt := s.now()
	err = s.tenantRepo.UpdateWithRetry(ctx, tenantID, func(t *models.Tenant) error {
		l := t.ActiveLease(propertyID, unitID)
		if l == nil {
			return noActiveLeaseErr()
		}
		if !l.Terminate(terminatedAt, models.TerminationReasonManagerRequest) {
			return noActiveLeaseErr()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Then release the occupancy record. A failure here leaves a
	// terminated lease with a still-occupied slot; the sweep vacates
	// it, so we log instead of failing the whole operation backwards.
	err = s.propRepo.UpdateWithRetry(ctx, propertyID, func(p *models.Property) error {
		occ := p.OccupancyFor(unitID)
		if occ == nil {
			return fmt.Errorf("occupancy record missing for property %s", propertyID)
		}
		if occ.HeldBy(tenantID) {
			occ.Vacate()
		}
		return nil
	})
	if err != nil {
		utils.Logger.WithError(err).WithFields(logrus.Fields{
			"tenant_id":   tenantID,
			"property_id": propertyID,
		}).Error("Occupancy release failed after lease termination; reconciliation will repair")
	}

	updatedTenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	updatedProp, err := s.propRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	utils.Logger.WithFields(logrus.Fields{
		"tenant_id":   tenantID,
		"property_id": propertyID,
	}).Info("Tenant unassigned")

	return &dtos.UnassignmentResult{
		Tenant:   updatedTenant,
		Property: updatedProp,
	}, nil
}

/* ---------- internals ---------- */

func (s *TenancyService) materializeLease(
	tenantID, propertyID uuid.UUID,
	unitID *uuid.UUID,
	prop *models.Property,
	terms dtos.LeaseTermsRequest,
) (*models.Lease, error) {
	now := s.now()

	start := now
	if terms.StartDate != nil {
		start = *terms.StartDate
	}
	end := start.AddDate(0, constants.DefaultLeaseTermMonths, 0)
	if terms.EndDate != nil {
		end = *terms.EndDate
	}
	if !start.Before(end) || !end.After(now) {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeInvalidDates,
			Message:    "Lease start must precede end, and end must be in the future",
			Err:        utils.ErrInvalidDates,
		}
	}

	rent, deposit := prop.RentFor(unitID)
	if terms.MonthlyRent != nil {
		rent = *terms.MonthlyRent
	}
	if terms.SecurityDeposit != nil {
		deposit = *terms.SecurityDeposit
	}

	return &models.Lease{
		ID:              uuid.New(),
		PropertyID:      propertyID,
		UnitID:          unitID,
		StartDate:       start,
		EndDate:         end,
		MonthlyRent:     rent,
		SecurityDeposit: deposit,
		Status:          models.LeaseStatusActive,
		CreatedAt:       now,
	}, nil
}

// occupyWithRetry performs the conditional occupancy write. `prop` was
// read during the availability check; its row version anchors the
// first attempt. A version miss means somebody else wrote the
// aggregate: we re-read, and only retry when the slot is still free.
func (s *TenancyService) occupyWithRetry(
	ctx context.Context,
	prop *models.Property,
	tenantID uuid.UUID,
	unitID *uuid.UUID,
	lease *models.Lease,
) error {
	current := prop
	for attempt := 0; attempt < constants.MaxOccupancyWriteAttempts; attempt++ {
		occ := current.OccupancyFor(unitID)
		if occ == nil {
			return notFoundErr("Unit not found")
		}
		if occ.IsOccupied && occ.TenantID != nil {
			return alreadyOccupiedErr()
		}

		expected := current.RowVersion
		occ.Occupy(tenantID, lease.StartDate, lease.EndDate)

		tag, err := s.propRepo.UpdateIfVersion(ctx, current, expected)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 1 {
			return nil
		}

		// Version conflict: somebody committed first. Re-read to see
		// whether the slot itself was taken.
		latest, err := s.propRepo.GetByID(ctx, current.ID)
		if err != nil {
			return err
		}
		if latest == nil {
			return notFoundErr("Property not found")
		}
		current = latest
	}
	return utils.NewRowVersionConflictError(current)
}

// compensateLease terminates the just-created lease after the
// occupancy claim failed. Best effort: if this also fails the pair is
// inconsistent but detectable, and the reconciliation sweep owns it.
func (s *TenancyService) compensateLease(ctx context.Context, tenantID, leaseID uuid.UUID) {
	err := s.tenantRepo.UpdateWithRetry(ctx, tenantID, func(t *models.Tenant) error {
		l := t.LeaseByID(leaseID)
		if l == nil || l.Status != models.LeaseStatusActive {
			return nil
		}
		l.Terminate(s.now(), models.TerminationReasonAssignmentRollback)
		return nil
	})
	if err != nil {
		utils.Logger.WithError(err).WithFields(logrus.Fields{
			"tenant_id": tenantID,
			"lease_id":  leaseID,
		}).Error("Lease compensation failed; reconciliation will repair")
	}
}

func notFoundErr(msg string) error {
	return &utils.AppError{
		StatusCode: http.StatusNotFound,
		Code:       utils.ErrCodeNotFound,
		Message:    msg,
		Err:        utils.ErrNotFound,
	}
}

func alreadyOccupiedErr() error {
	return &utils.AppError{
		StatusCode: http.StatusConflict,
		Code:       utils.ErrCodeAlreadyOccupied,
		Message:    "The space is already occupied",
		Err:        utils.ErrAlreadyOccupied,
	}
}

func noActiveLeaseErr() error {
	return &utils.AppError{
		StatusCode: http.StatusConflict,
		Code:       utils.ErrCodeNoActiveLease,
		Message:    "Tenant has no active lease for this space",
		Err:        utils.ErrNoActiveLease,
	}
}
