package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"

	"github.com/AryanKumar02/HomeIQ-sub000/internal/config"
	"github.com/AryanKumar02/HomeIQ-sub000/internal/models"
	"github.com/AryanKumar02/HomeIQ-sub000/internal/repositories"
	"github.com/AryanKumar02/HomeIQ-sub000/internal/utils"
)

// slotKey identifies a lettable space. A zero UnitID means the
// property-level occupancy record.
type slotKey struct {
	PropertyID uuid.UUID
	UnitID     uuid.UUID
}

func slotOf(propertyID uuid.UUID, unitID *uuid.UUID) slotKey {
	k := slotKey{PropertyID: propertyID}
	if unitID != nil {
		k.UnitID = *unitID
	}
	return k
}

func (k slotKey) String() string {
	if k.UnitID == uuid.Nil {
		return k.PropertyID.String()
	}
	return fmt.Sprintf("%s/unit/%s", k.PropertyID, k.UnitID)
}

// claim is an ACTIVE lease viewed from the tenant ledger side.
type claim struct {
	TenantID uuid.UUID
	Lease    *models.Lease
}

/*
ReconciliationService pairs the two sources of truth that the
assignment saga writes separately. The tenant lease ledger is
authoritative for whether a tenancy exists; the property occupancy
record is authoritative for whether the slot is lettable. A sweep
finds the disagreements the saga's compensation path can leave behind:

  - ghost occupancy: slot marked occupied, no ACTIVE lease claims it
  - orphan lease: ACTIVE lease exists, slot marked vacant
  - conflict: slot held by one tenant while a different tenant's
    ACTIVE lease claims it

Ghosts and orphans are mechanically repairable and are fixed in place
when auto repair is enabled. Conflicts never auto-repair; the manager
is notified instead. Every repair is an idempotent versioned write, so
overlapping sweeps are harmless.
*/
type ReconciliationService struct {
	cfg            *config.Config
	tenantRepo     repositories.TenantRepository
	propRepo       repositories.PropertyRepository
	pmRepo         repositories.PropertyManagerRepository
	twilioClient   *twilio.RestClient
	sendgridClient *sendgrid.Client
	now            func() time.Time
}

func NewReconciliationService(
	cfg *config.Config,
	tenantRepo repositories.TenantRepository,
	propRepo repositories.PropertyRepository,
	pmRepo repositories.PropertyManagerRepository,
) *ReconciliationService {
	twClient := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})
	sgClient := sendgrid.NewSendClient(cfg.SendGridAPIKey)

	return &ReconciliationService{
		cfg:            cfg,
		tenantRepo:     tenantRepo,
		propRepo:       propRepo,
		pmRepo:         pmRepo,
		twilioClient:   twClient,
		sendgridClient: sgClient,
		now:            time.Now,
	}
}

// ReconcileReport summarizes one sweep. Counts reflect findings, not
// necessarily applied repairs (auto repair may be off).
type ReconcileReport struct {
	SlotsChecked  int
	Ghosts        int
	Orphans       int
	Conflicts     int
	RepairsFailed int
}

// RunReconciliation performs one full sweep. Errors listing either
// side abort the sweep; per-slot repair errors are counted and logged
// so one bad row cannot starve the rest.
func (s *ReconciliationService) RunReconciliation(ctx context.Context) (*ReconcileReport, error) {
	utils.Logger.Debug("Running occupancy reconciliation sweep...")

	tenants, err := s.tenantRepo.ListAllTenants(ctx)
	if err != nil {
		return nil, fmt.Errorf("reconciliation: listing tenants: %w", err)
	}
	props, err := s.propRepo.ListAllProperties(ctx)
	if err != nil {
		return nil, fmt.Errorf("reconciliation: listing properties: %w", err)
	}

	claims := make(map[slotKey]claim)
	for _, t := range tenants {
		for i := range t.Leases {
			l := &t.Leases[i]
			if l.Status != models.LeaseStatusActive {
				continue
			}
			key := slotOf(l.PropertyID, l.UnitID)
			if prev, dup := claims[key]; dup {
				// Two ACTIVE leases on one slot is itself a conflict;
				// keep the earlier one as the claimant and flag.
				utils.Logger.WithFields(logrus.Fields{
					"slot":     key.String(),
					"tenant_a": prev.TenantID,
					"tenant_b": t.ID,
				}).Error("Duplicate active leases claim one space")
				continue
			}
			claims[key] = claim{TenantID: t.ID, Lease: l}
		}
	}

	report := &ReconcileReport{}
	for _, p := range props {
		s.reconcileProperty(ctx, p, claims, report)
	}

	utils.Logger.WithFields(logrus.Fields{
		"slots_checked":  report.SlotsChecked,
		"ghosts":         report.Ghosts,
		"orphans":        report.Orphans,
		"conflicts":      report.Conflicts,
		"repairs_failed": report.RepairsFailed,
	}).Info("Reconciliation sweep finished")
	return report, nil
}

func (s *ReconciliationService) reconcileProperty(
	ctx context.Context,
	p *models.Property,
	claims map[slotKey]claim,
	report *ReconcileReport,
) {
	if p.PropertyType.IsMultiUnit() {
		for i := range p.Units {
			u := &p.Units[i]
			key := slotOf(p.ID, &u.ID)
			s.reconcileSlot(ctx, p, key, &u.Occupancy, claims[key], report)
		}
		return
	}
	key := slotOf(p.ID, nil)
	occ := p.OccupancyFor(nil)
	if occ == nil {
		return
	}
	s.reconcileSlot(ctx, p, key, occ, claims[key], report)
}

func (s *ReconciliationService) reconcileSlot(
	ctx context.Context,
	p *models.Property,
	key slotKey,
	occ *models.Occupancy,
	cl claim,
	report *ReconcileReport,
) {
	report.SlotsChecked++
	occupiedBy := uuid.Nil
	if occ.IsOccupied && occ.TenantID != nil {
		occupiedBy = *occ.TenantID
	}
	claimedBy := cl.TenantID

	switch {
	case occupiedBy == claimedBy:
		// Consistent, whether both empty or both the same tenant.
		return

	case occupiedBy != uuid.Nil && claimedBy == uuid.Nil:
		report.Ghosts++
		utils.Logger.WithFields(logrus.Fields{
			"slot":      key.String(),
			"tenant_id": occupiedBy,
		}).Warn("Ghost occupancy: no active lease backs this record")
		if s.cfg.ReconcilerAutoRepair {
			s.repairVacate(ctx, key, occupiedBy, report)
		}

	case occupiedBy == uuid.Nil && claimedBy != uuid.Nil:
		report.Orphans++
		utils.Logger.WithFields(logrus.Fields{
			"slot":      key.String(),
			"tenant_id": claimedBy,
		}).Warn("Orphan lease: active lease with a vacant occupancy record")
		if s.cfg.ReconcilerAutoRepair {
			s.repairOccupy(ctx, key, cl, report)
		}

	default:
		// Occupied by one tenant, claimed by another. Not mechanically
		// repairable: flag for the manager.
		report.Conflicts++
		utils.Logger.WithFields(logrus.Fields{
			"slot":        key.String(),
			"occupied_by": occupiedBy,
			"claimed_by":  claimedBy,
		}).Error("Occupancy conflict: lease ledger and occupancy record disagree on tenant")
		s.escalateConflict(ctx, p, key, occupiedBy, claimedBy)
	}
}

// repairVacate clears a ghost occupancy record. The mutate re-checks
// that the same tenant still holds the slot and that the ledger still
// has no claim shape for it, so a racing assignment is never undone.
func (s *ReconciliationService) repairVacate(ctx context.Context, key slotKey, ghostTenant uuid.UUID, report *ReconcileReport) {
	unitID := unitPtr(key)
	err := s.propRepo.UpdateWithRetry(ctx, key.PropertyID, func(p *models.Property) error {
		occ := p.OccupancyFor(unitID)
		if occ == nil || !occ.HeldBy(ghostTenant) {
			return nil
		}
		occ.Vacate()
		return nil
	})
	if err != nil {
		report.RepairsFailed++
		utils.Logger.WithError(err).Errorf("Failed to vacate ghost occupancy for %s", key)
		return
	}
	utils.Logger.Infof("Repaired ghost occupancy for %s", key)
}

// repairOccupy restores an orphan lease's occupancy record. The slot
// is claimed only if it is still free at write time.
func (s *ReconciliationService) repairOccupy(ctx context.Context, key slotKey, cl claim, report *ReconcileReport) {
	unitID := unitPtr(key)
	err := s.propRepo.UpdateWithRetry(ctx, key.PropertyID, func(p *models.Property) error {
		occ := p.OccupancyFor(unitID)
		if occ == nil || occ.IsOccupied {
			return nil
		}
		occ.Occupy(cl.TenantID, cl.Lease.StartDate, cl.Lease.EndDate)
		return nil
	})
	if err != nil {
		report.RepairsFailed++
		utils.Logger.WithError(err).Errorf("Failed to restore occupancy for %s", key)
		return
	}
	utils.Logger.Infof("Repaired orphan lease occupancy for %s", key)
}

func (s *ReconciliationService) escalateConflict(ctx context.Context, p *models.Property, key slotKey, occupiedBy, claimedBy uuid.UUID) {
	manager, err := s.pmRepo.GetByID(ctx, p.ManagerID)
	if err != nil || manager == nil {
		utils.Logger.WithError(err).Errorf("Cannot load manager %s for conflict escalation", p.ManagerID)
		return
	}
	detail := fmt.Sprintf(
		"Occupancy record names tenant %s but tenant %s holds the active lease.",
		occupiedBy, claimedBy,
	)
	NotifyManagerEscalation(
		s.cfg.OrganizationName,
		s.cfg.SendgridFromEmail,
		s.cfg.TwilioFromPhone,
		s.cfg.SendgridSandboxMode,
		s.twilioClient,
		s.sendgridClient,
		manager,
		p,
		key.String(),
		detail,
	)
}

func unitPtr(key slotKey) *uuid.UUID {
	if key.UnitID == uuid.Nil {
		return nil
	}
	u := key.UnitID
	return &u
}
