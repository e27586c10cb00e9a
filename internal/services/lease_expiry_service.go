package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/AryanKumar02/HomeIQ-sub000/internal/models"
	"github.com/AryanKumar02/HomeIQ-sub000/internal/repositories"
	"github.com/AryanKumar02/HomeIQ-sub000/internal/utils"
)

// LeaseExpiryService runs on the daily cron and transitions ACTIVE
// leases whose end date has passed to EXPIRED, releasing the occupancy
// record the lease held. Each tenant and property write is versioned,
// so a rerun after a partial failure simply picks up where it left off.
type LeaseExpiryService struct {
	tenantRepo repositories.TenantRepository
	propRepo   repositories.PropertyRepository
	now        func() time.Time
}

func NewLeaseExpiryService(
	tenantRepo repositories.TenantRepository,
	propRepo repositories.PropertyRepository,
) *LeaseExpiryService {
	return &LeaseExpiryService{
		tenantRepo: tenantRepo,
		propRepo:   propRepo,
		now:        time.Now,
	}
}

func (s *LeaseExpiryService) RunExpiryCheck(ctx context.Context) error {
	utils.Logger.Debug("Running lease expiry check...")
	now := s.now()

	tenants, err := s.tenantRepo.ListAllTenants(ctx)
	if err != nil {
		return err
	}

	expired := 0
	for _, t := range tenants {
		var done []models.Lease
		for i := range t.Leases {
			l := t.Leases[i]
			if l.Status == models.LeaseStatusActive && l.EndDate.Before(now) {
				done = append(done, l)
			}
		}
		if len(done) == 0 {
			continue
		}

		err := s.tenantRepo.UpdateWithRetry(ctx, t.ID, func(fresh *models.Tenant) error {
			for _, d := range done {
				l := fresh.LeaseByID(d.ID)
				if l == nil || l.Status != models.LeaseStatusActive || !l.EndDate.Before(now) {
					continue
				}
				l.Status = models.LeaseStatusExpired
			}
			return nil
		})
		if err != nil {
			utils.Logger.WithError(err).Errorf("Failed to expire leases for tenant %s", t.ID)
			continue
		}

		for _, d := range done {
			s.releaseOccupancy(ctx, t.ID, d)
			expired++
		}
	}

	if expired > 0 {
		utils.Logger.WithFields(logrus.Fields{"expired": expired}).Info("Lease expiry check finished")
	}
	return nil
}

func (s *LeaseExpiryService) releaseOccupancy(ctx context.Context, tenantID uuid.UUID, lease models.Lease) {
	err := s.propRepo.UpdateWithRetry(ctx, lease.PropertyID, func(p *models.Property) error {
		occ := p.OccupancyFor(lease.UnitID)
		if occ != nil && occ.HeldBy(tenantID) {
			occ.Vacate()
		}
		return nil
	})
	if err != nil {
		utils.Logger.WithError(err).Errorf("Failed to vacate occupancy for expired lease %s", lease.ID)
	}
}
