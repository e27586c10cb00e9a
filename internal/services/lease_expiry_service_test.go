package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AryanKumar02/HomeIQ-sub000/internal/models"
)

func TestExpiryCheckExpiresPastLeases(t *testing.T) {
	tenantRepo := newFakeTenantRepo()
	propRepo := newFakePropertyRepo()
	svc := NewLeaseExpiryService(tenantRepo, propRepo)
	ctx := context.Background()
	managerID := uuid.New()

	tenant := qualifiedTenant(managerID)
	prop := singleLetProperty(managerID)
	now := time.Now()
	lease := models.Lease{
		ID:         uuid.New(),
		PropertyID: prop.ID,
		StartDate:  now.AddDate(-1, 0, 0),
		EndDate:    now.AddDate(0, 0, -1),
		Status:     models.LeaseStatusActive,
		CreatedAt:  now.AddDate(-1, 0, 0),
	}
	tenant.Leases = []models.Lease{lease}
	prop.Occupancy.Occupy(tenant.ID, lease.StartDate, lease.EndDate)

	require.NoError(t, tenantRepo.Create(ctx, tenant))
	require.NoError(t, propRepo.Create(ctx, prop))

	require.NoError(t, svc.RunExpiryCheck(ctx))

	storedTenant, err := tenantRepo.GetByID(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LeaseStatusExpired, storedTenant.Leases[0].Status)
	assert.False(t, storedTenant.HasActiveLease())

	storedProp, err := propRepo.GetByID(ctx, prop.ID)
	require.NoError(t, err)
	assert.False(t, storedProp.Occupancy.IsOccupied)
}

func TestExpiryCheckLeavesCurrentLeasesAlone(t *testing.T) {
	tenantRepo := newFakeTenantRepo()
	propRepo := newFakePropertyRepo()
	svc := NewLeaseExpiryService(tenantRepo, propRepo)
	ctx := context.Background()
	managerID := uuid.New()

	tenant := qualifiedTenant(managerID)
	prop := singleLetProperty(managerID)
	lease := activeLeaseFor(prop, nil)
	tenant.Leases = []models.Lease{lease}
	prop.Occupancy.Occupy(tenant.ID, lease.StartDate, lease.EndDate)

	require.NoError(t, tenantRepo.Create(ctx, tenant))
	require.NoError(t, propRepo.Create(ctx, prop))

	require.NoError(t, svc.RunExpiryCheck(ctx))

	storedTenant, err := tenantRepo.GetByID(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LeaseStatusActive, storedTenant.Leases[0].Status)

	storedProp, err := propRepo.GetByID(ctx, prop.ID)
	require.NoError(t, err)
	assert.True(t, storedProp.Occupancy.IsOccupied)
}

func TestExpiryCheckIsIdempotent(t *testing.T) {
	tenantRepo := newFakeTenantRepo()
	propRepo := newFakePropertyRepo()
	svc := NewLeaseExpiryService(tenantRepo, propRepo)
	ctx := context.Background()
	managerID := uuid.New()

	tenant := qualifiedTenant(managerID)
	prop := singleLetProperty(managerID)
	now := time.Now()
	lease := models.Lease{
		ID:         uuid.New(),
		PropertyID: prop.ID,
		StartDate:  now.AddDate(-1, 0, 0),
		EndDate:    now.AddDate(0, 0, -1),
		Status:     models.LeaseStatusActive,
		CreatedAt:  now.AddDate(-1, 0, 0),
	}
	tenant.Leases = []models.Lease{lease}
	prop.Occupancy.Occupy(tenant.ID, lease.StartDate, lease.EndDate)

	require.NoError(t, tenantRepo.Create(ctx, tenant))
	require.NoError(t, propRepo.Create(ctx, prop))

	require.NoError(t, svc.RunExpiryCheck(ctx))
	require.NoError(t, svc.RunExpiryCheck(ctx))

	storedTenant, err := tenantRepo.GetByID(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LeaseStatusExpired, storedTenant.Leases[0].Status)
}
