package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AryanKumar02/HomeIQ-sub000/internal/dtos"
	"github.com/AryanKumar02/HomeIQ-sub000/internal/models"
	"github.com/AryanKumar02/HomeIQ-sub000/internal/utils"
)

func newStatusFixture(t *testing.T) (*TenantStatusService, *fakeTenantRepo, uuid.UUID, *models.Tenant) {
	t.Helper()
	repo := newFakeTenantRepo()
	svc := NewTenantStatusService(repo, NewQualificationEngine())
	managerID := uuid.New()
	tenant := qualifiedTenant(managerID)
	require.NoError(t, repo.Create(context.Background(), tenant))
	return svc, repo, managerID, tenant
}

func TestEvaluateQualificationStoresVerdictAndProjects(t *testing.T) {
	svc, repo, managerID, tenant := newStatusFixture(t)
	ctx := context.Background()

	rec, err := svc.EvaluateQualification(ctx, managerID, tenant.ID, 1200)
	require.NoError(t, err)
	assert.Equal(t, models.VerdictQualified, rec.Verdict)
	require.NotNil(t, rec.EvaluatedAt)

	stored, err := repo.GetByID(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VerdictQualified, stored.Qualification.Verdict)
	assert.Equal(t, models.ApplicationStatusApproved, stored.ApplicationStatus.Status)
	assert.NotNil(t, stored.ApplicationStatus.ApprovedAt)
}

func TestVerdictToStatusMapping(t *testing.T) {
	cases := []struct {
		verdict models.QualificationVerdictType
		status  models.ApplicationStatusType
	}{
		{models.VerdictQualified, models.ApplicationStatusApproved},
		{models.VerdictNotQualified, models.ApplicationStatusRejected},
		{models.VerdictNeedsReview, models.ApplicationStatusUnderReview},
		{models.VerdictUnknown, models.ApplicationStatusPending},
	}

	svc := NewTenantStatusService(newFakeTenantRepo(), NewQualificationEngine())
	for _, tc := range cases {
		tenant := qualifiedTenant(uuid.New())
		tenant.Qualification.Verdict = tc.verdict
		svc.projectStatusOnly(tenant)
		assert.Equal(t, tc.status, tenant.ApplicationStatus.Status, "verdict %s", tc.verdict)
	}
}

func TestProjectionIsIdempotent(t *testing.T) {
	svc, repo, managerID, tenant := newStatusFixture(t)
	ctx := context.Background()

	_, err := svc.EvaluateQualification(ctx, managerID, tenant.ID, 1200)
	require.NoError(t, err)

	first, err := repo.GetByID(ctx, tenant.ID)
	require.NoError(t, err)

	_, err = svc.RecomputeStatus(ctx, managerID, tenant.ID)
	require.NoError(t, err)

	second, err := repo.GetByID(ctx, tenant.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ApplicationStatus.Status, second.ApplicationStatus.Status)
	assert.Equal(t, first.ApplicationStatus.ApprovedAt, second.ApplicationStatus.ApprovedAt)
	assert.Equal(t, first.ApplicationStatus.UpdatedAt, second.ApplicationStatus.UpdatedAt)
}

func TestManualOverridePinsStatus(t *testing.T) {
	svc, repo, managerID, tenant := newStatusFixture(t)
	ctx := context.Background()

	_, err := svc.SetStatusOverride(ctx, managerID, dtos.StatusOverrideRequest{
		TenantID:        tenant.ID,
		Status:          models.ApplicationStatusRejected,
		RejectionReason: "failed an in-person interview",
	})
	require.NoError(t, err)

	// Recompute with qualified facts: override keeps REJECTED.
	updated, err := svc.RecomputeStatus(ctx, managerID, tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusRejected, updated.ApplicationStatus.Status)
	assert.True(t, updated.ApplicationStatus.ManualOverride)
	assert.Equal(t, "failed an in-person interview", updated.ApplicationStatus.RejectionReason)

	// Clearing reprojects from the verdict.
	_, err = svc.EvaluateQualification(ctx, managerID, tenant.ID, 1200)
	require.NoError(t, err)
	cleared, err := svc.ClearStatusOverride(ctx, managerID, tenant.ID)
	require.NoError(t, err)
	assert.False(t, cleared.ApplicationStatus.ManualOverride)
	assert.Equal(t, models.ApplicationStatusApproved, cleared.ApplicationStatus.Status)

	stored, err := repo.GetByID(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusApproved, stored.ApplicationStatus.Status)
}

func TestUpdateFactsReprojects(t *testing.T) {
	svc, repo, managerID, tenant := newStatusFixture(t)
	ctx := context.Background()

	_, err := svc.EvaluateQualification(ctx, managerID, tenant.ID, 1200)
	require.NoError(t, err)

	// Withdraw right-to-rent verification: verdict flips and the
	// status follows on the next facts update.
	updated, err := svc.UpdateFacts(ctx, managerID, dtos.TenantFactsRequest{
		TenantID:      tenant.ID,
		RightToOccupy: &models.RightToOccupy{Verified: false},
	})
	require.NoError(t, err)
	assert.Equal(t, models.VerdictNotQualified, updated.Qualification.Verdict)
	assert.Equal(t, models.ApplicationStatusRejected, updated.ApplicationStatus.Status)

	stored, err := repo.GetByID(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Contains(t, stored.Qualification.Issues, IssueRightToRentUnverified)
}

func TestStatusOpsRejectForeignTenant(t *testing.T) {
	svc, _, _, tenant := newStatusFixture(t)
	ctx := context.Background()
	otherManager := uuid.New()

	_, err := svc.RecomputeStatus(ctx, otherManager, tenant.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}
