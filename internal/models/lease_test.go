package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaseStatusTransitions(t *testing.T) {
	allowed := []struct {
		from, to LeaseStatusType
	}{
		{LeaseStatusPending, LeaseStatusActive},
		{LeaseStatusPending, LeaseStatusTerminated},
		{LeaseStatusActive, LeaseStatusTerminated},
		{LeaseStatusActive, LeaseStatusExpired},
		{LeaseStatusActive, LeaseStatusRenewed},
	}
	for _, tc := range allowed {
		assert.True(t, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}

	denied := []struct {
		from, to LeaseStatusType
	}{
		{LeaseStatusTerminated, LeaseStatusActive},
		{LeaseStatusExpired, LeaseStatusActive},
		{LeaseStatusActive, LeaseStatusPending},
		{LeaseStatusTerminated, LeaseStatusExpired},
	}
	for _, tc := range denied {
		assert.False(t, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestLeaseMatches(t *testing.T) {
	propertyID := uuid.New()
	unitID := uuid.New()

	wholeProperty := Lease{PropertyID: propertyID}
	assert.True(t, wholeProperty.Matches(propertyID, nil))
	assert.False(t, wholeProperty.Matches(propertyID, &unitID))
	assert.False(t, wholeProperty.Matches(uuid.New(), nil))

	unitLease := Lease{PropertyID: propertyID, UnitID: &unitID}
	assert.True(t, unitLease.Matches(propertyID, &unitID))
	assert.False(t, unitLease.Matches(propertyID, nil))
	other := uuid.New()
	assert.False(t, unitLease.Matches(propertyID, &other))
}

func TestLeaseTerminate(t *testing.T) {
	now := time.Now()
	l := Lease{Status: LeaseStatusActive}

	require.True(t, l.Terminate(now, TerminationReasonManagerRequest))
	assert.Equal(t, LeaseStatusTerminated, l.Status)
	assert.Equal(t, TerminationReasonManagerRequest, l.TerminationReason)
	require.NotNil(t, l.TerminationDate)
	assert.Equal(t, now, *l.TerminationDate)

	// A terminated lease cannot terminate again.
	assert.False(t, l.Terminate(now.Add(time.Hour), TerminationReasonAssignmentRollback))
	assert.Equal(t, TerminationReasonManagerRequest, l.TerminationReason)
}

func TestTenantActiveLeaseLookups(t *testing.T) {
	propertyID := uuid.New()
	tenant := Tenant{
		Leases: []Lease{
			{ID: uuid.New(), PropertyID: propertyID, Status: LeaseStatusTerminated},
			{ID: uuid.New(), PropertyID: propertyID, Status: LeaseStatusActive},
		},
	}

	require.True(t, tenant.HasActiveLease())
	active := tenant.ActiveLease(propertyID, nil)
	require.NotNil(t, active)
	assert.Equal(t, LeaseStatusActive, active.Status)
	assert.Len(t, tenant.ActiveLeases(), 1)

	assert.Nil(t, tenant.ActiveLease(uuid.New(), nil))
}
