package models

import (
	"time"

	"github.com/google/uuid"
)

type LeaseStatusType string

const (
	LeaseStatusPending    LeaseStatusType = "PENDING"
	LeaseStatusActive     LeaseStatusType = "ACTIVE"
	LeaseStatusTerminated LeaseStatusType = "TERMINATED"
	LeaseStatusExpired    LeaseStatusType = "EXPIRED"
	LeaseStatusRenewed    LeaseStatusType = "RENEWED"
)

// Termination reason codes recorded on the lease so a terminated
// record explains itself.
const (
	TerminationReasonManagerRequest     = "MANAGER_REQUEST"
	TerminationReasonAssignmentRollback = "ASSIGNMENT_ROLLED_BACK"
)

// leaseTransitions: a lease is never deleted, only moved forward.
// TERMINATED and EXPIRED are terminal; RENEWED marks a record that
// was superseded by a fresh lease.
var leaseTransitions = map[LeaseStatusType][]LeaseStatusType{
	LeaseStatusPending: {LeaseStatusActive, LeaseStatusTerminated},
	LeaseStatusActive:  {LeaseStatusTerminated, LeaseStatusExpired, LeaseStatusRenewed},
	LeaseStatusTerminated: {},
	LeaseStatusExpired:    {},
	LeaseStatusRenewed:    {},
}

func (s LeaseStatusType) CanTransitionTo(next LeaseStatusType) bool {
	for _, allowed := range leaseTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

/*
Lease is a time-bounded occupancy agreement embedded in the tenant
aggregate. A nil UnitID means a whole-property lease.
*/
type Lease struct {
	ID         uuid.UUID  `json:"id"`
	PropertyID uuid.UUID  `json:"property_id"`
	UnitID     *uuid.UUID `json:"unit_id,omitempty"`

	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	MonthlyRent     float64   `json:"monthly_rent"`
	SecurityDeposit float64   `json:"security_deposit"`

	Status            LeaseStatusType `json:"status"`
	TerminationDate   *time.Time      `json:"termination_date,omitempty"`
	TerminationReason string          `json:"termination_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Matches reports whether this lease binds the given (property, unit)
// pair. Both sides must agree on unit-ness: a whole-property lease
// only matches a nil unit id.
func (l *Lease) Matches(propertyID uuid.UUID, unitID *uuid.UUID) bool {
	if l.PropertyID != propertyID {
		return false
	}
	if l.UnitID == nil || unitID == nil {
		return l.UnitID == nil && unitID == nil
	}
	return *l.UnitID == *unitID
}

// Terminate transitions the lease to TERMINATED, recording when and why.
// Returns false if the current status does not allow termination.
func (l *Lease) Terminate(at time.Time, reason string) bool {
	if !l.Status.CanTransitionTo(LeaseStatusTerminated) {
		return false
	}
	l.Status = LeaseStatusTerminated
	l.TerminationDate = &at
	l.TerminationReason = reason
	return true
}
