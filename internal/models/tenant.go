package models

import (
	"time"

	"github.com/google/uuid"
)

type TenantAccountStatusType string

const (
	TenantAccountActive   TenantAccountStatusType = "ACTIVE"
	TenantAccountArchived TenantAccountStatusType = "ARCHIVED"
)

type QualificationVerdictType string

const (
	VerdictQualified    QualificationVerdictType = "QUALIFIED"
	VerdictNeedsReview  QualificationVerdictType = "NEEDS_REVIEW"
	VerdictNotQualified QualificationVerdictType = "NOT_QUALIFIED"
	VerdictUnknown      QualificationVerdictType = "UNKNOWN"
)

type ApplicationStatusType string

const (
	ApplicationStatusPending     ApplicationStatusType = "PENDING"
	ApplicationStatusUnderReview ApplicationStatusType = "UNDER_REVIEW"
	ApplicationStatusApproved    ApplicationStatusType = "APPROVED"
	ApplicationStatusRejected    ApplicationStatusType = "REJECTED"
)

type ReferencingStatusType string

const (
	ReferencingNotStarted ReferencingStatusType = "NOT_STARTED"
	ReferencingInProgress ReferencingStatusType = "IN_PROGRESS"
	ReferencingComplete   ReferencingStatusType = "COMPLETE"
)

type ReferencingOutcomeType string

const (
	ReferencingOutcomePass               ReferencingOutcomeType = "PASS"
	ReferencingOutcomePassWithConditions ReferencingOutcomeType = "PASS_WITH_CONDITIONS"
	ReferencingOutcomeFail               ReferencingOutcomeType = "FAIL"
	ReferencingOutcomePending            ReferencingOutcomeType = "PENDING"
)

// RightToOccupy is the mandatory legal verification record.
type RightToOccupy struct {
	Verified   bool       `json:"verified"`
	Reference  string     `json:"reference,omitempty"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
}

// EmploymentIncome holds monthly figures. Pointers distinguish
// "not yet captured" from zero, which matters to the engine: an
// absent figure yields an UNKNOWN verdict, not a failed test.
type EmploymentIncome struct {
	GrossMonthly    *float64 `json:"gross_monthly,omitempty"`
	NetMonthly      *float64 `json:"net_monthly,omitempty"`
	MonthlyBenefits *float64 `json:"monthly_benefits,omitempty"`
	Verified        bool     `json:"verified"`
}

type AffordabilityAssessment struct {
	MonthlyIncome      *float64 `json:"monthly_income,omitempty"`
	MonthlyExpenses    *float64 `json:"monthly_expenses,omitempty"`
	MonthlyCommitments *float64 `json:"monthly_commitments,omitempty"`
}

// DisposableIncome returns income - expenses - commitments, or false
// when any input is missing.
func (a AffordabilityAssessment) DisposableIncome() (float64, bool) {
	if a.MonthlyIncome == nil || a.MonthlyExpenses == nil || a.MonthlyCommitments == nil {
		return 0, false
	}
	return *a.MonthlyIncome - *a.MonthlyExpenses - *a.MonthlyCommitments, true
}

type Guarantor struct {
	Required bool   `json:"required"`
	Provided bool   `json:"provided"`
	Verified bool   `json:"verified"`
	Name     string `json:"name,omitempty"`
}

type Referencing struct {
	Status     ReferencingStatusType  `json:"status,omitempty"`
	Outcome    ReferencingOutcomeType `json:"outcome,omitempty"`
	Conditions string                 `json:"conditions,omitempty"`
}

// ApplicationStatusRecord carries the externally visible status plus
// the audit fields a manual decision leaves behind. ManualOverride
// pins the status until explicitly cleared.
type ApplicationStatusRecord struct {
	Status          ApplicationStatusType `json:"status"`
	ManualOverride  bool                  `json:"manual_override"`
	RejectionReason string                `json:"rejection_reason,omitempty"`
	ApprovedAt      *time.Time            `json:"approved_at,omitempty"`
	UpdatedAt       time.Time             `json:"updated_at"`
	UpdatedBy       *uuid.UUID            `json:"updated_by,omitempty"`
}

// QualificationRecord is the cached engine output, re-derivable at
// any time from current facts.
type QualificationRecord struct {
	Verdict       QualificationVerdictType `json:"verdict"`
	Issues        []string                 `json:"issues,omitempty"`
	CandidateRent float64                  `json:"candidate_rent,omitempty"`
	EvaluatedAt   *time.Time               `json:"evaluated_at,omitempty"`
}

type Tenant struct {
	Versioned

	ID        uuid.UUID `json:"id"`
	ManagerID uuid.UUID `json:"manager_id"`

	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`

	AccountStatus TenantAccountStatusType `json:"account_status"`

	RightToOccupy    RightToOccupy           `json:"right_to_occupy"`
	EmploymentIncome EmploymentIncome        `json:"employment_income"`
	Affordability    AffordabilityAssessment `json:"affordability"`
	Guarantor        Guarantor               `json:"guarantor"`
	Referencing      Referencing             `json:"referencing"`

	Leases []Lease `json:"leases,omitempty"`

	ApplicationStatus ApplicationStatusRecord `json:"application_status"`
	Qualification     QualificationRecord     `json:"qualification"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

func (t *Tenant) GetID() string { return t.ID.String() }

// ActiveLease returns the tenant's ACTIVE lease for the given
// (property, unit) pair, or nil.
func (t *Tenant) ActiveLease(propertyID uuid.UUID, unitID *uuid.UUID) *Lease {
	for i := range t.Leases {
		l := &t.Leases[i]
		if l.Status == LeaseStatusActive && l.Matches(propertyID, unitID) {
			return l
		}
	}
	return nil
}

// HasActiveLease reports whether the tenant holds any ACTIVE lease.
func (t *Tenant) HasActiveLease() bool {
	for i := range t.Leases {
		if t.Leases[i].Status == LeaseStatusActive {
			return true
		}
	}
	return false
}

// ActiveLeases returns all ACTIVE leases in the ledger.
func (t *Tenant) ActiveLeases() []*Lease {
	var out []*Lease
	for i := range t.Leases {
		if t.Leases[i].Status == LeaseStatusActive {
			out = append(out, &t.Leases[i])
		}
	}
	return out
}

// LeaseByID finds a lease record by id, or nil.
func (t *Tenant) LeaseByID(id uuid.UUID) *Lease {
	for i := range t.Leases {
		if t.Leases[i].ID == id {
			return &t.Leases[i]
		}
	}
	return nil
}
