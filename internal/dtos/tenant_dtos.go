package dtos

import (
	"github.com/google/uuid"

	"github.com/AryanKumar02/HomeIQ-sub000/internal/models"
)

type CreateTenantRequest struct {
	FirstName   string `json:"first_name" validate:"required,max=100"`
	LastName    string `json:"last_name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number,omitempty" validate:"omitempty,e164"`
}

/*
TenantFactsRequest is a partial update of the facts the qualification
engine consumes. Nil sub-structs are left untouched so a caller can
update one fact group at a time.
*/
type TenantFactsRequest struct {
	TenantID uuid.UUID `json:"tenant_id" validate:"required"`

	RightToOccupy    *models.RightToOccupy           `json:"right_to_occupy,omitempty"`
	EmploymentIncome *models.EmploymentIncome        `json:"employment_income,omitempty"`
	Affordability    *models.AffordabilityAssessment `json:"affordability,omitempty"`
	Guarantor        *models.Guarantor               `json:"guarantor,omitempty"`
	Referencing      *models.Referencing             `json:"referencing,omitempty"`
}

type EvaluateQualificationRequest struct {
	TenantID      uuid.UUID `json:"tenant_id" validate:"required"`
	CandidateRent float64   `json:"candidate_rent" validate:"required,gt=0"`
}

type RecomputeStatusRequest struct {
	TenantID uuid.UUID `json:"tenant_id" validate:"required"`
}

type StatusOverrideRequest struct {
	TenantID        uuid.UUID                    `json:"tenant_id" validate:"required"`
	Status          models.ApplicationStatusType `json:"status" validate:"required,oneof=PENDING UNDER_REVIEW APPROVED REJECTED"`
	RejectionReason string                       `json:"rejection_reason,omitempty" validate:"max=500"`
}

type ClearStatusOverrideRequest struct {
	TenantID uuid.UUID `json:"tenant_id" validate:"required"`
}

// VerdictDTO mirrors the cached qualification record for API callers.
type VerdictDTO struct {
	Verdict       models.QualificationVerdictType `json:"verdict"`
	Issues        []string                        `json:"issues"`
	CandidateRent float64                         `json:"candidate_rent"`
}
