package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/AryanKumar02/HomeIQ-sub000/internal/models"
)

/*
LeaseTermsRequest carries the optional lease terms on an assign call.
Anything absent is defaulted by the coordinator: start = now,
end = start + 12 months, rent/deposit from the unit or property
financials.
*/
type LeaseTermsRequest struct {
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	MonthlyRent     *float64   `json:"monthly_rent,omitempty" validate:"omitempty,gt=0"`
	SecurityDeposit *float64   `json:"security_deposit,omitempty" validate:"omitempty,gte=0"`
}

type AssignTenancyRequest struct {
	TenantID   uuid.UUID         `json:"tenant_id" validate:"required"`
	PropertyID uuid.UUID         `json:"property_id" validate:"required"`
	UnitID     *uuid.UUID        `json:"unit_id,omitempty"`
	Terms      LeaseTermsRequest `json:"terms"`
}

type UnassignTenancyRequest struct {
	TenantID   uuid.UUID  `json:"tenant_id" validate:"required"`
	PropertyID uuid.UUID  `json:"property_id" validate:"required"`
	UnitID     *uuid.UUID `json:"unit_id,omitempty"`
}

// AssignmentResult returns both updated aggregates plus the lease the
// coordinator created.
type AssignmentResult struct {
	Tenant   *models.Tenant   `json:"tenant"`
	Property *models.Property `json:"property"`
	Lease    *models.Lease    `json:"lease"`
}

type UnassignmentResult struct {
	Tenant   *models.Tenant   `json:"tenant"`
	Property *models.Property `json:"property"`
}
