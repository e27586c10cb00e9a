package models

import (
	"github.com/google/uuid"
)

// Unit represents a tenant-addressable space inside a multi-unit
// property. It lives in the property aggregate's jsonb column, never
// as a top-level row, so occupancy writes stay inside one aggregate.
type Unit struct {
	ID         uuid.UUID `json:"id"`
	UnitNumber string    `json:"unit_number"`

	Bedrooms      int `json:"bedrooms"`
	Bathrooms     int `json:"bathrooms"`
	SquareFootage int `json:"square_footage,omitempty"`

	MonthlyRent     float64 `json:"monthly_rent"`
	SecurityDeposit float64 `json:"security_deposit"`

	Occupancy Occupancy `json:"occupancy"`
}
