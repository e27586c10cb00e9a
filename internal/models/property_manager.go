package models

import (
	"time"

	"github.com/google/uuid"
)

// PropertyManager is the owning principal for tenants and properties.
// Authentication happens upstream; this record exists for ownership
// scoping and escalation contact details.
type PropertyManager struct {
	Versioned

	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PhoneNumber  *string   `json:"phone_number,omitempty"`
	BusinessName string    `json:"business_name"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// ----- concurrency helpers -----
func (pm *PropertyManager) GetID() string { return pm.ID.String() }
