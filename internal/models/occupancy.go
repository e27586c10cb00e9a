package models

import (
	"time"

	"github.com/google/uuid"
)

type OccupancyStatusType string

const (
	OccupancyStatusAvailable   OccupancyStatusType = "AVAILABLE"
	OccupancyStatusOccupied    OccupancyStatusType = "OCCUPIED"
	OccupancyStatusMaintenance OccupancyStatusType = "MAINTENANCE"
	OccupancyStatusOffMarket   OccupancyStatusType = "OFF_MARKET"

	// Whole-property records only; unit records never hold PENDING.
	OccupancyStatusPending OccupancyStatusType = "PENDING"
)

// occupancyTransitions is the closed set of legal status moves. The
// tenancy coordinator and reconciler are the only writers.
var occupancyTransitions = map[OccupancyStatusType][]OccupancyStatusType{
	OccupancyStatusAvailable:   {OccupancyStatusOccupied, OccupancyStatusMaintenance, OccupancyStatusOffMarket, OccupancyStatusPending},
	OccupancyStatusOccupied:    {OccupancyStatusAvailable},
	OccupancyStatusMaintenance: {OccupancyStatusAvailable, OccupancyStatusOffMarket},
	OccupancyStatusOffMarket:   {OccupancyStatusAvailable, OccupancyStatusMaintenance},
	OccupancyStatusPending:     {OccupancyStatusOccupied, OccupancyStatusAvailable},
}

func (s OccupancyStatusType) CanTransitionTo(next OccupancyStatusType) bool {
	for _, allowed := range occupancyTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

/*
Occupancy tracks whether a space (a whole property or a single unit)
is currently let and by whom. IsOccupied, TenantID and the lease date
window move together; the cross-aggregate invariant is that an
occupied record corresponds to exactly one ACTIVE lease in some
tenant's ledger.
*/
type Occupancy struct {
	IsOccupied bool                `json:"is_occupied"`
	TenantID   *uuid.UUID          `json:"tenant_id,omitempty"`
	LeaseStart *time.Time          `json:"lease_start,omitempty"`
	LeaseEnd   *time.Time          `json:"lease_end,omitempty"`
	Status     OccupancyStatusType `json:"status"`
}

// Occupy points the record at a tenant for the given window.
func (o *Occupancy) Occupy(tenantID uuid.UUID, start, end time.Time) {
	o.IsOccupied = true
	o.TenantID = &tenantID
	o.LeaseStart = &start
	o.LeaseEnd = &end
	o.Status = OccupancyStatusOccupied
}

// Vacate clears the record back to AVAILABLE.
func (o *Occupancy) Vacate() {
	o.IsOccupied = false
	o.TenantID = nil
	o.LeaseStart = nil
	o.LeaseEnd = nil
	o.Status = OccupancyStatusAvailable
}

// HeldBy reports whether the record is occupied by the given tenant.
func (o *Occupancy) HeldBy(tenantID uuid.UUID) bool {
	return o.IsOccupied && o.TenantID != nil && *o.TenantID == tenantID
}
