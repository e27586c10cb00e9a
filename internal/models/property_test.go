package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOccupancyForCardinality(t *testing.T) {
	unitID := uuid.New()
	block := Property{
		PropertyType: PropertyTypeApartment,
		Units: []Unit{
			{ID: unitID, Occupancy: Occupancy{Status: OccupancyStatusAvailable}},
		},
	}

	require.NotNil(t, block.OccupancyFor(&unitID))
	assert.Nil(t, block.OccupancyFor(nil), "multi-unit needs a unit id")
	missing := uuid.New()
	assert.Nil(t, block.OccupancyFor(&missing))

	house := Property{PropertyType: PropertyTypeHouse}
	require.NotNil(t, house.OccupancyFor(nil))
	assert.Nil(t, house.OccupancyFor(&unitID), "single-let rejects a unit id")
}

func TestOccupancyForLazilyCreatesPropertyRecord(t *testing.T) {
	house := Property{PropertyType: PropertyTypeHouse}
	occ := house.OccupancyFor(nil)
	require.NotNil(t, occ)
	assert.Equal(t, OccupancyStatusAvailable, occ.Status)
	assert.Same(t, house.Occupancy, occ)
}

func TestRentForFallsBackToPropertyFinancials(t *testing.T) {
	unitID := uuid.New()
	bare := uuid.New()
	p := Property{
		PropertyType: PropertyTypeApartment,
		Financials:   Financials{MonthlyRent: 900, SecurityDeposit: 1000},
		Units: []Unit{
			{ID: unitID, MonthlyRent: 950, SecurityDeposit: 1100},
			{ID: bare},
		},
	}

	rent, deposit := p.RentFor(&unitID)
	assert.Equal(t, 950.0, rent)
	assert.Equal(t, 1100.0, deposit)

	// Unit without its own figures falls back.
	rent, deposit = p.RentFor(&bare)
	assert.Equal(t, 900.0, rent)
	assert.Equal(t, 1000.0, deposit)

	house := Property{
		PropertyType: PropertyTypeHouse,
		Financials:   Financials{MonthlyRent: 1200, SecurityDeposit: 1400},
	}
	rent, deposit = house.RentFor(nil)
	assert.Equal(t, 1200.0, rent)
	assert.Equal(t, 1400.0, deposit)
}

func TestOccupancyTransitionTable(t *testing.T) {
	assert.True(t, OccupancyStatusAvailable.CanTransitionTo(OccupancyStatusOccupied))
	assert.True(t, OccupancyStatusOccupied.CanTransitionTo(OccupancyStatusAvailable))
	assert.False(t, OccupancyStatusOccupied.CanTransitionTo(OccupancyStatusMaintenance))
	assert.False(t, OccupancyStatusOffMarket.CanTransitionTo(OccupancyStatusOccupied))
}
