package models

import (
	"time"

	"github.com/google/uuid"
)

type PropertyTypeType string

const (
	PropertyTypeHouse      PropertyTypeType = "HOUSE"
	PropertyTypeApartment  PropertyTypeType = "APARTMENT"
	PropertyTypeCondo      PropertyTypeType = "CONDO"
	PropertyTypeTownhouse  PropertyTypeType = "TOWNHOUSE"
	PropertyTypeDuplex     PropertyTypeType = "DUPLEX"
	PropertyTypeCommercial PropertyTypeType = "COMMERCIAL"
	PropertyTypeLand       PropertyTypeType = "LAND"
	PropertyTypeOther      PropertyTypeType = "OTHER"
)

// IsMultiUnit reports whether the type carries a units list instead
// of a single whole-property occupancy record.
func (p PropertyTypeType) IsMultiUnit() bool {
	return p == PropertyTypeApartment || p == PropertyTypeDuplex
}

// Financials is the baseline rent/deposit used to default lease terms
// when the caller supplies none.
type Financials struct {
	MonthlyRent     float64 `json:"monthly_rent"`
	SecurityDeposit float64 `json:"security_deposit"`
}

type Property struct {
	Versioned

	ID        uuid.UUID `json:"id"`
	ManagerID uuid.UUID `json:"manager_id"`

	PropertyName string           `json:"property_name"`
	AddressLine1 string           `json:"address_line1"`
	City         string           `json:"city"`
	Postcode     string           `json:"postcode"`
	PropertyType PropertyTypeType `json:"property_type"`

	Financials Financials `json:"financials"`

	// Exactly one of the two is populated: single-let types carry
	// Occupancy, multi-unit types carry Units.
	Occupancy *Occupancy `json:"occupancy,omitempty"`
	Units     []Unit     `json:"units,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

func (p *Property) GetID() string { return p.ID.String() }

// UnitByID finds an embedded unit, or nil.
func (p *Property) UnitByID(id uuid.UUID) *Unit {
	for i := range p.Units {
		if p.Units[i].ID == id {
			return &p.Units[i]
		}
	}
	return nil
}

// OccupancyFor resolves the occupancy record addressed by an optional
// unit id. Returns nil when a multi-unit property is addressed
// without a unit, when a single-let property is addressed with one,
// or when the unit does not exist.
func (p *Property) OccupancyFor(unitID *uuid.UUID) *Occupancy {
	if p.PropertyType.IsMultiUnit() {
		if unitID == nil {
			return nil
		}
		u := p.UnitByID(*unitID)
		if u == nil {
			return nil
		}
		return &u.Occupancy
	}
	if unitID != nil {
		return nil
	}
	if p.Occupancy == nil {
		p.Occupancy = &Occupancy{Status: OccupancyStatusAvailable}
	}
	return p.Occupancy
}

// RentFor returns the baseline monthly rent and deposit for the
// addressed space, falling back to property financials when the unit
// carries none.
func (p *Property) RentFor(unitID *uuid.UUID) (rent, deposit float64) {
	if unitID != nil {
		if u := p.UnitByID(*unitID); u != nil {
			rent, deposit = u.MonthlyRent, u.SecurityDeposit
		}
	}
	if rent == 0 {
		rent = p.Financials.MonthlyRent
	}
	if deposit == 0 {
		deposit = p.Financials.SecurityDeposit
	}
	return rent, deposit
}
