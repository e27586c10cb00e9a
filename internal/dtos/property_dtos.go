package dtos

import (
	"github.com/AryanKumar02/HomeIQ-sub000/internal/models"
)

type CreateUnitRequest struct {
	UnitNumber      string  `json:"unit_number" validate:"required,max=20"`
	Bedrooms        int     `json:"bedrooms" validate:"gte=0,lte=20"`
	Bathrooms       int     `json:"bathrooms" validate:"gte=0,lte=20"`
	SquareFootage   int     `json:"square_footage,omitempty" validate:"gte=0"`
	MonthlyRent     float64 `json:"monthly_rent" validate:"gte=0"`
	SecurityDeposit float64 `json:"security_deposit" validate:"gte=0"`
}

type CreatePropertyRequest struct {
	PropertyName string                  `json:"property_name" validate:"required,max=200"`
	AddressLine1 string                  `json:"address_line1" validate:"required,max=200"`
	City         string                  `json:"city" validate:"required,max=100"`
	Postcode     string                  `json:"postcode" validate:"required,max=10"`
	PropertyType models.PropertyTypeType `json:"property_type" validate:"required,oneof=HOUSE APARTMENT CONDO TOWNHOUSE DUPLEX COMMERCIAL LAND OTHER"`

	MonthlyRent     float64 `json:"monthly_rent" validate:"gte=0"`
	SecurityDeposit float64 `json:"security_deposit" validate:"gte=0"`

	// Required for multi-unit types, rejected otherwise.
	Units []CreateUnitRequest `json:"units,omitempty" validate:"omitempty,dive"`
}
