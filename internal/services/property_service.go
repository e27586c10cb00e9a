package services

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/AryanKumar02/HomeIQ-sub000/internal/dtos"
	"github.com/AryanKumar02/HomeIQ-sub000/internal/models"
	"github.com/AryanKumar02/HomeIQ-sub000/internal/repositories"
	"github.com/AryanKumar02/HomeIQ-sub000/internal/utils"
)

// PropertyService owns the property lifecycle: creation with unit
// materialization, lookup, and archival.
type PropertyService struct {
	propRepo repositories.PropertyRepository
	now      func() time.Time
}

func NewPropertyService(propRepo repositories.PropertyRepository) *PropertyService {
	return &PropertyService{
		propRepo: propRepo,
		now:      time.Now,
	}
}

func (s *PropertyService) CreateProperty(ctx context.Context, managerID uuid.UUID, req *dtos.CreatePropertyRequest) (*models.Property, error) {
	if req.PropertyType.IsMultiUnit() && len(req.Units) == 0 {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeUnitRequired,
			Message:    "Multi-unit property types require at least one unit",
			Err:        utils.ErrUnitRequired,
		}
	}
	if !req.PropertyType.IsMultiUnit() && len(req.Units) > 0 {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeUnitNotAllowed,
			Message:    "This property type does not have units",
			Err:        utils.ErrUnitNotAllowed,
		}
	}

	now := s.now()
	p := &models.Property{
		ID:           uuid.New(),
		ManagerID:    managerID,
		PropertyName: req.PropertyName,
		AddressLine1: req.AddressLine1,
		City:         req.City,
		Postcode:     req.Postcode,
		PropertyType: req.PropertyType,
		Financials: models.Financials{
			MonthlyRent:     req.MonthlyRent,
			SecurityDeposit: req.SecurityDeposit,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if req.PropertyType.IsMultiUnit() {
		for _, u := range req.Units {
			p.Units = append(p.Units, models.Unit{
				ID:              uuid.New(),
				UnitNumber:      u.UnitNumber,
				Bedrooms:        u.Bedrooms,
				Bathrooms:       u.Bathrooms,
				SquareFootage:   u.SquareFootage,
				MonthlyRent:     u.MonthlyRent,
				SecurityDeposit: u.SecurityDeposit,
				Occupancy:       models.Occupancy{Status: models.OccupancyStatusAvailable},
			})
		}
	} else {
		p.Occupancy = &models.Occupancy{Status: models.OccupancyStatusAvailable}
	}

	if err := s.propRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PropertyService) GetProperty(ctx context.Context, managerID, propertyID uuid.UUID) (*models.Property, error) {
	p, err := s.propRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.ManagerID != managerID {
		return nil, notFoundErr("Property not found")
	}
	return p, nil
}

func (s *PropertyService) ListProperties(ctx context.Context, managerID uuid.UUID) ([]*models.Property, error) {
	return s.propRepo.ListByManagerID(ctx, managerID)
}

// ArchiveProperty soft-deletes a property. Occupied properties must be
// vacated first.
func (s *PropertyService) ArchiveProperty(ctx context.Context, managerID, propertyID uuid.UUID) error {
	p, err := s.GetProperty(ctx, managerID, propertyID)
	if err != nil {
		return err
	}
	if hasOccupiedSlot(p) {
		return &utils.AppError{
			StatusCode: http.StatusConflict,
			Code:       utils.ErrCodeConflict,
			Message:    "Property has occupied spaces and cannot be archived",
			Err:        utils.ErrAlreadyOccupied,
		}
	}
	return s.propRepo.SoftDelete(ctx, propertyID)
}

func hasOccupiedSlot(p *models.Property) bool {
	if p.Occupancy != nil && p.Occupancy.IsOccupied {
		return true
	}
	for i := range p.Units {
		if p.Units[i].Occupancy.IsOccupied {
			return true
		}
	}
	return false
}
