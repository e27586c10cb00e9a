package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/AryanKumar02/HomeIQ-sub000/internal/models"
)

type PropertyManagerRepository interface {
	Create(ctx context.Context, pm *models.PropertyManager) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.PropertyManager, error)
}

type pmRepo struct {
	db DB
}

func NewPropertyManagerRepository(db DB) PropertyManagerRepository {
	return &pmRepo{db: db}
}

func (r *pmRepo) Create(ctx context.Context, pm *models.PropertyManager) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO property_managers (
            id, email, phone_number, business_name,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4, NOW(), NOW(), 1)
    `, pm.ID, pm.Email, pm.PhoneNumber, pm.BusinessName)
	return err
}

func (r *pmRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.PropertyManager, error) {
	row := r.db.QueryRow(ctx, `
        SELECT id, email, phone_number, business_name,
               created_at, updated_at, deleted_at, row_version
        FROM property_managers
        WHERE id=$1 AND deleted_at IS NULL
    `, id)

	var pm models.PropertyManager
	err := row.Scan(
		&pm.ID,
		&pm.Email,
		&pm.PhoneNumber,
		&pm.BusinessName,
		&pm.CreatedAt,
		&pm.UpdatedAt,
		&pm.DeletedAt,
		&pm.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &pm, nil
}
