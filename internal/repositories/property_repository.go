package repositories

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/AryanKumar02/HomeIQ-sub000/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type PropertyRepository interface {
	Create(ctx context.Context, p *models.Property) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	ListByManagerID(ctx context.Context, managerID uuid.UUID) ([]*models.Property, error)
	ListAllProperties(ctx context.Context) ([]*models.Property, error)

	Update(ctx context.Context, p *models.Property) error
	UpdateIfVersion(ctx context.Context, p *models.Property, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Property) error) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type propertyRepo struct {
	*BaseVersionedRepo[*models.Property]
	db DB
}

func NewPropertyRepository(db DB) PropertyRepository {
	r := &propertyRepo{db: db}
	selectStmt := baseSelectProperty() + " WHERE id=$1 AND deleted_at IS NULL"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanProperty)
	return r
}

func (r *propertyRepo) Create(ctx context.Context, p *models.Property) error {
	occJSON, unitsJSON, finJSON, err := propertyJSONColumns(p)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
        INSERT INTO properties (
            id, manager_id, property_name, address_line1, city, postcode, property_type,
            financials, occupancy, units,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10, NOW(), NOW(), 1)
    `,
		p.ID,
		p.ManagerID,
		p.PropertyName,
		p.AddressLine1,
		p.City,
		p.Postcode,
		p.PropertyType,
		finJSON,
		occJSON,
		unitsJSON,
	)
	return err
}

func (r *propertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *propertyRepo) ListByManagerID(ctx context.Context, managerID uuid.UUID) ([]*models.Property, error) {
	rows, err := r.db.Query(ctx, baseSelectProperty()+" WHERE manager_id=$1 AND deleted_at IS NULL ORDER BY created_at", managerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProperties(rows)
}

func (r *propertyRepo) ListAllProperties(ctx context.Context) ([]*models.Property, error) {
	rows, err := r.db.Query(ctx, baseSelectProperty()+" WHERE deleted_at IS NULL ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProperties(rows)
}

func (r *propertyRepo) Update(ctx context.Context, p *models.Property) error {
	_, err := r.update(ctx, p, false, 0)
	return err
}

func (r *propertyRepo) UpdateIfVersion(ctx context.Context, p *models.Property, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, p, true, expected)
}

func (r *propertyRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Property) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *propertyRepo) update(ctx context.Context, p *models.Property, check bool, expected int64) (pgconn.CommandTag, error) {
	occJSON, unitsJSON, finJSON, err := propertyJSONColumns(p)
	if err != nil {
		return nil, err
	}
	sql := `
        UPDATE properties SET
            property_name=$1, address_line1=$2, city=$3, postcode=$4, property_type=$5,
            financials=$6, occupancy=$7, units=$8, updated_at=NOW()
    `
	args := []any{
		p.PropertyName, p.AddressLine1, p.City, p.Postcode, p.PropertyType,
		finJSON, occJSON, unitsJSON,
	}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$9 AND row_version=$10 AND deleted_at IS NULL`
		args = append(args, p.ID, expected)
	} else {
		sql += ` WHERE id=$9 AND deleted_at IS NULL`
		args = append(args, p.ID)
	}

	return r.db.Exec(ctx, sql, args...)
}

func (r *propertyRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `UPDATE properties SET deleted_at=NOW() WHERE id=$1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

/* ---------- internals ---------- */

func propertyJSONColumns(p *models.Property) (occ, units, fin []byte, err error) {
	if p.Occupancy != nil {
		if occ, err = json.Marshal(p.Occupancy); err != nil {
			return nil, nil, nil, err
		}
	}
	unitList := p.Units
	if unitList == nil {
		unitList = []models.Unit{}
	}
	if units, err = json.Marshal(unitList); err != nil {
		return nil, nil, nil, err
	}
	if fin, err = json.Marshal(p.Financials); err != nil {
		return nil, nil, nil, err
	}
	return occ, units, fin, nil
}

func baseSelectProperty() string {
	return `
        SELECT
            id, manager_id, property_name, address_line1, city, postcode, property_type,
            financials, occupancy, units,
            created_at, updated_at, deleted_at, row_version
        FROM properties
    `
}

func scanProperty(row pgx.Row) (*models.Property, error) {
	var (
		p         models.Property
		finJSON   []byte
		occJSON   []byte
		unitsJSON []byte
	)
	err := row.Scan(
		&p.ID,
		&p.ManagerID,
		&p.PropertyName,
		&p.AddressLine1,
		&p.City,
		&p.Postcode,
		&p.PropertyType,
		&finJSON,
		&occJSON,
		&unitsJSON,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.DeletedAt,
		&p.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(finJSON, &p.Financials); err != nil {
		return nil, err
	}
	if len(occJSON) > 0 {
		p.Occupancy = &models.Occupancy{}
		if err := json.Unmarshal(occJSON, p.Occupancy); err != nil {
			return nil, err
		}
	}
	if err := json.Unmarshal(unitsJSON, &p.Units); err != nil {
		return nil, err
	}
	return &p, nil
}

func scanProperties(rows pgx.Rows) ([]*models.Property, error) {
	var out []*models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
