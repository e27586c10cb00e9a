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

type TenantRepository interface {
	Create(ctx context.Context, t *models.Tenant) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	ListByManagerID(ctx context.Context, managerID uuid.UUID) ([]*models.Tenant, error)
	ListAllTenants(ctx context.Context) ([]*models.Tenant, error)

	Update(ctx context.Context, t *models.Tenant) error
	UpdateIfVersion(ctx context.Context, t *models.Tenant, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Tenant) error) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type tenantRepo struct {
	*BaseVersionedRepo[*models.Tenant]
	db DB
}

func NewTenantRepository(db DB) TenantRepository {
	r := &tenantRepo{db: db}
	selectStmt := baseSelectTenant() + " WHERE id=$1 AND deleted_at IS NULL"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanTenant)
	return r
}

func (r *tenantRepo) Create(ctx context.Context, t *models.Tenant) error {
	cols, err := tenantJSONColumns(t)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
        INSERT INTO tenants (
            id, manager_id, first_name, last_name, email, phone_number, account_status,
            right_to_occupy, employment_income, affordability, guarantor, referencing,
            leases, application_status, qualification,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15, NOW(), NOW(), 1)
    `,
		t.ID,
		t.ManagerID,
		t.FirstName,
		t.LastName,
		t.Email,
		t.PhoneNumber,
		t.AccountStatus,
		cols.rightToOccupy,
		cols.employmentIncome,
		cols.affordability,
		cols.guarantor,
		cols.referencing,
		cols.leases,
		cols.applicationStatus,
		cols.qualification,
	)
	return err
}

func (r *tenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *tenantRepo) ListByManagerID(ctx context.Context, managerID uuid.UUID) ([]*models.Tenant, error) {
	rows, err := r.db.Query(ctx, baseSelectTenant()+" WHERE manager_id=$1 AND deleted_at IS NULL ORDER BY created_at", managerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTenants(rows)
}

func (r *tenantRepo) ListAllTenants(ctx context.Context) ([]*models.Tenant, error) {
	rows, err := r.db.Query(ctx, baseSelectTenant()+" WHERE deleted_at IS NULL ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTenants(rows)
}

func (r *tenantRepo) Update(ctx context.Context, t *models.Tenant) error {
	_, err := r.update(ctx, t, false, 0)
	return err
}

func (r *tenantRepo) UpdateIfVersion(ctx context.Context, t *models.Tenant, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, t, true, expected)
}

func (r *tenantRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Tenant) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *tenantRepo) update(ctx context.Context, t *models.Tenant, check bool, expected int64) (pgconn.CommandTag, error) {
	cols, err := tenantJSONColumns(t)
	if err != nil {
		return nil, err
	}
	sql := `
        UPDATE tenants SET
            first_name=$1, last_name=$2, email=$3, phone_number=$4, account_status=$5,
            right_to_occupy=$6, employment_income=$7, affordability=$8, guarantor=$9,
            referencing=$10, leases=$11, application_status=$12, qualification=$13,
            updated_at=NOW()
    `
	args := []any{
		t.FirstName, t.LastName, t.Email, t.PhoneNumber, t.AccountStatus,
		cols.rightToOccupy, cols.employmentIncome, cols.affordability, cols.guarantor,
		cols.referencing, cols.leases, cols.applicationStatus, cols.qualification,
	}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$14 AND row_version=$15 AND deleted_at IS NULL`
		args = append(args, t.ID, expected)
	} else {
		sql += ` WHERE id=$14 AND deleted_at IS NULL`
		args = append(args, t.ID)
	}

	return r.db.Exec(ctx, sql, args...)
}

func (r *tenantRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `UPDATE tenants SET deleted_at=NOW() WHERE id=$1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

/* ---------- internals ---------- */

type tenantJSON struct {
	rightToOccupy     []byte
	employmentIncome  []byte
	affordability     []byte
	guarantor         []byte
	referencing       []byte
	leases            []byte
	applicationStatus []byte
	qualification     []byte
}

func tenantJSONColumns(t *models.Tenant) (*tenantJSON, error) {
	var (
		cols tenantJSON
		err  error
	)
	if cols.rightToOccupy, err = json.Marshal(t.RightToOccupy); err != nil {
		return nil, err
	}
	if cols.employmentIncome, err = json.Marshal(t.EmploymentIncome); err != nil {
		return nil, err
	}
	if cols.affordability, err = json.Marshal(t.Affordability); err != nil {
		return nil, err
	}
	if cols.guarantor, err = json.Marshal(t.Guarantor); err != nil {
		return nil, err
	}
	if cols.referencing, err = json.Marshal(t.Referencing); err != nil {
		return nil, err
	}
	leases := t.Leases
	if leases == nil {
		// keep the NOT NULL jsonb column an empty array, not NULL
		leases = []models.Lease{}
	}
	if cols.leases, err = json.Marshal(leases); err != nil {
		return nil, err
	}
	if cols.applicationStatus, err = json.Marshal(t.ApplicationStatus); err != nil {
		return nil, err
	}
	if cols.qualification, err = json.Marshal(t.Qualification); err != nil {
		return nil, err
	}
	return &cols, nil
}

func baseSelectTenant() string {
	return `
        SELECT
            id, manager_id, first_name, last_name, email, phone_number, account_status,
            right_to_occupy, employment_income, affordability, guarantor, referencing,
            leases, application_status, qualification,
            created_at, updated_at, deleted_at, row_version
        FROM tenants
    `
}

func scanTenant(row pgx.Row) (*models.Tenant, error) {
	var (
		t    models.Tenant
		cols tenantJSON
	)
	err := row.Scan(
		&t.ID,
		&t.ManagerID,
		&t.FirstName,
		&t.LastName,
		&t.Email,
		&t.PhoneNumber,
		&t.AccountStatus,
		&cols.rightToOccupy,
		&cols.employmentIncome,
		&cols.affordability,
		&cols.guarantor,
		&cols.referencing,
		&cols.leases,
		&cols.applicationStatus,
		&cols.qualification,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.DeletedAt,
		&t.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(cols.rightToOccupy, &t.RightToOccupy); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(cols.employmentIncome, &t.EmploymentIncome); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(cols.affordability, &t.Affordability); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(cols.guarantor, &t.Guarantor); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(cols.referencing, &t.Referencing); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(cols.leases, &t.Leases); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(cols.applicationStatus, &t.ApplicationStatus); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(cols.qualification, &t.Qualification); err != nil {
		return nil, err
	}
	return &t, nil
}

func scanTenants(rows pgx.Rows) ([]*models.Tenant, error) {
	var out []*models.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
