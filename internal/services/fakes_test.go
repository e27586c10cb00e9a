package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/AryanKumar02/HomeIQ-sub000/internal/models"
)

/* ------------------------------------------------------------------
   In-memory repositories with real optimistic-locking semantics.
   UpdateIfVersion succeeds only when the stored row version matches,
   so concurrent callers race exactly like they would against the
   database.
------------------------------------------------------------------ */

func deepCopy[T any](src *T) *T {
	raw, err := json.Marshal(src)
	if err != nil {
		panic(err)
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(err)
	}
	return &out
}

type fakeTenantRepo struct {
	mu    sync.Mutex
	store map[uuid.UUID]*models.Tenant

	// failUpdate, when set, makes every conditional write fail.
	failUpdate error
}

func newFakeTenantRepo() *fakeTenantRepo {
	return &fakeTenantRepo{store: map[uuid.UUID]*models.Tenant{}}
}

func (f *fakeTenantRepo) Create(_ context.Context, t *models.Tenant) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := deepCopy(t)
	if cp.RowVersion == 0 {
		cp.RowVersion = 1
	}
	f.store[cp.ID] = cp
	return nil
}

func (f *fakeTenantRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Tenant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.store[id]
	if !ok {
		return nil, nil
	}
	return deepCopy(t), nil
}

func (f *fakeTenantRepo) ListByManagerID(_ context.Context, managerID uuid.UUID) ([]*models.Tenant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Tenant
	for _, t := range f.store {
		if t.ManagerID == managerID {
			out = append(out, deepCopy(t))
		}
	}
	return out, nil
}

func (f *fakeTenantRepo) ListAllTenants(_ context.Context) ([]*models.Tenant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Tenant
	for _, t := range f.store {
		out = append(out, deepCopy(t))
	}
	return out, nil
}

func (f *fakeTenantRepo) Update(ctx context.Context, t *models.Tenant) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.store[t.ID] = deepCopy(t)
	return nil
}

func (f *fakeTenantRepo) UpdateIfVersion(_ context.Context, t *models.Tenant, expected int64) (pgconn.CommandTag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdate != nil {
		return nil, f.failUpdate
	}
	stored, ok := f.store[t.ID]
	if !ok || stored.RowVersion != expected {
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	cp := deepCopy(t)
	cp.RowVersion = expected + 1
	f.store[t.ID] = cp
	return pgconn.CommandTag("UPDATE 1"), nil
}

func (f *fakeTenantRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Tenant) error) error {
	for i := 0; i < 5; i++ {
		t, err := f.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return pgx.ErrNoRows
		}
		if err := mutate(t); err != nil {
			return err
		}
		tag, err := f.UpdateIfVersion(ctx, t, t.RowVersion)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 1 {
			return nil
		}
	}
	return errors.New("too much contention updating tenant")
}

func (f *fakeTenantRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.store, id)
	return nil
}

type fakePropertyRepo struct {
	mu    sync.Mutex
	store map[uuid.UUID]*models.Property

	// failUpdate, when set, makes every conditional write fail.
	failUpdate error
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{store: map[uuid.UUID]*models.Property{}}
}

func (f *fakePropertyRepo) Create(_ context.Context, p *models.Property) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := deepCopy(p)
	if cp.RowVersion == 0 {
		cp.RowVersion = 1
	}
	f.store[cp.ID] = cp
	return nil
}

func (f *fakePropertyRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.store[id]
	if !ok {
		return nil, nil
	}
	return deepCopy(p), nil
}

func (f *fakePropertyRepo) ListByManagerID(_ context.Context, managerID uuid.UUID) ([]*models.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Property
	for _, p := range f.store {
		if p.ManagerID == managerID {
			out = append(out, deepCopy(p))
		}
	}
	return out, nil
}

func (f *fakePropertyRepo) ListAllProperties(_ context.Context) ([]*models.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Property
	for _, p := range f.store {
		out = append(out, deepCopy(p))
	}
	return out, nil
}

func (f *fakePropertyRepo) Update(_ context.Context, p *models.Property) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.store[p.ID] = deepCopy(p)
	return nil
}

func (f *fakePropertyRepo) UpdateIfVersion(_ context.Context, p *models.Property, expected int64) (pgconn.CommandTag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdate != nil {
		return nil, f.failUpdate
	}
	stored, ok := f.store[p.ID]
	if !ok || stored.RowVersion != expected {
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	cp := deepCopy(p)
	cp.RowVersion = expected + 1
	f.store[p.ID] = cp
	return pgconn.CommandTag("UPDATE 1"), nil
}

func (f *fakePropertyRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Property) error) error {
	for i := 0; i < 5; i++ {
		p, err := f.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return pgx.ErrNoRows
		}
		if err := mutate(p); err != nil {
			return err
		}
		tag, err := f.UpdateIfVersion(ctx, p, p.RowVersion)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 1 {
			return nil
		}
	}
	return errors.New("too much contention updating property")
}

func (f *fakePropertyRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.store, id)
	return nil
}

type fakePMRepo struct {
	mu    sync.Mutex
	store map[uuid.UUID]*models.PropertyManager
}

func newFakePMRepo() *fakePMRepo {
	return &fakePMRepo{store: map[uuid.UUID]*models.PropertyManager{}}
}

func (f *fakePMRepo) Create(_ context.Context, pm *models.PropertyManager) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.store[pm.ID] = deepCopy(pm)
	return nil
}

func (f *fakePMRepo) GetByID(_ context.Context, id uuid.UUID) (*models.PropertyManager, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	pm, ok := f.store[id]
	if !ok {
		return nil, nil
	}
	return deepCopy(pm), nil
}

/* ------------------------------------------------------------------
   Fixtures
------------------------------------------------------------------ */

func ptrF(v float64) *float64 { return &v }

// qualifiedTenant has facts that pass every engine test.
func qualifiedTenant(managerID uuid.UUID) *models.Tenant {
	return &models.Tenant{
		ID:            uuid.New(),
		ManagerID:     managerID,
		FirstName:     "Ada",
		LastName:      "Lovelace",
		Email:         "ada@example.com",
		AccountStatus: models.TenantAccountActive,
		RightToOccupy: models.RightToOccupy{Verified: true},
		EmploymentIncome: models.EmploymentIncome{
			GrossMonthly: ptrF(5000),
			Verified:     true,
		},
		Affordability: models.AffordabilityAssessment{
			MonthlyIncome:      ptrF(5000),
			MonthlyExpenses:    ptrF(1500),
			MonthlyCommitments: ptrF(500),
		},
		Referencing: models.Referencing{
			Status:  models.ReferencingComplete,
			Outcome: models.ReferencingOutcomePass,
		},
		ApplicationStatus: models.ApplicationStatusRecord{
			Status: models.ApplicationStatusPending,
		},
		Qualification: models.QualificationRecord{Verdict: models.VerdictUnknown},
	}
}

func singleLetProperty(managerID uuid.UUID) *models.Property {
	return &models.Property{
		ID:           uuid.New(),
		ManagerID:    managerID,
		PropertyName: "12 Rosewood Lane",
		AddressLine1: "12 Rosewood Lane",
		City:         "Leeds",
		Postcode:     "LS1 4DY",
		PropertyType: models.PropertyTypeHouse,
		Financials: models.Financials{
			MonthlyRent:     1200,
			SecurityDeposit: 1400,
		},
		Occupancy: &models.Occupancy{Status: models.OccupancyStatusAvailable},
	}
}

func multiUnitProperty(managerID uuid.UUID) *models.Property {
	return &models.Property{
		ID:           uuid.New(),
		ManagerID:    managerID,
		PropertyName: "Marlowe Court",
		AddressLine1: "3 Marlowe Street",
		City:         "Leeds",
		Postcode:     "LS2 7EW",
		PropertyType: models.PropertyTypeApartment,
		Financials: models.Financials{
			MonthlyRent:     900,
			SecurityDeposit: 1000,
		},
		Units: []models.Unit{
			{
				ID:              uuid.New(),
				UnitNumber:      "1A",
				Bedrooms:        2,
				Bathrooms:       1,
				MonthlyRent:     950,
				SecurityDeposit: 1100,
				Occupancy:       models.Occupancy{Status: models.OccupancyStatusAvailable},
			},
			{
				ID:              uuid.New(),
				UnitNumber:      "1B",
				Bedrooms:        1,
				Bathrooms:       1,
				MonthlyRent:     850,
				SecurityDeposit: 950,
				Occupancy:       models.Occupancy{Status: models.OccupancyStatusAvailable},
			},
		},
	}
}
