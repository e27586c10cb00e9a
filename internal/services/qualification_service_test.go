package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AryanKumar02/HomeIQ-sub000/internal/models"
)

func TestEvaluateQualifiedTenant(t *testing.T) {
	engine := NewQualificationEngine()
	tenant := qualifiedTenant(uuid.New())

	rec := engine.Evaluate(tenant, 1200)

	assert.Equal(t, models.VerdictQualified, rec.Verdict)
	assert.Empty(t, rec.Issues)
	assert.Equal(t, 1200.0, rec.CandidateRent)
}

func TestEvaluateRentNotPositive(t *testing.T) {
	engine := NewQualificationEngine()
	tenant := qualifiedTenant(uuid.New())

	for _, rent := range []float64{0, -50} {
		rec := engine.Evaluate(tenant, rent)
		assert.Equal(t, models.VerdictUnknown, rec.Verdict)
		assert.Equal(t, []string{IssueRentNotPositive}, rec.Issues)
	}
}

func TestEvaluateIncomeBoundary(t *testing.T) {
	engine := NewQualificationEngine()
	tenant := qualifiedTenant(uuid.New())

	// 5000 gross covers exactly 2.5x of 2000: the boundary passes.
	rec := engine.Evaluate(tenant, 2000)
	assert.NotContains(t, rec.Issues, IssueIncomeBelowMultiple)

	// A penny over the boundary fails. Affordability independently
	// still passes (disposable 3000 > 2000.01).
	rec = engine.Evaluate(tenant, 2000.01)
	assert.Equal(t, models.VerdictNotQualified, rec.Verdict)
	assert.Contains(t, rec.Issues, IssueIncomeBelowMultiple)
}

func TestEvaluateBenefitsCountTowardIncome(t *testing.T) {
	engine := NewQualificationEngine()
	tenant := qualifiedTenant(uuid.New())
	tenant.EmploymentIncome.GrossMonthly = ptrF(2000)
	tenant.EmploymentIncome.MonthlyBenefits = ptrF(1000)

	// 2000 + 1000 = 3000 covers 2.5x of 1200.
	rec := engine.Evaluate(tenant, 1200)
	assert.NotContains(t, rec.Issues, IssueIncomeBelowMultiple)
}

func TestEvaluateMissingIncomeYieldsUnknown(t *testing.T) {
	engine := NewQualificationEngine()
	tenant := qualifiedTenant(uuid.New())
	tenant.EmploymentIncome.GrossMonthly = nil

	rec := engine.Evaluate(tenant, 1200)

	assert.Equal(t, models.VerdictUnknown, rec.Verdict)
	assert.Contains(t, rec.Issues, IssueIncomeDetailsMissing)
}

func TestEvaluateDisposableBelowRent(t *testing.T) {
	engine := NewQualificationEngine()
	tenant := qualifiedTenant(uuid.New())
	tenant.Affordability.MonthlyExpenses = ptrF(3500)
	tenant.Affordability.MonthlyCommitments = ptrF(500)

	// Disposable = 5000 - 3500 - 500 = 1000 < 1200.
	rec := engine.Evaluate(tenant, 1200)

	assert.Equal(t, models.VerdictNotQualified, rec.Verdict)
	assert.Contains(t, rec.Issues, IssueDisposableBelowRent)
}

func TestEvaluateRightToRentMandatory(t *testing.T) {
	engine := NewQualificationEngine()
	tenant := qualifiedTenant(uuid.New())
	tenant.RightToOccupy.Verified = false

	rec := engine.Evaluate(tenant, 1200)

	assert.Equal(t, models.VerdictNotQualified, rec.Verdict)
	assert.Contains(t, rec.Issues, IssueRightToRentUnverified)
}

func TestEvaluateReferencingOutcomes(t *testing.T) {
	engine := NewQualificationEngine()

	cases := []struct {
		outcome models.ReferencingOutcomeType
		verdict models.QualificationVerdictType
		issue   string
	}{
		{models.ReferencingOutcomePass, models.VerdictQualified, ""},
		{models.ReferencingOutcomePassWithConditions, models.VerdictNeedsReview, IssueReferencingConditional},
		{models.ReferencingOutcomeFail, models.VerdictNotQualified, IssueReferencingFailed},
		{models.ReferencingOutcomePending, models.VerdictNeedsReview, IssueReferencingPending},
	}
	for _, tc := range cases {
		tenant := qualifiedTenant(uuid.New())
		tenant.Referencing.Outcome = tc.outcome

		rec := engine.Evaluate(tenant, 1200)
		assert.Equal(t, tc.verdict, rec.Verdict, "outcome %s", tc.outcome)
		if tc.issue != "" {
			assert.Contains(t, rec.Issues, tc.issue)
		}
	}
}

func TestEvaluateGuarantorRequired(t *testing.T) {
	engine := NewQualificationEngine()
	tenant := qualifiedTenant(uuid.New())
	tenant.Guarantor.Required = true

	rec := engine.Evaluate(tenant, 1200)
	assert.Equal(t, models.VerdictNotQualified, rec.Verdict)
	assert.Contains(t, rec.Issues, IssueGuarantorMissing)

	tenant.Guarantor.Provided = true
	rec = engine.Evaluate(tenant, 1200)
	assert.Equal(t, models.VerdictQualified, rec.Verdict)
}

func TestEvaluateAccumulatesAllIssuesInOrder(t *testing.T) {
	engine := NewQualificationEngine()
	tenant := &models.Tenant{
		ID:        uuid.New(),
		ManagerID: uuid.New(),
		EmploymentIncome: models.EmploymentIncome{
			GrossMonthly: ptrF(1000),
		},
		Affordability: models.AffordabilityAssessment{
			MonthlyIncome:      ptrF(1000),
			MonthlyExpenses:    ptrF(800),
			MonthlyCommitments: ptrF(100),
		},
		Guarantor: models.Guarantor{Required: true},
	}

	rec := engine.Evaluate(tenant, 1200)

	require.Equal(t, models.VerdictNotQualified, rec.Verdict)
	assert.Equal(t, []string{
		IssueIncomeBelowMultiple,
		IssueDisposableBelowRent,
		IssueRightToRentUnverified,
		IssueReferencingPending,
		IssueGuarantorMissing,
	}, rec.Issues)
}

func TestEvaluateIsDeterministic(t *testing.T) {
	engine := NewQualificationEngine()
	tenant := qualifiedTenant(uuid.New())
	tenant.Referencing.Outcome = models.ReferencingOutcomePending

	first := engine.Evaluate(tenant, 1200)
	for i := 0; i < 10; i++ {
		again := engine.Evaluate(tenant, 1200)
		assert.Equal(t, first, again)
	}
}
