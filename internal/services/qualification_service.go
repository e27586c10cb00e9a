package services

import (
	"github.com/AryanKumar02/HomeIQ-sub000/internal/constants"
	"github.com/AryanKumar02/HomeIQ-sub000/internal/models"
)

// Issue strings are part of the API contract: callers display them and
// tests pin their ordering. Downstream code branches on the verdict,
// never on these strings.
const (
	IssueRentNotPositive        = "candidate rent must be positive"
	IssueIncomeDetailsMissing   = "income details incomplete"
	IssueIncomeBelowMultiple    = "income below required multiple of rent"
	IssueAffordabilityMissing   = "affordability assessment incomplete"
	IssueDisposableBelowRent    = "disposable income below rent"
	IssueRightToRentUnverified  = "right to rent not verified"
	IssueReferencingPending     = "referencing pending"
	IssueReferencingFailed      = "referencing failed"
	IssueReferencingConditional = "referencing passed with conditions"
	IssueGuarantorMissing       = "guarantor required but not provided"
)

/*
QualificationEngine decides whether a tenant is eligible to take on a
given monthly rent. Evaluate is pure: same facts and rent always give
the same verdict and the same issue ordering. It never short-circuits;
every failing test contributes its issue so the caller sees the whole
picture at once.

Test order: income multiple, affordability, legal verification,
referencing, guarantor. Legal failure, referencing failure and a
missing required guarantor are disqualifying; everything else at worst
downgrades to NEEDS_REVIEW or UNKNOWN.
*/
type QualificationEngine struct{}

func NewQualificationEngine() *QualificationEngine {
	return &QualificationEngine{}
}

func (e *QualificationEngine) Evaluate(t *models.Tenant, candidateRent float64) models.QualificationRecord {
	var (
		issues       []string
		disqualified bool
		unknown      bool
		review       bool
	)

	if candidateRent <= 0 {
		return models.QualificationRecord{
			Verdict:       models.VerdictUnknown,
			Issues:        []string{IssueRentNotPositive},
			CandidateRent: candidateRent,
		}
	}

	// 1. Income test: qualifying income = gross monthly + benefits.
	if t.EmploymentIncome.GrossMonthly == nil {
		issues = append(issues, IssueIncomeDetailsMissing)
		unknown = true
	} else {
		qualifying := *t.EmploymentIncome.GrossMonthly
		if t.EmploymentIncome.MonthlyBenefits != nil {
			qualifying += *t.EmploymentIncome.MonthlyBenefits
		}
		if qualifying < constants.IncomeToRentMultiple*candidateRent {
			issues = append(issues, IssueIncomeBelowMultiple)
			disqualified = true
		}
	}

	// 2. Affordability test: disposable income must cover the rent.
	if disposable, ok := t.Affordability.DisposableIncome(); !ok {
		issues = append(issues, IssueAffordabilityMissing)
		unknown = true
	} else if disposable < candidateRent {
		issues = append(issues, IssueDisposableBelowRent)
		disqualified = true
	}

	// 3. Legal verification: mandatory, always disqualifying.
	if !t.RightToOccupy.Verified {
		issues = append(issues, IssueRightToRentUnverified)
		disqualified = true
	}

	// 4. Referencing.
	switch t.Referencing.Outcome {
	case models.ReferencingOutcomePass:
		// no issue
	case models.ReferencingOutcomePassWithConditions:
		issues = append(issues, IssueReferencingConditional)
		review = true
	case models.ReferencingOutcomeFail:
		issues = append(issues, IssueReferencingFailed)
		disqualified = true
	default:
		// PENDING or absent
		issues = append(issues, IssueReferencingPending)
		review = true
	}

	// 5. Guarantor.
	if t.Guarantor.Required && !t.Guarantor.Provided {
		issues = append(issues, IssueGuarantorMissing)
		disqualified = true
	}

	verdict := models.VerdictQualified
	switch {
	case disqualified:
		verdict = models.VerdictNotQualified
	case unknown:
		verdict = models.VerdictUnknown
	case review:
		verdict = models.VerdictNeedsReview
	}

	return models.QualificationRecord{
		Verdict:       verdict,
		Issues:        issues,
		CandidateRent: candidateRent,
	}
}
