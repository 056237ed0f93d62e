package service

import (
	"github.com/shopspring/decimal"

	"github.com/bibbank/loanscore/internal/domain/model"
	"github.com/bibbank/loanscore/internal/domain/valueobject"
)

// Heuristic rule limits.
var dtiLimit = decimal.RequireFromString("0.4")

const (
	minEmploymentYears = 2.0
	minAgeYears        = 21.0
	bureauScoreFloor   = 0.5
)

// Explainer produces the ordered heuristic factors shown next to a decision.
// The rules read raw attributes and are independent of the classifier; they
// are not a feature attribution.
type Explainer struct {
	bureauRules bool
}

// NewExplainer enables the bureau rule only when schema carries a bureau score.
func NewExplainer(schema valueobject.FeatureSchema) *Explainer {
	return &Explainer{
		bureauRules: schema.Has(valueobject.FeatureExtSource1) || schema.Has(valueobject.FeatureExtSource2),
	}
}

// Explain evaluates, in order: debt-to-income, employment length, age and,
// when enabled, bureau scores.
func (e *Explainer) Explain(profile model.ApplicantProfile) model.Explanation {
	var factors []valueobject.ExplanationFactor

	dti := debtToIncome(profile)
	if dti.Status() == valueobject.DTIStatusHigh {
		factors = append(factors, valueobject.FactorHighDebtToIncome)
	}

	if years, ok := profile.EmploymentInYears(); ok && years < minEmploymentYears {
		factors = append(factors, valueobject.FactorShortEmployment)
	}

	if age, ok := profile.AgeInYears(); ok && age < minAgeYears {
		factors = append(factors, valueobject.FactorYoungApplicant)
	}

	if e.bureauRules && weakBureau(profile) {
		factors = append(factors, valueobject.FactorBureauRisk)
	}

	return model.NewExplanation(factors, dti)
}

// debtToIncome is undefined for a zero income. The HIGH status needs a ratio
// strictly above the limit, compared as annuity > income*limit so rounding in
// the displayed quotient cannot pull a ratio back onto the limit.
func debtToIncome(profile model.ApplicantProfile) model.DebtToIncome {
	if profile.MonthlyIncome().IsZero() {
		return model.UndefinedDebtToIncome()
	}
	ratio, err := profile.Annuity().Ratio(profile.MonthlyIncome())
	if err != nil {
		return model.UndefinedDebtToIncome()
	}
	if profile.Annuity().Amount().GreaterThan(profile.MonthlyIncome().Amount().Mul(dtiLimit)) {
		return model.NewDebtToIncome(ratio, valueobject.DTIStatusHigh)
	}
	return model.NewDebtToIncome(ratio, valueobject.DTIStatusSafe)
}

func weakBureau(profile model.ApplicantProfile) bool {
	if v, ok := profile.ExtSource1(); ok && v < bureauScoreFloor {
		return true
	}
	if v, ok := profile.ExtSource2(); ok && v < bureauScoreFloor {
		return true
	}
	return false
}
