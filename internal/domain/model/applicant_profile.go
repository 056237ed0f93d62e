package model

import (
	"fmt"
	"math"

	"github.com/bibbank/loanscore/internal/domain/valueobject"
	"github.com/bibbank/loanscore/pkg/money"
)

const daysPerYear = 365.0

// ApplicantProfileParams carries the raw attributes of an application.
// Optional attributes are nil when the applicant did not provide them.
type ApplicantProfileParams struct {
	MonthlyIncome     money.Money
	CreditAmount      money.Money
	Annuity           money.Money
	AgeYears          *float64
	AgeDays           *float64
	EmploymentYears   *float64
	EmploymentDays    *float64
	ExtSource1        *float64
	ExtSource2        *float64
	PrevApplications  *int
	ActiveBureauLoans *int
}

// ApplicantProfile is a validated, immutable set of applicant attributes.
type ApplicantProfile struct {
	p ApplicantProfileParams
}

// NewApplicantProfile validates params. Out-of-range values are rejected,
// never clamped.
func NewApplicantProfile(p ApplicantProfileParams) (ApplicantProfile, error) {
	cur := p.MonthlyIncome.Currency()
	if cur.Code() == "" {
		return ApplicantProfile{}, fmt.Errorf("%w: currency is required", ErrInvalidProfile)
	}
	amounts := []struct {
		name string
		m    money.Money
	}{
		{"monthly income", p.MonthlyIncome},
		{"credit amount", p.CreditAmount},
		{"annuity", p.Annuity},
	}
	for _, a := range amounts {
		if a.m.Currency() != cur {
			return ApplicantProfile{}, fmt.Errorf("%w: %s is in %s, expected %s", ErrInvalidProfile, a.name, a.m.Currency(), cur)
		}
		if a.m.IsNegative() {
			return ApplicantProfile{}, fmt.Errorf("%w: %s must not be negative", ErrInvalidProfile, a.name)
		}
	}

	if err := checkReal("age in years", p.AgeYears, 0, math.Inf(1), false); err != nil {
		return ApplicantProfile{}, err
	}
	if err := checkReal("age in days", p.AgeDays, 0, math.Inf(1), false); err != nil {
		return ApplicantProfile{}, err
	}
	if err := checkReal("years employed", p.EmploymentYears, 0, math.Inf(1), true); err != nil {
		return ApplicantProfile{}, err
	}
	if err := checkReal("days employed", p.EmploymentDays, 0, math.Inf(1), true); err != nil {
		return ApplicantProfile{}, err
	}
	if err := checkReal("external source 1", p.ExtSource1, 0, 1, true); err != nil {
		return ApplicantProfile{}, err
	}
	if err := checkReal("external source 2", p.ExtSource2, 0, 1, true); err != nil {
		return ApplicantProfile{}, err
	}
	if p.PrevApplications != nil && *p.PrevApplications < 0 {
		return ApplicantProfile{}, fmt.Errorf("%w: previous applications must not be negative", ErrInvalidProfile)
	}
	if p.ActiveBureauLoans != nil && *p.ActiveBureauLoans < 0 {
		return ApplicantProfile{}, fmt.Errorf("%w: active bureau loans must not be negative", ErrInvalidProfile)
	}

	return ApplicantProfile{p: p}, nil
}

// checkReal validates an optional real. The lower bound is inclusive only when
// lowInclusive is set; the upper bound is always inclusive.
func checkReal(name string, v *float64, low, high float64, lowInclusive bool) error {
	if v == nil {
		return nil
	}
	x := *v
	switch {
	case math.IsNaN(x) || math.IsInf(x, 0):
		return fmt.Errorf("%w: %s is not a finite number", ErrInvalidProfile, name)
	case lowInclusive && x < low, !lowInclusive && x <= low:
		return fmt.Errorf("%w: %s %v is below the allowed range", ErrInvalidProfile, name, x)
	case x > high:
		return fmt.Errorf("%w: %s %v is above the allowed range", ErrInvalidProfile, name, x)
	}
	return nil
}

func (a ApplicantProfile) MonthlyIncome() money.Money { return a.p.MonthlyIncome }
func (a ApplicantProfile) CreditAmount() money.Money  { return a.p.CreditAmount }
func (a ApplicantProfile) Annuity() money.Money       { return a.p.Annuity }
func (a ApplicantProfile) Currency() money.Currency   { return a.p.MonthlyIncome.Currency() }

// Value returns the raw model input for f exactly as provided. No unit
// conversion happens here: age_years is never derived from age_days.
func (a ApplicantProfile) Value(f valueobject.FeatureID) (float64, bool) {
	switch f {
	case valueobject.FeatureMonthlyIncome:
		return a.p.MonthlyIncome.Float64(), true
	case valueobject.FeatureCreditAmount:
		return a.p.CreditAmount.Float64(), true
	case valueobject.FeatureAnnuity:
		return a.p.Annuity.Float64(), true
	case valueobject.FeatureAgeYears:
		return deref(a.p.AgeYears)
	case valueobject.FeatureAgeDays:
		return deref(a.p.AgeDays)
	case valueobject.FeatureYearsEmployed:
		return deref(a.p.EmploymentYears)
	case valueobject.FeatureDaysEmployed:
		return deref(a.p.EmploymentDays)
	case valueobject.FeatureExtSource1:
		return deref(a.p.ExtSource1)
	case valueobject.FeatureExtSource2:
		return deref(a.p.ExtSource2)
	case valueobject.FeaturePrevApplications:
		return derefInt(a.p.PrevApplications)
	case valueobject.FeatureActiveBureauLoans:
		return derefInt(a.p.ActiveBureauLoans)
	default:
		return 0, false
	}
}

// AgeInYears returns the age in years, converting from days when only days were given.
// Used by the explanation heuristics, not by model input.
func (a ApplicantProfile) AgeInYears() (float64, bool) {
	if a.p.AgeYears != nil {
		return *a.p.AgeYears, true
	}
	if a.p.AgeDays != nil {
		return *a.p.AgeDays / daysPerYear, true
	}
	return 0, false
}

// EmploymentInYears mirrors AgeInYears for employment duration.
func (a ApplicantProfile) EmploymentInYears() (float64, bool) {
	if a.p.EmploymentYears != nil {
		return *a.p.EmploymentYears, true
	}
	if a.p.EmploymentDays != nil {
		return *a.p.EmploymentDays / daysPerYear, true
	}
	return 0, false
}

func (a ApplicantProfile) ExtSource1() (float64, bool) { return deref(a.p.ExtSource1) }
func (a ApplicantProfile) ExtSource2() (float64, bool) { return deref(a.p.ExtSource2) }

func deref(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}

func derefInt(v *int) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return float64(*v), true
}
