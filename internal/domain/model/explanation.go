package model

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/bibbank/loanscore/internal/domain/valueobject"
)

// DebtToIncome is the annuity/income ratio shown next to the decision.
type DebtToIncome struct {
	ratio   decimal.Decimal
	status  valueobject.DTIStatus
	defined bool
}

// NewDebtToIncome returns a defined ratio with its display status.
func NewDebtToIncome(ratio decimal.Decimal, status valueobject.DTIStatus) DebtToIncome {
	return DebtToIncome{ratio: ratio, status: status, defined: true}
}

// UndefinedDebtToIncome is the ratio for a zero income.
func UndefinedDebtToIncome() DebtToIncome {
	return DebtToIncome{status: valueobject.DTIStatusUndefined}
}

// Ratio returns the ratio and whether it is defined.
func (d DebtToIncome) Ratio() (decimal.Decimal, bool) { return d.ratio, d.defined }
func (d DebtToIncome) Status() valueobject.DTIStatus  { return d.status }

// Explanation is the ordered heuristic factor list plus the DTI display.
type Explanation struct {
	dti     DebtToIncome
	factors []valueobject.ExplanationFactor
}

// NewExplanation keeps factor order. An empty list becomes the single
// stable-profile factor, so an explanation is never empty.
func NewExplanation(factors []valueobject.ExplanationFactor, dti DebtToIncome) Explanation {
	if len(factors) == 0 {
		factors = []valueobject.ExplanationFactor{valueobject.FactorStableProfile}
	}
	return Explanation{factors: slices.Clone(factors), dti: dti}
}

func (e Explanation) Factors() []valueobject.ExplanationFactor { return slices.Clone(e.factors) }
func (e Explanation) DebtToIncome() DebtToIncome               { return e.dti }

// Messages returns the factor messages in order.
func (e Explanation) Messages() []string {
	out := make([]string, len(e.factors))
	for i, f := range e.factors {
		out[i] = f.Message()
	}
	return out
}

// Codes returns the factor codes in order.
func (e Explanation) Codes() []string {
	out := make([]string, len(e.factors))
	for i, f := range e.factors {
		out[i] = f.Code()
	}
	return out
}
