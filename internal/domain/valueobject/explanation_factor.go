package valueobject

// ExplanationFactor is one heuristic reason attached to an assessment.
type ExplanationFactor struct {
	code    string
	message string
}

var (
	FactorHighDebtToIncome = ExplanationFactor{
		code:    "HIGH_DEBT_TO_INCOME",
		message: "The requested installment is large relative to monthly income.",
	}
	FactorShortEmployment = ExplanationFactor{
		code:    "SHORT_EMPLOYMENT",
		message: "Employment history is relatively short.",
	}
	FactorYoungApplicant = ExplanationFactor{
		code:    "YOUNG_APPLICANT",
		message: "The applicant is relatively young.",
	}
	FactorBureauRisk = ExplanationFactor{
		code:    "BUREAU_RISK",
		message: "External credit history indicates elevated risk.",
	}
	FactorStableProfile = ExplanationFactor{
		code:    "STABLE_PROFILE",
		message: "The applicant profile appears relatively stable based on the available data.",
	}
)

func (f ExplanationFactor) Code() string    { return f.code }
func (f ExplanationFactor) Message() string { return f.message }
func (f ExplanationFactor) String() string  { return f.message }

// DTIStatus classifies the debt-to-income ratio for display.
type DTIStatus struct {
	value string
	style AlertStyle
}

var (
	DTIStatusSafe      = DTIStatus{value: "SAFE", style: AlertStyleSuccess}
	DTIStatusHigh      = DTIStatus{value: "HIGH", style: AlertStyleWarning}
	DTIStatusUndefined = DTIStatus{value: "UNDEFINED"}
)

func (s DTIStatus) String() string { return s.value }

// Style returns the display style. Undefined ratios have none.
func (s DTIStatus) Style() AlertStyle { return s.style }
