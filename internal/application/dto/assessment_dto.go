package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bibbank/loanscore/internal/domain/model"
	"github.com/bibbank/loanscore/internal/domain/valueobject"
	"github.com/bibbank/loanscore/pkg/money"
)

// DefaultCurrency is assumed when a request omits the currency.
const DefaultCurrency = "IDR"

// DecisionSupportNotice accompanies every assessment.
const DecisionSupportNotice = "This result is decision support only and is not a final lending decision. " +
	"The explanation factors are heuristic checks on the raw inputs, not a model attribution."

// AssessApplicationRequest is the input DTO for the AssessApplication use case.
// A bureau rating (good, fair, poor) may be given instead of a raw external score.
type AssessApplicationRequest struct {
	MonthlyIncome     *decimal.Decimal `json:"monthly_income"`
	CreditAmount      *decimal.Decimal `json:"credit_amount"`
	Annuity           *decimal.Decimal `json:"annuity"`
	AgeYears          *float64         `json:"age_years,omitempty"`
	AgeDays           *float64         `json:"age_days,omitempty"`
	EmploymentYears   *float64         `json:"employment_years,omitempty"`
	EmploymentDays    *float64         `json:"employment_days,omitempty"`
	ExtSource1        *float64         `json:"ext_source_1,omitempty"`
	ExtSource2        *float64         `json:"ext_source_2,omitempty"`
	PrevApplications  *int             `json:"prev_applications,omitempty"`
	ActiveBureauLoans *int             `json:"active_bureau_loans,omitempty"`
	Threshold         *float64         `json:"threshold,omitempty"`
	Currency          string           `json:"currency,omitempty"`
	BureauRating1     string           `json:"bureau_rating_1,omitempty"`
	BureauRating2     string           `json:"bureau_rating_2,omitempty"`
	Variant           string           `json:"variant,omitempty"`
}

// ToProfileParams converts the request attributes into domain parameters.
// A missing amount wraps model.ErrSchemaMismatch; every other error wraps
// model.ErrInvalidProfile. Amounts are never defaulted to zero.
func (r AssessApplicationRequest) ToProfileParams() (model.ApplicantProfileParams, error) {
	code := r.Currency
	if code == "" {
		code = DefaultCurrency
	}
	cur, err := money.NewCurrency(code)
	if err != nil {
		return model.ApplicantProfileParams{}, fmt.Errorf("%w: %v", model.ErrInvalidProfile, err)
	}

	ext1, err := externalScore("1", r.ExtSource1, r.BureauRating1)
	if err != nil {
		return model.ApplicantProfileParams{}, err
	}
	ext2, err := externalScore("2", r.ExtSource2, r.BureauRating2)
	if err != nil {
		return model.ApplicantProfileParams{}, err
	}

	if missing := r.missingAmounts(); len(missing) > 0 {
		return model.ApplicantProfileParams{}, fmt.Errorf("%w: missing %s", model.ErrSchemaMismatch, strings.Join(missing, ", "))
	}

	return model.ApplicantProfileParams{
		MonthlyIncome:     money.New(*r.MonthlyIncome, cur),
		CreditAmount:      money.New(*r.CreditAmount, cur),
		Annuity:           money.New(*r.Annuity, cur),
		AgeYears:          r.AgeYears,
		AgeDays:           r.AgeDays,
		EmploymentYears:   r.EmploymentYears,
		EmploymentDays:    r.EmploymentDays,
		ExtSource1:        ext1,
		ExtSource2:        ext2,
		PrevApplications:  r.PrevApplications,
		ActiveBureauLoans: r.ActiveBureauLoans,
	}, nil
}

func (r AssessApplicationRequest) missingAmounts() []string {
	var missing []string
	if r.MonthlyIncome == nil {
		missing = append(missing, "monthly_income")
	}
	if r.CreditAmount == nil {
		missing = append(missing, "credit_amount")
	}
	if r.Annuity == nil {
		missing = append(missing, "annuity")
	}
	return missing
}

func externalScore(n string, raw *float64, rating string) (*float64, error) {
	if rating == "" {
		return raw, nil
	}
	if raw != nil {
		return nil, fmt.Errorf("%w: external source %s given both as score and as rating", model.ErrInvalidProfile, n)
	}
	r, err := valueobject.BureauRatingFromString(rating)
	if err != nil {
		return nil, fmt.Errorf("%w: external source %s: %v", model.ErrInvalidProfile, n, err)
	}
	score := r.Score()
	return &score, nil
}

// ScoreDTO is the presented classifier output.
type ScoreDTO struct {
	Mode  string  `json:"mode"`
	Value float64 `json:"value"`
}

// DecisionDTO is the categorical result.
type DecisionDTO struct {
	Band           string `json:"band,omitempty"`
	Recommendation string `json:"recommendation"`
	Style          string `json:"style"`
}

// FactorDTO is one explanation factor.
type FactorDTO struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DebtToIncomeDTO carries the debt-to-income ratio. Ratio is nil when income is zero.
type DebtToIncomeDTO struct {
	Ratio  *string `json:"ratio"`
	Status string  `json:"status"`
	Style  string  `json:"style,omitempty"`
}

// AssessmentResponse is the output DTO returned after an assessment.
type AssessmentResponse struct {
	CompletedAt  time.Time       `json:"completed_at"`
	Threshold    *float64        `json:"threshold,omitempty"`
	Factors      []FactorDTO     `json:"factors"`
	Decision     DecisionDTO     `json:"decision"`
	Score        ScoreDTO        `json:"score"`
	DebtToIncome DebtToIncomeDTO `json:"debt_to_income"`
	ID           uuid.UUID       `json:"id"`
	Variant      string          `json:"variant"`
	Notice       string          `json:"notice"`
}

// FromModel maps a completed assessment to the response DTO.
func FromModel(a *model.LoanAssessment) AssessmentResponse {
	decision := a.Decision()
	explanation := a.Explanation()

	factors := make([]FactorDTO, 0, len(explanation.Factors()))
	for _, f := range explanation.Factors() {
		factors = append(factors, FactorDTO{Code: f.Code(), Message: f.Message()})
	}

	dti := explanation.DebtToIncome()
	dtiDTO := DebtToIncomeDTO{
		Status: dti.Status().String(),
		Style:  dti.Status().Style().String(),
	}
	if ratio, ok := dti.Ratio(); ok {
		s := ratio.StringFixed(4)
		dtiDTO.Ratio = &s
	}

	return AssessmentResponse{
		ID:      a.ID(),
		Variant: a.Variant(),
		Score: ScoreDTO{
			Mode:  a.Score().Mode().String(),
			Value: a.Score().Value(),
		},
		Decision: DecisionDTO{
			Band:           decision.Band().String(),
			Recommendation: decision.Recommendation().String(),
			Style:          decision.Style().String(),
		},
		Factors:      factors,
		DebtToIncome: dtiDTO,
		Threshold:    a.Threshold(),
		Notice:       DecisionSupportNotice,
		CompletedAt:  a.CompletedAt(),
	}
}
