package grpc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bibbank/loanscore/internal/application/dto"
	"github.com/bibbank/loanscore/internal/application/usecase"
)

// Compile-time assertion that ScoringServiceHandler implements ScoringServiceServer.
var _ ScoringServiceServer = (*ScoringServiceHandler)(nil)

// ScoringServiceHandler implements the gRPC ScoringServiceServer interface.
type ScoringServiceHandler struct {
	UnimplementedScoringServiceServer
	assessApplication *usecase.AssessApplication
	listVariants      *usecase.ListVariants
	logger            *slog.Logger
}

// NewScoringServiceHandler creates a new gRPC handler.
func NewScoringServiceHandler(
	assessApplication *usecase.AssessApplication,
	listVariants *usecase.ListVariants,
	logger *slog.Logger,
) *ScoringServiceHandler {
	return &ScoringServiceHandler{
		assessApplication: assessApplication,
		listVariants:      listVariants,
		logger:            logger,
	}
}

// Proto-aligned request/response message types.

// MoneyMsg represents the proto Money message.
type MoneyMsg struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// ApplicantMsg represents the proto Applicant message.
type ApplicantMsg struct {
	MonthlyIncome     *MoneyMsg `json:"monthly_income"`
	CreditAmount      *MoneyMsg `json:"credit_amount"`
	Annuity           *MoneyMsg `json:"annuity"`
	AgeYears          *float64  `json:"age_years,omitempty"`
	AgeDays           *float64  `json:"age_days,omitempty"`
	EmploymentYears   *float64  `json:"employment_years,omitempty"`
	EmploymentDays    *float64  `json:"employment_days,omitempty"`
	ExtSource1        *float64  `json:"ext_source_1,omitempty"`
	ExtSource2        *float64  `json:"ext_source_2,omitempty"`
	PrevApplications  *int32    `json:"prev_applications,omitempty"`
	ActiveBureauLoans *int32    `json:"active_bureau_loans,omitempty"`
	BureauRating1     string    `json:"bureau_rating_1,omitempty"`
	BureauRating2     string    `json:"bureau_rating_2,omitempty"`
}

// AssessApplicationRequest represents the proto AssessApplicationRequest message.
type AssessApplicationRequest struct {
	Applicant *ApplicantMsg `json:"applicant"`
	Threshold *float64      `json:"threshold,omitempty"`
	Variant   string        `json:"variant"`
}

// FactorMsg represents the proto ExplanationFactor message.
type FactorMsg struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AssessmentMsg represents the proto Assessment message.
type AssessmentMsg struct {
	DebtToIncomeRatio  *string     `json:"debt_to_income_ratio,omitempty"`
	Threshold          *float64    `json:"threshold,omitempty"`
	Factors            []FactorMsg `json:"factors"`
	ID                 string      `json:"id"`
	Variant            string      `json:"variant"`
	ScoreMode          string      `json:"score_mode"`
	Band               string      `json:"band,omitempty"`
	Recommendation     string      `json:"recommendation"`
	Style              string      `json:"style"`
	DebtToIncomeStatus string      `json:"debt_to_income_status"`
	Notice             string      `json:"notice"`
	Score              float64     `json:"score"`
}

// AssessApplicationResponse represents the proto AssessApplicationResponse message.
type AssessApplicationResponse struct {
	Assessment *AssessmentMsg `json:"assessment"`
}

// ListVariantsRequest represents the proto ListVariantsRequest message.
type ListVariantsRequest struct{}

// VariantMsg represents the proto Variant message.
type VariantMsg struct {
	Features     []string `json:"features"`
	Threshold    *float64 `json:"threshold,omitempty"`
	ApproveAt    *float64 `json:"approve_at,omitempty"`
	ReviewAt     *float64 `json:"review_at,omitempty"`
	MinThreshold *float64 `json:"min_threshold,omitempty"`
	MaxThreshold *float64 `json:"max_threshold,omitempty"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Schema       string   `json:"schema"`
	ScoreMode    string   `json:"score_mode"`
	Policy       string   `json:"policy"`
	PolicyKind   string   `json:"policy_kind"`
	Adjustable   bool     `json:"adjustable"`
	Default      bool     `json:"default"`
}

// ListVariantsResponse represents the proto ListVariantsResponse message.
type ListVariantsResponse struct {
	Variants       []VariantMsg `json:"variants"`
	DefaultVariant string       `json:"default_variant"`
}

// AssessApplication handles a loan application assessment request.
func (h *ScoringServiceHandler) AssessApplication(ctx context.Context, req *AssessApplicationRequest) (*AssessApplicationResponse, error) {
	if req == nil || req.Applicant == nil {
		return nil, status.Error(codes.InvalidArgument, "applicant is required")
	}

	in, err := toRequest(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	result, err := h.assessApplication.Execute(ctx, in)
	if err != nil {
		return nil, h.toStatus(err)
	}

	return &AssessApplicationResponse{Assessment: toAssessmentMsg(result)}, nil
}

// ListVariants handles a variant discovery request.
func (h *ScoringServiceHandler) ListVariants(ctx context.Context, _ *ListVariantsRequest) (*ListVariantsResponse, error) {
	result, err := h.listVariants.Execute(ctx)
	if err != nil {
		return nil, h.toStatus(err)
	}

	out := &ListVariantsResponse{
		DefaultVariant: result.DefaultVariant,
		Variants:       make([]VariantMsg, 0, len(result.Variants)),
	}
	for _, v := range result.Variants {
		out.Variants = append(out.Variants, VariantMsg{
			Name:         v.Name,
			Description:  v.Description,
			Schema:       v.Schema,
			Features:     v.Features,
			ScoreMode:    v.ScoreMode,
			Policy:       v.Policy.Name,
			PolicyKind:   v.Policy.Kind,
			Threshold:    v.Policy.Threshold,
			ApproveAt:    v.Policy.ApproveAt,
			ReviewAt:     v.Policy.ReviewAt,
			MinThreshold: v.Policy.MinThreshold,
			MaxThreshold: v.Policy.MaxThreshold,
			Adjustable:   v.Policy.Adjustable,
			Default:      v.Default,
		})
	}
	return out, nil
}

func (h *ScoringServiceHandler) toStatus(err error) error {
	if usecase.IsClientError(err) {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	h.logger.Error("assessment request failed", slog.String("error", err.Error()))
	return status.Error(codes.Internal, "internal error")
}

func toRequest(req *AssessApplicationRequest) (dto.AssessApplicationRequest, error) {
	a := req.Applicant
	if a.MonthlyIncome == nil || a.CreditAmount == nil || a.Annuity == nil {
		return dto.AssessApplicationRequest{}, fmt.Errorf("monthly_income, credit_amount and annuity are required")
	}

	currency := a.MonthlyIncome.Currency
	if a.CreditAmount.Currency != currency || a.Annuity.Currency != currency {
		return dto.AssessApplicationRequest{}, fmt.Errorf("amounts must share one currency")
	}

	income, err := decimal.NewFromString(a.MonthlyIncome.Amount)
	if err != nil {
		return dto.AssessApplicationRequest{}, fmt.Errorf("invalid monthly_income: %w", err)
	}
	credit, err := decimal.NewFromString(a.CreditAmount.Amount)
	if err != nil {
		return dto.AssessApplicationRequest{}, fmt.Errorf("invalid credit_amount: %w", err)
	}
	annuity, err := decimal.NewFromString(a.Annuity.Amount)
	if err != nil {
		return dto.AssessApplicationRequest{}, fmt.Errorf("invalid annuity: %w", err)
	}

	return dto.AssessApplicationRequest{
		Variant:           req.Variant,
		Threshold:         req.Threshold,
		Currency:          currency,
		MonthlyIncome:     &income,
		CreditAmount:      &credit,
		Annuity:           &annuity,
		AgeYears:          a.AgeYears,
		AgeDays:           a.AgeDays,
		EmploymentYears:   a.EmploymentYears,
		EmploymentDays:    a.EmploymentDays,
		ExtSource1:        a.ExtSource1,
		ExtSource2:        a.ExtSource2,
		PrevApplications:  intPtr(a.PrevApplications),
		ActiveBureauLoans: intPtr(a.ActiveBureauLoans),
		BureauRating1:     a.BureauRating1,
		BureauRating2:     a.BureauRating2,
	}, nil
}

func toAssessmentMsg(r dto.AssessmentResponse) *AssessmentMsg {
	factors := make([]FactorMsg, 0, len(r.Factors))
	for _, f := range r.Factors {
		factors = append(factors, FactorMsg{Code: f.Code, Message: f.Message})
	}
	return &AssessmentMsg{
		ID:                 r.ID.String(),
		Variant:            r.Variant,
		ScoreMode:          r.Score.Mode,
		Score:              r.Score.Value,
		Band:               r.Decision.Band,
		Recommendation:     r.Decision.Recommendation,
		Style:              r.Decision.Style,
		Factors:            factors,
		DebtToIncomeRatio:  r.DebtToIncome.Ratio,
		DebtToIncomeStatus: r.DebtToIncome.Status,
		Threshold:          r.Threshold,
		Notice:             r.Notice,
	}
}

func intPtr(v *int32) *int {
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}
