package service

import (
	"fmt"
	"math"

	"github.com/bibbank/loanscore/internal/domain/model"
	"github.com/bibbank/loanscore/internal/domain/valueobject"
)

// Policy constants. Bands are inclusive at the lower edge.
const (
	DefaultApprovalThreshold = 0.5
	MinApprovalThreshold     = 0.1
	MaxApprovalThreshold     = 0.6

	ProbabilityApproveAt = 0.5
	ProbabilityReviewAt  = 0.3

	RiskScoreApproveAt = 60
	RiskScoreReviewAt  = 40

	PercentileApproveAt = 70
	PercentileReviewAt  = 40
)

// Policy kinds reported by Describe.
const (
	PolicyKindTwoTier   = "TWO_TIER"
	PolicyKindThreeTier = "THREE_TIER"
)

// DecisionPolicy maps a score to a categorical decision.
type DecisionPolicy interface {
	Name() string
	Mode() valueobject.ScoreMode
	Decide(score model.ScoreResult) (valueobject.Decision, error)

	// WithThreshold returns a copy using threshold t, or an error when the
	// policy is fixed or t is outside its bounds.
	WithThreshold(t float64) (DecisionPolicy, error)

	Describe() PolicyDescription
}

// PolicyDescription is the inspectable form of a policy.
type PolicyDescription struct {
	Name         string
	Kind         string
	Mode         valueobject.ScoreMode
	Threshold    float64
	ApproveAt    float64
	ReviewAt     float64
	MinThreshold float64
	MaxThreshold float64
	Adjustable   bool
}

// TwoTierPolicy approves iff probability >= threshold.
type TwoTierPolicy struct {
	name         string
	threshold    float64
	minThreshold float64
	maxThreshold float64
	adjustable   bool
}

// BinaryProbabilityPolicy is the fixed 0.5 approve/reject policy.
func BinaryProbabilityPolicy() TwoTierPolicy {
	return TwoTierPolicy{name: "probability-binary", threshold: DefaultApprovalThreshold}
}

// AdjustableProbabilityPolicy starts at 0.5 and accepts overrides in [0.1, 0.6].
func AdjustableProbabilityPolicy() TwoTierPolicy {
	return TwoTierPolicy{
		name:         "probability-adjustable",
		threshold:    DefaultApprovalThreshold,
		minThreshold: MinApprovalThreshold,
		maxThreshold: MaxApprovalThreshold,
		adjustable:   true,
	}
}

func (p TwoTierPolicy) Name() string                { return p.name }
func (p TwoTierPolicy) Mode() valueobject.ScoreMode { return valueobject.ScoreModeProbability }
func (p TwoTierPolicy) Threshold() float64          { return p.threshold }

// Decide implements DecisionPolicy.
func (p TwoTierPolicy) Decide(score model.ScoreResult) (valueobject.Decision, error) {
	if score.Mode() != p.Mode() {
		return valueobject.Decision{}, fmt.Errorf("%w: %s policy got %s", ErrScoreModeMismatch, p.name, score.Mode())
	}
	return valueobject.NewBinaryDecision(score.Value() >= p.threshold), nil
}

// WithThreshold implements DecisionPolicy.
func (p TwoTierPolicy) WithThreshold(t float64) (DecisionPolicy, error) {
	if !p.adjustable {
		return nil, fmt.Errorf("%w: %s", ErrThresholdNotAdjustable, p.name)
	}
	if math.IsNaN(t) || t < p.minThreshold || t > p.maxThreshold {
		return nil, fmt.Errorf("%w: %v not in [%v, %v]", ErrThresholdOutOfRange, t, p.minThreshold, p.maxThreshold)
	}
	p.threshold = t
	return p, nil
}

// Describe implements DecisionPolicy.
func (p TwoTierPolicy) Describe() PolicyDescription {
	return PolicyDescription{
		Name:         p.name,
		Kind:         PolicyKindTwoTier,
		Mode:         p.Mode(),
		Threshold:    p.threshold,
		MinThreshold: p.minThreshold,
		MaxThreshold: p.maxThreshold,
		Adjustable:   p.adjustable,
	}
}

// ThreeTierPolicy bands a score into LOW/MEDIUM/HIGH risk.
type ThreeTierPolicy struct {
	name      string
	mode      valueobject.ScoreMode
	approveAt float64
	reviewAt  float64
}

// ThreeTierProbabilityPolicy bands probabilities at 0.5 and 0.3.
func ThreeTierProbabilityPolicy() ThreeTierPolicy {
	return ThreeTierPolicy{
		name:      "probability-three-tier",
		mode:      valueobject.ScoreModeProbability,
		approveAt: ProbabilityApproveAt,
		reviewAt:  ProbabilityReviewAt,
	}
}

// ThreeTierRiskScorePolicy bands risk scores at 60 and 40.
func ThreeTierRiskScorePolicy() ThreeTierPolicy {
	return ThreeTierPolicy{
		name:      "risk-score-three-tier",
		mode:      valueobject.ScoreModeRiskScore,
		approveAt: RiskScoreApproveAt,
		reviewAt:  RiskScoreReviewAt,
	}
}

// ThreeTierPercentilePolicy bands percentile ranks at 70 and 40.
func ThreeTierPercentilePolicy() ThreeTierPolicy {
	return ThreeTierPolicy{
		name:      "percentile-three-tier",
		mode:      valueobject.ScoreModePercentile,
		approveAt: PercentileApproveAt,
		reviewAt:  PercentileReviewAt,
	}
}

func (p ThreeTierPolicy) Name() string                { return p.name }
func (p ThreeTierPolicy) Mode() valueobject.ScoreMode { return p.mode }

// Decide implements DecisionPolicy.
func (p ThreeTierPolicy) Decide(score model.ScoreResult) (valueobject.Decision, error) {
	if score.Mode() != p.mode {
		return valueobject.Decision{}, fmt.Errorf("%w: %s policy got %s", ErrScoreModeMismatch, p.name, score.Mode())
	}
	switch v := score.Value(); {
	case v >= p.approveAt:
		return valueobject.NewBandDecision(valueobject.RiskBandLow), nil
	case v >= p.reviewAt:
		return valueobject.NewBandDecision(valueobject.RiskBandMedium), nil
	default:
		return valueobject.NewBandDecision(valueobject.RiskBandHigh), nil
	}
}

// WithThreshold implements DecisionPolicy. Band edges are fixed.
func (p ThreeTierPolicy) WithThreshold(float64) (DecisionPolicy, error) {
	return nil, fmt.Errorf("%w: %s", ErrThresholdNotAdjustable, p.name)
}

// Describe implements DecisionPolicy.
func (p ThreeTierPolicy) Describe() PolicyDescription {
	return PolicyDescription{
		Name:      p.name,
		Kind:      PolicyKindThreeTier,
		Mode:      p.mode,
		ApproveAt: p.approveAt,
		ReviewAt:  p.reviewAt,
	}
}
