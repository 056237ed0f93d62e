package service_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/loanscore/internal/domain/model"
	"github.com/bibbank/loanscore/internal/domain/service"
	"github.com/bibbank/loanscore/internal/domain/valueobject"
)

func probability(t *testing.T, p float64) model.ScoreResult {
	t.Helper()
	s, err := model.NewProbabilityScore(p)
	require.NoError(t, err)
	return s
}

func TestThreeTierPolicies_BandEdges(t *testing.T) {
	risk := func(v int) model.ScoreResult {
		s, err := model.NewRiskScore(v)
		require.NoError(t, err)
		return s
	}
	pct := func(v float64) model.ScoreResult {
		s, err := model.NewPercentileScore(v)
		require.NoError(t, err)
		return s
	}

	tests := []struct {
		name   string
		policy service.DecisionPolicy
		score  model.ScoreResult
		band   valueobject.RiskBand
	}{
		{"probability at approve edge", service.ThreeTierProbabilityPolicy(), probability(t, 0.5), valueobject.RiskBandLow},
		{"probability just below approve edge", service.ThreeTierProbabilityPolicy(), probability(t, 0.4999), valueobject.RiskBandMedium},
		{"probability at review edge", service.ThreeTierProbabilityPolicy(), probability(t, 0.3), valueobject.RiskBandMedium},
		{"probability below review edge", service.ThreeTierProbabilityPolicy(), probability(t, 0.2999), valueobject.RiskBandHigh},
		{"risk score 60", service.ThreeTierRiskScorePolicy(), risk(60), valueobject.RiskBandLow},
		{"risk score 59", service.ThreeTierRiskScorePolicy(), risk(59), valueobject.RiskBandMedium},
		{"risk score 40", service.ThreeTierRiskScorePolicy(), risk(40), valueobject.RiskBandMedium},
		{"risk score 39", service.ThreeTierRiskScorePolicy(), risk(39), valueobject.RiskBandHigh},
		{"percentile 70", service.ThreeTierPercentilePolicy(), pct(70), valueobject.RiskBandLow},
		{"percentile 69.9", service.ThreeTierPercentilePolicy(), pct(69.9), valueobject.RiskBandMedium},
		{"percentile 40", service.ThreeTierPercentilePolicy(), pct(40), valueobject.RiskBandMedium},
		{"percentile 0", service.ThreeTierPercentilePolicy(), pct(0), valueobject.RiskBandHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := tt.policy.Decide(tt.score)
			require.NoError(t, err)
			assert.Equal(t, tt.band, d.Band())
			assert.Equal(t, tt.band.Recommendation(), d.Recommendation())
		})
	}
}

func TestBinaryProbabilityPolicy(t *testing.T) {
	policy := service.BinaryProbabilityPolicy()

	d, err := policy.Decide(probability(t, 0.5))
	require.NoError(t, err)
	assert.Equal(t, valueobject.RecommendationApproved, d.Recommendation())
	assert.False(t, d.IsTiered())

	d, err = policy.Decide(probability(t, 0.4999))
	require.NoError(t, err)
	assert.Equal(t, valueobject.RecommendationRejected, d.Recommendation())

	_, err = policy.WithThreshold(0.3)
	require.ErrorIs(t, err, service.ErrThresholdNotAdjustable)
}

func TestAdjustableProbabilityPolicy(t *testing.T) {
	adjusted, err := service.AdjustableProbabilityPolicy().WithThreshold(0.3)
	require.NoError(t, err)

	d, err := adjusted.Decide(probability(t, 0.35))
	require.NoError(t, err)
	assert.Equal(t, valueobject.RecommendationApproved, d.Recommendation())

	d, err = adjusted.Decide(probability(t, 0.25))
	require.NoError(t, err)
	assert.Equal(t, valueobject.RecommendationRejected, d.Recommendation())

	assert.Equal(t, 0.3, adjusted.Describe().Threshold)
	assert.Equal(t, service.DefaultApprovalThreshold, service.AdjustableProbabilityPolicy().Threshold(),
		"the receiver keeps its threshold")
}

func TestAdjustableProbabilityPolicy_Bounds(t *testing.T) {
	policy := service.AdjustableProbabilityPolicy()

	for _, ok := range []float64{0.1, 0.6, 0.45} {
		_, err := policy.WithThreshold(ok)
		require.NoError(t, err, "threshold %v", ok)
	}
	for _, bad := range []float64{0.0999, 0.6001, -1, math.NaN()} {
		_, err := policy.WithThreshold(bad)
		require.ErrorIs(t, err, service.ErrThresholdOutOfRange, "threshold %v", bad)
	}
}

func TestThreeTierPolicy_RejectsThresholdOverride(t *testing.T) {
	_, err := service.ThreeTierRiskScorePolicy().WithThreshold(0.5)
	require.ErrorIs(t, err, service.ErrThresholdNotAdjustable)
}

func TestPolicies_RejectForeignScoreMode(t *testing.T) {
	risk, err := model.NewRiskScore(80)
	require.NoError(t, err)

	_, err = service.ThreeTierProbabilityPolicy().Decide(risk)
	require.ErrorIs(t, err, service.ErrScoreModeMismatch)

	_, err = service.BinaryProbabilityPolicy().Decide(risk)
	require.ErrorIs(t, err, service.ErrScoreModeMismatch)

	_, err = service.ThreeTierPercentilePolicy().Decide(probability(t, 0.9))
	require.ErrorIs(t, err, service.ErrScoreModeMismatch)
}

func TestPolicyDescriptions(t *testing.T) {
	adj := service.AdjustableProbabilityPolicy().Describe()
	assert.Equal(t, service.PolicyKindTwoTier, adj.Kind)
	assert.True(t, adj.Adjustable)
	assert.Equal(t, 0.1, adj.MinThreshold)
	assert.Equal(t, 0.6, adj.MaxThreshold)

	pct := service.ThreeTierPercentilePolicy().Describe()
	assert.Equal(t, service.PolicyKindThreeTier, pct.Kind)
	assert.Equal(t, 70.0, pct.ApproveAt)
	assert.Equal(t, 40.0, pct.ReviewAt)
	assert.Equal(t, valueobject.ScoreModePercentile, pct.Mode)
}
