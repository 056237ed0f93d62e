package model_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/loanscore/internal/domain/model"
	"github.com/bibbank/loanscore/internal/domain/valueobject"
)

func TestScoreResult_Constructors(t *testing.T) {
	p, err := model.NewProbabilityScore(0.42)
	require.NoError(t, err)
	assert.Equal(t, valueobject.ScoreModeProbability, p.Mode())
	assert.Equal(t, 0.42, p.Value())

	r, err := model.NewRiskScore(73)
	require.NoError(t, err)
	assert.Equal(t, valueobject.ScoreModeRiskScore, r.Mode())
	assert.Equal(t, 73.0, r.Value())
	assert.Equal(t, "RISK_SCORE 73", r.String())

	pr, err := model.NewPercentileScore(100)
	require.NoError(t, err)
	assert.Equal(t, valueobject.ScoreModePercentile, pr.Mode())

	_, err = model.NewProbabilityScore(1.0001)
	require.Error(t, err)
	_, err = model.NewProbabilityScore(math.NaN())
	require.Error(t, err)
	_, err = model.NewRiskScore(101)
	require.Error(t, err)
	_, err = model.NewPercentileScore(-1)
	require.Error(t, err)

	assert.True(t, model.ScoreResult{}.IsZero())
}

func TestReferenceSample_PercentileRank(t *testing.T) {
	sample, err := model.NewReferenceSample("bureau", []float64{3, -1, 0, 2, 1})
	require.NoError(t, err)
	assert.Equal(t, 5, sample.Len())

	tests := []struct {
		name  string
		logit float64
		want  float64
	}{
		{"below minimum", -5, 0},
		{"equal to minimum excludes ties", -1, 0},
		{"between values", 0.5, 40},
		{"equal to a middle value", 1, 40},
		{"equal to maximum", 3, 80},
		{"above maximum", 10, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sample.PercentileRank(tt.logit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReferenceSample_Monotonic(t *testing.T) {
	sample, err := model.NewReferenceSample("s", []float64{-2, -1.5, -0.3, 0, 0, 0.7, 1.1, 2.4})
	require.NoError(t, err)

	prev := -1.0
	for x := -3.0; x <= 3.0; x += 0.05 {
		got, err := sample.PercentileRank(x)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
}

func TestReferenceSample_DoesNotAliasInput(t *testing.T) {
	input := []float64{2, 1}
	sample, err := model.NewReferenceSample("s", input)
	require.NoError(t, err)

	input[0] = -100
	got, err := sample.PercentileRank(1.5)
	require.NoError(t, err)
	assert.Equal(t, 50.0, got)
}

func TestReferenceSample_Invalid(t *testing.T) {
	_, err := model.NewReferenceSample("empty", nil)
	require.ErrorIs(t, err, model.ErrEmptyReferenceSample)

	_, err = model.NewReferenceSample("nan", []float64{1, math.NaN()})
	require.Error(t, err)

	_, err = model.ReferenceSample{}.PercentileRank(0)
	require.ErrorIs(t, err, model.ErrEmptyReferenceSample)
}

func TestExplanation_NeverEmpty(t *testing.T) {
	e := model.NewExplanation(nil, model.UndefinedDebtToIncome())
	assert.Equal(t, []string{"STABLE_PROFILE"}, e.Codes())
	assert.Len(t, e.Messages(), 1)

	_, defined := e.DebtToIncome().Ratio()
	assert.False(t, defined)
	assert.Equal(t, valueobject.DTIStatusUndefined, e.DebtToIncome().Status())
}

func TestExplanation_KeepsOrder(t *testing.T) {
	factors := []valueobject.ExplanationFactor{valueobject.FactorShortEmployment, valueobject.FactorYoungApplicant}
	dti := model.NewDebtToIncome(decimal.RequireFromString("0.1"), valueobject.DTIStatusSafe)

	e := model.NewExplanation(factors, dti)
	factors[0] = valueobject.FactorBureauRisk

	assert.Equal(t, []string{"SHORT_EMPLOYMENT", "YOUNG_APPLICANT"}, e.Codes())
	ratio, defined := e.DebtToIncome().Ratio()
	require.True(t, defined)
	assert.True(t, ratio.Equal(decimal.RequireFromString("0.1")))
}
