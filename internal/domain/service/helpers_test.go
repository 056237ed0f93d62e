package service_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/loanscore/internal/domain/model"
	"github.com/bibbank/loanscore/internal/domain/service"
	"github.com/bibbank/loanscore/pkg/money"
)

// --- Test doubles ---

// linearClassifier is a plain logistic model: logit = bias + w·x.
type linearClassifier struct {
	weights []float64
	bias    float64
}

func (c linearClassifier) DecisionScore(v model.FeatureVector) (float64, error) {
	if v.Len() != len(c.weights) {
		return 0, fmt.Errorf("%w: %d vs %d", model.ErrDimensionMismatch, v.Len(), len(c.weights))
	}
	z := c.bias
	for i, w := range c.weights {
		z += w * v[i]
	}
	return z, nil
}

func (c linearClassifier) Probability(v model.FeatureVector) (float64, error) {
	z, err := c.DecisionScore(v)
	if err != nil {
		return 0, err
	}
	return service.Sigmoid(z), nil
}

func (c linearClassifier) FeatureCount() int { return len(c.weights) }

// fixedClassifier returns the same probability for every input.
func fixedClassifier(p float64, n int) linearClassifier {
	return linearClassifier{weights: make([]float64, n), bias: math.Log(p / (1 - p))}
}

// doublingScaler multiplies every feature by two.
type doublingScaler struct{ n int }

func (s doublingScaler) Transform(v model.FeatureVector) (model.FeatureVector, error) {
	out := make(model.FeatureVector, v.Len())
	for i, x := range v {
		out[i] = 2 * x
	}
	return out, nil
}

func (s doublingScaler) FeatureCount() int { return s.n }

// --- Fixtures ---

func idr(v int64) money.Money { return money.New(decimal.NewFromInt(v), money.IDR) }

func ptr[T any](v T) *T { return &v }

func profileParams() model.ApplicantProfileParams {
	return model.ApplicantProfileParams{
		MonthlyIncome:   idr(5_000_000),
		CreditAmount:    idr(20_000_000),
		Annuity:         idr(500_000),
		AgeYears:        ptr(30.0),
		EmploymentYears: ptr(5.0),
	}
}

func mustProfile(t *testing.T, p model.ApplicantProfileParams) model.ApplicantProfile {
	t.Helper()
	profile, err := model.NewApplicantProfile(p)
	require.NoError(t, err)
	return profile
}

func bureauParams() model.ApplicantProfileParams {
	p := profileParams()
	p.ExtSource1 = ptr(0.7)
	p.ExtSource2 = ptr(0.6)
	return p
}
