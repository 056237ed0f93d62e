package ml

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/bibbank/loanscore/internal/domain/model"
	"github.com/bibbank/loanscore/internal/domain/service"
)

// ErrZeroScale is returned when a scaler artifact carries a zero scale entry.
var ErrZeroScale = errors.New("scaler has a zero scale entry")

// LogisticModel implements port.Classifier for a trained binary logistic
// regression. Weights are copied at construction and never change.
type LogisticModel struct {
	coefficients []float64
	intercept    float64
}

// NewLogisticModel validates and copies the trained weights.
func NewLogisticModel(coefficients []float64, intercept float64) (*LogisticModel, error) {
	if len(coefficients) == 0 {
		return nil, fmt.Errorf("logistic model has no coefficients")
	}
	if err := checkFinite("coefficient", coefficients); err != nil {
		return nil, err
	}
	if math.IsNaN(intercept) || math.IsInf(intercept, 0) {
		return nil, fmt.Errorf("logistic model intercept is not finite")
	}
	return &LogisticModel{coefficients: slices.Clone(coefficients), intercept: intercept}, nil
}

// DecisionScore returns intercept + coefficients·v.
func (m *LogisticModel) DecisionScore(v model.FeatureVector) (float64, error) {
	if v.Len() != len(m.coefficients) {
		return 0, fmt.Errorf("%w: model expects %d features, got %d", model.ErrDimensionMismatch, len(m.coefficients), v.Len())
	}
	z := m.intercept
	for i, c := range m.coefficients {
		z += c * v[i]
	}
	return z, nil
}

// Probability returns sigmoid(DecisionScore(v)).
func (m *LogisticModel) Probability(v model.FeatureVector) (float64, error) {
	z, err := m.DecisionScore(v)
	if err != nil {
		return 0, err
	}
	return service.Sigmoid(z), nil
}

func (m *LogisticModel) FeatureCount() int { return len(m.coefficients) }

// StandardScaler implements port.Scaler as (x - mean) / scale per position.
type StandardScaler struct {
	mean  []float64
	scale []float64
}

// NewStandardScaler rejects mismatched lengths and zero scale entries.
func NewStandardScaler(mean, scale []float64) (*StandardScaler, error) {
	if len(mean) == 0 {
		return nil, fmt.Errorf("scaler has no entries")
	}
	if len(mean) != len(scale) {
		return nil, fmt.Errorf("%w: scaler mean has %d entries, scale %d", model.ErrDimensionMismatch, len(mean), len(scale))
	}
	if err := checkFinite("mean", mean); err != nil {
		return nil, err
	}
	if err := checkFinite("scale", scale); err != nil {
		return nil, err
	}
	for i, s := range scale {
		if s == 0 {
			return nil, fmt.Errorf("%w: position %d", ErrZeroScale, i)
		}
	}
	return &StandardScaler{mean: slices.Clone(mean), scale: slices.Clone(scale)}, nil
}

// Transform scales v into a new vector.
func (s *StandardScaler) Transform(v model.FeatureVector) (model.FeatureVector, error) {
	if v.Len() != len(s.mean) {
		return nil, fmt.Errorf("%w: scaler expects %d features, got %d", model.ErrDimensionMismatch, len(s.mean), v.Len())
	}
	out := make(model.FeatureVector, v.Len())
	for i, x := range v {
		out[i] = (x - s.mean[i]) / s.scale[i]
	}
	return out, nil
}

func (s *StandardScaler) FeatureCount() int { return len(s.mean) }

// ScaledClassifier is a classifier artifact with its scaler embedded, the
// form produced when the scaler and model were fitted as a single pipeline.
type ScaledClassifier struct {
	scaler *StandardScaler
	model  *LogisticModel
}

// NewScaledClassifier joins a scaler and a model of the same width.
func NewScaledClassifier(scaler *StandardScaler, m *LogisticModel) (*ScaledClassifier, error) {
	if scaler.FeatureCount() != m.FeatureCount() {
		return nil, fmt.Errorf("%w: scaler has %d features, model %d", model.ErrDimensionMismatch, scaler.FeatureCount(), m.FeatureCount())
	}
	return &ScaledClassifier{scaler: scaler, model: m}, nil
}

// DecisionScore implements port.Classifier.
func (c *ScaledClassifier) DecisionScore(v model.FeatureVector) (float64, error) {
	scaled, err := c.scaler.Transform(v)
	if err != nil {
		return 0, err
	}
	return c.model.DecisionScore(scaled)
}

// Probability implements port.Classifier.
func (c *ScaledClassifier) Probability(v model.FeatureVector) (float64, error) {
	z, err := c.DecisionScore(v)
	if err != nil {
		return 0, err
	}
	return service.Sigmoid(z), nil
}

func (c *ScaledClassifier) FeatureCount() int { return c.model.FeatureCount() }

func checkFinite(name string, xs []float64) error {
	for i, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%s %d is not finite", name, i)
		}
	}
	return nil
}
