package port

import (
	"context"

	"github.com/bibbank/loanscore/internal/domain/model"
)

// Classifier is a frozen binary logistic model. Probability must equal
// sigmoid(DecisionScore) for every input.
type Classifier interface {
	// Probability returns the approval probability in [0, 1].
	Probability(v model.FeatureVector) (float64, error)

	// DecisionScore returns the raw logit.
	DecisionScore(v model.FeatureVector) (float64, error)

	// FeatureCount is the input length the classifier was trained on.
	FeatureCount() int
}

// Scaler is the preprocessing stage applied before the classifier.
type Scaler interface {
	Transform(v model.FeatureVector) (model.FeatureVector, error)

	// FeatureCount is the expected input length, or 0 when any length is accepted.
	FeatureCount() int
}

// ReferenceSampleSource loads the historical logits used for percentile ranks.
type ReferenceSampleSource interface {
	LoadReferenceSample(ctx context.Context, name string) (model.ReferenceSample, error)
}
