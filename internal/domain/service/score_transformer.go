package service

import (
	"fmt"
	"math"

	"github.com/bibbank/loanscore/internal/domain/model"
	"github.com/bibbank/loanscore/internal/domain/port"
	"github.com/bibbank/loanscore/internal/domain/valueobject"
)

// ScoreTransformer runs preprocessing and the classifier, then presents the
// output in a single fixed mode.
type ScoreTransformer struct {
	scaler     port.Scaler
	classifier port.Classifier
	reference  model.ReferenceSample
	mode       valueobject.ScoreMode
}

// NewScoreTransformer wires a transformer. A nil scaler means scaling is
// embedded in the classifier. Percentile mode requires a non-empty reference sample.
func NewScoreTransformer(
	mode valueobject.ScoreMode,
	classifier port.Classifier,
	scaler port.Scaler,
	reference model.ReferenceSample,
) (*ScoreTransformer, error) {
	if mode.IsZero() {
		return nil, fmt.Errorf("score mode is required")
	}
	if classifier == nil {
		return nil, fmt.Errorf("classifier is required")
	}
	if scaler == nil {
		scaler = IdentityScaler{}
	}
	if n := scaler.FeatureCount(); n != 0 && n != classifier.FeatureCount() {
		return nil, fmt.Errorf("%w: scaler expects %d features, classifier %d",
			model.ErrDimensionMismatch, n, classifier.FeatureCount())
	}
	if mode == valueobject.ScoreModePercentile && reference.IsZero() {
		return nil, fmt.Errorf("percentile mode: %w", model.ErrEmptyReferenceSample)
	}

	return &ScoreTransformer{
		scaler:     scaler,
		classifier: classifier,
		reference:  reference,
		mode:       mode,
	}, nil
}

func (t *ScoreTransformer) Mode() valueobject.ScoreMode { return t.mode }
func (t *ScoreTransformer) FeatureCount() int           { return t.classifier.FeatureCount() }

// Transform scores v.
//
//	PROBABILITY  p = classifier probability
//	RISK_SCORE   floor(sigmoid(logit) * 100), truncated rather than rounded
//	PERCENTILE   100 * |{h in reference : h < logit}| / N
func (t *ScoreTransformer) Transform(v model.FeatureVector) (model.ScoreResult, error) {
	if v.Len() != t.classifier.FeatureCount() {
		return model.ScoreResult{}, fmt.Errorf("%w: got %d features, classifier expects %d",
			model.ErrDimensionMismatch, v.Len(), t.classifier.FeatureCount())
	}

	scaled, err := t.scaler.Transform(v)
	if err != nil {
		return model.ScoreResult{}, fmt.Errorf("preprocess: %w", err)
	}

	switch t.mode {
	case valueobject.ScoreModeProbability:
		p, err := t.classifier.Probability(scaled)
		if err != nil {
			return model.ScoreResult{}, fmt.Errorf("classify: %w", err)
		}
		return model.NewProbabilityScore(p)

	case valueobject.ScoreModeRiskScore:
		logit, err := t.classifier.DecisionScore(scaled)
		if err != nil {
			return model.ScoreResult{}, fmt.Errorf("classify: %w", err)
		}
		return model.NewRiskScore(int(math.Floor(Sigmoid(logit) * 100)))

	case valueobject.ScoreModePercentile:
		logit, err := t.classifier.DecisionScore(scaled)
		if err != nil {
			return model.ScoreResult{}, fmt.Errorf("classify: %w", err)
		}
		rank, err := t.reference.PercentileRank(logit)
		if err != nil {
			return model.ScoreResult{}, err
		}
		return model.NewPercentileScore(rank)

	default:
		return model.ScoreResult{}, fmt.Errorf("unsupported score mode %s", t.mode)
	}
}
