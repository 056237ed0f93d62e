package service

import (
	"fmt"

	"github.com/bibbank/loanscore/internal/domain/model"
	"github.com/bibbank/loanscore/internal/domain/valueobject"
)

// Outcome is the combined result of one pipeline run.
type Outcome struct {
	Threshold   *float64
	Variant     string
	Score       model.ScoreResult
	Decision    valueobject.Decision
	Explanation model.Explanation
}

// Pipeline is one variant wired to its artifacts. It holds no mutable state
// and is safe for concurrent use.
type Pipeline struct {
	transformer *ScoreTransformer
	explainer   *Explainer
	variant     Variant
}

// NewPipeline checks that transformer fits the variant.
func NewPipeline(variant Variant, transformer *ScoreTransformer) (*Pipeline, error) {
	if variant.Policy == nil {
		return nil, fmt.Errorf("variant %s has no decision policy", variant.Name)
	}
	if transformer == nil {
		return nil, fmt.Errorf("variant %s has no score transformer", variant.Name)
	}
	if transformer.Mode() != variant.Mode() {
		return nil, fmt.Errorf("variant %s: transformer presents %s, policy expects %s",
			variant.Name, transformer.Mode(), variant.Mode())
	}
	if transformer.FeatureCount() != variant.Schema.Len() {
		return nil, fmt.Errorf("%w: variant %s schema has %d features, classifier %d",
			model.ErrDimensionMismatch, variant.Name, variant.Schema.Len(), transformer.FeatureCount())
	}

	return &Pipeline{
		transformer: transformer,
		explainer:   NewExplainer(variant.Schema),
		variant:     variant,
	}, nil
}

// Variant returns the configuration the pipeline serves.
func (p *Pipeline) Variant() Variant { return p.variant }

// Assess scores profile. A non-nil threshold overrides the policy threshold
// and is rejected by policies that do not allow it.
func (p *Pipeline) Assess(profile model.ApplicantProfile, threshold *float64) (Outcome, error) {
	policy := p.variant.Policy
	var applied *float64
	if threshold != nil {
		adjusted, err := policy.WithThreshold(*threshold)
		if err != nil {
			return Outcome{}, err
		}
		policy = adjusted
		t := *threshold
		applied = &t
	}

	vector, err := BuildFeatureVector(p.variant.Schema, profile)
	if err != nil {
		return Outcome{}, err
	}

	score, err := p.transformer.Transform(vector)
	if err != nil {
		return Outcome{}, fmt.Errorf("score %s: %w", p.variant.Name, err)
	}

	decision, err := policy.Decide(score)
	if err != nil {
		return Outcome{}, err
	}

	return Outcome{
		Variant:     p.variant.Name,
		Score:       score,
		Decision:    decision,
		Explanation: p.explainer.Explain(profile),
		Threshold:   applied,
	}, nil
}
