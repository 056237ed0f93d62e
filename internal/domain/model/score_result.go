package model

import (
	"fmt"
	"math"

	"github.com/bibbank/loanscore/internal/domain/valueobject"
)

// ScoreResult is the presented classifier output in exactly one mode.
type ScoreResult struct {
	mode  valueobject.ScoreMode
	value float64
}

// NewProbabilityScore wraps an approval probability in [0, 1].
func NewProbabilityScore(p float64) (ScoreResult, error) {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return ScoreResult{}, fmt.Errorf("probability %v outside [0, 1]", p)
	}
	return ScoreResult{mode: valueobject.ScoreModeProbability, value: p}, nil
}

// NewRiskScore wraps an integer risk score in [0, 100].
func NewRiskScore(score int) (ScoreResult, error) {
	if score < 0 || score > 100 {
		return ScoreResult{}, fmt.Errorf("risk score %d outside [0, 100]", score)
	}
	return ScoreResult{mode: valueobject.ScoreModeRiskScore, value: float64(score)}, nil
}

// NewPercentileScore wraps a percentile rank in [0, 100].
func NewPercentileScore(rank float64) (ScoreResult, error) {
	if math.IsNaN(rank) || rank < 0 || rank > 100 {
		return ScoreResult{}, fmt.Errorf("percentile rank %v outside [0, 100]", rank)
	}
	return ScoreResult{mode: valueobject.ScoreModePercentile, value: rank}, nil
}

func (s ScoreResult) Mode() valueobject.ScoreMode { return s.mode }
func (s ScoreResult) Value() float64              { return s.value }
func (s ScoreResult) IsZero() bool                { return s.mode.IsZero() }

func (s ScoreResult) String() string {
	switch s.mode {
	case valueobject.ScoreModeProbability:
		return fmt.Sprintf("%s %.4f", s.mode, s.value)
	default:
		return fmt.Sprintf("%s %.0f", s.mode, s.value)
	}
}
