package valueobject

import "fmt"

// ScoreMode selects how the classifier output is presented.
type ScoreMode struct {
	value string
}

var (
	ScoreModeProbability = ScoreMode{value: "PROBABILITY"}
	ScoreModeRiskScore   = ScoreMode{value: "RISK_SCORE"}
	ScoreModePercentile  = ScoreMode{value: "PERCENTILE"}
)

// ScoreModeFromString reconstructs a ScoreMode from its string representation.
func ScoreModeFromString(s string) (ScoreMode, error) {
	switch s {
	case "PROBABILITY":
		return ScoreModeProbability, nil
	case "RISK_SCORE":
		return ScoreModeRiskScore, nil
	case "PERCENTILE":
		return ScoreModePercentile, nil
	default:
		return ScoreMode{}, fmt.Errorf("invalid score mode: %s", s)
	}
}

func (m ScoreMode) String() string { return m.value }
func (m ScoreMode) IsZero() bool   { return m.value == "" }

// Equal checks equality with another ScoreMode.
func (m ScoreMode) Equal(other ScoreMode) bool { return m.value == other.value }
