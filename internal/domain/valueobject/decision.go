package valueobject

import "fmt"

// RiskBand is the three-tier risk classification.
type RiskBand struct {
	value string
}

var (
	RiskBandLow    = RiskBand{value: "LOW_RISK"}
	RiskBandMedium = RiskBand{value: "MEDIUM_RISK"}
	RiskBandHigh   = RiskBand{value: "HIGH_RISK"}
)

// RiskBandFromString reconstructs a RiskBand from its string representation.
func RiskBandFromString(s string) (RiskBand, error) {
	switch s {
	case "LOW_RISK":
		return RiskBandLow, nil
	case "MEDIUM_RISK":
		return RiskBandMedium, nil
	case "HIGH_RISK":
		return RiskBandHigh, nil
	default:
		return RiskBand{}, fmt.Errorf("invalid risk band: %s", s)
	}
}

func (b RiskBand) String() string { return b.value }
func (b RiskBand) IsZero() bool   { return b.value == "" }

// Recommendation returns the action attached to the band.
func (b RiskBand) Recommendation() Recommendation {
	switch b {
	case RiskBandLow:
		return RecommendationApproved
	case RiskBandMedium:
		return RecommendationNeedsReview
	case RiskBandHigh:
		return RecommendationRejected
	default:
		return Recommendation{}
	}
}

// Recommendation is the action surfaced to the loan officer.
type Recommendation struct {
	value string
}

var (
	RecommendationApproved    = Recommendation{value: "APPROVED"}
	RecommendationNeedsReview = Recommendation{value: "NEEDS_REVIEW"}
	RecommendationRejected    = Recommendation{value: "REJECTED"}
)

// RecommendationFromString reconstructs a Recommendation from its string representation.
func RecommendationFromString(s string) (Recommendation, error) {
	switch s {
	case "APPROVED":
		return RecommendationApproved, nil
	case "NEEDS_REVIEW":
		return RecommendationNeedsReview, nil
	case "REJECTED":
		return RecommendationRejected, nil
	default:
		return Recommendation{}, fmt.Errorf("invalid recommendation: %s", s)
	}
}

func (r Recommendation) String() string { return r.value }
func (r Recommendation) IsZero() bool   { return r.value == "" }

// Style returns the display style clients render the recommendation with.
func (r Recommendation) Style() AlertStyle {
	switch r {
	case RecommendationApproved:
		return AlertStyleSuccess
	case RecommendationNeedsReview:
		return AlertStyleWarning
	case RecommendationRejected:
		return AlertStyleError
	default:
		return AlertStyle{}
	}
}

// AlertStyle is the closed set of display styles.
type AlertStyle struct {
	value string
}

var (
	AlertStyleSuccess = AlertStyle{value: "SUCCESS"}
	AlertStyleWarning = AlertStyle{value: "WARNING"}
	AlertStyleError   = AlertStyle{value: "ERROR"}
)

func (s AlertStyle) String() string { return s.value }
func (s AlertStyle) IsZero() bool   { return s.value == "" }

// Decision is the categorical outcome of a decision policy. Binary decisions
// carry no band.
type Decision struct {
	band           RiskBand
	recommendation Recommendation
}

// NewBinaryDecision returns APPROVED or REJECTED.
func NewBinaryDecision(approved bool) Decision {
	if approved {
		return Decision{recommendation: RecommendationApproved}
	}
	return Decision{recommendation: RecommendationRejected}
}

// NewBandDecision returns the three-tier decision for band.
func NewBandDecision(band RiskBand) Decision {
	return Decision{band: band, recommendation: band.Recommendation()}
}

func (d Decision) Band() RiskBand                 { return d.band }
func (d Decision) Recommendation() Recommendation { return d.recommendation }
func (d Decision) Style() AlertStyle              { return d.recommendation.Style() }

// IsTiered reports whether the decision came from a three-tier policy.
func (d Decision) IsTiered() bool { return !d.band.IsZero() }

// Equal checks equality with another Decision.
func (d Decision) Equal(other Decision) bool {
	return d.band == other.band && d.recommendation == other.recommendation
}
