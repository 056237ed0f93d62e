package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/bibbank/loanscore/pkg/events"
)

// AggregateType is the aggregate name stamped on every loan assessment event.
const AggregateType = "loan_assessment"

const (
	// EventTypeAssessmentCompleted is emitted when a loan application has been scored.
	EventTypeAssessmentCompleted = "loanscore.assessment.completed"

	// EventTypeReviewRequested is emitted when an assessment lands in the NEEDS_REVIEW band.
	EventTypeReviewRequested = "loanscore.review.requested"
)

// AssessmentCompleted is published for every completed assessment.
type AssessmentCompleted struct {
	CompletedAt    time.Time `json:"completed_at"`
	Threshold      *float64  `json:"threshold,omitempty"`
	Variant        string    `json:"variant"`
	ScoreMode      string    `json:"score_mode"`
	RiskBand       string    `json:"risk_band,omitempty"`
	Recommendation string    `json:"recommendation"`
	Currency       string    `json:"currency"`
	Factors        []string  `json:"factors"`
	ScoreValue     float64   `json:"score_value"`
	AssessmentID   uuid.UUID `json:"assessment_id"`
}

// EventType returns the event type identifier.
func (e AssessmentCompleted) EventType() string {
	return EventTypeAssessmentCompleted
}

// ToDomainEvent wraps the payload in a DomainEvent.
func (e AssessmentCompleted) ToDomainEvent() (events.DomainEvent, error) {
	return events.NewJSONEvent(EventTypeAssessmentCompleted, e.AssessmentID, AggregateType, e)
}

// ReviewRequested asks a loan officer to look at a borderline application.
type ReviewRequested struct {
	RequestedAt  time.Time `json:"requested_at"`
	Variant      string    `json:"variant"`
	ScoreMode    string    `json:"score_mode"`
	Factors      []string  `json:"factors"`
	ScoreValue   float64   `json:"score_value"`
	AssessmentID uuid.UUID `json:"assessment_id"`
}

// EventType returns the event type identifier.
func (e ReviewRequested) EventType() string {
	return EventTypeReviewRequested
}

// ToDomainEvent wraps the payload in a DomainEvent.
func (e ReviewRequested) ToDomainEvent() (events.DomainEvent, error) {
	return events.NewJSONEvent(EventTypeReviewRequested, e.AssessmentID, AggregateType, e)
}
