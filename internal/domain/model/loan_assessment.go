package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bibbank/loanscore/internal/domain/event"
	"github.com/bibbank/loanscore/internal/domain/valueobject"
	"github.com/bibbank/loanscore/pkg/events"
)

// LoanAssessment is the aggregate root for one scoring request. It lives for
// the duration of the request and is never persisted.
type LoanAssessment struct {
	events.EventCollector

	createdAt   time.Time
	completedAt time.Time
	threshold   *float64
	variant     string
	profile     ApplicantProfile
	score       ScoreResult
	decision    valueobject.Decision
	explanation Explanation
	id          uuid.UUID
}

// NewLoanAssessment starts an unscored assessment of profile under variant.
func NewLoanAssessment(variant string, profile ApplicantProfile) (*LoanAssessment, error) {
	if variant == "" {
		return nil, fmt.Errorf("variant is required")
	}
	return &LoanAssessment{
		id:        uuid.New(),
		variant:   variant,
		profile:   profile,
		createdAt: time.Now().UTC(),
	}, nil
}

// Complete records the scoring result and raises the assessment events.
// An assessment can be completed once.
func (a *LoanAssessment) Complete(score ScoreResult, decision valueobject.Decision, explanation Explanation, threshold *float64) error {
	if a.IsCompleted() {
		return fmt.Errorf("assessment %s already completed", a.id)
	}
	if score.IsZero() {
		return fmt.Errorf("score is required")
	}
	if decision.Recommendation().IsZero() {
		return fmt.Errorf("decision is required")
	}

	a.score = score
	a.decision = decision
	a.explanation = explanation
	a.threshold = threshold
	a.completedAt = time.Now().UTC()

	completed, err := event.AssessmentCompleted{
		AssessmentID:   a.id,
		Variant:        a.variant,
		ScoreMode:      score.Mode().String(),
		ScoreValue:     score.Value(),
		RiskBand:       decision.Band().String(),
		Recommendation: decision.Recommendation().String(),
		Currency:       a.profile.Currency().Code(),
		Factors:        explanation.Codes(),
		Threshold:      threshold,
		CompletedAt:    a.completedAt,
	}.ToDomainEvent()
	if err != nil {
		return err
	}
	a.Record(completed)

	if decision.Recommendation() == valueobject.RecommendationNeedsReview {
		review, err := event.ReviewRequested{
			AssessmentID: a.id,
			Variant:      a.variant,
			ScoreMode:    score.Mode().String(),
			ScoreValue:   score.Value(),
			Factors:      explanation.Codes(),
			RequestedAt:  a.completedAt,
		}.ToDomainEvent()
		if err != nil {
			return err
		}
		a.Record(review)
	}

	return nil
}

// --- Accessors ---

func (a *LoanAssessment) ID() uuid.UUID                  { return a.id }
func (a *LoanAssessment) Variant() string                { return a.variant }
func (a *LoanAssessment) Profile() ApplicantProfile      { return a.profile }
func (a *LoanAssessment) Score() ScoreResult             { return a.score }
func (a *LoanAssessment) Decision() valueobject.Decision { return a.decision }
func (a *LoanAssessment) Explanation() Explanation       { return a.explanation }
func (a *LoanAssessment) Threshold() *float64            { return a.threshold }
func (a *LoanAssessment) CreatedAt() time.Time           { return a.createdAt }
func (a *LoanAssessment) CompletedAt() time.Time         { return a.completedAt }
func (a *LoanAssessment) IsCompleted() bool              { return !a.completedAt.IsZero() }

// DomainEvents returns all accumulated domain events and clears them.
func (a *LoanAssessment) DomainEvents() []events.DomainEvent {
	return a.ClearEvents()
}
