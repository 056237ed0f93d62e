package port

import (
	"context"
	"time"

	"github.com/bibbank/loanscore/pkg/events"
)

// EventPublisher defines the port for publishing domain events.
type EventPublisher interface {
	// Publish sends one or more domain events to the messaging infrastructure.
	Publish(ctx context.Context, evts ...events.DomainEvent) error
}

// AssessmentMetrics records per-assessment telemetry.
type AssessmentMetrics interface {
	RecordAssessment(ctx context.Context, variant, recommendation string, elapsed time.Duration)
	RecordFailure(ctx context.Context, variant, reason string)
}
