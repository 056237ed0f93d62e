package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
)

// Recorder implements port.AssessmentMetrics with OpenTelemetry instruments.
type Recorder struct {
	assessments otelmetric.Int64Counter
	failures    otelmetric.Int64Counter
	duration    otelmetric.Float64Histogram
}

// NewRecorder creates the assessment instruments on meter.
func NewRecorder(meter otelmetric.Meter) (*Recorder, error) {
	assessments, err := meter.Int64Counter(
		"assessments",
		otelmetric.WithDescription("Completed loan assessments by variant and recommendation"),
	)
	if err != nil {
		return nil, fmt.Errorf("create assessments counter: %w", err)
	}

	failures, err := meter.Int64Counter(
		"assessment_failures",
		otelmetric.WithDescription("Failed loan assessments by variant and reason"),
	)
	if err != nil {
		return nil, fmt.Errorf("create failures counter: %w", err)
	}

	duration, err := meter.Float64Histogram(
		"assessment_duration",
		otelmetric.WithDescription("Loan assessment latency"),
		otelmetric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create duration histogram: %w", err)
	}

	return &Recorder{assessments: assessments, failures: failures, duration: duration}, nil
}

// RecordAssessment counts a completed assessment and records its latency.
func (r *Recorder) RecordAssessment(ctx context.Context, variant, recommendation string, elapsed time.Duration) {
	attrs := otelmetric.WithAttributes(
		attribute.String("variant", variant),
		attribute.String("recommendation", recommendation),
	)
	r.assessments.Add(ctx, 1, attrs)
	r.duration.Record(ctx, float64(elapsed.Microseconds())/1000, attrs)
}

// RecordFailure counts a failed assessment.
func (r *Recorder) RecordFailure(ctx context.Context, variant, reason string) {
	r.failures.Add(ctx, 1, otelmetric.WithAttributes(
		attribute.String("variant", variant),
		attribute.String("reason", reason),
	))
}
