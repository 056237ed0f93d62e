package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/bibbank/loanscore/internal/application/dto"
	"github.com/bibbank/loanscore/internal/domain/model"
	"github.com/bibbank/loanscore/internal/domain/port"
	"github.com/bibbank/loanscore/internal/domain/service"
)

const tracerName = "github.com/bibbank/loanscore/internal/application/usecase"

// AssessApplication is the use case for scoring one loan application.
type AssessApplication struct {
	registry  *service.Registry
	publisher port.EventPublisher
	metrics   port.AssessmentMetrics
	logger    *slog.Logger
}

// NewAssessApplication creates a new AssessApplication use case.
func NewAssessApplication(
	registry *service.Registry,
	publisher port.EventPublisher,
	metrics port.AssessmentMetrics,
	logger *slog.Logger,
) *AssessApplication {
	return &AssessApplication{
		registry:  registry,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Execute runs the variant pipeline over the request, completes the
// assessment and publishes its events.
func (uc *AssessApplication) Execute(ctx context.Context, req dto.AssessApplicationRequest) (dto.AssessmentResponse, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "AssessApplication")
	defer span.End()

	start := time.Now()
	resp, variant, err := uc.execute(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		uc.metrics.RecordFailure(ctx, variant, FailureReason(err))
		uc.logger.WarnContext(ctx, "assessment failed", "variant", variant, "error", err)
		return dto.AssessmentResponse{}, err
	}

	span.SetAttributes(
		attribute.String("loanscore.variant", resp.Variant),
		attribute.String("loanscore.recommendation", resp.Decision.Recommendation),
	)
	uc.metrics.RecordAssessment(ctx, resp.Variant, resp.Decision.Recommendation, time.Since(start))
	uc.logger.InfoContext(ctx, "assessment completed",
		"assessment_id", resp.ID,
		"variant", resp.Variant,
		"recommendation", resp.Decision.Recommendation,
	)
	return resp, nil
}

func (uc *AssessApplication) execute(ctx context.Context, req dto.AssessApplicationRequest) (dto.AssessmentResponse, string, error) {
	variant := req.Variant
	if variant == "" {
		variant = uc.registry.DefaultVariant()
	}

	// 1. Resolve the pipeline.
	pipeline, err := uc.registry.Pipeline(variant)
	if err != nil {
		return dto.AssessmentResponse{}, variant, err
	}

	// 2. Validate the applicant.
	params, err := req.ToProfileParams()
	if err != nil {
		return dto.AssessmentResponse{}, variant, err
	}
	profile, err := model.NewApplicantProfile(params)
	if err != nil {
		return dto.AssessmentResponse{}, variant, err
	}

	// 3. Score.
	assessment, err := model.NewLoanAssessment(variant, profile)
	if err != nil {
		return dto.AssessmentResponse{}, variant, fmt.Errorf("failed to create assessment: %w", err)
	}
	outcome, err := pipeline.Assess(profile, req.Threshold)
	if err != nil {
		return dto.AssessmentResponse{}, variant, err
	}
	if err := assessment.Complete(outcome.Score, outcome.Decision, outcome.Explanation, outcome.Threshold); err != nil {
		return dto.AssessmentResponse{}, variant, fmt.Errorf("failed to complete assessment: %w", err)
	}

	// 4. Publish domain events.
	events := assessment.DomainEvents()
	if len(events) > 0 {
		if err := uc.publisher.Publish(ctx, events...); err != nil {
			return dto.AssessmentResponse{}, variant, fmt.Errorf("failed to publish events: %w", err)
		}
	}

	return dto.FromModel(assessment), variant, nil
}

// FailureReason classifies err for the failure counter.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, service.ErrUnknownVariant):
		return "unknown_variant"
	case errors.Is(err, model.ErrInvalidProfile):
		return "invalid_profile"
	case errors.Is(err, model.ErrSchemaMismatch):
		return "schema_mismatch"
	case errors.Is(err, model.ErrDimensionMismatch):
		return "dimension_mismatch"
	case errors.Is(err, service.ErrThresholdOutOfRange), errors.Is(err, service.ErrThresholdNotAdjustable):
		return "invalid_threshold"
	case errors.Is(err, model.ErrEmptyReferenceSample):
		return "empty_reference_sample"
	default:
		return "internal"
	}
}
