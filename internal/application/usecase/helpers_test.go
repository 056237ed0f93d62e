package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/loanscore/internal/application/dto"
	"github.com/bibbank/loanscore/internal/domain/model"
	"github.com/bibbank/loanscore/internal/domain/service"
	"github.com/bibbank/loanscore/internal/infrastructure/ml"
	"github.com/bibbank/loanscore/pkg/events"
)

// --- Mock implementations ---

type mockEventPublisher struct {
	publishFunc func(ctx context.Context, evts ...events.DomainEvent) error
	published   []events.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.published = append(m.published, evts...)
	return nil
}

type recordedAssessment struct {
	variant        string
	recommendation string
}

type mockMetrics struct {
	mu          sync.Mutex
	assessments []recordedAssessment
	failures    map[string]int
}

func newMockMetrics() *mockMetrics { return &mockMetrics{failures: make(map[string]int)} }

func (m *mockMetrics) RecordAssessment(_ context.Context, variant, recommendation string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assessments = append(m.assessments, recordedAssessment{variant, recommendation})
}

func (m *mockMetrics) RecordFailure(_ context.Context, _, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[reason]++
}

// --- Fixtures ---

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func ptr[T any](v T) *T { return &v }

// constantPipeline serves variant with a model that always returns probability p.
func constantPipeline(t *testing.T, variantName string, p float64) *service.Pipeline {
	t.Helper()
	variant, err := service.LookupVariant(variantName)
	require.NoError(t, err)

	clf, err := ml.NewLogisticModel(make([]float64, variant.Schema.Len()), math.Log(p/(1-p)))
	require.NoError(t, err)

	tr, err := service.NewScoreTransformer(variant.Mode(), clf, nil, model.ReferenceSample{})
	require.NoError(t, err)

	pipeline, err := service.NewPipeline(variant, tr)
	require.NoError(t, err)
	return pipeline
}

// testRegistry serves basic-three-tier at p=0.4 (NEEDS_REVIEW), adjustable-threshold
// at p=0.35 and bureau-risk-score at p=0.755 (risk score 75, LOW_RISK).
func testRegistry(t *testing.T) *service.Registry {
	t.Helper()
	reg, err := service.NewRegistry(service.VariantBasicThreeTier,
		constantPipeline(t, service.VariantBasicThreeTier, 0.4),
		constantPipeline(t, service.VariantAdjustableThreshold, 0.35),
		constantPipeline(t, service.VariantBureauRiskScore, 0.755),
	)
	require.NoError(t, err)
	return reg
}

func validRequest() dto.AssessApplicationRequest {
	return dto.AssessApplicationRequest{
		MonthlyIncome:   ptr(decimal.NewFromInt(5_000_000)),
		CreditAmount:    ptr(decimal.NewFromInt(20_000_000)),
		Annuity:         ptr(decimal.NewFromInt(500_000)),
		AgeYears:        ptr(30.0),
		EmploymentYears: ptr(5.0),
	}
}
