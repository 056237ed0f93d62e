package artifact_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/loanscore/internal/domain/model"
	"github.com/bibbank/loanscore/internal/domain/service"
	"github.com/bibbank/loanscore/internal/domain/valueobject"
	"github.com/bibbank/loanscore/internal/infrastructure/artifact"
	"github.com/bibbank/loanscore/internal/infrastructure/ml"
	"github.com/bibbank/loanscore/pkg/money"
)

func shippedArtifacts() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "..", "..", "..", "artifacts", "models.yaml")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr[T any](v T) *T { return &v }

func sampleProfile(t *testing.T) model.ApplicantProfile {
	t.Helper()
	idr := func(v int64) money.Money { return money.New(decimal.NewFromInt(v), money.IDR) }
	p, err := model.NewApplicantProfile(model.ApplicantProfileParams{
		MonthlyIncome:     idr(5_000_000),
		CreditAmount:      idr(20_000_000),
		Annuity:           idr(500_000),
		AgeYears:          ptr(30.0),
		AgeDays:           ptr(30 * 365.0),
		EmploymentYears:   ptr(5.0),
		EmploymentDays:    ptr(5 * 365.0),
		ExtSource1:        ptr(0.6),
		ExtSource2:        ptr(0.55),
		PrevApplications:  ptr(1),
		ActiveBureauLoans: ptr(0),
	})
	require.NoError(t, err)
	return p
}

func TestShippedArtifacts_BuildAllVariants(t *testing.T) {
	f, err := artifact.LoadFile(shippedArtifacts())
	require.NoError(t, err)

	reg, err := artifact.BuildRegistry(context.Background(), f, f, service.DefaultVariant, discardLogger())
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		service.VariantBasicThreeTier,
		service.VariantBasicBinary,
		service.VariantAdjustableThreshold,
		service.VariantBureauRiskScore,
		service.VariantBureauPercentile,
		service.VariantBureauHistoryBinary,
	}, reg.Names())

	profile := sampleProfile(t)
	for _, name := range reg.Names() {
		t.Run(name, func(t *testing.T) {
			p, err := reg.Pipeline(name)
			require.NoError(t, err)

			out, err := p.Assess(profile, nil)
			require.NoError(t, err)
			assert.Equal(t, p.Variant().Mode(), out.Score.Mode())
			assert.False(t, out.Decision.Recommendation().IsZero())
		})
	}
}

func TestShippedArtifacts_CanonicalApplicant(t *testing.T) {
	f, err := artifact.LoadFile(shippedArtifacts())
	require.NoError(t, err)
	reg, err := artifact.BuildRegistry(context.Background(), f, f, service.DefaultVariant, discardLogger())
	require.NoError(t, err)

	profile := sampleProfile(t)

	threeTier, err := reg.Pipeline(service.VariantBasicThreeTier)
	require.NoError(t, err)
	tiered, err := threeTier.Assess(profile, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.5844, tiered.Score.Value(), 1e-3)
	assert.Equal(t, valueobject.RiskBandLow, tiered.Decision.Band())

	// Same weights with the scaler embedded in the classifier.
	binary, err := reg.Pipeline(service.VariantBasicBinary)
	require.NoError(t, err)
	bin, err := binary.Assess(profile, nil)
	require.NoError(t, err)
	assert.InDelta(t, tiered.Score.Value(), bin.Score.Value(), 1e-12)
	assert.Equal(t, valueobject.RecommendationApproved, bin.Decision.Recommendation())
}

func TestLoadReferenceSample(t *testing.T) {
	f, err := artifact.LoadFile(shippedArtifacts())
	require.NoError(t, err)

	sample, err := f.LoadReferenceSample(context.Background(), service.BureauReferenceSample)
	require.NoError(t, err)
	assert.Equal(t, 40, sample.Len())

	_, err = f.LoadReferenceSample(context.Background(), "missing")
	require.ErrorIs(t, err, model.ErrEmptyReferenceSample)
}

const basicEntry = `
version: 1
variants:
  - name: basic-binary
    features: [monthly_income, credit_amount, annuity, age_years, years_employed]
    classifier:
      intercept: 0
      coefficients: [1, 1, 1, 1, 1]
`

func TestParse(t *testing.T) {
	f, err := artifact.Parse(strings.NewReader(basicEntry))
	require.NoError(t, err)
	assert.Equal(t, []string{"basic-binary"}, f.VariantNames())
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown key", "version: 1\nmodels: []\n"},
		{"wrong version", "version: 2\nvariants: []\n"},
		{"unnamed entry", "version: 1\nvariants:\n  - features: [annuity]\n"},
		{"duplicate entry", "version: 1\nvariants:\n  - name: a\n  - name: a\n"},
		{"not yaml", "{{{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := artifact.Parse(strings.NewReader(tt.doc))
			require.Error(t, err)
		})
	}
}

func TestBuildRegistry_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{
			name: "feature order differs from schema",
			doc: `
version: 1
variants:
  - name: basic-binary
    features: [credit_amount, monthly_income, annuity, age_years, years_employed]
    classifier: {intercept: 0, coefficients: [1, 1, 1, 1, 1]}
`,
			wantErr: model.ErrSchemaMismatch,
		},
		{
			name: "coefficient count differs from schema",
			doc: `
version: 1
variants:
  - name: basic-binary
    features: [monthly_income, credit_amount, annuity, age_years, years_employed]
    classifier: {intercept: 0, coefficients: [1, 1, 1]}
`,
			wantErr: model.ErrDimensionMismatch,
		},
		{
			name: "scaler width differs from classifier",
			doc: `
version: 1
variants:
  - name: basic-binary
    features: [monthly_income, credit_amount, annuity, age_years, years_employed]
    scaler: {mean: [0, 0, 0, 0], scale: [1, 1, 1, 1]}
    classifier: {intercept: 0, coefficients: [1, 1, 1, 1, 1]}
`,
			wantErr: model.ErrDimensionMismatch,
		},
		{
			name: "zero scale",
			doc: `
version: 1
variants:
  - name: basic-binary
    features: [monthly_income, credit_amount, annuity, age_years, years_employed]
    scaler: {mean: [0, 0, 0, 0, 0], scale: [1, 1, 0, 1, 1]}
    classifier: {intercept: 0, coefficients: [1, 1, 1, 1, 1]}
`,
			wantErr: ml.ErrZeroScale,
		},
		{
			name: "unknown variant",
			doc: `
version: 1
variants:
  - name: super-scorer
    features: [annuity]
    classifier: {intercept: 0, coefficients: [1]}
`,
			wantErr: service.ErrUnknownVariant,
		},
		{
			name: "percentile without sample",
			doc: `
version: 1
variants:
  - name: bureau-percentile
    features: [monthly_income, credit_amount, annuity, age_years, years_employed, ext_source_1, ext_source_2]
    classifier: {intercept: 0, coefficients: [1, 1, 1, 1, 1, 1, 1]}
`,
			wantErr: model.ErrEmptyReferenceSample,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := artifact.Parse(strings.NewReader(tt.doc))
			require.NoError(t, err)

			_, err = artifact.BuildRegistry(context.Background(), f, f, service.VariantBasicBinary, discardLogger())
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBuildRegistry_DefaultMustBeLoaded(t *testing.T) {
	f, err := artifact.Parse(strings.NewReader(basicEntry))
	require.NoError(t, err)

	_, err = artifact.BuildRegistry(context.Background(), f, f, service.VariantBasicThreeTier, discardLogger())
	require.ErrorIs(t, err, service.ErrUnknownVariant)
}
