package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/loanscore/internal/domain/model"
	"github.com/bibbank/loanscore/internal/domain/service"
	"github.com/bibbank/loanscore/internal/domain/valueobject"
)

func TestStandardVariants(t *testing.T) {
	variants := service.StandardVariants()
	require.Len(t, variants, 6)

	want := map[string]struct {
		schema valueobject.FeatureSchema
		mode   valueobject.ScoreMode
		policy string
	}{
		service.VariantBasicThreeTier:      {valueobject.SchemaBasic5, valueobject.ScoreModeProbability, "probability-three-tier"},
		service.VariantBasicBinary:         {valueobject.SchemaBasic5, valueobject.ScoreModeProbability, "probability-binary"},
		service.VariantAdjustableThreshold: {valueobject.SchemaBasic5, valueobject.ScoreModeProbability, "probability-adjustable"},
		service.VariantBureauRiskScore:     {valueobject.SchemaBureau7, valueobject.ScoreModeRiskScore, "risk-score-three-tier"},
		service.VariantBureauPercentile:    {valueobject.SchemaBureau7, valueobject.ScoreModePercentile, "percentile-three-tier"},
		service.VariantBureauHistoryBinary: {valueobject.SchemaBureauHistory9, valueobject.ScoreModeProbability, "probability-binary"},
	}
	for _, v := range variants {
		w, ok := want[v.Name]
		require.True(t, ok, v.Name)
		assert.True(t, w.schema.Equal(v.Schema), v.Name)
		assert.Equal(t, w.mode, v.Mode(), v.Name)
		assert.Equal(t, w.policy, v.Policy.Name(), v.Name)
		assert.NotEmpty(t, v.Description)
	}

	_, err := service.LookupVariant("nope")
	require.ErrorIs(t, err, service.ErrUnknownVariant)
}

func TestRegistry(t *testing.T) {
	basic := newPipeline(t, service.VariantBasicThreeTier, fixedClassifier(0.7, 5), model.ReferenceSample{})
	binary := newPipeline(t, service.VariantBasicBinary, fixedClassifier(0.7, 5), model.ReferenceSample{})

	reg, err := service.NewRegistry(service.VariantBasicThreeTier, basic, binary)
	require.NoError(t, err)

	p, err := reg.Pipeline("")
	require.NoError(t, err)
	assert.Equal(t, service.VariantBasicThreeTier, p.Variant().Name)

	p, err = reg.Pipeline(service.VariantBasicBinary)
	require.NoError(t, err)
	assert.Same(t, binary, p)

	_, err = reg.Pipeline("bureau-percentile")
	require.ErrorIs(t, err, service.ErrUnknownVariant)

	assert.Equal(t, []string{service.VariantBasicThreeTier, service.VariantBasicBinary}, reg.Names())
	assert.Len(t, reg.Variants(), 2)
	assert.Equal(t, service.VariantBasicThreeTier, reg.DefaultVariant())
}

func TestNewRegistry_Errors(t *testing.T) {
	basic := newPipeline(t, service.VariantBasicThreeTier, fixedClassifier(0.7, 5), model.ReferenceSample{})

	_, err := service.NewRegistry(service.VariantBasicBinary, basic)
	require.ErrorIs(t, err, service.ErrUnknownVariant)

	_, err = service.NewRegistry(service.VariantBasicThreeTier, basic, basic)
	require.Error(t, err)
}
