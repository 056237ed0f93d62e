package artifact

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/bibbank/loanscore/internal/domain/model"
	"github.com/bibbank/loanscore/internal/domain/port"
	"github.com/bibbank/loanscore/internal/domain/service"
	"github.com/bibbank/loanscore/internal/infrastructure/ml"
)

// BuildRegistry turns every variant in f into a pipeline. Percentile samples
// come from samples, which may be f itself or a database.
func BuildRegistry(
	ctx context.Context,
	f *File,
	samples port.ReferenceSampleSource,
	defaultVariant string,
	logger *slog.Logger,
) (*service.Registry, error) {
	pipelines := make([]*service.Pipeline, 0, len(f.Variants))
	for _, a := range f.Variants {
		p, err := buildPipeline(ctx, a, samples)
		if err != nil {
			return nil, fmt.Errorf("variant %s: %w", a.Name, err)
		}
		pipelines = append(pipelines, p)
		logger.Info("variant loaded",
			slog.String("variant", a.Name),
			slog.String("schema", p.Variant().Schema.Name()),
			slog.String("score_mode", p.Variant().Mode().String()),
			slog.String("policy", p.Variant().Policy.Name()),
		)
	}
	return service.NewRegistry(defaultVariant, pipelines...)
}

func buildPipeline(ctx context.Context, a VariantArtifact, samples port.ReferenceSampleSource) (*service.Pipeline, error) {
	variant, err := service.LookupVariant(a.Name)
	if err != nil {
		return nil, err
	}
	if want := variant.Schema.FeatureNames(); !slices.Equal(a.Features, want) {
		return nil, fmt.Errorf("%w: artifact features %v, schema %s expects %v",
			model.ErrSchemaMismatch, a.Features, variant.Schema.Name(), want)
	}

	logistic, err := ml.NewLogisticModel(a.Classifier.Coefficients, a.Classifier.Intercept)
	if err != nil {
		return nil, err
	}

	var (
		classifier port.Classifier = logistic
		scaler     port.Scaler
	)
	if a.Scaler != nil {
		standard, err := ml.NewStandardScaler(a.Scaler.Mean, a.Scaler.Scale)
		if err != nil {
			return nil, err
		}
		if a.Scaler.Embedded {
			embedded, err := ml.NewScaledClassifier(standard, logistic)
			if err != nil {
				return nil, err
			}
			classifier = embedded
		} else {
			scaler = standard
		}
	}

	var reference model.ReferenceSample
	if variant.ReferenceSample != "" {
		reference, err = samples.LoadReferenceSample(ctx, variant.ReferenceSample)
		if err != nil {
			return nil, fmt.Errorf("load reference sample: %w", err)
		}
	}

	transformer, err := service.NewScoreTransformer(variant.Mode(), classifier, scaler, reference)
	if err != nil {
		return nil, err
	}
	return service.NewPipeline(variant, transformer)
}
