package service

import (
	"fmt"

	"github.com/bibbank/loanscore/internal/domain/model"
	"github.com/bibbank/loanscore/internal/domain/valueobject"
)

// BuildFeatureVector reads profile attributes in schema order. A missing
// attribute is a schema mismatch; nothing is defaulted.
func BuildFeatureVector(schema valueobject.FeatureSchema, profile model.ApplicantProfile) (model.FeatureVector, error) {
	if schema.IsZero() {
		return nil, fmt.Errorf("%w: no schema", model.ErrSchemaMismatch)
	}

	features := schema.Features()
	v := make(model.FeatureVector, len(features))
	for i, f := range features {
		x, ok := profile.Value(f)
		if !ok {
			return nil, fmt.Errorf("%w: schema %s requires %s", model.ErrSchemaMismatch, schema.Name(), f)
		}
		v[i] = x
	}
	return v, nil
}

// IdentityScaler passes vectors through unchanged. It stands in for the
// preprocessing stage when scaling is embedded in the classifier.
type IdentityScaler struct{}

// Transform returns a copy of v.
func (IdentityScaler) Transform(v model.FeatureVector) (model.FeatureVector, error) {
	return v.Clone(), nil
}

// FeatureCount is 0: any length is accepted.
func (IdentityScaler) FeatureCount() int { return 0 }
