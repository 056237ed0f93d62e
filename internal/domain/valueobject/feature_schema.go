package valueobject

import (
	"fmt"
	"slices"
)

// FeatureSchema is a named, ordered list of features. Position i of every
// feature vector built against the schema holds Features()[i].
type FeatureSchema struct {
	name     string
	features []FeatureID
}

// Shipped schemas.
var (
	// SchemaBasic5 is the five-attribute form with age and employment in years.
	SchemaBasic5 = mustFeatureSchema("basic-5",
		FeatureMonthlyIncome, FeatureCreditAmount, FeatureAnnuity,
		FeatureAgeYears, FeatureYearsEmployed,
	)

	// SchemaBureau7 extends SchemaBasic5 with the two external bureau scores.
	SchemaBureau7 = mustFeatureSchema("bureau-7",
		FeatureMonthlyIncome, FeatureCreditAmount, FeatureAnnuity,
		FeatureAgeYears, FeatureYearsEmployed,
		FeatureExtSource1, FeatureExtSource2,
	)

	// SchemaBureauHistory9 uses day units and adds credit history counts.
	SchemaBureauHistory9 = mustFeatureSchema("bureau-history-9",
		FeatureMonthlyIncome, FeatureCreditAmount, FeatureAnnuity,
		FeatureAgeDays, FeatureDaysEmployed,
		FeatureExtSource1, FeatureExtSource2,
		FeaturePrevApplications, FeatureActiveBureauLoans,
	)
)

var knownSchemas = []FeatureSchema{SchemaBasic5, SchemaBureau7, SchemaBureauHistory9}

// NewFeatureSchema builds a schema. Names must be non-empty and features unique.
func NewFeatureSchema(name string, features ...FeatureID) (FeatureSchema, error) {
	if name == "" {
		return FeatureSchema{}, fmt.Errorf("schema name is required")
	}
	if len(features) == 0 {
		return FeatureSchema{}, fmt.Errorf("schema %s has no features", name)
	}
	seen := make(map[FeatureID]struct{}, len(features))
	for _, f := range features {
		if f.IsZero() {
			return FeatureSchema{}, fmt.Errorf("schema %s contains an unset feature", name)
		}
		if _, dup := seen[f]; dup {
			return FeatureSchema{}, fmt.Errorf("schema %s lists %s twice", name, f)
		}
		seen[f] = struct{}{}
	}
	return FeatureSchema{name: name, features: slices.Clone(features)}, nil
}

func mustFeatureSchema(name string, features ...FeatureID) FeatureSchema {
	s, err := NewFeatureSchema(name, features...)
	if err != nil {
		panic(err)
	}
	return s
}

// FeatureSchemaFromName returns one of the shipped schemas.
func FeatureSchemaFromName(name string) (FeatureSchema, error) {
	for _, s := range knownSchemas {
		if s.name == name {
			return s, nil
		}
	}
	return FeatureSchema{}, fmt.Errorf("unknown feature schema: %q", name)
}

func (s FeatureSchema) Name() string { return s.name }
func (s FeatureSchema) Len() int     { return len(s.features) }

// Features returns a copy of the ordered feature list.
func (s FeatureSchema) Features() []FeatureID { return slices.Clone(s.features) }

// FeatureNames returns the ordered artifact names.
func (s FeatureSchema) FeatureNames() []string {
	names := make([]string, len(s.features))
	for i, f := range s.features {
		names[i] = f.String()
	}
	return names
}

// Has reports whether the schema carries the feature.
func (s FeatureSchema) Has(f FeatureID) bool { return slices.Contains(s.features, f) }

// IsZero returns true if the schema has not been set.
func (s FeatureSchema) IsZero() bool { return s.name == "" }

// Equal reports whether both schemas share a name and an identical feature order.
func (s FeatureSchema) Equal(other FeatureSchema) bool {
	return s.name == other.name && slices.Equal(s.features, other.features)
}
