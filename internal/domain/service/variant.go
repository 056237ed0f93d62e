package service

import (
	"fmt"

	"github.com/bibbank/loanscore/internal/domain/valueobject"
)

// Variant names.
const (
	VariantBasicThreeTier      = "basic-three-tier"
	VariantBasicBinary         = "basic-binary"
	VariantAdjustableThreshold = "adjustable-threshold"
	VariantBureauRiskScore     = "bureau-risk-score"
	VariantBureauPercentile    = "bureau-percentile"
	VariantBureauHistoryBinary = "bureau-history-binary"

	// DefaultVariant serves requests that do not name one.
	DefaultVariant = VariantBasicThreeTier

	// BureauReferenceSample is the logit sample the percentile variant ranks against.
	BureauReferenceSample = "bureau-7-logits"
)

// Variant is one named product configuration of the scoring pipeline.
type Variant struct {
	Policy          DecisionPolicy
	Name            string
	Description     string
	ReferenceSample string
	Schema          valueobject.FeatureSchema
}

// Mode returns the score mode the variant presents.
func (v Variant) Mode() valueobject.ScoreMode { return v.Policy.Mode() }

// StandardVariants returns the shipped variant table. Each call returns fresh values.
func StandardVariants() []Variant {
	return []Variant{
		{
			Name:        VariantBasicThreeTier,
			Description: "Five attributes, approval probability banded at 0.5 and 0.3.",
			Schema:      valueobject.SchemaBasic5,
			Policy:      ThreeTierProbabilityPolicy(),
		},
		{
			Name:        VariantBasicBinary,
			Description: "Five attributes, approve when probability is at least 0.5.",
			Schema:      valueobject.SchemaBasic5,
			Policy:      BinaryProbabilityPolicy(),
		},
		{
			Name:        VariantAdjustableThreshold,
			Description: "Five attributes, approval threshold adjustable between 0.1 and 0.6.",
			Schema:      valueobject.SchemaBasic5,
			Policy:      AdjustableProbabilityPolicy(),
		},
		{
			Name:        VariantBureauRiskScore,
			Description: "Bureau scores included, 0-100 risk score banded at 60 and 40.",
			Schema:      valueobject.SchemaBureau7,
			Policy:      ThreeTierRiskScorePolicy(),
		},
		{
			Name:            VariantBureauPercentile,
			Description:     "Bureau scores included, percentile rank against historical applicants banded at 70 and 40.",
			Schema:          valueobject.SchemaBureau7,
			Policy:          ThreeTierPercentilePolicy(),
			ReferenceSample: BureauReferenceSample,
		},
		{
			Name:        VariantBureauHistoryBinary,
			Description: "Day-unit attributes with bureau scores and credit history, approve at probability 0.5.",
			Schema:      valueobject.SchemaBureauHistory9,
			Policy:      BinaryProbabilityPolicy(),
		},
	}
}

// LookupVariant returns the shipped variant called name.
func LookupVariant(name string) (Variant, error) {
	for _, v := range StandardVariants() {
		if v.Name == name {
			return v, nil
		}
	}
	return Variant{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
}
