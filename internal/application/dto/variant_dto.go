package dto

import "github.com/bibbank/loanscore/internal/domain/service"

// PolicyDTO describes a decision policy.
type PolicyDTO struct {
	Threshold    *float64 `json:"threshold,omitempty"`
	ApproveAt    *float64 `json:"approve_at,omitempty"`
	ReviewAt     *float64 `json:"review_at,omitempty"`
	MinThreshold *float64 `json:"min_threshold,omitempty"`
	MaxThreshold *float64 `json:"max_threshold,omitempty"`
	Name         string   `json:"name"`
	Kind         string   `json:"kind"`
	Adjustable   bool     `json:"adjustable"`
}

// VariantDTO describes one named variant.
type VariantDTO struct {
	Features    []string  `json:"features"`
	Policy      PolicyDTO `json:"policy"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Schema      string    `json:"schema"`
	ScoreMode   string    `json:"score_mode"`
	Default     bool      `json:"default"`
}

// ListVariantsResponse is the output DTO of the ListVariants use case.
type ListVariantsResponse struct {
	Variants       []VariantDTO `json:"variants"`
	DefaultVariant string       `json:"default_variant"`
}

// FromVariant maps a variant to its DTO.
func FromVariant(v service.Variant, isDefault bool) VariantDTO {
	d := v.Policy.Describe()
	policy := PolicyDTO{
		Name:       d.Name,
		Kind:       d.Kind,
		Adjustable: d.Adjustable,
	}
	switch d.Kind {
	case service.PolicyKindTwoTier:
		policy.Threshold = floatPtr(d.Threshold)
		if d.Adjustable {
			policy.MinThreshold = floatPtr(d.MinThreshold)
			policy.MaxThreshold = floatPtr(d.MaxThreshold)
		}
	case service.PolicyKindThreeTier:
		policy.ApproveAt = floatPtr(d.ApproveAt)
		policy.ReviewAt = floatPtr(d.ReviewAt)
	}

	return VariantDTO{
		Name:        v.Name,
		Description: v.Description,
		Schema:      v.Schema.Name(),
		Features:    v.Schema.FeatureNames(),
		ScoreMode:   v.Mode().String(),
		Policy:      policy,
		Default:     isDefault,
	}
}

func floatPtr(v float64) *float64 { return &v }
