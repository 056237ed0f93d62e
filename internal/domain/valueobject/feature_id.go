package valueobject

import "fmt"

// FeatureID names a single model input. The string form is the name used in
// model artifacts and on the wire.
type FeatureID struct {
	value string
}

var (
	FeatureMonthlyIncome     = FeatureID{value: "monthly_income"}
	FeatureCreditAmount      = FeatureID{value: "credit_amount"}
	FeatureAnnuity           = FeatureID{value: "annuity"}
	FeatureAgeYears          = FeatureID{value: "age_years"}
	FeatureAgeDays           = FeatureID{value: "age_days"}
	FeatureYearsEmployed     = FeatureID{value: "years_employed"}
	FeatureDaysEmployed      = FeatureID{value: "days_employed"}
	FeatureExtSource1        = FeatureID{value: "ext_source_1"}
	FeatureExtSource2        = FeatureID{value: "ext_source_2"}
	FeaturePrevApplications  = FeatureID{value: "prev_applications"}
	FeatureActiveBureauLoans = FeatureID{value: "active_bureau_loans"}
)

var allFeatures = []FeatureID{
	FeatureMonthlyIncome,
	FeatureCreditAmount,
	FeatureAnnuity,
	FeatureAgeYears,
	FeatureAgeDays,
	FeatureYearsEmployed,
	FeatureDaysEmployed,
	FeatureExtSource1,
	FeatureExtSource2,
	FeaturePrevApplications,
	FeatureActiveBureauLoans,
}

// FeatureIDFromString reconstructs a FeatureID from its artifact name.
func FeatureIDFromString(s string) (FeatureID, error) {
	for _, f := range allFeatures {
		if f.value == s {
			return f, nil
		}
	}
	return FeatureID{}, fmt.Errorf("unknown feature: %q", s)
}

func (f FeatureID) String() string { return f.value }

// IsZero returns true if the FeatureID has not been set.
func (f FeatureID) IsZero() bool { return f.value == "" }

// Equal checks equality with another FeatureID.
func (f FeatureID) Equal(other FeatureID) bool { return f.value == other.value }
