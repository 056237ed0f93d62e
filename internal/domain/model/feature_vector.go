package model

import "slices"

// FeatureVector is an ordered list of model inputs. Its order is given by the
// schema it was built against; scaled vectors keep the same length and order.
type FeatureVector []float64

// Len returns the number of features.
func (v FeatureVector) Len() int { return len(v) }

// Clone returns an independent copy.
func (v FeatureVector) Clone() FeatureVector { return slices.Clone(v) }
