package model

import (
	"fmt"
	"math"
	"slices"
	"sort"
)

// ReferenceSample is the fixed set of historical logits that percentile ranks
// are computed against. It is immutable and safe for concurrent readers.
type ReferenceSample struct {
	name   string
	sorted []float64
}

// NewReferenceSample copies and sorts logits.
func NewReferenceSample(name string, logits []float64) (ReferenceSample, error) {
	if len(logits) == 0 {
		return ReferenceSample{}, fmt.Errorf("%w: %s", ErrEmptyReferenceSample, name)
	}
	sorted := slices.Clone(logits)
	for i, v := range sorted {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ReferenceSample{}, fmt.Errorf("reference sample %s: value %d is not finite", name, i)
		}
	}
	slices.Sort(sorted)
	return ReferenceSample{name: name, sorted: sorted}, nil
}

func (r ReferenceSample) Name() string { return r.name }
func (r ReferenceSample) Len() int     { return len(r.sorted) }
func (r ReferenceSample) IsZero() bool { return len(r.sorted) == 0 }

// PercentileRank returns 100 * |{h : h < logit}| / N. Ties do not count.
func (r ReferenceSample) PercentileRank(logit float64) (float64, error) {
	if len(r.sorted) == 0 {
		return 0, ErrEmptyReferenceSample
	}
	below := sort.SearchFloat64s(r.sorted, logit)
	return 100 * float64(below) / float64(len(r.sorted)), nil
}
