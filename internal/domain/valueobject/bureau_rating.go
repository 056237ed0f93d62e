package valueobject

import (
	"fmt"
	"strings"
)

// BureauRating is the coarse good/fair/poor pick offered instead of a raw
// external bureau score.
type BureauRating struct {
	value string
	score float64
}

var (
	BureauRatingGood = BureauRating{value: "good", score: 0.8}
	BureauRatingFair = BureauRating{value: "fair", score: 0.5}
	BureauRatingPoor = BureauRating{value: "poor", score: 0.2}
)

// BureauRatingFromString parses a rating case-insensitively.
func BureauRatingFromString(s string) (BureauRating, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "good":
		return BureauRatingGood, nil
	case "fair":
		return BureauRatingFair, nil
	case "poor":
		return BureauRatingPoor, nil
	default:
		return BureauRating{}, fmt.Errorf("invalid bureau rating: %q", s)
	}
}

func (r BureauRating) String() string { return r.value }

// Score returns the bureau score the rating stands for.
func (r BureauRating) Score() float64 { return r.score }

// IsZero returns true if the BureauRating has not been set.
func (r BureauRating) IsZero() bool { return r.value == "" }
