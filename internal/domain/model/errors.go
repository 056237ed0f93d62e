package model

import "errors"

var (
	// ErrInvalidProfile is returned when an applicant attribute is out of range.
	ErrInvalidProfile = errors.New("invalid applicant profile")

	// ErrSchemaMismatch is returned when a profile or artifact does not fit a feature schema.
	ErrSchemaMismatch = errors.New("feature schema mismatch")

	// ErrDimensionMismatch is returned when vector, scaler and classifier lengths disagree.
	ErrDimensionMismatch = errors.New("feature dimension mismatch")

	// ErrEmptyReferenceSample is returned when a percentile sample holds no scores.
	ErrEmptyReferenceSample = errors.New("empty reference sample")
)
