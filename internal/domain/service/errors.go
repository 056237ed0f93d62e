package service

import "errors"

var (
	// ErrUnknownVariant is returned when a variant name is not registered.
	ErrUnknownVariant = errors.New("unknown variant")

	// ErrThresholdOutOfRange is returned when a threshold override falls outside the policy bounds.
	ErrThresholdOutOfRange = errors.New("threshold out of range")

	// ErrThresholdNotAdjustable is returned when a fixed policy receives a threshold override.
	ErrThresholdNotAdjustable = errors.New("threshold is not adjustable for this variant")

	// ErrScoreModeMismatch is returned when a policy is handed a score of another mode.
	ErrScoreModeMismatch = errors.New("score mode mismatch")
)
