package usecase

import (
	"errors"

	"github.com/bibbank/loanscore/internal/domain/model"
	"github.com/bibbank/loanscore/internal/domain/service"
)

var clientErrors = []error{
	service.ErrUnknownVariant,
	service.ErrThresholdOutOfRange,
	service.ErrThresholdNotAdjustable,
	model.ErrInvalidProfile,
	model.ErrSchemaMismatch,
}

// IsClientError reports whether err was caused by the request rather than the service.
// Dimension and reference sample errors mean the loaded artifacts disagree, so
// they are server faults.
func IsClientError(err error) bool {
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
