package usecase

import (
	"context"

	"github.com/bibbank/loanscore/internal/application/dto"
	"github.com/bibbank/loanscore/internal/domain/service"
)

// ListVariants is the use case for describing the loaded variants.
type ListVariants struct {
	registry *service.Registry
}

// NewListVariants creates a new ListVariants use case.
func NewListVariants(registry *service.Registry) *ListVariants {
	return &ListVariants{registry: registry}
}

// Execute returns every loaded variant in registration order.
func (uc *ListVariants) Execute(_ context.Context) (dto.ListVariantsResponse, error) {
	def := uc.registry.DefaultVariant()
	variants := uc.registry.Variants()

	out := make([]dto.VariantDTO, 0, len(variants))
	for _, v := range variants {
		out = append(out, dto.FromVariant(v, v.Name == def))
	}
	return dto.ListVariantsResponse{Variants: out, DefaultVariant: def}, nil
}
