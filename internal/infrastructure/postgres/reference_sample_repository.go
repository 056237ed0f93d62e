package postgres

import (
	"context"
	"fmt"

	"github.com/bibbank/loanscore/internal/domain/model"
	pgutil "github.com/bibbank/loanscore/pkg/postgres"
)

// ReferenceSampleRepository implements port.ReferenceSampleSource using PostgreSQL.
type ReferenceSampleRepository struct {
	db pgutil.Querier
}

// NewReferenceSampleRepository creates a repository over a pool or transaction.
func NewReferenceSampleRepository(db pgutil.Querier) *ReferenceSampleRepository {
	return &ReferenceSampleRepository{db: db}
}

// LoadReferenceSample reads every logit stored under name.
func (r *ReferenceSampleRepository) LoadReferenceSample(ctx context.Context, name string) (model.ReferenceSample, error) {
	rows, err := r.db.Query(ctx, `
		SELECT logit
		FROM reference_sample_scores
		WHERE sample_name = $1
		ORDER BY position
	`, name)
	if err != nil {
		return model.ReferenceSample{}, fmt.Errorf("failed to query reference sample %s: %w", name, err)
	}
	defer rows.Close()

	var logits []float64
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return model.ReferenceSample{}, fmt.Errorf("failed to scan reference sample %s: %w", name, err)
		}
		logits = append(logits, v)
	}
	if err := rows.Err(); err != nil {
		return model.ReferenceSample{}, fmt.Errorf("failed to read reference sample %s: %w", name, err)
	}

	return model.NewReferenceSample(name, logits)
}
