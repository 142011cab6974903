package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/hrunx/sprintly-mvp/internal/matching"
)

// weightsRepository implements WeightsRepository over the single-row
// match_weights table.
type weightsRepository struct {
	db dbExecutor
}

// NewWeightsRepository creates a new weights repository
func NewWeightsRepository(db dbExecutor) WeightsRepository {
	return &weightsRepository{db: db}
}

// Get retrieves the active weight vector, falling back to defaults when the
// row is missing.
func (r *weightsRepository) Get() (matching.Weights, error) {
	query := `SELECT sector, stage, traction, check_size, geography, thesis FROM match_weights WHERE id = 1`

	var w matching.Weights
	err := r.db.QueryRow(query).Scan(&w.Sector, &w.Stage, &w.Traction, &w.CheckSize, &w.Geography, &w.Thesis)
	if err != nil {
		if err == sql.ErrNoRows {
			return matching.DefaultWeights(), nil
		}
		return matching.Weights{}, fmt.Errorf("failed to get weights: %w", err)
	}

	return w, nil
}

// Save stores the weight vector
func (r *weightsRepository) Save(weights matching.Weights) error {
	query := `
		INSERT INTO match_weights (id, sector, stage, traction, check_size, geography, thesis, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			sector = EXCLUDED.sector,
			stage = EXCLUDED.stage,
			traction = EXCLUDED.traction,
			check_size = EXCLUDED.check_size,
			geography = EXCLUDED.geography,
			thesis = EXCLUDED.thesis,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(query,
		weights.Sector, weights.Stage, weights.Traction,
		weights.CheckSize, weights.Geography, weights.Thesis, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to save weights: %w", err)
	}

	return nil
}
