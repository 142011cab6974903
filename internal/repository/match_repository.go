package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hrunx/sprintly-mvp/internal/models"
)

const matchColumns = `id, company_id, investor_id, score, sector_score, stage_score,
	   traction_score, check_size_score, geo_score, thesis_score, explanation,
	   match_reasons, status, notes, created_at, updated_at`

// matchRepository implements MatchRepository
type matchRepository struct {
	db dbExecutor
}

// NewMatchRepository creates a new match repository
func NewMatchRepository(db dbExecutor) MatchRepository {
	return &matchRepository{db: db}
}

func scanMatch(row interface{ Scan(...interface{}) error }) (*models.Match, error) {
	match := &models.Match{}
	err := row.Scan(
		&match.ID, &match.CompanyID, &match.InvestorID, &match.Score,
		&match.SectorScore, &match.StageScore, &match.TractionScore,
		&match.CheckSizeScore, &match.GeoScore, &match.ThesisScore,
		&match.Explanation, &match.MatchReasons, &match.Status, &match.Notes,
		&match.CreatedAt, &match.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return match, nil
}

// Replace upserts the match for its pair. Status and notes are preserved on
// conflict so regeneration does not reset pipeline state.
func (r *matchRepository) Replace(match *models.Match) error {
	if match.ID == uuid.Nil {
		match.ID = uuid.New()
	}
	if match.Status == "" {
		match.Status = string(models.MatchSuggested)
	}
	if match.MatchReasons == "" {
		match.MatchReasons = "[]"
	}

	now := time.Now()
	match.CreatedAt = now
	match.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO matches (%s) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
		)
		ON CONFLICT (company_id, investor_id) DO UPDATE SET
			score = EXCLUDED.score,
			sector_score = EXCLUDED.sector_score,
			stage_score = EXCLUDED.stage_score,
			traction_score = EXCLUDED.traction_score,
			check_size_score = EXCLUDED.check_size_score,
			geo_score = EXCLUDED.geo_score,
			thesis_score = EXCLUDED.thesis_score,
			explanation = EXCLUDED.explanation,
			match_reasons = EXCLUDED.match_reasons,
			updated_at = EXCLUDED.updated_at
	`, matchColumns)

	_, err := r.db.Exec(query,
		match.ID, match.CompanyID, match.InvestorID, match.Score,
		match.SectorScore, match.StageScore, match.TractionScore,
		match.CheckSizeScore, match.GeoScore, match.ThesisScore,
		match.Explanation, match.MatchReasons, match.Status, match.Notes,
		match.CreatedAt, match.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to replace match: %w", err)
	}

	return nil
}

// GetByPair retrieves the match for a company/investor pair
func (r *matchRepository) GetByPair(companyID, investorID uuid.UUID) (*models.Match, error) {
	query := fmt.Sprintf(`SELECT %s FROM matches WHERE company_id = $1 AND investor_id = $2`, matchColumns)

	match, err := scanMatch(r.db.QueryRow(query, companyID, investorID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("match not found")
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	return match, nil
}

// ListByCompany retrieves matches for a company, highest score first
func (r *matchRepository) ListByCompany(companyID uuid.UUID, limit int) ([]models.Match, error) {
	query := fmt.Sprintf(`SELECT %s FROM matches WHERE company_id = $1 ORDER BY score DESC, updated_at DESC`, matchColumns)

	args := []interface{}{companyID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	return r.queryMatches(query, args...)
}

// ListByInvestor retrieves matches for an investor, highest score first
func (r *matchRepository) ListByInvestor(investorID uuid.UUID, limit int) ([]models.Match, error) {
	query := fmt.Sprintf(`SELECT %s FROM matches WHERE investor_id = $1 ORDER BY score DESC, updated_at DESC`, matchColumns)

	args := []interface{}{investorID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	return r.queryMatches(query, args...)
}

// List retrieves matches with filters
func (r *matchRepository) List(filters MatchFilters) ([]models.Match, error) {
	query := fmt.Sprintf(`SELECT %s FROM matches`, matchColumns)

	var whereClauses []string
	var args []interface{}
	argIndex := 1

	if filters.MinScore != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("score >= $%d", argIndex))
		args = append(args, *filters.MinScore)
		argIndex++
	}

	if filters.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, filters.Status)
		argIndex++
	}

	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}

	query += " ORDER BY score DESC, updated_at DESC"

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filters.Limit)
		argIndex++
	}

	if filters.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, filters.Offset)
	}

	return r.queryMatches(query, args...)
}

// UpdateStatus updates the pipeline status of a match
func (r *matchRepository) UpdateStatus(id uuid.UUID, status string, notes string) error {
	query := `UPDATE matches SET status = $2, notes = $3, updated_at = $4 WHERE id = $1`

	result, err := r.db.Exec(query, id, status, notes, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update match status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("match not found")
	}

	return nil
}

// DeleteByCompany removes all matches for a company
func (r *matchRepository) DeleteByCompany(companyID uuid.UUID) error {
	if _, err := r.db.Exec(`DELETE FROM matches WHERE company_id = $1`, companyID); err != nil {
		return fmt.Errorf("failed to delete matches: %w", err)
	}
	return nil
}

// DeleteByInvestor removes all matches for an investor
func (r *matchRepository) DeleteByInvestor(investorID uuid.UUID) error {
	if _, err := r.db.Exec(`DELETE FROM matches WHERE investor_id = $1`, investorID); err != nil {
		return fmt.Errorf("failed to delete matches: %w", err)
	}
	return nil
}

func (r *matchRepository) queryMatches(query string, args ...interface{}) ([]models.Match, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var matches []models.Match
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, *match)
	}

	return matches, nil
}
