package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hrunx/sprintly-mvp/internal/models"
)

const investorColumns = `id, name, type, firm, title, bio, sector, sub_sector, stage,
	   geography, check_size_min, check_size_max, thesis, email, website_url,
	   tags, confidence, created_at, updated_at`

// investorRepository implements InvestorRepository
type investorRepository struct {
	db dbExecutor
}

// NewInvestorRepository creates a new investor repository
func NewInvestorRepository(db dbExecutor) InvestorRepository {
	return &investorRepository{db: db}
}

func scanInvestor(row interface{ Scan(...interface{}) error }) (*models.Investor, error) {
	investor := &models.Investor{}
	err := row.Scan(
		&investor.ID, &investor.Name, &investor.Type, &investor.Firm,
		&investor.Title, &investor.Bio, &investor.Sector, &investor.SubSector,
		&investor.Stage, &investor.Geography, &investor.CheckSizeMin,
		&investor.CheckSizeMax, &investor.Thesis, &investor.Email,
		&investor.WebsiteURL, &investor.Tags, &investor.Confidence,
		&investor.CreatedAt, &investor.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return investor, nil
}

// GetByID retrieves an investor by ID
func (r *investorRepository) GetByID(id uuid.UUID) (*models.Investor, error) {
	query := fmt.Sprintf(`SELECT %s FROM investors WHERE id = $1`, investorColumns)

	investor, err := scanInvestor(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("investor not found")
		}
		return nil, fmt.Errorf("failed to get investor: %w", err)
	}

	return investor, nil
}

// Create creates a new investor
func (r *investorRepository) Create(investor *models.Investor) error {
	if investor.ID == uuid.Nil {
		investor.ID = uuid.New()
	}

	now := time.Now()
	investor.CreatedAt = now
	investor.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO investors (%s) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19
		)
	`, investorColumns)

	_, err := r.db.Exec(query,
		investor.ID, investor.Name, investor.Type, investor.Firm,
		investor.Title, investor.Bio, investor.Sector, investor.SubSector,
		investor.Stage, investor.Geography, investor.CheckSizeMin,
		investor.CheckSizeMax, investor.Thesis, investor.Email,
		investor.WebsiteURL, investor.Tags, investor.Confidence,
		investor.CreatedAt, investor.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create investor: %w", err)
	}

	return nil
}

// Update updates an existing investor
func (r *investorRepository) Update(investor *models.Investor) error {
	investor.UpdatedAt = time.Now()

	query := `
		UPDATE investors SET
			name = $2, type = $3, firm = $4, title = $5, bio = $6, sector = $7,
			sub_sector = $8, stage = $9, geography = $10, check_size_min = $11,
			check_size_max = $12, thesis = $13, email = $14, website_url = $15,
			tags = $16, confidence = $17, updated_at = $18
		WHERE id = $1
	`

	result, err := r.db.Exec(query,
		investor.ID, investor.Name, investor.Type, investor.Firm,
		investor.Title, investor.Bio, investor.Sector, investor.SubSector,
		investor.Stage, investor.Geography, investor.CheckSizeMin,
		investor.CheckSizeMax, investor.Thesis, investor.Email,
		investor.WebsiteURL, investor.Tags, investor.Confidence,
		investor.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update investor: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("investor not found")
	}

	return nil
}

// Delete deletes an investor
func (r *investorRepository) Delete(id uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM investors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete investor: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("investor not found")
	}

	return nil
}

// GetAll retrieves investors with filters
func (r *investorRepository) GetAll(filters EntityFilters) ([]models.Investor, error) {
	query := fmt.Sprintf(`SELECT %s FROM investors`, investorColumns)

	var whereClauses []string
	var args []interface{}
	argIndex := 1

	if filters.Sector != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("sector ILIKE $%d", argIndex))
		args = append(args, "%"+filters.Sector+"%")
		argIndex++
	}

	if filters.Stage != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("LOWER(stage) = LOWER($%d)", argIndex))
		args = append(args, filters.Stage)
		argIndex++
	}

	if filters.Geography != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("geography ILIKE $%d", argIndex))
		args = append(args, "%"+filters.Geography+"%")
		argIndex++
	}

	if filters.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(name ILIKE $%d OR firm ILIKE $%d OR bio ILIKE $%d)", argIndex, argIndex, argIndex))
		args = append(args, "%"+filters.Search+"%")
		argIndex++
	}

	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}

	query += " ORDER BY updated_at DESC"

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filters.Limit)
		argIndex++
	}

	if filters.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, filters.Offset)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query investors: %w", err)
	}
	defer rows.Close()

	var investors []models.Investor
	for rows.Next() {
		investor, err := scanInvestor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investor: %w", err)
		}
		investors = append(investors, *investor)
	}

	return investors, nil
}
