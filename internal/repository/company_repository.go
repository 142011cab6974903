package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hrunx/sprintly-mvp/internal/models"
)

const companyColumns = `id, name, description, sector, sub_sector, stage, geography,
	   business_model, target_market, funding_target, funding_raised, revenue,
	   revenue_growth, customers, mrr, website_url, founder_name, founder_email,
	   tags, confidence, created_at, updated_at`

// companyRepository implements CompanyRepository
type companyRepository struct {
	db dbExecutor
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db dbExecutor) CompanyRepository {
	return &companyRepository{db: db}
}

func scanCompany(row interface{ Scan(...interface{}) error }) (*models.Company, error) {
	company := &models.Company{}
	err := row.Scan(
		&company.ID, &company.Name, &company.Description, &company.Sector,
		&company.SubSector, &company.Stage, &company.Geography,
		&company.BusinessModel, &company.TargetMarket, &company.FundingTarget,
		&company.FundingRaised, &company.Revenue, &company.RevenueGrowth,
		&company.Customers, &company.MRR, &company.WebsiteURL,
		&company.FounderName, &company.FounderEmail, &company.Tags,
		&company.Confidence, &company.CreatedAt, &company.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return company, nil
}

// GetByID retrieves a company by ID
func (r *companyRepository) GetByID(id uuid.UUID) (*models.Company, error) {
	query := fmt.Sprintf(`SELECT %s FROM companies WHERE id = $1`, companyColumns)

	company, err := scanCompany(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("company not found")
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	return company, nil
}

// Create creates a new company
func (r *companyRepository) Create(company *models.Company) error {
	if company.ID == uuid.Nil {
		company.ID = uuid.New()
	}

	now := time.Now()
	company.CreatedAt = now
	company.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO companies (%s) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22
		)
	`, companyColumns)

	_, err := r.db.Exec(query,
		company.ID, company.Name, company.Description, company.Sector,
		company.SubSector, company.Stage, company.Geography,
		company.BusinessModel, company.TargetMarket, company.FundingTarget,
		company.FundingRaised, company.Revenue, company.RevenueGrowth,
		company.Customers, company.MRR, company.WebsiteURL,
		company.FounderName, company.FounderEmail, company.Tags,
		company.Confidence, company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}

	return nil
}

// Update updates an existing company
func (r *companyRepository) Update(company *models.Company) error {
	company.UpdatedAt = time.Now()

	query := `
		UPDATE companies SET
			name = $2, description = $3, sector = $4, sub_sector = $5, stage = $6,
			geography = $7, business_model = $8, target_market = $9,
			funding_target = $10, funding_raised = $11, revenue = $12,
			revenue_growth = $13, customers = $14, mrr = $15, website_url = $16,
			founder_name = $17, founder_email = $18, tags = $19, confidence = $20,
			updated_at = $21
		WHERE id = $1
	`

	result, err := r.db.Exec(query,
		company.ID, company.Name, company.Description, company.Sector,
		company.SubSector, company.Stage, company.Geography,
		company.BusinessModel, company.TargetMarket, company.FundingTarget,
		company.FundingRaised, company.Revenue, company.RevenueGrowth,
		company.Customers, company.MRR, company.WebsiteURL,
		company.FounderName, company.FounderEmail, company.Tags,
		company.Confidence, company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("company not found")
	}

	return nil
}

// Delete deletes a company
func (r *companyRepository) Delete(id uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("company not found")
	}

	return nil
}

// GetAll retrieves companies with filters
func (r *companyRepository) GetAll(filters EntityFilters) ([]models.Company, error) {
	query := fmt.Sprintf(`SELECT %s FROM companies`, companyColumns)

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
		whereClauses = append(whereClauses, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex))
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
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	var companies []models.Company
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, *company)
	}

	return companies, nil
}
