package repository

import (
	"github.com/google/uuid"

	"github.com/hrunx/sprintly-mvp/internal/matching"
	"github.com/hrunx/sprintly-mvp/internal/models"
)

// CompanyRepository defines the interface for company data access
type CompanyRepository interface {
	GetByID(id uuid.UUID) (*models.Company, error)
	GetAll(filters EntityFilters) ([]models.Company, error)
	Create(company *models.Company) error
	Update(company *models.Company) error
	Delete(id uuid.UUID) error
}

// InvestorRepository defines the interface for investor data access
type InvestorRepository interface {
	GetByID(id uuid.UUID) (*models.Investor, error)
	GetAll(filters EntityFilters) ([]models.Investor, error)
	Create(investor *models.Investor) error
	Update(investor *models.Investor) error
	Delete(id uuid.UUID) error
}

// MatchRepository defines the interface for match data access
type MatchRepository interface {
	// Replace upserts the match for its (company_id, investor_id) pair.
	Replace(match *models.Match) error
	GetByPair(companyID, investorID uuid.UUID) (*models.Match, error)
	ListByCompany(companyID uuid.UUID, limit int) ([]models.Match, error)
	ListByInvestor(investorID uuid.UUID, limit int) ([]models.Match, error)
	List(filters MatchFilters) ([]models.Match, error)
	UpdateStatus(id uuid.UUID, status string, notes string) error
	DeleteByCompany(companyID uuid.UUID) error
	DeleteByInvestor(investorID uuid.UUID) error
}

// WeightsRepository defines the interface for the global weight vector
type WeightsRepository interface {
	Get() (matching.Weights, error)
	Save(weights matching.Weights) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Create(user *models.User) error
}

// TransactionManager defines the interface for database transaction management
type TransactionManager interface {
	WithTransaction(fn func(repos *Repositories) error) error
}

// Repositories groups all repository interfaces
type Repositories struct {
	Company  CompanyRepository
	Investor InvestorRepository
	Match    MatchRepository
	Weights  WeightsRepository
	User     UserRepository
	Tx       TransactionManager
}

// EntityFilters defines filters for querying companies and investors
type EntityFilters struct {
	Sector    string
	Stage     string
	Geography string
	Search    string
	Limit     int
	Offset    int
}

// MatchFilters defines filters for querying matches
type MatchFilters struct {
	MinScore *int
	Status   string
	Limit    int
	Offset   int
}
