package services

import (
	"context"
	"database/sql"
	"io"

	"github.com/google/uuid"

	"github.com/hrunx/sprintly-mvp/internal/email"
	"github.com/hrunx/sprintly-mvp/internal/logger"
	"github.com/hrunx/sprintly-mvp/internal/matching"
	"github.com/hrunx/sprintly-mvp/internal/models"
	"github.com/hrunx/sprintly-mvp/internal/repository"
	"github.com/hrunx/sprintly-mvp/pkg/config"
)

// Services contains all application services
type Services struct {
	Company  CompanyService
	Investor InvestorService
	Matching MatchingService
	Import   ImportService
	Auth     AuthService
}

// CompanyService defines the interface for company business logic
type CompanyService interface {
	GetByID(id uuid.UUID) (*models.Company, error)
	GetAll(filters repository.EntityFilters) ([]models.Company, error)
	Create(company *models.Company) error
	Update(company *models.Company) error
	Delete(id uuid.UUID) error
}

// InvestorService defines the interface for investor business logic
type InvestorService interface {
	GetByID(id uuid.UUID) (*models.Investor, error)
	GetAll(filters repository.EntityFilters) ([]models.Investor, error)
	Create(investor *models.Investor) error
	Update(investor *models.Investor) error
	Delete(id uuid.UUID) error
}

// MatchingService defines the interface for match generation and retrieval
type MatchingService interface {
	// PreviewMatch scores a single pair without persisting anything.
	PreviewMatch(companyID, investorID uuid.UUID) (*matching.MatchResult, error)

	// Generation replaces the stored matches for the targeted entities.
	GenerateForCompany(ctx context.Context, companyID uuid.UUID) (*GenerationStats, error)
	GenerateForInvestor(ctx context.Context, investorID uuid.UUID) (*GenerationStats, error)
	GenerateAll(ctx context.Context) (*GenerationStats, error)

	GetPair(companyID, investorID uuid.UUID) (*models.Match, error)
	ListForCompany(companyID uuid.UUID, limit int) ([]models.Match, error)
	ListForInvestor(investorID uuid.UUID, limit int) ([]models.Match, error)
	List(filters repository.MatchFilters) ([]models.Match, error)
	UpdateStatus(id uuid.UUID, status, notes string) error

	GetWeights() (matching.Weights, error)
	UpdateWeights(weights matching.Weights) error
}

// ImportService defines the interface for bulk CSV ingestion
type ImportService interface {
	ImportCompanies(r io.Reader) (*ImportResult, error)
	ImportInvestors(r io.Reader) (*ImportResult, error)
}

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Login(email, password string) (*models.LoginResponse, error)
	Register(req *models.RegisterRequest) (*models.User, error)
}

// NewServices creates a new Services instance with all dependencies
func NewServices(db *sql.DB, cfg *config.Config, log logger.Logger, notifier email.Notifier) *Services {
	repos := repository.NewRepositories(db)

	return &Services{
		Company:  newCompanyService(repos),
		Investor: newInvestorService(repos),
		Matching: newMatchingService(repos, cfg, log, notifier),
		Import:   newImportService(repos, log),
		Auth:     newAuthService(repos, cfg),
	}
}
