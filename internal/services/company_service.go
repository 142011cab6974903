package services

import (
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/hrunx/sprintly-mvp/internal/errors"
	"github.com/hrunx/sprintly-mvp/internal/models"
	"github.com/hrunx/sprintly-mvp/internal/repository"
)

// companyService implements CompanyService
type companyService struct {
	repos *repository.Repositories
}

func newCompanyService(repos *repository.Repositories) CompanyService {
	return &companyService{repos: repos}
}

func (s *companyService) GetByID(id uuid.UUID) (*models.Company, error) {
	company, err := s.repos.Company.GetByID(id)
	if err != nil {
		return nil, apperrors.NotFound("company not found", err)
	}
	return company, nil
}

func (s *companyService) GetAll(filters repository.EntityFilters) ([]models.Company, error) {
	companies, err := s.repos.Company.GetAll(filters)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to list companies", err)
	}
	return companies, nil
}

func (s *companyService) Create(company *models.Company) error {
	if strings.TrimSpace(company.Name) == "" {
		return apperrors.InvalidInput("company name is required", nil)
	}
	if company.Confidence <= 0 {
		company.Confidence = 85
	}

	if err := s.repos.Company.Create(company); err != nil {
		return apperrors.DatabaseError("failed to create company", err)
	}
	return nil
}

func (s *companyService) Update(company *models.Company) error {
	if company.ID == uuid.Nil {
		return apperrors.InvalidInput("company id is required", nil)
	}
	if strings.TrimSpace(company.Name) == "" {
		return apperrors.InvalidInput("company name is required", nil)
	}

	if err := s.repos.Company.Update(company); err != nil {
		return apperrors.DatabaseError("failed to update company", err)
	}
	return nil
}

// Delete removes the company and its stored matches
func (s *companyService) Delete(id uuid.UUID) error {
	err := s.repos.Tx.WithTransaction(func(repos *repository.Repositories) error {
		if err := repos.Match.DeleteByCompany(id); err != nil {
			return err
		}
		return repos.Company.Delete(id)
	})
	if err != nil {
		return apperrors.DatabaseError("failed to delete company", err)
	}
	return nil
}
