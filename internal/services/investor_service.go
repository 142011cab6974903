package services

import (
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/hrunx/sprintly-mvp/internal/errors"
	"github.com/hrunx/sprintly-mvp/internal/models"
	"github.com/hrunx/sprintly-mvp/internal/repository"
)

// investorService implements InvestorService
type investorService struct {
	repos *repository.Repositories
}

func newInvestorService(repos *repository.Repositories) InvestorService {
	return &investorService{repos: repos}
}

func (s *investorService) GetByID(id uuid.UUID) (*models.Investor, error) {
	investor, err := s.repos.Investor.GetByID(id)
	if err != nil {
		return nil, apperrors.NotFound("investor not found", err)
	}
	return investor, nil
}

func (s *investorService) GetAll(filters repository.EntityFilters) ([]models.Investor, error) {
	investors, err := s.repos.Investor.GetAll(filters)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to list investors", err)
	}
	return investors, nil
}

func (s *investorService) Create(investor *models.Investor) error {
	if strings.TrimSpace(investor.Name) == "" {
		return apperrors.InvalidInput("investor name is required", nil)
	}
	if investor.Type == "" {
		investor.Type = "VC"
	}
	if investor.Confidence <= 0 {
		investor.Confidence = 85
	}

	if err := s.repos.Investor.Create(investor); err != nil {
		return apperrors.DatabaseError("failed to create investor", err)
	}
	return nil
}

func (s *investorService) Update(investor *models.Investor) error {
	if investor.ID == uuid.Nil {
		return apperrors.InvalidInput("investor id is required", nil)
	}
	if strings.TrimSpace(investor.Name) == "" {
		return apperrors.InvalidInput("investor name is required", nil)
	}

	if err := s.repos.Investor.Update(investor); err != nil {
		return apperrors.DatabaseError("failed to update investor", err)
	}
	return nil
}

// Delete removes the investor and its stored matches
func (s *investorService) Delete(id uuid.UUID) error {
	err := s.repos.Tx.WithTransaction(func(repos *repository.Repositories) error {
		if err := repos.Match.DeleteByInvestor(id); err != nil {
			return err
		}
		return repos.Investor.Delete(id)
	})
	if err != nil {
		return apperrors.DatabaseError("failed to delete investor", err)
	}
	return nil
}
