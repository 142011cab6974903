package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hrunx/sprintly-mvp/internal/email"
	apperrors "github.com/hrunx/sprintly-mvp/internal/errors"
	"github.com/hrunx/sprintly-mvp/internal/logger"
	"github.com/hrunx/sprintly-mvp/internal/matching"
	"github.com/hrunx/sprintly-mvp/internal/models"
	"github.com/hrunx/sprintly-mvp/internal/repository"
	"github.com/hrunx/sprintly-mvp/pkg/config"
)

// GenerationStats summarizes one match generation run
type GenerationStats struct {
	StartTime         time.Time     `json:"start_time"`
	Duration          time.Duration `json:"duration"`
	EntitiesProcessed int           `json:"entities_processed"`
	PairsScored       int           `json:"pairs_scored"`
	MatchesStored     int           `json:"matches_stored"`
	NotificationsSent int           `json:"notifications_sent"`
	Failed            int           `json:"failed"`
}

// matchingService implements MatchingService
type matchingService struct {
	repos    *repository.Repositories
	cfg      *config.Config
	log      logger.Logger
	notifier email.Notifier
}

func newMatchingService(repos *repository.Repositories, cfg *config.Config, log logger.Logger, notifier email.Notifier) MatchingService {
	return &matchingService{repos: repos, cfg: cfg, log: log, notifier: notifier}
}

// PreviewMatch scores a single pair with the stored weights, without
// persisting the result.
func (s *matchingService) PreviewMatch(companyID, investorID uuid.UUID) (*matching.MatchResult, error) {
	company, err := s.repos.Company.GetByID(companyID)
	if err != nil {
		return nil, apperrors.NotFound("company not found", err)
	}
	investor, err := s.repos.Investor.GetByID(investorID)
	if err != nil {
		return nil, apperrors.NotFound("investor not found", err)
	}

	weights, err := s.repos.Weights.Get()
	if err != nil {
		return nil, apperrors.DatabaseError("failed to load weights", err)
	}

	return matching.ComputeMatch(company, investor, weights)
}

// GenerateForCompany regenerates the stored matches for one company
func (s *matchingService) GenerateForCompany(ctx context.Context, companyID uuid.UUID) (*GenerationStats, error) {
	company, err := s.repos.Company.GetByID(companyID)
	if err != nil {
		return nil, apperrors.NotFound("company not found", err)
	}

	investors, err := s.repos.Investor.GetAll(repository.EntityFilters{})
	if err != nil {
		return nil, apperrors.DatabaseError("failed to list investors", err)
	}

	weights, err := s.repos.Weights.Get()
	if err != nil {
		return nil, apperrors.DatabaseError("failed to load weights", err)
	}

	stats := &GenerationStats{StartTime: time.Now()}
	if err := s.regenerateCompany(ctx, company, investors, weights, stats); err != nil {
		return nil, err
	}
	stats.EntitiesProcessed = 1
	stats.Duration = time.Since(stats.StartTime)

	return stats, nil
}

// GenerateForInvestor regenerates the stored matches for one investor
func (s *matchingService) GenerateForInvestor(ctx context.Context, investorID uuid.UUID) (*GenerationStats, error) {
	investor, err := s.repos.Investor.GetByID(investorID)
	if err != nil {
		return nil, apperrors.NotFound("investor not found", err)
	}

	companies, err := s.repos.Company.GetAll(repository.EntityFilters{})
	if err != nil {
		return nil, apperrors.DatabaseError("failed to list companies", err)
	}

	weights, err := s.repos.Weights.Get()
	if err != nil {
		return nil, apperrors.DatabaseError("failed to load weights", err)
	}

	stats := &GenerationStats{StartTime: time.Now()}

	results, err := matching.RankCompaniesForInvestor(investor, companies, weights, s.cfg.MinMatchScore)
	if err != nil {
		return nil, err
	}
	stats.PairsScored = len(companies)

	if len(results) > s.cfg.MaxMatchesPerEntity {
		results = results[:s.cfg.MaxMatchesPerEntity]
	}

	if err := s.repos.Match.DeleteByInvestor(investorID); err != nil {
		return nil, apperrors.DatabaseError("failed to clear previous matches", err)
	}

	companyByID := make(map[uuid.UUID]*models.Company, len(companies))
	for i := range companies {
		companyByID[companies[i].ID] = &companies[i]
	}

	for i := range results {
		if err := s.storeResult(ctx, &results[i], companyByID[results[i].CompanyID], investor, stats); err != nil {
			s.log.Error("failed to store match", err, "company_id", results[i].CompanyID, "investor_id", investorID)
			stats.Failed++
		}
	}

	stats.EntitiesProcessed = 1
	stats.Duration = time.Since(stats.StartTime)
	return stats, nil
}

// GenerateAll regenerates matches for every company using a bounded worker
// pool.
func (s *matchingService) GenerateAll(ctx context.Context) (*GenerationStats, error) {
	companies, err := s.repos.Company.GetAll(repository.EntityFilters{})
	if err != nil {
		return nil, apperrors.DatabaseError("failed to list companies", err)
	}

	investors, err := s.repos.Investor.GetAll(repository.EntityFilters{})
	if err != nil {
		return nil, apperrors.DatabaseError("failed to list investors", err)
	}

	weights, err := s.repos.Weights.Get()
	if err != nil {
		return nil, apperrors.DatabaseError("failed to load weights", err)
	}

	stats := &GenerationStats{StartTime: time.Now()}

	workers := s.cfg.MatchWorkers
	if workers < 1 {
		workers = 1
	}
	semaphore := make(chan struct{}, workers)

	var wg sync.WaitGroup
	var mu sync.Mutex

	for i := range companies {
		company := &companies[i]

		wg.Add(1)
		go func() {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			local := &GenerationStats{}
			err := s.regenerateCompany(ctx, company, investors, weights, local)

			mu.Lock()
			defer mu.Unlock()
			stats.EntitiesProcessed++
			stats.PairsScored += local.PairsScored
			stats.MatchesStored += local.MatchesStored
			stats.NotificationsSent += local.NotificationsSent
			stats.Failed += local.Failed
			if err != nil {
				stats.Failed++
				s.log.Error("failed to generate matches for company", err, "company_id", company.ID)
			}
		}()
	}

	wg.Wait()
	stats.Duration = time.Since(stats.StartTime)

	s.log.Info("match generation completed",
		"companies", stats.EntitiesProcessed,
		"pairs_scored", stats.PairsScored,
		"matches_stored", stats.MatchesStored,
		"notifications", stats.NotificationsSent,
		"failed", stats.Failed,
		"duration", stats.Duration.String(),
	)

	return stats, nil
}

// regenerateCompany ranks the investor pool for one company and replaces its
// stored matches.
func (s *matchingService) regenerateCompany(ctx context.Context, company *models.Company, investors []models.Investor, weights matching.Weights, stats *GenerationStats) error {
	results, err := matching.RankInvestorsForCompany(company, investors, weights, s.cfg.MinMatchScore)
	if err != nil {
		return err
	}
	stats.PairsScored += len(investors)

	if len(results) > s.cfg.MaxMatchesPerEntity {
		results = results[:s.cfg.MaxMatchesPerEntity]
	}

	if err := s.repos.Match.DeleteByCompany(company.ID); err != nil {
		return apperrors.DatabaseError("failed to clear previous matches", err)
	}

	investorByID := make(map[uuid.UUID]*models.Investor, len(investors))
	for i := range investors {
		investorByID[investors[i].ID] = &investors[i]
	}

	for i := range results {
		if err := s.storeResult(ctx, &results[i], company, investorByID[results[i].InvestorID], stats); err != nil {
			s.log.Error("failed to store match", err, "company_id", company.ID, "investor_id", results[i].InvestorID)
			stats.Failed++
		}
	}

	return nil
}

// storeResult persists one match result and fires a notification when the
// score clears the configured threshold.
func (s *matchingService) storeResult(ctx context.Context, result *matching.MatchResult, company *models.Company, investor *models.Investor, stats *GenerationStats) error {
	reasons, err := json.Marshal(result.Reasons)
	if err != nil {
		return apperrors.InternalError("failed to encode match reasons", err)
	}

	match := &models.Match{
		CompanyID:      result.CompanyID,
		InvestorID:     result.InvestorID,
		Score:          result.OverallScore,
		SectorScore:    matching.FactorScore(result.Breakdown, matching.FactorSector),
		StageScore:     matching.FactorScore(result.Breakdown, matching.FactorStage),
		TractionScore:  matching.FactorScore(result.Breakdown, matching.FactorTraction),
		CheckSizeScore: matching.FactorScore(result.Breakdown, matching.FactorCheckSize),
		GeoScore:       matching.FactorScore(result.Breakdown, matching.FactorGeography),
		ThesisScore:    matching.FactorScore(result.Breakdown, matching.FactorThesis),
		Explanation:    result.Explanation,
		MatchReasons:   string(reasons),
	}

	if err := s.repos.Match.Replace(match); err != nil {
		return apperrors.DatabaseError("failed to store match", err)
	}
	stats.MatchesStored++

	if result.OverallScore >= s.cfg.NotifyThreshold && s.notifier.Enabled() && company != nil && investor != nil {
		notification := email.MatchNotification{
			CompanyName:    company.Name,
			InvestorName:   investor.Name,
			InvestorEmail:  investor.Email,
			MatchScore:     result.OverallScore,
			SectorScore:    match.SectorScore,
			StageScore:     match.StageScore,
			TractionScore:  match.TractionScore,
			CheckSizeScore: match.CheckSizeScore,
			GeoScore:       match.GeoScore,
			ThesisScore:    match.ThesisScore,
			Explanation:    result.Explanation,
		}
		if err := s.notifier.SendMatchNotification(ctx, notification); err != nil {
			s.log.Error("failed to send match notification", err,
				"company", company.Name, "investor", investor.Name)
		} else {
			stats.NotificationsSent++
		}
	}

	return nil
}

// GetPair returns the stored match for one company/investor pair.
func (s *matchingService) GetPair(companyID, investorID uuid.UUID) (*models.Match, error) {
	match, err := s.repos.Match.GetByPair(companyID, investorID)
	if err != nil {
		return nil, apperrors.NotFound("match not found", err)
	}
	return match, nil
}

func (s *matchingService) ListForCompany(companyID uuid.UUID, limit int) ([]models.Match, error) {
	matches, err := s.repos.Match.ListByCompany(companyID, limit)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to list matches", err)
	}
	return matches, nil
}

func (s *matchingService) ListForInvestor(investorID uuid.UUID, limit int) ([]models.Match, error) {
	matches, err := s.repos.Match.ListByInvestor(investorID, limit)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to list matches", err)
	}
	return matches, nil
}

func (s *matchingService) List(filters repository.MatchFilters) ([]models.Match, error) {
	matches, err := s.repos.Match.List(filters)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to list matches", err)
	}
	return matches, nil
}

var validStatuses = map[string]bool{
	string(models.MatchSuggested):        true,
	string(models.MatchContacted):        true,
	string(models.MatchMeetingScheduled): true,
	string(models.MatchPassed):           true,
	string(models.MatchInvested):         true,
}

func (s *matchingService) UpdateStatus(id uuid.UUID, status, notes string) error {
	if !validStatuses[status] {
		return apperrors.InvalidInput("invalid match status", nil).WithDetails(status)
	}
	if err := s.repos.Match.UpdateStatus(id, status, notes); err != nil {
		return apperrors.DatabaseError("failed to update match status", err)
	}
	return nil
}

func (s *matchingService) GetWeights() (matching.Weights, error) {
	weights, err := s.repos.Weights.Get()
	if err != nil {
		return matching.Weights{}, apperrors.DatabaseError("failed to load weights", err)
	}
	return weights, nil
}

func (s *matchingService) UpdateWeights(weights matching.Weights) error {
	for _, w := range []float64{weights.Sector, weights.Stage, weights.Traction, weights.CheckSize, weights.Geography, weights.Thesis} {
		if w < 0 {
			return apperrors.InvalidInput("weights must be non-negative", nil)
		}
	}
	if weights.Total() <= 0 {
		return apperrors.InvalidInput("at least one weight must be positive", nil)
	}

	if err := s.repos.Weights.Save(weights); err != nil {
		return apperrors.DatabaseError("failed to save weights", err)
	}
	return nil
}
