package matching

import (
	"math"
	"sort"

	"github.com/google/uuid"

	apperrors "github.com/hrunx/sprintly-mvp/internal/errors"
	"github.com/hrunx/sprintly-mvp/internal/models"
)

// Weights control the relative importance of each factor. Any positive
// total works; the aggregator normalizes against the actual sum.
type Weights struct {
	Sector    float64 `json:"sector"`
	Stage     float64 `json:"stage"`
	Traction  float64 `json:"traction"`
	CheckSize float64 `json:"checkSize"`
	Geography float64 `json:"geography"`
	Thesis    float64 `json:"thesis"`
}

// DefaultWeights returns the standard weight vector.
func DefaultWeights() Weights {
	return Weights{
		Sector:    25,
		Stage:     20,
		Traction:  20,
		CheckSize: 15,
		Geography: 10,
		Thesis:    10,
	}
}

// equalWeights is the fallback for weight vectors with a non-positive total.
func equalWeights() Weights {
	w := 100.0 / 6
	return Weights{Sector: w, Stage: w, Traction: w, CheckSize: w, Geography: w, Thesis: w}
}

// Total returns the sum of all six weights.
func (w Weights) Total() float64 {
	return w.Sector + w.Stage + w.Traction + w.CheckSize + w.Geography + w.Thesis
}

func (w Weights) forKey(key FactorKey) float64 {
	switch key {
	case FactorSector:
		return w.Sector
	case FactorStage:
		return w.Stage
	case FactorTraction:
		return w.Traction
	case FactorCheckSize:
		return w.CheckSize
	case FactorGeography:
		return w.Geography
	case FactorThesis:
		return w.Thesis
	}
	return 0
}

// MatchResult is the outcome of scoring one company/investor pair. It is
// computed fresh per pair and never mutated afterwards; persistence is the
// caller's concern.
type MatchResult struct {
	CompanyID    uuid.UUID      `json:"company_id"`
	InvestorID   uuid.UUID      `json:"investor_id"`
	OverallScore int            `json:"overall_score"`
	Breakdown    []FactorResult `json:"breakdown"`
	Reasons      []string       `json:"reasons"`
	Explanation  string         `json:"explanation"`
}

// ComputeMatch scores a company/investor pair with the given weights.
//
// Contribution is rounded per factor while the overall score is rounded
// once over the weighted sum; the two may disagree by a point and both are
// kept as computed for reproducibility. A weight vector with non-positive
// total falls back to equal weighting. Nil records are a programming error
// and fail fast with an InvalidInput error; missing fields inside a record
// are valid domain data and degrade inside the individual scorers.
func ComputeMatch(company *models.Company, investor *models.Investor, weights Weights) (*MatchResult, error) {
	if company == nil {
		return nil, apperrors.InvalidInput("company record is required", nil)
	}
	if investor == nil {
		return nil, apperrors.InvalidInput("investor record is required", nil)
	}

	if weights.Total() <= 0 {
		weights = equalWeights()
	}
	totalWeight := weights.Total()

	breakdown := make([]FactorResult, 0, len(factorScorers))
	var weightedSum float64
	var reasons []string

	for _, score := range factorScorers {
		factor := score(company, investor)
		factor.Weight = weights.forKey(factor.Key)
		factor.Contribution = int(math.Round(float64(factor.Score) * factor.Weight / totalWeight))
		weightedSum += float64(factor.Score) * factor.Weight
		breakdown = append(breakdown, factor)

		if factor.Score >= 70 {
			reasons = append(reasons, factor.Reason)
		}
	}

	overall := int(math.Round(weightedSum / totalWeight))
	if overall > 100 {
		overall = 100
	}

	return &MatchResult{
		CompanyID:    company.ID,
		InvestorID:   investor.ID,
		OverallScore: overall,
		Breakdown:    breakdown,
		Reasons:      reasons,
		Explanation:  buildExplanation(company, investor, breakdown, overall),
	}, nil
}

// RankInvestorsForCompany scores every investor in the pool against the
// company, drops results below minScore and sorts descending by score.
// Ties keep pool order. Result-count capping is the caller's concern.
func RankInvestorsForCompany(company *models.Company, investors []models.Investor, weights Weights, minScore int) ([]MatchResult, error) {
	if company == nil {
		return nil, apperrors.InvalidInput("company record is required", nil)
	}

	results := make([]MatchResult, 0, len(investors))
	for i := range investors {
		if investors[i].ID == uuid.Nil {
			continue
		}
		match, err := ComputeMatch(company, &investors[i], weights)
		if err != nil {
			return nil, err
		}
		if match.OverallScore >= minScore {
			results = append(results, *match)
		}
	}

	sortByScoreDesc(results)
	return results, nil
}

// RankCompaniesForInvestor is the mirror of RankInvestorsForCompany.
func RankCompaniesForInvestor(investor *models.Investor, companies []models.Company, weights Weights, minScore int) ([]MatchResult, error) {
	if investor == nil {
		return nil, apperrors.InvalidInput("investor record is required", nil)
	}

	results := make([]MatchResult, 0, len(companies))
	for i := range companies {
		if companies[i].ID == uuid.Nil {
			continue
		}
		match, err := ComputeMatch(&companies[i], investor, weights)
		if err != nil {
			return nil, err
		}
		if match.OverallScore >= minScore {
			results = append(results, *match)
		}
	}

	sortByScoreDesc(results)
	return results, nil
}

func sortByScoreDesc(results []MatchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].OverallScore > results[j].OverallScore
	})
}

// FactorScore extracts one factor's score from a breakdown; 0 if absent.
func FactorScore(breakdown []FactorResult, key FactorKey) int {
	for _, factor := range breakdown {
		if factor.Key == key {
			return factor.Score
		}
	}
	return 0
}
