package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hrunx/sprintly-mvp/internal/models"
)

func int64Ptr(v int64) *int64       { return &v }
func float64Ptr(v float64) *float64 { return &v }

func TestScoreSectorIdenticalKeywords(t *testing.T) {
	company := &models.Company{Sector: "AI/ML"}
	investor := &models.Investor{Sector: "AI/ML"}

	result := scoreSector(company, investor)
	assert.Equal(t, 100, result.Score)
	assert.Equal(t, "Excellent keyword alignment", result.Reason)
}

func TestScoreSectorSynonyms(t *testing.T) {
	company := &models.Company{Sector: "AI"}
	investor := &models.Investor{Sector: "Machine Learning"}

	result := scoreSector(company, investor)
	assert.Equal(t, 100, result.Score)
}

func TestScoreSectorMismatch(t *testing.T) {
	company := &models.Company{Sector: "Fintech"}
	investor := &models.Investor{Sector: "Logistics"}

	result := scoreSector(company, investor)
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, "Limited keyword overlap", result.Reason)
}

func TestScoreSectorMissingData(t *testing.T) {
	result := scoreSector(&models.Company{}, &models.Investor{})
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, "No sector data available", result.Reason)

	result = scoreSector(&models.Company{Sector: "AI"}, &models.Investor{})
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, "Incomplete sector data for comparison", result.Reason)
}

func TestScoreStage(t *testing.T) {
	tests := []struct {
		name          string
		companyStage  string
		investorStage string
		wantScore     int
	}{
		{"exact", "Series A", "Series A", 100},
		{"adjacent", "Seed", "Series A", 85},
		{"two apart", "Pre-seed", "Series A", 60},
		{"far", "Seed", "Series C", 25},
		{"case insensitive", "series b", "Series B", 100},
		{"unmapped", "Bridge", "Seed", 55},
		{"missing company", "", "Seed", 0},
		{"missing both", "", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := scoreStage(
				&models.Company{Stage: tt.companyStage},
				&models.Investor{Stage: tt.investorStage},
			)
			assert.Equal(t, tt.wantScore, result.Score)
		})
	}
}

func TestScoreTractionAtStageTarget(t *testing.T) {
	// Revenue, growth and customers all exactly at the Series A benchmark
	// land each component ratio at half its cap.
	company := &models.Company{
		Stage:         "Series A",
		Revenue:       int64Ptr(3_000_000),
		RevenueGrowth: float64Ptr(100),
		Customers:     int64Ptr(1000),
	}

	result := scoreTraction(company, &models.Investor{})
	assert.Equal(t, 50, result.Score)
}

func TestScoreTractionDoubleTarget(t *testing.T) {
	company := &models.Company{
		Stage:         "Series A",
		Revenue:       int64Ptr(6_000_000),
		RevenueGrowth: float64Ptr(200),
		Customers:     int64Ptr(2000),
	}

	result := scoreTraction(company, &models.Investor{})
	assert.Equal(t, 100, result.Score)
}

func TestScoreTractionNoMetrics(t *testing.T) {
	result := scoreTraction(&models.Company{Stage: "Seed"}, &models.Investor{})
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, "Traction below stage benchmarks", result.Reason)
}

func TestScoreTractionUnknownStageUsesDefaultTarget(t *testing.T) {
	// Default benchmark is 500K revenue.
	company := &models.Company{
		Stage:   "Bridge",
		Revenue: int64Ptr(500_000),
	}

	result := scoreTraction(company, &models.Investor{})
	assert.Equal(t, 25, result.Score)
}

func TestScoreCheckSize(t *testing.T) {
	investor := &models.Investor{
		CheckSizeMin: int64Ptr(3_000_000),
		CheckSizeMax: int64Ptr(7_000_000),
	}

	t.Run("inside range", func(t *testing.T) {
		result := scoreCheckSize(&models.Company{FundingTarget: int64Ptr(5_000_000)}, investor)
		assert.Equal(t, 100, result.Score)
		assert.Equal(t, "Funding needs inside this investor's check size", result.Reason)
	})

	t.Run("above range degrades with distance", func(t *testing.T) {
		result := scoreCheckSize(&models.Company{FundingTarget: int64Ptr(30_000_000)}, investor)
		assert.Equal(t, 39, result.Score)
	})

	t.Run("below range", func(t *testing.T) {
		result := scoreCheckSize(&models.Company{FundingTarget: int64Ptr(1_000_000)}, investor)
		assert.Equal(t, 77, result.Score)
	})

	t.Run("target only", func(t *testing.T) {
		result := scoreCheckSize(&models.Company{FundingTarget: int64Ptr(5_000_000)}, &models.Investor{})
		assert.Equal(t, 40, result.Score)
		assert.Equal(t, "Company shared funding needs but investor range unknown", result.Reason)
	})

	t.Run("no data", func(t *testing.T) {
		result := scoreCheckSize(&models.Company{}, investor)
		assert.Equal(t, 0, result.Score)
	})
}

func TestScoreGeography(t *testing.T) {
	tests := []struct {
		name        string
		companyGeo  string
		investorGeo string
		wantScore   int
	}{
		{"exact", "United States", "United States", 100},
		{"exact case insensitive", "united states", "United States", 100},
		{"same macro region", "USA", "Canada", 80},
		{"partial overlap", "United States, Europe", "Europe", 60},
		{"different regions", "United States", "Asia", 30},
		{"missing", "", "Asia", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := scoreGeography(
				&models.Company{Geography: tt.companyGeo},
				&models.Investor{Geography: tt.investorGeo},
			)
			assert.Equal(t, tt.wantScore, result.Score)
		})
	}
}

func TestScoreThesisBaseline(t *testing.T) {
	result := scoreThesis(&models.Company{Description: "AI platform"}, &models.Investor{})
	assert.Equal(t, 45, result.Score)
	assert.Equal(t, "Limited thesis information", result.Reason)
}

func TestScoreThesisOverlap(t *testing.T) {
	company := &models.Company{Description: "AI platform for machine learning workflows"}
	investor := &models.Investor{Thesis: "We invest in AI and machine learning companies"}

	result := scoreThesis(company, investor)
	assert.Equal(t, 56, result.Score)
	assert.Equal(t, "Partial thesis alignment", result.Reason)
}

func TestScoreThesisNoOverlap(t *testing.T) {
	company := &models.Company{Description: "Freight trucking marketplace"}
	investor := &models.Investor{Thesis: "Consumer social apps"}

	result := scoreThesis(company, investor)
	assert.GreaterOrEqual(t, result.Score, 40)
	assert.Less(t, result.Score, 45)
}
