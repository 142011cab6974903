package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrunx/sprintly-mvp/internal/logger"
	"github.com/hrunx/sprintly-mvp/internal/matching"
	"github.com/hrunx/sprintly-mvp/internal/models"
	"github.com/hrunx/sprintly-mvp/internal/repository"
	"github.com/hrunx/sprintly-mvp/pkg/config"
)

func int64Ptr(v int64) *int64       { return &v }
func float64Ptr(v float64) *float64 { return &v }

func testConfig() *config.Config {
	return &config.Config{
		MinMatchScore:       40,
		MaxMatchesPerEntity: 25,
		MatchWorkers:        2,
		NotifyThreshold:     80,
	}
}

func seedCompany(t *testing.T, repos *repository.Repositories) *models.Company {
	t.Helper()
	company := &models.Company{
		Name:          "Acme AI",
		Sector:        "AI/ML",
		Stage:         "Series A",
		Geography:     "United States",
		FundingTarget: int64Ptr(5_000_000),
		Revenue:       int64Ptr(3_000_000),
		RevenueGrowth: float64Ptr(100),
		Customers:     int64Ptr(1000),
	}
	require.NoError(t, repos.Company.Create(company))
	return company
}

func seedAlignedInvestor(t *testing.T, repos *repository.Repositories) *models.Investor {
	t.Helper()
	investor := &models.Investor{
		Name:         "Jane Doe",
		Firm:         "Visionary Capital",
		Email:        "jane@visionary.vc",
		Sector:       "AI/ML",
		Stage:        "Series A",
		Geography:    "United States",
		CheckSizeMin: int64Ptr(3_000_000),
		CheckSizeMax: int64Ptr(7_000_000),
	}
	require.NoError(t, repos.Investor.Create(investor))
	return investor
}

func seedMismatchedInvestor(t *testing.T, repos *repository.Repositories) *models.Investor {
	t.Helper()
	investor := &models.Investor{
		Name:      "Far Afield Partners",
		Sector:    "Logistics",
		Stage:     "Growth",
		Geography: "Asia",
	}
	require.NoError(t, repos.Investor.Create(investor))
	return investor
}

func newTestMatchingService(repos *repository.Repositories, cfg *config.Config, notifier *fakeNotifier) MatchingService {
	return newMatchingService(repos, cfg, logger.NewNop(), notifier)
}

func TestGenerateForCompanyStoresQualifyingMatches(t *testing.T) {
	repos := newFakeRepositories()
	notifier := &fakeNotifier{}
	svc := newTestMatchingService(repos, testConfig(), notifier)

	company := seedCompany(t, repos)
	aligned := seedAlignedInvestor(t, repos)
	seedMismatchedInvestor(t, repos)

	stats, err := svc.GenerateForCompany(context.Background(), company.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.EntitiesProcessed)
	assert.Equal(t, 2, stats.PairsScored)
	assert.Equal(t, 1, stats.MatchesStored)
	assert.Equal(t, 0, stats.Failed)

	match, err := repos.Match.GetByPair(company.ID, aligned.ID)
	require.NoError(t, err)
	assert.Equal(t, 85, match.Score)
	assert.Equal(t, 100, match.SectorScore)
	assert.Equal(t, 100, match.StageScore)
	assert.Equal(t, 50, match.TractionScore)
	assert.Equal(t, 100, match.CheckSizeScore)
	assert.Equal(t, 100, match.GeoScore)
	assert.Equal(t, 45, match.ThesisScore)
	assert.Equal(t, string(models.MatchSuggested), match.Status)
	assert.NotEmpty(t, match.Explanation)
	assert.Contains(t, match.MatchReasons, "Funding needs inside this investor's check size")
}

func TestGenerateForCompanyNotifiesAboveThreshold(t *testing.T) {
	repos := newFakeRepositories()
	notifier := &fakeNotifier{}
	svc := newTestMatchingService(repos, testConfig(), notifier)

	company := seedCompany(t, repos)
	seedAlignedInvestor(t, repos)

	_, err := svc.GenerateForCompany(context.Background(), company.ID)
	require.NoError(t, err)

	require.Equal(t, 1, notifier.sentCount())
	sent := notifier.sent[0]
	assert.Equal(t, "Acme AI", sent.CompanyName)
	assert.Equal(t, "Jane Doe", sent.InvestorName)
	assert.Equal(t, 85, sent.MatchScore)
}

func TestGenerateForCompanyCapsStoredMatches(t *testing.T) {
	repos := newFakeRepositories()
	cfg := testConfig()
	cfg.MaxMatchesPerEntity = 2
	cfg.NotifyThreshold = 101
	svc := newTestMatchingService(repos, cfg, &fakeNotifier{})

	company := seedCompany(t, repos)
	for i := 0; i < 5; i++ {
		seedAlignedInvestor(t, repos)
	}

	stats, err := svc.GenerateForCompany(context.Background(), company.ID)
	require.NoError(t, err)

	assert.Equal(t, 5, stats.PairsScored)
	assert.Equal(t, 2, stats.MatchesStored)

	matches, err := svc.ListForCompany(company.ID, 0)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestGenerateForCompanyReplacesPreviousMatches(t *testing.T) {
	repos := newFakeRepositories()
	svc := newTestMatchingService(repos, testConfig(), &fakeNotifier{})

	company := seedCompany(t, repos)
	aligned := seedAlignedInvestor(t, repos)

	_, err := svc.GenerateForCompany(context.Background(), company.ID)
	require.NoError(t, err)

	// Remove the only investor and regenerate; stale rows must go away.
	require.NoError(t, repos.Investor.Delete(aligned.ID))
	_, err = svc.GenerateForCompany(context.Background(), company.ID)
	require.NoError(t, err)

	matches, err := svc.ListForCompany(company.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestGenerateForCompanyUnknownCompany(t *testing.T) {
	repos := newFakeRepositories()
	svc := newTestMatchingService(repos, testConfig(), &fakeNotifier{})

	_, err := svc.GenerateForCompany(context.Background(), uuid.New())
	assert.Error(t, err)
}

func TestGenerateForInvestor(t *testing.T) {
	repos := newFakeRepositories()
	svc := newTestMatchingService(repos, testConfig(), &fakeNotifier{})

	company := seedCompany(t, repos)
	investor := seedAlignedInvestor(t, repos)

	stats, err := svc.GenerateForInvestor(context.Background(), investor.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.MatchesStored)

	matches, err := svc.ListForInvestor(investor.ID, 0)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, company.ID, matches[0].CompanyID)
}

func TestGenerateAllProcessesEveryCompany(t *testing.T) {
	repos := newFakeRepositories()
	notifier := &fakeNotifier{}
	svc := newTestMatchingService(repos, testConfig(), notifier)

	first := seedCompany(t, repos)
	second := seedCompany(t, repos)
	seedAlignedInvestor(t, repos)
	seedMismatchedInvestor(t, repos)

	stats, err := svc.GenerateAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.EntitiesProcessed)
	assert.Equal(t, 4, stats.PairsScored)
	assert.Equal(t, 2, stats.MatchesStored)
	assert.Equal(t, 2, notifier.sentCount())

	for _, companyID := range []uuid.UUID{first.ID, second.ID} {
		matches, err := svc.ListForCompany(companyID, 0)
		require.NoError(t, err)
		assert.Len(t, matches, 1)
	}
}

func TestPreviewMatchDoesNotPersist(t *testing.T) {
	repos := newFakeRepositories()
	svc := newTestMatchingService(repos, testConfig(), &fakeNotifier{})

	company := seedCompany(t, repos)
	investor := seedAlignedInvestor(t, repos)

	result, err := svc.PreviewMatch(company.ID, investor.ID)
	require.NoError(t, err)
	assert.Equal(t, 85, result.OverallScore)

	assert.Equal(t, 0, repos.Match.(*fakeMatchRepo).count())
}

func TestGetPair(t *testing.T) {
	repos := newFakeRepositories()
	svc := newTestMatchingService(repos, testConfig(), &fakeNotifier{})

	company := seedCompany(t, repos)
	investor := seedAlignedInvestor(t, repos)

	_, err := svc.GetPair(company.ID, investor.ID)
	assert.Error(t, err)

	_, err = svc.GenerateForCompany(context.Background(), company.ID)
	require.NoError(t, err)

	match, err := svc.GetPair(company.ID, investor.ID)
	require.NoError(t, err)
	assert.Equal(t, 85, match.Score)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	repos := newFakeRepositories()
	svc := newTestMatchingService(repos, testConfig(), &fakeNotifier{})

	err := svc.UpdateStatus(uuid.New(), "archived", "")
	assert.Error(t, err)
}

func TestUpdateStatusMovesMatchThroughPipeline(t *testing.T) {
	repos := newFakeRepositories()
	svc := newTestMatchingService(repos, testConfig(), &fakeNotifier{})

	company := seedCompany(t, repos)
	investor := seedAlignedInvestor(t, repos)

	_, err := svc.GenerateForCompany(context.Background(), company.ID)
	require.NoError(t, err)

	match, err := repos.Match.GetByPair(company.ID, investor.ID)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(match.ID, string(models.MatchContacted), "intro sent"))

	updated, err := repos.Match.GetByPair(company.ID, investor.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.MatchContacted), updated.Status)
	assert.Equal(t, "intro sent", updated.Notes)
}

func TestUpdateWeightsValidation(t *testing.T) {
	repos := newFakeRepositories()
	svc := newTestMatchingService(repos, testConfig(), &fakeNotifier{})

	assert.Error(t, svc.UpdateWeights(matching.Weights{Sector: -1}))
	assert.Error(t, svc.UpdateWeights(matching.Weights{}))

	custom := matching.Weights{Sector: 50, Stage: 10, Traction: 10, CheckSize: 10, Geography: 10, Thesis: 10}
	require.NoError(t, svc.UpdateWeights(custom))

	stored, err := svc.GetWeights()
	require.NoError(t, err)
	assert.Equal(t, custom, stored)
}
