package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrunx/sprintly-mvp/internal/logger"
	"github.com/hrunx/sprintly-mvp/internal/repository"
)

func TestImportCompanies(t *testing.T) {
	repos := newFakeRepositories()
	svc := newImportService(repos, logger.NewNop())

	csvData := strings.Join([]string{
		`name,sector,stage,geography,funding_target,revenue,revenue_growth,customers,founder_email`,
		`"Acme AI","ai/ml","series a","san francisco, usa","$5,000,000","$1,200,000",120%,450,founder@acme.ai`,
		`,fintech,seed,Europe,1000000,,,,`,
		`Beta Health,healthtech,pre seed,Germany,"€500,000",,,,`,
	}, "\n")

	result, err := svc.ImportCompanies(strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "missing name")

	companies, err := repos.Company.GetAll(repository.EntityFilters{})
	require.NoError(t, err)
	require.Len(t, companies, 2)

	acme := companies[0]
	assert.Equal(t, "Acme AI", acme.Name)
	assert.Equal(t, "AI/ML", acme.Sector)
	assert.Equal(t, "Series A", acme.Stage)
	assert.Equal(t, "San Francisco, Usa", acme.Geography)
	require.NotNil(t, acme.FundingTarget)
	assert.Equal(t, int64(5_000_000), *acme.FundingTarget)
	require.NotNil(t, acme.Revenue)
	assert.Equal(t, int64(1_200_000), *acme.Revenue)
	require.NotNil(t, acme.RevenueGrowth)
	assert.Equal(t, 120.0, *acme.RevenueGrowth)
	require.NotNil(t, acme.Customers)
	assert.Equal(t, int64(450), *acme.Customers)
	assert.Equal(t, "founder@acme.ai", acme.FounderEmail)
	assert.Equal(t, "B2B SaaS", acme.BusinessModel)
	assert.Equal(t, 85, acme.Confidence)

	beta := companies[1]
	assert.Equal(t, "Healthtech", beta.Sector)
	assert.Equal(t, "Pre-seed", beta.Stage)
	require.NotNil(t, beta.FundingTarget)
	assert.Equal(t, int64(500_000), *beta.FundingTarget)
}

func TestImportCompaniesSynthesizesSectorTags(t *testing.T) {
	repos := newFakeRepositories()
	svc := newImportService(repos, logger.NewNop())

	csvData := "name,focus_sectors\nAcme,\"AI; Fintech\"\n"

	_, err := svc.ImportCompanies(strings.NewReader(csvData))
	require.NoError(t, err)

	companies, err := repos.Company.GetAll(repository.EntityFilters{})
	require.NoError(t, err)
	require.Len(t, companies, 1)

	assert.Equal(t, "AI", companies[0].Sector)
	assert.JSONEq(t, `{"sectors":["AI","Fintech"]}`, companies[0].Tags)
}

func TestImportInvestors(t *testing.T) {
	repos := newFakeRepositories()
	svc := newImportService(repos, logger.NewNop())

	csvData := strings.Join([]string{
		`name,firm,type,focus_sectors,focus_stages,focus_geographies,check_size_min,check_size_max,thesis,email`,
		`Jane Doe,Visionary Capital,VC,"ai/ml; SaaS","Seed, Series A","USA, Europe","$500,000","$2,000,000",AI-first B2B software,jane@visionary.vc`,
		`Angel One,,,"fintech",,,,,,`,
	}, "\n")

	result, err := svc.ImportInvestors(strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, result.Skipped)

	investors, err := repos.Investor.GetAll(repository.EntityFilters{})
	require.NoError(t, err)
	require.Len(t, investors, 2)

	angel := investors[0]
	assert.Equal(t, "Angel One", angel.Name)
	assert.Equal(t, "VC", angel.Type)
	assert.Equal(t, "Fintech", angel.Sector)
	assert.Nil(t, angel.CheckSizeMin)

	jane := investors[1]
	assert.Equal(t, "Visionary Capital", jane.Firm)
	assert.Equal(t, "AI/ML", jane.Sector)
	assert.Equal(t, "Seed", jane.Stage)
	assert.Equal(t, "Usa", jane.Geography)
	require.NotNil(t, jane.CheckSizeMin)
	assert.Equal(t, int64(500_000), *jane.CheckSizeMin)
	require.NotNil(t, jane.CheckSizeMax)
	assert.Equal(t, int64(2_000_000), *jane.CheckSizeMax)
	assert.Equal(t, "AI-first B2B software", jane.Thesis)

	assert.Contains(t, jane.Tags, `"focusSectors":["ai/ml","SaaS"]`)
	assert.Contains(t, jane.Tags, `"focusStages":["Seed","Series A"]`)
}

func TestImportRejectsHeaderOnlyFile(t *testing.T) {
	svc := newImportService(newFakeRepositories(), logger.NewNop())

	_, err := svc.ImportCompanies(strings.NewReader("name,sector\n"))
	assert.Error(t, err)
}

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		input string
		want  *int64
	}{
		{"$5,000,000", int64Ptr(5_000_000)},
		{"1.5", int64Ptr(2)},
		{"€500,000", int64Ptr(500_000)},
		{"", nil},
		{"n/a", nil},
	}

	for _, tt := range tests {
		got := parseCurrency(tt.input)
		if tt.want == nil {
			assert.Nil(t, got, "input %q", tt.input)
		} else {
			require.NotNil(t, got, "input %q", tt.input)
			assert.Equal(t, *tt.want, *got, "input %q", tt.input)
		}
	}
}

func TestParsePercentage(t *testing.T) {
	got := parsePercentage("120%")
	require.NotNil(t, got)
	assert.Equal(t, 120.0, *got)

	assert.Nil(t, parsePercentage(""))
	assert.Nil(t, parsePercentage("unknown"))
}

func TestNormalizeStage(t *testing.T) {
	assert.Equal(t, "Pre-seed", normalizeStage("pre seed"))
	assert.Equal(t, "Pre-seed", normalizeStage("PRESEED"))
	assert.Equal(t, "Series A", normalizeStage("series a"))
	assert.Equal(t, "Bridge Round", normalizeStage("bridge round"))
	assert.Equal(t, "", normalizeStage("  "))
}

func TestNormalizeSector(t *testing.T) {
	assert.Equal(t, "AI/ML", normalizeSector("ai/ml"))
	assert.Equal(t, "Healthtech", normalizeSector("health tech"))
	assert.Equal(t, "Quantum Computing", normalizeSector("quantum computing"))
}

func TestNormalizeGeography(t *testing.T) {
	assert.Equal(t, "San Francisco, Usa", normalizeGeography("san francisco,usa"))
	assert.Equal(t, "Europe", normalizeGeography("  EUROPE "))
	assert.Equal(t, "", normalizeGeography(""))
}
