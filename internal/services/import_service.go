package services

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	apperrors "github.com/hrunx/sprintly-mvp/internal/errors"
	"github.com/hrunx/sprintly-mvp/internal/logger"
	"github.com/hrunx/sprintly-mvp/internal/models"
	"github.com/hrunx/sprintly-mvp/internal/repository"
)

// ImportResult summarizes one CSV import run
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// stageNormalizationMap maps raw stage spellings to canonical labels
var stageNormalizationMap = map[string]string{
	"pre seed":   "Pre-seed",
	"pre-seed":   "Pre-seed",
	"preseed":    "Pre-seed",
	"seed":       "Seed",
	"series a":   "Series A",
	"series b":   "Series B",
	"series c":   "Series C",
	"growth":     "Growth",
	"late stage": "Late Stage",
}

// sectorNormalizationMap maps raw sector spellings to canonical labels
var sectorNormalizationMap = map[string]string{
	"ai":          "AI",
	"ai/ml":       "AI/ML",
	"a i":         "AI",
	"fintech":     "Fintech",
	"healthtech":  "Healthtech",
	"health tech": "Healthtech",
	"climatetech": "ClimateTech",
}

var nonNumericRe = regexp.MustCompile(`[^0-9.\-]`)

// importService implements ImportService
type importService struct {
	repos *repository.Repositories
	log   logger.Logger
}

func newImportService(repos *repository.Repositories, log logger.Logger) ImportService {
	return &importService{repos: repos, log: log}
}

// ImportCompanies ingests a company CSV. Rows without a name are skipped;
// other row-level failures are collected rather than aborting the run.
func (s *importService) ImportCompanies(r io.Reader) (*ImportResult, error) {
	rows, err := readCSV(r)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for i, row := range rows {
		company := companyFromRow(row)
		if company.Name == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: missing name", i+2))
			continue
		}

		if err := s.repos.Company.Create(company); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+2, err))
			continue
		}
		result.Imported++
	}

	s.log.Info("company import completed", "imported", result.Imported, "skipped", result.Skipped)
	return result, nil
}

// ImportInvestors ingests an investor CSV
func (s *importService) ImportInvestors(r io.Reader) (*ImportResult, error) {
	rows, err := readCSV(r)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for i, row := range rows {
		investor := investorFromRow(row)
		if investor.Name == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: missing name", i+2))
			continue
		}

		if err := s.repos.Investor.Create(investor); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+2, err))
			continue
		}
		result.Imported++
	}

	s.log.Info("investor import completed", "imported", result.Imported, "skipped", result.Skipped)
	return result, nil
}

// readCSV parses the input into header-keyed rows. Header names are matched
// case-insensitively with spaces and underscores stripped.
func readCSV(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.InvalidInput("failed to parse CSV", err)
	}
	if len(records) < 2 {
		return nil, apperrors.InvalidInput("CSV must contain a header row and at least one data row", nil)
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = normalizeHeader(h)
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(headers))
		for i, value := range record {
			if i < len(headers) {
				row[headers[i]] = strings.TrimSpace(value)
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func normalizeHeader(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	h = strings.ReplaceAll(h, " ", "")
	h = strings.ReplaceAll(h, "_", "")
	return h
}

// pick returns the first non-empty value among the given keys
func pick(row map[string]string, keys ...string) string {
	for _, key := range keys {
		if value := row[key]; value != "" {
			return value
		}
	}
	return ""
}

// parseCurrency strips currency symbols and separators and rounds to a whole
// amount. Returns nil when nothing numeric remains.
func parseCurrency(value string) *int64 {
	digits := nonNumericRe.ReplaceAllString(value, "")
	if digits == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(digits, 64)
	if err != nil || math.IsInf(parsed, 0) {
		return nil
	}
	rounded := int64(math.Round(parsed))
	return &rounded
}

// parsePercentage strips non-numeric characters and keeps the fraction
func parsePercentage(value string) *float64 {
	numeric := nonNumericRe.ReplaceAllString(value, "")
	if numeric == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(numeric, 64)
	if err != nil || math.IsInf(parsed, 0) {
		return nil
	}
	return &parsed
}

func parseInt64Field(value string) *int64 {
	digits := nonNumericRe.ReplaceAllString(value, "")
	if digits == "" {
		return nil
	}
	parsed, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return nil
	}
	return &parsed
}

// splitList splits a comma or semicolon separated value
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ';'
	})
	var items []string
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

func capitalizeWords(value string) string {
	words := strings.Split(value, " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

// normalizeStage maps known spellings to canonical stage labels and
// title-cases anything unrecognized.
func normalizeStage(value string) string {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return ""
	}
	if canonical, ok := stageNormalizationMap[trimmed]; ok {
		return canonical
	}
	return capitalizeWords(trimmed)
}

func normalizeSector(value string) string {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return ""
	}
	if canonical, ok := sectorNormalizationMap[trimmed]; ok {
		return canonical
	}
	return capitalizeWords(trimmed)
}

func normalizeGeography(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	parts := strings.Split(trimmed, ",")
	for i, part := range parts {
		parts[i] = capitalizeWords(strings.ToLower(strings.TrimSpace(part)))
	}
	return strings.Join(parts, ", ")
}

func companyFromRow(row map[string]string) *models.Company {
	sectors := splitList(pick(row, "focussectors", "sectors", "sector", "industry"))
	sector := ""
	if len(sectors) > 0 {
		sector = sectors[0]
	}

	tags := ""
	if len(sectors) > 0 {
		if encoded, err := json.Marshal(map[string][]string{"sectors": sectors}); err == nil {
			tags = string(encoded)
		}
	}

	businessModel := pick(row, "businessmodel")
	if businessModel == "" {
		businessModel = "B2B SaaS"
	}

	confidence := 85
	if parsed := parseInt64Field(row["confidence"]); parsed != nil && *parsed > 0 {
		confidence = int(*parsed)
	}

	return &models.Company{
		Name:          pick(row, "name", "companyname", "company"),
		Description:   row["description"],
		Sector:        normalizeSector(sector),
		SubSector:     row["subsector"],
		Stage:         normalizeStage(pick(row, "stage", "fundingstage")),
		Geography:     normalizeGeography(pick(row, "geography", "location")),
		BusinessModel: businessModel,
		TargetMarket:  row["targetmarket"],
		FundingTarget: parseCurrency(row["fundingtarget"]),
		FundingRaised: parseCurrency(row["fundingraised"]),
		Revenue:       parseCurrency(row["revenue"]),
		RevenueGrowth: parsePercentage(row["revenuegrowth"]),
		Customers:     parseInt64Field(row["customers"]),
		MRR:           parseCurrency(row["mrr"]),
		WebsiteURL:    pick(row, "website", "websiteurl"),
		FounderName:   row["foundername"],
		FounderEmail:  row["founderemail"],
		Tags:          tags,
		Confidence:    confidence,
	}
}

func investorFromRow(row map[string]string) *models.Investor {
	focusSectors := splitList(pick(row, "focussectors", "sectors", "sector"))
	focusStages := splitList(pick(row, "focusstages", "stages", "stage"))
	focusGeographies := splitList(pick(row, "focusgeographies", "geographies", "geography"))

	sector := ""
	if len(focusSectors) > 0 {
		sector = focusSectors[0]
	}
	stage := ""
	if len(focusStages) > 0 {
		stage = focusStages[0]
	}
	geography := ""
	if len(focusGeographies) > 0 {
		geography = focusGeographies[0]
	}

	tags := ""
	if encoded, err := json.Marshal(map[string][]string{
		"focusSectors":     focusSectors,
		"focusStages":      focusStages,
		"focusGeographies": focusGeographies,
	}); err == nil {
		tags = string(encoded)
	}

	investorType := row["type"]
	if investorType == "" {
		investorType = "VC"
	}

	confidence := 85
	if parsed := parseInt64Field(row["confidence"]); parsed != nil && *parsed > 0 {
		confidence = int(*parsed)
	}

	return &models.Investor{
		Name:         pick(row, "name", "investorname"),
		Type:         investorType,
		Firm:         pick(row, "firm", "company"),
		Title:        row["title"],
		Bio:          row["bio"],
		Sector:       normalizeSector(sector),
		SubSector:    row["subsector"],
		Stage:        normalizeStage(stage),
		Geography:    normalizeGeography(geography),
		CheckSizeMin: parseCurrency(row["checksizemin"]),
		CheckSizeMax: parseCurrency(row["checksizemax"]),
		Thesis:       pick(row, "thesis", "investmentthesis"),
		Email:        row["email"],
		WebsiteURL:   pick(row, "website", "websiteurl"),
		Tags:         tags,
		Confidence:   confidence,
	}
}
