package matching

import (
	"math"
	"strings"

	"github.com/hrunx/sprintly-mvp/internal/models"
)

// FactorKey identifies one of the six scoring factors.
type FactorKey string

const (
	FactorSector    FactorKey = "sector"
	FactorStage     FactorKey = "stage"
	FactorTraction  FactorKey = "traction"
	FactorCheckSize FactorKey = "checkSize"
	FactorGeography FactorKey = "geography"
	FactorThesis    FactorKey = "thesis"
)

// FactorResult is one entry of a match breakdown. Contribution is always
// derived by the aggregator from score, weight and the total weight.
type FactorResult struct {
	Key          FactorKey `json:"key"`
	Score        int       `json:"score"`
	Weight       float64   `json:"weight"`
	Contribution int       `json:"contribution"`
	Reason       string    `json:"reason"`
}

// factorFunc is the uniform signature every factor scorer implements.
// Scorers are pure: they fill Key, Score and Reason only.
type factorFunc func(*models.Company, *models.Investor) FactorResult

// factorScorers is the declarative scorer list; breakdown order follows it.
var factorScorers = []factorFunc{
	scoreSector,
	scoreStage,
	scoreTraction,
	scoreCheckSize,
	scoreGeography,
	scoreThesis,
}

// stageOrder is the ordinal funding-stage ladder.
var stageOrder = []string{
	"pre-seed",
	"seed",
	"series a",
	"series b",
	"series c",
	"series d",
	"growth",
	"late stage",
}

// stageTargets maps a stage to the annual revenue a company at that stage is
// benchmarked against.
var stageTargets = map[string]int64{
	"pre-seed":   100_000,
	"seed":       500_000,
	"series a":   3_000_000,
	"series b":   12_000_000,
	"series c":   30_000_000,
	"series d":   50_000_000,
	"growth":     80_000_000,
	"late stage": 150_000_000,
}

const defaultStageTarget = 500_000

// regionMap folds countries and sub-regions into macro regions.
var regionMap = map[string]string{
	"north america": "americas",
	"usa":           "americas",
	"united states": "americas",
	"canada":        "americas",
	"latin america": "americas",
	"mexico":        "americas",
	"europe":        "emea",
	"middle east":   "emea",
	"mena":          "emea",
	"united kingdom": "emea",
	"germany":        "emea",
	"france":         "emea",
	"africa":         "emea",
	"nigeria":        "emea",
	"kenya":          "emea",
	"asia":           "apac",
	"asia pacific":   "apac",
	"india":          "apac",
	"china":          "apac",
	"singapore":      "apac",
	"japan":          "apac",
	"australia":      "apac",
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// ratioScore maps a 0..1 ratio onto a 0..100 integer score.
func ratioScore(ratio float64) int {
	if ratio >= 1 {
		return 100
	}
	if ratio <= 0 {
		return 0
	}
	return int(math.Round(ratio * 100))
}

func stageIndex(stage string) int {
	for i, s := range stageOrder {
		if s == stage {
			return i
		}
	}
	return -1
}

func int64Value(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

func float64Value(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// scoreSector compares keyword sets built from sector, sub-sector and tags
// on both sides. Token-level Jaccard similarity carries 60% of the blend,
// whole-keyword overlap the remaining 40%.
func scoreSector(company *models.Company, investor *models.Investor) FactorResult {
	companyKeywords := BuildKeywordList(company.Sector, company.SubSector, company.Tags)
	investorKeywords := BuildKeywordList(investor.Sector, investor.SubSector, investor.Tags)

	companyTokens := tokensFromKeywords(companyKeywords)
	investorTokens := tokensFromKeywords(investorKeywords)

	tokenOverlap := jaccardSimilarity(companyTokens, investorTokens)
	keywordOverlap := keywordOverlapRatio(companyKeywords, investorKeywords)

	combined := tokenOverlap*0.6 + keywordOverlap*0.4
	score := ratioScore(combined)

	var reason string
	switch {
	case len(companyKeywords) == 0 && len(investorKeywords) == 0:
		reason = "No sector data available"
	case len(companyKeywords) == 0 || len(investorKeywords) == 0:
		reason = "Incomplete sector data for comparison"
	case score >= 85:
		reason = "Excellent keyword alignment"
	case score >= 65:
		reason = "Strong overlapping keywords"
	case score >= 45:
		reason = "Partial sector overlap"
	default:
		reason = "Limited keyword overlap"
	}

	return FactorResult{Key: FactorSector, Score: score, Reason: reason}
}

// scoreStage scores by ordinal distance on the funding-stage ladder.
func scoreStage(company *models.Company, investor *models.Investor) FactorResult {
	companyStage := normalize(company.Stage)
	investorStage := normalize(investor.Stage)

	score := 0
	reason := "Stage data incomplete"

	if companyStage != "" && investorStage != "" {
		companyIndex := stageIndex(companyStage)
		investorIndex := stageIndex(investorStage)

		if companyIndex == -1 || investorIndex == -1 {
			score = 55
			reason = "Unmapped stage, partial confidence"
		} else {
			delta := companyIndex - investorIndex
			if delta < 0 {
				delta = -delta
			}
			switch {
			case delta == 0:
				score = 100
				reason = "Ideal stage focus"
			case delta == 1:
				score = 85
				reason = "Adjacent stage focus"
			case delta == 2:
				score = 60
				reason = "Stage slightly outside mandate"
			default:
				score = 25
				reason = "Stage far from investor focus"
			}
		}
	}

	return FactorResult{Key: FactorStage, Score: score, Reason: reason}
}

// scoreTraction benchmarks the company's revenue, growth and customer count
// against its stage target. Each ratio is capped at 2x the benchmark;
// revenue carries half the blend, growth 30%, customers 20%.
func scoreTraction(company *models.Company, _ *models.Investor) FactorResult {
	revenue := int64Value(company.Revenue)
	revenueGrowth := float64Value(company.RevenueGrowth)
	customers := int64Value(company.Customers)

	stageTarget, ok := stageTargets[normalize(company.Stage)]
	if !ok || stageTarget == 0 {
		stageTarget = defaultStageTarget
	}

	revenueRatio := math.Min(float64(revenue)/float64(stageTarget), 2)
	growthRatio := math.Min(revenueGrowth/100, 2)
	customerRatio := math.Min(float64(customers)/1000, 2)

	score := int(math.Round(
		float64(ratioScore(revenueRatio/2))*0.5 +
			float64(ratioScore(growthRatio/2))*0.3 +
			float64(ratioScore(customerRatio/2))*0.2,
	))

	var reason string
	switch {
	case score >= 80:
		reason = "Outstanding traction vs. stage benchmarks"
	case score >= 60:
		reason = "Healthy traction relative to stage"
	case score >= 40:
		reason = "Developing traction metrics"
	default:
		reason = "Traction below stage benchmarks"
	}

	return FactorResult{Key: FactorTraction, Score: score, Reason: reason}
}

// scoreCheckSize scores how the company's funding target sits relative to
// the investor's check-size range. Targets outside the range degrade with
// distance to the nearest bound instead of dropping to zero.
func scoreCheckSize(company *models.Company, investor *models.Investor) FactorResult {
	target := int64Value(company.FundingTarget)
	min := int64Value(investor.CheckSizeMin)
	max := int64Value(investor.CheckSizeMax)

	score := 0
	reason := "Missing check size information"

	if target > 0 && (min > 0 || max > 0) {
		lowerBound := min
		if lowerBound == 0 {
			lowerBound = target
		}
		upperBound := max
		if upperBound == 0 {
			upperBound = target
		}

		if target >= lowerBound && target <= upperBound {
			score = 100
			reason = "Funding needs inside this investor's check size"
		} else {
			var distance int64
			if target < lowerBound {
				distance = lowerBound - target
			} else if target > upperBound {
				distance = target - upperBound
			}

			tolerance := upperBound
			if target > tolerance {
				tolerance = target
			}
			if tolerance < 1 {
				tolerance = 1
			}

			ratio := math.Max(0, 1-float64(distance)/float64(tolerance))
			score = int(math.Round(20 + ratio*80))
			reason = "Funding round slightly outside typical check size"
		}
	} else if target > 0 {
		score = 40
		reason = "Company shared funding needs but investor range unknown"
	}

	return FactorResult{Key: FactorCheckSize, Score: score, Reason: reason}
}

// scoreGeography compares normalized geography strings, then macro regions,
// then comma-separated partial overlap.
func scoreGeography(company *models.Company, investor *models.Investor) FactorResult {
	companyGeo := normalize(company.Geography)
	investorGeo := normalize(investor.Geography)

	score := 0
	reason := "No geography data"

	if companyGeo != "" && investorGeo != "" {
		switch {
		case companyGeo == investorGeo:
			score = 100
			reason = "Exact geography match"
		case regionFor(companyGeo) == regionFor(investorGeo):
			score = 80
			reason = "Same macro region"
		case hasPartialGeoOverlap(companyGeo, investorGeo):
			score = 60
			reason = "Partial geographic overlap"
		default:
			score = 30
			reason = "Minimal geographic overlap"
		}
	}

	return FactorResult{Key: FactorGeography, Score: score, Reason: reason}
}

func regionFor(geo string) string {
	if region, ok := regionMap[geo]; ok {
		return region
	}
	return geo
}

func hasPartialGeoOverlap(a, b string) bool {
	for _, part := range strings.Split(a, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" && strings.Contains(b, trimmed) {
			return true
		}
	}
	for _, part := range strings.Split(b, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" && strings.Contains(a, trimmed) {
			return true
		}
	}
	return false
}

// scoreThesis measures token overlap between the investor's thesis and the
// company's description, sector, business model and tags. A 45-point
// baseline applies when either side has nothing to compare.
func scoreThesis(company *models.Company, investor *models.Investor) FactorResult {
	thesis := normalize(investor.Thesis)

	companyTokens := tokenize(normalize(company.Description))
	for token := range tokenize(company.Sector) {
		companyTokens[token] = true
	}
	for token := range tokenize(company.BusinessModel) {
		companyTokens[token] = true
	}
	for _, tag := range ParseListField(company.Tags) {
		if lowered := strings.ToLower(tag); lowered != "" {
			companyTokens[lowered] = true
		}
	}

	thesisTokens := tokenize(thesis)

	score := 45
	reason := "Limited thesis information"

	if len(thesisTokens) > 0 && len(companyTokens) > 0 {
		overlap := jaccardSimilarity(companyTokens, thesisTokens)
		score = int(math.Round(40 + overlap*60))
		switch {
		case score >= 85:
			reason = "Thesis tightly matches this company's focus"
		case score >= 65:
			reason = "Strong thematic overlap"
		case score >= 45:
			reason = "Partial thesis alignment"
		default:
			reason = "Minimal thesis overlap"
		}
	}

	return FactorResult{Key: FactorThesis, Score: score, Reason: reason}
}
