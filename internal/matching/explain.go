package matching

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hrunx/sprintly-mvp/internal/models"
)

// factorLabels are the human-readable names used in explanations.
var factorLabels = map[FactorKey]string{
	FactorSector:    "sector alignment",
	FactorStage:     "stage fit",
	FactorTraction:  "traction metrics",
	FactorCheckSize: "check size fit",
	FactorGeography: "geography alignment",
	FactorThesis:    "thesis fit",
}

// describeMatchQuality maps a score to a qualitative tier.
func describeMatchQuality(score int) string {
	switch {
	case score >= 85:
		return "strong"
	case score >= 70:
		return "good"
	case score >= 55:
		return "balanced"
	default:
		return "developing"
	}
}

// formatList joins items with Oxford-comma "and" formatting.
func formatList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}

func formatMoney(amount int64) string {
	if amount <= 0 {
		return "$0"
	}
	if amount >= 1_000_000 {
		return fmt.Sprintf("$%.1fM", float64(amount)/1_000_000)
	}
	if amount >= 1000 {
		return fmt.Sprintf("$%.0fK", float64(amount)/1000)
	}
	return fmt.Sprintf("$%d", amount)
}

func formatCheckSizeRange(min, max int64) string {
	switch {
	case min > 0 && max > 0:
		return formatMoney(min) + " - " + formatMoney(max)
	case min > 0:
		return "from " + formatMoney(min)
	case max > 0:
		return "up to " + formatMoney(max)
	default:
		return "their typical range"
	}
}

// fundingAlignmentSentence describes how the company's round relates to the
// investor's check-size range. Empty when either side lacks the data.
func fundingAlignmentSentence(company *models.Company, investor *models.Investor) string {
	target := int64Value(company.FundingTarget)
	min := int64Value(investor.CheckSizeMin)
	max := int64Value(investor.CheckSizeMax)
	if target <= 0 || (min <= 0 && max <= 0) {
		return ""
	}

	withinMin := min <= 0 || target >= min
	withinMax := max <= 0 || target <= max
	investorLabel := investor.Firm
	if investorLabel == "" {
		investorLabel = investor.Name
	}
	if investorLabel == "" {
		investorLabel = "the investor"
	}

	if withinMin && withinMax {
		return fmt.Sprintf(" %s is raising %s, which fits %s's typical check size of %s.",
			company.Name, formatMoney(target), investorLabel, formatCheckSizeRange(min, max))
	}

	var relation string
	if max > 0 && target > max {
		relation = "below"
	} else if min > 0 && target < min {
		relation = "above"
	}

	if relation == "" {
		return fmt.Sprintf(" %s typically invests %s, which is close to this round of %s.",
			investorLabel, formatCheckSizeRange(min, max), formatMoney(target))
	}

	return fmt.Sprintf(" %s typically invests %s, which is %s this round of %s.",
		investorLabel, formatCheckSizeRange(min, max), relation, formatMoney(target))
}

// summarizeThesis returns the thesis's first sentence, falling back to the
// first 140 characters.
func summarizeThesis(thesis string) string {
	if thesis == "" {
		return ""
	}

	for _, part := range strings.FieldsFunc(thesis, func(r rune) bool {
		return r == '.' || r == '\n'
	}) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			return trimmed
		}
	}

	if len(thesis) > 140 {
		return thesis[:140]
	}
	return thesis
}

// buildExplanation composes the natural-language match summary: quality
// tier, top three factors, funding alignment and thesis focus.
func buildExplanation(company *models.Company, investor *models.Investor, breakdown []FactorResult, score int) string {
	quality := describeMatchQuality(score)

	sorted := make([]FactorResult, len(breakdown))
	copy(sorted, breakdown)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	if len(sorted) > 3 {
		sorted = sorted[:3]
	}

	topFactors := make([]string, 0, len(sorted))
	for _, factor := range sorted {
		topFactors = append(topFactors, fmt.Sprintf("%s (%d%%)", factorLabels[factor.Key], factor.Score))
	}

	factorPhrase := "based on available data"
	if len(topFactors) > 0 {
		factorPhrase = "based on " + formatList(topFactors)
	}

	fundingSentence := fundingAlignmentSentence(company, investor)

	thesisSentence := ""
	if investor.Thesis != "" {
		investorLabel := investor.Firm
		if investorLabel == "" {
			investorLabel = investor.Name
		}
		thesisSentence = fmt.Sprintf(" %s focuses on %s.", investorLabel, summarizeThesis(investor.Thesis))
	}

	return strings.TrimSpace(fmt.Sprintf("This is a %s match %s.%s%s", quality, factorPhrase, fundingSentence, thesisSentence))
}
