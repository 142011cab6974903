package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKeyword(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"AI/ML", "ai ml"},
		{"  Fintech  ", "fintech"},
		{"Health_Care & Wellness", "health care wellness"},
		{"E-Commerce!", "e-commerce"},
		{"B2B   SaaS", "b2b saas"},
		{"", ""},
		{"!!!", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeKeyword(tt.input), "input %q", tt.input)
	}
}

func TestParseListField(t *testing.T) {
	t.Run("json array", func(t *testing.T) {
		assert.Equal(t, []string{"AI", "Fintech"}, ParseListField(`["AI", "Fintech"]`))
	})

	t.Run("json string with delimiters", func(t *testing.T) {
		assert.Equal(t, []string{"AI", "ML"}, ParseListField(`"AI, ML"`))
	})

	t.Run("json object with sorted keys", func(t *testing.T) {
		got := ParseListField(`{"sectors":["SaaS"],"focusStages":["Seed"]}`)
		assert.Equal(t, []string{"Seed", "SaaS"}, got)
	})

	t.Run("delimited string", func(t *testing.T) {
		assert.Equal(t, []string{"AI", "Fintech", "SaaS"}, ParseListField("AI; Fintech, SaaS"))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, ParseListField(""))
		assert.Nil(t, ParseListField("   "))
	})
}

func TestExpandKeywordSynonyms(t *testing.T) {
	expanded := expandKeyword("Machine Learning")
	assert.Contains(t, expanded, "machine learning")
	assert.Contains(t, expanded, "ml")
	assert.Contains(t, expanded, "ai")
	assert.Contains(t, expanded, "artificial intelligence")
}

func TestExpandKeywordCompoundParts(t *testing.T) {
	expanded := expandKeyword("AI/ML")
	assert.Equal(t, "ai ml", expanded[0])
	assert.Contains(t, expanded, "ai")
	assert.Contains(t, expanded, "ml")
}

func TestBuildKeywordListDeduplicates(t *testing.T) {
	keywords := BuildKeywordList("AI", `["AI"]`, "ai")

	seen := map[string]int{}
	for _, keyword := range keywords {
		seen[keyword]++
	}
	for keyword, count := range seen {
		assert.Equal(t, 1, count, "keyword %q duplicated", keyword)
	}
	assert.Equal(t, "ai", keywords[0])
}

func TestBuildKeywordListDeterministic(t *testing.T) {
	first := BuildKeywordList("AI/ML", "Fintech", `{"sectors":["SaaS","Healthtech"]}`)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, BuildKeywordList("AI/ML", "Fintech", `{"sectors":["SaaS","Healthtech"]}`))
	}
}

func TestJaccardSimilarity(t *testing.T) {
	a := map[string]bool{"ai": true, "ml": true}
	b := map[string]bool{"ai": true, "ml": true}
	assert.Equal(t, 1.0, jaccardSimilarity(a, b))

	c := map[string]bool{"logistics": true}
	assert.Equal(t, 0.0, jaccardSimilarity(a, c))

	assert.Equal(t, 0.0, jaccardSimilarity(a, map[string]bool{}))
	assert.Equal(t, 0.0, jaccardSimilarity(map[string]bool{}, map[string]bool{}))
}

func TestKeywordOverlapRatio(t *testing.T) {
	assert.Equal(t, 1.0, keywordOverlapRatio([]string{"ai", "ml", "saas"}, []string{"ai", "ml", "saas"}))

	// Normalized by the smaller list.
	assert.Equal(t, 1.0, keywordOverlapRatio([]string{"ai", "ml", "saas"}, []string{"ai"}))

	assert.Equal(t, 0.0, keywordOverlapRatio([]string{"ai"}, []string{"logistics"}))
	assert.Equal(t, 0.0, keywordOverlapRatio(nil, []string{"ai"}))
}
