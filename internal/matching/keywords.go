package matching

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"
)

var (
	separatorRe  = regexp.MustCompile(`[\s/&_]+`)
	invalidRe    = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	tokenCleanRe = regexp.MustCompile(`[^a-z0-9\s]`)
	compoundRe   = regexp.MustCompile(`[\s-]`)
)

// rawKeywordSynonyms is the hand-authored synonym dictionary. Each root maps
// to its domain synonyms; the lookup table built from it is symmetric, so
// every member of a group resolves to the full group.
var rawKeywordSynonyms = map[string][]string{
	"ai":                 {"artificial intelligence", "machine intelligence", "ai/ml", "machine learning"},
	"ai ml":              {"ai", "machine learning", "artificial intelligence"},
	"machine learning":   {"ml", "artificial intelligence", "ai"},
	"ml":                 {"machine learning", "artificial intelligence", "ai"},
	"fintech":            {"financial technology", "finance technology", "financial services technology", "payments", "fintech"},
	"financial services": {"finserv", "banking", "fintech"},
	"ecommerce":          {"e-commerce", "online retail", "digital commerce"},
	"e commerce":         {"ecommerce", "online retail", "digital commerce"},
	"healthtech":         {"digital health", "health care technology", "healthcare"},
	"healthcare":         {"health tech", "healthtech", "digital health"},
	"biotech":            {"biotechnology", "life sciences"},
	"climatetech":        {"climate tech", "clean tech", "cleantech", "sustainability"},
	"cleantech":          {"climate tech", "sustainability"},
	"saas":               {"software as a service", "cloud software", "b2b software"},
	"software as a service": {"saas", "cloud software"},
	"b2b":         {"business to business"},
	"b2c":         {"business to consumer"},
	"marketplace": {"platform", "two sided marketplace"},
}

// keywordSynonymLookup maps every normalized group member to its full group.
// Built once at package init and never mutated afterwards.
var keywordSynonymLookup = buildSynonymLookup(rawKeywordSynonyms)

func buildSynonymLookup(raw map[string][]string) map[string][]string {
	lookup := make(map[string][]string)

	roots := make([]string, 0, len(raw))
	for root := range raw {
		roots = append(roots, root)
	}
	sort.Strings(roots)

	for _, root := range roots {
		normalizedRoot := normalizeKeyword(root)
		if normalizedRoot == "" {
			continue
		}

		group := []string{normalizedRoot}
		seen := map[string]bool{normalizedRoot: true}
		for _, term := range raw[root] {
			normalized := normalizeKeyword(term)
			if normalized != "" && !seen[normalized] {
				seen[normalized] = true
				group = append(group, normalized)
			}
		}

		for _, term := range group {
			lookup[term] = group
		}
	}

	return lookup
}

// normalizeKeyword canonicalizes a keyword: lowercase, collapse whitespace,
// slashes, ampersands and underscores to single spaces, strip everything
// outside [a-z0-9 -], and trim.
func normalizeKeyword(value string) string {
	v := strings.ToLower(value)
	v = separatorRe.ReplaceAllString(v, " ")
	v = invalidRe.ReplaceAllString(v, "")
	v = whitespaceRe.ReplaceAllString(v, " ")
	return strings.TrimSpace(v)
}

// expandKeyword returns the normalized keyword plus its synonym closure.
// Compound terms ("ai-ml", "machine learning") additionally contribute each
// part of at least two characters, with that part's own synonyms.
func expandKeyword(keyword string) []string {
	normalized := normalizeKeyword(keyword)
	if normalized == "" {
		return nil
	}

	seen := map[string]bool{}
	var expanded []string
	add := func(term string) {
		if term != "" && !seen[term] {
			seen[term] = true
			expanded = append(expanded, term)
		}
	}

	add(normalized)
	for _, term := range keywordSynonymLookup[normalized] {
		add(term)
	}

	for _, part := range compoundRe.Split(normalized, -1) {
		clean := normalizeKeyword(part)
		if len(clean) < 2 {
			continue
		}
		add(clean)
		for _, term := range keywordSynonymLookup[clean] {
			add(term)
		}
	}

	return expanded
}

// ParseListField turns a free-form list field into a slice of raw items.
// The field may be a JSON array of strings, a JSON-encoded string, a JSON
// object whose values are string lists, or a comma/semicolon-delimited
// string. Anything unparseable degrades to the delimiter split; an empty
// field yields nil.
func ParseListField(field string) []string {
	trimmed := strings.TrimSpace(field)
	if trimmed == "" {
		return nil
	}

	var arr []string
	if err := json.Unmarshal([]byte(trimmed), &arr); err == nil {
		return trimEach(arr)
	}

	var str string
	if err := json.Unmarshal([]byte(trimmed), &str); err == nil {
		return splitDelimited(str)
	}

	var obj map[string][]string
	if err := json.Unmarshal([]byte(trimmed), &obj); err == nil {
		keys := make([]string, 0, len(obj))
		for key := range obj {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		var items []string
		for _, key := range keys {
			items = append(items, trimEach(obj[key])...)
		}
		return items
	}

	return splitDelimited(trimmed)
}

// BuildKeywordList resolves every field through ParseListField, normalizes
// each resulting item and expands it with its synonym closure. The returned
// list preserves first-seen order and contains no duplicates.
func BuildKeywordList(fields ...string) []string {
	seen := map[string]bool{}
	var keywords []string

	for _, field := range fields {
		for _, item := range ParseListField(field) {
			for _, term := range expandKeyword(item) {
				if !seen[term] {
					seen[term] = true
					keywords = append(keywords, term)
				}
			}
		}
	}

	return keywords
}

func splitDelimited(value string) []string {
	parts := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ';'
	})
	return trimEach(parts)
}

func trimEach(items []string) []string {
	var out []string
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// tokenize lowercases free text, replaces punctuation with spaces and
// returns the resulting word set.
func tokenize(text string) map[string]bool {
	tokens := make(map[string]bool)
	if text == "" {
		return tokens
	}

	cleaned := tokenCleanRe.ReplaceAllString(strings.ToLower(text), " ")
	for _, word := range strings.Fields(cleaned) {
		tokens[word] = true
	}
	return tokens
}

// tokensFromKeywords splits each keyword into constituent words of at least
// two characters.
func tokensFromKeywords(keywords []string) map[string]bool {
	tokens := make(map[string]bool)
	for _, keyword := range keywords {
		for _, part := range strings.Split(keyword, " ") {
			normalized := normalizeKeyword(part)
			if len(normalized) >= 2 {
				tokens[normalized] = true
			}
		}
	}
	return tokens
}

// jaccardSimilarity is intersection over union; 0 when either set is empty.
func jaccardSimilarity(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	intersection := 0
	for token := range a {
		if b[token] {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// keywordOverlapRatio counts exact keyword matches normalized by the size of
// the smaller list.
func keywordOverlapRatio(listA, listB []string) float64 {
	if len(listA) == 0 || len(listB) == 0 {
		return 0
	}

	setA := make(map[string]bool, len(listA))
	for _, keyword := range listA {
		setA[keyword] = true
	}
	setB := make(map[string]bool, len(listB))
	for _, keyword := range listB {
		setB[keyword] = true
	}

	matches := 0
	for keyword := range setA {
		if setB[keyword] {
			matches++
		}
	}

	normalizer := len(setA)
	if len(setB) < normalizer {
		normalizer = len(setB)
	}
	if normalizer == 0 {
		normalizer = 1
	}
	return float64(matches) / float64(normalizer)
}
