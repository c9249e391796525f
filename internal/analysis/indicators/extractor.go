// Package indicators extracts Indian legal system indicators from document
// text: constitutional references, case citations, statutes, privacy terms,
// government markers and legal concepts, plus per-category density scores
// and derived relevance flags.
package indicators

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/nileshk/legal-analyzer/internal/core/domain"
)

// Indicator category names, in extraction order.
const (
	CategoryConstitutionalReferences = "constitutional_references"
	CategoryIndianCases              = "indian_cases"
	CategoryIndianStatutes           = "indian_statutes"
	CategoryPrivacyTerms             = "privacy_terms"
	CategoryGovernmentTerms          = "government_terms"
	CategoryLegalConcepts            = "legal_concepts"
)

// densityThreshold is the per-100-words match density above which a
// category counts as relevant.
const densityThreshold = 0.1

var categoryPatterns = map[string][]*regexp.Regexp{
	CategoryConstitutionalReferences: compileAll(
		`Article\s+(\d+)(?:\s*(?:\([a-z]\)|\([0-9]+\)))?`,
		`Constitution\s+of\s+India`,
		`Fundamental\s+Rights?`,
		`Directive\s+Principles?`,
		`Part\s+III|Part\s+IV`,
		`Schedule\s+[IVX]+`,
		`Preamble`,
	),
	CategoryIndianCases: compileAll(
		`([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+v\.?\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`,
		`AIR\s+\d{4}\s+SC\s+\d+`,
		`(\d{4})\s+\d+\s+SCC\s+\d+`,
		`Supreme\s+Court`,
		`High\s+Court`,
		`Puttaswamy`,
		`Kesavananda\s+Bharati`,
		`Maneka\s+Gandhi`,
	),
	CategoryIndianStatutes: compileAll(
		`Indian\s+Penal\s+Code`,
		`Code\s+of\s+Criminal\s+Procedure`,
		`Indian\s+Evidence\s+Act`,
		`Companies\s+Act\s+\d{4}`,
		`Information\s+Technology\s+Act`,
		`DPDPA\s+2023`,
		`Digital\s+Personal\s+Data\s+Protection\s+Act`,
		`Indian\s+Contract\s+Act`,
		`Labour\s+Laws?`,
	),
	CategoryPrivacyTerms: compileAll(
		`personal\s+data`,
		`data\s+protection`,
		`privacy\s+policy`,
		`data\s+subject`,
		`data\s+fiduciary`,
		`consent`,
		`processing\s+of\s+data`,
		`right\s+to\s+privacy`,
		`informational\s+privacy`,
		`territorial\s+privacy`,
	),
	CategoryGovernmentTerms: compileAll(
		`Government\s+of\s+India`,
		`Ministry\s+of`,
		`Department\s+of`,
		`Notification`,
		`Office\s+Memorandum`,
		`Gazette\s+of\s+India`,
		`Central\s+Government`,
		`State\s+Government`,
	),
	CategoryLegalConcepts: compileAll(
		`whereas`,
		`hereby`,
		`provided\s+that`,
		`notwithstanding`,
		`subject\s+to`,
		`in\s+exercise\s+of`,
		`powers\s+conferred`,
		`shall\s+be\s+deemed`,
	),
}

var reArticleNumber = regexp.MustCompile(`(?i)Article\s+(\d+)`)

func compileAll(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(`(?im)`+p))
	}
	return compiled
}

// Extract analyzes text for every indicator category.
//
// Density scores count raw matches per ~100 words, so they are comparable
// between a full document and a single chunk. Stored match lists are
// deduplicated and sorted; density scores use the raw pre-dedup counts.
func Extract(text string) domain.LegalIndicators {
	ind := domain.LegalIndicators{
		ConstitutionalReferences: []string{},
		IndianCases:              []string{},
		IndianStatutes:           []string{},
		PrivacyTerms:             []string{},
		GovernmentTerms:          []string{},
		LegalConcepts:            []string{},
		ConfidenceScores:         map[string]float64{},
		ArticleMentions:          []int{},
	}

	denominator := float64(len(strings.Fields(text))) / 100.0
	if denominator < 1.0 {
		denominator = 1.0
	}

	for _, category := range orderedCategories() {
		matches := findCategoryMatches(categoryPatterns[category], text)
		ind.ConfidenceScores[category] = float64(len(matches)) / denominator

		deduped := dedupeSorted(matches)
		switch category {
		case CategoryConstitutionalReferences:
			ind.ConstitutionalReferences = deduped
		case CategoryIndianCases:
			ind.IndianCases = deduped
		case CategoryIndianStatutes:
			ind.IndianStatutes = deduped
		case CategoryPrivacyTerms:
			ind.PrivacyTerms = deduped
		case CategoryGovernmentTerms:
			ind.GovernmentTerms = deduped
		case CategoryLegalConcepts:
			ind.LegalConcepts = deduped
		}
	}

	ind.ArticleMentions = articleMentions(text)

	ind.DPDPARelevance = ind.ConfidenceScores[CategoryPrivacyTerms] > densityThreshold ||
		containsFold(ind.IndianStatutes, "dpdpa")
	ind.ConstitutionalRelevance = ind.ConfidenceScores[CategoryConstitutionalReferences] > densityThreshold ||
		len(ind.ArticleMentions) > 0

	return ind
}

func orderedCategories() []string {
	return []string{
		CategoryConstitutionalReferences,
		CategoryIndianCases,
		CategoryIndianStatutes,
		CategoryPrivacyTerms,
		CategoryGovernmentTerms,
		CategoryLegalConcepts,
	}
}

// findCategoryMatches collects every pattern match in a category. Patterns
// with capture groups report the captured text: one group yields the group,
// two or more yield the groups joined with " v " (case-name style).
func findCategoryMatches(patterns []*regexp.Regexp, text string) []string {
	matches := []string{}
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			switch {
			case len(m) >= 3 && m[1] != "" && m[2] != "":
				matches = append(matches, m[1]+" v "+m[2])
			case len(m) >= 2 && m[1] != "":
				matches = append(matches, m[1])
			default:
				matches = append(matches, m[0])
			}
		}
	}
	return matches
}

func dedupeSorted(matches []string) []string {
	seen := make(map[string]bool, len(matches))
	out := []string{}
	for _, m := range matches {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out
}

func articleMentions(text string) []int {
	seen := map[int]bool{}
	numbers := []int{}
	for _, m := range reArticleNumber.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil || seen[n] {
			continue
		}
		seen[n] = true
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	return numbers
}

func containsFold(list []string, substr string) bool {
	for _, item := range list {
		if strings.Contains(strings.ToLower(item), substr) {
			return true
		}
	}
	return false
}
