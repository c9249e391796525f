package classifier

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Alternative is a runner-up classification.
type Alternative struct {
	DocumentType    string  `json:"document_type"`
	Confidence      float64 `json:"confidence"`
	ConfidenceLevel string  `json:"confidence_level"`
}

// LegalContext summarizes raw Indian legal reference counts.
//
// OverallLegalStrength is the unweighted mean of the six raw counts, not
// normalized by document length: longer documents read systematically
// "stronger". That calibration is intentional.
type LegalContext struct {
	ConstitutionalReferences int     `json:"constitutional_references"`
	SupremeCourtMentions     int     `json:"supreme_court_mentions"`
	HighCourtMentions        int     `json:"high_court_mentions"`
	GovernmentReferences     int     `json:"government_references"`
	IndianStatutes           int     `json:"indian_statutes"`
	LegalConcepts            int     `json:"legal_concepts"`
	OverallLegalStrength     float64 `json:"overall_legal_strength"`
}

// Characteristics captures document-level shape metrics.
type Characteristics struct {
	WordCount         int    `json:"word_count"`
	CharCount         int    `json:"char_count"`
	EstimatedPages    int    `json:"estimated_pages"`
	HasLegalStructure bool   `json:"has_legal_structure"`
	ComplexityLevel   string `json:"complexity_level"`
}

// ComprehensiveAnalysis is the full classification report for one document.
type ComprehensiveAnalysis struct {
	DocumentType    string             `json:"document_type"`
	Confidence      float64            `json:"confidence"`
	ConfidenceLevel string             `json:"confidence_level"`
	AllScores       map[string]float64 `json:"all_scores"`
	Alternatives    []Alternative      `json:"alternative_classifications"`
	LegalContext    LegalContext       `json:"indian_legal_context"`
	Characteristics Characteristics    `json:"document_characteristics"`
	Reasoning       string             `json:"classification_reasoning"`
	Recommendations []string           `json:"recommendations"`
}

var (
	reArticleRef    = regexp.MustCompile(`(?i)Article\s+\d+`)
	reSupremeCourt  = regexp.MustCompile(`(?i)Supreme\s+Court`)
	reHighCourt     = regexp.MustCompile(`(?i)High\s+Court`)
	reGovernmentRef = regexp.MustCompile(`(?i)Government\s+of\s+India`)
	reStatuteRefs   = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Indian\s+Penal\s+Code`),
		regexp.MustCompile(`(?i)Companies\s+Act`),
		regexp.MustCompile(`(?i)Contract\s+Act`),
		regexp.MustCompile(`(?i)DPDPA\s+2023`),
		regexp.MustCompile(`(?i)Information\s+Technology\s+Act`),
	}
	reLegalStructure = []*regexp.Regexp{
		regexp.MustCompile(`(?i)WHEREAS`),
		regexp.MustCompile(`(?i)NOW\s+THEREFORE`),
		regexp.MustCompile(`(?i)IN\s+WITNESS\s+WHEREOF`),
		regexp.MustCompile(`(?i)Section\s+\d+`),
		regexp.MustCompile(`(?i)Clause\s+\d+`),
		regexp.MustCompile(`(?i)Article\s+\d+`),
	}
)

var legalConceptTerms = []string{"whereas", "hereby", "provided that", "notwithstanding", "subject to"}

// AnalyzeComprehensive composes classification with alternatives, legal
// context counts, structure flags and a complexity estimate.
func (c *Classifier) AnalyzeComprehensive(text string) ComprehensiveAnalysis {
	result := c.Classify(text)

	wordCount := len(strings.Fields(text))
	legalTerms := countLegalConcepts(text)

	return ComprehensiveAnalysis{
		DocumentType:    result.DocumentType,
		Confidence:      result.Confidence,
		ConfidenceLevel: ConfidenceLevel(result.Confidence),
		AllScores:       result.AllScores,
		Alternatives:    alternatives(result.AllScores, result.DocumentType, 3),
		LegalContext:    analyzeLegalContext(text),
		Characteristics: Characteristics{
			WordCount:         wordCount,
			CharCount:         len(text),
			EstimatedPages:    len(text) / 2000,
			HasLegalStructure: hasLegalStructure(text),
			ComplexityLevel:   complexityLevel(wordCount, legalTerms),
		},
		Reasoning:       reasoning(result.DocumentType, result.Confidence),
		Recommendations: recommendations(result.DocumentType, result.Confidence),
	}
}

func alternatives(allScores map[string]float64, winner string, topN int) []Alternative {
	type entry struct {
		docType string
		score   float64
	}
	entries := make([]entry, 0, len(allScores))
	for docType, score := range allScores {
		if docType == winner {
			continue
		}
		entries = append(entries, entry{docType, score})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].score != entries[j].score {
			return entries[i].score > entries[j].score
		}
		return entries[i].docType < entries[j].docType
	})

	if topN > len(entries) {
		topN = len(entries)
	}
	out := make([]Alternative, 0, topN)
	for _, e := range entries[:topN] {
		out = append(out, Alternative{
			DocumentType:    e.docType,
			Confidence:      e.score,
			ConfidenceLevel: ConfidenceLevel(e.score),
		})
	}
	return out
}

func analyzeLegalContext(text string) LegalContext {
	ctx := LegalContext{
		ConstitutionalReferences: len(reArticleRef.FindAllString(text, -1)),
		SupremeCourtMentions:     len(reSupremeCourt.FindAllString(text, -1)),
		HighCourtMentions:        len(reHighCourt.FindAllString(text, -1)),
		GovernmentReferences:     len(reGovernmentRef.FindAllString(text, -1)),
		IndianStatutes:           countStatuteReferences(text),
		LegalConcepts:            countLegalConcepts(text),
	}

	total := ctx.ConstitutionalReferences + ctx.SupremeCourtMentions + ctx.HighCourtMentions +
		ctx.GovernmentReferences + ctx.IndianStatutes + ctx.LegalConcepts
	ctx.OverallLegalStrength = float64(total) / 6.0
	return ctx
}

func countStatuteReferences(text string) int {
	count := 0
	for _, re := range reStatuteRefs {
		count += len(re.FindAllString(text, -1))
	}
	return count
}

func countLegalConcepts(text string) int {
	textLower := strings.ToLower(text)
	count := 0
	for _, term := range legalConceptTerms {
		count += strings.Count(textLower, term)
	}
	return count
}

func hasLegalStructure(text string) bool {
	for _, re := range reLegalStructure {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

func complexityLevel(wordCount, legalTerms int) string {
	switch {
	case wordCount > 5000 && legalTerms > 20:
		return "high"
	case wordCount > 2000 || legalTerms > 10:
		return "medium"
	default:
		return "low"
	}
}

func reasoning(docType string, confidence float64) string {
	switch {
	case confidence >= 0.8:
		return fmt.Sprintf("Strong indicators for %s classification including specific terminology and document structure.", docType)
	case confidence >= 0.6:
		return fmt.Sprintf("Clear patterns matching %s with good confidence based on content analysis.", docType)
	case confidence >= 0.4:
		return fmt.Sprintf("Moderate confidence for %s classification based on partial pattern matching.", docType)
	default:
		return fmt.Sprintf("Low confidence classification. Document may be %s but lacks clear identifying markers.", docType)
	}
}

func recommendations(docType string, confidence float64) []string {
	recs := []string{}
	if confidence < 0.5 {
		recs = append(recs, "Consider manual review due to low classification confidence")
	}
	switch docType {
	case "privacy_policy", "dpdpa_compliance_document":
		recs = append(recs,
			"Review for DPDPA 2023 compliance requirements",
			"Ensure Article 21 privacy rights consideration")
	case "government_notification":
		recs = append(recs,
			"Verify constitutional validity under relevant articles",
			"Check compliance with administrative law requirements")
	case "employment_contract", "service_agreement":
		recs = append(recs,
			"Review labor law compliance",
			"Ensure constitutional rights protection")
	}
	return recs
}
