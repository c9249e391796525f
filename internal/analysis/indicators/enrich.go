package indicators

import (
	"strings"

	"github.com/nileshk/legal-analyzer/internal/core/domain"
)

// Chunk-type density thresholds. Checked in priority order: constitutional
// beats privacy beats case citation.
const (
	constitutionalChunkThreshold = 0.5
	privacyChunkThreshold        = 0.3
	caseChunkThreshold           = 0.2
	statuteChunkThreshold        = 0.3
	governmentChunkThreshold     = 0.3
)

var legalClauseWords = []string{"shall", "hereby", "whereas", "provided"}

// Enrich annotates a raw text chunk with its indicator extraction and the
// derived legal context metrics.
func Enrich(chunkID int, text string) domain.EnhancedChunk {
	ind := Extract(text)
	return domain.EnhancedChunk{
		ChunkID:                 chunkID,
		Text:                    text,
		CharCount:               len(text),
		WordCount:               len(strings.Fields(text)),
		Indicators:              ind,
		ChunkType:               ChunkType(text, ind),
		ConstitutionalRelevance: ConstitutionalRelevance(ind),
		PrivacyRelevance:        PrivacyRelevance(ind),
		LegalImportance:         LegalImportance(ind),
	}
}

// ChunkType labels the dominant kind of legal content in a chunk.
func ChunkType(text string, ind domain.LegalIndicators) string {
	scores := ind.ConfidenceScores
	switch {
	case scores[CategoryConstitutionalReferences] > constitutionalChunkThreshold:
		return "constitutional_provision"
	case scores[CategoryPrivacyTerms] > privacyChunkThreshold:
		return "privacy_clause"
	case scores[CategoryIndianCases] > caseChunkThreshold:
		return "case_citation"
	case scores[CategoryIndianStatutes] > statuteChunkThreshold:
		return "statute_reference"
	case scores[CategoryGovernmentTerms] > governmentChunkThreshold:
		return "government_provision"
	}

	textLower := strings.ToLower(text)
	for _, word := range legalClauseWords {
		if strings.Contains(textLower, word) {
			return "legal_clause"
		}
	}
	return "general_content"
}

// ConstitutionalRelevance scores 0-1 from constitutional reference density,
// discounted case density, and a flat bonus for explicit article mentions.
func ConstitutionalRelevance(ind domain.LegalIndicators) float64 {
	score := ind.ConfidenceScores[CategoryConstitutionalReferences] +
		ind.ConfidenceScores[CategoryIndianCases]*0.3
	if len(ind.ArticleMentions) > 0 {
		score += 0.2
	}
	return capAt1(score)
}

// PrivacyRelevance scores 0-1 from privacy term density plus a DPDPA bonus.
func PrivacyRelevance(ind domain.LegalIndicators) float64 {
	score := ind.ConfidenceScores[CategoryPrivacyTerms]
	if ind.DPDPARelevance {
		score += 0.3
	}
	return capAt1(score)
}

// LegalImportance blends the relevance signals into one 0.1-1.0 weight.
// The floor keeps even boilerplate chunks retrievable.
func LegalImportance(ind domain.LegalIndicators) float64 {
	importance := ConstitutionalRelevance(ind)*0.3 +
		PrivacyRelevance(ind)*0.2 +
		ind.ConfidenceScores[CategoryIndianCases]*0.2 +
		ind.ConfidenceScores[CategoryLegalConcepts]*0.3

	if importance < 0.1 {
		return 0.1
	}
	return capAt1(importance)
}

func capAt1(v float64) float64 {
	if v > 1.0 {
		return 1.0
	}
	return v
}
