package scoring

import (
	"strings"

	"github.com/nileshk/legal-analyzer/internal/core/domain"
)

// defaultCriterionScore is the neutral score for criteria whose method is
// unknown or not individually modeled.
const defaultCriterionScore = 65.0

type methodResult struct {
	score           float64
	issues          []string
	recommendations []string
}

// dispatch runs one criterion's scoring method against the analysis input.
// Every arm returns a score in [0,100]; methods without a dedicated model
// share the neutral default so a misconfigured criterion can never stall
// the pipeline.
func dispatch(method Method, input Input) methodResult {
	switch method {
	case MethodRightsProtection:
		return scoreRightsProtection(input)
	case MethodPuttaswamyAssessment:
		return scorePuttaswamyCompliance(input)
	case MethodLawfulProcessing:
		return scoreLawfulProcessing(input)
	case MethodValidityFramework, MethodDueProcess, MethodConsentValidity,
		MethodDisclosureAdequacy, MethodFiduciaryCompliance, MethodPrincipalRights,
		MethodUnknown:
		return defaultScoringMethod()
	default:
		return defaultScoringMethod()
	}
}

func scoreRightsProtection(input Input) methodResult {
	result := methodResult{score: 70.0}

	if input.Indicators.ConstitutionalRelevance {
		result.score += 15
	} else {
		result.score -= 10
		result.issues = append(result.issues, "Constitutional relevance not clearly established")
	}

	if len(input.Indicators.ArticleMentions) > 0 {
		result.score += float64(len(input.Indicators.ArticleMentions)) * 3
	} else {
		result.issues = append(result.issues, "No constitutional articles specifically referenced")
		result.recommendations = append(result.recommendations, "Reference relevant constitutional provisions")
	}

	result.score = clampScore(result.score)
	return result
}

func scorePuttaswamyCompliance(input Input) methodResult {
	result := methodResult{score: 60.0}

	if len(input.Indicators.PrivacyTerms) > 0 {
		result.score += float64(len(input.Indicators.PrivacyTerms)) * 8
	} else {
		result.score -= 15
		result.issues = append(result.issues, "Privacy protection measures not adequately addressed")
		result.recommendations = append(result.recommendations, "Implement comprehensive privacy protection measures")
	}

	if input.Indicators.DPDPARelevance {
		result.score += 15
	} else {
		result.issues = append(result.issues, "DPDPA compliance requirements not addressed")
		result.recommendations = append(result.recommendations, "Implement DPDPA 2023 compliance measures")
	}

	result.score = clampScore(result.score)
	return result
}

func scoreLawfulProcessing(input Input) methodResult {
	result := methodResult{score: 65.0}

	consentMentions := 0
	lawfulBasisMentions := 0
	for _, chunk := range input.Chunks {
		chunkText := strings.ToLower(chunk.Text)
		if strings.Contains(chunkText, "consent") {
			consentMentions++
		}
		if strings.Contains(chunkText, "lawful basis") || strings.Contains(chunkText, "legitimate interest") {
			lawfulBasisMentions++
		}
	}

	if consentMentions > 0 {
		result.score += 15
	} else {
		result.issues = append(result.issues, "No clear consent mechanism identified")
		result.recommendations = append(result.recommendations, "Implement clear consent collection procedures")
	}

	if lawfulBasisMentions > 0 {
		result.score += 10
	} else {
		result.issues = append(result.issues, "Lawful basis for processing not clearly established")
		result.recommendations = append(result.recommendations, "Establish and document lawful basis for data processing")
	}

	result.score = clampScore(result.score)
	return result
}

func defaultScoringMethod() methodResult {
	return methodResult{
		score:           defaultCriterionScore,
		recommendations: []string{"Manual review recommended for detailed assessment"},
	}
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Input is the analysis bundle the scoring engine inspects. All fields
// come from upstream components; scoring never touches raw document bytes.
type Input struct {
	Classification domain.ClassificationResult
	Indicators     domain.LegalIndicators
	Chunks         []domain.EnhancedChunk
}
