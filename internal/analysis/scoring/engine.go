// Package scoring computes multi-dimensional compliance scores for
// classified legal documents. Each selected framework maps to one scoring
// category; categories aggregate weighted criterion scores and feed the
// overall score and risk assessment.
package scoring

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/nileshk/legal-analyzer/internal/analysis/framework"
	"github.com/nileshk/legal-analyzer/internal/core/domain"
)

// frameworkCategory maps a selected framework to the scoring category it
// exercises. Frameworks without a dedicated category fold into the
// constitutional dimension. When two frameworks map to the same category
// the later one wins.
func frameworkCategory(name string) string {
	switch name {
	case framework.ConstitutionalAnalysis:
		return CategoryConstitutional
	case framework.PrivacyRightsAnalysis:
		return CategoryPrivacy
	case framework.DPDPACompliance:
		return CategoryDPDPA
	case framework.AdministrativeLaw:
		return CategoryConstitutional
	case framework.GeneralLegalAnalysis:
		return CategoryConstitutional
	default:
		return CategoryConstitutional
	}
}

// Risk threshold tables. Scanned in descending order; the first threshold
// the score reaches determines the level, anything below the last entry
// is very_high.
type riskThreshold struct {
	floor float64
	level string
}

var riskTables = map[string][]riskThreshold{
	"constitutional_risk": {
		{90, "very_low"}, {75, "low"}, {60, "medium"}, {40, "high"},
	},
	"privacy_risk": {
		{85, "very_low"}, {70, "low"}, {55, "medium"}, {35, "high"},
	},
	"compliance_risk": {
		{88, "very_low"}, {73, "low"}, {58, "medium"}, {38, "high"},
	},
	"overall_risk": {
		{87, "very_low"}, {72, "low"}, {57, "medium"}, {37, "high"},
	},
}

// categoryRiskType derives the threshold table name from the category's
// first name segment: constitutional_compliance reads constitutional_risk,
// privacy_compliance reads privacy_risk. Categories whose derived name has
// no table (dpdpa_compliance → dpdpa_risk) read the overall table.
func categoryRiskType(category string) string {
	segment, _, _ := strings.Cut(category, "_")
	return segment + "_risk"
}

func riskLevel(riskType string, score float64) string {
	table, ok := riskTables[riskType]
	if !ok {
		table = riskTables["overall_risk"]
	}
	for _, t := range table {
		if score >= t.floor {
			return t.level
		}
	}
	return "very_high"
}

type Engine struct {
	registry *Registry
	logger   *slog.Logger
}

func NewEngine(registry *Registry, logger *slog.Logger) *Engine {
	if registry == nil {
		registry = DefaultRegistry()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{registry: registry, logger: logger}
}

// Score evaluates the document against the scoring categories touched by
// the selected frameworks. An empty framework list yields an overall
// score of 0.0 with no category results.
func (e *Engine) Score(input Input, selectedFrameworks []string) domain.ComprehensiveScore {
	categoryScores := make(map[string]domain.CategoryScore)
	// Every scored category's issues surface at the top level, in framework
	// application order. A category scored under two frameworks contributes
	// its issues once per framework.
	criticalIssues := []string{}
	for _, fw := range selectedFrameworks {
		categoryName := frameworkCategory(fw)
		cs := e.scoreCategory(categoryName, fw, input)
		categoryScores[categoryName] = cs
		criticalIssues = append(criticalIssues, cs.Issues...)
	}

	overall := e.overallScore(categoryScores)
	risk := e.assessRisk(categoryScores, overall)

	return domain.ComprehensiveScore{
		OverallScore:    overall,
		CategoryScores:  categoryScores,
		RiskAssessment:  risk,
		ComplianceLevel: complianceLevel(overall),
		CriticalIssues:  criticalIssues,
		Recommendations: aggregateRecommendations(categoryScores),
		ConfidenceLevel: e.scoringConfidence(input, selectedFrameworks),
	}
}

func (e *Engine) scoreCategory(categoryName, frameworkName string, input Input) domain.CategoryScore {
	result := domain.CategoryScore{
		CriterionScores: map[string]float64{},
		Issues:          []string{},
		Recommendations: []string{},
		Framework:       frameworkName,
	}

	category, ok := e.registry.Category(categoryName)
	if !ok {
		result.Score = defaultCriterionScore
		result.Recommendations = append(result.Recommendations, "Manual review recommended for detailed assessment")
		return result
	}

	weighted := 0.0
	for _, criterion := range category.Criteria {
		r := e.runCriterion(criterion, input)
		result.CriterionScores[criterion.Name] = r.score
		result.Issues = append(result.Issues, r.issues...)
		result.Recommendations = append(result.Recommendations, r.recommendations...)
		weighted += r.score * criterion.Weight
	}

	result.Score = clampScore(weighted)
	return result
}

// runCriterion isolates a criterion failure to that criterion: a panic
// inside a scoring method records an issue and keeps the neutral score.
func (e *Engine) runCriterion(criterion Criterion, input Input) (result methodResult) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("criterion scoring failed",
				"criterion", criterion.Name, "panic", fmt.Sprint(r))
			result = methodResult{
				score:  defaultCriterionScore,
				issues: []string{fmt.Sprintf("Scoring failed for criterion '%s'", criterion.Name)},
			}
		}
	}()
	return dispatch(criterion.Method, input)
}

// overallScore is the weighted mean over the categories that were actually
// scored, not over the full category table.
func (e *Engine) overallScore(categoryScores map[string]domain.CategoryScore) float64 {
	totalWeight := 0.0
	weightedSum := 0.0
	for name, cs := range categoryScores {
		w := e.registry.CategoryWeight(name)
		weightedSum += cs.Score * w
		totalWeight += w
	}
	if totalWeight == 0 {
		return 0.0
	}
	return weightedSum / totalWeight
}

func (e *Engine) assessRisk(categoryScores map[string]domain.CategoryScore, overall float64) domain.RiskAssessment {
	categoryRisks := make(map[string]domain.CategoryRisk, len(categoryScores))
	criticalRisks := []domain.CriticalRisk{}

	for name, cs := range categoryScores {
		level := riskLevel(categoryRiskType(name), cs.Score)
		categoryRisks[name] = domain.CategoryRisk{
			RiskLevel: level,
			Score:     cs.Score,
			Issues:    cs.Issues,
		}
		if level == "high" || level == "very_high" {
			criticalRisks = append(criticalRisks, domain.CriticalRisk{
				Category:  name,
				RiskLevel: level,
				Score:     cs.Score,
			})
		}
	}

	return domain.RiskAssessment{
		OverallRiskLevel: riskLevel("overall_risk", overall),
		CategoryRisks:    categoryRisks,
		CriticalRisks:    criticalRisks,
	}
}

func complianceLevel(score float64) string {
	switch {
	case score >= 90:
		return "excellent"
	case score >= 80:
		return "good"
	case score >= 70:
		return "satisfactory"
	case score >= 60:
		return "needs_improvement"
	default:
		return "poor"
	}
}

func aggregateRecommendations(categoryScores map[string]domain.CategoryScore) []string {
	seen := map[string]bool{}
	recs := []string{}
	// Stable aggregation order: iterate the fixed category table, then
	// anything configuration added beyond it.
	for _, name := range []string{CategoryConstitutional, CategoryPrivacy, CategoryDPDPA} {
		cs, ok := categoryScores[name]
		if !ok {
			continue
		}
		for _, rec := range cs.Recommendations {
			if !seen[rec] {
				seen[rec] = true
				recs = append(recs, rec)
			}
		}
	}
	for name, cs := range categoryScores {
		switch name {
		case CategoryConstitutional, CategoryPrivacy, CategoryDPDPA:
			continue
		}
		for _, rec := range cs.Recommendations {
			if !seen[rec] {
				seen[rec] = true
				recs = append(recs, rec)
			}
		}
	}
	return recs
}

// scoringConfidence blends three signals: classification confidence,
// framework coverage and indicator richness. Each caps at 1.0.
func (e *Engine) scoringConfidence(input Input, selectedFrameworks []string) float64 {
	classificationSignal := input.Classification.Confidence

	frameworkSignal := float64(len(selectedFrameworks)) / 3.0
	if frameworkSignal > 1.0 {
		frameworkSignal = 1.0
	}

	indicatorSignal := float64(populatedIndicatorFields(input.Indicators)) / 8.0
	if indicatorSignal > 1.0 {
		indicatorSignal = 1.0
	}

	return (classificationSignal + frameworkSignal + indicatorSignal) / 3.0
}

func populatedIndicatorFields(ind domain.LegalIndicators) int {
	count := 0
	for _, list := range [][]string{
		ind.ConstitutionalReferences, ind.IndianCases, ind.IndianStatutes,
		ind.PrivacyTerms, ind.GovernmentTerms, ind.LegalConcepts,
	} {
		if len(list) > 0 {
			count++
		}
	}
	if len(ind.ArticleMentions) > 0 {
		count++
	}
	if len(ind.ConfidenceScores) > 0 {
		count++
	}
	return count
}
