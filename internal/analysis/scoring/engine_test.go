package scoring

import (
	"math"
	"testing"

	"github.com/nileshk/legal-analyzer/internal/analysis/framework"
	"github.com/nileshk/legal-analyzer/internal/core/domain"
)

func TestScoreEmptyFrameworksYieldsZero(t *testing.T) {
	e := NewEngine(nil, nil)

	score := e.Score(Input{}, nil)
	if score.OverallScore != 0.0 {
		t.Fatalf("got overall %v, want 0.0", score.OverallScore)
	}
	if score.ComplianceLevel != "poor" {
		t.Fatalf("got compliance %q, want poor", score.ComplianceLevel)
	}
	if score.RiskAssessment.OverallRiskLevel != "very_high" {
		t.Fatalf("got risk %q, want very_high", score.RiskAssessment.OverallRiskLevel)
	}
	if len(score.CategoryScores) != 0 {
		t.Fatalf("got %d category scores, want 0", len(score.CategoryScores))
	}
}

func TestScoreConstitutionalFramework(t *testing.T) {
	e := NewEngine(nil, nil)
	input := Input{
		Classification: domain.ClassificationResult{Confidence: 0.8},
		Indicators: domain.LegalIndicators{
			ConstitutionalRelevance: true,
			ArticleMentions:         []int{21},
		},
	}

	score := e.Score(input, []string{framework.ConstitutionalAnalysis})

	cs, ok := score.CategoryScores[CategoryConstitutional]
	if !ok {
		t.Fatalf("missing constitutional category in %v", score.CategoryScores)
	}
	// rights 70+15+3=88 at weight 0.3; validity and due process default
	// to 65 at weights 0.3 and 0.4.
	want := 88*0.3 + 65*0.3 + 65*0.4
	if math.Abs(cs.Score-want) > 1e-9 {
		t.Fatalf("got category score %v, want %v", cs.Score, want)
	}
	if cs.Framework != framework.ConstitutionalAnalysis {
		t.Fatalf("got framework %q", cs.Framework)
	}
	if math.Abs(score.OverallScore-want) > 1e-9 {
		t.Fatalf("got overall %v, want %v", score.OverallScore, want)
	}
	if score.ComplianceLevel != "satisfactory" {
		t.Fatalf("got compliance %q, want satisfactory", score.ComplianceLevel)
	}
}

func TestScoreMapsFrameworksToCategories(t *testing.T) {
	e := NewEngine(nil, nil)

	score := e.Score(Input{}, []string{
		framework.ConstitutionalAnalysis,
		framework.PrivacyRightsAnalysis,
		framework.DPDPACompliance,
		framework.AdministrativeLaw, // folds into constitutional, last write wins
	})

	if len(score.CategoryScores) != 3 {
		t.Fatalf("got %d categories, want 3", len(score.CategoryScores))
	}
	if score.CategoryScores[CategoryConstitutional].Framework != framework.AdministrativeLaw {
		t.Fatalf("got constitutional framework %q, want %q",
			score.CategoryScores[CategoryConstitutional].Framework, framework.AdministrativeLaw)
	}
}

func TestOverallScoreIsWeightedMeanOverTouchedCategories(t *testing.T) {
	e := NewEngine(nil, nil)
	input := Input{Indicators: domain.LegalIndicators{
		ConstitutionalRelevance: true,
		ArticleMentions:         []int{21},
		PrivacyTerms:            []string{"consent"},
		DPDPARelevance:          true,
	}}

	score := e.Score(input, []string{
		framework.ConstitutionalAnalysis,
		framework.PrivacyRightsAnalysis,
	})

	constitutional := score.CategoryScores[CategoryConstitutional].Score
	privacy := score.CategoryScores[CategoryPrivacy].Score
	want := (constitutional*0.4 + privacy*0.3) / 0.7
	if math.Abs(score.OverallScore-want) > 1e-9 {
		t.Fatalf("got overall %v, want %v", score.OverallScore, want)
	}
}

func TestRiskLevelTables(t *testing.T) {
	cases := []struct {
		riskType string
		score    float64
		want     string
	}{
		{"constitutional_risk", 90.0, "very_low"},
		{"constitutional_risk", 89.9, "low"},
		{"constitutional_risk", 60.0, "medium"},
		{"constitutional_risk", 39.9, "very_high"},
		{"privacy_risk", 85.0, "very_low"},
		{"privacy_risk", 54.9, "high"},
		{"compliance_risk", 88.0, "very_low"},
		{"overall_risk", 87.0, "very_low"},
		{"overall_risk", 36.9, "very_high"},
		// Unknown risk types read the overall table.
		{"dpdpa_risk", 87.5, "very_low"},
		{"dpdpa_risk", 72.0, "low"},
	}
	for _, tc := range cases {
		if got := riskLevel(tc.riskType, tc.score); got != tc.want {
			t.Fatalf("%s score %v: got %q, want %q", tc.riskType, tc.score, got, tc.want)
		}
	}
}

func TestCategoryRiskTypeDerivation(t *testing.T) {
	if got := categoryRiskType(CategoryConstitutional); got != "constitutional_risk" {
		t.Fatalf("got %q", got)
	}
	if got := categoryRiskType(CategoryPrivacy); got != "privacy_risk" {
		t.Fatalf("got %q", got)
	}
	// dpdpa_compliance derives dpdpa_risk, which has no table of its own.
	if got := categoryRiskType(CategoryDPDPA); got != "dpdpa_risk" {
		t.Fatalf("got %q", got)
	}
}

func TestCriticalRisksCollectLowScoringCategories(t *testing.T) {
	e := NewEngine(nil, nil)
	// No privacy content at all: puttaswamy 45, consent 65, transparency 65
	// gives 45*0.4+65*0.3+65*0.3 = 57, medium privacy risk; constitutional
	// with no relevance lands at 60*0.3+65*0.3+65*0.4 = 63.5, medium.
	score := e.Score(Input{}, []string{
		framework.ConstitutionalAnalysis,
		framework.PrivacyRightsAnalysis,
	})

	for name, cr := range score.RiskAssessment.CategoryRisks {
		if cr.RiskLevel != "medium" {
			t.Fatalf("category %q: got risk %q, want medium", name, cr.RiskLevel)
		}
	}
	if len(score.RiskAssessment.CriticalRisks) != 0 {
		t.Fatalf("unexpected critical risks: %v", score.RiskAssessment.CriticalRisks)
	}
}

func TestCriticalIssuesCollectEveryScoredCategory(t *testing.T) {
	e := NewEngine(nil, nil)

	// Both categories land at medium risk for empty input, yet their issues
	// still surface in the top-level list.
	score := e.Score(Input{}, []string{
		framework.ConstitutionalAnalysis,
		framework.PrivacyRightsAnalysis,
	})

	if len(score.RiskAssessment.CriticalRisks) != 0 {
		t.Fatalf("unexpected critical risks: %v", score.RiskAssessment.CriticalRisks)
	}
	wantIssues := map[string]bool{
		"Constitutional relevance not clearly established":     false,
		"Privacy protection measures not adequately addressed": false,
	}
	for _, issue := range score.CriticalIssues {
		if _, ok := wantIssues[issue]; ok {
			wantIssues[issue] = true
		}
	}
	for issue, found := range wantIssues {
		if !found {
			t.Fatalf("issue %q missing from %v", issue, score.CriticalIssues)
		}
	}
}

func TestComplianceLevelBuckets(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{95, "excellent"}, {90, "excellent"},
		{89.9, "good"}, {80, "good"},
		{79.9, "satisfactory"}, {70, "satisfactory"},
		{69.9, "needs_improvement"}, {60, "needs_improvement"},
		{59.9, "poor"}, {0, "poor"},
	}
	for _, tc := range cases {
		if got := complianceLevel(tc.score); got != tc.want {
			t.Fatalf("score %v: got %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestScoringConfidenceBlend(t *testing.T) {
	e := NewEngine(nil, nil)
	input := Input{
		Classification: domain.ClassificationResult{Confidence: 0.6},
		Indicators: domain.LegalIndicators{
			PrivacyTerms:    []string{"consent"},
			IndianStatutes:  []string{"DPDPA 2023"},
			ArticleMentions: []int{21},
			ConfidenceScores: map[string]float64{
				"privacy_terms": 0.4,
			},
		},
	}

	got := e.scoringConfidence(input, []string{"a", "b", "c"})
	// 0.6 classification, 3/3 frameworks, 4/8 populated indicator fields.
	want := (0.6 + 1.0 + 0.5) / 3.0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("got confidence %v, want %v", got, want)
	}
}

func TestScoreRecommendationsDeduplicated(t *testing.T) {
	e := NewEngine(nil, nil)

	// Constitutional and DPDPA both emit the manual-review recommendation
	// through their default criteria; it must appear once.
	score := e.Score(Input{}, []string{
		framework.ConstitutionalAnalysis,
		framework.DPDPACompliance,
	})

	seen := 0
	for _, rec := range score.Recommendations {
		if rec == "Manual review recommended for detailed assessment" {
			seen++
		}
	}
	if seen != 1 {
		t.Fatalf("manual review recommendation appeared %d times", seen)
	}
}
