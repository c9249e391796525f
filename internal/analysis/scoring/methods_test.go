package scoring

import (
	"testing"

	"github.com/nileshk/legal-analyzer/internal/core/domain"
)

func TestRightsProtectionScoring(t *testing.T) {
	input := Input{Indicators: domain.LegalIndicators{
		ConstitutionalRelevance: true,
		ArticleMentions:         []int{14, 21},
	}}

	r := dispatch(MethodRightsProtection, input)
	// 70 base + 15 relevance + 2 articles * 3.
	if r.score != 91.0 {
		t.Fatalf("got score %v, want 91.0", r.score)
	}
	if len(r.issues) != 0 {
		t.Fatalf("unexpected issues: %v", r.issues)
	}
}

func TestRightsProtectionPenalties(t *testing.T) {
	r := dispatch(MethodRightsProtection, Input{})
	// 70 base - 10 without constitutional relevance.
	if r.score != 60.0 {
		t.Fatalf("got score %v, want 60.0", r.score)
	}
	if len(r.issues) != 2 {
		t.Fatalf("got %d issues, want 2: %v", len(r.issues), r.issues)
	}
}

func TestPuttaswamyScoring(t *testing.T) {
	input := Input{Indicators: domain.LegalIndicators{
		PrivacyTerms:   []string{"personal data", "consent"},
		DPDPARelevance: true,
	}}

	r := dispatch(MethodPuttaswamyAssessment, input)
	// 60 base + 2 terms * 8 + 15 DPDPA.
	if r.score != 91.0 {
		t.Fatalf("got score %v, want 91.0", r.score)
	}
}

func TestPuttaswamyClampsAtHundred(t *testing.T) {
	input := Input{Indicators: domain.LegalIndicators{
		PrivacyTerms: []string{"a", "b", "c", "d", "e", "f", "g", "h"},
	}}

	r := dispatch(MethodPuttaswamyAssessment, input)
	if r.score != 100.0 {
		t.Fatalf("got score %v, want clamp at 100.0", r.score)
	}
}

func TestPuttaswamyNoPrivacyContent(t *testing.T) {
	r := dispatch(MethodPuttaswamyAssessment, Input{})
	// 60 base - 15 missing terms, DPDPA issue carries no deduction.
	if r.score != 45.0 {
		t.Fatalf("got score %v, want 45.0", r.score)
	}
	if len(r.recommendations) != 2 {
		t.Fatalf("got %d recommendations, want 2: %v", len(r.recommendations), r.recommendations)
	}
}

func TestLawfulProcessingScoring(t *testing.T) {
	input := Input{Chunks: []domain.EnhancedChunk{
		{Text: "The data principal must give Consent before processing."},
		{Text: "Processing rests on a lawful basis under section 7."},
	}}

	r := dispatch(MethodLawfulProcessing, input)
	// 65 base + 15 consent + 10 lawful basis.
	if r.score != 90.0 {
		t.Fatalf("got score %v, want 90.0", r.score)
	}
}

func TestLawfulProcessingNoChunks(t *testing.T) {
	r := dispatch(MethodLawfulProcessing, Input{})
	if r.score != 65.0 {
		t.Fatalf("got score %v, want 65.0", r.score)
	}
	if len(r.issues) != 2 {
		t.Fatalf("got %d issues, want 2: %v", len(r.issues), r.issues)
	}
}

func TestUnmodeledMethodsUseNeutralDefault(t *testing.T) {
	for _, m := range []Method{
		MethodUnknown, MethodValidityFramework, MethodDueProcess,
		MethodConsentValidity, MethodDisclosureAdequacy,
		MethodFiduciaryCompliance, MethodPrincipalRights,
	} {
		r := dispatch(m, Input{})
		if r.score != 65.0 {
			t.Fatalf("method %v: got score %v, want 65.0", m, r.score)
		}
		if len(r.recommendations) != 1 || r.recommendations[0] != "Manual review recommended for detailed assessment" {
			t.Fatalf("method %v: got recommendations %v", m, r.recommendations)
		}
	}
}

func TestParseMethodUnknownName(t *testing.T) {
	if got := ParseMethod("no_such_method"); got != MethodUnknown {
		t.Fatalf("got %v, want MethodUnknown", got)
	}
	if got := ParseMethod("rights_protection_analysis"); got != MethodRightsProtection {
		t.Fatalf("got %v, want MethodRightsProtection", got)
	}
}
