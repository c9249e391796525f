package classifier

import (
	"strings"
	"testing"

	"github.com/nileshk/legal-analyzer/internal/core/domain"
)

func testRegistry(keywordWeight float64, thresholds map[string]float64) *Registry {
	profile := &Profile{
		Keywords:      []string{"alpha"},
		WeightKeyword: keywordWeight,
	}
	profile.compile()
	if thresholds == nil {
		thresholds = map[string]float64{}
	}
	return &Registry{
		profiles:   map[string]*Profile{"test_doc": profile},
		thresholds: thresholds,
	}
}

// longText builds a text of wordCount words where every word matches the
// test profile keyword, so the length penalty is the only variable.
func longText(wordCount int) string {
	words := make([]string, wordCount)
	for i := range words {
		words[i] = "alpha"
	}
	return strings.Join(words, " ")
}

func TestClassifyShortTextReturnsUnknown(t *testing.T) {
	c := New(nil, nil)

	for _, text := range []string{"", "   ", "short", "\n\t  ab  \n"} {
		result := c.Classify(text)
		if result.DocumentType != domain.DocTypeUnknown {
			t.Fatalf("text %q: got type %q, want %q", text, result.DocumentType, domain.DocTypeUnknown)
		}
		if result.Confidence != 0.0 {
			t.Fatalf("text %q: got confidence %v, want 0.0", text, result.Confidence)
		}
		if len(result.AllScores) != 0 {
			t.Fatalf("text %q: got %d scores, want empty map", text, len(result.AllScores))
		}
	}
}

func TestClassifyFullKeywordMatch(t *testing.T) {
	c := New(testRegistry(1.0, nil), nil)

	result := c.Classify(longText(100))
	if result.DocumentType != "test_doc" {
		t.Fatalf("got type %q, want test_doc", result.DocumentType)
	}
	if result.Confidence != 1.0 {
		t.Fatalf("got confidence %v, want 1.0", result.Confidence)
	}
}

func TestClassifyLengthPenalty(t *testing.T) {
	c := New(testRegistry(1.0, map[string]float64{"test_doc": 0.0}), nil)

	// 50 words halves the score regardless of keyword density.
	result := c.Classify(longText(50))
	if result.Confidence != 0.5 {
		t.Fatalf("got confidence %v, want 0.5", result.Confidence)
	}
}

func TestClassifyThresholdFallbackToGeneral(t *testing.T) {
	// Score lands at 0.3: below the 0.9 threshold but above the 0.2
	// general floor.
	c := New(testRegistry(0.3, map[string]float64{"test_doc": 0.9}), nil)

	result := c.Classify(longText(100))
	if result.DocumentType != domain.DocTypeGeneralLegal {
		t.Fatalf("got type %q, want %q", result.DocumentType, domain.DocTypeGeneralLegal)
	}
	// Relabeling keeps the original winning score.
	if result.Confidence != 0.3 {
		t.Fatalf("got confidence %v, want 0.3", result.Confidence)
	}
	if result.AllScores["test_doc"] != 0.3 {
		t.Fatalf("all_scores[test_doc] = %v, want 0.3", result.AllScores["test_doc"])
	}
}

func TestClassifyThresholdFallbackToUnknown(t *testing.T) {
	c := New(testRegistry(0.15, map[string]float64{"test_doc": 0.9}), nil)

	result := c.Classify(longText(100))
	if result.DocumentType != domain.DocTypeUnknown {
		t.Fatalf("got type %q, want %q", result.DocumentType, domain.DocTypeUnknown)
	}
	if result.Confidence != 0.15 {
		t.Fatalf("got confidence %v, want 0.15", result.Confidence)
	}
}

func TestClassifyGovernmentNotification(t *testing.T) {
	c := New(nil, nil)
	text := `GOVERNMENT OF INDIA
Ministry of Electronics and Information Technology
Department of Information Technology
NOTIFICATION
New Delhi, dated the 12th August 2023
No. G-12011/19/2023
S.O. 4113(E). In exercise of the powers conferred by Article 309 of the
Constitution of India, the Central Government hereby notifies the following
rules for the processing of personal data under DPDPA 2023. This notification
shall be published in the Gazette of India. Whereas every data fiduciary shall
obtain consent from the data principal before processing of personal data,
provided that the preamble to these rules binds every ministry and department.
Issued under the signature and seal of the undersigned.`

	result := c.Classify(text)
	if result.DocumentType != "government_notification" {
		t.Fatalf("got type %q, want government_notification", result.DocumentType)
	}
	// The per-type threshold is 0.7; the label survives only above it.
	if result.Confidence < 0.7 {
		t.Fatalf("got confidence %v, want >= 0.7", result.Confidence)
	}
}

// Appending profile keywords to a document can only add keyword, pattern
// and bonus matches and raise the word count, so the type's score must
// never drop.
func TestScoreMonotonicInMatchingKeywords(t *testing.T) {
	registry := DefaultRegistry()
	c := New(registry, nil)
	profile, ok := registry.Profile("government_notification")
	if !ok {
		t.Fatal("government_notification profile missing")
	}

	text := "A base document concerning administrative matters in India today."
	prev := c.Classify(text).AllScores["government_notification"]
	for _, keyword := range profile.Keywords {
		text += " " + keyword
		score := c.Classify(text).AllScores["government_notification"]
		if score < prev {
			t.Fatalf("score dropped from %v to %v after appending %q", prev, score, keyword)
		}
		prev = score
	}
	if prev == 0 {
		t.Fatal("expected a positive score after appending every keyword")
	}
}

func TestClassifyDeterministic(t *testing.T) {
	c := New(nil, nil)
	text := `GOVERNMENT OF INDIA
Ministry of Electronics and Information Technology
NOTIFICATION
New Delhi, the 12th August 2023
S.O. 4113(E). In exercise of the powers conferred by Article 309 of the
Constitution of India, the Central Government hereby notifies the following
rules for the processing of personal data under DPDPA 2023, provided that
every data fiduciary shall obtain consent before processing of data.`

	first := c.Classify(text)
	for i := 0; i < 5; i++ {
		again := c.Classify(text)
		if again.DocumentType != first.DocumentType || again.Confidence != first.Confidence {
			t.Fatalf("run %d: got (%q, %v), want (%q, %v)",
				i, again.DocumentType, again.Confidence, first.DocumentType, first.Confidence)
		}
	}
}

func TestClassifyScoresAllRegisteredTypes(t *testing.T) {
	registry := DefaultRegistry()
	c := New(registry, nil)

	result := c.Classify(longText(100))
	if len(result.AllScores) != len(registry.profiles) {
		t.Fatalf("got %d scores, want %d", len(result.AllScores), len(registry.profiles))
	}
	for docType, score := range result.AllScores {
		if score < 0.0 || score > 1.0 {
			t.Fatalf("type %q: score %v out of [0,1]", docType, score)
		}
	}
}

func TestIndianLegalBonusCaps(t *testing.T) {
	c := New(nil, nil)
	text := `Article 21 of the Constitution of India, the Indian Penal Code,
Government of India, whereas the powers conferred hereby`

	bonus := c.indianLegalBonus(text)
	// Four categories hit, one tenth each.
	if bonus != 0.4 {
		t.Fatalf("got bonus %v, want 0.4", bonus)
	}
}

func TestConfidenceLevelBuckets(t *testing.T) {
	cases := []struct {
		confidence float64
		want       string
	}{
		{0.95, "very_high"},
		{0.9, "very_high"},
		{0.7, "high"},
		{0.69, "medium"},
		{0.5, "medium"},
		{0.3, "low"},
		{0.29, "very_low"},
		{0.0, "very_low"},
	}
	for _, tc := range cases {
		if got := ConfidenceLevel(tc.confidence); got != tc.want {
			t.Fatalf("confidence %v: got %q, want %q", tc.confidence, got, tc.want)
		}
	}
}
