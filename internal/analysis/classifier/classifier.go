// Package classifier implements rule-based classification of Indian legal
// documents. Scoring is deterministic: keyword, regex pattern and structure
// dimensions are weighted per document type, topped up by a shared Indian
// legal context bonus and penalized for short inputs.
package classifier

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/nileshk/legal-analyzer/internal/core/domain"
)

// minTextLength is the stripped-length guard below which classification
// short-circuits to unknown.
const minTextLength = 10

// generalFallbackScore is the floor above which a sub-threshold winner is
// relabeled general_legal_document instead of unknown.
const generalFallbackScore = 0.2

type Classifier struct {
	registry   *Registry
	indicators map[string][]*regexp.Regexp
	logger     *slog.Logger
}

func New(registry *Registry, logger *slog.Logger) *Classifier {
	if registry == nil {
		registry = DefaultRegistry()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{
		registry:   registry,
		indicators: compileIndicatorCategories(),
		logger:     logger,
	}
}

// SupportedTypes lists the registered document types in no particular
// order.
func (c *Classifier) SupportedTypes() []string {
	return c.registry.Types()
}

// Indian legal system indicator categories for the shared context bonus.
// One hit per category counts; the bonus caps at 0.5.
func compileIndicatorCategories() map[string][]*regexp.Regexp {
	raw := map[string][]string{
		"constitutional_markers": {
			`Article\s+\d+`, `Constitution\s+of\s+India`, `Fundamental\s+Rights`,
			`Directive\s+Principles`, `Supreme\s+Court`, `High\s+Court`,
		},
		"indian_statutes": {
			`Indian\s+Penal\s+Code`, `Companies\s+Act`, `Contract\s+Act`,
			`DPDPA\s+2023`, `IT\s+Act`, `Consumer\s+Protection\s+Act`,
		},
		"government_indicators": {
			`Government\s+of\s+India`, `Ministry\s+of`, `Central\s+Government`,
			`State\s+Government`, `Gazette\s+of\s+India`,
		},
		"legal_concepts": {
			`whereas`, `hereby`, `provided\s+that`, `notwithstanding`,
			`subject\s+to`, `in\s+exercise\s+of`,
		},
	}

	compiled := make(map[string][]*regexp.Regexp, len(raw))
	for category, patterns := range raw {
		for _, pattern := range patterns {
			re, err := regexp.Compile("(?i)" + pattern)
			if err != nil {
				continue
			}
			compiled[category] = append(compiled[category], re)
		}
	}
	return compiled
}

// Classify scores the text against every registered document type and
// returns the winner with its confidence and the full score map.
//
// Inputs shorter than 10 stripped characters return ("unknown", 0.0, {})
// without scoring. A failure while scoring one type zeroes that type and
// classification continues.
func (c *Classifier) Classify(text string) domain.ClassificationResult {
	if len(strings.TrimSpace(text)) < minTextLength {
		return domain.ClassificationResult{
			DocumentType: domain.DocTypeUnknown,
			Confidence:   0.0,
			AllScores:    map[string]float64{},
		}
	}

	textLower := strings.ToLower(text)
	wordCount := len(strings.Fields(text))
	lengthFactor := lengthPenalty(wordCount)

	// Shared across every type scored in this call.
	bonus := c.indianLegalBonus(text)

	scores := make(map[string]float64, len(c.registry.profiles))
	for docType, profile := range c.registry.profiles {
		score, err := scoreProfile(profile, text, textLower, bonus, lengthFactor)
		if err != nil {
			c.logger.Warn("document type scoring failed", "document_type", docType, "error", err)
			score = 0.0
		}
		scores[docType] = score
	}

	bestType, bestScore := "", -1.0
	for docType, score := range scores {
		if score > bestScore || (score == bestScore && docType < bestType) {
			bestType, bestScore = docType, score
		}
	}

	// Threshold fallback keeps the winning score as the reported
	// confidence even after relabeling.
	if bestScore < c.registry.Threshold(bestType) {
		if bestScore > generalFallbackScore {
			bestType = domain.DocTypeGeneralLegal
		} else {
			bestType = domain.DocTypeUnknown
		}
	}

	return domain.ClassificationResult{
		DocumentType: bestType,
		Confidence:   bestScore,
		AllScores:    scores,
	}
}

func scoreProfile(profile *Profile, text, textLower string, bonus, lengthFactor float64) (score float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scoring panic: %v", r)
		}
	}()

	raw := keywordScore(textLower, profile.Keywords)*profile.WeightKeyword +
		patternScore(text, profile.compiled)*profile.WeightPattern +
		structureScore(textLower, profile.Structure)*profile.WeightStructure +
		bonus*0.1

	raw *= lengthFactor
	return clamp01(raw), nil
}

func keywordScore(textLower string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0.0
	}
	matches := 0
	for _, keyword := range keywords {
		if strings.Contains(textLower, strings.ToLower(keyword)) {
			matches++
		}
	}
	return float64(matches) / float64(len(keywords))
}

func patternScore(text string, compiled []*regexp.Regexp) float64 {
	if len(compiled) == 0 {
		return 0.0
	}
	matches := 0
	for _, re := range compiled {
		if re != nil && re.MatchString(text) {
			matches++
		}
	}
	return float64(matches) / float64(len(compiled))
}

func structureScore(textLower string, elements []string) float64 {
	if len(elements) == 0 {
		return 0.0
	}
	matches := 0
	for _, element := range elements {
		if strings.Contains(textLower, strings.ToLower(element)) {
			matches++
		}
	}
	return float64(matches) / float64(len(elements))
}

func (c *Classifier) indianLegalBonus(text string) float64 {
	bonus := 0.0
	for _, patterns := range c.indicators {
		for _, re := range patterns {
			if re.MatchString(text) {
				bonus += 0.1
				break // one hit per category
			}
		}
	}
	if bonus > 0.5 {
		bonus = 0.5
	}
	return bonus
}

// Short documents are penalized regardless of keyword density so a
// handful of words cannot claim high confidence.
func lengthPenalty(wordCount int) float64 {
	factor := float64(wordCount) / 100.0
	if factor > 1.0 {
		return 1.0
	}
	return factor
}

func clamp01(v float64) float64 {
	if v < 0.0 {
		return 0.0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}

// ConfidenceLevel converts a confidence score to a reporting bucket.
func ConfidenceLevel(confidence float64) string {
	switch {
	case confidence >= 0.9:
		return "very_high"
	case confidence >= 0.7:
		return "high"
	case confidence >= 0.5:
		return "medium"
	case confidence >= 0.3:
		return "low"
	default:
		return "very_low"
	}
}
