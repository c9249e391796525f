// Package framework selects the legal analysis frameworks applicable to a
// classified document. Selection is deterministic and permissive: unknown
// document types simply match nothing and fall through to the general
// fallback.
package framework

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nileshk/legal-analyzer/internal/core/domain"
)

const (
	minFrameworks = 1
	maxFrameworks = 4

	// Any legal document classified this confidently is assumed to carry
	// a constitutional dimension.
	constitutionalDefaultConfidence = 0.5
)

type Selector struct {
	registry *Registry
}

func NewSelector(registry *Registry) *Selector {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Selector{registry: registry}
}

// Select builds the ordered framework list for one document. The result
// always holds between 1 and 4 frameworks.
func (s *Selector) Select(documentType string, confidence float64, indicators domain.LegalIndicators) domain.FrameworkSelection {
	selected := []string{}

	// Step 1: primary selection by document type, in stable registry order.
	for _, name := range orderedFrameworkNames() {
		if s.registry.appliesTo(name, documentType) {
			selected = append(selected, name)
		}
	}

	// Step 2: content-based selection.
	for _, name := range contentFrameworks(indicators) {
		selected = appendUnique(selected, name)
	}

	// Step 3: confident legal documents always get constitutional review.
	if confidence >= constitutionalDefaultConfidence {
		selected = appendUnique(selected, ConstitutionalAnalysis)
	}

	// Step 4: category combination rules.
	for _, name := range combinationRules[categorize(documentType)] {
		selected = appendUnique(selected, name)
	}

	// Step 5: stable priority sort, minimum fallback, maximum truncation.
	sort.SliceStable(selected, func(i, j int) bool {
		return s.registry.priority(selected[i]) < s.registry.priority(selected[j])
	})
	if len(selected) < minFrameworks {
		selected = appendUnique(selected, GeneralLegalAnalysis)
	}
	if len(selected) > maxFrameworks {
		selected = selected[:maxFrameworks]
	}

	// Step 6: per-framework selection reasoning.
	reasons := make(map[string]string, len(selected))
	for _, name := range selected {
		reasons[name] = s.selectionReason(name, documentType, confidence, indicators)
	}

	return domain.FrameworkSelection{
		SelectedFrameworks: selected,
		FrameworkCount:     len(selected),
		SelectionReasons:   reasons,
		DocumentType:       documentType,
		Confidence:         confidence,
	}
}

// orderedFrameworkNames fixes primary-selection iteration order so that
// identical inputs always produce identical selections.
func orderedFrameworkNames() []string {
	return []string{
		ConstitutionalAnalysis,
		PrivacyRightsAnalysis,
		DPDPACompliance,
		ContractLawAnalysis,
		AdministrativeLaw,
		GeneralLegalAnalysis,
	}
}

func contentFrameworks(indicators domain.LegalIndicators) []string {
	frameworks := []string{}
	if indicators.ConstitutionalRelevance {
		frameworks = append(frameworks, ConstitutionalAnalysis)
	}
	// Any privacy signal pulls in both privacy frameworks.
	if indicators.DPDPARelevance || len(indicators.PrivacyTerms) > 0 {
		frameworks = append(frameworks, PrivacyRightsAnalysis, DPDPACompliance)
	}
	if len(indicators.GovernmentTerms) > 0 {
		frameworks = append(frameworks, AdministrativeLaw)
	}
	return frameworks
}

var combinationRules = map[string][]string{
	"government_documents": {ConstitutionalAnalysis, AdministrativeLaw},
	"privacy_documents":    {PrivacyRightsAnalysis, DPDPACompliance, ConstitutionalAnalysis},
	"commercial_contracts": {ContractLawAnalysis, ConstitutionalAnalysis},
	"judicial_documents":   {ConstitutionalAnalysis},
}

func categorize(documentType string) string {
	switch documentType {
	case "government_notification", "office_memorandum", "recruitment_rules":
		return "government_documents"
	case "privacy_policy", "dpdpa_compliance_document", "data_processing_agreement":
		return "privacy_documents"
	case "service_agreement", "employment_contract", "non_disclosure_agreement",
		"partnership_agreement", "loan_agreement", "lease_agreement":
		return "commercial_contracts"
	case "supreme_court_judgment", "high_court_judgment", "tribunal_order":
		return "judicial_documents"
	default:
		return "general_documents"
	}
}

func appendUnique(list []string, name string) []string {
	for _, existing := range list {
		if existing == name {
			return list
		}
	}
	return append(list, name)
}

func (s *Selector) selectionReason(name, documentType string, confidence float64, indicators domain.LegalIndicators) string {
	reasons := []string{}

	if s.registry.appliesTo(name, documentType) {
		reasons = append(reasons, fmt.Sprintf("Document type '%s' matches framework scope", documentType))
	}

	switch name {
	case ConstitutionalAnalysis:
		if indicators.ConstitutionalRelevance {
			reasons = append(reasons, "Constitutional content detected")
		}
	case PrivacyRightsAnalysis:
		if len(indicators.PrivacyTerms) > 0 {
			reasons = append(reasons, "Privacy-related content identified")
		}
	case DPDPACompliance:
		if indicators.DPDPARelevance {
			reasons = append(reasons, "DPDPA compliance requirements identified")
		}
	case AdministrativeLaw:
		if len(indicators.GovernmentTerms) > 0 {
			reasons = append(reasons, "Government action content identified")
		}
	}

	if confidence >= 0.7 {
		reasons = append(reasons, "High classification confidence supports framework application")
	}

	// Frameworks pulled in purely by combination rules land here.
	if len(reasons) == 0 {
		reasons = append(reasons, "Selected based on document analysis and legal framework requirements")
	}

	return strings.Join(reasons, "; ")
}
