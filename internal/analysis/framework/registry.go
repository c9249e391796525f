package framework

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile describes one legal analysis framework.
type Profile struct {
	Description         string
	ApplicableDocuments []string
	KeyArticles         []int
	KeyProvisions       []string
	// Lower number means higher priority in the final ordering.
	Priority int
}

// Framework keys. general_legal_analysis is the universal fallback.
const (
	ConstitutionalAnalysis = "constitutional_analysis"
	PrivacyRightsAnalysis  = "privacy_rights_analysis"
	DPDPACompliance        = "dpdpa_compliance"
	ContractLawAnalysis    = "contract_law_analysis"
	AdministrativeLaw      = "administrative_law"
	GeneralLegalAnalysis   = "general_legal_analysis"
)

type Registry struct {
	profiles map[string]*Profile
}

func (r *Registry) priority(name string) int {
	if p, ok := r.profiles[name]; ok {
		return p.Priority
	}
	return 5
}

func (r *Registry) appliesTo(name, documentType string) bool {
	p, ok := r.profiles[name]
	if !ok {
		return false
	}
	for _, dt := range p.ApplicableDocuments {
		if dt == documentType {
			return true
		}
	}
	return false
}

type profileOverride struct {
	Description         string   `yaml:"description"`
	ApplicableDocuments []string `yaml:"applicable_documents"`
	KeyArticles         []int    `yaml:"key_articles"`
	KeyProvisions       []string `yaml:"key_provisions"`
	Priority            *int     `yaml:"priority"`
}

// LoadOverrides merges framework definitions from a YAML file.
func (r *Registry) LoadOverrides(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read framework overrides: %w", err)
	}

	var overrides map[string]profileOverride
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return fmt.Errorf("parse framework overrides: %w", err)
	}

	for name, o := range overrides {
		p := &Profile{
			Description:         o.Description,
			ApplicableDocuments: o.ApplicableDocuments,
			KeyArticles:         o.KeyArticles,
			KeyProvisions:       o.KeyProvisions,
			Priority:            4,
		}
		if o.Priority != nil {
			p.Priority = *o.Priority
		}
		r.profiles[name] = p
	}
	return nil
}

// DefaultRegistry builds the builtin framework table.
func DefaultRegistry() *Registry {
	return &Registry{profiles: map[string]*Profile{
		ConstitutionalAnalysis: {
			Description: "Constitutional law analysis using Articles 1-395",
			ApplicableDocuments: []string{
				"government_notification", "constitutional_document", "supreme_court_judgment",
				"constitutional_amendment", "recruitment_rules", "office_memorandum",
			},
			KeyArticles: []int{1, 12, 14, 19, 21, 32, 356, 368},
			Priority:    1,
		},
		PrivacyRightsAnalysis: {
			Description: "Article 21 privacy rights and Puttaswamy judgment framework",
			ApplicableDocuments: []string{
				"privacy_policy", "dpdpa_compliance_document", "data_processing_agreement",
				"employment_contract", "service_agreement",
			},
			KeyArticles: []int{21},
			Priority:    2,
		},
		DPDPACompliance: {
			Description: "Digital Personal Data Protection Act 2023 compliance analysis",
			ApplicableDocuments: []string{
				"privacy_policy", "dpdpa_compliance_document", "data_processing_agreement",
			},
			KeyProvisions: []string{"section_3", "section_5", "section_8"},
			Priority:      2,
		},
		ContractLawAnalysis: {
			Description: "Indian Contract Act 1872 and commercial law analysis",
			ApplicableDocuments: []string{
				"service_agreement", "employment_contract", "non_disclosure_agreement",
				"partnership_agreement", "loan_agreement", "lease_agreement",
			},
			KeyArticles: []int{19, 21},
			Priority:    3,
		},
		AdministrativeLaw: {
			Description: "Administrative law and government action analysis",
			ApplicableDocuments: []string{
				"government_notification", "office_memorandum", "recruitment_rules",
				"policy_document", "compliance_manual",
			},
			KeyArticles: []int{14, 19, 21, 309, 356},
			Priority:    2,
		},
		GeneralLegalAnalysis: {
			Description:         "General legal document analysis framework",
			ApplicableDocuments: []string{"general_legal_document", "unknown"},
			Priority:            4,
		},
	}}
}
