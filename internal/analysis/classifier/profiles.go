package classifier

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Profile describes one document type: substring keywords, regex patterns,
// expected structural section names, and the dimension weights applied to
// each. Weights are deliberately not normalized across types; asymmetric
// scoring is part of the calibration.
type Profile struct {
	Keywords        []string
	Patterns        []string
	Structure       []string
	WeightKeyword   float64
	WeightPattern   float64
	WeightStructure float64

	compiled []*regexp.Regexp
}

const (
	defaultWeightKeyword   = 0.4
	defaultWeightPattern   = 0.3
	defaultWeightStructure = 0.3
	defaultThreshold       = 0.4
)

// compile precompiles the profile's patterns as case-insensitive multiline
// regexes. A malformed pattern compiles to nil: it never matches but still
// counts in the pattern denominator.
func (p *Profile) compile() {
	p.compiled = make([]*regexp.Regexp, len(p.Patterns))
	for i, pattern := range p.Patterns {
		re, err := regexp.Compile("(?im)" + pattern)
		if err != nil {
			continue
		}
		p.compiled[i] = re
	}
}

// Registry holds the document type profiles and per-type confidence
// thresholds. Built once at startup and read-only afterwards.
type Registry struct {
	profiles   map[string]*Profile
	thresholds map[string]float64
}

func (r *Registry) Profile(docType string) (*Profile, bool) {
	p, ok := r.profiles[docType]
	return p, ok
}

func (r *Registry) Threshold(docType string) float64 {
	if t, ok := r.thresholds[docType]; ok {
		return t
	}
	return defaultThreshold
}

func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.profiles))
	for t := range r.profiles {
		types = append(types, t)
	}
	return types
}

type profileOverride struct {
	Keywords        []string `yaml:"keywords"`
	Patterns        []string `yaml:"patterns"`
	Structure       []string `yaml:"structure"`
	WeightKeyword   *float64 `yaml:"weight_keyword"`
	WeightPattern   *float64 `yaml:"weight_pattern"`
	WeightStructure *float64 `yaml:"weight_structure"`
	Threshold       *float64 `yaml:"threshold"`
}

// LoadOverrides merges document type definitions from a YAML file into the
// registry. New types are added, existing ones replaced. Deployments extend
// the registry without touching the classification code.
func (r *Registry) LoadOverrides(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read profile overrides: %w", err)
	}

	var overrides map[string]profileOverride
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return fmt.Errorf("parse profile overrides: %w", err)
	}

	for docType, o := range overrides {
		p := &Profile{
			Keywords:        o.Keywords,
			Patterns:        o.Patterns,
			Structure:       o.Structure,
			WeightKeyword:   defaultWeightKeyword,
			WeightPattern:   defaultWeightPattern,
			WeightStructure: defaultWeightStructure,
		}
		if o.WeightKeyword != nil {
			p.WeightKeyword = *o.WeightKeyword
		}
		if o.WeightPattern != nil {
			p.WeightPattern = *o.WeightPattern
		}
		if o.WeightStructure != nil {
			p.WeightStructure = *o.WeightStructure
		}
		p.compile()
		r.profiles[docType] = p
		if o.Threshold != nil {
			r.thresholds[docType] = *o.Threshold
		}
	}
	return nil
}

// DefaultRegistry builds the builtin Indian legal document type table.
func DefaultRegistry() *Registry {
	profiles := map[string]*Profile{
		// Government documents
		"government_notification": {
			Keywords:        []string{"government of india", "notification", "ministry", "gazette", "office memorandum", "central government", "bharat sarkar"},
			Patterns:        []string{`No\.\s+[A-Z]-\d+`, `dated\s+the\s+\d+`, `Government\s+of\s+India`, `Ministry\s+of`, `Department\s+of`},
			Structure:       []string{"preamble", "notification", "signature", "seal"},
			WeightKeyword:   0.4, WeightPattern: 0.3, WeightStructure: 0.3,
		},
		"office_memorandum": {
			Keywords:        []string{"office memorandum", "om", "circular", "guidelines", "instructions", "departmental"},
			Patterns:        []string{`OFFICE\s+MEMORANDUM`, `O\.M\.\s+No`, `Circular\s+No`, `Guidelines`},
			Structure:       []string{"header", "subject", "body", "signature"},
			WeightKeyword:   0.5, WeightPattern: 0.3, WeightStructure: 0.2,
		},
		"recruitment_rules": {
			Keywords:        []string{"recruitment rules", "appointment", "selection", "eligibility", "qualification", "cadre"},
			Patterns:        []string{`Recruitment\s+Rules`, `post\s+of`, `Group\s+[AB]`, `Pay\s+Matrix`, `Level\s+\d+`},
			Structure:       []string{"rules", "schedule", "qualifications"},
			WeightKeyword:   0.4, WeightPattern: 0.4, WeightStructure: 0.2,
		},
		"policy_document": {
			Keywords:        []string{"policy", "objectives", "implementation", "strategy", "national policy"},
			Patterns:        []string{`National\s+Policy`, `Policy\s+Framework`, `Vision\s+\d{4}`},
			Structure:       []string{"objectives", "scope", "implementation", "review"},
			WeightKeyword:   0.4, WeightPattern: 0.3, WeightStructure: 0.3,
		},
		"compliance_manual": {
			Keywords:        []string{"compliance manual", "procedures", "internal controls", "audit", "regulatory compliance"},
			Patterns:        []string{`Compliance\s+Manual`, `Standard\s+Operating\s+Procedure`, `SOP\s+No`},
			Structure:       []string{"procedures", "responsibilities", "reporting", "review"},
			WeightKeyword:   0.5, WeightPattern: 0.3, WeightStructure: 0.2,
		},

		// Constitutional documents
		"constitutional_document": {
			Keywords:        []string{"constitution", "article", "fundamental rights", "directive principles", "part iii", "part iv"},
			Patterns:        []string{`Article\s+\d+`, `Constitution\s+of\s+India`, `Part\s+[IVX]+`, `Schedule\s+[IVX]+`},
			Structure:       []string{"articles", "parts", "schedules"},
			WeightKeyword:   0.3, WeightPattern: 0.5, WeightStructure: 0.2,
		},
		"constitutional_amendment": {
			Keywords:        []string{"constitutional amendment", "amendment act", "constitution amendment", "amending"},
			Patterns:        []string{`Constitution\s+\([^)]+\s+Amendment\)\s+Act`, `Amendment\s+Act\s+\d{4}`, `Article\s+368`},
			Structure:       []string{"amendment", "explanation", "commencement"},
			WeightKeyword:   0.4, WeightPattern: 0.4, WeightStructure: 0.2,
		},

		// Judicial documents
		"supreme_court_judgment": {
			Keywords:        []string{"supreme court", "bench", "justice", "appeal", "petition", "writ", "suo moto"},
			Patterns:        []string{`Supreme\s+Court\s+of\s+India`, `(\w+)\s+v\.?\s+(\w+)`, `AIR\s+\d{4}\s+SC`, `Justice\s+[A-Z]`},
			Structure:       []string{"case_title", "bench", "judgment", "orders"},
			WeightKeyword:   0.3, WeightPattern: 0.5, WeightStructure: 0.2,
		},
		"high_court_judgment": {
			Keywords:        []string{"high court", "division bench", "single bench", "writ petition", "appeal"},
			Patterns:        []string{`High\s+Court`, `Division\s+Bench`, `W\.P\.\s+No`, `Criminal\s+Appeal`},
			Structure:       []string{"case_details", "facts", "judgment", "order"},
			WeightKeyword:   0.3, WeightPattern: 0.4, WeightStructure: 0.3,
		},
		"tribunal_order": {
			Keywords:        []string{"tribunal", "appellate tribunal", "adjudicating authority", "order", "respondent"},
			Patterns:        []string{`Appellate\s+Tribunal`, `O\.A\.\s+No`, `M\.A\.\s+No`, `Original\s+Application`},
			Structure:       []string{"parties", "facts", "findings", "order"},
			WeightKeyword:   0.4, WeightPattern: 0.4, WeightStructure: 0.2,
		},
		"legal_notice": {
			Keywords:        []string{"legal notice", "notice", "advocate", "my client", "demand", "reply"},
			Patterns:        []string{`LEGAL\s+NOTICE`, `under\s+instructions?\s+from`, `within\s+\d+\s+days`},
			Structure:       []string{"addressee", "facts", "demand", "consequences"},
			WeightKeyword:   0.5, WeightPattern: 0.3, WeightStructure: 0.2,
		},
		"bail_application": {
			Keywords:        []string{"bail", "anticipatory bail", "accused", "custody", "surety"},
			Patterns:        []string{`Bail\s+Application`, `Section\s+4[38]9`, `Cr\.?P\.?C`, `FIR\s+No`},
			Structure:       []string{"applicant", "grounds", "prayer"},
			WeightKeyword:   0.4, WeightPattern: 0.4, WeightStructure: 0.2,
		},
		"first_information_report": {
			Keywords:        []string{"first information report", "fir", "police station", "complainant", "accused", "ipc"},
			Patterns:        []string{`F\.?I\.?R\.?\s+No`, `Police\s+Station`, `Section\s+\d+\s+IPC`, `Indian\s+Penal\s+Code`},
			Structure:       []string{"complainant", "occurrence", "sections", "signature"},
			WeightKeyword:   0.4, WeightPattern: 0.4, WeightStructure: 0.2,
		},
		"arbitration_award": {
			Keywords:        []string{"arbitration", "arbitral tribunal", "award", "claimant", "arbitrator"},
			Patterns:        []string{`Arbitration\s+and\s+Conciliation\s+Act`, `Arbitral\s+Award`, `Section\s+34`},
			Structure:       []string{"parties", "claims", "findings", "award"},
			WeightKeyword:   0.4, WeightPattern: 0.4, WeightStructure: 0.2,
		},

		// Privacy and data protection
		"privacy_policy": {
			Keywords:        []string{"privacy policy", "data collection", "personal information", "cookies", "data processing"},
			Patterns:        []string{`Privacy\s+Policy`, `Data\s+Protection`, `Personal\s+Data`, `Cookie\s+Policy`},
			Structure:       []string{"collection", "usage", "sharing", "rights"},
			WeightKeyword:   0.4, WeightPattern: 0.3, WeightStructure: 0.3,
		},
		"dpdpa_compliance_document": {
			Keywords:        []string{"dpdpa", "digital personal data protection act", "data fiduciary", "data principal", "consent"},
			Patterns:        []string{`DPDPA\s+2023`, `Data\s+Fiduciary`, `Data\s+Principal`, `Digital\s+Personal\s+Data`},
			Structure:       []string{"compliance", "procedures", "rights", "obligations"},
			WeightKeyword:   0.5, WeightPattern: 0.3, WeightStructure: 0.2,
		},
		"data_processing_agreement": {
			Keywords:        []string{"data processing agreement", "processor", "controller", "sub-processor", "data transfer"},
			Patterns:        []string{`Data\s+Processing\s+Agreement`, `Data\s+Processor`, `Standard\s+Contractual\s+Clauses`},
			Structure:       []string{"definitions", "obligations", "security", "termination"},
			WeightKeyword:   0.5, WeightPattern: 0.3, WeightStructure: 0.2,
		},

		// Commercial contracts
		"service_agreement": {
			Keywords:        []string{"service agreement", "services", "contractor", "client", "deliverables"},
			Patterns:        []string{`Service\s+Agreement`, `Statement\s+of\s+Work`, `Deliverables`, `Service\s+Level`},
			Structure:       []string{"scope", "deliverables", "payment", "termination"},
			WeightKeyword:   0.4, WeightPattern: 0.3, WeightStructure: 0.3,
		},
		"employment_contract": {
			Keywords:        []string{"employment", "employee", "employer", "salary", "designation", "terms of employment"},
			Patterns:        []string{`Employment\s+Agreement`, `Terms\s+of\s+Employment`, `Job\s+Description`, `Compensation`},
			Structure:       []string{"position", "duties", "compensation", "termination"},
			WeightKeyword:   0.4, WeightPattern: 0.3, WeightStructure: 0.3,
		},
		"non_disclosure_agreement": {
			Keywords:        []string{"non-disclosure", "confidential information", "disclosing party", "receiving party", "confidentiality"},
			Patterns:        []string{`Non-?Disclosure\s+Agreement`, `Confidential\s+Information`, `NDA`},
			Structure:       []string{"definitions", "obligations", "exclusions", "term"},
			WeightKeyword:   0.5, WeightPattern: 0.3, WeightStructure: 0.2,
		},
		"partnership_agreement": {
			Keywords:        []string{"partnership", "partners", "profit sharing", "capital contribution", "firm"},
			Patterns:        []string{`Partnership\s+Deed`, `Indian\s+Partnership\s+Act`, `profit\s+and\s+loss`},
			Structure:       []string{"partners", "capital", "profits", "dissolution"},
			WeightKeyword:   0.4, WeightPattern: 0.3, WeightStructure: 0.3,
		},
		"loan_agreement": {
			Keywords:        []string{"loan", "borrower", "lender", "interest rate", "repayment", "default"},
			Patterns:        []string{`Loan\s+Agreement`, `Rate\s+of\s+Interest`, `EMI`, `repayment\s+schedule`},
			Structure:       []string{"principal", "interest", "repayment", "security"},
			WeightKeyword:   0.4, WeightPattern: 0.3, WeightStructure: 0.3,
		},
		"lease_agreement": {
			Keywords:        []string{"lease", "lessor", "lessee", "rent", "premises", "tenancy"},
			Patterns:        []string{`Lease\s+Deed`, `Rent\s+Agreement`, `monthly\s+rent`, `security\s+deposit`},
			Structure:       []string{"premises", "rent", "term", "termination"},
			WeightKeyword:   0.4, WeightPattern: 0.3, WeightStructure: 0.3,
		},
		"power_of_attorney": {
			Keywords:        []string{"power of attorney", "attorney", "principal", "on my behalf", "authorize"},
			Patterns:        []string{`Power\s+of\s+Attorney`, `General\s+Power`, `Special\s+Power`, `lawful\s+attorney`},
			Structure:       []string{"principal", "attorney", "powers", "attestation"},
			WeightKeyword:   0.5, WeightPattern: 0.3, WeightStructure: 0.2,
		},
		"memorandum_of_association": {
			Keywords:        []string{"memorandum of association", "company", "share capital", "registered office", "objects"},
			Patterns:        []string{`Memorandum\s+of\s+Association`, `Companies\s+Act`, `Authori[sz]ed\s+Capital`},
			Structure:       []string{"name", "office", "objects", "capital", "subscribers"},
			WeightKeyword:   0.4, WeightPattern: 0.4, WeightStructure: 0.2,
		},
		"tax_assessment_order": {
			Keywords:        []string{"assessment", "income tax", "assessee", "assessment year", "demand"},
			Patterns:        []string{`Income\s+Tax\s+Act`, `Assessment\s+Year\s+\d{4}`, `Section\s+14[34]`, `PAN`},
			Structure:       []string{"assessee", "computation", "demand", "appeal"},
			WeightKeyword:   0.4, WeightPattern: 0.4, WeightStructure: 0.2,
		},
		"rti_application": {
			Keywords:        []string{"right to information", "rti", "public information officer", "information sought"},
			Patterns:        []string{`Right\s+to\s+Information\s+Act`, `RTI\s+Act\s+2005`, `Public\s+Information\s+Officer`},
			Structure:       []string{"applicant", "information", "fee", "declaration"},
			WeightKeyword:   0.5, WeightPattern: 0.3, WeightStructure: 0.2,
		},

		// Default bucket
		"general_legal_document": {
			Keywords:        []string{"legal", "law", "agreement", "contract", "terms"},
			Patterns:        []string{`Agreement`, `Contract`, `Terms`, `Legal`},
			Structure:       []string{"parties", "terms", "obligations"},
			WeightKeyword:   0.3, WeightPattern: 0.3, WeightStructure: 0.4,
		},
	}

	for _, p := range profiles {
		p.compile()
	}

	return &Registry{
		profiles: profiles,
		thresholds: map[string]float64{
			"government_notification":   0.7,
			"constitutional_document":   0.6,
			"supreme_court_judgment":    0.8,
			"high_court_judgment":       0.7,
			"privacy_policy":            0.6,
			"dpdpa_compliance_document": 0.8,
			"data_processing_agreement": 0.6,
			"employment_contract":       0.5,
			"service_agreement":         0.5,
			"non_disclosure_agreement":  0.5,
			"first_information_report":  0.7,
		},
	}
}
