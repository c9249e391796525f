package scoring

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Method is the closed set of criterion scoring methods. Unrecognized
// method names from configuration map to MethodUnknown, which scores the
// neutral default instead of failing the pipeline.
type Method int

const (
	MethodUnknown Method = iota
	MethodRightsProtection
	MethodValidityFramework
	MethodDueProcess
	MethodPuttaswamyAssessment
	MethodConsentValidity
	MethodDisclosureAdequacy
	MethodLawfulProcessing
	MethodFiduciaryCompliance
	MethodPrincipalRights
)

var methodNames = map[string]Method{
	"rights_protection_analysis":      MethodRightsProtection,
	"validity_framework_analysis":     MethodValidityFramework,
	"due_process_evaluation":          MethodDueProcess,
	"puttaswamy_framework_assessment": MethodPuttaswamyAssessment,
	"consent_validity_analysis":       MethodConsentValidity,
	"disclosure_adequacy_assessment":  MethodDisclosureAdequacy,
	"lawful_processing_assessment":    MethodLawfulProcessing,
	"fiduciary_compliance_analysis":   MethodFiduciaryCompliance,
	"principal_rights_protection":     MethodPrincipalRights,
}

// ParseMethod resolves a configured method name. Unknown names are valid
// and degrade to the default score.
func ParseMethod(name string) Method {
	if m, ok := methodNames[name]; ok {
		return m
	}
	return MethodUnknown
}

// Criterion is one weighted check inside a scoring category.
type Criterion struct {
	Name   string
	Weight float64
	Method Method
}

// Category is one compliance dimension with its weight in the overall
// score and its ordered criteria.
type Category struct {
	Name     string
	Weight   float64
	Criteria []Criterion
}

// Scoring category names.
const (
	CategoryConstitutional = "constitutional_compliance"
	CategoryPrivacy        = "privacy_compliance"
	CategoryDPDPA          = "dpdpa_compliance"
)

type Registry struct {
	categories map[string]*Category
}

func (r *Registry) Category(name string) (*Category, bool) {
	c, ok := r.categories[name]
	return c, ok
}

func (r *Registry) CategoryWeight(name string) float64 {
	if c, ok := r.categories[name]; ok {
		return c.Weight
	}
	return 0.33
}

type criterionOverride struct {
	Weight        float64 `yaml:"weight"`
	ScoringMethod string  `yaml:"scoring_method"`
}

type categoryOverride struct {
	Weight   float64                      `yaml:"weight"`
	Criteria map[string]criterionOverride `yaml:"criteria"`
}

// LoadOverrides merges scoring category definitions from a YAML file.
// The map form does not preserve document order, so overridden criteria
// are sorted by name to keep scoring deterministic.
func (r *Registry) LoadOverrides(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read scoring overrides: %w", err)
	}

	var overrides map[string]categoryOverride
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return fmt.Errorf("parse scoring overrides: %w", err)
	}

	for name, o := range overrides {
		category := &Category{Name: name, Weight: o.Weight}
		for _, criterionName := range sortedKeys(o.Criteria) {
			c := o.Criteria[criterionName]
			category.Criteria = append(category.Criteria, Criterion{
				Name:   criterionName,
				Weight: c.Weight,
				Method: ParseMethod(c.ScoringMethod),
			})
		}
		r.categories[name] = category
	}
	return nil
}

func sortedKeys(m map[string]criterionOverride) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DefaultRegistry builds the builtin scoring criteria.
func DefaultRegistry() *Registry {
	return &Registry{categories: map[string]*Category{
		CategoryConstitutional: {
			Name:   CategoryConstitutional,
			Weight: 0.4,
			Criteria: []Criterion{
				{Name: "fundamental_rights_adherence", Weight: 0.3, Method: MethodRightsProtection},
				{Name: "constitutional_validity", Weight: 0.3, Method: MethodValidityFramework},
				{Name: "procedural_compliance", Weight: 0.4, Method: MethodDueProcess},
			},
		},
		CategoryPrivacy: {
			Name:   CategoryPrivacy,
			Weight: 0.3,
			Criteria: []Criterion{
				{Name: "article_21_compliance", Weight: 0.4, Method: MethodPuttaswamyAssessment},
				{Name: "consent_mechanism", Weight: 0.3, Method: MethodConsentValidity},
				{Name: "transparency", Weight: 0.3, Method: MethodDisclosureAdequacy},
			},
		},
		CategoryDPDPA: {
			Name:   CategoryDPDPA,
			Weight: 0.3,
			Criteria: []Criterion{
				{Name: "lawful_basis", Weight: 0.35, Method: MethodLawfulProcessing},
				{Name: "data_fiduciary_obligations", Weight: 0.35, Method: MethodFiduciaryCompliance},
				{Name: "data_principal_rights", Weight: 0.3, Method: MethodPrincipalRights},
			},
		},
	}}
}
