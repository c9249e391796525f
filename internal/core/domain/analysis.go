package domain

// ClassificationResult is produced fresh on every classify call and never
// mutated afterwards.
//
// When a low score relabels DocumentType to "general_legal_document" or
// "unknown", Confidence still carries the original winning type's score.
// Callers that display the pair together must account for that.
type ClassificationResult struct {
	DocumentType string             `json:"document_type"`
	Confidence   float64            `json:"confidence"`
	AllScores    map[string]float64 `json:"all_scores"`
}

// Sentinel document types returned by threshold fallback.
const (
	DocTypeUnknown      = "unknown"
	DocTypeGeneralLegal = "general_legal_document"
)

// LegalIndicators is the content-indicator bundle extracted from document
// text. It feeds framework selection and scoring and is JSON-serializable
// for report consumers.
type LegalIndicators struct {
	ConstitutionalReferences []string           `json:"constitutional_references"`
	IndianCases              []string           `json:"indian_cases"`
	IndianStatutes           []string           `json:"indian_statutes"`
	PrivacyTerms             []string           `json:"privacy_terms"`
	GovernmentTerms          []string           `json:"government_terms"`
	LegalConcepts            []string           `json:"legal_concepts"`
	ConfidenceScores         map[string]float64 `json:"confidence_scores"`
	ArticleMentions          []int              `json:"article_mentions"`
	DPDPARelevance           bool               `json:"dpdpa_relevance"`
	ConstitutionalRelevance  bool               `json:"constitutional_relevance"`
}

// EnhancedChunk is a text chunk annotated with legal context.
type EnhancedChunk struct {
	ChunkID                 int             `json:"chunk_id"`
	Text                    string          `json:"text"`
	CharCount               int             `json:"char_count"`
	WordCount               int             `json:"word_count"`
	Indicators              LegalIndicators `json:"indian_legal_indicators"`
	ChunkType               string          `json:"chunk_type"`
	ConstitutionalRelevance float64         `json:"constitutional_relevance"`
	PrivacyRelevance        float64         `json:"privacy_relevance"`
	LegalImportance         float64         `json:"legal_importance"`
}

// FrameworkSelection is the ordered framework choice for one document.
type FrameworkSelection struct {
	SelectedFrameworks []string          `json:"selected_frameworks"`
	FrameworkCount     int               `json:"framework_count"`
	SelectionReasons   map[string]string `json:"selection_reasons"`
	DocumentType       string            `json:"document_type"`
	Confidence         float64           `json:"selection_confidence"`
}

// CategoryScore is one compliance dimension's result.
type CategoryScore struct {
	Score           float64            `json:"score"`
	CriterionScores map[string]float64 `json:"criterion_scores"`
	Issues          []string           `json:"issues"`
	Recommendations []string           `json:"recommendations"`
	Framework       string             `json:"framework"`
}

// CategoryRisk holds the risk reading for one scored category.
type CategoryRisk struct {
	RiskLevel string   `json:"risk_level"`
	Score     float64  `json:"score"`
	Issues    []string `json:"issues"`
}

// CriticalRisk surfaces a category whose risk landed at high or very_high.
type CriticalRisk struct {
	Category  string  `json:"category"`
	RiskLevel string  `json:"risk_level"`
	Score     float64 `json:"score"`
}

// RiskAssessment aggregates risk across scored categories.
type RiskAssessment struct {
	OverallRiskLevel string                  `json:"overall_risk_level"`
	CategoryRisks    map[string]CategoryRisk `json:"category_risks"`
	CriticalRisks    []CriticalRisk          `json:"critical_risks"`
}

// ComprehensiveScore is the weighted compliance result over the frameworks
// applied to one document.
type ComprehensiveScore struct {
	OverallScore    float64                  `json:"overall_score"`
	CategoryScores  map[string]CategoryScore `json:"category_scores"`
	RiskAssessment  RiskAssessment           `json:"risk_assessment"`
	ComplianceLevel string                   `json:"compliance_level"`
	CriticalIssues  []string                 `json:"critical_issues"`
	Recommendations []string                 `json:"recommendations"`
	ConfidenceLevel float64                  `json:"confidence_level"`
}

// DocumentAnalysis bundles everything the pipeline derives from one
// document's text. It is the scoring engine's input and the persisted
// analysis payload.
type DocumentAnalysis struct {
	Classification ClassificationResult `json:"classification"`
	Indicators     LegalIndicators      `json:"indian_legal_indicators"`
	Chunks         []EnhancedChunk      `json:"enhanced_chunks"`
	Frameworks     FrameworkSelection   `json:"framework_selection"`
	Score          ComprehensiveScore   `json:"comprehensive_score"`
}
