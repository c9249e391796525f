// Package neo4j maintains the constitutional knowledge graph: seeded
// articles, landmark cases and DPDPA provisions, plus per-document
// mention links created after analysis.
package neo4j

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/nileshk/legal-analyzer/internal/core/domain"
	"github.com/nileshk/legal-analyzer/internal/infrastructure/resilience"
)

type Store struct {
	driver   neo4j.DriverWithContext
	executor *resilience.Executor
	logger   *slog.Logger
}

type Options struct {
	ResilienceExecutor *resilience.Executor
	Logger             *slog.Logger
}

func New(uri, username, password string, logger *slog.Logger) (*Store, error) {
	return NewWithOptions(uri, username, password, Options{Logger: logger})
}

func NewWithOptions(uri, username, password string, options Options) (*Store, error) {
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}
	return &Store{
		driver:   driver,
		executor: options.ResilienceExecutor,
		logger:   logger,
	}, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

func (s *Store) run(ctx context.Context, operation, query string, params map[string]any) error {
	call := func(ctx context.Context) error {
		_, err := neo4j.ExecuteQuery(ctx, s.driver, query, params, neo4j.EagerResultTransformer)
		return err
	}
	if s.executor != nil {
		return s.executor.Execute(ctx, operation, call, classifyNeo4jError)
	}
	return call(ctx)
}

var schemaStatements = []string{
	`CREATE CONSTRAINT article_id IF NOT EXISTS FOR (a:Article) REQUIRE a.article_id IS UNIQUE`,
	`CREATE CONSTRAINT case_id IF NOT EXISTS FOR (c:Case) REQUIRE c.case_id IS UNIQUE`,
	`CREATE CONSTRAINT provision_id IF NOT EXISTS FOR (p:DPDPAProvision) REQUIRE p.provision_id IS UNIQUE`,
	`CREATE CONSTRAINT right_id IF NOT EXISTS FOR (r:FundamentalRight) REQUIRE r.right_id IS UNIQUE`,
	`CREATE CONSTRAINT document_id IF NOT EXISTS FOR (d:Document) REQUIRE d.document_id IS UNIQUE`,
	`CREATE INDEX article_number IF NOT EXISTS FOR (a:Article) ON (a.number)`,
	`CREATE INDEX case_year IF NOT EXISTS FOR (c:Case) ON (c.year)`,
}

// EnsureSchema applies constraints and indexes and seeds the
// constitutional reference set. Every statement is idempotent, so
// concurrent api/worker startups converge on the same graph.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if err := s.run(ctx, "neo4j.schema", stmt, nil); err != nil {
			return fmt.Errorf("apply graph schema: %w", err)
		}
	}
	if err := s.seedReferenceGraph(ctx); err != nil {
		return fmt.Errorf("seed reference graph: %w", err)
	}
	s.logger.Info("knowledge graph schema ready")
	return nil
}

type articleSeed struct {
	id      string
	number  int
	title   string
	part    string
	privacy string
}

type caseSeed struct {
	id        string
	name      string
	year      int
	citation  string
	benchSize int
	articles  []int
}

type provisionSeed struct {
	id      string
	title   string
	summary string
	basis   []int
}

var articleSeeds = []articleSeed{
	{"article_14", 14, "Equality before law", "Part III", "procedural safeguards against arbitrary data handling"},
	{"article_19", 19, "Protection of certain rights regarding freedom of speech etc.", "Part III", "chilling effects of surveillance on expression"},
	{"article_21", 21, "Protection of life and personal liberty", "Part III", "informational privacy as part of personal liberty"},
	{"article_32", 32, "Remedies for enforcement of rights", "Part III", "constitutional remedy for privacy violations"},
}

var caseSeeds = []caseSeed{
	{"puttaswamy_2017", "Justice K.S. Puttaswamy v Union of India", 2017, "(2017) 10 SCC 1", 9, []int{14, 19, 21}},
	{"kesavananda_1973", "Kesavananda Bharati v State of Kerala", 1973, "AIR 1973 SC 1461", 13, []int{14, 19}},
	{"maneka_1978", "Maneka Gandhi v Union of India", 1978, "AIR 1978 SC 597", 7, []int{14, 19, 21}},
}

var provisionSeeds = []provisionSeed{
	{"dpdpa_s4", "Section 4: Grounds for processing personal data", "processing only for a lawful purpose with consent or legitimate use", []int{21}},
	{"dpdpa_s5", "Section 5: Notice", "notice to the data principal before or at the time of consent", []int{19, 21}},
	{"dpdpa_s6", "Section 6: Consent", "free, specific, informed, unconditional and unambiguous consent", []int{21}},
	{"dpdpa_s8", "Section 8: Duties of data fiduciary", "security safeguards, accuracy and erasure obligations", []int{14, 21}},
}

func (s *Store) seedReferenceGraph(ctx context.Context) error {
	if err := s.run(ctx, "neo4j.seed", `
MERGE (r:FundamentalRight {right_id: $right_id})
ON CREATE SET r.name = $name, r.source = $source
`, map[string]any{
		"right_id": "right_to_privacy",
		"name":     "Right to Privacy",
		"source":   "Article 21, as read in Puttaswamy (2017)",
	}); err != nil {
		return err
	}

	for _, a := range articleSeeds {
		if err := s.run(ctx, "neo4j.seed", `
MERGE (a:Article:ConstitutionalProvision {article_id: $article_id})
ON CREATE SET a.number = $number, a.title = $title, a.part = $part,
	a.privacy_implications = $privacy
`, map[string]any{
			"article_id": a.id,
			"number":     a.number,
			"title":      a.title,
			"part":       a.part,
			"privacy":    a.privacy,
		}); err != nil {
			return err
		}
		if err := s.run(ctx, "neo4j.seed", `
MATCH (a:Article {article_id: $article_id})
MATCH (r:FundamentalRight {right_id: 'right_to_privacy'})
MERGE (a)-[:PROTECTS]->(r)
`, map[string]any{"article_id": a.id}); err != nil {
			return err
		}
	}

	for _, c := range caseSeeds {
		if err := s.run(ctx, "neo4j.seed", `
MERGE (c:Case:LegalPrecedent {case_id: $case_id})
ON CREATE SET c.name = $name, c.year = $year, c.citation = $citation,
	c.bench_size = $bench_size
`, map[string]any{
			"case_id":    c.id,
			"name":       c.name,
			"year":       c.year,
			"citation":   c.citation,
			"bench_size": c.benchSize,
		}); err != nil {
			return err
		}
		if err := s.run(ctx, "neo4j.seed", `
MATCH (c:Case {case_id: $case_id})
MATCH (a:Article) WHERE a.number IN $numbers
MERGE (c)-[:INTERPRETS]->(a)
`, map[string]any{"case_id": c.id, "numbers": c.articles}); err != nil {
			return err
		}
	}

	for _, p := range provisionSeeds {
		if err := s.run(ctx, "neo4j.seed", `
MERGE (p:DPDPAProvision:Regulation {provision_id: $provision_id})
ON CREATE SET p.title = $title, p.summary = $summary
`, map[string]any{
			"provision_id": p.id,
			"title":        p.title,
			"summary":      p.summary,
		}); err != nil {
			return err
		}
		if err := s.run(ctx, "neo4j.seed", `
MATCH (p:DPDPAProvision {provision_id: $provision_id})
MATCH (a:Article) WHERE a.number IN $numbers
MERGE (p)-[:IMPLEMENTS]->(a)
`, map[string]any{"provision_id": p.id, "numbers": p.basis}); err != nil {
			return err
		}
	}

	return s.run(ctx, "neo4j.seed", `
MATCH (r:FundamentalRight {right_id: 'right_to_privacy'})
MATCH (pc:PrivacyConcept)
MERGE (r)-[:ENCOMPASSES]->(pc)
`, nil)
}

// UpsertDocument records the analyzed document and links it to the
// constitutional entities its indicators mention. Re-analysis replaces
// the old mention links rather than accumulating duplicates.
func (s *Store) UpsertDocument(ctx context.Context, doc *domain.Document, analysis domain.DocumentAnalysis) error {
	if err := s.run(ctx, "neo4j.upsert_document", `
MERGE (d:Document {document_id: $document_id})
SET d.filename = $filename,
	d.document_type = $document_type,
	d.overall_score = $overall_score,
	d.compliance_level = $compliance_level,
	d.updated_at = datetime()
WITH d
OPTIONAL MATCH (d)-[rel:REFERENCES|DISCUSSES]->()
DELETE rel
`, map[string]any{
		"document_id":      doc.ID,
		"filename":         doc.Filename,
		"document_type":    analysis.Classification.DocumentType,
		"overall_score":    analysis.Score.OverallScore,
		"compliance_level": analysis.Score.ComplianceLevel,
	}); err != nil {
		return fmt.Errorf("upsert document node: %w", err)
	}

	if len(analysis.Indicators.ArticleMentions) > 0 {
		if err := s.run(ctx, "neo4j.upsert_document", `
MATCH (d:Document {document_id: $document_id})
MATCH (a:Article) WHERE a.number IN $numbers
MERGE (d)-[:REFERENCES]->(a)
`, map[string]any{
			"document_id": doc.ID,
			"numbers":     analysis.Indicators.ArticleMentions,
		}); err != nil {
			return fmt.Errorf("link article references: %w", err)
		}
	}

	if analysis.Indicators.DPDPARelevance {
		if err := s.run(ctx, "neo4j.upsert_document", `
MATCH (d:Document {document_id: $document_id})
MATCH (p:DPDPAProvision)
MERGE (d)-[:REFERENCES]->(p)
`, map[string]any{"document_id": doc.ID}); err != nil {
			return fmt.Errorf("link dpdpa provisions: %w", err)
		}
	}

	for _, term := range analysis.Indicators.PrivacyTerms {
		conceptID := conceptIDFor(term)
		if err := s.run(ctx, "neo4j.upsert_document", `
MERGE (pc:PrivacyConcept {concept_id: $concept_id})
ON CREATE SET pc.name = $name, pc.created_at = datetime()
WITH pc
MATCH (d:Document {document_id: $document_id})
MERGE (d)-[:DISCUSSES]->(pc)
`, map[string]any{
			"concept_id":  conceptID,
			"name":        term,
			"document_id": doc.ID,
		}); err != nil {
			return fmt.Errorf("link privacy concept %q: %w", term, err)
		}
	}

	s.logger.Debug("document indexed in knowledge graph",
		"document_id", doc.ID,
		"articles", len(analysis.Indicators.ArticleMentions),
		"privacy_concepts", len(analysis.Indicators.PrivacyTerms),
	)
	return nil
}

func conceptIDFor(term string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(term)), " ", "_")
}
