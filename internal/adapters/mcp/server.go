// Package mcpadapter exposes the analysis pipeline as MCP tools over
// stdio, so agent clients can classify and score legal text without the
// HTTP surface.
package mcpadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/nileshk/legal-analyzer/internal/analysis/classifier"
	"github.com/nileshk/legal-analyzer/internal/core/ports"
)

type Server struct {
	classifier *classifier.Classifier
	analyzer   ports.DocumentAnalyzer
	mcpServer  *server.MCPServer
}

func NewServer(name, version string, cls *classifier.Classifier, analyzer ports.DocumentAnalyzer) (*Server, error) {
	if cls == nil {
		return nil, fmt.Errorf("classifier cannot be nil")
	}
	if analyzer == nil {
		return nil, fmt.Errorf("analyzer cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		classifier: cls,
		analyzer:   analyzer,
		mcpServer:  mcpServer,
	}
	s.registerTools()
	return s, nil
}

func (s *Server) registerTools() {
	classifyTool := mcp.NewTool(
		"classify_document",
		mcp.WithDescription("Classify Indian legal text into a document type with confidence, alternatives and legal context"),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Document text to classify"),
		),
	)
	s.mcpServer.AddTool(classifyTool, s.handleClassifyDocument)

	analyzeTool := mcp.NewTool(
		"analyze_document",
		mcp.WithDescription("Run the full analysis pipeline: classification, legal indicators, framework selection and compliance scoring; returns the complete analysis as JSON"),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Document text to analyze"),
		),
	)
	s.mcpServer.AddTool(analyzeTool, s.handleAnalyzeDocument)

	scoreTool := mcp.NewTool(
		"score_document",
		mcp.WithDescription("Score legal text against the applicable compliance frameworks and summarize risk"),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Document text to score"),
		),
	)
	s.mcpServer.AddTool(scoreTool, s.handleScoreDocument)

	listTypesTool := mcp.NewTool(
		"list_document_types",
		mcp.WithDescription("List the Indian legal document types the classifier recognizes"),
	)
	s.mcpServer.AddTool(listTypesTool, s.handleListDocumentTypes)
}

func (s *Server) handleListDocumentTypes(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	types := s.classifier.SupportedTypes()
	sort.Strings(types)

	var b strings.Builder
	fmt.Fprintf(&b, "Supported document types (%d):\n", len(types))
	for _, docType := range types {
		fmt.Fprintf(&b, "- %s\n", docType)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleClassifyDocument(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	analysis := s.classifier.AnalyzeComprehensive(text)

	var b strings.Builder
	fmt.Fprintf(&b, "Document type: %s\n", analysis.DocumentType)
	fmt.Fprintf(&b, "Confidence: %.2f (%s)\n", analysis.Confidence, analysis.ConfidenceLevel)
	fmt.Fprintf(&b, "Complexity: %s\n", analysis.Characteristics.ComplexityLevel)
	fmt.Fprintf(&b, "Legal structure detected: %t\n", analysis.Characteristics.HasLegalStructure)
	fmt.Fprintf(&b, "Overall legal strength: %.2f\n", analysis.LegalContext.OverallLegalStrength)

	if len(analysis.Alternatives) > 0 {
		b.WriteString("\nAlternative classifications:\n")
		for _, alt := range analysis.Alternatives {
			fmt.Fprintf(&b, "- %s (%.2f, %s)\n", alt.DocumentType, alt.Confidence, alt.ConfidenceLevel)
		}
	}

	fmt.Fprintf(&b, "\nReasoning: %s\n", analysis.Reasoning)
	if len(analysis.Recommendations) > 0 {
		b.WriteString("Recommendations:\n")
		for _, rec := range analysis.Recommendations {
			fmt.Fprintf(&b, "- %s\n", rec)
		}
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleAnalyzeDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	analysis, err := s.analyzer.Analyze(ctx, text)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	payload, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal analysis: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}

func (s *Server) handleScoreDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	analysis, err := s.analyzer.Analyze(ctx, text)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	score := analysis.Score

	var b strings.Builder
	fmt.Fprintf(&b, "Overall compliance score: %.1f (%s)\n", score.OverallScore, score.ComplianceLevel)
	fmt.Fprintf(&b, "Overall risk level: %s\n", score.RiskAssessment.OverallRiskLevel)
	fmt.Fprintf(&b, "Frameworks applied: %s\n", strings.Join(analysis.Frameworks.SelectedFrameworks, ", "))
	fmt.Fprintf(&b, "Scoring confidence: %.2f\n", score.ConfidenceLevel)

	if len(score.CategoryScores) > 0 {
		b.WriteString("\nCategory scores:\n")
		for _, category := range sortedCategories(score.CategoryScores) {
			cs := score.CategoryScores[category]
			risk := score.RiskAssessment.CategoryRisks[category]
			fmt.Fprintf(&b, "- %s: %.1f (risk: %s)\n", category, cs.Score, risk.RiskLevel)
		}
	}
	if len(score.CriticalIssues) > 0 {
		b.WriteString("\nCritical issues:\n")
		for _, issue := range score.CriticalIssues {
			fmt.Fprintf(&b, "- %s\n", issue)
		}
	}
	if len(score.Recommendations) > 0 {
		b.WriteString("\nRecommendations:\n")
		for _, rec := range score.Recommendations {
			fmt.Fprintf(&b, "- %s\n", rec)
		}
	}

	return mcp.NewToolResultText(b.String()), nil
}

func sortedCategories[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Run serves the registered tools over stdio until the client disconnects.
func (s *Server) Run(context.Context) error {
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("serve stdio: %w", err)
	}
	return nil
}
