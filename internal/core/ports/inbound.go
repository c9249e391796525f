package ports

import (
	"context"
	"io"

	"github.com/nileshk/legal-analyzer/internal/core/domain"
)

// DocumentIngestor is the inbound contract for document upload orchestration.
type DocumentIngestor interface {
	Upload(ctx context.Context, filename, mimeType string, body io.Reader) (*domain.Document, error)
}

// DocumentReader is the inbound read model for document metadata and
// stored analysis results.
type DocumentReader interface {
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	GetAnalysis(ctx context.Context, id string) (*domain.DocumentAnalysis, error)
}

// DocumentProcessor is the inbound contract for asynchronous document
// analysis.
type DocumentProcessor interface {
	ProcessByID(ctx context.Context, documentID string) error
}

// DocumentAnalyzer runs the analysis pipeline synchronously over raw text,
// without any stored document.
type DocumentAnalyzer interface {
	Analyze(ctx context.Context, text string) (*domain.DocumentAnalysis, error)
}

// ReportService builds a downloadable compliance report for an analyzed
// document.
type ReportService interface {
	BuildReport(ctx context.Context, documentID string) ([]byte, string, error)
}
