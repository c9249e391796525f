package ports

import (
	"context"
	"io"

	"github.com/nileshk/legal-analyzer/internal/core/domain"
)

// DocumentRepository persists and reads document state and analysis results.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error
	SaveAnalysis(ctx context.Context, id string, analysis domain.DocumentAnalysis) error
	GetAnalysis(ctx context.Context, id string) (*domain.DocumentAnalysis, error)
}

// ObjectStorage stores source documents.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes/consumes analysis events.
type MessageQueue interface {
	PublishAnalysisRequested(ctx context.Context, documentID string) error
	SubscribeAnalysisRequested(ctx context.Context, handler func(context.Context, string) error) error
}

// TextExtractor extracts plain text from a stored document.
type TextExtractor interface {
	Extract(ctx context.Context, doc *domain.Document) (string, error)
}

// Chunker splits text into analyzable chunks.
type Chunker interface {
	Split(text string) []string
}

// GraphStore maintains the legal knowledge graph: constitutional articles,
// landmark cases, and per-document mention links.
type GraphStore interface {
	EnsureSchema(ctx context.Context) error
	UpsertDocument(ctx context.Context, doc *domain.Document, analysis domain.DocumentAnalysis) error
}

// ReportExporter renders an analysis into a downloadable report.
type ReportExporter interface {
	Export(ctx context.Context, doc *domain.Document, analysis domain.DocumentAnalysis) ([]byte, error)
}
