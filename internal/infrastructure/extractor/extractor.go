// Package extractor routes stored documents to the extractor matching
// their MIME type.
package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/nileshk/legal-analyzer/internal/core/domain"
	"github.com/nileshk/legal-analyzer/internal/core/ports"
	"github.com/nileshk/legal-analyzer/internal/infrastructure/extractor/pdf"
	"github.com/nileshk/legal-analyzer/internal/infrastructure/extractor/plaintext"
)

type Dispatcher struct {
	pdf       ports.TextExtractor
	plaintext ports.TextExtractor
}

func NewDispatcher(storage ports.ObjectStorage) *Dispatcher {
	return &Dispatcher{
		pdf:       pdf.NewExtractor(storage),
		plaintext: plaintext.NewExtractor(storage),
	}
}

func (d *Dispatcher) Extract(ctx context.Context, doc *domain.Document) (string, error) {
	switch {
	case doc.MimeType == "application/pdf" || strings.HasSuffix(strings.ToLower(doc.Filename), ".pdf"):
		return d.pdf.Extract(ctx, doc)
	case strings.HasPrefix(doc.MimeType, "text/") || doc.MimeType == "" || doc.MimeType == "application/octet-stream":
		return d.plaintext.Extract(ctx, doc)
	default:
		return "", domain.WrapError(domain.ErrInvalidInput, "extract text",
			fmt.Errorf("unsupported mime type %q", doc.MimeType))
	}
}
