package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nileshk/legal-analyzer/internal/analysis/classifier"
	"github.com/nileshk/legal-analyzer/internal/analysis/framework"
	"github.com/nileshk/legal-analyzer/internal/analysis/indicators"
	"github.com/nileshk/legal-analyzer/internal/analysis/scoring"
	"github.com/nileshk/legal-analyzer/internal/core/domain"
	"github.com/nileshk/legal-analyzer/internal/core/ports"
)

// AnalyzeDocumentUseCase runs the full analysis pipeline over raw text:
// indicator extraction, classification, chunk enrichment, framework
// selection and compliance scoring. It holds no per-request state; every
// call is independent and the use case is safe for concurrent use.
type AnalyzeDocumentUseCase struct {
	classifier *classifier.Classifier
	selector   *framework.Selector
	engine     *scoring.Engine
	chunker    ports.Chunker
	logger     *slog.Logger
}

func NewAnalyzeDocumentUseCase(
	cls *classifier.Classifier,
	selector *framework.Selector,
	engine *scoring.Engine,
	chunker ports.Chunker,
	logger *slog.Logger,
) *AnalyzeDocumentUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalyzeDocumentUseCase{
		classifier: cls,
		selector:   selector,
		engine:     engine,
		chunker:    chunker,
		logger:     logger,
	}
}

func (uc *AnalyzeDocumentUseCase) Analyze(ctx context.Context, text string) (*domain.DocumentAnalysis, error) {
	if len(text) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "analyze document", errors.New("empty text"))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ind := indicators.Extract(text)
	classification := uc.classifier.Classify(text)

	chunks := uc.chunker.Split(text)
	enriched := make([]domain.EnhancedChunk, 0, len(chunks))
	for i, chunk := range chunks {
		enriched = append(enriched, indicators.Enrich(i, chunk))
	}

	selection := uc.selector.Select(classification.DocumentType, classification.Confidence, ind)

	score := uc.engine.Score(scoring.Input{
		Classification: classification,
		Indicators:     ind,
		Chunks:         enriched,
	}, selection.SelectedFrameworks)

	uc.logger.Info("document analyzed",
		"document_type", classification.DocumentType,
		"confidence", classification.Confidence,
		"frameworks", selection.FrameworkCount,
		"overall_score", score.OverallScore,
		"compliance_level", score.ComplianceLevel,
	)

	return &domain.DocumentAnalysis{
		Classification: classification,
		Indicators:     ind,
		Chunks:         enriched,
		Frameworks:     selection,
		Score:          score,
	}, nil
}
