package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/nileshk/legal-analyzer/internal/core/domain"
	"github.com/nileshk/legal-analyzer/internal/core/ports"
)

type ProcessDocumentUseCase struct {
	repo      ports.DocumentRepository
	extractor ports.TextExtractor
	analyzer  ports.DocumentAnalyzer
	graph     ports.GraphStore
}

func NewProcessDocumentUseCase(
	repo ports.DocumentRepository,
	extractor ports.TextExtractor,
	analyzer ports.DocumentAnalyzer,
	graph ports.GraphStore,
) *ProcessDocumentUseCase {
	return &ProcessDocumentUseCase{
		repo:      repo,
		extractor: extractor,
		analyzer:  analyzer,
		graph:     graph,
	}
}

func (uc *ProcessDocumentUseCase) ProcessByID(ctx context.Context, documentID string) error {
	if err := uc.markStatus(ctx, documentID, domain.StatusProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	doc, analysis, err := uc.processPipeline(ctx, documentID)
	if err != nil {
		if failErr := uc.markFailed(ctx, documentID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.persistAnalysis(ctx, doc, *analysis); err != nil {
		if failErr := uc.markFailed(ctx, documentID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.markStatus(ctx, documentID, domain.StatusAnalyzed, ""); err != nil {
		return fmt.Errorf("set status=analyzed: %w", err)
	}

	return nil
}

func (uc *ProcessDocumentUseCase) processPipeline(ctx context.Context, documentID string) (*domain.Document, *domain.DocumentAnalysis, error) {
	doc, err := uc.loadDocument(ctx, documentID)
	if err != nil {
		return nil, nil, err
	}

	text, err := uc.extractText(ctx, doc)
	if err != nil {
		return nil, nil, err
	}

	analysis, err := uc.analyzer.Analyze(ctx, text)
	if err != nil {
		return nil, nil, fmt.Errorf("analyze document: %w", err)
	}

	doc.DocumentType = analysis.Classification.DocumentType
	doc.Confidence = analysis.Classification.Confidence

	return doc, analysis, nil
}

func (uc *ProcessDocumentUseCase) loadDocument(ctx context.Context, documentID string) (*domain.Document, error) {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("fetch document by id: %w", err)
	}
	return doc, nil
}

func (uc *ProcessDocumentUseCase) extractText(ctx context.Context, doc *domain.Document) (string, error) {
	text, err := uc.extractor.Extract(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}
	if text == "" {
		return "", domain.WrapError(domain.ErrInvalidInput, "extract text", errors.New("empty extracted text"))
	}
	return text, nil
}

func (uc *ProcessDocumentUseCase) persistAnalysis(ctx context.Context, doc *domain.Document, analysis domain.DocumentAnalysis) error {
	if err := uc.repo.SaveAnalysis(ctx, doc.ID, analysis); err != nil {
		return fmt.Errorf("save analysis: %w", err)
	}
	if uc.graph != nil {
		if err := uc.graph.UpsertDocument(ctx, doc, analysis); err != nil {
			return fmt.Errorf("index document in graph: %w", err)
		}
	}
	return nil
}

func (uc *ProcessDocumentUseCase) markStatus(ctx context.Context, documentID string, status domain.DocumentStatus, errMessage string) error {
	return uc.repo.UpdateStatus(ctx, documentID, status, errMessage)
}

func (uc *ProcessDocumentUseCase) markFailed(ctx context.Context, documentID string, processErr error) error {
	if processErr == nil {
		return nil
	}
	return uc.markStatus(ctx, documentID, domain.StatusFailed, processErr.Error())
}
