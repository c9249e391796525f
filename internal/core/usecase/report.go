package usecase

import (
	"context"
	"fmt"

	"github.com/nileshk/legal-analyzer/internal/core/domain"
	"github.com/nileshk/legal-analyzer/internal/core/ports"
)

type BuildReportUseCase struct {
	repo     ports.DocumentRepository
	exporter ports.ReportExporter
}

func NewBuildReportUseCase(repo ports.DocumentRepository, exporter ports.ReportExporter) *BuildReportUseCase {
	return &BuildReportUseCase{repo: repo, exporter: exporter}
}

// BuildReport renders the stored analysis of an analyzed document. It
// returns the report bytes and a suggested filename.
func (uc *BuildReportUseCase) BuildReport(ctx context.Context, documentID string) ([]byte, string, error) {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return nil, "", fmt.Errorf("fetch document by id: %w", err)
	}
	if doc.Status != domain.StatusAnalyzed {
		return nil, "", domain.WrapError(domain.ErrInvalidInput, "build report",
			fmt.Errorf("document status is %q, not analyzed", doc.Status))
	}

	analysis, err := uc.repo.GetAnalysis(ctx, documentID)
	if err != nil {
		return nil, "", fmt.Errorf("fetch analysis: %w", err)
	}

	data, err := uc.exporter.Export(ctx, doc, *analysis)
	if err != nil {
		return nil, "", fmt.Errorf("export report: %w", err)
	}

	return data, fmt.Sprintf("compliance_report_%s.xlsx", doc.ID), nil
}
