// Package excel renders a document's compliance analysis into an xlsx
// workbook for download.
package excel

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nileshk/legal-analyzer/internal/core/domain"
)

const (
	sheetSummary    = "Summary"
	sheetScores     = "Category Scores"
	sheetRisks      = "Risk Assessment"
	sheetIndicators = "Legal Indicators"
	sheetActions    = "Recommendations"
)

type Exporter struct{}

func NewExporter() *Exporter {
	return &Exporter{}
}

// Export builds the workbook in memory. Sheet content is fully derived
// from the stored analysis, so the same analysis always yields the same
// workbook.
func (e *Exporter) Export(_ context.Context, doc *domain.Document, analysis domain.DocumentAnalysis) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := writeSummary(f, doc, analysis); err != nil {
		return nil, err
	}
	if err := writeCategoryScores(f, analysis); err != nil {
		return nil, err
	}
	if err := writeRisks(f, analysis); err != nil {
		return nil, err
	}
	if err := writeIndicators(f, analysis); err != nil {
		return nil, err
	}
	if err := writeRecommendations(f, analysis); err != nil {
		return nil, err
	}

	// Drop the default sheet so Summary opens first.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}
	index, err := f.GetSheetIndex(sheetSummary)
	if err != nil {
		return nil, fmt.Errorf("find summary sheet: %w", err)
	}
	f.SetActiveSheet(index)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func newSheet(f *excelize.File, name string) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values ...any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name for row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d on %s: %w", row, sheet, err)
	}
	return nil
}

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
}

func applyHeader(f *excelize.File, sheet string, lastColumn string) error {
	style, err := headerStyle(f)
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", lastColumn+"1", style); err != nil {
		return fmt.Errorf("apply header style on %s: %w", sheet, err)
	}
	return nil
}

func writeSummary(f *excelize.File, doc *domain.Document, analysis domain.DocumentAnalysis) error {
	if err := newSheet(f, sheetSummary); err != nil {
		return err
	}

	rows := [][]any{
		{"Field", "Value"},
		{"Document ID", doc.ID},
		{"Filename", doc.Filename},
		{"Document Type", analysis.Classification.DocumentType},
		{"Classification Confidence", analysis.Classification.Confidence},
		{"Selected Frameworks", strings.Join(analysis.Frameworks.SelectedFrameworks, ", ")},
		{"Overall Legal Strength", analysis.Score.OverallScore},
		{"Compliance Level", analysis.Score.ComplianceLevel},
		{"Overall Risk Level", analysis.Score.RiskAssessment.OverallRiskLevel},
		{"Scoring Confidence", analysis.Score.ConfidenceLevel},
		{"Chunks Analyzed", len(analysis.Chunks)},
	}
	for i, row := range rows {
		if err := setRow(f, sheetSummary, i+1, row...); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheetSummary, "A", "A", 28); err != nil {
		return fmt.Errorf("summary column width: %w", err)
	}
	if err := f.SetColWidth(sheetSummary, "B", "B", 48); err != nil {
		return fmt.Errorf("summary column width: %w", err)
	}
	return applyHeader(f, sheetSummary, "B")
}

func writeCategoryScores(f *excelize.File, analysis domain.DocumentAnalysis) error {
	if err := newSheet(f, sheetScores); err != nil {
		return err
	}
	if err := setRow(f, sheetScores, 1, "Category", "Score", "Framework", "Criterion", "Criterion Score"); err != nil {
		return err
	}

	row := 2
	for _, category := range sortedKeys(analysis.Score.CategoryScores) {
		score := analysis.Score.CategoryScores[category]
		criteria := sortedKeys(score.CriterionScores)
		if len(criteria) == 0 {
			if err := setRow(f, sheetScores, row, category, score.Score, score.Framework, "", ""); err != nil {
				return err
			}
			row++
			continue
		}
		for _, criterion := range criteria {
			if err := setRow(f, sheetScores, row, category, score.Score, score.Framework, criterion, score.CriterionScores[criterion]); err != nil {
				return err
			}
			row++
		}
	}
	if err := f.SetColWidth(sheetScores, "A", "E", 26); err != nil {
		return fmt.Errorf("scores column width: %w", err)
	}
	return applyHeader(f, sheetScores, "E")
}

func writeRisks(f *excelize.File, analysis domain.DocumentAnalysis) error {
	if err := newSheet(f, sheetRisks); err != nil {
		return err
	}
	if err := setRow(f, sheetRisks, 1, "Category", "Risk Level", "Score", "Open Issues"); err != nil {
		return err
	}

	risks := analysis.Score.RiskAssessment.CategoryRisks
	row := 2
	for _, category := range sortedKeys(risks) {
		risk := risks[category]
		if err := setRow(f, sheetRisks, row, category, risk.RiskLevel, risk.Score, strings.Join(risk.Issues, "; ")); err != nil {
			return err
		}
		row++
	}

	row++
	if err := setRow(f, sheetRisks, row, "Overall Risk", analysis.Score.RiskAssessment.OverallRiskLevel); err != nil {
		return err
	}
	for _, critical := range analysis.Score.RiskAssessment.CriticalRisks {
		row++
		if err := setRow(f, sheetRisks, row, "Critical", critical.RiskLevel, critical.Score, critical.Category); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheetRisks, "A", "D", 30); err != nil {
		return fmt.Errorf("risks column width: %w", err)
	}
	return applyHeader(f, sheetRisks, "D")
}

func writeIndicators(f *excelize.File, analysis domain.DocumentAnalysis) error {
	if err := newSheet(f, sheetIndicators); err != nil {
		return err
	}
	if err := setRow(f, sheetIndicators, 1, "Indicator", "Values"); err != nil {
		return err
	}

	ind := analysis.Indicators
	articles := make([]string, 0, len(ind.ArticleMentions))
	for _, number := range ind.ArticleMentions {
		articles = append(articles, fmt.Sprintf("Article %d", number))
	}

	rows := [][]any{
		{"Constitutional References", strings.Join(ind.ConstitutionalReferences, "; ")},
		{"Indian Cases", strings.Join(ind.IndianCases, "; ")},
		{"Indian Statutes", strings.Join(ind.IndianStatutes, "; ")},
		{"Privacy Terms", strings.Join(ind.PrivacyTerms, "; ")},
		{"Government Terms", strings.Join(ind.GovernmentTerms, "; ")},
		{"Legal Concepts", strings.Join(ind.LegalConcepts, "; ")},
		{"Article Mentions", strings.Join(articles, "; ")},
		{"DPDPA Relevance", ind.DPDPARelevance},
		{"Constitutional Relevance", ind.ConstitutionalRelevance},
	}
	for i, row := range rows {
		if err := setRow(f, sheetIndicators, i+2, row...); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheetIndicators, "A", "A", 28); err != nil {
		return fmt.Errorf("indicators column width: %w", err)
	}
	if err := f.SetColWidth(sheetIndicators, "B", "B", 80); err != nil {
		return fmt.Errorf("indicators column width: %w", err)
	}
	return applyHeader(f, sheetIndicators, "B")
}

func writeRecommendations(f *excelize.File, analysis domain.DocumentAnalysis) error {
	if err := newSheet(f, sheetActions); err != nil {
		return err
	}
	if err := setRow(f, sheetActions, 1, "Kind", "Detail"); err != nil {
		return err
	}

	row := 2
	for _, issue := range analysis.Score.CriticalIssues {
		if err := setRow(f, sheetActions, row, "Critical Issue", issue); err != nil {
			return err
		}
		row++
	}
	for _, rec := range analysis.Score.Recommendations {
		if err := setRow(f, sheetActions, row, "Recommendation", rec); err != nil {
			return err
		}
		row++
	}
	if err := f.SetColWidth(sheetActions, "A", "A", 18); err != nil {
		return fmt.Errorf("recommendations column width: %w", err)
	}
	if err := f.SetColWidth(sheetActions, "B", "B", 90); err != nil {
		return fmt.Errorf("recommendations column width: %w", err)
	}
	return applyHeader(f, sheetActions, "B")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
