package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/nileshk/legal-analyzer/internal/core/domain"
)

type statusCall struct {
	status domain.DocumentStatus
	errMsg string
}

type processRepoFake struct {
	doc           *domain.Document
	getErr        error
	saveErr       error
	statusErr     error
	failStatusErr error
	statusCalls   []statusCall
	analysisID    string
	analysis      domain.DocumentAnalysis
}

func (f *processRepoFake) Create(context.Context, *domain.Document) error { return nil }

func (f *processRepoFake) GetByID(context.Context, string) (*domain.Document, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	copyDoc := *f.doc
	return &copyDoc, nil
}

func (f *processRepoFake) UpdateStatus(_ context.Context, _ string, status domain.DocumentStatus, errMessage string) error {
	f.statusCalls = append(f.statusCalls, statusCall{status: status, errMsg: errMessage})
	if status == domain.StatusFailed && f.failStatusErr != nil {
		return f.failStatusErr
	}
	if f.statusErr != nil {
		return f.statusErr
	}
	return nil
}

func (f *processRepoFake) SaveAnalysis(_ context.Context, id string, analysis domain.DocumentAnalysis) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.analysisID = id
	f.analysis = analysis
	return nil
}

func (f *processRepoFake) GetAnalysis(context.Context, string) (*domain.DocumentAnalysis, error) {
	return &f.analysis, nil
}

type extractorFake struct {
	text string
	err  error
}

func (f *extractorFake) Extract(context.Context, *domain.Document) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type analyzerFake struct {
	analysis *domain.DocumentAnalysis
	err      error
}

func (f *analyzerFake) Analyze(context.Context, string) (*domain.DocumentAnalysis, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.analysis, nil
}

type graphFake struct {
	err      error
	upserted int
}

func (f *graphFake) EnsureSchema(context.Context) error { return nil }

func (f *graphFake) UpsertDocument(context.Context, *domain.Document, domain.DocumentAnalysis) error {
	if f.err != nil {
		return f.err
	}
	f.upserted++
	return nil
}

func sampleAnalysis() *domain.DocumentAnalysis {
	return &domain.DocumentAnalysis{
		Classification: domain.ClassificationResult{
			DocumentType: "government_notification",
			Confidence:   0.8,
		},
		Frameworks: domain.FrameworkSelection{
			SelectedFrameworks: []string{"constitutional_analysis"},
			FrameworkCount:     1,
		},
		Score: domain.ComprehensiveScore{OverallScore: 71.5, ComplianceLevel: "satisfactory"},
	}
}

func TestProcessByIDSuccess(t *testing.T) {
	repo := &processRepoFake{doc: &domain.Document{ID: "doc-1"}}
	graph := &graphFake{}
	uc := NewProcessDocumentUseCase(
		repo,
		&extractorFake{text: "text"},
		&analyzerFake{analysis: sampleAnalysis()},
		graph,
	)

	if err := uc.ProcessByID(context.Background(), "doc-1"); err != nil {
		t.Fatalf("ProcessByID() error = %v", err)
	}
	if len(repo.statusCalls) != 2 {
		t.Fatalf("expected 2 status calls, got %d", len(repo.statusCalls))
	}
	if repo.statusCalls[0].status != domain.StatusProcessing || repo.statusCalls[1].status != domain.StatusAnalyzed {
		t.Fatalf("unexpected status sequence: %+v", repo.statusCalls)
	}
	if repo.analysisID != "doc-1" {
		t.Fatalf("expected analysis save for doc-1, got %s", repo.analysisID)
	}
	if graph.upserted != 1 {
		t.Fatalf("expected one graph upsert, got %d", graph.upserted)
	}
}

func TestProcessByIDMarksFailedOnExtractError(t *testing.T) {
	repo := &processRepoFake{doc: &domain.Document{ID: "doc-1"}}
	uc := NewProcessDocumentUseCase(
		repo,
		&extractorFake{err: errors.New("extract fail")},
		&analyzerFake{analysis: sampleAnalysis()},
		&graphFake{},
	)

	err := uc.ProcessByID(context.Background(), "doc-1")
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(repo.statusCalls) != 2 {
		t.Fatalf("expected processing + failed status updates, got %d", len(repo.statusCalls))
	}
	if repo.statusCalls[1].status != domain.StatusFailed {
		t.Fatalf("expected failed status, got %+v", repo.statusCalls[1])
	}
}

func TestProcessByIDMarksFailedOnEmptyText(t *testing.T) {
	repo := &processRepoFake{doc: &domain.Document{ID: "doc-1"}}
	uc := NewProcessDocumentUseCase(
		repo,
		&extractorFake{text: ""},
		&analyzerFake{analysis: sampleAnalysis()},
		&graphFake{},
	)

	err := uc.ProcessByID(context.Background(), "doc-1")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input kind, got %v", err)
	}
	if repo.statusCalls[len(repo.statusCalls)-1].status != domain.StatusFailed {
		t.Fatalf("expected final failed status, got %+v", repo.statusCalls)
	}
}

func TestProcessByIDMarksFailedOnAnalyzerError(t *testing.T) {
	repo := &processRepoFake{doc: &domain.Document{ID: "doc-1"}}
	uc := NewProcessDocumentUseCase(
		repo,
		&extractorFake{text: "text"},
		&analyzerFake{err: errors.New("pipeline broke")},
		&graphFake{},
	)

	err := uc.ProcessByID(context.Background(), "doc-1")
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(repo.statusCalls) != 2 || repo.statusCalls[1].status != domain.StatusFailed {
		t.Fatalf("expected final failed status, got %+v", repo.statusCalls)
	}
}

func TestProcessByIDUpdatesDocumentType(t *testing.T) {
	repo := &processRepoFake{doc: &domain.Document{ID: "doc-1"}}
	uc := NewProcessDocumentUseCase(
		repo,
		&extractorFake{text: "text"},
		&analyzerFake{analysis: sampleAnalysis()},
		nil,
	)

	if err := uc.ProcessByID(context.Background(), "doc-1"); err != nil {
		t.Fatalf("ProcessByID() error = %v", err)
	}
	if repo.analysis.Classification.DocumentType != "government_notification" {
		t.Fatalf("unexpected saved analysis: %+v", repo.analysis.Classification)
	}
}
