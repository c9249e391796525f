package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nileshk/legal-analyzer/internal/core/domain"
)

type ingestorFake struct {
	doc *domain.Document
	err error
}

func (f *ingestorFake) Upload(_ context.Context, filename, mimeType string, _ io.Reader) (*domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	doc := *f.doc
	doc.Filename = filename
	doc.MimeType = mimeType
	return &doc, nil
}

type readerFake struct {
	doc      *domain.Document
	analysis *domain.DocumentAnalysis
	err      error
}

func (f *readerFake) GetByID(context.Context, string) (*domain.Document, error) {
	return f.doc, f.err
}

func (f *readerFake) GetAnalysis(context.Context, string) (*domain.DocumentAnalysis, error) {
	return f.analysis, f.err
}

type analyzerFake struct {
	analysis *domain.DocumentAnalysis
	err      error
	gotText  string
}

func (f *analyzerFake) Analyze(_ context.Context, text string) (*domain.DocumentAnalysis, error) {
	f.gotText = text
	return f.analysis, f.err
}

type reportFake struct {
	data     []byte
	filename string
	err      error
}

func (f *reportFake) BuildReport(context.Context, string) ([]byte, string, error) {
	return f.data, f.filename, f.err
}

func testRouter(ingestor *ingestorFake, reader *readerFake, analyzer *analyzerFake, reports *reportFake) *Router {
	if ingestor == nil {
		ingestor = &ingestorFake{doc: &domain.Document{ID: "doc-1"}}
	}
	if reader == nil {
		reader = &readerFake{doc: &domain.Document{ID: "doc-1"}, analysis: &domain.DocumentAnalysis{}}
	}
	if analyzer == nil {
		analyzer = &analyzerFake{analysis: &domain.DocumentAnalysis{}}
	}
	if reports == nil {
		reports = &reportFake{data: []byte("xlsx"), filename: "compliance_report_doc-1.xlsx"}
	}
	return NewRouter(ingestor, reader, analyzer, reports, nil, nil, 0, 0)
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestHealthz(t *testing.T) {
	server := httptest.NewServer(testRouter(nil, nil, nil, nil).Handler())
	defer server.Close()

	resp, err := http.Get(server.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := resp.Header.Get(requestIDHeader); got == "" {
		t.Fatal("missing request id header")
	}
}

func TestUploadDocumentAccepted(t *testing.T) {
	server := httptest.NewServer(testRouter(nil, nil, nil, nil).Handler())
	defer server.Close()

	body, contentType := multipartBody(t, "file", "notification.txt", "Article 21 notification text")
	resp, err := http.Post(server.URL+"/v1/documents", contentType, body)
	if err != nil {
		t.Fatalf("POST /v1/documents error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var doc domain.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if doc.Filename != "notification.txt" {
		t.Fatalf("filename = %q", doc.Filename)
	}
}

func TestUploadDocumentRequiresFileField(t *testing.T) {
	server := httptest.NewServer(testRouter(nil, nil, nil, nil).Handler())
	defer server.Close()

	body, contentType := multipartBody(t, "attachment", "x.txt", "text")
	resp, err := http.Post(server.URL+"/v1/documents", contentType, body)
	if err != nil {
		t.Fatalf("POST error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestGetDocumentNotFoundMapsTo404(t *testing.T) {
	reader := &readerFake{err: domain.WrapError(domain.ErrDocumentNotFound, "get document", errors.New("id missing"))}
	server := httptest.NewServer(testRouter(nil, reader, nil, nil).Handler())
	defer server.Close()

	resp, err := http.Get(server.URL + "/v1/documents/missing")
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestGetAnalysisSubresource(t *testing.T) {
	reader := &readerFake{
		doc: &domain.Document{ID: "doc-1"},
		analysis: &domain.DocumentAnalysis{
			Classification: domain.ClassificationResult{DocumentType: "privacy_policy", Confidence: 0.7},
		},
	}
	server := httptest.NewServer(testRouter(nil, reader, nil, nil).Handler())
	defer server.Close()

	resp, err := http.Get(server.URL + "/v1/documents/doc-1/analysis")
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var analysis domain.DocumentAnalysis
	if err := json.NewDecoder(resp.Body).Decode(&analysis); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if analysis.Classification.DocumentType != "privacy_policy" {
		t.Fatalf("document type = %q", analysis.Classification.DocumentType)
	}
}

func TestUnknownSubresourceReturns404(t *testing.T) {
	server := httptest.NewServer(testRouter(nil, nil, nil, nil).Handler())
	defer server.Close()

	resp, err := http.Get(server.URL + "/v1/documents/doc-1/chunks")
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestAnalyzeTextReturnsAnalysis(t *testing.T) {
	analyzer := &analyzerFake{analysis: &domain.DocumentAnalysis{
		Classification: domain.ClassificationResult{DocumentType: "government_notification", Confidence: 0.8},
	}}
	server := httptest.NewServer(testRouter(nil, nil, analyzer, nil).Handler())
	defer server.Close()

	payload := `{"text":"Notification under powers conferred by Article 21."}`
	resp, err := http.Post(server.URL+"/v1/analyze", "application/json", strings.NewReader(payload))
	if err != nil {
		t.Fatalf("POST error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if analyzer.gotText != "Notification under powers conferred by Article 21." {
		t.Fatalf("analyzer received %q", analyzer.gotText)
	}
}

func TestAnalyzeTextRejectsEmptyAndBadJSON(t *testing.T) {
	server := httptest.NewServer(testRouter(nil, nil, nil, nil).Handler())
	defer server.Close()

	for _, body := range []string{`{"text":"   "}`, `{invalid`} {
		resp, err := http.Post(server.URL+"/v1/analyze", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatalf("POST error = %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("body %q: status = %d", body, resp.StatusCode)
		}
	}
}

func TestDownloadReportSetsAttachmentHeaders(t *testing.T) {
	reports := &reportFake{data: []byte("workbook-bytes"), filename: "compliance_report_doc-1.xlsx"}
	server := httptest.NewServer(testRouter(nil, nil, nil, reports).Handler())
	defer server.Close()

	resp, err := http.Post(server.URL+"/v1/documents/doc-1/report", "", nil)
	if err != nil {
		t.Fatalf("POST error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Disposition"); !strings.Contains(got, "compliance_report_doc-1.xlsx") {
		t.Fatalf("content disposition = %q", got)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(data) != "workbook-bytes" {
		t.Fatalf("unexpected body %q", data)
	}
}

func TestDownloadReportRequiresAnalyzedDocument(t *testing.T) {
	reports := &reportFake{err: domain.WrapError(domain.ErrInvalidInput, "build report", errors.New("not analyzed"))}
	server := httptest.NewServer(testRouter(nil, nil, nil, reports).Handler())
	defer server.Close()

	resp, err := http.Post(server.URL+"/v1/documents/doc-1/report", "", nil)
	if err != nil {
		t.Fatalf("POST error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestRegulatoryUpdatesDisabledWithoutScraper(t *testing.T) {
	server := httptest.NewServer(testRouter(nil, nil, nil, nil).Handler())
	defer server.Close()

	resp, err := http.Get(server.URL + "/v1/regulatory-updates")
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	server := httptest.NewServer(testRouter(nil, nil, nil, nil).Handler())
	defer server.Close()

	resp, err := http.Get(server.URL + "/v1/analyze")
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}
