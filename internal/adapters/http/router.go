// Package httpadapter exposes the analysis pipeline over a plain
// net/http mux: document upload and retrieval, synchronous analysis,
// and report download.
package httpadapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nileshk/legal-analyzer/internal/core/ports"
	"github.com/nileshk/legal-analyzer/internal/infrastructure/scraper/gazette"
	"github.com/nileshk/legal-analyzer/internal/observability/metrics"
)

const serviceName = "api"

// Documents larger than this are rejected before buffering the upload.
const maxUploadBytes = 32 << 20

type Router struct {
	ingestor ports.DocumentIngestor
	reader   ports.DocumentReader
	analyzer ports.DocumentAnalyzer
	reports  ports.ReportService
	scraper  *gazette.Scraper
	metrics  *metrics.HTTPServerMetrics
	limiter  *clientLimiter
}

func NewRouter(
	ingestor ports.DocumentIngestor,
	reader ports.DocumentReader,
	analyzer ports.DocumentAnalyzer,
	reports ports.ReportService,
	scraper *gazette.Scraper,
	m *metrics.HTTPServerMetrics,
	rps float64,
	burst int,
) *Router {
	return &Router{
		ingestor: ingestor,
		reader:   reader,
		analyzer: analyzer,
		reports:  reports,
		scraper:  scraper,
		metrics:  m,
		limiter:  newClientLimiter(rps, burst),
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/documents", rt.uploadDocument)
	mux.HandleFunc("/v1/documents/", rt.documentSubresource)
	mux.HandleFunc("/v1/analyze", rt.analyzeText)
	mux.HandleFunc("/v1/regulatory-updates", rt.regulatoryUpdates)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	handler := http.Handler(mux)
	handler = rt.limiter.middleware(handler)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer func() {
		_ = file.Close()
	}()

	doc, err := rt.ingestor.Upload(
		r.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, doc)
}

// documentSubresource dispatches /v1/documents/{id}[/analysis|/report].
func (rt *Router) documentSubresource(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/documents/")
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "document id is required")
		return
	}

	switch sub {
	case "":
		rt.getDocument(w, r, id)
	case "analysis":
		rt.getAnalysis(w, r, id)
	case "report":
		rt.downloadReport(w, r, id)
	default:
		writeError(w, http.StatusNotFound, "unknown resource")
	}
}

func (rt *Router) getDocument(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	doc, err := rt.reader.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (rt *Router) getAnalysis(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	analysis, err := rt.reader.GetAnalysis(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

func (rt *Router) downloadReport(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	data, filename, err := rt.reports.BuildReport(r.Context(), id)
	if rt.metrics != nil {
		rt.metrics.RecordReportExport(serviceName, err)
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (rt *Router) analyzeText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	start := time.Now()
	analysis, err := rt.analyzer.Analyze(r.Context(), req.Text)
	if rt.metrics != nil {
		rt.metrics.RecordAnalysis(serviceName, time.Since(start), err)
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordAnalysisOutcome(
			serviceName,
			analysis.Classification.DocumentType,
			analysis.Score.RiskAssessment.OverallRiskLevel,
			analysis.Frameworks.FrameworkCount,
			analysis.Score.OverallScore,
		)
	}

	writeJSON(w, http.StatusOK, analysis)
}

// regulatoryUpdates runs a live sweep of the configured regulatory
// sources. Slow by nature; callers are expected to poll sparingly.
func (rt *Router) regulatoryUpdates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if rt.scraper == nil {
		writeError(w, http.StatusNotFound, "regulatory updates are not enabled")
		return
	}

	result, err := rt.scraper.ScrapeAll(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeDomainError(w http.ResponseWriter, err error) {
	writeError(w, mapErrorToHTTPStatus(err), err.Error())
}
