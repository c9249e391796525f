package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	analysisTotal       *prometheus.CounterVec
	analysisDuration    *prometheus.HistogramVec
	classificationTotal *prometheus.CounterVec
	frameworkCount      *prometheus.HistogramVec
	complianceScore     *prometheus.HistogramVec
	riskLevelTotal      *prometheus.CounterVec
	reportExportsTotal  *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "legal",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "legal",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "legal",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	analysisTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "legal",
			Subsystem: "analysis",
			Name:      "requests_total",
			Help:      "Total completed synchronous analyses by status.",
		},
		[]string{"service", "status"},
	)
	analysisDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "legal",
			Subsystem: "analysis",
			Name:      "duration_seconds",
			Help:      "Synchronous analysis duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service"},
	)
	classificationTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "legal",
			Subsystem: "analysis",
			Name:      "classifications_total",
			Help:      "Total classifications by resulting document type.",
		},
		[]string{"service", "document_type"},
	)
	frameworkCount := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "legal",
			Subsystem: "analysis",
			Name:      "selected_frameworks",
			Help:      "Distribution of frameworks selected per document.",
			Buckets:   []float64{1, 2, 3, 4},
		},
		[]string{"service"},
	)
	complianceScore := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "legal",
			Subsystem: "analysis",
			Name:      "overall_score",
			Help:      "Distribution of overall compliance scores.",
			Buckets:   []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
		[]string{"service"},
	)
	riskLevelTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "legal",
			Subsystem: "analysis",
			Name:      "risk_levels_total",
			Help:      "Total analyses by overall risk level.",
		},
		[]string{"service", "risk_level"},
	)
	reportExportsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "legal",
			Subsystem: "report",
			Name:      "exports_total",
			Help:      "Total report exports by status.",
		},
		[]string{"service", "status"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		analysisTotal,
		analysisDuration,
		classificationTotal,
		frameworkCount,
		complianceScore,
		riskLevelTotal,
		reportExportsTotal,
	)

	return &HTTPServerMetrics{
		registry:            registry,
		requestTotal:        requestTotal,
		requestDuration:     requestDuration,
		requestInFlight:     requestInFlight,
		analysisTotal:       analysisTotal,
		analysisDuration:    analysisDuration,
		classificationTotal: classificationTotal,
		frameworkCount:      frameworkCount,
		complianceScore:     complianceScore,
		riskLevelTotal:      riskLevelTotal,
		reportExportsTotal:  reportExportsTotal,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func normalizePath(path string) string {
	switch {
	case strings.HasSuffix(path, "/analysis") && strings.HasPrefix(path, "/v1/documents/"):
		return "/v1/documents/{document_id}/analysis"
	case strings.HasSuffix(path, "/report") && strings.HasPrefix(path, "/v1/documents/"):
		return "/v1/documents/{document_id}/report"
	case strings.HasPrefix(path, "/v1/documents/"):
		return "/v1/documents/{document_id}"
	default:
		return path
	}
}

func (m *HTTPServerMetrics) RecordAnalysis(service string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.analysisTotal.WithLabelValues(service, status).Inc()
	if err == nil {
		m.analysisDuration.WithLabelValues(service).Observe(duration.Seconds())
	}
}

func (m *HTTPServerMetrics) RecordAnalysisOutcome(service, documentType, riskLevel string, frameworks int, overallScore float64) {
	if documentType == "" {
		documentType = "unknown"
	}
	m.classificationTotal.WithLabelValues(service, documentType).Inc()
	m.frameworkCount.WithLabelValues(service).Observe(float64(frameworks))
	m.complianceScore.WithLabelValues(service).Observe(overallScore)
	if riskLevel != "" {
		m.riskLevelTotal.WithLabelValues(service, riskLevel).Inc()
	}
}

func (m *HTTPServerMetrics) RecordReportExport(service string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.reportExportsTotal.WithLabelValues(service, status).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}

func (w *statusRecorder) Push(target string, opts *http.PushOptions) error {
	pusher, ok := w.ResponseWriter.(http.Pusher)
	if !ok {
		return http.ErrNotSupported
	}
	return pusher.Push(target, opts)
}
