package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// Metrics метрики Prometheus портала.
//
// Регистрируются в реестре по умолчанию один раз на процесс, поэтому
// NewMetrics можно вызывать из нескольких мест (сервер, тесты).
//
//   - portal_http_requests_total{method,route,status}
//   - portal_http_request_duration_seconds{method,route}
//   - portal_duplicates_rejected_total{entity}
//   - portal_duplicate_check_failures_total{entity}
//   - portal_pdf_extractions_total{outcome}
//   - portal_reminders_sent_total
type Metrics struct {
	HTTPRequestsTotal       *prometheus.CounterVec
	HTTPRequestDuration     *prometheus.HistogramVec
	DuplicatesRejectedTotal *prometheus.CounterVec
	DuplicateCheckFailures  *prometheus.CounterVec
	PDFExtractionsTotal     *prometheus.CounterVec
	RemindersSentTotal      prometheus.Counter
}

// NewMetrics создает и регистрирует метрики портала
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			HTTPRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "portal_http_requests_total",
					Help: "Total number of HTTP requests by route and status",
				},
				[]string{"method", "route", "status"},
			),

			HTTPRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "portal_http_request_duration_seconds",
					Help:    "HTTP request latency in seconds",
					Buckets: prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms .. ~8s
				},
				[]string{"method", "route"},
			),

			DuplicatesRejectedTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "portal_duplicates_rejected_total",
					Help: "Inserts rejected as duplicates of an existing record",
				},
				[]string{"entity"},
			),

			DuplicateCheckFailures: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "portal_duplicate_check_failures_total",
					Help: "Duplicate checks that could not read existing records",
				},
				[]string{"entity"},
			),

			PDFExtractionsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "portal_pdf_extractions_total",
					Help: "PDF order extractions by outcome",
				},
				[]string{"outcome"},
			),

			RemindersSentTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "portal_reminders_sent_total",
					Help: "Dispatch reminders delivered by the background worker",
				},
			),
		}
	})

	return globalMetrics
}

// ObserveHTTPRequest учитывает обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// DuplicateFound учитывает отклоненный дубликат
func (m *Metrics) DuplicateFound(entity string) {
	m.DuplicatesRejectedTotal.WithLabelValues(entity).Inc()
}

// DuplicateCheckFailed учитывает проверку, пропущенную из-за ошибки чтения
func (m *Metrics) DuplicateCheckFailed(entity string) {
	m.DuplicateCheckFailures.WithLabelValues(entity).Inc()
}

// PDFExtraction учитывает исход извлечения полей из PDF
func (m *Metrics) PDFExtraction(outcome string) {
	m.PDFExtractionsTotal.WithLabelValues(outcome).Inc()
}

// ReminderSent учитывает отправленное напоминание
func (m *Metrics) ReminderSent() {
	m.RemindersSentTotal.Inc()
}
