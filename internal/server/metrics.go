package server

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ukaji3/timesheet-go/pkg/timesheet/models"
)

const metricsNamespace = "timesheet"

// metrics holds the collectors exposed on /metrics.
type metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	checks          *prometheus.CounterVec
	missing         prometheus.Histogram
	billableHours   prometheus.Histogram
	downloads       prometheus.GaugeFunc
}

func newMetrics(store *downloadStore) *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		checks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "checks_total",
			Help:      "Uploaded timesheets checked, by result.",
		}, []string{"result"}),
		missing: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "missing_employees",
			Help:      "Employees with missing entries per checked timesheet.",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
		}),
		billableHours: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "billable_hours",
			Help:      "Total billable hours per checked timesheet.",
			Buckets:   prometheus.ExponentialBuckets(8, 2, 10),
		}),
	}
	m.downloads = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "pending_downloads",
		Help:      "Processed workbooks waiting to be downloaded.",
	}, func() float64 { return float64(store.len()) })

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.requestDuration,
		m.checks,
		m.missing,
		m.billableHours,
		m.downloads,
	)
	return m
}

func (m *metrics) observeRequest(route, method string, status int, seconds float64) {
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(seconds)
}

func (m *metrics) observeCheck(report *models.Report) {
	m.checks.WithLabelValues("ok").Inc()
	m.missing.Observe(float64(report.Metrics.MissingCount))
	m.billableHours.Observe(report.Metrics.TotalBillableHours)
}

func (m *metrics) observeFailure(code string) {
	m.checks.WithLabelValues(code).Inc()
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
