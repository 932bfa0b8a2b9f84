package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const anonymous = "ANONYMOUS"

// Metrics owns a dedicated Prometheus registry. A nil *Metrics is a no-op.
type Metrics struct {
	Registry *prometheus.Registry

	requests        *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	errors          *prometheus.CounterVec
	resolutions     *prometheus.CounterVec
	quotaConsumed   *prometheus.CounterVec
	quotaRejections *prometheus.CounterVec
}

// NewMetrics registers collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
			[]string{"method", "path", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
			[]string{"method", "path"},
		),
		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "http_errors_total", Help: "Failed requests by error code."},
			[]string{"method", "path", "code"},
		),
		resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "auth_resolutions_total", Help: "Requests by resolved principal role."},
			[]string{"role"},
		),
		quotaConsumed: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "fuel_quota_consumed_liters_total", Help: "Fuel deducted from vehicle quotas."},
			[]string{"fuel_type"},
		),
		quotaRejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "fuel_quota_rejections_total", Help: "Quota deductions refused."},
			[]string{"reason"},
		),
	}
	m.Registry.MustRegister(
		m.requests,
		m.duration,
		m.errors,
		m.resolutions,
		m.quotaConsumed,
		m.quotaRejections,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(method, path, code).Inc()
}

// RecordAuthResolution counts principals by role; empty means unauthenticated.
func (m *Metrics) RecordAuthResolution(role string) {
	if m == nil {
		return
	}
	if role == "" {
		role = anonymous
	}
	m.resolutions.WithLabelValues(role).Inc()
}

// RecordQuotaConsumed adds pumped liters.
func (m *Metrics) RecordQuotaConsumed(fuelType string, amount int) {
	if m == nil {
		return
	}
	m.quotaConsumed.WithLabelValues(fuelType).Add(float64(amount))
}

// RecordQuotaRejected counts refused deductions.
func (m *Metrics) RecordQuotaRejected(reason string) {
	if m == nil {
		return
	}
	m.quotaRejections.WithLabelValues(reason).Inc()
}
