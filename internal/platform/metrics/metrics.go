package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	SessionsRegistered         prometheus.Counter
	TrainingSessionsRegistered prometheus.Counter
	TestResultsRegistered      prometheus.Counter
	CombatEventsRegistered     prometheus.Counter
	AttendanceRecorded         prometheus.Counter
	AuthzDenied                prometheus.Counter
	IdentityErrors             prometheus.Counter
	EnrichmentFallbacks        prometheus.Counter
	RequestDuration            *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		SessionsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "perf_service_sessions_registered_total",
			Help: "Total number of training sessions registered (direct mode)",
		}),
		TrainingSessionsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "perf_service_training_sessions_registered_total",
			Help: "Total number of structured training sessions registered",
		}),
		TestResultsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "perf_service_test_results_registered_total",
			Help: "Total number of standardized test results written",
		}),
		CombatEventsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "perf_service_combat_events_registered_total",
			Help: "Total number of combat events written",
		}),
		AttendanceRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "perf_service_attendance_records_total",
			Help: "Total number of attendance records written",
		}),
		AuthzDenied: promauto.NewCounter(prometheus.CounterOpts{
			Name: "perf_service_authorization_denied_total",
			Help: "Total number of requests denied by relationship or role checks",
		}),
		IdentityErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "perf_service_identity_errors_total",
			Help: "Total number of failed calls to the identity authority",
		}),
		EnrichmentFallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "perf_service_enrichment_fallbacks_total",
			Help: "Total number of enrichment calls that degraded to fallback labels",
		}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "perf_service_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

// ObserveRequest records one HTTP request's latency.
func (m *Metrics) ObserveRequest(route, method string, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(route, method).Observe(d.Seconds())
}
