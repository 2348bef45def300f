package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus instruments for the API server.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	EventWrites     *prometheus.CounterVec
	LoginAttempts   *prometheus.CounterVec
	InsightReports  prometheus.Counter
}

// New initializes and registers the instruments against reg. Passing a
// fresh registry keeps tests isolated from the default one.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "insight_ops",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "insight_ops",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		EventWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "insight_ops",
			Subsystem: "events",
			Name:      "writes_total",
			Help:      "Total number of event mutations by operation.",
		}, []string{"op"}), // op: create, update, delete
		LoginAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "insight_ops",
			Subsystem: "auth",
			Name:      "login_attempts_total",
			Help:      "Total number of login attempts by outcome.",
		}, []string{"outcome"}), // outcome: success, failure, rate_limited
		InsightReports: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "insight_ops",
			Subsystem: "insights",
			Name:      "reports_total",
			Help:      "Total number of insight reports computed.",
		}),
	}
}
