package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are registered on a per-server registry so tests can build
// independent servers.
type Metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	logins   *prometheus.CounterVec
	saves    prometheus.Counter
}

// NewMetrics registers the server metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mindupgrade",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status"}),
		latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mindupgrade",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		logins: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mindupgrade",
			Name:      "logins_total",
			Help:      "Successful logins, split by whether the user was new.",
		}, []string{"new_user"}),
		saves: f.NewCounter(prometheus.CounterOpts{
			Namespace: "mindupgrade",
			Name:      "saves_total",
			Help:      "Records written through PUT /data.",
		}),
	}
}
