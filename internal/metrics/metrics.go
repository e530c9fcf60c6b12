package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)
)

// Business Metrics
var (
	UsersRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "users_registered_total",
			Help: "Total number of accounts registered",
		},
	)

	UsersVerified = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "users_verified_total",
			Help: "Total number of accounts verified",
		},
	)

	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "logins_total",
			Help: "Total number of login attempts",
		},
		[]string{"outcome"},
	)

	InventoryAdds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_adds_total",
			Help: "Total number of inventory additions",
		},
		[]string{"item"},
	)

	ValueRequestsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "value_requests_submitted_total",
			Help: "Total number of value change requests submitted",
		},
	)

	ValueRequestsSettled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "value_requests_settled_total",
			Help: "Total number of value change requests settled",
		},
		[]string{"status"},
	)
)

// Login outcome label values
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeInactive = "inactive"
)
