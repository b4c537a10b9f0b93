// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinelog_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinelog_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinelog_http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)

	RateLimitHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cinelog_rate_limit_hits_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)

	// store is "account" or "guest"
	ReviewWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinelog_review_writes_total",
			Help: "Review writes by store and operation",
		},
		[]string{"store", "operation"},
	)

	WatchlistWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinelog_watchlist_writes_total",
			Help: "Watchlist writes by store and operation",
		},
		[]string{"store", "operation"},
	)

	LoginCodesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinelog_login_codes_sent_total",
			Help: "Sign-in codes handed to the mailer, by outcome",
		},
		[]string{"outcome"},
	)
)

const (
	StoreAccount = "account"
	StoreGuest   = "guest"
)

func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
