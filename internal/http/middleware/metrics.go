// Package middleware holds gin middleware shared by all route groups:
// JWT auth, per-IP and per-user rate limiting, and the Prometheus
// counters those limiters report into.
package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RLRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_requests_total",
			Help: "Requests admitted by a rate limiter, by endpoint.",
		},
		[]string{"endpoint"},
	)
	RLBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_blocked_total",
			Help: "Requests rejected by a rate limiter, by endpoint.",
		},
		[]string{"endpoint"},
	)
)

func init() {
	prometheus.MustRegister(RLRequests, RLBlocked)
}
