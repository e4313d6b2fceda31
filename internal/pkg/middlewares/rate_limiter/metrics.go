package rate_limiter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RateLimitExceededTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_exceeded_total",
			Help: "Total number of requests rejected due to rate limiting",
		},
		[]string{"method", "route"},
	)

	PINAttemptsExceededTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pin_attempts_exceeded_total",
			Help: "Total number of PIN-guarded requests rejected for exceeding the per-client budget",
		},
		[]string{"method", "route"},
	)
)
