package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	DocumentOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "books", Name: "document_operations_total", Help: "Gateway operations by operation and outcome."},
		[]string{"operation", "outcome"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "books", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "books", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

// Outcome labels for DocumentOperations.
const (
	OutcomeOK          = "ok"
	OutcomeNoop        = "noop"
	OutcomeClientError = "client_error"
	OutcomeStoreError  = "store_error"
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(DocumentOperations)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}

// ObserveOperation counts one finished gateway operation.
func ObserveOperation(op, outcome string) {
	DocumentOperations.WithLabelValues(op, outcome).Inc()
}
