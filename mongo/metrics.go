package mongo

import (
	// Standard Library Imports
	"time"

	// External Imports
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	repositoryOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "grantstore_repository_operations_total",
		Help: "Total number of mongo repository operations by collection, operation and outcome",
	}, []string{"collection", "operation", "outcome"})

	repositoryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "grantstore_repository_operation_duration_seconds",
		Help:    "Duration of mongo repository operations by collection and operation",
		Buckets: prometheus.DefBuckets,
	}, []string{"collection", "operation"})
)

// observe records the outcome and duration of an operation started at start.
func observe(collection, operation string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	repositoryOperations.WithLabelValues(collection, operation, outcome).Inc()
	repositoryDuration.WithLabelValues(collection, operation).Observe(time.Since(start).Seconds())
}
