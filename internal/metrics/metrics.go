// Package metrics provides Prometheus instrumentation for the RPC substrate
// and the naming/storage protocol.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RPCRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dfs_rpc_requests_total",
			Help: "Total number of RPC requests dispatched by a skeleton, by method and status.",
		},
		[]string{"method", "status"},
	)

	RPCRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dfs_rpc_request_duration_seconds",
			Help:    "RPC request duration in seconds, by method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	StorageOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dfs_storage_operations_total",
			Help: "Total number of storage server operations, by verb and outcome.",
		},
		[]string{"op", "outcome"},
	)

	NamingRegistrationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dfs_naming_registrations_total",
			Help: "Total number of storage servers successfully registered with the naming server.",
		},
	)

	NamingDuplicateFilesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dfs_naming_duplicate_files_total",
			Help: "Total number of files reported as duplicates during registration.",
		},
	)
)

// Handler returns the HTTP handler that serves the metrics in Prometheus
// exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}
