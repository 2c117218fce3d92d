// Package metrics provides the centralized Prometheus registry reference
// for the harvester. All metrics are defined in their respective packages
// (client, cache, harvest) to maintain modularity and avoid circular
// dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the harvester.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - oip_requests_total{endpoint, status} (Counter): Total requests by endpoint and HTTP status
//   - oip_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - oip_errors_total{class} (Counter): Errors by class (client, server, network, malformed)
//
// Retry Metrics (pkg/client):
//   - oip_retries_total{error_class} (Counter): Retry attempts by error class
//   - oip_retry_backoff_seconds{error_class} (Histogram): Backoff duration by error class
//   - oip_retry_exhausted_total{error_class} (Counter): Requests that exhausted max retries
//
// Cache Metrics (pkg/cache):
//   - oip_cache_hits_total (Counter): Payload cache hits
//   - oip_cache_misses_total (Counter): Payload cache misses
//   - oip_cache_size_bytes (Gauge): Current cache size in bytes
//   - oip_cache_errors_total{operation} (Counter): Cache operation errors
//
// Harvest Metrics (pkg/harvest):
//   - profiles_officers_harvested_total{letter} (Counter): Officers harvested by letter bucket
//   - profiles_pages_fetched_total (Counter): List pages fetched
//   - profiles_partition_failures_total{letter} (Counter): Failed letter buckets
//   - profiles_officer_retries_total (Counter): Per-officer detail retries
//   - profiles_officer_failures_total (Counter): Officers still failed after retry
//   - profiles_report_anomalies_total{kind} (Counter): Data anomalies (missing_summary,
//     empty_ranks, empty_training, count_mismatch)
//   - profiles_partition_duration_seconds{letter} (Histogram): Bucket processing wall time
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(oip_cache_hits_total[5m])) /
//   (sum(rate(oip_cache_hits_total[5m])) + sum(rate(oip_cache_misses_total[5m])))
//
//   # Harvest Error Rate
//   rate(oip_errors_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(oip_request_duration_seconds_bucket[5m]))
//
//   # Officers Lost To Persistent Failures
//   increase(profiles_officer_failures_total[1h])
