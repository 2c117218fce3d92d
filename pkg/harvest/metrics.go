package harvest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for harvest progress and data quality.
var (
	officersHarvestedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "profiles_officers_harvested_total",
		Help: "Total officers harvested by letter bucket",
	}, []string{"letter"})

	pagesFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "profiles_pages_fetched_total",
		Help: "Total list pages fetched across all buckets",
	})

	partitionFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "profiles_partition_failures_total",
		Help: "Total letter buckets whose list harvest failed",
	}, []string{"letter"})

	officerRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "profiles_officer_retries_total",
		Help: "Total per-officer detail retries",
	})

	officerFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "profiles_officer_failures_total",
		Help: "Total officers still failed after their retry",
	})

	reportAnomaliesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "profiles_report_anomalies_total",
		Help: "Total report-level data anomalies by kind",
	}, []string{"kind"})

	partitionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "profiles_partition_duration_seconds",
		Help:    "Wall time to process one letter bucket",
		Buckets: []float64{1, 5, 15, 60, 300, 900, 3600},
	}, []string{"letter"})
)
