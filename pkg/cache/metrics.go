package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks payload cache hits.
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "oip_cache_hits_total",
			Help: "Total number of report payload cache hits",
		},
	)

	// CacheMisses tracks payload cache misses.
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "oip_cache_misses_total",
			Help: "Total number of report payload cache misses",
		},
	)

	// CacheSize tracks bytes written to the cache.
	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "oip_cache_size_bytes",
			Help: "Bytes of report payloads written to the cache",
		},
	)

	// CacheErrors tracks cache operation errors.
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oip_cache_errors_total",
			Help: "Total number of cache operation errors",
		},
		[]string{"operation"}, // "get", "set", "delete"
	)
)
