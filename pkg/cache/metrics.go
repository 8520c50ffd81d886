package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recipebook_cache_hits_total",
		Help: "Total number of API response cache hits",
	})

	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recipebook_cache_misses_total",
		Help: "Total number of API response cache misses",
	})

	CacheErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recipebook_cache_errors_total",
		Help: "Total number of cache operation errors",
	}, []string{"operation"}) // "get", "set", "delete"
)
