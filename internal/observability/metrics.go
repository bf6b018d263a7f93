package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "app_sinistro_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"path", "method", "status"},
	)

	// CacheHits tracks cache hits/misses
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_sinistro_cache_hits_total",
			Help: "Number of cache hits",
		},
		[]string{"operation"},
	)

	// DatabaseOperations tracks database operations
	DatabaseOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_sinistro_database_operations_total",
			Help: "Number of database operations",
		},
		[]string{"operation", "status"},
	)

	// ClaimNumbersGenerated tracks claim number generation by outcome
	ClaimNumbersGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_sinistro_claim_numbers_generated_total",
			Help: "Number of claim numbers generated",
		},
		[]string{"mode"},
	)

	// StatusRegistryFetches tracks status registry refreshes by outcome
	StatusRegistryFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_sinistro_status_registry_fetches_total",
			Help: "Number of status registry fetch attempts",
		},
		[]string{"result"},
	)

	// CompletionLinks tracks completion link operations
	CompletionLinks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_sinistro_completion_links_total",
			Help: "Number of completion link operations",
		},
		[]string{"operation", "result"},
	)

	// ActiveConnections tracks active connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_sinistro_active_connections",
			Help: "Number of active connections",
		},
	)
)
