package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Wallet mutation metrics
	TopUpsCreated    prometheus.Counter
	PaymentsCreated  prometheus.Counter
	TransfersCreated prometheus.Counter
	MutationDuration *prometheus.HistogramVec
	MutationAmount   *prometheus.HistogramVec
	MutationErrors   *prometheus.CounterVec

	// Account metrics
	AccountsRegistered prometheus.Counter
	AuthAttempts       *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Contention metrics
	ContentionRetries  prometheus.Counter
	ContentionTimeouts prometheus.Counter

	// Cache metrics
	BalanceCacheHits   prometheus.Counter
	BalanceCacheMisses prometheus.Counter

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		TopUpsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowallet_topups_created_total",
			Help: "Total number of top ups created",
		}),
		PaymentsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowallet_payments_created_total",
			Help: "Total number of payments created",
		}),
		TransfersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowallet_transfers_created_total",
			Help: "Total number of transfers created",
		}),
		MutationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gowallet_mutation_duration_seconds",
				Help:    "Duration of balance mutations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		MutationAmount: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gowallet_mutation_amount",
				Help:    "Balance mutation amounts",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
			},
			[]string{"kind"},
		),
		MutationErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowallet_mutation_errors_total",
				Help: "Total number of mutation errors by kind and type",
			},
			[]string{"kind", "error_type"},
		),

		AccountsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowallet_accounts_registered_total",
			Help: "Total number of accounts registered",
		}),
		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowallet_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowallet_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gowallet_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		ContentionRetries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowallet_contention_retries_total",
			Help: "Total number of retried contention errors",
		}),
		ContentionTimeouts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowallet_contention_timeouts_total",
			Help: "Total number of mutations abandoned due to lock contention",
		}),

		BalanceCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowallet_balance_cache_hits_total",
			Help: "Total balance cache hits",
		}),
		BalanceCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowallet_balance_cache_misses_total",
			Help: "Total balance cache misses",
		}),

		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowallet_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),
	}
}
