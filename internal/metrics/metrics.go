package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Settlement counters, labeled by terminal result.
var (
	WagersSettled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "themis_wagers_settled_total",
		Help: "Wagers settled, by result",
	}, []string{"result"})

	SettlementUndetermined = promauto.NewCounter(prometheus.CounterOpts{
		Name: "themis_settlement_undetermined_total",
		Help: "Evaluation attempts that left the wager active",
	})

	SettlementPassDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "themis_settlement_pass_duration_seconds",
		Help:    "Wall time of one full settlement pass",
		Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
	})
)

// Provider counters, labeled by adapter name.
var (
	ProviderFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "themis_provider_fallbacks_total",
		Help: "Times a provider failed and the chain fell through to the next",
	}, []string{"provider"})

	SnapshotCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "themis_snapshot_cache_hits_total",
		Help: "Game lookups served from the snapshot cache",
	})
)

// CLV counters.
var (
	CLVRefreshes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "themis_clv_refreshes_total",
		Help: "Closing-line value refreshes persisted",
	})
)

// Slip import counters.
var (
	SlipParseFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "themis_slip_parse_failures_total",
		Help: "Slip blocks that could not be parsed into a wager",
	})
)
