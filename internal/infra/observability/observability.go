// Package observability exposes Prometheus metrics for the storefront engine.
//
// Counters and gauges cover the three stateful concerns: cart mutations,
// catalog fetches, and navigation. The /metrics endpoint is opt-in on the
// API server.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Cart Metrics ───────────────────────────────────────────────────────────

// CartMutations tracks cart operations by kind (add, remove, set_quantity).
var CartMutations = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "khayr",
	Subsystem: "cart",
	Name:      "mutations_total",
	Help:      "Total cart mutations by operation.",
}, []string{"op"})

// CartPersistFailures tracks failed writes of the cart slot.
var CartPersistFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "khayr",
	Subsystem: "cart",
	Name:      "persist_failures_total",
	Help:      "Total failed writes of the persisted cart slot.",
})

// CartRestoreCorrupt tracks carts dropped at restore time due to a
// malformed slot.
var CartRestoreCorrupt = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "khayr",
	Subsystem: "cart",
	Name:      "restore_corrupt_total",
	Help:      "Total cart restores that found a malformed slot and started empty.",
})

// ─── Catalog Metrics ────────────────────────────────────────────────────────

// CatalogFetches tracks catalog load attempts by outcome (ok, error, joined).
var CatalogFetches = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "khayr",
	Subsystem: "catalog",
	Name:      "fetches_total",
	Help:      "Total catalog fetch attempts by outcome.",
}, []string{"outcome"})

// CatalogFetchDuration tracks catalog fetch latency.
var CatalogFetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "khayr",
	Subsystem: "catalog",
	Name:      "fetch_duration_seconds",
	Help:      "Catalog fetch duration in seconds.",
	Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
})

// CatalogProducts tracks the size of the held product set.
var CatalogProducts = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "khayr",
	Subsystem: "catalog",
	Name:      "products",
	Help:      "Number of products currently held in the catalog cache.",
})

// ─── Navigation Metrics ─────────────────────────────────────────────────────

// Navigations tracks route resolutions by destination view.
var Navigations = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "khayr",
	Subsystem: "router",
	Name:      "navigations_total",
	Help:      "Total navigations by resolved view.",
}, []string{"view"})

// ─── Session Metrics ────────────────────────────────────────────────────────

// ActiveSessions tracks live storefront sessions.
var ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "khayr",
	Subsystem: "session",
	Name:      "active",
	Help:      "Number of active storefront sessions.",
})

// ─── Offline Cache Metrics ──────────────────────────────────────────────────

// OfflineCacheRequests tracks offline-cache lookups by result (hit, miss).
var OfflineCacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "khayr",
	Subsystem: "offline",
	Name:      "requests_total",
	Help:      "Total offline cache lookups by result.",
}, []string{"result"})
