// Package metrics defines and registers all custom Prometheus metrics for
// the bot backend. It is the single source of truth for metric names,
// labels, and help strings; everything registers with the default registry
// at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "zosai"

// ── Pipeline metrics ──────────────────────────────────────────────────────────

// EventsTotal counts inbound events by pipeline outcome.
// Labels:
//   - type: the inbound event type (command, callback, message, photo, location)
//   - status: "allowed", "rejected", or "failed"
var EventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_total",
		Help:      "Total number of inbound events, by type and pipeline outcome.",
	},
	[]string{"type", "status"},
)

// EventDuration measures end-to-end pipeline latency per event.
// Label:
//   - status: the pipeline outcome
var EventDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "event_duration_seconds",
		Help:      "Duration of event processing from rate check to session save.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"status"},
)

// ── Rate limit metrics ────────────────────────────────────────────────────────

// RateLimitDecisions counts limiter verdicts.
// Labels:
//   - scope: "bot" or "api"
//   - decision: "allow" or "deny"
var RateLimitDecisions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_decisions_total",
		Help:      "Total number of rate limiter decisions, by scope and verdict.",
	},
	[]string{"scope", "decision"},
)

// RateLimitTrackedKeys tracks how many caller keys each limiter holds,
// sampled by the background sweeper.
var RateLimitTrackedKeys = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "rate_limit_tracked_keys",
		Help:      "Number of caller keys currently tracked by each limiter.",
	},
	[]string{"scope"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionLoads counts session loads by where the state came from.
// Label:
//   - source: "redis", "memory", or "new" (miss, fresh session)
var SessionLoads = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_loads_total",
		Help:      "Total number of session loads, by backing source.",
	},
	[]string{"source"},
)

// CacheFallbacks counts operations that fell through from the distributed
// cache to process memory.
// Label:
//   - op: "load" or "save"
var CacheFallbacks = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_fallbacks_total",
		Help:      "Total number of cache operations degraded to the memory fallback.",
	},
	[]string{"op"},
)

// ── Authorization metrics ─────────────────────────────────────────────────────

// AuthDecisions counts super-admin authorization checks.
// Label:
//   - decision: "granted" or "denied"
var AuthDecisions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_decisions_total",
		Help:      "Total number of super-admin authorization checks, by decision.",
	},
	[]string{"decision"},
)

// ── Dispatcher metrics ────────────────────────────────────────────────────────

// QueueDepth tracks the number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index
var QueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
