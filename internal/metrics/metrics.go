// Package metrics defines and registers all custom Prometheus metrics for the
// marketplace API. It is the single source of truth for metric names, labels,
// and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// ── Snapshot metrics ──────────────────────────────────────────────────────────

// SnapshotsBuiltTotal counts role-scoped data snapshots built on login and
// refresh.
// Label:
//   - role: "employer", "freelancer", or "" for principals without a role row
var SnapshotsBuiltTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshots_built_total",
		Help:      "Total number of role-scoped snapshots built.",
	},
	[]string{"role"},
)

// SnapshotFetchFailures counts sub-fetches that failed during a snapshot
// build. The snapshot itself still completes with the collections that
// succeeded.
// Label:
//   - collection: which fetch failed (e.g. "roster", "transactions")
var SnapshotFetchFailures = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshot_fetch_failures_total",
		Help:      "Total number of failed sub-fetches during snapshot builds.",
	},
	[]string{"collection"},
)

// RateLimitHitsTotal counts upstream 429 responses, which callers surface as
// a distinct retryable state rather than a generic failure.
// Label:
//   - operation: the operation that hit the limit (e.g. "snapshot", "balances")
var RateLimitHitsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_hits_total",
		Help:      "Total number of upstream rate-limit responses observed.",
	},
	[]string{"operation"},
)

// ── Write-path metrics ────────────────────────────────────────────────────────

// JobsPostedTotal counts job postings accepted by the write path.
var JobsPostedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_posted_total",
		Help:      "Total number of job postings created.",
	},
)

// PaymentsTotal counts payment attempts by outcome.
// Label:
//   - outcome: "completed", "duplicate", "failed", "submit_error", "wait_error"
var PaymentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_total",
		Help:      "Total number of payment attempts, by outcome.",
	},
	[]string{"outcome"},
)
