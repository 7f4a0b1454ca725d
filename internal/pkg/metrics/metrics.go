// Package metrics defines the custom Prometheus metrics of the stamp ledger.
// Metrics register with the default registry on package init via promauto and
// are served by the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "stampledger"

// ── Ledger metrics ────────────────────────────────────────────────────────────

// EarnTotal counts earn requests by outcome.
// Label:
//   - result: "ok", "invalid_input", "rate_limited" or "error"
var EarnTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "earn_total",
		Help:      "Total number of earn operations, by result.",
	},
	[]string{"result"},
)

// StampsAwardedTotal counts stamps actually added to wallets after clamping.
// Label:
//   - store_id: tenant the stamps were awarded in
var StampsAwardedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stamps_awarded_total",
		Help:      "Total stamps credited to wallets, after the cap is applied.",
	},
	[]string{"store_id"},
)

// WalletResetsTotal counts manager resets.
var WalletResetsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "wallet_resets_total",
		Help:      "Total number of wallet resets, by store.",
	},
	[]string{"store_id"},
)

// AuditArchiveErrorsTotal counts audit entries that could not be archived.
var AuditArchiveErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_archive_errors_total",
		Help:      "Audit entries that failed to reach the archive.",
	},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "invalid_input", "unknown_store", "invalid_credentials" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ActiveSessions tracks sessions issued minus sessions revoked by this process.
var ActiveSessions = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Sessions issued and not yet logged out by this process.",
	},
)
