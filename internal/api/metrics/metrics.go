// Package metrics defines and registers all custom Prometheus metrics for the
// SecurePass API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation; HTTP request metrics come from echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "securepass"

// Result label values.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// ── Account metrics ──────────────────────────────────────────────────────────

// AccountsRegisteredTotal counts successful registrations.
var AccountsRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_registered_total",
		Help:      "Total number of accounts registered.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AccountsDeletedTotal counts accounts removed together with their entries.
var AccountsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_deleted_total",
		Help:      "Total number of accounts deleted.",
	},
)

// ── Vault metrics ────────────────────────────────────────────────────────────

// VaultOperationsTotal counts vault use cases.
// Labels:
//   - operation: create, list, get, update, delete
//   - result: "success" or "failure"
var VaultOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "vault_operations_total",
		Help:      "Total number of vault operations, by operation and result.",
	},
	[]string{"operation", "result"},
)

// ── Utility metrics ──────────────────────────────────────────────────────────

// StrengthEvaluationsTotal counts strength checks.
// Label:
//   - strength: Strong, Medium or Weak
var StrengthEvaluationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "strength_evaluations_total",
		Help:      "Total number of strength evaluations, by resulting class.",
	},
	[]string{"strength"},
)

// SecretsGeneratedTotal counts generated secrets.
var SecretsGeneratedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "secrets_generated_total",
		Help:      "Total number of secrets generated.",
	},
)

// Result maps an error to the result label.
func Result(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}
