// Package metrics defines the custom Prometheus metrics of the contacts API.
// It is the single source of truth for metric names, labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation and exposed on GET /metrics next to the echoprometheus
// request metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "contacts"

// Operation results used as the "result" label.
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

// OperationsTotal counts contact operations by outcome.
// Labels:
//   - operation: create, list, get, update, delete
//   - result: ok, rejected (validation), not_found, error
var OperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operations_total",
		Help:      "Total number of contact operations, by operation and result.",
	},
	[]string{"operation", "result"},
)

// ValidationRejectionsTotal counts writes refused by the validation gate.
// Label:
//   - reason: missing_field or missing_primary_reference
var ValidationRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_rejections_total",
		Help:      "Total number of contact writes rejected before reaching the store.",
	},
	[]string{"reason"},
)

// CacheLookupsTotal counts read cache decisions.
// Label:
//   - result: "hit", "miss" or "error"
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of contact cache lookups, labelled by result (hit/miss/error).",
	},
	[]string{"result"},
)
