// Package metrics declares the custom Prometheus metrics of the livestock API.
// They register with the default registry on import and are exposed at
// /metrics next to the HTTP metrics from echoprometheus.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Mirieri/nikonangombeghani-api/internal/core/domain"
)

const namespace = "livestock"

// EntityOperationsTotal counts storage operations.
// Labels:
//   - entity: e.g. "cattle", "trade"
//   - operation: create, get, list, update, delete
//   - result: ok, not_found, integrity, validation, error
var EntityOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entity_operations_total",
		Help:      "Total number of entity operations, by entity, operation and result.",
	},
	[]string{"entity", "operation", "result"},
)

// AuthAttemptsTotal counts password logins.
// Label:
//   - result: success, failure, inactive
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// MessagesSentTotal counts messages forwarded to the WhatsApp gateway.
// Label:
//   - result: sent, failed
var MessagesSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_sent_total",
		Help:      "Total number of outbound messages handed to the provider, by result.",
	},
	[]string{"result"},
)

// WebhookDedupTotal counts deduplication decisions on inbound callbacks.
// Label:
//   - result: "hit" (duplicate, skipped) or "miss" (new, stored)
var WebhookDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhook_dedup_total",
		Help:      "Total number of webhook deduplication checks, by result.",
	},
	[]string{"result"},
)

// Result classifies err for the result label.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrIntegrity):
		return "integrity"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	default:
		return "error"
	}
}
