// Package metrics defines and registers all custom Prometheus metrics for the
// banking API. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry via promauto at
// package load; the /metrics endpoint is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "banking"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome: "success",
// "invalid_credentials", or "account_disabled".
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// RegistrationsTotal counts successfully registered identities by role.
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of identities registered, by role.",
	},
	[]string{"role"},
)

// ── Business metrics ──────────────────────────────────────────────────────────

// ClientsOnboardedTotal counts successfully onboarded clients.
var ClientsOnboardedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clients_onboarded_total",
		Help:      "Total number of corporate clients onboarded.",
	},
)

// CreditsCreatedTotal counts newly raised credit requests.
var CreditsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "credits_created_total",
		Help:      "Total number of credit requests created.",
	},
)

// CreditDecisionsTotal counts decisions by terminal status ("APPROVED" or
// "REJECTED").
var CreditDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "credit_decisions_total",
		Help:      "Total number of credit decisions, by resulting status.",
	},
	[]string{"status"},
)

// ── Audit pipeline metrics ────────────────────────────────────────────────────

// AuditEventsPublishedTotal counts events handed to the dispatcher, by topic.
var AuditEventsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_published_total",
		Help:      "Total number of audit events enqueued for publication, by topic.",
	},
	[]string{"topic"},
)

// AuditEventsDroppedTotal counts events dropped because a worker queue was
// full. Publication is best-effort and never blocks the mutation.
var AuditEventsDroppedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of audit events dropped due to a full worker queue, by topic.",
	},
	[]string{"topic"},
)

// AuditQueueDepth tracks the number of events waiting in each worker channel.
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
