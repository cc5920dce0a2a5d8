// Package metrics holds the process-wide Prometheus collectors, served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Notification results.
const (
	ResultSent    = "sent"
	ResultFailed  = "failed"
	ResultSkipped = "skipped"
)

var (
	// Notifications counts push dispatches by recipient group (customer, drivers, waiters) and result.
	Notifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lokma_notifications_total",
		Help: "Push notifications dispatched per recipient group and result.",
	}, []string{"recipient", "result"})

	OrderTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lokma_order_transitions_total",
		Help: "Order status transitions handled by the notifier.",
	}, []string{"status"})

	CommissionRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lokma_commission_records_total",
		Help: "Commission records written.",
	}, []string{"courier_type", "collection_status"})

	// BranchErrors counts failed notifier side effects (feedback, ledger, gateway, staff lookup).
	BranchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lokma_notifier_branch_errors_total",
		Help: "Notifier side effects that failed and were skipped.",
	}, []string{"branch"})
)
