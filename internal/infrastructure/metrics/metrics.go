package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SettlementMetrics holds every metric the settlement core records.
// All record helpers are nil-safe so tests can run without a registry.
type SettlementMetrics struct {
	OrdersSettledTotal     *prometheus.CounterVec
	OrdersCancelledTotal   *prometheus.CounterVec
	OrdersRejectedTotal    *prometheus.CounterVec
	OrdersCompletedTotal   *prometheus.CounterVec
	SettledAmountTotal     *prometheus.CounterVec
	CommissionAmountTotal  *prometheus.CounterVec
	RefundAmountTotal      *prometheus.CounterVec
	InsufficientFundsTotal *prometheus.CounterVec
	SuspectFlagsTotal      prometheus.Counter
	HookFailuresTotal      *prometheus.CounterVec
	OperationDuration      *prometheus.HistogramVec
}

func NewSettlementMetrics() *SettlementMetrics {
	return &SettlementMetrics{
		OrdersSettledTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "settlement_orders_settled_total",
				Help: "Orders funded and moved to ACCEPTED",
			},
			[]string{"currency"},
		),
		OrdersCancelledTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "settlement_orders_cancelled_total",
				Help: "Orders moved to CANCELLED",
			},
			[]string{"currency"},
		),
		OrdersRejectedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "settlement_orders_rejected_total",
				Help: "Orders moved to REJECTED",
			},
			[]string{"currency"},
		),
		OrdersCompletedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "settlement_orders_completed_total",
				Help: "Orders moved to COMPLETED",
			},
			[]string{"currency"},
		),
		SettledAmountTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "settlement_settled_amount_total",
				Help: "Total captured amount in minor units",
			},
			[]string{"currency"},
		),
		CommissionAmountTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "settlement_commission_amount_total",
				Help: "Total platform commission in minor units",
			},
			[]string{"currency"},
		),
		RefundAmountTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "settlement_refund_amount_total",
				Help: "Total refunded amount in minor units",
			},
			[]string{"currency"},
		),
		InsufficientFundsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "settlement_insufficient_funds_total",
				Help: "Settlement attempts rejected on the balance check",
			},
			[]string{"currency"},
		),
		SuspectFlagsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "settlement_suspect_flags_total",
				Help: "Users flagged as suspect by the cancellation policy",
			},
		),
		HookFailuresTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "settlement_hook_failures_total",
				Help: "Post-commit collaborator failures (logged, not fatal)",
			},
			[]string{"hook"},
		),
		OperationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "settlement_operation_duration_seconds",
				Help:    "End-to-end duration of settlement operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

func (m *SettlementMetrics) RecordSettled(currency string, amount, commission int64) {
	if m == nil {
		return
	}
	m.OrdersSettledTotal.WithLabelValues(currency).Inc()
	m.SettledAmountTotal.WithLabelValues(currency).Add(float64(amount))
	m.CommissionAmountTotal.WithLabelValues(currency).Add(float64(commission))
}

func (m *SettlementMetrics) RecordCancelled(currency string, refunded int64) {
	if m == nil {
		return
	}
	m.OrdersCancelledTotal.WithLabelValues(currency).Inc()
	m.RefundAmountTotal.WithLabelValues(currency).Add(float64(refunded))
}

func (m *SettlementMetrics) RecordRejected(currency string, refunded int64) {
	if m == nil {
		return
	}
	m.OrdersRejectedTotal.WithLabelValues(currency).Inc()
	m.RefundAmountTotal.WithLabelValues(currency).Add(float64(refunded))
}

func (m *SettlementMetrics) RecordCompleted(currency string) {
	if m == nil {
		return
	}
	m.OrdersCompletedTotal.WithLabelValues(currency).Inc()
}

func (m *SettlementMetrics) RecordInsufficientFunds(currency string) {
	if m == nil {
		return
	}
	m.InsufficientFundsTotal.WithLabelValues(currency).Inc()
}

func (m *SettlementMetrics) RecordSuspectFlagged() {
	if m == nil {
		return
	}
	m.SuspectFlagsTotal.Inc()
}

func (m *SettlementMetrics) RecordHookFailure(hook string) {
	if m == nil {
		return
	}
	m.HookFailuresTotal.WithLabelValues(hook).Inc()
}

func (m *SettlementMetrics) ObserveDuration(operation string, seconds float64) {
	if m == nil {
		return
	}
	m.OperationDuration.WithLabelValues(operation).Observe(seconds)
}
