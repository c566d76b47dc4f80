package services

import (
	"errors"
	"time"

	"github.com/SscSPs/crew_ledger/internal/apperrors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the business counters. A nil *Metrics records nothing.
type Metrics struct {
	LedgerWrites       *prometheus.CounterVec
	Settlements        *prometheus.CounterVec
	SettlementDuration prometheus.Histogram
	BalanceMismatches  prometheus.Gauge
}

func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		LedgerWrites: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_writes_total",
				Help: "Ledger write operations by kind and result.",
			},
			[]string{"kind", "result"},
		),
		Settlements: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "settlements_total",
				Help: "Order settlement attempts by result.",
			},
			[]string{"result"},
		),
		SettlementDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "settlement_duration_seconds",
				Help:    "Settlement transaction duration in seconds.",
				Buckets: prometheus.DefBuckets,
			},
		),
		BalanceMismatches: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "ledger_balance_mismatches",
				Help: "Accounts whose stored balance differed from the ledger at the last verification.",
			},
		),
	}

	registry.MustRegister(m.LedgerWrites, m.Settlements, m.SettlementDuration, m.BalanceMismatches)
	return m
}

func (m *Metrics) observeLedgerWrite(kind string, err error) {
	if m == nil {
		return
	}
	m.LedgerWrites.WithLabelValues(kind, resultLabel(err)).Inc()
}

func (m *Metrics) observeSettlement(start time.Time, err error) {
	if m == nil {
		return
	}
	m.Settlements.WithLabelValues(resultLabel(err)).Inc()
	m.SettlementDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) setBalanceMismatches(n int) {
	if m == nil {
		return
	}
	m.BalanceMismatches.Set(float64(n))
}

// resultLabel keeps label cardinality bounded to the error classes.
func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, apperrors.ErrValidation):
		return "validation"
	case errors.Is(err, apperrors.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperrors.ErrPrecondition):
		return "precondition"
	case errors.Is(err, apperrors.ErrConflict):
		return "conflict"
	case errors.Is(err, apperrors.ErrConsistency):
		return "consistency"
	case errors.Is(err, apperrors.ErrTransient):
		return "transient"
	default:
		return "error"
	}
}
