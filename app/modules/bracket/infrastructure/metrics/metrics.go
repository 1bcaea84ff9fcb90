package bracketmetrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	bracketservice "github.com/courtside-club/bracket-bot/app/modules/bracket/application"
)

// PrometheusMetrics implements bracketservice.BracketMetrics on a
// shared registry.
type PrometheusMetrics struct {
	operationAttempts  *prometheus.CounterVec
	operationDuration  *prometheus.HistogramVec
	operationSuccesses *prometheus.CounterVec
	operationFailures  *prometheus.CounterVec

	tournamentsCreated prometheus.Counter
	tournamentSlots    prometheus.Histogram
	winnersApplied     prometheus.Counter
	undos              prometheus.Counter
}

var _ bracketservice.BracketMetrics = (*PrometheusMetrics)(nil)

// NewPrometheusMetrics registers the bracket collectors on the given
// registry.
func NewPrometheusMetrics(registry *prometheus.Registry, namespace string) *PrometheusMetrics {
	m := &PrometheusMetrics{
		operationAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bracket_operation_attempts_total",
			Help:      "Total number of bracket operation attempts",
		}, []string{"operation"}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "bracket_operation_duration_seconds",
			Help:      "Duration of bracket operations",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		operationSuccesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bracket_operation_successes_total",
			Help:      "Total number of successful bracket operations",
		}, []string{"operation"}),
		operationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bracket_operation_failures_total",
			Help:      "Total number of failed bracket operations",
		}, []string{"operation"}),
		tournamentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bracket_tournaments_created_total",
			Help:      "Total number of tournaments created",
		}),
		tournamentSlots: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "bracket_tournament_slots",
			Help:      "Slot count of created tournaments",
			Buckets:   []float64{2, 4, 8, 16, 32, 64, 128},
		}),
		winnersApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bracket_winners_applied_total",
			Help:      "Total number of winners recorded",
		}),
		undos: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bracket_undos_total",
			Help:      "Total number of results undone",
		}),
	}

	registry.MustRegister(
		m.operationAttempts,
		m.operationDuration,
		m.operationSuccesses,
		m.operationFailures,
		m.tournamentsCreated,
		m.tournamentSlots,
		m.winnersApplied,
		m.undos,
	)
	return m
}

func (m *PrometheusMetrics) RecordOperationAttempt(_ context.Context, operation string) {
	m.operationAttempts.WithLabelValues(operation).Inc()
}

func (m *PrometheusMetrics) RecordOperationDuration(_ context.Context, operation string, duration time.Duration) {
	m.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordOperationSuccess(_ context.Context, operation string) {
	m.operationSuccesses.WithLabelValues(operation).Inc()
}

func (m *PrometheusMetrics) RecordOperationFailure(_ context.Context, operation string) {
	m.operationFailures.WithLabelValues(operation).Inc()
}

func (m *PrometheusMetrics) RecordTournamentCreated(_ context.Context, slotCount int) {
	m.tournamentsCreated.Inc()
	m.tournamentSlots.Observe(float64(slotCount))
}

func (m *PrometheusMetrics) RecordWinnerApplied(_ context.Context) {
	m.winnersApplied.Inc()
}

func (m *PrometheusMetrics) RecordUndo(_ context.Context) {
	m.undos.Inc()
}
