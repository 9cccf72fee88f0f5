package metrics

import (
	"github.com/failsafe-go/failsafe-go/circuitbreaker"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mogiel/konec/internal/ratelimit"
)

// RateLimitMetrics counts limiter decisions and exposes the state of the store breaker.
type RateLimitMetrics struct {
	Decisions          *prometheus.CounterVec
	BreakerState       prometheus.Gauge
	BreakerTransitions *prometheus.CounterVec
}

var _ ratelimit.Recorder = (*RateLimitMetrics)(nil)

func NewRateLimitMetrics(reg prometheus.Registerer) *RateLimitMetrics {
	m := &RateLimitMetrics{
		Decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ratelimit",
			Name:      "decisions_total",
			Help:      "Rate limiter decisions by outcome (allowed, rejected, error).",
		}, []string{"outcome"}),
		BreakerState: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ratelimit",
			Name:      "store_breaker_state",
			Help:      "State of the shared store breaker (0=closed, 1=half-open, 2=open).",
		}),
		BreakerTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ratelimit",
			Name:      "store_breaker_transitions_total",
			Help:      "Shared store breaker transitions by target state.",
		}, []string{"state"}),
	}

	for _, o := range []ratelimit.Outcome{ratelimit.OutcomeAllowed, ratelimit.OutcomeRejected, ratelimit.OutcomeError} {
		m.Decisions.WithLabelValues(string(o))
	}

	reg.MustRegister(m.Decisions, m.BreakerState, m.BreakerTransitions)
	return m
}

func (m *RateLimitMetrics) RecordDecision(outcome ratelimit.Outcome) {
	m.Decisions.WithLabelValues(string(outcome)).Inc()
}

// ObserveBreakerState is meant for ratelimit.FallbackOptions.OnStateChange.
func (m *RateLimitMetrics) ObserveBreakerState(state circuitbreaker.State) {
	m.BreakerState.Set(stateToFloat(state))
	m.BreakerTransitions.WithLabelValues(state.String()).Inc()
}

func stateToFloat(state circuitbreaker.State) float64 {
	switch state {
	case circuitbreaker.ClosedState:
		return 0
	case circuitbreaker.HalfOpenState:
		return 1
	case circuitbreaker.OpenState:
		return 2
	default:
		return -1
	}
}
