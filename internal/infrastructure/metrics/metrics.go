package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for the analyses counter
const (
	OutcomeRendered       = "rendered"
	OutcomeEmptyInput     = "empty_input"
	OutcomeTransportError = "transport_error"
	OutcomeProtocolError  = "protocol_error"
	OutcomeStale          = "stale"
	OutcomeError          = "error"
)

// Metrics holds the collectors exported by the adapter
type Metrics struct {
	analyses        *prometheus.CounterVec
	verdicts        *prometheus.CounterVec
	upstreamLatency prometheus.Histogram
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "verdict",
			Name:      "analyses_total",
			Help:      "Analyze invocations by outcome.",
		}, []string{"outcome"}),
		verdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "verdict",
			Name:      "final_total",
			Help:      "Rendered final verdicts by badge style.",
		}, []string{"verdict"}),
		upstreamLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "verdict",
			Name:      "classifier_request_duration_seconds",
			Help:      "Latency of prediction API calls.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
	}
	reg.MustRegister(m.analyses, m.verdicts, m.upstreamLatency)
	return m
}

// ObserveOutcome counts one invocation
func (m *Metrics) ObserveOutcome(outcome string) {
	if m == nil {
		return
	}
	m.analyses.WithLabelValues(outcome).Inc()
}

// ObserveVerdict counts a rendered verdict. Anything other than REAL is
// counted as FAKE, matching the badge.
func (m *Metrics) ObserveVerdict(real bool) {
	if m == nil {
		return
	}
	verdict := "FAKE"
	if real {
		verdict = "REAL"
	}
	m.verdicts.WithLabelValues(verdict).Inc()
}

// ObserveLatency records one prediction API round trip
func (m *Metrics) ObserveLatency(d time.Duration) {
	if m == nil {
		return
	}
	m.upstreamLatency.Observe(d.Seconds())
}
