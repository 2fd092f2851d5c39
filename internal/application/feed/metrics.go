package feed

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records feed activity. A nil *Metrics is valid and records nothing.
type Metrics struct {
	attempts    *prometheus.CounterVec
	superseded  prometheus.Counter
	lastSuccess prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tradesim",
			Subsystem: "feed",
			Name:      "fetch_attempts_total",
			Help:      "Upstream quote fetch attempts by provider and outcome.",
		}, []string{"provider", "outcome"}),
		superseded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tradesim",
			Subsystem: "feed",
			Name:      "superseded_total",
			Help:      "Fetch results discarded because a newer fetch was already applied.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tradesim",
			Subsystem: "feed",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last applied successful refresh.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.attempts, m.superseded, m.lastSuccess)
	}
	return m
}

func (m *Metrics) observeAttempt(provider, outcome string) {
	if m == nil {
		return
	}
	m.attempts.WithLabelValues(provider, outcome).Inc()
}

func (m *Metrics) observeSuperseded() {
	if m == nil {
		return
	}
	m.superseded.Inc()
}

func (m *Metrics) observeSuccess(at time.Time) {
	if m == nil {
		return
	}
	m.lastSuccess.Set(float64(at.UnixNano()) / float64(time.Second))
}

// NewLimiterGauge exposes how many upstream calls the rate limiter still admits in
// its current window.
func NewLimiterGauge(reg prometheus.Registerer, remaining func() int) prometheus.GaugeFunc {
	g := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "tradesim",
		Subsystem: "feed",
		Name:      "rate_limit_remaining",
		Help:      "Upstream calls left in the current rate limit window.",
	}, func() float64 { return float64(remaining()) })

	if reg != nil {
		reg.MustRegister(g)
	}
	return g
}
