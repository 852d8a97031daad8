package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Persist and hydration outcomes used as label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeEmpty   = "empty"
	OutcomeCorrupt = "corrupt"
)

// CartMetrics records cart store activity.
type CartMetrics struct {
	mutations       *prometheus.CounterVec
	persists        *prometheus.CounterVec
	persistDuration prometheus.Histogram
	hydrations      *prometheus.CounterVec
	subscribers     prometheus.Gauge
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart mutations applied, by operation.",
	}, []string{"op"})
	persists := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_persist_total",
		Help: "Cart snapshot writes to the persistence backend, by outcome.",
	}, []string{"outcome"})
	persistDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cart_persist_duration_seconds",
		Help:    "Duration of cart snapshot writes in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	hydrations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_hydration_total",
		Help: "Cart rehydration attempts at startup, by outcome.",
	}, []string{"outcome"})
	subscribers := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cart_subscribers",
		Help: "Currently registered cart listeners.",
	})
	reg.MustRegister(mutations, persists, persistDuration, hydrations, subscribers)
	return &CartMetrics{
		mutations:       mutations,
		persists:        persists,
		persistDuration: persistDuration,
		hydrations:      hydrations,
		subscribers:     subscribers,
	}
}

// IncMutation counts an applied mutation.
func (c *CartMetrics) IncMutation(op string) {
	if c == nil || c.mutations == nil {
		return
	}
	c.mutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// ObservePersist records a finished write and its outcome.
func (c *CartMetrics) ObservePersist(duration time.Duration, err error) {
	if c == nil || c.persists == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	c.persists.WithLabelValues(outcome).Inc()
	c.persistDuration.Observe(duration.Seconds())
}

// IncHydration counts a rehydration outcome.
func (c *CartMetrics) IncHydration(outcome string) {
	if c == nil || c.hydrations == nil {
		return
	}
	c.hydrations.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// SetSubscribers publishes the current listener count.
func (c *CartMetrics) SetSubscribers(n int) {
	if c == nil || c.subscribers == nil {
		return
	}
	c.subscribers.Set(float64(n))
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
