// Package metrics exposes wizard counters to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bdo-activity/backend/internal/models"
	"github.com/bdo-activity/backend/internal/navigation"
)

// Collector counts validation failures, commits, transitions and live
// sessions. It satisfies session.Observer.
type Collector struct {
	registry *prometheus.Registry

	validationFailures *prometheus.CounterVec
	recordsCommitted   prometheus.Counter
	sessionsActive     prometheus.Gauge
	transitions        *prometheus.CounterVec
}

// New registers the collectors on reg. A nil reg gets a fresh registry with
// the Go and process collectors.
func New(reg *prometheus.Registry) *Collector {
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	c := &Collector{
		registry: reg,
		validationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bdo",
			Name:      "validation_failures_total",
			Help:      "Fields flagged by step validation.",
		}, []string{"step", "field"}),
		recordsCommitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bdo",
			Name:      "records_committed_total",
			Help:      "Activity records appended to a ledger.",
		}),
		sessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bdo",
			Name:      "sessions_active",
			Help:      "Wizard sessions held in memory.",
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bdo",
			Name:      "transitions_total",
			Help:      "Screen changes by origin and destination.",
		}, []string{"from", "to"}),
	}
	reg.MustRegister(c.validationFailures, c.recordsCommitted, c.sessionsActive, c.transitions)
	return c
}

// ValidationFailed counts each flagged field once.
func (c *Collector) ValidationFailed(step string, fields []string) {
	for _, f := range fields {
		c.validationFailures.WithLabelValues(step, f).Inc()
	}
}

// RecordCommitted counts a commit.
func (c *Collector) RecordCommitted(models.Record) {
	c.recordsCommitted.Inc()
}

// Transition counts a screen change.
func (c *Collector) Transition(from, to navigation.Screen) {
	c.transitions.WithLabelValues(string(from), string(to)).Inc()
}

// SessionsActive sets the live session gauge.
func (c *Collector) SessionsActive(n int) {
	c.sessionsActive.Set(float64(n))
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
