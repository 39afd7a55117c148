// Package metrics reports ExpiringStorage events to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

/*
Prometheus implements types.Metrics with one counter vector,
labelled by event: hit, miss, expire, write, corrupt.
*/
type Prometheus struct {
	events *prometheus.CounterVec
}

// Event labels.
const (
	EventHit     = "hit"
	EventMiss    = "miss"
	EventExpire  = "expire"
	EventWrite   = "write"
	EventCorrupt = "corrupt"
)

// NewPrometheus registers the counters on reg. A nil reg skips registration.
func NewPrometheus(reg prometheus.Registerer, namespace string) (*Prometheus, error) {
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "expiring_storage",
		Name:      "events_total",
		Help:      "Expiring storage entry lifecycle events.",
	}, []string{"event"})

	if reg != nil {
		if err := reg.Register(events); err != nil {
			return nil, err
		}
	}
	// Pre-create every series so dashboards see zeros instead of gaps.
	for _, ev := range []string{EventHit, EventMiss, EventExpire, EventWrite, EventCorrupt} {
		events.WithLabelValues(ev)
	}
	return &Prometheus{events: events}, nil
}

func (p *Prometheus) Hit()     { p.events.WithLabelValues(EventHit).Inc() }
func (p *Prometheus) Miss()    { p.events.WithLabelValues(EventMiss).Inc() }
func (p *Prometheus) Expire()  { p.events.WithLabelValues(EventExpire).Inc() }
func (p *Prometheus) Write()   { p.events.WithLabelValues(EventWrite).Inc() }
func (p *Prometheus) Corrupt() { p.events.WithLabelValues(EventCorrupt).Inc() }

// Count returns the current value of one event counter.
func (p *Prometheus) Count(event string) prometheus.Counter {
	return p.events.WithLabelValues(event)
}
