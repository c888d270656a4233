package observability

import (
	"time"

	"github.com/aretw0/grunberg/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "grunberg"

// Persistence outcomes used as the "result" label.
const (
	ResultOK     = "ok"
	ResultFailed = "failed"
	ResultAbsent = "absent"
)

// Metrics groups the game collectors. A nil *Metrics records nothing.
type Metrics struct {
	Actions     *prometheus.CounterVec
	Events      *prometheus.CounterVec
	Persistence *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on reg.
// Pass prometheus.NewRegistry() in tests to keep registrations isolated.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Actions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "actions_dispatched_total",
				Help:      "Total number of actions dispatched to the engine",
			},
			[]string{"type"},
		),
		Events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_emitted_total",
				Help:      "Total number of domain events published on the bus",
			},
			[]string{"kind"},
		),
		Persistence: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "persistence_operations_total",
				Help:      "Persistence operations by kind and outcome",
			},
			[]string{"op", "result"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "persistence_duration_seconds",
				Help:      "Duration of persistence operations",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
			[]string{"op"},
		),
	}

	for _, c := range []prometheus.Collector{m.Actions, m.Events, m.Persistence, m.Duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveAction counts one dispatched action.
func (m *Metrics) ObserveAction(t domain.ActionType) {
	if m == nil {
		return
	}
	m.Actions.WithLabelValues(string(t)).Inc()
}

// Handle counts one bus event.
func (m *Metrics) Handle(e domain.Event) {
	if m == nil {
		return
	}
	m.Events.WithLabelValues(string(e.Kind)).Inc()
}

// ObservePersistence records the outcome and latency of a persistence call.
func (m *Metrics) ObservePersistence(op, result string, d time.Duration) {
	if m == nil {
		return
	}
	m.Persistence.WithLabelValues(op, result).Inc()
	m.Duration.WithLabelValues(op).Observe(d.Seconds())
}
