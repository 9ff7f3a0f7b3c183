// Package metrics exports production events as Prometheus collectors.
package metrics

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vsinha/resmng/pkg/infrastructure/events"
)

const namespace = "resmng"

var handledEvents = []string{
	events.OrderAdmittedEvent,
	events.OrderManufacturedEvent,
	events.SupplyUpdatedEvent,
	events.QueueDrainedEvent,
}

// Recorder is an event handler that keeps order, manufacture and backlog metrics
type Recorder struct {
	orders        *prometheus.CounterVec
	manufactured  *prometheus.CounterVec
	backlog       prometheus.Gauge
	supplyUpdates prometheus.Counter
}

// Verify interface compliance
var _ events.EventHandler = (*Recorder)(nil)

// NewRecorder creates the collectors and registers them on reg
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		orders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_total",
			Help:      "Admitted orders by forecast outcome.",
		}, []string{"outcome"}),
		manufactured: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "manufactured_total",
			Help:      "Backlog orders manufactured, by priority class.",
		}, []string{"priority"}),
		backlog: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "backlog_orders",
			Help:      "Orders waiting in the production backlog.",
		}),
		supplyUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "supply_updates_total",
			Help:      "Material supply overwrites.",
		}),
	}

	for _, c := range []prometheus.Collector{r.orders, r.manufactured, r.backlog, r.supplyUpdates} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register collector: %w", err)
		}
	}
	return r, nil
}

// Attach subscribes the recorder to every event type it understands
func (r *Recorder) Attach(store events.EventStore) error {
	return store.Subscribe(handledEvents, r)
}

// CanHandle reports whether the event type feeds a collector
func (r *Recorder) CanHandle(eventType string) bool {
	for _, t := range handledEvents {
		if t == eventType {
			return true
		}
	}
	return false
}

// Handle updates the collectors from one production event
func (r *Recorder) Handle(event events.Event) error {
	switch data := event.Data().(type) {
	case events.OrderAdmitted:
		r.orders.WithLabelValues(data.Outcome.String()).Inc()
		r.backlog.Set(float64(data.Backlog))
	case events.OrderManufactured:
		r.manufactured.WithLabelValues(strconv.Itoa(int(data.Priority))).Inc()
	case events.SupplyUpdated:
		r.supplyUpdates.Inc()
	case events.QueueDrained:
		r.backlog.Set(float64(data.Backlog))
	default:
		return fmt.Errorf("metrics: unexpected payload %T for %s", data, event.Type())
	}
	return nil
}
