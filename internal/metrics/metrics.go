package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "smartshop"

type Metrics struct {
	MirrorOperations *prometheus.CounterVec
	DroppedEvents    prometheus.Counter
}

func New() Metrics {
	return Metrics{
		MirrorOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mirror_operations_total",
			Help:      "Remote mirror writes and deletes by outcome.",
		}, []string{"op", "result"}),
		DroppedEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "product_events_dropped_total",
			Help:      "Product change events dropped because the publisher queue was full.",
		}),
	}
}

func (m Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.MirrorOperations, m.DroppedEvents} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
