package decode

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains all the observability data for record decoding, in the
// form of Prometheus metrics.
type Metrics struct {
	Seen    prometheus.Counter
	Decoded prometheus.Counter
	Invalid *prometheus.CounterVec
}

// NewMetrics creates, but does not register, a set of Prometheus.Collector metrics.
// Use Metrics.List to add this to a Prometheus registry to expose the metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		Seen: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "records_seen_total",
			Help: "records handed to the decoder",
		}),
		Decoded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "records_decoded_total",
			Help: "records successfully decoded",
		}),
		Invalid: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "records_invalid_total",
			Help: "records that failed to decode",
		}, []string{"reason"}),
	}

	// Ensure every reason is 0 filled so they always show up, even if they
	// haven't yet happened.
	for _, r := range reasons {
		m.Invalid.WithLabelValues(r.label)
	}
	m.Invalid.WithLabelValues(otherReason)

	return m
}

// List returns a slice containing each Prometheus metric, for adding to a prometheus.Registry.
func (m Metrics) List() []prometheus.Collector {
	return []prometheus.Collector{
		m.Seen,
		m.Decoded,
		m.Invalid,
	}
}
