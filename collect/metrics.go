package collect

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains Prometheus metrics about record filtering, including the
// current filter and how many records have been rejected and published.
type Metrics struct {
	Filter    *prometheus.GaugeVec
	Rejected  prometheus.Counter
	Published prometheus.Counter
	Dropped   prometheus.Counter
}

// NewMetrics creates a newly initialied Metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		Filter: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "records_filter_info",
			Help: "Constant, labeled with the record filter setting",
		}, []string{"record_filter"}),
		Rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "records_rejected_total",
			Help: "Number of records rejected by the record filter",
		}),
		Published: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "records_published_total",
			Help: "Number of records successfully published",
		}),
		Dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "records_dropped_total",
			Help: "Number of records dropped due to full publishing queue",
		}),
	}

	return m
}

// List the items contained with a metrics so they can be exposed via a
// prometheus.Registry.
func (m Metrics) List() []prometheus.Collector {
	return []prometheus.Collector{
		m.Filter,
		m.Rejected,
		m.Published,
		m.Dropped,
	}
}
