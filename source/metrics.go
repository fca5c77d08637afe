package source

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains Prometheus metrics about reading the record stream: a
// constant gauge labeled with the source name, and counters for what the
// splitter found.
type Metrics struct {
	Info       *prometheus.GaugeVec
	Records    prometheus.Counter
	Incomplete prometheus.Counter
	Discarded  prometheus.Counter
}

// NewMetrics creates a new Metrics object.
func NewMetrics() *Metrics {
	m := &Metrics{
		Info: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "records_source_info",
			Help: "Constant, labeled with the record source",
		}, []string{"source"}),
		Records: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "records_read_total",
			Help: "Complete records split from the source",
		}),
		Incomplete: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "records_incomplete_total",
			Help: "Records cut off by a newline or end of input",
		}),
		Discarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "records_discarded_bytes_total",
			Help: "Bytes of junk discarded between records",
		}),
	}

	return m
}

// List the items contained with a Metrics so that they can be exposed via a
// prometheus.Registry
func (m Metrics) List() []prometheus.Collector {
	return []prometheus.Collector{
		m.Info,
		m.Records,
		m.Incomplete,
		m.Discarded,
	}
}
