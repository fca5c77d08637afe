package collect

import (
	"context"
	"fmt"

	"github.com/jasonrobot/sexp-parser/filters"
	"github.com/jasonrobot/sexp-parser/sexp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

type constError string

func (e constError) Error() string { return string(e) }

const (
	// ErrFull indicates that more outstanding records await publishing than
	// the internal structure of the Collecter can support; the record passed
	// to Accept will not be published.
	ErrFull = constError("publish queue is full")
)

type publisher func(context.Context, *Msg) error

// Collecter receives decoded records, discarding those that don't match the
// configured filter, and then publishes the accepted ones.
// It uses an internal channel to queue so that Accept won't block, making it
// suitable for use as the accept func of a decode.Decoder.
type Collecter struct {
	metrics *Metrics
	match   filters.Filter
	publish publisher
	msgs    chan sexp.Value
}

// NewCollecter returns a Collector that accepts records that pass the match
// filter, then uses publish to emit them.  depth controls how many records
// may be internally queued before discarding excess; it is at least 1.
func NewCollecter(match filters.Filter, publish publisher, depth int) *Collecter {
	if depth < 1 {
		depth = 1
	}
	return &Collecter{
		match:   match,
		publish: publish,
		metrics: NewMetrics(),
		msgs:    make(chan sexp.Value, depth),
	}
}

// SetFilterSource records the filter expression in use as a labeled info
// metric.
func (c *Collecter) SetFilterSource(src string) {
	c.metrics.Filter.WithLabelValues(src).Set(1)
}

// Accept receives a decoded record and enqueues it for filtering and
// publishing.  If for any reason the internal channel used for queueing is
// full, it will discard the record and return an error.
func (c *Collecter) Accept(rec sexp.Value) error {
	select {
	case c.msgs <- rec:
		return nil
	default:
		c.metrics.Dropped.Inc()
		return fmt.Errorf("dropping record %v: %w", rec, ErrFull)
	}
}

// Close stops the Collecter accepting records.  Publish will return once it
// has drained whatever is still queued.  Accept must not be called after
// Close.
func (c *Collecter) Close() {
	close(c.msgs)
}

// Publish blocks, consuming the internal queue, filtering out unwanted
// records, creating the envelope for each and then publishes them using the
// provided publisher.
func (c *Collecter) Publish(ctx context.Context) {
	log := zerolog.Ctx(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case rec, ok := <-c.msgs:
			if rec == nil || !ok {
				log.Info().Msg("channel closed, accepter exiting")
				return
			}
			if !c.match(rec) {
				c.metrics.Rejected.Inc()
				log.Debug().Msg("discarding record that does not match filter")
				continue
			}
			msg := NewMsg(rec)
			if err := c.publish(ctx, msg); err != nil {
				log.Err(err).Str("id", msg.ID).Msg("publish failed")
				continue
			}
			c.metrics.Published.Inc()
		}
	}
}

// Metrics returns a list of prometheus.Collecter interfaces, suitable for
// passing to prometheus.Registry to export record collection metrics.
func (c *Collecter) Metrics() []prometheus.Collector { return c.metrics.List() }
