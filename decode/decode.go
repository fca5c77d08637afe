package decode

import (
	"context"
	"errors"

	"github.com/jasonrobot/sexp-parser/sexp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// reasons maps each decode failure to its metric label.
var reasons = []struct {
	err   error
	label string
}{
	{sexp.ErrNotASequence, "not_sequence"},
	{sexp.ErrUnbalancedParens, "unbalanced_parens"},
	{sexp.ErrUnbalancedQuotes, "unbalanced_quotes"},
	{sexp.ErrUnparseableToken, "unparseable_token"},
	{sexp.ErrNumberRange, "number_range"},
	{sexp.ErrExtraTokens, "extra_tokens"},
	{sexp.ErrTooDeep, "too_deep"},
}

const otherReason = "other"

func reason(err error) string {
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.label
		}
	}
	return otherReason
}

// Decoder turns raw records into sexp.Values.
type Decoder struct {
	metrics *Metrics
	parser  sexp.Parser
}

// NewDecoder creates a Decoder allowing records to nest at most maxDepth
// deep.  Zero means sexp.DefaultMaxDepth.
func NewDecoder(maxDepth int) *Decoder {
	return &Decoder{
		metrics: NewMetrics(),
		parser:  sexp.Parser{MaxDepth: maxDepth},
	}
}

// Metrics returns a slice of prometheus.Collector objects that can be registered.
// to expose decoding metrics via Prometheus.
func (d Decoder) Metrics() []prometheus.Collector { return d.metrics.List() }

// Decode consumes raw records from the records channel, parses each one and
// passes the result to accept.
//
// Decode blocks and will not return until the context is canceled or the
// records channel is closed.  Records that fail to parse are logged and
// counted, then skipped.
func (d *Decoder) Decode(ctx context.Context, records <-chan []byte, accept func(sexp.Value) error) {
	log := zerolog.Ctx(ctx).With().Str("component", "decoder").Logger()

	for {
		select {
		case <-ctx.Done():
			return
		case rec, ok := <-records:
			if !ok {
				log.Debug().Msg("records channel closed, decoder exiting")
				return
			}

			d.metrics.Seen.Inc()
			v, err := d.parser.Parse(string(rec))
			if err != nil {
				why := reason(err)
				d.metrics.Invalid.WithLabelValues(why).Inc()
				log.Debug().Err(err).Str("reason", why).Bytes("record", rec).Msg("undecodable record")
				continue
			}

			d.metrics.Decoded.Inc()
			if err := accept(v); err != nil {
				log.Err(err).Msg("unable to accept record")
			}
		}
	}
}
