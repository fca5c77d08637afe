package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jasonrobot/sexp-parser/splitter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// DefaultMaxRecord is the largest record, in bytes, read when no other size
// is given.
const DefaultMaxRecord = 1024 * 1024

// ClosableSource wraps an io.ReadCloser and a record splitting
// bufio.Scanner together into one unit which can deliver records via
// Records() and expose a Close() method to cleanly shut down.
type ClosableSource struct {
	name     string
	rc       io.ReadCloser
	scanner  *bufio.Scanner
	splitter *splitter.Splitter
	metrics  *Metrics
	err      error
}

// Records starts reading and returns a channel of raw records.  The channel
// is closed when the input ends, fails, or ctx is canceled.  Records should
// only be called once.
func (c *ClosableSource) Records(ctx context.Context) <-chan []byte {
	log := zerolog.Ctx(ctx).With().Str("component", "record-source").Str("source", c.name).Logger()
	out := make(chan []byte)

	go func() {
		defer close(out)
		for c.scanner.Scan() {
			// The scanner reuses its buffer, so each record needs its own copy.
			rec := append([]byte(nil), c.scanner.Bytes()...)
			select {
			case out <- rec:
			case <-ctx.Done():
				return
			}
		}
		if err := c.scanner.Err(); err != nil {
			c.err = err
			log.Err(err).Msg("reading records failed")
			return
		}
		log.Debug().Msg("end of input")
	}()

	return out
}

// Err returns the error that ended Records, if any.  It is only valid once
// the Records channel has been closed.
func (c *ClosableSource) Err() error {
	return c.err
}

// SetStrict makes the source stop with splitter.ErrUnterminated at the first
// incomplete record, rather than counting and skipping it.  It must be called
// before Records.
func (c *ClosableSource) SetStrict(strict bool) {
	c.splitter.ExitOnError = strict
}

// Close closes the underlying reader, which should in turn end Records.
func (c *ClosableSource) Close() error {
	return c.rc.Close()
}

// Metrics returns a slice of prometheus.Collector items for exposing the
// source via Prometheus.
func (c ClosableSource) Metrics() []prometheus.Collector { return c.metrics.List() }

// NewReader creates a ClosableSource splitting records out of rc.  name is
// only used for logging and metrics.  Records larger than maxRecord bytes
// stop the source; zero means DefaultMaxRecord.
func NewReader(name string, rc io.ReadCloser, maxRecord int) *ClosableSource {
	if maxRecord <= 0 {
		maxRecord = DefaultMaxRecord
	}
	src := &ClosableSource{
		name:    name,
		rc:      rc,
		metrics: NewMetrics(),
	}

	src.splitter = &splitter.Splitter{Trace: &splitter.Trace{
		Discard:    func(b []byte) { src.metrics.Discarded.Add(float64(len(b))) },
		Incomplete: func([]byte) { src.metrics.Incomplete.Inc() },
		Complete:   func([]byte) { src.metrics.Records.Inc() },
	}}
	src.scanner = bufio.NewScanner(rc)
	initial := 4096
	if maxRecord < initial {
		initial = maxRecord
	}
	src.scanner.Buffer(make([]byte, 0, initial), maxRecord)
	src.scanner.Split(src.splitter.SplitRecords)

	src.metrics.Info.WithLabelValues(name).Set(1)
	return src
}

// NewFile opens path as a ClosableSource.  A path of "-" reads standard
// input.
func NewFile(path string, maxRecord int) (*ClosableSource, error) {
	if path == "-" {
		return NewReader("stdin", os.Stdin, maxRecord), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening record source %v: %w", path, err)
	}
	return NewReader(path, f, maxRecord), nil
}
