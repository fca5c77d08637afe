package publisher

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/jasonrobot/sexp-parser/collect"
)

// WriterPublisher writes each collect.Msg envelope as one line to an
// io.Writer.  It is used when no broker is configured.
type WriterPublisher struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter creates a WriterPublisher emitting to w.
func NewWriter(w io.Writer) *WriterPublisher {
	return &WriterPublisher{w: w}
}

// Publish encodes msg and writes it followed by a newline.  Concurrent calls
// never interleave their output.
func (p *WriterPublisher) Publish(_ context.Context, msg *collect.Msg) error {
	env, err := msg.Encode()
	if err != nil {
		return fmt.Errorf("encoding Msg %v: %w", msg.ID, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := io.WriteString(p.w, env+"\n"); err != nil {
		return fmt.Errorf("writing Msg %v: %w", msg.ID, err)
	}
	return nil
}
