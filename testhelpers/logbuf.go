package testhelpers

import (
	"bytes"
	"strings"
	"sync"
)

// LogBuf is an io.Writer safe to share with background goroutines, such as a
// zerolog.Logger attached to a context or a publisher writing records.
//
//	buf := testhelpers.NewLogBuf()
//	ctx := zerolog.New(buf).WithContext(context.Background())
//	<do test things that log>
//	is.True(buf.Contains("some test value"))
type LogBuf struct {
	sync.Mutex
	*bytes.Buffer
}

// Write satisfies io.Writer.
func (ml *LogBuf) Write(p []byte) (int, error) {
	ml.Lock()
	defer ml.Unlock()
	return ml.Buffer.Write(p)
}

// String satisfies Stringer
func (ml *LogBuf) String() string {
	ml.Lock()
	defer ml.Unlock()
	return ml.Buffer.String()
}

// Contains reports whether s has been written so far.
func (ml *LogBuf) Contains(s string) bool {
	return strings.Contains(ml.String(), s)
}

// Lines returns every non-empty line written so far.
func (ml *LogBuf) Lines() []string {
	lines := []string{}
	for _, l := range strings.Split(ml.String(), "\n") {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// NewLogBuf returns an initialized log buffer.
func NewLogBuf() *LogBuf {
	return &LogBuf{Buffer: &bytes.Buffer{}}
}
