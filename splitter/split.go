package splitter

import (
	"bytes"
	"errors"
)

var (
	// ErrUnterminated indicates a record that opened with '(' but hit a
	// newline or the end of the stream before its closing paren.
	ErrUnterminated = errors.New("unterminated record")
)

// Trace is a set of hooks run at various stages of splitting the record
// stream.  Any particular hook may be nil.
type Trace struct {
	// Discard is called with bytes found between records that are not
	// blank.  Usually this is a stray close paren or some prose logged
	// alongside the records.
	Discard func([]byte)
	// Incomplete is called with the bytes of a record that was cut off by a
	// newline, or by the end of the stream, before its parens balanced.
	Incomplete func([]byte)
	// Complete is called each time a whole record is found.  The bytes match
	// bufio.Scanner.Bytes() for the current token.
	Complete func([]byte)
}

// Splitter provides SplitRecords for using bufio.Scanner to cut individual
// s-expression records out of an io.Reader stream.  Its zero value is usable
// and silently skips anything that is not a record.
type Splitter struct {
	// Trace hooks operate similarly to httptrace.ClientTrace.  If Trace is
	// nil, no hooks will be run.
	Trace *Trace
	// ExitOnError stops scanning with ErrUnterminated on the first cut off
	// record instead of discarding it and resynchronizing.
	ExitOnError bool
}

// SplitRecords is a bufio.SplitFunc returning each top level parenthesized
// record as a token.  Parens inside double quotes do not count.  Records
// never span lines: a newline ends an open record as incomplete, even inside
// a quoted string, so one stray quote cannot swallow the records after it.
func (s *Splitter) SplitRecords(b []byte, atEOF bool) (int, []byte, error) {
	if len(b) == 0 {
		return 0, nil, nil
	}

	start := bytes.IndexByte(b, '(')
	if start < 0 {
		// No record begins here; nothing in b can become one.
		s.discard(b)
		return len(b), nil, nil
	}
	if start > 0 {
		s.discard(b[:start])
		return start, nil, nil
	}

	end, cut := findRecordEnd(b)
	switch {
	case end > 0:
		if s.Trace != nil && s.Trace.Complete != nil {
			s.Trace.Complete(b[:end])
		}
		return end, b[:end], nil
	case cut > 0:
		return s.incomplete(b[:cut])
	case atEOF:
		return s.incomplete(b)
	}
	// Record still open, wait for more.
	return 0, nil, nil
}

func (s *Splitter) discard(b []byte) {
	if s.Trace == nil || s.Trace.Discard == nil {
		return
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return
	}
	s.Trace.Discard(b)
}

func (s *Splitter) incomplete(b []byte) (int, []byte, error) {
	if s.Trace != nil && s.Trace.Incomplete != nil {
		s.Trace.Incomplete(b)
	}
	if s.ExitOnError {
		return len(b), nil, ErrUnterminated
	}
	return len(b), nil, nil
}

// findRecordEnd scans a record starting at b[0] == '('.  It returns the
// length of the record once its parens balance, or, if a newline comes
// first, the length up to and including that newline as cut.  Both
// are zero when more input is needed.
func findRecordEnd(b []byte) (end int, cut int) {
	open, quoted := 0, false
	for i, c := range b {
		switch {
		case c == '\n':
			return 0, i + 1
		case c == '"':
			quoted = !quoted
		case quoted:
		case c == '(':
			open++
		case c == ')':
			open--
			if open == 0 {
				return i + 1, 0
			}
		}
	}
	return 0, 0
}
