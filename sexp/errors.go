package sexp

import "fmt"

type constErr string

func (e constErr) Error() string { return string(e) }

const (
	// ErrNotASequence indicates the top level input did not begin with '('.
	ErrNotASequence = constErr("input is not a sequence")
	// ErrUnbalancedParens indicates an open paren was never closed, or a
	// close paren appeared without a matching open.
	ErrUnbalancedParens = constErr("unbalanced parens")
	// ErrUnbalancedQuotes indicates a double quote without its partner.
	ErrUnbalancedQuotes = constErr("unbalanced quotes")
	// ErrUnparseableToken indicates a token inside a sequence that is not a
	// number, boolean, symbol, string or nested sequence.
	ErrUnparseableToken = constErr("unparseable token")
	// ErrNumberRange indicates a well formed numeral too large for a Number.
	ErrNumberRange = constErr("number out of range")
	// ErrExtraTokens indicates text left over after the top level sequence.
	ErrExtraTokens = constErr("unexpected text after sequence")
	// ErrTooDeep indicates nesting beyond the configured maximum depth.
	ErrTooDeep = constErr("nesting too deep")
	// ErrUnsupportedType indicates an attempt to encode something that is
	// not a Value, or convert a Go value with no Value equivalent.
	ErrUnsupportedType = constErr("unsupported type")
	// ErrNotFinite indicates a NaN or infinite Number, which has no textual
	// form.
	ErrNotFinite = constErr("number is not finite")
)

// FormatError reports malformed input to Parse, along with the byte offset
// into the (trimmed) input where the problem was found.
type FormatError struct {
	Offset int
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("offset %d: %v", e.Offset, e.Err)
}

// Unwrap returns the underlying sentinel so errors.Is works.
func (e *FormatError) Unwrap() error { return e.Err }
