package sexp

import (
	"fmt"
	"strings"
)

// DefaultMaxDepth is the nesting limit used when a Parser or Encoder has no
// MaxDepth set.
const DefaultMaxDepth = 512

// Parser decodes text into a Value.  Its zero value is ready to use.
type Parser struct {
	// MaxDepth bounds how deeply sequences may nest.  Zero means
	// DefaultMaxDepth.
	MaxDepth int
	// SkipValidation turns off the quote and paren balance checks done
	// before parsing.  Malformed input is still rejected, but the error
	// will point at wherever the parser gave up.
	SkipValidation bool
}

// Parse decodes text using a zero Parser.
func Parse(text string) (Value, error) {
	return Parser{}.Parse(text)
}

// Parse decodes text, which must be a single sequence with optional
// surrounding whitespace.  Any failure is returned as a *FormatError.
//
// A sequence whose elements alternate between ':'-prefixed keys and values
// is returned as a *Mapping; every other sequence, including the empty one,
// is returned as a Sequence.
func (p Parser) Parse(text string) (Value, error) {
	text = strings.TrimSpace(text)

	if !p.SkipValidation {
		if !IsQuotesBalanced(text) {
			return nil, &FormatError{Offset: strings.LastIndexByte(text, '"'), Err: ErrUnbalancedQuotes}
		}
		if err := checkParens(text); err != nil {
			return nil, err
		}
	}

	if !strings.HasPrefix(text, "(") {
		return nil, &FormatError{Offset: 0, Err: ErrNotASequence}
	}

	st := &parseState{text: text, maxDepth: depthLimit(p.MaxDepth)}
	out, err := st.parseSequence(0)
	if err != nil {
		return nil, err
	}
	if out.next != len(text) {
		return nil, &FormatError{
			Offset: out.next,
			Err:    fmt.Errorf("%q: %w", text[out.next:], ErrExtraTokens),
		}
	}
	return out.val, nil
}

func depthLimit(n int) int {
	if n <= 0 {
		return DefaultMaxDepth
	}
	return n
}

type parseState struct {
	text     string
	maxDepth int
	depth    int
}

// parseValue tries each atom parser, then a nested sequence.
func (st *parseState) parseValue(pos int) (outcome, error) {
	for _, try := range atomParsers {
		if out := try(st.text, pos); out.ok {
			return out, nil
		}
	}
	return st.parseSequence(pos)
}

// parseSequence reads '(' values... ')' starting at pos.  If pos is not an
// open paren it does not match.
func (st *parseState) parseSequence(pos int) (outcome, error) {
	if pos >= len(st.text) || st.text[pos] != '(' {
		return noMatch(pos), nil
	}
	if st.depth >= st.maxDepth {
		return outcome{}, &FormatError{Offset: pos, Err: ErrTooDeep}
	}
	st.depth++
	defer func() { st.depth-- }()

	start := pos
	pos = chompWhitespace(st.text, pos+1)

	items := []Value{}
	for {
		if pos >= len(st.text) {
			return outcome{}, &FormatError{Offset: start, Err: ErrUnbalancedParens}
		}
		if st.text[pos] == ')' {
			break
		}
		out, err := st.parseValue(pos)
		if err != nil {
			return outcome{}, err
		}
		if !out.ok {
			tok := st.text[pos:findEndOfSymbol(st.text, pos)]
			why := ErrUnparseableToken
			if isNumeral(tok) {
				// Only overflow gets a numeral this far.
				why = ErrNumberRange
			}
			return outcome{}, &FormatError{
				Offset: pos,
				Err:    fmt.Errorf("%q: %w", tok, why),
			}
		}
		items = append(items, out.val)
		pos = chompWhitespace(st.text, out.next)
	}

	return matched(disambiguate(items), pos+1), nil
}

// disambiguate turns a list of alternating keys and values into a Mapping.
// A key is any Text beginning with ':', whether it was written as a symbol
// or a quoted string.  Later duplicate keys overwrite earlier ones.  An empty
// list always stays a Sequence.
func disambiguate(items []Value) Value {
	if len(items) == 0 || len(items)%2 != 0 {
		return Sequence(items)
	}
	for i := 0; i < len(items); i += 2 {
		if !isKey(items[i]) {
			return Sequence(items)
		}
	}
	m := NewMapping()
	for i := 0; i < len(items); i += 2 {
		m.Set(string(items[i].(Text))[1:], items[i+1])
	}
	return m
}

func isKey(v Value) bool {
	t, ok := v.(Text)
	return ok && strings.HasPrefix(string(t), ":")
}
